package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aachanin1/new-athlete-academy-sub000/internal/auth"
	"github.com/aachanin1/new-athlete-academy-sub000/internal/service"
)

type BookingHandler struct {
	svc *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// POST /v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var in struct {
		SessionID string `json:"session_id" binding:"required"`
		StudentID string `json:"student_id"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "reason": service.ReasonMissingFields})
		return
	}

	studentID := c.GetString("sub")
	role := c.GetString("role")
	if in.StudentID != "" && (role == auth.RoleAdmin || role == auth.RoleCoach) {
		studentID = in.StudentID
	}

	booking, err := h.svc.Book(c.Request.Context(), in.SessionID, studentID)
	if err != nil {
		writeRejection(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":         booking.ID.String(),
		"session_id": booking.SessionID.String(),
		"student_id": booking.StudentID.String(),
	})
}

// DELETE /v1/bookings?session_id=...
func (h *BookingHandler) Cancel(c *gin.Context) {
	sessionID := c.Query("session_id")
	studentID := studentIDFromRequest(c)

	if err := h.svc.Cancel(c.Request.Context(), sessionID, studentID); err != nil {
		writeRejection(c, err)
		return
	}
	// Отмена идемпотентна: отсутствие брони — тоже успех.
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// writeRejection переводит бизнес-отказы в HTTP-статусы так, чтобы UI
// различал причину по полю reason.
func writeRejection(c *gin.Context, err error) {
	var rej *service.Rejection
	if !errors.As(err, &rej) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	body := gin.H{"error": rej.Message, "reason": rej.Reason}
	switch rej.Reason {
	case service.ReasonMissingFields:
		c.JSON(http.StatusBadRequest, body)
	case service.ReasonAlreadyBooked, service.ReasonSessionFull:
		c.JSON(http.StatusConflict, body)
	case service.ReasonQuotaExceeded:
		body["quota"] = rej.Quota
		c.JSON(http.StatusConflict, body)
	default:
		c.JSON(http.StatusInternalServerError, body)
	}
}
