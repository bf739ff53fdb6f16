package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aachanin1/new-athlete-academy-sub000/internal/model"
	"github.com/aachanin1/new-athlete-academy-sub000/internal/service"
)

type SessionHandler struct {
	svc *service.BookingService
}

func NewSessionHandler(svc *service.BookingService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// POST /v1/sessions — административное планирование занятия.
func (h *SessionHandler) Create(c *gin.Context) {
	var in struct {
		BranchID   string `json:"branch_id" binding:"required"`
		Date       string `json:"date" binding:"required"` // YYYY-MM-DD
		StartTime  string `json:"start_time" binding:"required"`
		EndTime    string `json:"end_time" binding:"required"`
		CourseType string `json:"course_type"`
		Capacity   int    `json:"capacity"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	session, err := h.svc.ScheduleSession(c.Request.Context(), service.ScheduleSessionInput{
		BranchID:   in.BranchID,
		Date:       date,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		CourseType: model.CourseType(in.CourseType),
		Capacity:   in.Capacity,
	})
	if err != nil {
		writeRejection(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":          session.ID.String(),
		"branch_id":   session.BranchID.String(),
		"date":        in.Date,
		"start_time":  session.StartTime,
		"end_time":    session.EndTime,
		"course_type": session.CourseType,
		"capacity":    session.Capacity,
	})
}
