package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aachanin1/new-athlete-academy-sub000/internal/model"
	"github.com/aachanin1/new-athlete-academy-sub000/internal/pricing"
	"github.com/aachanin1/new-athlete-academy-sub000/internal/schedule"
	"github.com/aachanin1/new-athlete-academy-sub000/internal/service"
)

type AvailabilityHandler struct {
	svc *service.AvailabilityService
}

func NewAvailabilityHandler(svc *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

// intQuery разбирает числовой query-параметр; пустой параметр — валидный 0.
func intQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// GET /v1/sessions/available?year&month&course_type&page&page_size[&student_id]
func (h *AvailabilityHandler) List(c *gin.Context) {
	studentID := studentIDFromRequest(c)

	year, ok := intQuery(c, "year")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
		return
	}
	month, ok := intQuery(c, "month")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be an integer"})
		return
	}
	page, ok := intQuery(c, "page")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be an integer"})
		return
	}
	pageSize, ok := intQuery(c, "page_size")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page_size must be an integer"})
		return
	}
	courseType := model.CourseType(c.Query("course_type"))

	out, err := h.svc.ListAvailableSessions(c.Request.Context(), studentID, year, month, courseType)
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	case errors.Is(err, schedule.ErrInvalidMonth), errors.Is(err, schedule.ErrMissingStudent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	pg := schedule.Paginate(out.Sessions, page, pageSize)

	c.JSON(http.StatusOK, gin.H{
		"year":         out.Year,
		"month":        out.Month,
		"sessions":     pg.Items,
		"page":         pg.Page,
		"page_size":    pg.PageSize,
		"total_items":  pg.TotalItems,
		"total_pages":  pg.TotalPages,
		"booked_count": out.BookedCount,
		"quota":        out.Quota,
		// Оценка стоимости месяца по текущему числу броней.
		"quote": pricing.ForSessionCount(out.BookedCount),
	})
}
