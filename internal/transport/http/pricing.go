package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aachanin1/new-athlete-academy-sub000/internal/pricing"
)

// GET /v1/pricing/quote?sessions=n
func PricingQuote(c *gin.Context) {
	n, err := strconv.Atoi(c.Query("sessions"))
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessions must be a non-negative integer"})
		return
	}
	c.JSON(http.StatusOK, pricing.ForSessionCount(n))
}
