package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// requireDate pulls the date query parameter and rejects anything that
// isn't strict YYYY-MM-DD before any store access happens.
func requireDate(c *gin.Context) (string, bool) {
	date := c.Query("date")
	if _, err := time.Parse(dateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return "", false
	}
	return date, true
}
