package controllers

import (
	"net/http"
	"time"

	"github.com/garciajoao467/app-nutri/models"
	"github.com/garciajoao467/app-nutri/services"

	"github.com/gin-gonic/gin"
)

type SummaryProvider interface {
	Summarize(user *models.User, day time.Time) (*services.DailySummary, error)
}

type SummaryController struct {
	summaries SummaryProvider
}

func NewSummaryController(summaries SummaryProvider) *SummaryController {
	return &SummaryController{summaries: summaries}
}

// GetDailySummary reports the day's totals against the user's calorie
// target. Defaults to today (UTC); an optional ?date=YYYY-MM-DD query picks
// another day.
func (ctl *SummaryController) GetDailySummary(c *gin.Context) {
	day := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	user := CurrentUser(c)
	summary, err := ctl.summaries.Summarize(user, day)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
