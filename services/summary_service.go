package services

import (
	"net/http"
	"time"

	"github.com/garciajoao467/app-nutri/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DailySummary is the per-day reduction over a user's meal records.
type DailySummary struct {
	Date              string  `json:"date"`
	CalorieTarget     float64 `json:"calorie_target"`
	TotalCalories     float64 `json:"total_calories"`
	TotalProtein      float64 `json:"total_protein"`
	TotalFat          float64 `json:"total_fat"`
	TotalCarbs        float64 `json:"total_carbs"`
	CaloriesRemaining float64 `json:"calories_remaining"`
}

type SummaryService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewSummaryService(db *gorm.DB, log *zap.SugaredLogger) *SummaryService {
	return &SummaryService{db: db, log: log}
}

// Summarize sums the user's meals over the UTC calendar day containing day
// and computes the remaining calorie budget. Remaining may go negative; it
// is not clamped. A day with no meals yields all-zero totals.
func (s *SummaryService) Summarize(user *models.User, day time.Time) (*DailySummary, error) {
	day = day.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	s.log.Infow("computing daily summary", "user", user.Email, "from", start, "to", end)

	var row struct {
		TotalCalories float64
		TotalProtein  float64
		TotalFat      float64
		TotalCarbs    float64
	}
	err := s.db.Model(&models.MealRecord{}).
		Select(
			"COALESCE(SUM(total_calories), 0) AS total_calories, " +
				"COALESCE(SUM(total_protein), 0) AS total_protein, " +
				"COALESCE(SUM(total_fat), 0) AS total_fat, " +
				"COALESCE(SUM(total_carbs), 0) AS total_carbs",
		).
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", user.ID, start, end).
		Scan(&row).Error
	if err != nil {
		s.log.Errorw("daily summary query failed", "error", err)
		return nil, &ServiceError{
			Kind:    KindSummary,
			Message: "internal error while computing the daily summary",
			Status:  http.StatusInternalServerError,
			cause:   err,
		}
	}

	return &DailySummary{
		Date:              start.Format("2006-01-02"),
		CalorieTarget:     user.DailyCalorieTarget,
		TotalCalories:     round2(row.TotalCalories),
		TotalProtein:      round2(row.TotalProtein),
		TotalFat:          round2(row.TotalFat),
		TotalCarbs:        round2(row.TotalCarbs),
		CaloriesRemaining: round2(user.DailyCalorieTarget - row.TotalCalories),
	}, nil
}
