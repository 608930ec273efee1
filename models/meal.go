package models

import (
    "time"

    "gorm.io/gorm"
)

// One MealRecord per registered meal. The macro totals are a snapshot of
// what resolved at registration time; records are never updated afterwards.
type MealRecord struct {
    gorm.Model
    UserID        uint      `gorm:"index;not null" json:"user_id"`
    LoggedAt      time.Time `gorm:"index;not null" json:"logged_at"` // UTC creation instant
    MealType      string    `gorm:"not null" json:"meal_type"`       // "breakfast"|"lunch"|…
    TotalCalories float64   `json:"total_calories"`
    TotalProtein  float64   `json:"total_protein"`
    TotalFat      float64   `json:"total_fat"`
    TotalCarbs    float64   `json:"total_carbs"`
}
