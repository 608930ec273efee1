package models

import (
    "gorm.io/gorm"
)

type User struct {
    gorm.Model
    Email              string       `gorm:"uniqueIndex;not null" json:"email"`
    PasswordHash       string       `gorm:"not null" json:"-"`
    DailyCalorieTarget float64      `gorm:"not null;default:2000" json:"daily_calorie_target"`
    Meals              []MealRecord `json:"-"`
}
