package services

import (
	"testing"

	"github.com/garciajoao467/app-nutri/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.MealRecord{}))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, email string, target float64) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x", DailyCalorieTarget: target}
	require.NoError(t, db.Create(user).Error)
	return user
}
