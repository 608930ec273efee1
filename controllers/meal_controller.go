package controllers

import (
	"context"
	"net/http"

	"github.com/garciajoao467/app-nutri/models"

	"github.com/gin-gonic/gin"
)

// MealRegistrar is the piece of the meal service the endpoint consumes.
type MealRegistrar interface {
	RegisterMeal(ctx context.Context, user *models.User, phrase, mealType string) (*models.MealRecord, error)
}

type MealController struct {
	meals MealRegistrar
}

func NewMealController(meals MealRegistrar) *MealController {
	return &MealController{meals: meals}
}

type RegisterMealInput struct {
	MealPhrase string `json:"meal_phrase" binding:"required"`
	MealType   string `json:"meal_type" binding:"required"`
}

func (ctl *MealController) RegisterMeal(c *gin.Context) {
	var input RegisterMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := CurrentUser(c)
	record, err := ctl.meals.RegisterMeal(c.Request.Context(), user, input.MealPhrase, input.MealType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":             record.ID,
		"message":        "meal registered successfully",
		"total_calories": record.TotalCalories,
		"total_protein":  record.TotalProtein,
		"total_fat":      record.TotalFat,
		"total_carbs":    record.TotalCarbs,
	})
}

// CurrentUser returns the user the auth middleware resolved for this
// request. Protected routes always have one; a missing user is a wiring
// bug, and MustGet panicking is the right outcome.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet("user").(*models.User)
}
