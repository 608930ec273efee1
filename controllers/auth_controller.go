package controllers

import (
	"net/http"

	"github.com/garciajoao467/app-nutri/models"
	"github.com/garciajoao467/app-nutri/services"

	"github.com/gin-gonic/gin"
)

// AuthProvider is what the auth endpoints need from the service layer.
type AuthProvider interface {
	Register(email, password string, calorieTarget float64) (*models.User, error)
	Login(email, password string) (string, error)
}

type AuthController struct {
	auth AuthProvider
}

func NewAuthController(auth AuthProvider) *AuthController {
	return &AuthController{auth: auth}
}

type RegisterInput struct {
	Email         string  `json:"email" binding:"required,email"`
	Password      string  `json:"password" binding:"required"`
	CalorieTarget float64 `json:"daily_calorie_target"`
}

func (ctl *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ctl.auth.Register(input.Email, input.Password, input.CalorieTarget)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":                   user.ID,
		"email":                user.Email,
		"daily_calorie_target": user.DailyCalorieTarget,
	})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ctl *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := ctl.auth.Login(input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// respondError maps a ServiceError onto its suggested status and a stable
// error kind. Anything else becomes an opaque 500; internals never leak.
func respondError(c *gin.Context, err error) {
	if se, ok := err.(*services.ServiceError); ok {
		c.JSON(se.Status, gin.H{"error": se.Kind, "message": se.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "internal server error"})
}
