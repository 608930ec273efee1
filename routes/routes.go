package routes

import (
    "github.com/garciajoao467/app-nutri/controllers"
    "github.com/garciajoao467/app-nutri/middlewares"

    "github.com/gin-contrib/cors"
    "github.com/gin-gonic/gin"
    "gorm.io/gorm"
)

func SetupRouter(
    db *gorm.DB,
    jwtSecret []byte,
    auth *controllers.AuthController,
    meals *controllers.MealController,
    summaries *controllers.SummaryController,
) *gin.Engine {
    r := gin.Default()
    r.Use(cors.Default())

    r.GET("/", controllers.Health)

    // Public auth routes
    authGroup := r.Group("/auth")
    {
        authGroup.POST("/register", auth.Register)
        authGroup.POST("/login", auth.Login)
    }

    // Protected routes
    api := r.Group("/")
    api.Use(middlewares.AuthMiddleware(db, jwtSecret))
    {
        api.POST("/meals", meals.RegisterMeal)
        api.GET("/summary", summaries.GetDailySummary)
    }

    return r
}
