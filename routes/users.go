package routes

import (
	"predictive-hub-backend/handlers/users"
	"predictive-hub-backend/middleware"

	"github.com/gin-gonic/gin"
)

func UsersRoutes(r *gin.Engine) {
	userRoutes := r.Group("/users")
	userRoutes.Use(middleware.JWTAuth())
	{
		userRoutes.GET("/me", users.GetMe)
		userRoutes.GET("/me/payments", users.GetMyPayments)
	}
}
