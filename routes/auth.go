package routes

import (
	"predictive-hub-backend/handlers/auth"
	"predictive-hub-backend/ratelimit"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine, limiter *ratelimit.Limiter) {
	r.POST("/register", auth.Register)
	r.POST("/login", auth.Login(limiter))
}
