package routes

import (
	"predictive-hub-backend/handlers/markets"
	"predictive-hub-backend/middleware"

	"github.com/gin-gonic/gin"
)

func MarketsRoutes(r *gin.Engine) {
	r.GET("/markets", markets.GetSectors)

	marketRoutes := r.Group("/markets")
	marketRoutes.Use(middleware.JWTAuth())
	{
		marketRoutes.GET("/:sector", markets.GetSectorData)
		marketRoutes.POST("/:sector", middleware.AdminAuth(), markets.CreateDataPoint)
	}
}
