package main

import (
	"log"

	"predictive-hub-backend/db"
	"predictive-hub-backend/payment"
	"predictive-hub-backend/ratelimit"
	"predictive-hub-backend/routes"

	"github.com/gin-gonic/gin"
)

// @title Predictive Hub Backend API
// @version 1.0
// @description API for the Predictive Hub market analytics dashboard
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the JWT with the Bearer prefix: Bearer <JWT>
func main() {

	gin.SetMode(gin.ReleaseMode)

	db.InitDB()

	// One limiter per process, handed to the handlers that throttle
	limiter := ratelimit.New()
	paystackClient := payment.NewPaystackClient()

	r := routes.SetupRouter(limiter, paystackClient)

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Error starting the server:", err)
	}
}
