package routes

import (
	"predictive-hub-backend/handlers/paystack"
	"predictive-hub-backend/handlers/stripe"
	"predictive-hub-backend/middleware"
	"predictive-hub-backend/payment"
	"predictive-hub-backend/ratelimit"

	"github.com/gin-gonic/gin"
)

func PaymentsRoutes(r *gin.Engine, limiter *ratelimit.Limiter, paystackClient *payment.PaystackClient) {
	paymentRoutes := r.Group("/payments")
	paymentRoutes.Use(middleware.JWTAuth())
	{
		paymentRoutes.POST("/intent", stripe.CreatePaymentIntent(limiter))
		paymentRoutes.POST("/paystack/initialize", paystack.InitializeTransaction(limiter, paystackClient))
	}

	// Webhooks authenticate through their signatures, not through JWT
	r.POST("/payments/stripe/webhook", stripe.StripeWebhookHandler)
	r.POST("/payments/paystack/webhook", paystack.PaystackWebhookHandler)
}
