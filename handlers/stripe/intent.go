package stripe

import (
	"net/http"
	"os"
	"time"

	"predictive-hub-backend/db"
	"predictive-hub-backend/models"
	"predictive-hub-backend/payment"
	"predictive-hub-backend/ratelimit"
	"predictive-hub-backend/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

const (
	paymentMaxAttempts = 5
	paymentWindow      = time.Minute
)

type paymentIntentInput struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	PlanName string  `json:"planName"`
}

// CreatePaymentIntent starts a Stripe payment and returns the client secret.
// @Summary Create a Stripe payment intent
// @Description Validate the amount and currency, then create a Stripe payment intent for the authenticated user. The client completes the payment with the returned secret.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body paymentIntentInput true "Amount in minor units and optional currency/plan"
// @Security BearerAuth
// @Success 200 {object} map[string]string "clientSecret, paymentIntentId"
// @Failure 400 {object} map[string]string "error: Invalid amount or currency"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 429 {object} map[string]string "error: Too many payment attempts"
// @Router /payments/intent [post]
func CreatePaymentIntent(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

		userID, exists := c.Get("user_id")
		if !exists {
			utils.LogError(nil, "User not authenticated in CreatePaymentIntent")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		var user models.User
		if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
			utils.LogErrorWithUser(userID, err, "User not found in CreatePaymentIntent")
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		if !limiter.Allow(user.ID, "payment", paymentMaxAttempts, paymentWindow) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many payment attempts, try again later"})
			return
		}

		var input paymentIntentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		amount, currency, errMsg := payment.ValidateAmount(input.Amount, input.Currency)
		if errMsg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
			return
		}

		params := &stripe.PaymentIntentParams{
			Amount:   stripe.Int64(amount),
			Currency: stripe.String(currency),
		}
		params.AddMetadata("user_id", user.ID)
		params.AddMetadata("email", user.Email)
		params.AddMetadata("plan_name", input.PlanName)
		params.AddMetadata("created_at", time.Now().UTC().Format(time.RFC3339))

		pi, err := paymentintent.New(params)
		if err != nil {
			// Processor errors are logged with detail but never echoed to the caller
			utils.LogErrorWithUser(userID, err, "Stripe error in CreatePaymentIntent")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment initialization failed"})
			return
		}

		pay := models.Payment{
			Reference:     pi.ID,
			UserID:        user.ID,
			Amount:        int(amount),
			Currency:      currency,
			Provider:      models.ProviderStripe,
			Status:        models.PaymentPending,
			CustomerEmail: user.Email,
			PlanName:      input.PlanName,
		}
		if err := db.DB.Create(&pay).Error; err != nil {
			utils.LogErrorWithUser(userID, err, "Error recording the payment in CreatePaymentIntent")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment initialization failed"})
			return
		}

		utils.LogSuccessWithUser(userID, "Stripe payment intent created in CreatePaymentIntent")
		c.JSON(http.StatusOK, gin.H{
			"clientSecret":    pi.ClientSecret,
			"paymentIntentId": pi.ID,
		})
	}
}
