package paystack

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"predictive-hub-backend/db"
	"predictive-hub-backend/models"
	"predictive-hub-backend/payment"
	"predictive-hub-backend/ratelimit"
	"predictive-hub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	paymentMaxAttempts = 5
	paymentWindow      = time.Minute
)

type initializeInput struct {
	Amount   float64 `json:"amount"`
	Email    string  `json:"email"`
	PlanName string  `json:"planName" binding:"required"`
}

// newReference builds a transaction reference unique with high probability.
// It is the idempotency key for the webhook that settles the payment.
func newReference() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("PSK_%d_%s", time.Now().UnixMilli(), suffix)
}

// InitializeTransaction starts a Paystack payment and returns the redirect URL.
// @Summary Initialize a Paystack transaction
// @Description Record a pending payment and request a Paystack authorization URL for the authenticated user. The client redirects to the returned URL to pay.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body initializeInput true "Amount in minor units, billing email and plan name"
// @Security BearerAuth
// @Success 200 {object} map[string]string "url: authorization URL, reference: transaction reference"
// @Failure 400 {object} map[string]string "error: Invalid amount or currency"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 429 {object} map[string]string "error: Too many payment attempts"
// @Failure 500 {object} map[string]string "error: Payment initialization failed"
// @Router /payments/paystack/initialize [post]
func InitializeTransaction(limiter *ratelimit.Limiter, client *payment.PaystackClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			utils.LogError(nil, "User not authenticated in InitializeTransaction")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		var user models.User
		if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
			utils.LogErrorWithUser(userID, err, "User not found in InitializeTransaction")
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		if !limiter.Allow(user.ID, "payment", paymentMaxAttempts, paymentWindow) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many payment attempts, try again later"})
			return
		}

		var input initializeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		amount, currency, errMsg := payment.ValidateAmount(input.Amount, "")
		if errMsg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
			return
		}

		email := input.Email
		if email == "" {
			email = user.Email
		}
		if !utils.ValidateEmail(email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
			return
		}

		reference := newReference()

		// The pending row is written before the processor call so a webhook
		// racing the response, or a failed processor call, still leaves an
		// auditable record. It is intentionally not rolled back on failure.
		pay := models.Payment{
			Reference:     reference,
			UserID:        user.ID,
			Amount:        int(amount),
			Currency:      currency,
			Provider:      models.ProviderPaystack,
			Status:        models.PaymentPending,
			CustomerEmail: email,
			PlanName:      input.PlanName,
		}
		if err := db.DB.Create(&pay).Error; err != nil {
			utils.LogErrorWithUser(userID, err, "Error recording the payment in InitializeTransaction")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment initialization failed"})
			return
		}

		authorizationURL, err := client.InitializeTransaction(payment.InitializeTransactionRequest{
			Email:       email,
			Amount:      int(amount),
			Reference:   reference,
			CallbackURL: os.Getenv("FRONTEND_URL") + "/payment/callback",
			Metadata: map[string]string{
				"user_id":   user.ID,
				"plan_name": input.PlanName,
			},
		})
		if err != nil {
			utils.LogErrorWithUser(userID, err, "Paystack error in InitializeTransaction")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment initialization failed"})
			return
		}

		utils.LogSuccessWithUser(userID, "Paystack transaction initialized in InitializeTransaction")
		c.JSON(http.StatusOK, gin.H{
			"url":       authorizationURL,
			"reference": reference,
		})
	}
}
