package stripe

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"

	"predictive-hub-backend/payment"
	"predictive-hub-backend/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeWebhookHandler settles Stripe payments. Stripe delivers events at
// least once, so every branch must tolerate replays.
func StripeWebhookHandler(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Unable to read the request body"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sig, secret)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stripe signature verification failed"})
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		handlePaymentIntentSucceeded(c, event)
	case "payment_intent.payment_failed":
		handlePaymentIntentFailed(c, event)
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Event ignored"})
	}
}

func handlePaymentIntentSucceeded(c *gin.Context, event stripe.Event) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing PaymentIntent"})
		return
	}

	if pi.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PaymentIntent without ID"})
		return
	}

	userID := pi.Metadata["user_id"]
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id in payment metadata"})
		return
	}

	var customerCode string
	if pi.Customer != nil {
		customerCode = pi.Customer.ID
	}

	alreadyCompleted, err := payment.ApplySuccess(payment.Settlement{
		Reference:       pi.ID,
		UserID:          userID,
		PlanName:        pi.Metadata["plan_name"],
		CustomerCode:    customerCode,
		CustomerEmail:   pi.Metadata["email"],
		ProviderPayload: string(event.Data.Raw),
	})
	if err != nil {
		if errors.Is(err, payment.ErrPaymentNotFound) {
			utils.LogError(err, "Payment record not found in handlePaymentIntentSucceeded")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment record not found"})
			return
		}
		utils.LogError(err, "Settlement error in handlePaymentIntentSucceeded")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error settling the payment"})
		return
	}

	if alreadyCompleted {
		c.JSON(http.StatusOK, gin.H{"message": "Payment already settled"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment settled via payment_intent.succeeded"})
}

func handlePaymentIntentFailed(c *gin.Context, event stripe.Event) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing failed PaymentIntent"})
		return
	}

	if pi.ID == "" {
		c.JSON(http.StatusOK, gin.H{"message": "Failed PaymentIntent without ID"})
		return
	}

	if err := payment.ApplyFailure(pi.ID); err != nil && !errors.Is(err, payment.ErrPaymentNotFound) {
		utils.LogError(err, "Error recording the failure in handlePaymentIntentFailed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error recording the failure"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment marked as failed"})
}
