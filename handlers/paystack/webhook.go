package paystack

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"

	"predictive-hub-backend/payment"
	"predictive-hub-backend/utils"
	mailsmodels "predictive-hub-backend/utils/mails-models"

	"github.com/gin-gonic/gin"
)

// PaystackWebhookHandler verifies and settles Paystack charge events.
// The signature is an HMAC-SHA512 of the raw body under the secret key and
// must be checked before the body is parsed. Paystack redelivers events
// after timeouts, so settlement has to be idempotent.
func PaystackWebhookHandler(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Unable to read the request body"})
		return
	}

	sig := c.GetHeader("x-paystack-signature")
	if sig == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing signature header"})
		return
	}

	secret := os.Getenv("PAYSTACK_SECRET_KEY")
	if secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
		return
	}

	if !payment.VerifySignature(secret, rawBody, sig) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		return
	}

	var event payment.Event
	if err := json.Unmarshal(rawBody, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing the event"})
		return
	}

	switch event.Event {
	case payment.EventChargeSuccess:
		handleChargeSuccess(c, event)
	case payment.EventChargeFailed:
		handleChargeFailed(c, event)
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Event ignored"})
	}
}

func handleChargeSuccess(c *gin.Context, event payment.Event) {
	var charge payment.ChargeData
	if err := json.Unmarshal(event.Data, &charge); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing the charge data"})
		return
	}

	if charge.Reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing transaction reference"})
		return
	}

	userID := charge.Metadata["user_id"]
	if userID == "" {
		// Without the metadata there is no way to locate the account
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id in charge metadata"})
		return
	}

	alreadyCompleted, err := payment.ApplySuccess(payment.Settlement{
		Reference:       charge.Reference,
		UserID:          userID,
		PlanName:        charge.Metadata["plan_name"],
		CustomerCode:    charge.Customer.CustomerCode,
		CustomerEmail:   charge.Customer.Email,
		ProviderPayload: string(event.Data),
	})
	if err != nil {
		if errors.Is(err, payment.ErrPaymentNotFound) {
			// 500 so Paystack retries, the initiation may not have committed yet
			utils.LogError(err, "Payment record not found in handleChargeSuccess")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment record not found"})
			return
		}
		if errors.Is(err, payment.ErrUserNotFound) {
			utils.LogError(err, "Unknown user in handleChargeSuccess")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown user"})
			return
		}
		utils.LogError(err, "Settlement error in handleChargeSuccess")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error settling the payment"})
		return
	}

	if alreadyCompleted {
		c.JSON(http.StatusOK, gin.H{"message": "Payment already settled"})
		return
	}

	if charge.Customer.Email != "" {
		mailsmodels.PaymentReceipt(charge.Customer.Email, charge.Metadata["plan_name"], charge.Amount, charge.Currency, charge.Reference)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment settled via charge.success"})
}

func handleChargeFailed(c *gin.Context, event payment.Event) {
	var charge payment.ChargeData
	if err := json.Unmarshal(event.Data, &charge); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing the charge data"})
		return
	}

	if charge.Reference == "" {
		c.JSON(http.StatusOK, gin.H{"message": "Failed charge without reference"})
		return
	}

	if err := payment.ApplyFailure(charge.Reference); err != nil && !errors.Is(err, payment.ErrPaymentNotFound) {
		utils.LogError(err, "Error recording the failure in handleChargeFailed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error recording the failure"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment marked as failed"})
}
