package payment

import (
	"errors"
	"strings"
	"time"

	"predictive-hub-backend/db"
	"predictive-hub-backend/models"
	"predictive-hub-backend/utils"

	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrUserNotFound    = errors.New("user not found")
)

// PlanRole maps a plan name to the tier it grants. Any plan whose name
// mentions the investor tier grants it, everything else grants the base
// paid tier.
func PlanRole(planName string) models.Role {
	if strings.Contains(strings.ToLower(planName), "investor") {
		return models.InvestorRole
	}
	return models.ProRole
}

// Settlement carries the verified facts of a successful charge.
type Settlement struct {
	Reference       string
	UserID          string
	PlanName        string
	CustomerCode    string
	CustomerEmail   string
	ProviderPayload string
}

// ApplySuccess marks the payment completed and promotes the paying user.
// Processors deliver webhooks at least once, so replays must be no-ops: a
// payment already completed is left untouched and the role is not rewritten
// when it already matches the target.
func ApplySuccess(s Settlement) (alreadyCompleted bool, err error) {
	var pay models.Payment
	if err := db.DB.First(&pay, "reference = ?", s.Reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrPaymentNotFound
		}
		return false, err
	}

	if pay.Status == models.PaymentCompleted {
		return true, nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":           models.PaymentCompleted,
		"provider_payload": s.ProviderPayload,
		"paid_at":          now,
	}
	if err := db.DB.Model(&pay).Updates(updates).Error; err != nil {
		return false, err
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", s.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}

	nextBilling := now.AddDate(0, 0, 30)
	profileUpdates := map[string]interface{}{
		"subscription_status": models.SubscriptionActive,
		"next_billing_date":   nextBilling,
	}

	switch pay.Provider {
	case models.ProviderPaystack:
		profileUpdates["paystack_customer_code"] = s.CustomerCode
	case models.ProviderStripe:
		profileUpdates["stripe_customer_id"] = s.CustomerCode
	}

	targetRole := PlanRole(s.PlanName)
	if user.Role != targetRole {
		profileUpdates["role"] = targetRole
	}

	if err := db.DB.Model(&user).Updates(profileUpdates).Error; err != nil {
		return false, err
	}

	utils.LogSuccessWithUser(user.ID, "Payment settled and subscription activated")
	return false, nil
}

// ApplyFailure records a processor-reported failure. Only a pending payment
// moves to failed, a completed one is never demoted.
func ApplyFailure(reference string) error {
	var pay models.Payment
	if err := db.DB.First(&pay, "reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}

	if pay.Status != models.PaymentPending {
		return nil
	}

	return db.DB.Model(&pay).Update("status", models.PaymentFailed).Error
}
