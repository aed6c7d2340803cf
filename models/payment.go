package models

import (
	"time"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

type PaymentProvider string

const (
	ProviderStripe   PaymentProvider = "STRIPE"
	ProviderPaystack PaymentProvider = "PAYSTACK"
)

// Payment tracks a single payment attempt from initiation to settlement.
// The reference correlates the row with the processor's webhook; status only
// ever moves PENDING -> COMPLETED or PENDING -> FAILED, both terminal.
type Payment struct {
	ID              string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Reference       string          `json:"reference" gorm:"uniqueIndex;not null"`
	UserID          string          `json:"userId" gorm:"type:uuid;not null"`
	Amount          int             `json:"amount"`
	Currency        string          `json:"currency" gorm:"type:varchar(10)"`
	Provider        PaymentProvider `json:"provider" gorm:"type:varchar(20)"`
	Status          PaymentStatus   `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	CustomerEmail   string          `json:"customerEmail"`
	PlanName        string          `json:"planName"`
	ProviderPayload string          `json:"-" gorm:"type:text"`
	PaidAt          *time.Time      `json:"paidAt"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
