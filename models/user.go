package models

import (
	"time"
)

type Role string

const (
	GuestRole    Role = "GUEST"
	ProRole      Role = "PRO"
	InvestorRole Role = "INVESTOR"
	AdminRole    Role = "ADMIN"
)

// roleRanks orders the subscription tiers. Access is granted when the
// current role ranks at least as high as the required one.
var roleRanks = map[Role]int{
	GuestRole:    0,
	ProRole:      1,
	InvestorRole: 2,
	AdminRole:    3,
}

// RoleRank returns the ordinal rank of a role. Unknown roles rank below guest.
func RoleRank(role Role) int {
	rank, ok := roleRanks[role]
	if !ok {
		return -1
	}
	return rank
}

// CanAccess reports whether a user holding currentRole may use a feature
// gated at requiredRole.
func CanAccess(currentRole Role, requiredRole Role) bool {
	return RoleRank(currentRole) >= RoleRank(requiredRole)
}

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionInactive SubscriptionStatus = "INACTIVE"
)

type User struct {
	ID                   string             `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email                string             `json:"email" gorm:"uniqueIndex" binding:"required,email"`
	Password             string             `json:"-" binding:"required,min=6"`
	UserName             string             `json:"username"`
	Role                 Role               `json:"role" gorm:"type:varchar(20);default:'GUEST'"`
	SubscriptionStatus   SubscriptionStatus `json:"subscriptionStatus" gorm:"type:varchar(20);default:'INACTIVE'"`
	NextBillingDate      *time.Time         `json:"nextBillingDate"`
	StripeCustomerId     string             `json:"stripeCustomerId"`
	PaystackCustomerCode string             `json:"paystackCustomerCode"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}

// UserCreate is the expected payload for register and login
type UserCreate struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
