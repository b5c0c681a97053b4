package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal is a target amount tracked against projected savings.
type SavingsGoal struct {
	ID           string          `json:"id" yaml:"id"`
	Name         string          `json:"name" yaml:"name"`
	TargetAmount decimal.Decimal `json:"target_amount" yaml:"target_amount"`
	Icon         string          `json:"icon" yaml:"icon"`
	Default      bool            `json:"default,omitempty" yaml:"-"`
	CreatedAt    time.Time       `json:"created_at" yaml:"-"`
}

// EmergencyContact is a person to reach out to.
type EmergencyContact struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship,omitempty"`
}

// RecoveryProfile is the single local user's profile and recovery settings.
type RecoveryProfile struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	DateOfBirth     string `json:"date_of_birth"` // YYYY-MM-DD format
	AddressCity     string `json:"address_city"`
	ProfileImageURL string `json:"profile_image_url"`
	Substance       string `json:"substance"`

	SobrietyStartDate   string           `json:"sobriety_start_date"` // YYYY-MM-DD format, empty when unset
	DailyCost           decimal.Decimal  `json:"daily_cost"`
	ActualMoneySetAside *decimal.Decimal `json:"actual_money_set_aside,omitempty"`
	ActiveSavingsGoalID string           `json:"active_savings_goal_id,omitempty"`

	CustomSavingsGoals []SavingsGoal      `json:"custom_savings_goals"`
	EmergencyContacts  []EmergencyContact `json:"emergency_contacts"`

	UpdatedAt time.Time `json:"updated_at"`
}

// HasSobrietyDate reports whether a start date has been recorded.
func (p RecoveryProfile) HasSobrietyDate() bool {
	return p.SobrietyStartDate != ""
}
