package models

// Settings represents application-wide settings
type Settings struct {
	Timezone string `json:"timezone"` // IANA timezone name (e.g. "America/New_York", or "Local" for system timezone)
	Currency string `json:"currency"` // symbol printed before money amounts
}
