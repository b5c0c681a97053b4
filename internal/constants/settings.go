package constants

const (
	SettingTimezone = "timezone"
	SettingCurrency = "currency"

	DefaultTimezone = "Local" // Use system local timezone by default
	DefaultCurrency = "$"
)
