package utils

// Application constants
const (
	// Application name
	AppName = "CocoMart"

	// Currency smallest unit per major unit (paise per rupee)
	MinorUnitsPerMajor = 100

	// Minimum password length
	MinPasswordLength = 8

	// Minimum name length
	MinNameLength = 2

	// Maximum name length
	MaxNameLength = 50

	// Context key holding the authenticated models.User
	ContextUserKey = "user"

	// Context key holding the authenticated models.Principal
	ContextPrincipalKey = "principal"
)
