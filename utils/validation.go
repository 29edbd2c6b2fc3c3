package utils

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// Add records a failed field
func (e *FieldValidationErrors) Add(field, message string) {
	*e = append(*e, FieldValidationError{Field: field, Message: message})
}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)
	hasLower   = regexp.MustCompile(`[a-z]`)
	hasUpper   = regexp.MustCompile(`[A-Z]`)
	hasNumber  = regexp.MustCompile(`[0-9]`)
	hasSymbol  = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// ValidateEmail checks if the email is valid
func ValidateEmail(email string) (bool, string) {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return false, "Please provide a valid email address"
	}
	return true, ""
}

// ValidatePassword requires 8+ characters with a lowercase, an uppercase,
// a number and a symbol
func ValidatePassword(password string) (bool, string) {
	if len(password) < MinPasswordLength ||
		!hasLower.MatchString(password) ||
		!hasUpper.MatchString(password) ||
		!hasNumber.MatchString(password) ||
		!hasSymbol.MatchString(password) {
		return false, "Password must be at least 8 characters and contain at least one lowercase, one uppercase, one number, and one symbol"
	}
	return true, ""
}

// ValidatePhone checks an optional phone number
func ValidatePhone(phone string) (bool, string) {
	if phone == "" {
		return true, ""
	}
	if !phoneRegex.MatchString(strings.ReplaceAll(phone, " ", "")) {
		return false, "Please provide a valid phone number"
	}
	return true, ""
}

// ValidateName checks the display name length
func ValidateName(name string) (bool, string) {
	if err := ValidateStringLength(name, MinNameLength, MaxNameLength); err != nil {
		return false, "Name must be between 2-50 characters"
	}
	return true, ""
}

// ValidateStringLength validates string length
func ValidateStringLength(str string, min, max int) error {
	length := len(strings.TrimSpace(str))
	if length < min {
		return fmt.Errorf("must be at least %d characters long", min)
	}
	if length > max {
		return fmt.Errorf("must not exceed %d characters", max)
	}
	return nil
}

// ValidatePrice validates a price
func ValidatePrice(price float64) error {
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return fmt.Errorf("price must be greater than 0")
	}
	return nil
}

// RoundMoney rounds an amount to two decimal places
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
