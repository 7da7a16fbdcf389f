package domain

import (
	"fmt"
	"regexp"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

// ValidateEmail checks basic email shape.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePositiveAmount rejects zero and negative stakes.
func ValidatePositiveAmount(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %d", amount)
	}
	return nil
}

// ValidatePlayerName checks roster name constraints.
func ValidatePlayerName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > 40 {
		return fmt.Errorf("name too long (max 40 characters)")
	}
	return nil
}
