package validation

import (
	"fmt"
	"unicode"
)

// Account password policy. Applied uniformly to self-registration, the
// self-service reset flow and admin-initiated resets.
const (
	PasswordMinLength = 8
)

// CheckPassword reports whether the password satisfies the policy. The
// returned reason is empty when the password is acceptable.
func CheckPassword(password string) (ok bool, reason string) {
	if len(password) < PasswordMinLength {
		return false, fmt.Sprintf("password must be at least %d characters long", PasswordMinLength)
	}
	hasLetter, hasDigit := false, false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return false, "password must contain at least one letter and one digit"
	}
	return true, ""
}
