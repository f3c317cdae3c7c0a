// Package validation holds the pure input rules for account fields.
// Every predicate is side-effect free so the rules can be unit tested
// in isolation and reused by any caller.
package validation

import (
	"regexp"
	"strings"
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,50}$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// passwordSpecials is the punctuation set a strong password must draw from.
const passwordSpecials = `!@#$%^&*(),.?":{}|<>`

// Result is the per-field verdict map for one validation pass. Keys match the
// wire field names of the register/update payloads.
type Result map[string]bool

// OK reports whether every field passed.
func (r Result) OK() bool {
	for _, ok := range r {
		if !ok {
			return false
		}
	}

	return true
}

// Validate checks all four account fields independently and returns the
// verdict for each. It never aborts on the first failure.
func Validate(username, email, password, nama string) Result {
	return Result{
		"username": IsValidUsername(username),
		"email":    IsValidEmail(email),
		"password": IsStrongPassword(password),
		"nama":     IsNonEmpty(nama),
	}
}

// ValidateProfile checks the fields touched by a profile update. The password
// is deliberately absent: updates never change or re-validate it.
func ValidateProfile(username, email, nama string) Result {
	return Result{
		"username": IsValidUsername(username),
		"email":    IsValidEmail(email),
		"nama":     IsNonEmpty(nama),
	}
}

// IsValidUsername reports whether the username is 3-50 characters of
// letters, digits, and underscores.
func IsValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// IsValidEmail reports whether the address has a local part, exactly one "@",
// a dot in the domain part, and no whitespace.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsStrongPassword reports whether the password is at least 8 characters and
// contains an uppercase letter, a lowercase letter, a digit, and one of the
// required punctuation characters.
func IsStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}

	return upper && lower && digit && special
}

// IsNonEmpty reports whether the value contains anything besides whitespace.
func IsNonEmpty(value string) bool {
	return strings.TrimSpace(value) != ""
}
