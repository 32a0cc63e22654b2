// Package validation holds the input format checks the HTTP layer applies before
// handing requests to the credential store. The checks are coarse on purpose and
// never reach into the store.
package validation

import (
	"regexp"
	"strings"
)

// PasswordSpecialChars lists the characters that count towards the special-character rule.
const PasswordSpecialChars = "!@#$%^&*"

// MinPasswordLength is the shortest password IsStrongPassword accepts.
const MinPasswordLength = 8

// MaxPasswordBytes is the longest password, in bytes, that bcrypt will hash.
const MaxPasswordBytes = 72

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// IsValidEmail reports whether s looks like "local@domain.tld" with no whitespace.
// It is not an RFC 5322 validator.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsStrongPassword reports whether s has at least MinPasswordLength characters and
// contains a lowercase letter, an uppercase letter, a digit and one of PasswordSpecialChars.
func IsStrongPassword(s string) bool {
	if len([]rune(s)) < MinPasswordLength {
		return false
	}

	var lower, upper, digit, special bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSpecialChars, r):
			special = true
		}
	}
	return lower && upper && digit && special
}

// FitsPasswordHash reports whether s is short enough to be hashed with bcrypt.
func FitsPasswordHash(s string) bool {
	return len(s) <= MaxPasswordBytes
}
