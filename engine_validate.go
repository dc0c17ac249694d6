package trustkit

import (
	"fmt"
	"regexp"

	"github.com/vigilops/trustkit/password"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	identPattern  = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,}$`)
	usernameChars = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// ValidateIdentifier checks a login identifier: a well-formed email address
// or a simple username (alphanumeric plus - and _, 3+ chars). Validation
// failures are values, never errors.
func (e *Engine) ValidateIdentifier(identifier string) ValidationResult {
	if identifier == "" {
		return ValidationResult{Error: "Email or Username is required"}
	}

	if !emailPattern.MatchString(identifier) && !identPattern.MatchString(identifier) {
		return ValidationResult{Error: "Invalid email or username format"}
	}

	return ValidationResult{Valid: true}
}

// ValidatePassword checks sign-up password policy with ordered
// first-failure messages. This is the gate for form submission; the scored
// checklist lives in [Engine.EvaluatePassword].
func (e *Engine) ValidatePassword(pw string) ValidationResult {
	if pw == "" {
		return ValidationResult{Error: "Password is required"}
	}

	if len(pw) < e.config.Strength.MinLength {
		return ValidationResult{Error: "Password must be at least 8 characters"}
	}

	if !containsUpper(pw) {
		return ValidationResult{Error: "Password must contain an uppercase letter"}
	}

	if !containsLower(pw) {
		return ValidationResult{Error: "Password must contain a lowercase letter"}
	}

	if !containsDigit(pw) {
		return ValidationResult{Error: "Password must contain a number"}
	}

	if !password.ContainsSpecial(pw) {
		return ValidationResult{Error: "Password must contain a special character"}
	}

	return ValidationResult{Valid: true}
}

// ValidateUsername checks a display username: 3+ chars of letters, digits,
// - and _.
func (e *Engine) ValidateUsername(username string) ValidationResult {
	if username == "" {
		return ValidationResult{Error: "Username is required"}
	}

	if len(username) < 3 {
		return ValidationResult{Error: "Username must be at least 3 characters"}
	}

	if !usernameChars.MatchString(username) {
		return ValidationResult{Error: "Username can only contain letters, numbers, - and _"}
	}

	return ValidationResult{Valid: true}
}

// ValidateOTP checks that the code is exactly the configured number of
// ASCII digits (six by default).
func (e *Engine) ValidateOTP(code string) ValidationResult {
	if code == "" {
		return ValidationResult{Error: "OTP is required"}
	}

	digits := e.config.OTP.Digits
	if digits == 0 {
		digits = 6
	}
	if len(code) != digits || !allDigits(code) {
		return ValidationResult{Error: fmt.Sprintf("OTP must be %d digits", digits)}
	}

	return ValidationResult{Valid: true}
}

func containsUpper(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			return true
		}
	}
	return false
}

func containsLower(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'a' && s[i] <= 'z' {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return true
		}
	}
	return false
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
