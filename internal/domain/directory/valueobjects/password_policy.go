package valueobjects

import (
	"fmt"
	"strings"
	"unicode"
)

// PasswordSpecialChars is the set of characters that satisfy the special
// character requirement.
const PasswordSpecialChars = `!@#$%^&*(),.?":{}|<>`

// PasswordPolicy defines the password validation rules
type PasswordPolicy struct {
	MinLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireNumber    bool
	RequireSpecial   bool
}

// DefaultPasswordPolicy is the district policy: 12+ characters with upper,
// lower, digit and special characters.
func DefaultPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{
		MinLength:        12,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumber:    true,
		RequireSpecial:   true,
	}
}

// ValidatePassword returns the first rule the password violates.
func (p *PasswordPolicy) ValidatePassword(password string) error {
	if len(password) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters long", p.MinLength)
	}
	if len(password) > 72 {
		return fmt.Errorf("password must not exceed 72 characters")
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasNumber = true
		case strings.ContainsRune(PasswordSpecialChars, char):
			hasSpecial = true
		}
	}

	if p.RequireUppercase && !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if p.RequireLowercase && !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if p.RequireNumber && !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}
	if p.RequireSpecial && !hasSpecial {
		return fmt.Errorf("password must contain at least one special character (%s)", PasswordSpecialChars)
	}
	return nil
}
