package validators

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/SAMAymen/formix/models"
)

// emailPattern accepts a simple local@domain.tld shape. It is intentionally
// far looser than RFC 5322; the goal is catching obvious typos ("a@b",
// "a.com"), not full address validation.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// phonePattern accepts permissive international numbers: an optional leading
// +, parenthesized area codes, and -/./space separators. Letters are
// rejected; a minimum digit count is enforced separately.
var phonePattern = regexp.MustCompile(`^\+?[0-9().\s-]+$`)

const phoneMinDigits = 5

type fieldValidator struct{}

// ValidateValue implements [FieldValidator].
func (v *fieldValidator) ValidateValue(field models.Field, value string) error {
	value = strings.TrimSpace(value)

	if value == "" {
		if field.Required {
			return ErrValueRequired
		}
		return nil
	}

	switch field.Type {
	case models.FieldEmail:
		if !emailPattern.MatchString(value) {
			return ErrInvalidEmail
		}
	case models.FieldTel:
		if !phonePattern.MatchString(value) || countDigits(value) < phoneMinDigits {
			return ErrInvalidPhone
		}
	case models.FieldNumber:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return ErrInvalidNumber
		}
		if field.Min != nil && n < *field.Min {
			return ErrNumberOutOfRange
		}
		if field.Max != nil && n > *field.Max {
			return ErrNumberOutOfRange
		}
	}

	return nil
}

// ValidateGroup implements [FieldValidator].
func (v *fieldValidator) ValidateGroup(field models.Field, selected []string) error {
	if !field.Required {
		return nil
	}

	for _, s := range selected {
		if strings.TrimSpace(s) != "" {
			return nil
		}
	}
	return ErrGroupSelectionRequired
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
