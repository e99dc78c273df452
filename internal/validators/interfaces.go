// SPDX-License-Identifier: Apache-2.0

// Package validators implements the field-level validation rules shared by
// the widget client (inline errors before submit) and the server (re-checks
// during ingest).
package validators

import "github.com/SAMAymen/formix/models"

// FieldValidator validates submitted values against their field definitions.
type FieldValidator interface {
	// ValidateValue checks a single scalar value against the field's type
	// and required flag. An empty optional value is always valid.
	ValidateValue(field models.Field, value string) error

	// ValidateGroup checks a required checkbox/radio group for the
	// "at least one selected" rule. Evaluated at submit time only.
	ValidateGroup(field models.Field, selected []string) error
}

// NewFieldValidator returns the standard validator implementation.
func NewFieldValidator() FieldValidator {
	return &fieldValidator{}
}
