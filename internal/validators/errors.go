package validators

import "errors"

// Sentinel validation errors. The widget maps these to the inline error
// messages shown next to each field.
var (
	ErrValueRequired          = errors.New("value is required")
	ErrInvalidEmail           = errors.New("invalid email address")
	ErrInvalidPhone           = errors.New("invalid phone number")
	ErrInvalidNumber          = errors.New("invalid number")
	ErrNumberOutOfRange       = errors.New("number out of range")
	ErrGroupSelectionRequired = errors.New("select at least one option")
)
