// SPDX-License-Identifier: Apache-2.0

package models

import (
	"math"
	"strconv"
	"strings"
)

// FieldType enumerates the kinds of inputs a form can carry. The set mirrors
// what the builder UI can produce; unknown values are rendered as plain text
// inputs by the widget.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldTel      FieldType = "tel"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldSelect   FieldType = "select"
	FieldCheckbox FieldType = "checkbox"
	FieldRadio    FieldType = "radio"
	FieldTextarea FieldType = "textarea"
	FieldCTA      FieldType = "cta"
)

// ColumnSpan is the width hint of a field on the 12-column embed grid.
// Valid values are 1 (full width), 2 (half) and 3 (third).
type ColumnSpan int

// UnmarshalJSON accepts numbers and numeric strings and clamps the result
// into {1,2,3}; anything unparseable becomes 1.
// Builder exports have historically carried spans as strings, floats and
// garbage, so this must never fail the whole schema decode.
func (c *ColumnSpan) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*c = 1
		return nil
	}

	*c = ColumnSpan(math.Round(f)).Clamp()
	return nil
}

// Clamp forces the span into the valid {1,2,3} range. The zero value (span
// absent from the schema) clamps to 1.
func (c ColumnSpan) Clamp() ColumnSpan {
	if c < 1 {
		return 1
	}
	if c > 3 {
		return 3
	}
	return c
}

// Field is a single input definition inside a form. Field order inside
// Form.Fields is load-bearing: spreadsheet columns are written in field order
// at header-bootstrap time and are never reordered afterwards.
type Field struct {
	FieldID     string    `json:"id"`
	Type        FieldType `json:"type"`
	Label       string    `json:"label"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
	HelpText    string    `json:"helpText,omitempty"`

	// Options is the generic option list for select fields. Checkbox and
	// radio fields carry role-specific lists which fall back to Options
	// during normalization.
	Options         []string `json:"options"`
	CheckboxOptions []string `json:"checkboxOptions,omitempty"`
	RadioOptions    []string `json:"radioOptions,omitempty"`

	// ButtonText is only meaningful for cta fields; it replaces the
	// synthesized submit button label.
	ButtonText string `json:"buttonText,omitempty"`

	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Rows int      `json:"rows,omitempty"`

	ColumnSpan ColumnSpan `json:"columnSpan"`
}

// Normalize fills the derived defaults the widget relies on:
//   - ColumnSpan is clamped into {1,2,3};
//   - checkbox/radio fields always end up with a non-nil role-specific
//     option list (falling back to Options, then to an empty list);
//   - select fields always end up with a non-nil Options list;
//   - cta fields get a ButtonText defaulting to the label, then "Submit".
func (f *Field) Normalize() {
	f.ColumnSpan = f.ColumnSpan.Clamp()

	switch f.Type {
	case FieldCheckbox:
		if f.CheckboxOptions == nil {
			f.CheckboxOptions = optionsOrEmpty(f.Options)
		}
	case FieldRadio:
		if f.RadioOptions == nil {
			f.RadioOptions = optionsOrEmpty(f.Options)
		}
	case FieldSelect:
		if f.Options == nil {
			f.Options = []string{}
		}
	case FieldCTA:
		if f.ButtonText == "" {
			if f.Label != "" {
				f.ButtonText = f.Label
			} else {
				f.ButtonText = "Submit"
			}
		}
	}
}

// OptionList returns the option list that applies to this field's role.
// Call Normalize first; afterwards the result is never nil for option-bearing
// field types.
func (f Field) OptionList() []string {
	switch f.Type {
	case FieldCheckbox:
		return f.CheckboxOptions
	case FieldRadio:
		return f.RadioOptions
	default:
		return f.Options
	}
}

// MultiValue reports whether the field can carry more than one value in a
// single submission. Multi-value answers are comma-joined when mirrored into
// a spreadsheet cell.
func (f Field) MultiValue() bool {
	return f.Type == FieldCheckbox
}

func optionsOrEmpty(options []string) []string {
	if options != nil {
		return options
	}
	return []string{}
}
