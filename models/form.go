// SPDX-License-Identifier: Apache-2.0

package models

import (
	"strconv"
	"time"
)

// Form is a tenant-owned form definition. Forms are archived (soft-deleted)
// rather than destroyed so existing submissions stay readable.
type Form struct {
	FormID  string `json:"id"`
	OwnerID int64  `json:"-"`
	Title   string `json:"title"`

	// Fields is the ordered field list. Order is authoritative for
	// spreadsheet column mapping and must be preserved by storage.
	Fields []Field `json:"fields"`

	// SheetID identifies the connected Google spreadsheet. Empty means the
	// form is not connected and submissions are rejected.
	SheetID  string `json:"sheetId"`
	SheetURL string `json:"sheetUrl,omitempty"`

	Color      string `json:"color,omitempty"`
	SubmitText string `json:"submitText,omitempty"`
	Archived   bool   `json:"archived"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Normalize applies Field.Normalize to every field in order.
func (f *Form) Normalize() {
	for i := range f.Fields {
		f.Fields[i].Normalize()
	}
}

// SchemaVersion is the version tag served alongside the schema and stored
// with client-side caches. A cached schema whose version differs from the
// live one is treated as a cache miss, never silently reused.
func (f Form) SchemaVersion() string {
	return strconv.FormatInt(f.UpdatedAt.UTC().UnixMilli(), 10)
}

// HasCTA reports whether any field supplies its own submit semantics.
// The widget synthesizes a default submit button only when this is false.
func (f Form) HasCTA() bool {
	for _, field := range f.Fields {
		if field.Type == FieldCTA {
			return true
		}
	}
	return false
}

// FieldByKey resolves a submission payload key to a field definition.
// Field IDs are the documented key contract; matching by label is a
// compatibility shim for payloads produced by older embeds.
func (f Form) FieldByKey(key string) (Field, bool) {
	for _, field := range f.Fields {
		if field.FieldID == key {
			return field, true
		}
	}
	for _, field := range f.Fields {
		if field.Label == key {
			return field, true
		}
	}
	return Field{}, false
}
