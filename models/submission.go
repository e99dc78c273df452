package models

import "time"

// Submission is one recorded form response. Submissions are immutable once
// created; they are only ever read back for listing and export.
type Submission struct {
	SubmissionID int64  `json:"id"`
	FormID       string `json:"formId"`

	// Payload holds the raw field-key→value pairs exactly as submitted,
	// before any spreadsheet flattening.
	Payload map[string]any `json:"payload"`

	// IdempotencyKey is supplied by the widget so that a retried POST can be
	// recognised and answered without appending a second spreadsheet row.
	IdempotencyKey string `json:"idempotencyKey,omitempty"`

	Origin    string    `json:"origin,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
