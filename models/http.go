package models

// SchemaResponse is the CORS-open payload the widget fetches before
// rendering. Fields are normalized server-side so the widget never sees a nil
// option list or an out-of-range column span.
type SchemaResponse struct {
	FormID     string  `json:"id"`
	Title      string  `json:"title"`
	Fields     []Field `json:"fields"`
	SheetID    string  `json:"sheetId"`
	Color      string  `json:"color,omitempty"`
	SubmitText string  `json:"submitText,omitempty"`
	Version    string  `json:"version"`
}

// FormCreateRequest is the management-API body for creating a form.
type FormCreateRequest struct {
	Title      string  `json:"title"`
	Fields     []Field `json:"fields"`
	SheetID    string  `json:"sheetId,omitempty"`
	SheetURL   string  `json:"sheetUrl,omitempty"`
	Color      string  `json:"color,omitempty"`
	SubmitText string  `json:"submitText,omitempty"`
}

// FormUpdateRequest carries a partial form update; nil fields are left
// untouched.
type FormUpdateRequest struct {
	Title      *string  `json:"title,omitempty"`
	Fields     *[]Field `json:"fields,omitempty"`
	SheetID    *string  `json:"sheetId,omitempty"`
	SheetURL   *string  `json:"sheetUrl,omitempty"`
	Color      *string  `json:"color,omitempty"`
	SubmitText *string  `json:"submitText,omitempty"`
}

// SubmissionPage is one page of recorded submissions.
type SubmissionPage struct {
	Items  []Submission `json:"items"`
	Total  int64        `json:"total"`
	Limit  uint64       `json:"limit"`
	Offset uint64       `json:"offset"`
}
