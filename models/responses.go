package models

// SubmitResponse is the JSON envelope returned by the ingestion endpoint.
// Every known failure branch produces this shape; the widget never receives
// an opaque error page.
type SubmitResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// EmbedResponse carries the generated embed snippet for a form.
type EmbedResponse struct {
	Snippet string `json:"snippet"`
}
