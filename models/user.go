package models

import "time"

// User is a form owner. Password is only ever populated on inbound
// register/login requests; PasswordHash is what storage persists.
type User struct {
	UserID       int64  `json:"id"`
	Login        string `json:"login"`
	Password     string `json:"password,omitempty"`
	PasswordHash string `json:"-"`
	Email        string `json:"email,omitempty"`

	// NotifyOnSubmission enables the fire-and-forget email sent to the owner
	// after every accepted submission.
	NotifyOnSubmission bool `json:"notifyOnSubmission"`

	CreatedAt time.Time `json:"createdAt"`
}
