// SPDX-License-Identifier: Apache-2.0

package models

import "time"

// RefreshBuffer is the safety margin before access-token expiry within which
// the token is treated as already expired and refreshed pre-emptively.
const RefreshBuffer = 15 * time.Minute

// Account is a tenant's OAuth grant against the spreadsheet provider.
// The refresh token is the durable credential; the access token is ephemeral
// and regenerated transparently whenever it is absent or about to expire.
type Account struct {
	AccountID int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Provider  string `json:"provider"`

	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	Expiry       time.Time `json:"expiry"`
	Scope        string    `json:"scope,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NeedsRefresh reports whether the access token must be exchanged before use:
// it is empty, already expired, or expires within the refresh buffer.
func (a Account) NeedsRefresh(now time.Time) bool {
	if a.AccessToken == "" {
		return true
	}
	return !a.Expiry.After(now.Add(RefreshBuffer))
}
