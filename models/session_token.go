// SPDX-License-Identifier: Apache-2.0

package models

import "time"

// SessionTokenTTL is how long a widget session token stays valid.
const SessionTokenTTL = time.Hour

// SessionToken is the widget-side anti-replay guard: a random value generated
// per widget instance and checked for equality and non-expiry before a
// submission leaves the client. It is generated and verified entirely on the
// client, so it only protects against accidental double or stale submissions,
// not against a motivated attacker.
type SessionToken struct {
	Value    string    `json:"value"`
	IssuedAt time.Time `json:"issuedAt"`
}

// Matches reports whether other equals the stored token value.
func (t SessionToken) Matches(other string) bool {
	return t.Value != "" && t.Value == other
}

// Expired reports whether the token has outlived SessionTokenTTL.
func (t SessionToken) Expired(now time.Time) bool {
	return now.Sub(t.IssuedAt) > SessionTokenTTL
}
