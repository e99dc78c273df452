package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/SAMAymen/formix/models"
)

// NewSessionToken generates a fresh widget session token: 32 random bytes,
// hex-encoded, stamped with the current time. The token expires after
// [models.SessionTokenTTL].
func NewSessionToken() (models.SessionToken, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return models.SessionToken{}, fmt.Errorf("generate session token: %w", err)
	}

	return models.SessionToken{
		Value:    hex.EncodeToString(buf),
		IssuedAt: time.Now(),
	}, nil
}
