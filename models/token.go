package models

import "github.com/golang-jwt/jwt/v5"

// Token carries a parsed or freshly issued owner-auth JWT together with the
// user it identifies.
type Token struct {
	jwt.RegisteredClaims

	Token        *jwt.Token `json:"-"`
	SignedString string     `json:"-"`
	UserID       int64      `json:"-"`
}
