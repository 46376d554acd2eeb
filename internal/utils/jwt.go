package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// ErrInvalidToken is returned by ParseSessionToken for any token that cannot
// be trusted: bad signature, wrong algorithm, malformed payload or expiry in
// the past.  Callers do not learn which of these occurred.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the identity attributes carried inside a session token.
type Claims struct {
	UserID  string // hex object id of the user (JWT "sub")
	Name    string // display name
	IsAdmin bool   // admin flag gating catalog mutations
}

// SessionToken represents a signed JWT along with its expiry.  Session
// tokens are stateless: the server keeps no record of issued tokens and a
// token stays valid until its expiry regardless of server-side changes.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the identity claims and a TTL in days.  The JWT includes
// subject (sub), name, is_admin, expiration (exp) and issued at (iat).
func NewSessionToken(secret string, c Claims, ttlDays int) (SessionToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"sub":      c.UserID,
		"name":     c.Name,
		"is_admin": c.IsAdmin,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies the signature and expiry of a raw token string
// and returns the embedded claims.  Tokens signed with anything other than
// HMAC are rejected.
func ParseSessionToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	var c Claims
	if v, ok := mc["sub"].(string); ok {
		c.UserID = v
	}
	if v, ok := mc["name"].(string); ok {
		c.Name = v
	}
	if v, ok := mc["is_admin"].(bool); ok {
		c.IsAdmin = v
	}
	return c, nil
}
