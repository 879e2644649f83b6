package utils // helpers for signing and verifying session tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity a session token carries: exactly the user ID,
// email and role, nothing else. It is embedded into the JWT at login
// and registration and recovered by the auth middleware on every
// protected request.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// AuthToken is a signed JWT plus its expiry. The token travels in an
// HTTP-only cookie; there is no refresh mechanism, expiry forces a
// fresh login.
type AuthToken struct {
	Token string
	Exp   time.Time
}

// ErrInvalidToken is the single error returned for every verification
// failure. Callers must not distinguish a bad signature from an
// expired or malformed token; to the client all of them read the same.
var ErrInvalidToken = errors.New("invalid token")

// NewAuthToken builds and signs an HS256 JWT for the given claims.
// The JWT carries sub (user ID), email, role, exp and iat.
func NewAuthToken(secret string, cl Claims, ttl time.Duration) (AuthToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   cl.UserID,
		"email": cl.Email,
		"role":  cl.Role,
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	})
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AuthToken{}, err
	}
	return AuthToken{Token: signed, Exp: exp}, nil
}

// VerifyAuthToken checks signature and expiry and returns the embedded
// claims. Any failure collapses to ErrInvalidToken. Only HS256 is
// accepted; tokens signed with another algorithm are rejected.
func VerifyAuthToken(secret, raw string) (Claims, error) {
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
	sub, _ := mc["sub"].(string)
	email, _ := mc["email"].(string)
	role, _ := mc["role"].(string)
	if sub == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{UserID: sub, Email: email, Role: role}, nil
}
