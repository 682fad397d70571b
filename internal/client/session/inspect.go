package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/cryptox"
)

// TokenInfo describes a token for logs. The signature is never checked:
// only the server decides whether a token is valid.
type TokenInfo struct {
	Fingerprint string
	JWT         bool
	Subject     string
	ExpiresAt   time.Time
}

// Inspect reads the claims of a JWT-shaped token without verifying it.
// Opaque tokens yield a TokenInfo with only the fingerprint set.
func Inspect(token string) TokenInfo {
	info := TokenInfo{Fingerprint: cryptox.Fingerprint(token)}
	if token == "" {
		return info
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return info
	}
	info.JWT = true

	if sub, err := parsed.Claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info
}

// Expired reports whether the token carries an exp claim before now.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// logArgs lists only the non-sensitive fields.
func (i TokenInfo) logArgs() []any {
	args := []any{"token", i.Fingerprint}
	if i.Subject != "" {
		args = append(args, "subject", i.Subject)
	}
	if !i.ExpiresAt.IsZero() {
		args = append(args, "expires_at", i.ExpiresAt.UTC().Format(time.RFC3339))
	}
	return args
}
