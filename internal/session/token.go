package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

// Tokens signs and verifies the session cookie that names a widget.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy of t that reads time from now.
func (t *Tokens) WithClock(now func() time.Time) *Tokens {
	out := *t
	out.now = now
	return &out
}

// TTL is how long an issued token stays valid without being refreshed.
func (t *Tokens) TTL() time.Duration {
	return t.ttl
}

func (t *Tokens) Issue(widgetID string) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   widgetID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse returns the widget id carried by a valid token.
func (t *Tokens) Parse(raw string) (string, error) {
	return t.parse(raw, jwt.WithTimeFunc(t.now))
}

// Subject returns the widget id of a correctly signed token even when it has
// expired, so a stale cookie can still release its widget.
func (t *Tokens) Subject(raw string) (string, error) {
	return t.parse(raw, jwt.WithoutClaimsValidation())
}

func (t *Tokens) parse(raw string, opts ...jwt.ParserOption) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return t.secret, nil
	}, opts...)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
