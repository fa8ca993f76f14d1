// Package auth implements the JWT token codec: issuing and validating signed
// access and refresh tokens (HS256) carrying the user id as subject.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/AvinashKhichar/mynotes/internal/common"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims extends the registered claims with the token type, so a refresh
// token can never be presented where an access token is expected and vice
// versa.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"typ"`
}

// Codec issues and validates signed tokens. It is the only component that
// knows the tokens' internal structure; everyone else treats them as opaque
// strings.
type Codec struct {
	secret          []byte
	accessValidity  time.Duration
	refreshValidity time.Duration
}

func NewCodec(secret []byte, accessValidity, refreshValidity time.Duration) *Codec {
	return &Codec{
		secret:          secret,
		accessValidity:  accessValidity,
		refreshValidity: refreshValidity,
	}
}

// RefreshTokenValidity reports the configured refresh-token lifetime, used by
// the session manager to compute ledger expiry timestamps.
func (c *Codec) RefreshTokenValidity() time.Duration {
	return c.refreshValidity
}

// IssueAccessToken mints a short-lived access token for userID.
func (c *Codec) IssueAccessToken(userID string) (string, error) {
	return c.issue(userID, TokenTypeAccess, c.accessValidity)
}

// IssueRefreshToken mints a refresh token for userID. The jti claim makes
// every token unique even when two are minted within the same second.
func (c *Codec) IssueRefreshToken(userID string) (string, error) {
	return c.issue(userID, TokenTypeRefresh, c.refreshValidity)
}

func (c *Codec) issue(userID, tokenType string, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		TokenType: tokenType,
	})

	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseAccessToken validates an access token and returns its subject.
func (c *Codec) ParseAccessToken(tokenString string) (string, error) {
	return c.parse(tokenString, TokenTypeAccess)
}

// ParseRefreshToken validates a refresh token and returns its subject.
// Signature and expiry are checked here; whether the token is still
// recognised by the ledger is a separate concern of the session manager.
func (c *Codec) ParseRefreshToken(tokenString string) (string, error) {
	return c.parse(tokenString, TokenTypeRefresh)
}

func (c *Codec) parse(tokenString, wantType string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.TokenType != wantType || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
