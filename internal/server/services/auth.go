// Package services contains server-side business logic. This file implements
// AuthService, the session manager: registration, login, and one-time-use
// refresh-token rotation over the refresh-token ledger.
package services

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AvinashKhichar/mynotes/internal/common"
	"github.com/AvinashKhichar/mynotes/internal/dbx"
	"github.com/AvinashKhichar/mynotes/internal/server/config"
	"github.com/AvinashKhichar/mynotes/internal/server/models"
	"github.com/AvinashKhichar/mynotes/internal/server/repositories/repomanager"
)

// TokenCodec issues and validates the signed tokens the session manager
// hands out. Tokens are opaque strings to everything outside the codec.
type TokenCodec interface {
	IssueAccessToken(userID string) (string, error)
	IssueRefreshToken(userID string) (string, error)
	ParseRefreshToken(tokenString string) (string, error)
	RefreshTokenValidity() time.Duration
}

// CredentialHasher hashes and verifies passwords.
type CredentialHasher interface {
	Hash(password string) (string, error)
	Matches(password, digest string) bool
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint tokens
// - Refresh: rotate refresh tokens and mint new access tokens
//
// The refresh-token ledger stores only fingerprints of issued tokens, so the
// ledger alone can never be replayed as bearer credentials.
type AuthService struct {
	db               *sql.DB
	repomanager      repomanager.RepositoryManager
	codec            TokenCodec
	hasher           CredentialHasher
	maxTokensPerUser int
}

// NewAuthService constructs an AuthService using repositories, the token
// codec, the password hasher, and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, codec TokenCodec, hasher CredentialHasher, cfg *config.Config) *AuthService {
	return &AuthService{
		db:               db,
		repomanager:      m,
		codec:            codec,
		hasher:           hasher,
		maxTokensPerUser: cfg.RefreshTokenMaxPerUser,
	}
}

// Fingerprint returns the one-way digest under which a refresh token is
// stored in the ledger: base64 (standard encoding) of the SHA-256 of the raw
// token bytes.
func Fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// normalizeEmail trims and lowercases an email address. Applied on both
// registration and login so the two paths agree on identity.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with the given email and password. It returns
// common.ErrEmailAlreadyExists when the normalized email is taken.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrEmailAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{ID: uuid.NewString(), Email: email, HashedPassword: digest}

	u, err := repo.Create(ctx, user)
	if err != nil {
		// lost a race with a concurrent registration for the same email
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return u, nil
}

// Login verifies the email/password pair and, on success, returns a fresh
// TokenPair. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if !s.hasher.Matches(password, user.HashedPassword) {
		return nil, common.ErrInvalidCredentials
	}

	return s.generateTokenPair(ctx, user.ID, s.db)
}

// Refresh validates a refresh token, rotates it, and returns a fresh
// TokenPair. Validation and rotation run as one transaction: either the old
// fingerprint is deleted and the new one durably stored, or nothing changes.
//
// A structurally valid token that is absent from the ledger (already
// redeemed, revoked, or issued elsewhere) yields ErrTokenNotRecognised.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.codec.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	fingerprint := Fingerprint(refreshToken)

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).GetByID(ctx, userID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthorized
			}
			return fmt.Errorf("error loading user: %w", err)
		}

		ledger := s.repomanager.RefreshTokens(tx)

		token, err := ledger.Find(ctx, userID, fingerprint)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrTokenNotRecognised
			}
			return fmt.Errorf("error searching refresh token: %w", err)
		}
		if token.Expires.Before(time.Now()) {
			return common.ErrorUnauthorized
		}

		// one-time use: rotation is delete-then-issue
		deleted, err := ledger.Delete(ctx, userID, fingerprint)
		if err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		if !deleted {
			// a concurrent redemption of the same token won the race
			return common.ErrTokenNotRecognised
		}

		var genErr error
		pair, genErr = s.generateTokenPair(ctx, userID, tx)
		return genErr
	}); err != nil {
		return nil, err
	}

	return pair, nil
}

// generateTokenPair mints an access/refresh pair for userID and records the
// refresh token's fingerprint through the given DBTX.
func (s *AuthService) generateTokenPair(ctx context.Context, userID string, db dbx.DBTX) (*TokenPair, error) {
	access, err := s.codec.IssueAccessToken(userID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refresh, err := s.codec.IssueRefreshToken(userID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	if err := s.storeRefreshToken(ctx, db, userID, refresh); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// storeRefreshToken records the fingerprint of a freshly minted refresh
// token and, when a session cap is configured, prunes the user's oldest
// ledger rows beyond it.
func (s *AuthService) storeRefreshToken(ctx context.Context, db dbx.DBTX, userID, rawToken string) error {
	ledger := s.repomanager.RefreshTokens(db)

	expiresAt := time.Now().Add(s.codec.RefreshTokenValidity())
	if err := ledger.Create(ctx, userID, Fingerprint(rawToken), expiresAt); err != nil {
		return fmt.Errorf("error storing refresh token: %w", err)
	}

	if s.maxTokensPerUser > 0 {
		if err := ledger.PruneOldest(ctx, userID, s.maxTokensPerUser); err != nil {
			return fmt.Errorf("error pruning refresh tokens: %w", err)
		}
	}

	return nil
}

// SweepExpiredTokens deletes expired ledger rows. It is called periodically
// by the app so stale rows do not accumulate.
func (s *AuthService) SweepExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	return s.repomanager.RefreshTokens(s.db).DeleteExpired(ctx, now)
}
