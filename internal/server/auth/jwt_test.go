package auth

import (
	"testing"
	"time"

	"github.com/AvinashKhichar/mynotes/internal/common"
)

func newTestCodec() *Codec {
	return NewCodec([]byte("super-secret"), time.Hour, 24*time.Hour)
}

func TestIssueAndParse_Success(t *testing.T) {
	t.Parallel()

	c := newTestCodec()
	userID := "user-123"

	access, err := c.IssueAccessToken(userID)
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}
	refresh, err := c.IssueRefreshToken(userID)
	if err != nil {
		t.Fatalf("IssueRefreshToken error: %v", err)
	}

	gotUserID, err := c.ParseAccessToken(access)
	if err != nil {
		t.Fatalf("ParseAccessToken error: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %q want %q", gotUserID, userID)
	}

	gotUserID, err = c.ParseRefreshToken(refresh)
	if err != nil {
		t.Fatalf("ParseRefreshToken error: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %q want %q", gotUserID, userID)
	}
}

func TestParse_RejectsWrongTokenType(t *testing.T) {
	t.Parallel()

	c := newTestCodec()

	access, err := c.IssueAccessToken("u1")
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}

	if _, err := c.ParseRefreshToken(access); err != common.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for access token used as refresh, got %v", err)
	}

	refresh, err := c.IssueRefreshToken("u1")
	if err != nil {
		t.Fatalf("IssueRefreshToken error: %v", err)
	}

	if _, err := c.ParseAccessToken(refresh); err != common.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for refresh token used as access, got %v", err)
	}
}

func TestParseRefreshToken_Expired(t *testing.T) {
	t.Parallel()

	c := NewCodec([]byte("secret"), time.Hour, -1*time.Second)

	tok, err := c.IssueRefreshToken("u1")
	if err != nil {
		t.Fatalf("IssueRefreshToken error: %v", err)
	}

	if _, err := c.ParseRefreshToken(tok); err != common.ErrTokenExpired {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestParseRefreshToken_WrongSecret(t *testing.T) {
	t.Parallel()

	c := newTestCodec()
	tok, err := c.IssueRefreshToken("u2")
	if err != nil {
		t.Fatalf("IssueRefreshToken error: %v", err)
	}

	other := NewCodec([]byte("wrong-secret"), time.Hour, 24*time.Hour)
	if _, err := other.ParseRefreshToken(tok); err != common.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestParseRefreshToken_Malformed(t *testing.T) {
	t.Parallel()

	c := newTestCodec()
	if _, err := c.ParseRefreshToken("not.a.jwt"); err != common.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestIssueRefreshToken_DistinctWithinSameSecond(t *testing.T) {
	t.Parallel()

	c := newTestCodec()
	a, err := c.IssueRefreshToken("u1")
	if err != nil {
		t.Fatalf("IssueRefreshToken error: %v", err)
	}
	b, err := c.IssueRefreshToken("u1")
	if err != nil {
		t.Fatalf("IssueRefreshToken error: %v", err)
	}
	if a == b {
		t.Fatalf("two refresh tokens minted back to back must differ")
	}
}
