package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService(now time.Time) *HMACService {
	s := NewHMACService("lawjobs", "access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	s.now = func() time.Time { return now }
	return s
}

func TestHMACService_AccessAndRefresh(t *testing.T) {
	s := newTestService(time.Now())
	uid := uuid.New()

	access, err := s.GenerateAccessToken(uid, "student@example.edu")
	if err != nil {
		t.Fatalf("access: %v", err)
	}
	c, err := s.Validate(access, KindAccess)
	if err != nil {
		t.Fatalf("validate access: %v", err)
	}
	if c.UserID != uid || c.Email != "student@example.edu" || c.Kind != KindAccess {
		t.Fatalf("unexpected claims %+v", c)
	}

	refresh, err := s.GenerateRefreshToken(uid)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	rc, err := s.Validate(refresh, KindRefresh)
	if err != nil {
		t.Fatalf("validate refresh: %v", err)
	}
	if rc.UserID != uid || rc.Subject != uid.String() {
		t.Fatalf("unexpected refresh claims %+v", rc)
	}

	again, _ := s.GenerateRefreshToken(uid)
	if again == refresh {
		t.Fatalf("expected distinct refresh tokens")
	}
}

func TestHMACService_KindsAreNotInterchangeable(t *testing.T) {
	s := newTestService(time.Now())
	uid := uuid.New()

	access, _ := s.GenerateAccessToken(uid, "a@b.c")
	if _, err := s.Validate(access, KindRefresh); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("access token accepted as refresh: %v", err)
	}
	refresh, _ := s.GenerateRefreshToken(uid)
	if _, err := s.Validate(refresh, KindAccess); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("refresh token accepted as access: %v", err)
	}

	// Same secret for both kinds still keeps them apart by claim.
	shared := NewHMACService("lawjobs", "same", "same", time.Minute, time.Hour)
	refresh, _ = shared.GenerateRefreshToken(uid)
	if _, err := shared.Validate(refresh, KindAccess); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHMACService_Expired(t *testing.T) {
	s := newTestService(time.Now().Add(-time.Hour))
	tok, err := s.GenerateAccessToken(uuid.New(), "a@b.c")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	s.now = time.Now
	if _, err := s.Validate(tok, KindAccess); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_RejectsForeignTokens(t *testing.T) {
	now := time.Now()
	other := NewHMACService("lawjobs", "other", "other-refresh", time.Minute, time.Hour)
	tok, _ := other.GenerateAccessToken(uuid.New(), "x@y.z")

	if _, err := newTestService(now).Validate(tok, KindAccess); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}

	wrongIssuer := NewHMACService("someone-else", "access-secret", "refresh-secret", time.Minute, time.Hour)
	tok, _ = wrongIssuer.GenerateAccessToken(uuid.New(), "x@y.z")
	if _, err := newTestService(now).Validate(tok, KindAccess); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong issuer, got %v", err)
	}

	if _, err := newTestService(now).Validate("not-a-jwt", KindAccess); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for garbage, got %v", err)
	}
}

func TestHMACService_UnusableSigner(t *testing.T) {
	s := NewHMACService("", "", "refresh", time.Minute, time.Hour)
	if _, err := s.GenerateAccessToken(uuid.New(), ""); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := s.Validate("anything", Kind("id")); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for unknown kind, got %v", err)
	}
}
