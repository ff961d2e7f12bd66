package store

import (
	"errors"
	"testing"

	"github.com/shahidarif12/AstraCommand/internal/auth"
)

func TestEnsureAdmin_SeedsOnce(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.EnsureAdmin("admin", "first"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	// A second ensure must not overwrite the existing credentials.
	if err := s.EnsureAdmin("admin", "second"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}

	admin, err := s.GetAdmin("admin")
	if err != nil {
		t.Fatalf("GetAdmin: %v", err)
	}
	if !auth.CheckPassword(admin.PasswordHash, "first") {
		t.Fatalf("original password must still verify")
	}
	if auth.CheckPassword(admin.PasswordHash, "second") {
		t.Fatalf("second password must not verify")
	}
}

func TestGetAdmin_Unknown(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.GetAdmin("nobody"); !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
}
