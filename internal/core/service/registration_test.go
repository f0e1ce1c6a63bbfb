package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/saaprojects/setlist/internal/core/domain"
	"github.com/saaprojects/setlist/internal/core/ports"
)

func newTestRegistrationService(repo *stubAccountRepo) *RegistrationService {
	tokens := NewTokenService("test-secret", time.Hour, 24*time.Hour)
	return NewRegistrationService(repo, tokens, zerolog.Nop())
}

func TestRegister_User(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestRegistrationService(repo)

	res, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:       "Alice@Example.com",
		Username:    "alice",
		Password:    "longenough1",
		DisplayName: "Alice",
		Role:        domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if res.Account.ID == "" {
		t.Fatalf("expected an assigned id")
	}
	if res.Account.Email != "alice@example.com" {
		t.Fatalf("email not normalised: %s", res.Account.Email)
	}
	if !res.Account.Active {
		t.Fatalf("new accounts must start active")
	}
	if res.Account.PasswordHash == "longenough1" || !CheckPassword("longenough1", res.Account.PasswordHash) {
		t.Fatalf("password not hashed correctly")
	}
	if res.ArtistProfile != nil {
		t.Fatalf("non-artist registration must not create a profile")
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Fatalf("expected an initial token pair")
	}
}

func TestRegister_ArtistCreatesProfile(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestRegistrationService(repo)

	res, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:       "mina@example.com",
		Username:    "mina",
		Password:    "longenough1",
		DisplayName: "Mina",
		Role:        domain.RoleArtist,
		Bio:         "session drummer",
		Genres:      []string{"jazz", "funk"},
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if res.ArtistProfile == nil {
		t.Fatalf("artist registration must create a profile")
	}
	if res.ArtistProfile.AccountID != res.Account.ID {
		t.Fatalf("profile not linked to account: %+v", res.ArtistProfile)
	}
	if res.ArtistProfile.Bio != "session drummer" || len(res.ArtistProfile.Genres) != 2 {
		t.Fatalf("profile not seeded from input: %+v", res.ArtistProfile)
	}
}

func TestRegister_WeakPassword(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestRegistrationService(repo)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "short@example.com",
		Username: "short",
		Password: "seven77",
		Role:     domain.RoleUser,
	})
	if err != domain.ErrWeakPassword {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if len(repo.accounts) != 0 {
		t.Fatalf("rejected registration must not persist anything")
	}
}

func TestRegister_InvalidRole(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestRegistrationService(repo)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "x@example.com",
		Username: "x",
		Password: "longenough1",
		Role:     domain.Role("admin"),
	})
	if err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestRegister_Duplicates(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestRegistrationService(repo)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "bob@example.com",
		Username: "bob",
		Password: "longenough1",
		Role:     domain.RoleUser,
	}); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	// Same email, different username.
	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "bob@example.com",
		Username: "robert",
		Password: "longenough1",
		Role:     domain.RoleUser,
	}); err != domain.ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// Different email, same username.
	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "other@example.com",
		Username: "bob",
		Password: "longenough1",
		Role:     domain.RoleUser,
	}); err != domain.ErrDuplicateUsername {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	// Case-insensitive email match.
	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "BOB@example.com",
		Username: "bobby",
		Password: "longenough1",
		Role:     domain.RoleUser,
	}); err != domain.ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail for upper-cased email, got %v", err)
	}

	if len(repo.accounts) != 1 {
		t.Fatalf("expected exactly one stored account, got %d", len(repo.accounts))
	}
}

func TestRegister_PasswordCheckedBeforeUniqueness(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestRegistrationService(repo)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "carol@example.com",
		Username: "carol",
		Password: "longenough1",
		Role:     domain.RoleUser,
	}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	// Weak password and duplicate email at once: the password policy wins.
	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "carol@example.com",
		Username: "carol",
		Password: "short",
		Role:     domain.RoleUser,
	}); err != domain.ErrWeakPassword {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}
