package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/saaprojects/setlist/internal/core/domain"
	"github.com/saaprojects/setlist/internal/core/ports"
)

type stubAccountRepo struct {
	accounts map[string]*domain.Account
	profiles map[string]*domain.ArtistProfile
	nextID   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{
		accounts: make(map[string]*domain.Account),
		profiles: make(map[string]*domain.ArtistProfile),
	}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return nil, domain.ErrDuplicateEmail
		}
		if a.Username == account.Username {
			return nil, domain.ErrDuplicateUsername
		}
	}
	copy := cloneAccount(account)
	r.nextID++
	copy.ID = fmt.Sprintf("acc-%d", r.nextID)
	r.accounts[copy.ID] = cloneAccount(copy)
	return cloneAccount(copy), nil
}

func (r *stubAccountRepo) CreateArtist(ctx context.Context, account *domain.Account, profile *domain.ArtistProfile) (*domain.Account, *domain.ArtistProfile, error) {
	created, err := r.Create(ctx, account)
	if err != nil {
		return nil, nil, err
	}
	p := *profile
	p.ID = "prof-" + created.ID
	p.AccountID = created.ID
	r.profiles[created.ID] = &p
	clone := p
	return created, &clone, nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	if a, ok := r.accounts[id]; ok {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Username == username {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByIdentifier(ctx context.Context, identifier string) (*domain.Account, error) {
	if a, err := r.FindByEmail(ctx, identifier); err == nil {
		return a, nil
	}
	return r.FindByUsername(ctx, identifier)
}

func (r *stubAccountRepo) Deactivate(_ context.Context, id string) error {
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Active = false
	return nil
}

type stubRevoker struct {
	revoked map[string]bool
	err     error
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]bool)}
}

func (r *stubRevoker) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	if r.err != nil {
		return r.err
	}
	r.revoked[tokenID] = true
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return r.revoked[tokenID], nil
}

func newTestAuthService(repo *stubAccountRepo, revoker TokenRevoker) *AuthService {
	tokens := NewTokenService("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(repo, tokens, revoker, zerolog.Nop())
}

func registerAccount(t *testing.T, repo *stubAccountRepo, username, password string, role domain.Role) *domain.Account {
	t.Helper()
	reg := NewRegistrationService(repo, NewTokenService("test-secret", time.Hour, 24*time.Hour), zerolog.Nop())
	res, err := reg.Register(context.Background(), ports.RegisterInput{
		Email:       username + "@example.com",
		Username:    username,
		Password:    password,
		DisplayName: username,
		Role:        role,
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return res.Account
}

func TestAuthenticateByPassword_Success(t *testing.T) {
	repo := newStubAccountRepo()
	registerAccount(t, repo, "alice", "longenough1", domain.RoleArtist)
	svc := newTestAuthService(repo, newStubRevoker())

	account, err := svc.AuthenticateByPassword(context.Background(), "alice", "longenough1")
	if err != nil {
		t.Fatalf("authenticate by username failed: %v", err)
	}
	if account.Username != "alice" || account.Role != domain.RoleArtist {
		t.Fatalf("unexpected account: %+v", account)
	}

	if _, err := svc.AuthenticateByPassword(context.Background(), "alice@example.com", "longenough1"); err != nil {
		t.Fatalf("authenticate by email failed: %v", err)
	}
}

func TestAuthenticateByPassword_EnumerationResistance(t *testing.T) {
	repo := newStubAccountRepo()
	registerAccount(t, repo, "bob", "longenough1", domain.RoleUser)
	svc := newTestAuthService(repo, newStubRevoker())

	_, unknownErr := svc.AuthenticateByPassword(context.Background(), "ghost", "whatever1")
	_, wrongErr := svc.AuthenticateByPassword(context.Background(), "bob", "wrongpass1")

	if unknownErr != domain.ErrInvalidCredentials {
		t.Fatalf("unknown identity: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if wrongErr != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongErr)
	}
}

func TestAuthenticateByPassword_Deactivated(t *testing.T) {
	repo := newStubAccountRepo()
	account := registerAccount(t, repo, "carol", "longenough1", domain.RoleUser)
	if err := repo.Deactivate(context.Background(), account.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	svc := newTestAuthService(repo, newStubRevoker())

	// Correct password reveals the deactivation.
	if _, err := svc.AuthenticateByPassword(context.Background(), "carol", "longenough1"); err != domain.ErrAccountDeactivated {
		t.Fatalf("expected ErrAccountDeactivated, got %v", err)
	}

	// Wrong password must not: the credential check comes first.
	if _, err := svc.AuthenticateByPassword(context.Background(), "carol", "wrongpass1"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_ReturnsTokenPair(t *testing.T) {
	repo := newStubAccountRepo()
	registerAccount(t, repo, "dave", "longenough1", domain.RoleUser)
	svc := newTestAuthService(repo, newStubRevoker())

	res, err := svc.Login(context.Background(), "dave", "longenough1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", res)
	}
	if res.AccessToken == res.RefreshToken {
		t.Fatalf("access and refresh tokens must differ")
	}
	if res.TokenType != "bearer" {
		t.Fatalf("unexpected token type: %s", res.TokenType)
	}

	account, err := svc.AuthenticateByToken(context.Background(), res.AccessToken)
	if err != nil {
		t.Fatalf("access token rejected: %v", err)
	}
	if account.Username != "dave" {
		t.Fatalf("unexpected subject: %s", account.Username)
	}
}

func TestAuthenticateByToken_DeactivatedSubject(t *testing.T) {
	repo := newStubAccountRepo()
	account := registerAccount(t, repo, "erin", "longenough1", domain.RoleUser)
	svc := newTestAuthService(repo, newStubRevoker())

	res, err := svc.Login(context.Background(), "erin", "longenough1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := svc.Deactivate(context.Background(), account.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, err := svc.AuthenticateByToken(context.Background(), res.AccessToken); err != domain.ErrAccountDeactivated {
		t.Fatalf("expected ErrAccountDeactivated, got %v", err)
	}
}

func TestLogout_RevokesPresentedToken(t *testing.T) {
	repo := newStubAccountRepo()
	registerAccount(t, repo, "frank", "longenough1", domain.RoleUser)
	revoker := newStubRevoker()
	svc := newTestAuthService(repo, revoker)

	first, err := svc.Login(context.Background(), "frank", "longenough1")
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	second, err := svc.Login(context.Background(), "frank", "longenough1")
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), first.AccessToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if _, err := svc.AuthenticateByToken(context.Background(), first.AccessToken); err != domain.ErrTokenRevoked {
		t.Fatalf("expected ErrTokenRevoked, got %v", err)
	}

	// Revocation is per token, not per account.
	if _, err := svc.AuthenticateByToken(context.Background(), second.AccessToken); err != nil {
		t.Fatalf("unrelated token rejected: %v", err)
	}
}

func TestAuthenticateByToken_RevokerOutage(t *testing.T) {
	repo := newStubAccountRepo()
	registerAccount(t, repo, "grace", "longenough1", domain.RoleUser)
	revoker := newStubRevoker()
	svc := newTestAuthService(repo, revoker)

	res, err := svc.Login(context.Background(), "grace", "longenough1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// A deny-list outage must not reject otherwise valid tokens.
	revoker.err = errors.New("connection refused")
	if _, err := svc.AuthenticateByToken(context.Background(), res.AccessToken); err != nil {
		t.Fatalf("expected token to be accepted during outage, got %v", err)
	}
}

func TestRequireRole_ExactMatch(t *testing.T) {
	artist := &domain.Account{ID: "a1", Role: domain.RoleArtist}

	if _, err := RequireRole(artist, domain.RoleArtist); err != nil {
		t.Fatalf("matching role rejected: %v", err)
	}
	if _, err := RequireRole(artist, domain.RolePromoter); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := RequireRole(nil, domain.RoleArtist); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for nil account, got %v", err)
	}
}
