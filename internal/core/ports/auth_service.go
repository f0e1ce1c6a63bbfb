package ports

import (
	"context"

	"github.com/saaprojects/setlist/internal/core/domain"
)

// RegisterInput carries all data needed to register a new account. The
// artist-only fields seed the companion profile and are ignored for every
// other role.
type RegisterInput struct {
	Email       string
	Username    string
	Password    string
	DisplayName string
	Role        domain.Role

	Bio         string
	Genres      []string
	Instruments []string
}

// RegistrationResult is returned after a successful registration.
// ArtistProfile is nil unless the account was registered with the artist role.
type RegistrationResult struct {
	Account       *domain.Account
	ArtistProfile *domain.ArtistProfile
	AccessToken   string
	RefreshToken  string
}

// RegistrationService creates accounts, their role-dependent profile records,
// and the initial token pair as one workflow.
type RegistrationService interface {
	Register(ctx context.Context, in RegisterInput) (*RegistrationResult, error)
}

// LoginResult is returned after successful password authentication.
type LoginResult struct {
	Account      *domain.Account
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// AuthService verifies credentials and bearer tokens against the identity store.
type AuthService interface {
	// AuthenticateByPassword resolves identifier (email or username) and
	// checks the password. Unknown identity and wrong password are
	// deliberately indistinguishable (domain.ErrInvalidCredentials);
	// domain.ErrAccountDeactivated is reported only after the credential
	// itself verifies.
	AuthenticateByPassword(ctx context.Context, identifier, password string) (*domain.Account, error)

	// AuthenticateByToken verifies the bearer token and resolves its subject
	// to an account.
	AuthenticateByToken(ctx context.Context, token string) (*domain.Account, error)

	// Login authenticates by password and mints a fresh token pair.
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)

	// Logout revokes the presented token for the remainder of its lifetime.
	Logout(ctx context.Context, token string) error

	// Deactivate clears the account's active flag; subsequent logins and
	// token authentications are rejected.
	Deactivate(ctx context.Context, accountID string) error
}
