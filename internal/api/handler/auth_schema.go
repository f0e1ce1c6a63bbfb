package handler

import (
	"time"

	"github.com/saaprojects/setlist/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Username    string `json:"username"     validate:"required,min=3,max=50"`
	Password    string `json:"password"     validate:"required"`
	DisplayName string `json:"display_name" validate:"required,max=100"`
	Role        string `json:"role"         validate:"required,oneof=user artist promoter venue"`

	// Artist-only seed fields, ignored for other roles.
	Bio         string   `json:"bio,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Instruments []string `json:"instruments,omitempty"`
}

type loginRequest struct {
	// Identifier is either the account's email or its username.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

// --- Response types ---

type registerResponse struct {
	User          *domain.Account       `json:"user"`
	ArtistProfile *domain.ArtistProfile `json:"artist_profile,omitempty"`
	AccessToken   string                `json:"access_token"`
	RefreshToken  string                `json:"refresh_token"`
}

type loginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	User         *domain.Account `json:"user"`
}

// currentIdentityResponse is the /auth/me payload: the account plus, for
// artists, their profile fields merged in.
type currentIdentityResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Active      bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Bio         *string   `json:"bio,omitempty"`
	Genres      *[]string `json:"genres,omitempty"`
	Instruments *[]string `json:"instruments,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Website     *string   `json:"website,omitempty"`
}

func newCurrentIdentityResponse(account *domain.Account, profile *domain.ArtistProfile) currentIdentityResponse {
	resp := currentIdentityResponse{
		ID:          account.ID,
		Email:       account.Email,
		Username:    account.Username,
		DisplayName: account.DisplayName,
		Role:        string(account.Role),
		Active:      account.Active,
		CreatedAt:   account.CreatedAt,
		UpdatedAt:   account.UpdatedAt,
	}
	if profile != nil {
		resp.Bio = &profile.Bio
		resp.Genres = &profile.Genres
		resp.Instruments = &profile.Instruments
		resp.Location = &profile.Location
		resp.Website = &profile.Website
	}
	return resp
}
