package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saaprojects/setlist/internal/api/metrics"
	"github.com/saaprojects/setlist/internal/core/domain"
	"github.com/saaprojects/setlist/internal/core/ports"
)

// AuthHandler handles registration, login, logout, current-identity, and
// account deactivation.
type AuthHandler struct {
	registration ports.RegistrationService
	auth         ports.AuthService
	artists      ports.ArtistService
}

func NewAuthHandler(registration ports.RegistrationService, auth ports.AuthService, artists ports.ArtistService) *AuthHandler {
	return &AuthHandler{registration: registration, auth: auth, artists: artists}
}

// Register creates a new account and returns the initial token pair.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse "duplicate email or username"
// @Failure      422   {object}  errorResponse "missing/malformed fields or weak password"
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.registration.Register(c.Request().Context(), ports.RegisterInput{
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Role:        domain.Role(req.Role),
		Bio:         req.Bio,
		Genres:      req.Genres,
		Instruments: req.Instruments,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(result.Account.Role)).Inc()

	return c.JSON(http.StatusCreated, registerResponse{
		User:          result.Account,
		ArtistProfile: result.ArtistProfile,
		AccessToken:   result.AccessToken,
		RefreshToken:  result.RefreshToken,
	})
}

// Login authenticates by email or username plus password.
//
// @Summary      Login with email or username
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse "bad credentials or deactivated account"
// @Failure      422   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrAccountDeactivated) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		TokenType:    result.TokenType,
		User:         result.Account,
	})
}

// Me returns the authenticated account; artists get their profile fields merged in.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  currentIdentityResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var profile *domain.ArtistProfile
	if account.Role == domain.RoleArtist {
		profile, err = h.artists.GetProfile(c.Request().Context(), account)
		if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
			return err
		}
	}

	return c.JSON(http.StatusOK, newCurrentIdentityResponse(account, profile))
}

// Logout revokes the presented token. Tokens issued earlier remain valid
// until their natural expiry.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204  "token revoked"
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := ctxAccount(c); err != nil {
		return err
	}
	if err := h.auth.Logout(c.Request().Context(), ctxToken(c)); err != nil {
		return err
	}

	metrics.TokensRevokedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// DeactivateMe soft-deactivates the authenticated account.
//
// @Summary      Deactivate own account
// @Tags         auth
// @Security     BearerAuth
// @Success      204  "account deactivated"
// @Failure      401  {object}  errorResponse
// @Router       /users/me [delete]
func (h *AuthHandler) DeactivateMe(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}
	if err := h.auth.Deactivate(c.Request().Context(), account.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
