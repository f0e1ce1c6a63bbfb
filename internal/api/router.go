package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/saaprojects/setlist/docs"
	"github.com/saaprojects/setlist/internal/api/handler"
	"github.com/saaprojects/setlist/internal/api/middleware"
	"github.com/saaprojects/setlist/internal/core/domain"
	"github.com/saaprojects/setlist/internal/core/ports"
)

// Services groups the application services the router exposes over HTTP.
type Services struct {
	Registration   ports.RegistrationService
	Auth           ports.AuthService
	Artists        ports.ArtistService
	Collaborations ports.CollaborationService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("setlist"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Registration, svc.Auth, svc.Artists)
	artistHandler := handler.NewArtistHandler(svc.Artists)
	collabHandler := handler.NewCollaborationHandler(svc.Collaborations)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authn := middleware.Auth(svc.Auth)
	artistOnly := middleware.RequireRole(domain.RoleArtist)

	v1 := e.Group("/api/v1")

	// --- Auth ---
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authn)
	auth.GET("/me", authHandler.Me, authn)

	// --- Users ---
	v1.DELETE("/users/me", authHandler.DeactivateMe, authn)

	// --- Artists ---
	artists := v1.Group("/artists")
	artists.GET("", artistHandler.Search)
	artists.GET("/me", artistHandler.GetProfile, authn, artistOnly)
	artists.PUT("/me", artistHandler.UpdateProfile, authn, artistOnly)
	artists.POST("/me/picture", artistHandler.UploadPicture, authn, artistOnly)
	artists.GET("/:username/picture", artistHandler.GetPicture)

	// --- Collaborations (artist only) ---
	collabs := v1.Group("/collaborations", authn, artistOnly)
	collabs.POST("", collabHandler.Create)
	collabs.GET("", collabHandler.List)
	collabs.POST("/:id/accept", collabHandler.Accept)
	collabs.POST("/:id/decline", collabHandler.Decline)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness)     // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
