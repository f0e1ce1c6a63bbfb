package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saaprojects/setlist/internal/api/metrics"
	"github.com/saaprojects/setlist/internal/core/domain"
	"github.com/saaprojects/setlist/internal/core/ports"
)

type createCollaborationRequest struct {
	TargetArtistID string `json:"target_artist_id" validate:"required"`
	Message        string `json:"message"          validate:"required,max=2000"`
	ProjectType    string `json:"project_type,omitempty"`
}

type listCollaborationsResponse struct {
	Collaborations []*domain.Collaboration `json:"collaborations"`
}

// CollaborationHandler handles the collaboration request lifecycle. All
// routes are artist-gated by the router.
type CollaborationHandler struct {
	collaborations ports.CollaborationService
}

func NewCollaborationHandler(collaborations ports.CollaborationService) *CollaborationHandler {
	return &CollaborationHandler{collaborations: collaborations}
}

// Create sends a collaboration request to another artist.
//
// @Summary      Send a collaboration request
// @Tags         collaborations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCollaborationRequest  true  "Request details"
// @Success      201   {object}  domain.Collaboration
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse "target is not an active artist"
// @Failure      409   {object}  errorResponse "a pending request for this pair already exists"
// @Router       /collaborations [post]
func (h *CollaborationHandler) Create(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req createCollaborationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.collaborations.Create(c.Request().Context(), account, ports.CreateCollaborationInput{
		TargetArtistID: req.TargetArtistID,
		Message:        req.Message,
		ProjectType:    req.ProjectType,
	})
	if err != nil {
		if err == domain.ErrDuplicatePendingCollaboration {
			metrics.CollaborationEventsTotal.WithLabelValues("duplicate_pending").Inc()
		}
		return err
	}

	metrics.CollaborationEventsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, created)
}

// Accept resolves a pending request addressed to the authenticated artist.
//
// @Summary      Accept a collaboration request
// @Tags         collaborations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Collaboration id"
// @Success      200  {object}  domain.Collaboration
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse "not the target of this request"
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse "request is no longer pending"
// @Router       /collaborations/{id}/accept [post]
func (h *CollaborationHandler) Accept(c echo.Context) error {
	return h.resolve(c, domain.CollaborationAccepted)
}

// Decline resolves a pending request addressed to the authenticated artist.
//
// @Summary      Decline a collaboration request
// @Tags         collaborations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Collaboration id"
// @Success      200  {object}  domain.Collaboration
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse "not the target of this request"
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse "request is no longer pending"
// @Router       /collaborations/{id}/decline [post]
func (h *CollaborationHandler) Decline(c echo.Context) error {
	return h.resolve(c, domain.CollaborationDeclined)
}

func (h *CollaborationHandler) resolve(c echo.Context, to domain.CollaborationStatus) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var resolved *domain.Collaboration
	if to == domain.CollaborationAccepted {
		resolved, err = h.collaborations.Accept(c.Request().Context(), account, c.Param("id"))
	} else {
		resolved, err = h.collaborations.Decline(c.Request().Context(), account, c.Param("id"))
	}
	if err != nil {
		return err
	}

	metrics.CollaborationEventsTotal.WithLabelValues(string(to)).Inc()
	return c.JSON(http.StatusOK, resolved)
}

// List returns the authenticated artist's requests, sent and received.
//
// @Summary      List own collaboration requests
// @Tags         collaborations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listCollaborationsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /collaborations [get]
func (h *CollaborationHandler) List(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	list, err := h.collaborations.ListForAccount(c.Request().Context(), account)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Collaboration{}
	}
	return c.JSON(http.StatusOK, listCollaborationsResponse{Collaborations: list})
}
