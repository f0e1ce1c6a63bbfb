package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/saaprojects/setlist/internal/core/domain"
	"github.com/saaprojects/setlist/internal/core/ports"
)

// ArtistHandler handles artist profile reads, partial updates, picture
// upload/serving, and public discovery.
type ArtistHandler struct {
	artists ports.ArtistService
}

func NewArtistHandler(artists ports.ArtistService) *ArtistHandler {
	return &ArtistHandler{artists: artists}
}

// GetProfile returns the authenticated artist's own profile.
//
// @Summary      Get own artist profile
// @Tags         artists
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.ArtistProfile
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /artists/me [get]
func (h *ArtistHandler) GetProfile(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	profile, err := h.artists.GetProfile(c.Request().Context(), account)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile applies a partial update to the authenticated artist's profile.
// Only fields present in the body are written.
//
// @Summary      Update own artist profile
// @Tags         artists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  domain.ArtistProfile
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /artists/me [put]
func (h *ArtistHandler) UpdateProfile(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	profile, err := h.artists.UpdateProfile(c.Request().Context(), account, req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UploadPicture stores the authenticated artist's profile picture.
//
// @Summary      Upload profile picture
// @Tags         artists
// @Accept       mpfd
// @Security     BearerAuth
// @Param        picture  formData  file  true  "Image file, at most 5 MiB"
// @Success      204      "picture stored"
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Router       /artists/me/picture [post]
func (h *ArtistHandler) UploadPicture(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "picture file is required")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read picture file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read picture file")
	}

	pic := domain.ProfilePicture{
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}
	if err := h.artists.SetPicture(c.Request().Context(), account, pic); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetPicture serves the named artist's profile picture.
//
// @Summary      Get an artist's profile picture
// @Tags         artists
// @Produce      octet-stream
// @Param        username  path  string  true  "Artist username"
// @Success      200  "image payload"
// @Failure      404  {object}  errorResponse
// @Router       /artists/{username}/picture [get]
func (h *ArtistHandler) GetPicture(c echo.Context) error {
	pic, err := h.artists.GetPictureByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, pic.ContentType, pic.Data)
}

// Search performs public artist discovery by genre, location, or instrument.
//
// @Summary      Search artists
// @Tags         artists
// @Produce      json
// @Param        genre       query  string  false  "Genre tag"
// @Param        location    query  string  false  "Partial location match"
// @Param        instrument  query  string  false  "Instrument tag"
// @Param        page        query  int     false  "Page (1-based)"
// @Param        limit       query  int     false  "Page size (max 100)"
// @Success      200  {object}  searchArtistsResponse
// @Router       /artists [get]
func (h *ArtistHandler) Search(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.artists.Search(c.Request().Context(), ports.SearchArtistsFilter{
		Genre:      c.QueryParam("genre"),
		Location:   c.QueryParam("location"),
		Instrument: c.QueryParam("instrument"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return err
	}

	artists := make([]artistSummaryResponse, 0, len(result.Artists))
	for _, row := range result.Artists {
		artists = append(artists, newArtistSummaryResponse(row))
	}

	totalPages := (result.Total + int64(result.Limit) - 1) / int64(result.Limit)
	return c.JSON(http.StatusOK, searchArtistsResponse{
		Artists: artists,
		Pagination: paginationResponse{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: totalPages,
		},
	})
}
