package handler

import (
	"time"

	"github.com/saaprojects/setlist/internal/core/domain"
	"github.com/saaprojects/setlist/internal/core/ports"
)

// updateProfileRequest is a presence-aware patch: a field absent from the
// request body stays nil here and leaves the stored value unchanged.
type updateProfileRequest struct {
	Bio         *string   `json:"bio"`
	Genres      *[]string `json:"genres"`
	Instruments *[]string `json:"instruments"`
	Location    *string   `json:"location"`
	Website     *string   `json:"website" validate:"omitempty"`
}

func (r updateProfileRequest) toPatch() domain.ProfilePatch {
	return domain.ProfilePatch{
		Bio:         r.Bio,
		Genres:      r.Genres,
		Instruments: r.Instruments,
		Location:    r.Location,
		Website:     r.Website,
	}
}

// artistSummaryResponse is the item shape in search results.
type artistSummaryResponse struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	Genres      []string  `json:"genres"`
	Instruments []string  `json:"instruments"`
	Location    string    `json:"location"`
	Website     string    `json:"website"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newArtistSummaryResponse(row ports.ArtistSearchRow) artistSummaryResponse {
	return artistSummaryResponse{
		ID:          row.Profile.ID,
		AccountID:   row.Profile.AccountID,
		Username:    row.Username,
		DisplayName: row.DisplayName,
		Bio:         row.Profile.Bio,
		Genres:      row.Profile.Genres,
		Instruments: row.Profile.Instruments,
		Location:    row.Profile.Location,
		Website:     row.Profile.Website,
		CreatedAt:   row.Profile.CreatedAt,
		UpdatedAt:   row.Profile.UpdatedAt,
	}
}

type paginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

type searchArtistsResponse struct {
	Artists    []artistSummaryResponse `json:"artists"`
	Pagination paginationResponse      `json:"pagination"`
}
