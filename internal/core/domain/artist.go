package domain

import (
	"errors"
	"time"
)

var ErrProfileNotFound = errors.New("artist profile not found")

// ArtistProfile is the 1:1 extension of an artist account. Every field except
// the owning account id is optional and independently updatable.
type ArtistProfile struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	Bio         string    `json:"bio"`
	Genres      []string  `json:"genres"`
	Instruments []string  `json:"instruments"`
	Location    string    `json:"location"`
	Website     string    `json:"website"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfilePatch carries a partial profile update. A nil field leaves the stored
// value unchanged; only non-nil fields are written.
type ProfilePatch struct {
	Bio         *string
	Genres      *[]string
	Instruments *[]string
	Location    *string
	Website     *string
}

// Empty reports whether the patch carries no changes at all.
func (p ProfilePatch) Empty() bool {
	return p.Bio == nil && p.Genres == nil && p.Instruments == nil &&
		p.Location == nil && p.Website == nil
}

// ProfilePicture is the stored binary payload plus its declared content type.
type ProfilePicture struct {
	ContentType string
	Data        []byte
}
