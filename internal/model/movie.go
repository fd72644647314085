package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type MovieMeta struct {
	ID            uuid.UUID
	KinopoiskID   int
	Title         string
	TitleOriginal string
	Year          int
	Genre         string
	PosterLink    string
	Description   string
	Rating        float64
	IsActive      bool
	CreatedAt     time.Time
}

// Incomplete reports entries imported without a usable poster or description.
func (m MovieMeta) Incomplete() bool {
	return !strings.HasPrefix(m.PosterLink, "http") || m.Description == ""
}

type Poster struct {
	MovieID     uuid.UUID
	Filename    string
	ContentType string
	Content     []byte
}
