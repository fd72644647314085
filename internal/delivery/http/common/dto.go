package http_common

import (
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/moviematch/internal/model"
)

type UserDTO struct {
	ID         uuid.UUID `json:"id"`
	TelegramID int64     `json:"telegram_id" example:"111"`
	Username   string    `json:"username,omitempty" example:"kinoman"`
	FirstName  string    `json:"first_name" example:"Иван"`
	LastActive time.Time `json:"last_active"`
}

func FromUser(u model.User) UserDTO {
	return UserDTO{
		ID:         u.ID,
		TelegramID: int64(u.TelegramID),
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastActive: u.LastActive,
	}
}

type MovieDTO struct {
	ID            uuid.UUID `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	KinopoiskID   int       `json:"kinopoisk_id" example:"258687"`
	Title         string    `json:"title" example:"Интерстеллар"`
	TitleOriginal string    `json:"title_original,omitempty" example:"Interstellar"`
	Year          int       `json:"year" example:"2014"`
	Genre         string    `json:"genre" example:"фантастика, драма"`
	PosterURL     string    `json:"poster_url" example:"https://example.com/poster.jpg"`
	Description   string    `json:"description,omitempty"`
	Rating        float64   `json:"rating,omitempty" example:"8.6"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromMovie(mm model.MovieMeta) MovieDTO {
	return MovieDTO{
		ID:            mm.ID,
		KinopoiskID:   mm.KinopoiskID,
		Title:         mm.Title,
		TitleOriginal: mm.TitleOriginal,
		Year:          mm.Year,
		Genre:         mm.Genre,
		PosterURL:     mm.PosterLink,
		Description:   mm.Description,
		Rating:        mm.Rating,
		IsActive:      mm.IsActive,
		CreatedAt:     mm.CreatedAt,
	}
}

type MatchDTO struct {
	ID                uuid.UUID `json:"id"`
	MovieID           uuid.UUID `json:"movie_id"`
	MatchedAt         time.Time `json:"matched_at"`
	IsNotified        bool      `json:"is_notified"`
	GroupParticipants []int64   `json:"group_participants" example:"111,222,333"`
	Movie             *MovieDTO `json:"movie,omitempty"`
}

func FromMatch(m model.Match) MatchDTO {
	return MatchDTO{
		ID:                m.ID,
		MovieID:           m.MovieID,
		MatchedAt:         m.MatchedAt,
		IsNotified:        m.Notified,
		GroupParticipants: m.Participants.Int64s(),
	}
}

func FromMatches(matches []model.Match) []MatchDTO {
	out := make([]MatchDTO, len(matches))
	for i, m := range matches {
		out[i] = FromMatch(m)
	}
	return out
}

func ToUserIDs(ids []int64) []model.UserID {
	out := make([]model.UserID, len(ids))
	for i, id := range ids {
		out[i] = model.UserID(id)
	}
	return out
}
