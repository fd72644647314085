package infra_postgres_movie

import (
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/moviematch/internal/model"
)

type MovieDB struct {
	ID            uuid.UUID `db:"id"`
	KinopoiskID   int       `db:"kinopoisk_id"`
	Title         string    `db:"title"`
	TitleOriginal string    `db:"title_original"`
	Year          int       `db:"year"`
	Genre         string    `db:"genre"`
	PosterLink    string    `db:"poster_link"`
	Description   string    `db:"description"`
	Rating        float64   `db:"rating"`
	IsActive      bool      `db:"is_active"`
	CreatedAt     time.Time `db:"created_at"`
}

func (m *MovieDB) ToDomain() model.MovieMeta {
	return model.MovieMeta{
		ID:            m.ID,
		KinopoiskID:   m.KinopoiskID,
		Title:         m.Title,
		TitleOriginal: m.TitleOriginal,
		Year:          m.Year,
		Genre:         m.Genre,
		PosterLink:    m.PosterLink,
		Description:   m.Description,
		Rating:        m.Rating,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
	}
}

func FromDomain(mm model.MovieMeta) MovieDB {
	return MovieDB{
		ID:            mm.ID,
		KinopoiskID:   mm.KinopoiskID,
		Title:         mm.Title,
		TitleOriginal: mm.TitleOriginal,
		Year:          mm.Year,
		Genre:         mm.Genre,
		PosterLink:    mm.PosterLink,
		Description:   mm.Description,
		Rating:        mm.Rating,
		IsActive:      mm.IsActive,
		CreatedAt:     mm.CreatedAt,
	}
}

func toDomainSlice(rows []MovieDB) []model.MovieMeta {
	movies := make([]model.MovieMeta, len(rows))
	for i := range rows {
		movies[i] = rows[i].ToDomain()
	}
	return movies
}
