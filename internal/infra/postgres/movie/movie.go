package infra_postgres_movie

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/humanbelnik/moviematch/internal/model"
	usecase_movie "github.com/humanbelnik/moviematch/internal/usecase/movie"
	"github.com/jmoiron/sqlx"
)

const movieColumns = `id, kinopoisk_id, title, title_original, year, genre, poster_link, description, rating, is_active, created_at`

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ByID(ctx context.Context, id uuid.UUID) (model.MovieMeta, error) {
	return r.get(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id)
}

func (r *Repository) ByKinopoiskID(ctx context.Context, kinopoiskID int) (model.MovieMeta, error) {
	return r.get(ctx, `SELECT `+movieColumns+` FROM movies WHERE kinopoisk_id = $1`, kinopoiskID)
}

func (r *Repository) Random(ctx context.Context) (model.MovieMeta, error) {
	return r.get(ctx, `SELECT `+movieColumns+` FROM movies WHERE is_active ORDER BY random() LIMIT 1`)
}

func (r *Repository) get(ctx context.Context, query string, args ...any) (model.MovieMeta, error) {
	var movieDB MovieDB
	if err := r.db.GetContext(ctx, &movieDB, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.MovieMeta{}, usecase_movie.ErrMovieNotFound
		}
		return model.MovieMeta{}, fmt.Errorf("failed to load movie: %w", err)
	}
	return movieDB.ToDomain(), nil
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]model.MovieMeta, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var moviesDB []MovieDB
	if err := r.db.SelectContext(ctx, &moviesDB, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	return toDomainSlice(moviesDB), nil
}

func (r *Repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM movies WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("failed to check movie: %w", err)
	}
	return exists, nil
}

func (r *Repository) Store(ctx context.Context, mm model.MovieMeta) (bool, error) {
	query := `
		INSERT INTO movies (` + movieColumns + `)
		VALUES (:id, :kinopoisk_id, :title, :title_original, :year, :genre, :poster_link,
			:description, :rating, :is_active, :created_at)
		ON CONFLICT (kinopoisk_id) DO NOTHING
	`

	result, err := r.db.NamedExecContext(ctx, query, FromDomain(mm))
	if err != nil {
		return false, fmt.Errorf("failed to store movie: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *Repository) Update(ctx context.Context, mm model.MovieMeta) error {
	query := `
		UPDATE movies
		SET title = :title, title_original = :title_original, year = :year, genre = :genre,
			poster_link = :poster_link, description = :description, rating = :rating,
			is_active = :is_active
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, FromDomain(mm))
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return usecase_movie.ErrMovieNotFound
	}
	return nil
}

func (r *Repository) CountActive(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM movies WHERE is_active`); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return count, nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM movies`); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return count, nil
}

// Incomplete matches model.MovieMeta.Incomplete.
func (r *Repository) Incomplete(ctx context.Context, limit int) ([]model.MovieMeta, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE poster_link NOT LIKE 'http%' OR description = ''
		ORDER BY created_at
		LIMIT $1
	`

	var moviesDB []MovieDB
	if err := r.db.SelectContext(ctx, &moviesDB, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query incomplete movies: %w", err)
	}
	return toDomainSlice(moviesDB), nil
}

// DeleteOldest leaves matched movies alone; their votes go with the movie.
func (r *Repository) DeleteOldest(ctx context.Context, n int) ([]uuid.UUID, error) {
	query := `
		DELETE FROM movies
		WHERE id IN (
			SELECT m.id
			FROM movies m
			WHERE NOT EXISTS (SELECT 1 FROM matches WHERE movie_id = m.id)
			ORDER BY m.created_at
			LIMIT $1
		)
		RETURNING id
	`

	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, query, n); err != nil {
		return nil, fmt.Errorf("failed to delete movies: %w", err)
	}
	return ids, nil
}
