package infra_postgres_match

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	infra_postgres_tx "github.com/humanbelnik/moviematch/internal/infra/postgres/tx"
	"github.com/humanbelnik/moviematch/internal/model"
	usecase_match "github.com/humanbelnik/moviematch/internal/usecase/match"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type matchDTO struct {
	ID           uuid.UUID     `db:"id"`
	MovieID      uuid.UUID     `db:"movie_id"`
	Participants pq.Int64Array `db:"participants"`
	MatchedAt    time.Time     `db:"matched_at"`
	Notified     bool          `db:"notified"`
}

func (m matchDTO) toModel() model.Match {
	return model.Match{
		ID:           m.ID,
		MovieID:      m.MovieID,
		Participants: model.ParticipantsFromInt64s(m.Participants),
		MatchedAt:    m.MatchedAt,
		Notified:     m.Notified,
	}
}

const selectMatch = `
	SELECT id, movie_id, participants, matched_at, notified
	FROM matches
`

func (d *Driver) ByMovieAndGroup(ctx context.Context, movieID uuid.UUID, groupKey string) (model.Match, error) {
	var dto matchDTO

	query := selectMatch + `WHERE movie_id = $1 AND participants_key = $2`

	err := infra_postgres_tx.Use(ctx, d.db).GetContext(ctx, &dto, query, movieID, groupKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Match{}, usecase_match.ErrMatchNotFound
		}
		return model.Match{}, err
	}
	return dto.toModel(), nil
}

// CreateOrGet lets the unique (movie_id, participants_key) constraint decide
// the winner among concurrent callers. Losers read the winning row.
func (d *Driver) CreateOrGet(ctx context.Context, m model.Match) (model.Match, bool, error) {
	q := infra_postgres_tx.Use(ctx, d.db)

	query := `
		INSERT INTO matches (id, movie_id, participants, participants_key, matched_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (movie_id, participants_key) DO NOTHING
		RETURNING id, movie_id, participants, matched_at, notified
	`

	var dto matchDTO
	err := q.GetContext(ctx, &dto, query,
		m.ID,
		m.MovieID,
		pq.Int64Array(m.Participants.Int64s()),
		m.Participants.Key(),
		m.MatchedAt,
	)
	if err == nil {
		return dto.toModel(), true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Match{}, false, err
	}

	winner, err := d.ByMovieAndGroup(ctx, m.MovieID, m.Participants.Key())
	if err != nil {
		return model.Match{}, false, err
	}
	return winner, false, nil
}

func (d *Driver) ByID(ctx context.Context, id uuid.UUID) (model.Match, error) {
	var dto matchDTO

	err := d.db.GetContext(ctx, &dto, selectMatch+`WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Match{}, usecase_match.ErrMatchNotFound
		}
		return model.Match{}, err
	}
	return dto.toModel(), nil
}

func (d *Driver) ByGroup(ctx context.Context, groupKey string) ([]model.Match, error) {
	var dtos []matchDTO

	query := selectMatch + `WHERE participants_key = $1 ORDER BY matched_at DESC`

	if err := d.db.SelectContext(ctx, &dtos, query, groupKey); err != nil {
		return nil, err
	}
	return toModels(dtos), nil
}

// ByParticipant is served by the GIN index on participants.
func (d *Driver) ByParticipant(ctx context.Context, user model.UserID, limit, offset int) ([]model.Match, error) {
	var dtos []matchDTO

	query := selectMatch + `
		WHERE participants @> ARRAY[$1::BIGINT]
		ORDER BY matched_at DESC
		LIMIT $2 OFFSET $3
	`

	if err := d.db.SelectContext(ctx, &dtos, query, int64(user), limit, offset); err != nil {
		return nil, err
	}
	return toModels(dtos), nil
}

func (d *Driver) MarkNotified(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE matches SET notified = TRUE WHERE id = $1`

	result, err := d.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return usecase_match.ErrMatchNotFound
	}
	return nil
}

func toModels(dtos []matchDTO) []model.Match {
	matches := make([]model.Match, 0, len(dtos))
	for _, dto := range dtos {
		matches = append(matches, dto.toModel())
	}
	return matches
}
