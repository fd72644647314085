package infra_postgres_vote

import (
	"context"
	"time"

	"github.com/google/uuid"
	infra_postgres_tx "github.com/humanbelnik/moviematch/internal/infra/postgres/tx"
	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type voteDTO struct {
	ID           uuid.UUID     `db:"id"`
	VoterID      int64         `db:"voter_id"`
	MovieID      uuid.UUID     `db:"movie_id"`
	Participants pq.Int64Array `db:"participants"`
	Decision     string        `db:"decision"`
	VotedAt      time.Time     `db:"voted_at"`
}

func (v voteDTO) toModel() model.Vote {
	return model.Vote{
		ID:           v.ID,
		VoterID:      model.UserID(v.VoterID),
		MovieID:      v.MovieID,
		Participants: model.ParticipantsFromInt64s(v.Participants),
		Decision:     model.Decision(v.Decision),
		VotedAt:      v.VotedAt,
	}
}

func toModels(dtos []voteDTO) []model.Vote {
	votes := make([]model.Vote, 0, len(dtos))
	for _, dto := range dtos {
		votes = append(votes, dto.toModel())
	}
	return votes
}

// Upsert keeps the id of an existing row and overwrites its decision. The
// timestamp moves only when the decision changes.
func (d *Driver) Upsert(ctx context.Context, v model.Vote) (model.Vote, error) {
	query := `
		INSERT INTO votes (id, voter_id, movie_id, participants, participants_key, decision, voted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (voter_id, movie_id, participants_key)
		DO UPDATE SET
			decision = EXCLUDED.decision,
			voted_at = CASE
				WHEN votes.decision = EXCLUDED.decision THEN votes.voted_at
				ELSE EXCLUDED.voted_at
			END
		RETURNING id, voter_id, movie_id, participants, decision, voted_at
	`

	var stored voteDTO
	err := infra_postgres_tx.Use(ctx, d.db).GetContext(ctx, &stored, query,
		v.ID,
		int64(v.VoterID),
		v.MovieID,
		pq.Int64Array(v.Participants.Int64s()),
		v.Participants.Key(),
		string(v.Decision),
		v.VotedAt,
	)
	if err != nil {
		return model.Vote{}, err
	}
	return stored.toModel(), nil
}

func (d *Driver) LikeVoters(ctx context.Context, movieID uuid.UUID, groupKey string) ([]model.UserID, error) {
	var voters []int64

	query := `
		SELECT DISTINCT voter_id
		FROM votes
		WHERE movie_id = $1 AND participants_key = $2 AND decision = $3
	`

	err := infra_postgres_tx.Use(ctx, d.db).SelectContext(ctx, &voters, query, movieID, groupKey, string(model.DecisionLike))
	if err != nil {
		return nil, err
	}

	out := make([]model.UserID, len(voters))
	for i, id := range voters {
		out[i] = model.UserID(id)
	}
	return out, nil
}

func (d *Driver) ByGroup(ctx context.Context, movieID uuid.UUID, groupKey string) ([]model.Vote, error) {
	var dtos []voteDTO

	query := `
		SELECT id, voter_id, movie_id, participants, decision, voted_at
		FROM votes
		WHERE movie_id = $1 AND participants_key = $2
		ORDER BY voted_at
	`

	if err := d.db.SelectContext(ctx, &dtos, query, movieID, groupKey); err != nil {
		return nil, err
	}
	return toModels(dtos), nil
}

func (d *Driver) ByVoter(ctx context.Context, voter model.UserID, limit, offset int) ([]model.Vote, error) {
	var dtos []voteDTO

	query := `
		SELECT id, voter_id, movie_id, participants, decision, voted_at
		FROM votes
		WHERE voter_id = $1
		ORDER BY voted_at DESC
		LIMIT $2 OFFSET $3
	`

	if err := d.db.SelectContext(ctx, &dtos, query, int64(voter), limit, offset); err != nil {
		return nil, err
	}
	return toModels(dtos), nil
}
