package infra_postgres_room

import (
	"context"
	"database/sql"
	"errors"
	"time"

	infra_postgres_tx "github.com/humanbelnik/moviematch/internal/infra/postgres/tx"
	"github.com/humanbelnik/moviematch/internal/model"
	usecase_room "github.com/humanbelnik/moviematch/internal/usecase/room"
	"github.com/jmoiron/sqlx"
)

type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

type roomDTO struct {
	Code      string    `db:"code"`
	CreatorID int64     `db:"creator_id"`
	CreatedAt time.Time `db:"created_at"`
}

// Create relies on ON CONFLICT DO NOTHING so a taken code or a busy creator
// never aborts the surrounding transaction.
func (d *Driver) Create(ctx context.Context, room model.Room) error {
	q := infra_postgres_tx.Use(ctx, d.db)

	query := `
		INSERT INTO rooms (code, creator_id)
		VALUES ($1, $2)
		ON CONFLICT (code) DO NOTHING
	`

	result, err := q.ExecContext(ctx, query, room.Code, int64(room.CreatorID))
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err != nil {
		return err
	} else if affected == 0 {
		return usecase_room.ErrCodeConflict
	}

	return d.AddMember(ctx, room.Code, room.CreatorID)
}

func (d *Driver) LockByCode(ctx context.Context, code string) (model.Room, error) {
	return d.load(ctx, code, `
		SELECT code, creator_id, created_at
		FROM rooms
		WHERE code = $1
		FOR UPDATE
	`)
}

func (d *Driver) ByCode(ctx context.Context, code string) (model.Room, error) {
	return d.load(ctx, code, `
		SELECT code, creator_id, created_at
		FROM rooms
		WHERE code = $1
	`)
}

func (d *Driver) load(ctx context.Context, code string, query string) (model.Room, error) {
	q := infra_postgres_tx.Use(ctx, d.db)

	var room roomDTO
	if err := q.GetContext(ctx, &room, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Room{}, usecase_room.ErrRoomNotFound
		}
		return model.Room{}, err
	}

	var members []int64
	membersQuery := `
		SELECT user_id
		FROM room_members
		WHERE room_code = $1
		ORDER BY joined_at, user_id
	`
	if err := q.SelectContext(ctx, &members, membersQuery, code); err != nil {
		return model.Room{}, err
	}

	participants := make([]model.UserID, len(members))
	for i, id := range members {
		participants[i] = model.UserID(id)
	}

	return model.Room{
		Code:         room.Code,
		CreatorID:    model.UserID(room.CreatorID),
		Participants: participants,
		CreatedAt:    room.CreatedAt,
	}, nil
}

func (d *Driver) CodeByMember(ctx context.Context, user model.UserID) (string, error) {
	var code string

	query := `SELECT room_code FROM room_members WHERE user_id = $1`

	err := infra_postgres_tx.Use(ctx, d.db).GetContext(ctx, &code, query, int64(user))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", usecase_room.ErrRoomNotFound
		}
		return "", err
	}
	return code, nil
}

// AddMember reports ErrAlreadyInRoom when user is a member of any room.
func (d *Driver) AddMember(ctx context.Context, code string, user model.UserID) error {
	query := `
		INSERT INTO room_members (user_id, room_code)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`

	result, err := infra_postgres_tx.Use(ctx, d.db).ExecContext(ctx, query, int64(user), code)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return usecase_room.ErrAlreadyInRoom
	}
	return nil
}

func (d *Driver) RemoveMember(ctx context.Context, code string, user model.UserID) error {
	query := `
		DELETE FROM room_members
		WHERE room_code = $1 AND user_id = $2
	`

	result, err := infra_postgres_tx.Use(ctx, d.db).ExecContext(ctx, query, code, int64(user))
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return usecase_room.ErrNotMember
	}
	return nil
}

func (d *Driver) Delete(ctx context.Context, code string) error {
	query := `
		DELETE FROM rooms
		WHERE code = $1
	`

	result, err := infra_postgres_tx.Use(ctx, d.db).ExecContext(ctx, query, code)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return usecase_room.ErrRoomNotFound
	}
	return nil
}

// Codes lists the codes of all open rooms.
func (d *Driver) Codes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := d.db.SelectContext(ctx, &codes, `SELECT code FROM rooms`); err != nil {
		return nil, err
	}
	return codes, nil
}
