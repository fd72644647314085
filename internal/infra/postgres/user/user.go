package infra_postgres_user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/moviematch/internal/model"
	usecase_user "github.com/humanbelnik/moviematch/internal/usecase/user"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type userDTO struct {
	ID         uuid.UUID `db:"id"`
	TelegramID int64     `db:"telegram_id"`
	Username   string    `db:"username"`
	FirstName  string    `db:"first_name"`
	LastActive time.Time `db:"last_active"`
}

func (u userDTO) toModel() model.User {
	return model.User{
		ID:         u.ID,
		TelegramID: model.UserID(u.TelegramID),
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastActive: u.LastActive,
	}
}

func (d *Driver) Upsert(ctx context.Context, u model.User) (model.User, error) {
	query := `
		INSERT INTO users (id, telegram_id, username, first_name, last_active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (telegram_id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_active = EXCLUDED.last_active
		RETURNING id, telegram_id, username, first_name, last_active
	`

	var stored userDTO
	err := d.db.GetContext(ctx, &stored, query, u.ID, int64(u.TelegramID), u.Username, u.FirstName, u.LastActive)
	if err != nil {
		return model.User{}, err
	}
	return stored.toModel(), nil
}

func (d *Driver) ByTelegramID(ctx context.Context, id model.UserID) (model.User, error) {
	query := `
		SELECT id, telegram_id, username, first_name, last_active
		FROM users
		WHERE telegram_id = $1
	`

	var dto userDTO
	if err := d.db.GetContext(ctx, &dto, query, int64(id)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, usecase_user.ErrUserNotFound
		}
		return model.User{}, err
	}
	return dto.toModel(), nil
}

func (d *Driver) ByTelegramIDs(ctx context.Context, ids []model.UserID) ([]model.User, error) {
	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}

	query := `
		SELECT id, telegram_id, username, first_name, last_active
		FROM users
		WHERE telegram_id = ANY($1)
	`

	var dtos []userDTO
	if err := d.db.SelectContext(ctx, &dtos, query, pq.Int64Array(raw)); err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(dtos))
	for _, dto := range dtos {
		users = append(users, dto.toModel())
	}
	return users, nil
}

func (d *Driver) Touch(ctx context.Context, id model.UserID, at time.Time) error {
	query := `UPDATE users SET last_active = $2 WHERE telegram_id = $1`

	result, err := d.db.ExecContext(ctx, query, int64(id), at)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return usecase_user.ErrUserNotFound
	}
	return nil
}
