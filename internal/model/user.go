package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// UserID is the stable user identifier, the Telegram id of the user.
type UserID int64

func (id UserID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

type User struct {
	ID         uuid.UUID
	TelegramID UserID
	Username   string
	FirstName  string
	LastActive time.Time
}

func (u User) DisplayName() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.TelegramID.String()
}
