package model

import (
	"slices"
	"time"
)

type Room struct {
	Code      string
	CreatorID UserID
	// Members in join order.
	Participants []UserID
	CreatedAt    time.Time
}

func (r Room) Has(user UserID) bool {
	return slices.Contains(r.Participants, user)
}

// Group is the participant set a room votes as.
func (r Room) Group() Participants {
	return NormalizeParticipants(r.Participants)
}

type RoomInfo struct {
	Room     Room
	Members  []User
	Capacity int
}
