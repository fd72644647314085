package model

import (
	"time"

	"github.com/google/uuid"
)

type Decision string

const (
	DecisionLike    Decision = "like"
	DecisionDislike Decision = "dislike"
)

func (d Decision) Valid() bool {
	return d == DecisionLike || d == DecisionDislike
}

type Vote struct {
	ID           uuid.UUID
	VoterID      UserID
	MovieID      uuid.UUID
	Participants Participants
	Decision     Decision
	VotedAt      time.Time
}

type VoteStatus struct {
	MovieID      uuid.UUID
	Participants Participants
	Decisions    map[UserID]Decision
	Likes        int
	Dislikes     int
	MatchReady   bool
}

type Match struct {
	ID           uuid.UUID
	MovieID      uuid.UUID
	Participants Participants
	MatchedAt    time.Time
	Notified     bool
}
