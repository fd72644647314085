package model

import (
	"slices"
	"strconv"
	"strings"
)

// Participants is a canonical participant set: ascending, without duplicates.
// Build it with NormalizeParticipants only.
type Participants []UserID

// NormalizeParticipants is the one canonicalization used on every path that
// reads or writes votes and matches.
func NormalizeParticipants(ids []UserID) Participants {
	out := make(Participants, len(ids))
	copy(out, ids)
	slices.Sort(out)
	return slices.Compact(out)
}

// ParticipantsFromInt64s normalizes raw storage values.
func ParticipantsFromInt64s(ids []int64) Participants {
	conv := make([]UserID, len(ids))
	for i, id := range ids {
		conv[i] = UserID(id)
	}
	return NormalizeParticipants(conv)
}

// Key renders the storage grouping key, e.g. "111,222,333".
func (p Participants) Key() string {
	var b strings.Builder
	for i, id := range p {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(int64(id), 10))
	}
	return b.String()
}

func (p Participants) Contains(id UserID) bool {
	_, ok := slices.BinarySearch(p, id)
	return ok
}

func (p Participants) Int64s() []int64 {
	out := make([]int64, len(p))
	for i, id := range p {
		out[i] = int64(id)
	}
	return out
}

// ParseParticipants reads a comma separated id list as sent by clients.
func ParseParticipants(raw string) (Participants, error) {
	if strings.TrimSpace(raw) == "" {
		return Participants{}, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]UserID, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, UserID(id))
	}
	return NormalizeParticipants(ids), nil
}
