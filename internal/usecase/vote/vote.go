package usecase_vote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/moviematch/internal/metrics"
	"github.com/humanbelnik/moviematch/internal/model"
	usecase_match "github.com/humanbelnik/moviematch/internal/usecase/match"
)

var (
	ErrInvalidGroupSize    = fmt.Errorf("%w: participant set size out of bounds", model.ErrValidation)
	ErrInvalidDecision     = fmt.Errorf("%w: unknown decision", model.ErrValidation)
	ErrEmptyMovie          = fmt.Errorf("%w: movie reference is empty", model.ErrValidation)
	ErrVoterNotParticipant = fmt.Errorf("%w: voter is not in the participant set", model.ErrValidation)
	ErrMovieNotFound       = fmt.Errorf("%w: movie not found", model.ErrNotFound)
)

//go:generate mockery --name=VoteRepository --output=./mocks --filename=repository.go
type VoteRepository interface {
	// Upsert stores v keyed by voter, movie and group key. A repeated key
	// keeps the row id and overwrites the decision.
	Upsert(ctx context.Context, v model.Vote) (model.Vote, error)
	// LikeVoters returns distinct voters with a like for the movie and group.
	LikeVoters(ctx context.Context, movieID uuid.UUID, groupKey string) ([]model.UserID, error)
	ByGroup(ctx context.Context, movieID uuid.UUID, groupKey string) ([]model.Vote, error)
	ByVoter(ctx context.Context, voter model.UserID, limit, offset int) ([]model.Vote, error)
}

//go:generate mockery --name=MovieCatalog --output=./mocks --filename=movie_catalog.go
type MovieCatalog interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Dispatcher hands a new match to the notification pipeline. It must return
// quickly; delivery happens elsewhere.
//
//go:generate mockery --name=Dispatcher --output=./mocks --filename=dispatcher.go
type Dispatcher interface {
	DispatchMatch(ctx context.Context, m model.Match) error
}

type SubmitResult struct {
	Vote  model.Vote
	Match *model.Match
}

type Usecase struct {
	votes      VoteRepository
	matches    usecase_match.MatchRepository
	catalog    MovieCatalog
	dispatcher Dispatcher

	maxGroupSize    int
	dispatchTimeout time.Duration
	now             func() time.Time
	logger          *slog.Logger
}

type Option func(*Usecase)

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func WithMaxGroupSize(n int) Option {
	return func(u *Usecase) {
		if n >= 2 {
			u.maxGroupSize = n
		}
	}
}

// WithDispatchTimeout bounds how long a swipe waits on the notification queue.
func WithDispatchTimeout(d time.Duration) Option {
	return func(u *Usecase) {
		if d > 0 {
			u.dispatchTimeout = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(u *Usecase) {
		u.now = now
	}
}

func New(
	votes VoteRepository,
	matches usecase_match.MatchRepository,
	catalog MovieCatalog,
	dispatcher Dispatcher,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		votes:        votes,
		matches:      matches,
		catalog:      catalog,
		dispatcher:   dispatcher,
		maxGroupSize:    5,
		dispatchTimeout: 3 * time.Second,
		now:             time.Now,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Usecase) group(participants []model.UserID) (model.Participants, error) {
	group := model.NormalizeParticipants(participants)
	if len(group) < 2 || len(group) > u.maxGroupSize {
		return nil, ErrInvalidGroupSize
	}
	return group, nil
}

// RecordVote persists the decision of voter on movie for the group. Resending
// the same vote leaves one row; a changed decision overwrites the old one.
func (u *Usecase) RecordVote(
	ctx context.Context,
	voter model.UserID,
	movieID uuid.UUID,
	participants []model.UserID,
	decision model.Decision,
) (model.Vote, error) {
	if movieID == uuid.Nil {
		return model.Vote{}, ErrEmptyMovie
	}
	if !decision.Valid() {
		return model.Vote{}, ErrInvalidDecision
	}
	group, err := u.group(participants)
	if err != nil {
		return model.Vote{}, err
	}
	if !group.Contains(voter) {
		return model.Vote{}, ErrVoterNotParticipant
	}

	exists, err := u.catalog.Exists(ctx, movieID)
	if err != nil {
		return model.Vote{}, errors.Join(model.ErrInternal, err)
	}
	if !exists {
		return model.Vote{}, ErrMovieNotFound
	}

	stored, err := u.votes.Upsert(ctx, model.Vote{
		ID:           uuid.New(),
		VoterID:      voter,
		MovieID:      movieID,
		Participants: group,
		Decision:     decision,
		VotedAt:      u.now(),
	})
	if err != nil {
		return model.Vote{}, errors.Join(model.ErrInternal, err)
	}

	metrics.VotesRecordedTotal.WithLabelValues(string(decision)).Inc()
	return stored, nil
}

// EvaluateConsensus reports whether every member of the group liked the movie
// within this exact group.
func (u *Usecase) EvaluateConsensus(ctx context.Context, movieID uuid.UUID, participants []model.UserID) (bool, error) {
	if movieID == uuid.Nil {
		return false, ErrEmptyMovie
	}
	group, err := u.group(participants)
	if err != nil {
		return false, err
	}
	return u.evaluate(ctx, movieID, group)
}

func (u *Usecase) evaluate(ctx context.Context, movieID uuid.UUID, group model.Participants) (bool, error) {
	voters, err := u.votes.LikeVoters(ctx, movieID, group.Key())
	if err != nil {
		return false, errors.Join(model.ErrInternal, err)
	}
	return hasConsensus(group, voters), nil
}

// Voters outside the group never count, even when the totals line up.
func hasConsensus(group model.Participants, voters []model.UserID) bool {
	liked := make(map[model.UserID]struct{}, len(voters))
	for _, v := range voters {
		if group.Contains(v) {
			liked[v] = struct{}{}
		}
	}
	if len(liked) != len(group) {
		return false
	}
	for _, p := range group {
		if _, ok := liked[p]; !ok {
			return false
		}
	}
	return true
}

// CreateMatchIfConsensus returns the match of the group for the movie once
// consensus holds, creating it on first call. The bool is false when there is
// no consensus yet. Only the call that inserts the match dispatches it.
func (u *Usecase) CreateMatchIfConsensus(ctx context.Context, movieID uuid.UUID, participants []model.UserID) (model.Match, bool, error) {
	if movieID == uuid.Nil {
		return model.Match{}, false, ErrEmptyMovie
	}
	group, err := u.group(participants)
	if err != nil {
		return model.Match{}, false, err
	}

	ok, err := u.evaluate(ctx, movieID, group)
	if err != nil || !ok {
		return model.Match{}, false, err
	}

	existing, err := u.matches.ByMovieAndGroup(ctx, movieID, group.Key())
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, usecase_match.ErrMatchNotFound) {
		return model.Match{}, false, errors.Join(model.ErrInternal, err)
	}

	stored, created, err := u.matches.CreateOrGet(ctx, model.Match{
		ID:           uuid.New(),
		MovieID:      movieID,
		Participants: group,
		MatchedAt:    u.now(),
	})
	if err != nil {
		return model.Match{}, false, errors.Join(model.ErrInternal, err)
	}
	if !created {
		metrics.MatchRaceResolvedTotal.Inc()
		return stored, true, nil
	}

	metrics.MatchesCreatedTotal.Inc()
	u.logger.Info("match created",
		slog.String("match_id", stored.ID.String()),
		slog.String("movie_id", movieID.String()),
		slog.String("group", group.Key()),
	)
	u.dispatch(ctx, stored)
	return stored, true, nil
}

// Failures stay here: the match is already committed.
func (u *Usecase) dispatch(ctx context.Context, m model.Match) {
	if u.dispatcher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.dispatchTimeout)
	defer cancel()

	if err := u.dispatcher.DispatchMatch(ctx, m); err != nil {
		metrics.NotificationsTotal.WithLabelValues(metrics.StageEnqueue, metrics.ResultFailed).Inc()
		u.logger.Error("failed to dispatch match notification",
			slog.String("match_id", m.ID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	metrics.NotificationsTotal.WithLabelValues(metrics.StageEnqueue, metrics.ResultOK).Inc()
}

// Submit is the swipe flow: record the vote, then check the group on a like.
func (u *Usecase) Submit(
	ctx context.Context,
	voter model.UserID,
	movieID uuid.UUID,
	participants []model.UserID,
	decision model.Decision,
) (SubmitResult, error) {
	vote, err := u.RecordVote(ctx, voter, movieID, participants, decision)
	if err != nil {
		return SubmitResult{}, err
	}

	result := SubmitResult{Vote: vote}
	if decision != model.DecisionLike {
		return result, nil
	}

	m, matched, err := u.CreateMatchIfConsensus(ctx, movieID, vote.Participants)
	if err != nil {
		return result, err
	}
	if matched {
		result.Match = &m
	}
	return result, nil
}

// Status summarizes how the group voted on the movie so far.
func (u *Usecase) Status(ctx context.Context, movieID uuid.UUID, participants []model.UserID) (model.VoteStatus, error) {
	if movieID == uuid.Nil {
		return model.VoteStatus{}, ErrEmptyMovie
	}
	group, err := u.group(participants)
	if err != nil {
		return model.VoteStatus{}, err
	}

	votes, err := u.votes.ByGroup(ctx, movieID, group.Key())
	if err != nil {
		return model.VoteStatus{}, errors.Join(model.ErrInternal, err)
	}

	status := model.VoteStatus{
		MovieID:      movieID,
		Participants: group,
		Decisions:    make(map[model.UserID]model.Decision, len(group)),
	}
	likers := make([]model.UserID, 0, len(votes))
	for _, v := range votes {
		if !group.Contains(v.VoterID) {
			continue
		}
		status.Decisions[v.VoterID] = v.Decision
		if v.Decision == model.DecisionLike {
			status.Likes++
			likers = append(likers, v.VoterID)
		} else {
			status.Dislikes++
		}
	}
	status.MatchReady = hasConsensus(group, likers)
	return status, nil
}

func (u *Usecase) VotesOf(ctx context.Context, voter model.UserID, limit, offset int) ([]model.Vote, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	votes, err := u.votes.ByVoter(ctx, voter, limit, offset)
	if err != nil {
		return nil, errors.Join(model.ErrInternal, err)
	}
	return votes, nil
}
