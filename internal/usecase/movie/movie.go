package usecase_movie

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/moviematch/internal/metrics"
	"github.com/humanbelnik/moviematch/internal/model"
)

var (
	ErrMovieNotFound     = fmt.Errorf("%w: movie not found", model.ErrNotFound)
	ErrCatalogEmpty      = fmt.Errorf("%w: no movies available", model.ErrNotFound)
	ErrSourceUnavailable = fmt.Errorf("%w: movie source unavailable", model.ErrInternal)
)

// Popular titles imported before walking the source collection.
var seedKinopoiskIDs = []int{301, 435, 328, 448, 8124}

//go:generate mockery --name=Repository --output=./mocks --filename=repository.go
type Repository interface {
	ByID(ctx context.Context, id uuid.UUID) (model.MovieMeta, error)
	ByKinopoiskID(ctx context.Context, kinopoiskID int) (model.MovieMeta, error)
	// Random picks an active movie. ErrMovieNotFound when there is none.
	Random(ctx context.Context) (model.MovieMeta, error)
	List(ctx context.Context, limit, offset int) ([]model.MovieMeta, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// Store inserts mm unless its kinopoisk id is known. The bool reports
	// whether a row was inserted.
	Store(ctx context.Context, mm model.MovieMeta) (bool, error)
	Update(ctx context.Context, mm model.MovieMeta) error
	CountActive(ctx context.Context) (int, error)
	Count(ctx context.Context) (int, error)
	Incomplete(ctx context.Context, limit int) ([]model.MovieMeta, error)
	// DeleteOldest removes up to n of the oldest movies that no match refers
	// to and returns their ids.
	DeleteOldest(ctx context.Context, n int) ([]uuid.UUID, error)
}

//go:generate mockery --name=Cache --output=./mocks --filename=cache.go
type Cache interface {
	Get(ctx context.Context, id uuid.UUID) (model.MovieMeta, bool, error)
	Set(ctx context.Context, mm model.MovieMeta) error
	Delete(ctx context.Context, id uuid.UUID) error
}

//go:generate mockery --name=Source --output=./mocks --filename=source.go
type Source interface {
	// Film returns metadata for kinopoiskID with a zero ID.
	Film(ctx context.Context, kinopoiskID int) (model.MovieMeta, error)
	// Popular returns one page of popular kinopoisk ids and the page count.
	Popular(ctx context.Context, page int) ([]int, int, error)
	Poster(ctx context.Context, url string) (model.Poster, error)
}

//go:generate mockery --name=PosterStore --output=./mocks --filename=poster_store.go
type PosterStore interface {
	// Save stores the poster and returns the URL it is served from.
	Save(ctx context.Context, p model.Poster) (string, error)
}

type Usecase struct {
	repo    Repository
	cache   Cache
	source  Source
	posters PosterStore

	minActive   int
	maxSize     int
	importPages int
	now         func() time.Time
	logger      *slog.Logger
}

type Option func(*Usecase)

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func WithCache(cache Cache) Option {
	return func(u *Usecase) {
		u.cache = cache
	}
}

func WithSource(source Source) Option {
	return func(u *Usecase) {
		u.source = source
	}
}

func WithPosterStore(posters PosterStore) Option {
	return func(u *Usecase) {
		u.posters = posters
	}
}

// WithCatalogLimits bounds the catalog: replenish below minActive active
// movies, prune above maxSize movies, import at most importPages pages.
func WithCatalogLimits(minActive, maxSize, importPages int) Option {
	return func(u *Usecase) {
		if minActive > 0 {
			u.minActive = minActive
		}
		if maxSize > 0 {
			u.maxSize = maxSize
		}
		if importPages > 0 {
			u.importPages = importPages
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(u *Usecase) {
		u.now = now
	}
}

func New(repo Repository, opts ...Option) *Usecase {
	u := &Usecase{
		repo:        repo,
		minActive:   50,
		maxSize:     500,
		importPages: 5,
		now:         time.Now,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Usecase) ByID(ctx context.Context, id uuid.UUID) (model.MovieMeta, error) {
	if u.cache != nil {
		mm, ok, err := u.cache.Get(ctx, id)
		if err != nil {
			u.logger.Warn("movie cache read failed", slog.String("movie_id", id.String()), slog.String("error", err.Error()))
		} else if ok {
			return mm, nil
		}
	}

	mm, err := u.repo.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			return model.MovieMeta{}, ErrMovieNotFound
		}
		return model.MovieMeta{}, errors.Join(model.ErrInternal, err)
	}

	u.remember(ctx, mm)
	return mm, nil
}

func (u *Usecase) Random(ctx context.Context) (model.MovieMeta, error) {
	mm, err := u.repo.Random(ctx)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			return model.MovieMeta{}, ErrCatalogEmpty
		}
		return model.MovieMeta{}, errors.Join(model.ErrInternal, err)
	}
	return mm, nil
}

// List returns movies newest first.
func (u *Usecase) List(ctx context.Context, limit, offset int) ([]model.MovieMeta, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	movies, err := u.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, errors.Join(model.ErrInternal, err)
	}
	return movies, nil
}

func (u *Usecase) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if u.cache != nil {
		if _, ok, err := u.cache.Get(ctx, id); err == nil && ok {
			return true, nil
		}
	}
	return u.repo.Exists(ctx, id)
}

// Replenish imports popular titles from the source while fewer than the
// configured minimum are active. It returns the number of imported movies.
func (u *Usecase) Replenish(ctx context.Context) (int, error) {
	if u.source == nil {
		return 0, nil
	}

	active, err := u.repo.CountActive(ctx)
	if err != nil {
		return 0, errors.Join(model.ErrInternal, err)
	}
	if active >= u.minActive {
		return 0, nil
	}
	missing := u.minActive - active

	imported := 0
	defer func() {
		metrics.CatalogImportedTotal.Add(float64(imported))
	}()

	for _, kpID := range seedKinopoiskIDs {
		if imported >= missing {
			return imported, nil
		}
		ok, err := u.importFilm(ctx, kpID)
		if err != nil {
			return imported, err
		}
		if ok {
			imported++
		}
	}

	for page := 1; page <= u.importPages && imported < missing; page++ {
		ids, pages, err := u.source.Popular(ctx, page)
		if err != nil {
			return imported, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
		for _, kpID := range ids {
			if imported >= missing {
				break
			}
			ok, err := u.importFilm(ctx, kpID)
			if err != nil {
				return imported, err
			}
			if ok {
				imported++
			}
		}
		if page >= pages {
			break
		}
	}

	u.logger.Info("catalog replenished", slog.Int("imported", imported), slog.Int("active_before", active))
	return imported, nil
}

// importFilm reports whether a new movie was stored. Only an unavailable
// source or storage aborts the caller; a single bad film is skipped.
func (u *Usecase) importFilm(ctx context.Context, kpID int) (bool, error) {
	_, err := u.repo.ByKinopoiskID(ctx, kpID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrMovieNotFound) {
		return false, errors.Join(model.ErrInternal, err)
	}

	mm, err := u.source.Film(ctx, kpID)
	if err != nil {
		if errors.Is(err, ErrSourceUnavailable) {
			return false, err
		}
		u.logger.Warn("skipping film", slog.Int("kinopoisk_id", kpID), slog.String("error", err.Error()))
		return false, nil
	}
	if mm.Title == "" || mm.Year == 0 {
		u.logger.Warn("skipping film without title or year", slog.Int("kinopoisk_id", kpID))
		return false, nil
	}

	mm.ID = uuid.New()
	mm.IsActive = true
	mm.CreatedAt = u.now()
	mm.PosterLink = u.mirrorPoster(ctx, mm)

	stored, err := u.repo.Store(ctx, mm)
	if err != nil {
		return false, errors.Join(model.ErrInternal, err)
	}
	if stored {
		u.logger.Debug("movie imported", slog.Int("kinopoisk_id", kpID), slog.String("title", mm.Title))
	}
	return stored, nil
}

// mirrorPoster returns the link to keep for mm. The source link survives any
// mirror failure.
func (u *Usecase) mirrorPoster(ctx context.Context, mm model.MovieMeta) string {
	if u.posters == nil || mm.PosterLink == "" {
		return mm.PosterLink
	}

	poster, err := u.source.Poster(ctx, mm.PosterLink)
	if err != nil {
		u.logger.Warn("poster download failed", slog.Int("kinopoisk_id", mm.KinopoiskID), slog.String("error", err.Error()))
		return mm.PosterLink
	}
	poster.MovieID = mm.ID

	link, err := u.posters.Save(ctx, poster)
	if err != nil {
		u.logger.Warn("poster upload failed", slog.Int("kinopoisk_id", mm.KinopoiskID), slog.String("error", err.Error()))
		return mm.PosterLink
	}
	return link
}

// RefreshIncomplete fills posters and descriptions missing from stored movies.
// Fields the source does not return are left untouched.
func (u *Usecase) RefreshIncomplete(ctx context.Context) (int, error) {
	if u.source == nil {
		return 0, nil
	}

	movies, err := u.repo.Incomplete(ctx, 100)
	if err != nil {
		return 0, errors.Join(model.ErrInternal, err)
	}

	updated := 0
	for _, mm := range movies {
		fresh, err := u.source.Film(ctx, mm.KinopoiskID)
		if err != nil {
			if errors.Is(err, ErrSourceUnavailable) {
				return updated, err
			}
			u.logger.Warn("refresh failed", slog.Int("kinopoisk_id", mm.KinopoiskID), slog.String("error", err.Error()))
			continue
		}

		changed := false
		if fresh.PosterLink != "" && fresh.PosterLink != mm.PosterLink {
			fresh.ID = mm.ID
			mm.PosterLink = u.mirrorPoster(ctx, fresh)
			changed = true
		}
		if fresh.Description != "" && fresh.Description != mm.Description {
			mm.Description = fresh.Description
			changed = true
		}
		if fresh.Rating != 0 && fresh.Rating != mm.Rating {
			mm.Rating = fresh.Rating
			changed = true
		}
		if fresh.TitleOriginal != "" && fresh.TitleOriginal != mm.TitleOriginal {
			mm.TitleOriginal = fresh.TitleOriginal
			changed = true
		}
		if !changed {
			continue
		}

		if err := u.repo.Update(ctx, mm); err != nil {
			return updated, errors.Join(model.ErrInternal, err)
		}
		u.forget(ctx, mm.ID)
		updated++
	}

	if updated > 0 {
		u.logger.Info("catalog refreshed", slog.Int("updated", updated))
	}
	return updated, nil
}

// Prune deletes the oldest movies above the catalog size limit.
func (u *Usecase) Prune(ctx context.Context) (int, error) {
	total, err := u.repo.Count(ctx)
	if err != nil {
		return 0, errors.Join(model.ErrInternal, err)
	}
	if total <= u.maxSize {
		return 0, nil
	}

	removed, err := u.repo.DeleteOldest(ctx, total-u.maxSize)
	if err != nil {
		return 0, errors.Join(model.ErrInternal, err)
	}
	for _, id := range removed {
		u.forget(ctx, id)
	}

	metrics.CatalogPrunedTotal.Add(float64(len(removed)))
	u.logger.Info("catalog pruned", slog.Int("removed", len(removed)), slog.Int("total_before", total))
	return len(removed), nil
}

// Maintain runs one catalog upkeep round. Every step runs even when an
// earlier one fails.
func (u *Usecase) Maintain(ctx context.Context) error {
	var errs []error

	if _, err := u.Replenish(ctx); err != nil {
		errs = append(errs, fmt.Errorf("replenish: %w", err))
	}
	if _, err := u.RefreshIncomplete(ctx); err != nil {
		errs = append(errs, fmt.Errorf("refresh: %w", err))
	}
	if _, err := u.Prune(ctx); err != nil {
		errs = append(errs, fmt.Errorf("prune: %w", err))
	}

	if active, err := u.repo.CountActive(ctx); err == nil {
		metrics.CatalogActiveMovies.Set(float64(active))
	}
	return errors.Join(errs...)
}

func (u *Usecase) remember(ctx context.Context, mm model.MovieMeta) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Set(ctx, mm); err != nil {
		u.logger.Warn("movie cache write failed", slog.String("movie_id", mm.ID.String()), slog.String("error", err.Error()))
	}
}

func (u *Usecase) forget(ctx context.Context, id uuid.UUID) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, id); err != nil {
		u.logger.Warn("movie cache invalidation failed", slog.String("movie_id", id.String()), slog.String("error", err.Error()))
	}
}
