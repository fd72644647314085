// Package infra_kinopoisk talks to kinopoiskapiunofficial.tech.
package infra_kinopoisk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/humanbelnik/moviematch/internal/config"
	infra_breaker "github.com/humanbelnik/moviematch/internal/infra/breaker"
	"github.com/humanbelnik/moviematch/internal/model"
	usecase_movie "github.com/humanbelnik/moviematch/internal/usecase/movie"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

const (
	breakerName      = "kinopoisk"
	popularListType  = "TOP_POPULAR_MOVIES"
	maxPosterSize    = 10 << 20
	defaultPosterExt = ".jpg"
)

var errStatus = errors.New("kinopoisk: unexpected status")

type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *slog.Logger
}

var _ usecase_movie.Source = (*Client)(nil)

func New(cfg config.Kinopoisk, logger *slog.Logger) *Client {
	settings := infra_breaker.DefaultSettings()
	settings.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, usecase_movie.ErrMovieNotFound)
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		breaker: infra_breaker.New[[]byte](breakerName, settings, logger),
		logger:  logger,
	}
}

type filmResponse struct {
	KinopoiskID      int      `json:"kinopoiskId"`
	NameRu           string   `json:"nameRu"`
	NameEn           string   `json:"nameEn"`
	NameOriginal     string   `json:"nameOriginal"`
	Year             *int     `json:"year"`
	PosterURL        string   `json:"posterUrl"`
	PosterURLPreview string   `json:"posterUrlPreview"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription"`
	RatingKinopoisk  *float64 `json:"ratingKinopoisk"`
	RatingImdb       *float64 `json:"ratingImdb"`
	Genres           []struct {
		Genre string `json:"genre"`
	} `json:"genres"`
}

func (f filmResponse) toDomain() model.MovieMeta {
	mm := model.MovieMeta{
		KinopoiskID:   f.KinopoiskID,
		Title:         firstNonEmpty(f.NameRu, f.NameEn, f.NameOriginal),
		TitleOriginal: firstNonEmpty(f.NameOriginal, f.NameEn),
		PosterLink:    firstNonEmpty(f.PosterURL, f.PosterURLPreview),
		Description:   firstNonEmpty(f.Description, f.ShortDescription),
	}
	if mm.TitleOriginal == mm.Title {
		mm.TitleOriginal = ""
	}
	if f.Year != nil {
		mm.Year = *f.Year
	}
	switch {
	case f.RatingKinopoisk != nil:
		mm.Rating = *f.RatingKinopoisk
	case f.RatingImdb != nil:
		mm.Rating = *f.RatingImdb
	}

	genres := make([]string, 0, len(f.Genres))
	for _, g := range f.Genres {
		if g.Genre != "" {
			genres = append(genres, g.Genre)
		}
	}
	mm.Genre = strings.Join(genres, ", ")
	return mm
}

type collectionResponse struct {
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
	Items      []struct {
		KinopoiskID int `json:"kinopoiskId"`
	} `json:"items"`
}

func (c *Client) Film(ctx context.Context, kinopoiskID int) (model.MovieMeta, error) {
	raw, err := c.get(ctx, c.baseURL+"/v2.2/films/"+strconv.Itoa(kinopoiskID), true)
	if err != nil {
		return model.MovieMeta{}, err
	}

	var resp filmResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return model.MovieMeta{}, fmt.Errorf("kinopoisk: decode film %d: %w", kinopoiskID, err)
	}
	if resp.KinopoiskID == 0 {
		resp.KinopoiskID = kinopoiskID
	}
	return resp.toDomain(), nil
}

func (c *Client) Popular(ctx context.Context, page int) ([]int, int, error) {
	q := url.Values{}
	q.Set("type", popularListType)
	q.Set("page", strconv.Itoa(page))

	raw, err := c.get(ctx, c.baseURL+"/v2.2/films/collections?"+q.Encode(), true)
	if err != nil {
		return nil, 0, err
	}

	var resp collectionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, 0, fmt.Errorf("kinopoisk: decode collection page %d: %w", page, err)
	}

	ids := make([]int, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.KinopoiskID > 0 {
			ids = append(ids, item.KinopoiskID)
		}
	}
	return ids, resp.TotalPages, nil
}

func (c *Client) Poster(ctx context.Context, rawURL string) (model.Poster, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return model.Poster{}, fmt.Errorf("kinopoisk: bad poster url %q", rawURL)
	}

	raw, err := c.get(ctx, rawURL, false)
	if err != nil {
		return model.Poster{}, err
	}

	filename := path.Base(u.Path)
	if path.Ext(filename) == "" {
		filename += defaultPosterExt
	}
	return model.Poster{
		Filename:    filename,
		ContentType: http.DetectContentType(raw),
		Content:     raw,
	}, nil
}

// get runs one rate limited request through the breaker. An open breaker
// is reported as ErrSourceUnavailable.
func (c *Client) get(ctx context.Context, target string, api bool) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, target, api)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, errors.Join(usecase_movie.ErrSourceUnavailable, err)
	}
	return body, err
}

func (c *Client) do(ctx context.Context, target string, api bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	if api {
		req.Header.Set("X-API-KEY", c.apiKey)
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kinopoisk: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, usecase_movie.ErrMovieNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.logger.Error("kinopoisk rejected api key", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w %d", errStatus, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w %d", errStatus, resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxPosterSize))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
