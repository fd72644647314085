package http_init

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/humanbelnik/moviematch/internal/config"
	http_access_middleware "github.com/humanbelnik/moviematch/internal/delivery/http/middleware/access"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const apiPrefix = "/api/v1"

type Controller interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// Probe reports whether a dependency is reachable.
type Probe func(ctx context.Context) error

// ControllerPool owns the gin engine and serves every registered controller
// under /api/v1, plus /health and /metrics at the root.
type ControllerPool struct {
	pool   []Controller
	probes map[string]Probe
	engine *gin.Engine
	cfg    config.HTTPServer

	logger *slog.Logger
}

type PoolOption func(*ControllerPool)

func WithLogger(logger *slog.Logger) PoolOption {
	return func(p *ControllerPool) {
		p.logger = logger
	}
}

func WithProbe(name string, probe Probe) PoolOption {
	return func(p *ControllerPool) {
		p.probes[name] = probe
	}
}

func NewControllerPool(cfg config.HTTPServer, opts ...PoolOption) *ControllerPool {
	engine := gin.New()
	engine.Use(gin.Recovery())

	pool := &ControllerPool{
		pool:   make([]Controller, 0, 10),
		probes: make(map[string]Probe),
		engine: engine,
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(pool)
	}
	engine.Use(pool.accessLog)
	return pool
}

func (pool *ControllerPool) Add(c Controller) {
	pool.pool = append(pool.pool, c)
}

// Register mounts the controllers. Call it once after all Add calls.
func (pool *ControllerPool) Register() {
	pool.engine.GET("/health", pool.health)
	pool.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rg := pool.engine.Group(apiPrefix, http_access_middleware.ReadOnly(pool.cfg.Mode))
	for _, c := range pool.pool {
		c.RegisterRoutes(rg)
	}
}

func (pool *ControllerPool) Handler() http.Handler {
	return pool.engine
}

// Serve listens until ctx is cancelled, then drains in-flight requests
// within the configured shutdown timeout.
func (pool *ControllerPool) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(pool.cfg.Host, pool.cfg.Port),
		Handler:           pool.engine,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		pool.logger.Info("http server started", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), pool.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		pool.logger.Error("http server shutdown failed", slog.String("error", err.Error()))
		return err
	}
	pool.logger.Info("http server stopped")
	return ctx.Err()
}

func (pool *ControllerPool) String() string {
	return "http-server"
}

// HealthResponseDTO DTO статуса сервиса
type HealthResponseDTO struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}

// @Summary Проверка состояния
// @Tags Service
// @Produce json
// @Success 200 {object} HealthResponseDTO "Сервис доступен"
// @Failure 503 {object} HealthResponseDTO "Зависимость недоступна"
// @Router /health [get]
func (pool *ControllerPool) health(ctx *gin.Context) {
	resp := HealthResponseDTO{Status: "ok"}
	status := http.StatusOK

	if len(pool.probes) > 0 {
		resp.Checks = make(map[string]string, len(pool.probes))
		probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		for name, probe := range pool.probes {
			if err := probe(probeCtx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
	}

	ctx.JSON(status, resp)
}

func (pool *ControllerPool) accessLog(ctx *gin.Context) {
	start := time.Now()
	ctx.Next()

	path := ctx.FullPath()
	if path == "/health" || path == "/metrics" {
		return
	}
	pool.logger.Debug("request",
		slog.String("method", ctx.Request.Method),
		slog.String("path", path),
		slog.Int("status", ctx.Writer.Status()),
		slog.Duration("took", time.Since(start)),
	)
}
