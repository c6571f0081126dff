package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/verax/ledger/internal/adapter/http/dto"
)

const readinessTimeout = 5 * time.Second

type healthCheck struct {
	name string
	ping func(context.Context) error
}

// HealthHandler serves liveness and readiness probes over the service's
// backing stores.
type HealthHandler struct {
	checks []healthCheck
}

// NewHealthHandler wires readiness checks for postgres and redis.
func NewHealthHandler(pool *pgxpool.Pool, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		checks: []healthCheck{
			{name: "postgres", ping: pool.Ping},
			{name: "redis", ping: func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			}},
		},
	}
}

// Liveness reports that the process is up.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.StatusResponse{Status: "ok"})
}

// Readiness pings every backing store and fails on the first one down.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	for _, check := range h.checks {
		if err := check.ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, check.name+" unhealthy", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, dto.StatusResponse{Status: "ready"})
}
