package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/sathwikreddyb/aqua-farms-backend/api/responses"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/config"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/logger"
)

// Pinger is the health-check surface of a backing dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports liveness plus the state of the database and redis.
func Health(cfg *config.Config, logg *logger.Logger, dbP, redisP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{
			"status": "ok",
			"env":    cfg.App.Env,
			"db":     "ok",
			"redis":  "ok",
		}
		healthy := true

		if dbP == nil {
			status["db"] = "not configured"
		} else if err := dbP.Ping(ctx); err != nil {
			status["db"] = "unreachable"
			healthy = false
			if logg != nil {
				logg.Error(ctx, "health.db", err)
			}
		}

		if redisP == nil {
			status["redis"] = "not configured"
		} else if err := redisP.Ping(ctx); err != nil {
			status["redis"] = "unreachable"
			healthy = false
			if logg != nil {
				logg.Error(ctx, "health.redis", err)
			}
		}

		code := http.StatusOK
		if !healthy {
			status["status"] = "degraded"
			code = http.StatusServiceUnavailable
		}
		responses.WriteSuccessStatus(w, code, status)
	}
}
