package controllers

import (
	"net/http"

	"github.com/vitrinalabs/storefront-backend/api/responses"
	"github.com/vitrinalabs/storefront-backend/pkg/config"
	"github.com/vitrinalabs/storefront-backend/pkg/logger"
	"github.com/vitrinalabs/storefront-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, redisClient redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)

		checks := map[string]string{"redis": "ok"}
		status := http.StatusOK

		if redisClient != nil {
			if err := redisClient.Ping(r.Context()); err != nil {
				checks["redis"] = "unavailable"
				status = http.StatusServiceUnavailable
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "readiness: redis ping failed")
				}
			}
		}

		responses.WriteSuccessStatus(w, status, checks)
	}
}
