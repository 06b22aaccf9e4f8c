// Copyright (c) 2026 BoiBritto. All rights reserved.

package api

import (
	"log/slog"
	"net/http"

	"github.com/SillyCatto/boibritto-sub001/internal/platform/constants"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/respond"
)

// # Health Checks

// HealthDependencies holds the probe functions for each backing service.
//
// Each check must be cheap and bounded; the readiness endpoint runs them
// on every call.
type HealthDependencies struct {
	CheckDatabase func() error
	CheckCache    func() error
}

// NewHealthHandlers returns the liveness and readiness handler functions.
//
/* Parameters:
 *   - deps: probe closures over the live pool and cache clients.
 *   - log:  logger used to report failed dependency checks.
 *
 * Returns:
 *   - liveness:  always 200 while the process can serve requests.
 *   - readiness: 200 when every dependency answers, 503 otherwise.
 */
func NewHealthHandlers(deps HealthDependencies, log *slog.Logger) (liveness, readiness http.HandlerFunc) {

	liveness = func(writer http.ResponseWriter, request *http.Request) {
		respond.OK(writer, "Service is alive", map[string]string{
			constants.FieldStatus: "ok",
			"version":             constants.AppVersion,
		})
	}

	readiness = func(writer http.ResponseWriter, request *http.Request) {
		checks := map[string]string{}
		healthy := true

		if err := deps.CheckDatabase(); err != nil {
			checks["database"] = "down"
			healthy = false
			log.ErrorContext(request.Context(), "readiness_check_failed",
				slog.String("dependency", "database"),
				slog.String("error", err.Error()),
			)
		} else {
			checks["database"] = "up"
		}

		if err := deps.CheckCache(); err != nil {
			checks["cache"] = "down"
			healthy = false
			log.ErrorContext(request.Context(), "readiness_check_failed",
				slog.String("dependency", "cache"),
				slog.String("error", err.Error()),
			)
		} else {
			checks["cache"] = "up"
		}

		if !healthy {
			respond.JSON(writer, http.StatusServiceUnavailable, map[string]interface{}{
				constants.FieldSuccess: false,
				constants.FieldMessage: "Service is not ready",
				constants.FieldChecks:  checks,
			})
			return
		}

		respond.OK(writer, "Service is ready", map[string]interface{}{
			constants.FieldStatus: "ok",
			constants.FieldChecks: checks,
		})
	}

	return liveness, readiness
}
