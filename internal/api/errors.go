package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	respond "github.com/daybook-hq/daybook/internal/api/respond"
	"github.com/daybook-hq/daybook/internal/model"
	"github.com/daybook-hq/daybook/internal/services"
)

// writeServiceError maps domain errors to HTTP statuses. Share-link
// failures keep their user-facing messages so the consumer page can
// surface the exact reason.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrSharePasswordRequired):
		respond.WriteJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"error":            http.StatusText(http.StatusUnauthorized),
			"code":             http.StatusUnauthorized,
			"requiresPassword": true,
		})
	case errors.Is(err, services.ErrSharePasswordInvalid):
		respond.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, model.ErrShareNotFound):
		respond.WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrShareDisabled):
		respond.WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, model.ErrShareExpired):
		respond.WriteError(w, http.StatusGone, err.Error())
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrConflict):
		respond.WriteError(w, http.StatusConflict, err.Error())
	default:
		// Store and transient failures are logged with detail but
		// surfaced generically.
		log.Error().Stack().Err(err).Msg("request failed")
		respond.WriteInternalError(w, "internal error")
	}
}
