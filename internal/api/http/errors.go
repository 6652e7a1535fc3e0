package http

import (
	"errors"
	"net/http"

	"github.com/mind-engage/lessonhub/internal/apperr"
	"github.com/mind-engage/lessonhub/internal/logging"
)

type errorBody struct {
	Error  string              `json:"error"`
	Fields []apperr.FieldError `json:"fields,omitempty"`
}

// respondError maps an error kind to its status. Anything unrecognised is a 500 and gets logged.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, errorBody{Error: apperr.ErrValidation.Error(), Fields: verr.Fields})
	case errors.Is(err, apperr.ErrValidation):
		respondJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, apperr.ErrDegenerateInput):
		respondJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
	case errors.Is(err, apperr.ErrUnauthorized):
		respondJSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})
	case errors.Is(err, apperr.ErrForbidden):
		respondJSON(w, http.StatusForbidden, errorBody{Error: err.Error()})
	case errors.Is(err, apperr.ErrConflict):
		respondJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	default:
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "err", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "server error"})
	}
}
