package http

import (
	"net/http"
	"strconv"

	"github.com/mind-engage/lessonhub/internal/apperr"
	syncx "github.com/mind-engage/lessonhub/internal/sync"
)

// GET /api/events?since=0&limit=100  limit defaults to 100 and is capped at 500
func ListEventsHandler(repo *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var since int64
		if s := r.URL.Query().Get("since"); s != "" {
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil || n < 0 {
				respondError(w, r, apperr.Invalid("since", "must be a non-negative integer"))
				return
			}
			since = n
		}
		var limit int
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				respondError(w, r, apperr.Invalid("limit", "must be an integer"))
				return
			}
			limit = n
		}
		out, err := repo.Since(r.Context(), since, limit)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}
