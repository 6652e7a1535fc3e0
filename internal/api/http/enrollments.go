package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/lessonhub/internal/enrollment"
	"github.com/mind-engage/lessonhub/internal/user"
)

type enrollReq struct {
	CourseID string `json:"enrolledCourseId"`
}

// POST /api/enrollments  { "enrolledCourseId" }
func EnrollHandler(svc *enrollment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req enrollReq
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, r, err)
			return
		}
		out, err := svc.Enroll(r.Context(), subject(r), req.CourseID)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// GET /api/enrollments/me
func MyEnrollmentsHandler(svc *enrollment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.Mine(r.Context(), subject(r))
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// GET /api/enrollments
func ListEnrollmentsHandler(svc *enrollment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.List(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// GET /api/enrollments/user/{userId}
func UserEnrollmentsHandler(svc *enrollment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ForUser(r.Context(), chi.URLParam(r, "userId"))
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// DELETE /api/enrollments  removes the caller's enrollments and account
func DeleteAccountHandler(users *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := users.Delete(r.Context(), subject(r)); err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, message{Msg: "User removed"})
	}
}
