package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/lessonhub/internal/grading"
	"github.com/mind-engage/lessonhub/internal/rbac"
)

type approveReq struct {
	grading.GradeKey
	Remarks string `json:"remarks"`
}

// POST /api/grades  { "moduleId", "lessonId", "mcq": [...], "theory" }
func SubmitGradeHandler(svc *grading.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sub grading.Submission
		if err := decodeJSON(r, &sub); err != nil {
			respondError(w, r, err)
			return
		}
		sub.UserID = subject(r)
		res, err := svc.SubmitGrade(r.Context(), sub)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

// POST /api/grades/approve  { "userId", "moduleId", "lessonId", "remarks" }
func ApproveGradeHandler(svc *grading.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req approveReq
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, r, err)
			return
		}
		g, err := svc.ApproveGrade(r.Context(), req.GradeKey, req.Remarks)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, g)
	}
}

// GET /api/grades?approved=false  pending grades carry the theory question
func ListGradesHandler(svc *grading.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		approved, err := queryBool(r, "approved")
		if err != nil {
			respondError(w, r, err)
			return
		}
		out, err := svc.ListGrades(r.Context(), grading.GradeFilter{Approved: approved})
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// GET /api/grades/lesson/{lessonId}  learners only see their own grade
func GradeForLessonHandler(svc *grading.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var userID string
		if !checker.Has(rbac.RoleFromContext(r.Context()), rbac.PermGradeViewAll) {
			userID = subject(r)
		}
		g, err := svc.GradeForLesson(r.Context(), chi.URLParam(r, "lessonId"), userID)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, g)
	}
}

// GET /api/grades/user/{userId}
func GradesForUserHandler(svc *grading.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.GradesForUser(r.Context(), chi.URLParam(r, "userId"))
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// IsGradeOwner reports whether the caller is the {userId} of the route.
func IsGradeOwner(r *http.Request) bool {
	id := chi.URLParam(r, "userId")
	return id != "" && id == subject(r)
}
