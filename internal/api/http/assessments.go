package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/lessonhub/internal/assessment"
	"github.com/mind-engage/lessonhub/internal/rbac"
	"github.com/mind-engage/lessonhub/internal/validation"
)

var checker = rbac.NewChecker(nil)

// GET /api/assessments  answers are included only for roles that may see them
func ListAssessmentsHandler(store assessment.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := store.ListAssessments(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
		if !checker.Has(rbac.RoleFromContext(r.Context()), rbac.PermAssessmentAnswers) {
			for i := range out {
				out[i] = out[i].WithoutAnswers()
			}
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// GET /api/assessments/{lessonId}
func GetAssessmentHandler(store assessment.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := store.FindAssessmentByLesson(r.Context(), chi.URLParam(r, "lessonId"))
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, a.WithoutAnswers())
	}
}

// GET /api/assessments/{lessonId}/answers
func GetAssessmentAnswersHandler(store assessment.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := store.FindAssessmentByLesson(r.Context(), chi.URLParam(r, "lessonId"))
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, a)
	}
}

// PUT /api/assessments/{lessonId}  { "moduleId", "mcq": [...], "theory" }
func PutAssessmentHandler(store assessment.Store) http.HandlerFunc {
	v := validation.New()
	return func(w http.ResponseWriter, r *http.Request) {
		var a assessment.Assessment
		if err := decodeJSON(r, &a); err != nil {
			respondError(w, r, err)
			return
		}
		a.LessonID = chi.URLParam(r, "lessonId")
		if err := v.Struct(a); err != nil {
			respondError(w, r, err)
			return
		}
		out, err := store.UpsertAssessment(r.Context(), a)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// DELETE /api/assessments/{lessonId}
func DeleteAssessmentHandler(store assessment.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteAssessment(r.Context(), chi.URLParam(r, "lessonId")); err != nil {
			respondError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
