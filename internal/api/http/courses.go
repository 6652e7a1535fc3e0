package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	authmw "github.com/mind-engage/lessonhub/internal/auth/middleware"
	"github.com/mind-engage/lessonhub/internal/course"
	"github.com/mind-engage/lessonhub/internal/grading"
	"github.com/mind-engage/lessonhub/internal/validation"
)

type courseReq struct {
	Name string `json:"courseName" validate:"notblank"`
}

type moduleReq struct {
	Name string `json:"moduleName" validate:"notblank"`
}

type lessonReq struct {
	Title      string `json:"title" validate:"notblank"`
	Objectives string `json:"objectives"`
	Overview   string `json:"overview"`
	KeyTerms   string `json:"keyTerms"`
	Content    string `json:"content"`
}

// GET /api/courses
func ListCoursesHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := store.ListCourses(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// GET /api/courses/{courseId}
func GetCourseHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := store.GetCourse(r.Context(), chi.URLParam(r, "courseId"))
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

// POST /api/courses  { "courseName" }
func CreateCourseHandler(store course.Store) http.HandlerFunc {
	v := validation.New()
	return func(w http.ResponseWriter, r *http.Request) {
		var req courseReq
		if err := decodeValid(r, v, &req); err != nil {
			respondError(w, r, err)
			return
		}
		c, err := store.CreateCourse(r.Context(), strings.TrimSpace(req.Name))
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, c)
	}
}

// PUT /api/courses/{courseId}  { "courseName" }
func RenameCourseHandler(store course.Store) http.HandlerFunc {
	v := validation.New()
	return func(w http.ResponseWriter, r *http.Request) {
		var req courseReq
		if err := decodeValid(r, v, &req); err != nil {
			respondError(w, r, err)
			return
		}
		c, err := store.RenameCourse(r.Context(), chi.URLParam(r, "courseId"), strings.TrimSpace(req.Name))
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

// DELETE /api/courses/{courseId}
func DeleteCourseHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteCourse(r.Context(), chi.URLParam(r, "courseId")); err != nil {
			respondError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /api/courses/{courseId}/modules?isCompleted=true&userId=
func ModuleStatusesHandler(svc *grading.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		completed, err := queryBool(r, "isCompleted")
		if err != nil {
			respondError(w, r, err)
			return
		}
		q := grading.CompletionQuery{UserID: r.URL.Query().Get("userId")}
		if completed != nil {
			q.IsCompleted = *completed
		}
		out, err := svc.ModuleCompletionStatuses(r.Context(), chi.URLParam(r, "courseId"), q)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// POST /api/courses/{courseId}/modules  { "moduleName" }
func AddModuleHandler(store course.Store) http.HandlerFunc {
	v := validation.New()
	return func(w http.ResponseWriter, r *http.Request) {
		var req moduleReq
		if err := decodeValid(r, v, &req); err != nil {
			respondError(w, r, err)
			return
		}
		m, err := store.AddModule(r.Context(), chi.URLParam(r, "courseId"), strings.TrimSpace(req.Name))
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, m)
	}
}

// PUT /api/modules/{moduleId}  { "moduleName" }
func RenameModuleHandler(store course.Store) http.HandlerFunc {
	v := validation.New()
	return func(w http.ResponseWriter, r *http.Request) {
		var req moduleReq
		if err := decodeValid(r, v, &req); err != nil {
			respondError(w, r, err)
			return
		}
		m, err := store.RenameModule(r.Context(), chi.URLParam(r, "moduleId"), strings.TrimSpace(req.Name))
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, m)
	}
}

// DELETE /api/modules/{moduleId}
func DeleteModuleHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteModule(r.Context(), chi.URLParam(r, "moduleId")); err != nil {
			respondError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /api/modules/{moduleId}/lessons
func ListLessonsHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := store.ListLessons(r.Context(), chi.URLParam(r, "moduleId"))
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// POST /api/modules/{moduleId}/lessons
func AddLessonHandler(store course.Store) http.HandlerFunc {
	v := validation.New()
	return func(w http.ResponseWriter, r *http.Request) {
		var req lessonReq
		if err := decodeValid(r, v, &req); err != nil {
			respondError(w, r, err)
			return
		}
		l, err := store.AddLesson(r.Context(), chi.URLParam(r, "moduleId"), course.Lesson{
			Title:      req.Title,
			Objectives: req.Objectives,
			Overview:   req.Overview,
			KeyTerms:   req.KeyTerms,
			Content:    req.Content,
		})
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, l)
	}
}

// PATCH /api/lessons/{lessonId}  only non-empty fields change
func UpdateLessonHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p course.LessonPatch
		if err := decodeJSON(r, &p); err != nil {
			respondError(w, r, err)
			return
		}
		l, err := store.UpdateLesson(r.Context(), chi.URLParam(r, "lessonId"), p)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, l)
	}
}

// DELETE /api/lessons/{lessonId}  responds with the module's remaining lessons
func DeleteLessonHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moduleID, err := store.DeleteLesson(r.Context(), chi.URLParam(r, "lessonId"))
		if err != nil {
			respondError(w, r, err)
			return
		}
		rest, err := store.ListLessons(r.Context(), moduleID)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, rest)
	}
}

func decodeValid(r *http.Request, v *validation.Validator, dst any) error {
	if err := decodeJSON(r, dst); err != nil {
		return err
	}
	return v.Struct(dst)
}

// subject returns the authenticated caller.
func subject(r *http.Request) string {
	return authmw.SubjectFromContext(r.Context())
}
