package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/lessonhub/internal/assessment"
	authmw "github.com/mind-engage/lessonhub/internal/auth/middleware"
	"github.com/mind-engage/lessonhub/internal/course"
	"github.com/mind-engage/lessonhub/internal/enrollment"
	"github.com/mind-engage/lessonhub/internal/grading"
	"github.com/mind-engage/lessonhub/internal/rbac"
	syncx "github.com/mind-engage/lessonhub/internal/sync"
	"github.com/mind-engage/lessonhub/internal/user"
)

type Deps struct {
	Auth        *authmw.AuthService
	Users       *user.Service
	Courses     course.Store
	Assessments assessment.Store
	Grading     *grading.Service
	Enrollments *enrollment.Service
	Events      *syncx.EventRepo
}

// MountAPI registers every /api route on r.
func MountAPI(r chi.Router, d Deps) {
	// public
	r.Post("/users", RegisterHandler(d.Users, d.Auth))
	r.Post("/auth", LoginHandler(d.Users, d.Auth))

	// JWT -> subject and role in context -> RBAC
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(d.Auth))

		pr.Get("/auth", CurrentUserHandler(d.Users))
		pr.With(rbac.Require(rbac.PermUsersList)).
			Get("/users", ListUsersHandler(d.Users))
		pr.With(rbac.Require(rbac.PermUserChangePassword)).
			Post("/users/change-password", ChangePasswordHandler(d.Users))

		// courses, modules, lessons
		pr.With(rbac.Require(rbac.PermCourseView)).Get("/courses", ListCoursesHandler(d.Courses))
		pr.With(rbac.Require(rbac.PermCourseEdit)).Post("/courses", CreateCourseHandler(d.Courses))
		pr.Route("/courses/{courseId}", func(cr chi.Router) {
			cr.With(rbac.Require(rbac.PermCourseView)).Get("/", GetCourseHandler(d.Courses))
			cr.With(rbac.Require(rbac.PermCourseEdit)).Put("/", RenameCourseHandler(d.Courses))
			cr.With(rbac.Require(rbac.PermCourseEdit)).Delete("/", DeleteCourseHandler(d.Courses))
			cr.With(rbac.Require(rbac.PermCourseView)).Get("/modules", ModuleStatusesHandler(d.Grading))
			cr.With(rbac.Require(rbac.PermCourseEdit)).Post("/modules", AddModuleHandler(d.Courses))
		})
		pr.Route("/modules/{moduleId}", func(mr chi.Router) {
			mr.With(rbac.Require(rbac.PermCourseEdit)).Put("/", RenameModuleHandler(d.Courses))
			mr.With(rbac.Require(rbac.PermCourseEdit)).Delete("/", DeleteModuleHandler(d.Courses))
			mr.With(rbac.Require(rbac.PermCourseView)).Get("/lessons", ListLessonsHandler(d.Courses))
			mr.With(rbac.Require(rbac.PermCourseEdit)).Post("/lessons", AddLessonHandler(d.Courses))
		})
		pr.With(rbac.Require(rbac.PermCourseEdit)).Patch("/lessons/{lessonId}", UpdateLessonHandler(d.Courses))
		pr.With(rbac.Require(rbac.PermCourseEdit)).Delete("/lessons/{lessonId}", DeleteLessonHandler(d.Courses))

		// assessments
		pr.With(rbac.Require(rbac.PermAssessmentView)).Get("/assessments", ListAssessmentsHandler(d.Assessments))
		pr.Route("/assessments/{lessonId}", func(ar chi.Router) {
			ar.With(rbac.Require(rbac.PermAssessmentView)).Get("/", GetAssessmentHandler(d.Assessments))
			ar.With(rbac.Require(rbac.PermAssessmentAnswers)).Get("/answers", GetAssessmentAnswersHandler(d.Assessments))
			ar.With(rbac.Require(rbac.PermAssessmentEdit)).Put("/", PutAssessmentHandler(d.Assessments))
			ar.With(rbac.Require(rbac.PermAssessmentEdit)).Delete("/", DeleteAssessmentHandler(d.Assessments))
		})

		// grades
		pr.With(rbac.Require(rbac.PermGradeSubmit)).Post("/grades", SubmitGradeHandler(d.Grading))
		pr.With(rbac.Require(rbac.PermGradeApprove)).Post("/grades/approve", ApproveGradeHandler(d.Grading))
		pr.With(rbac.Require(rbac.PermGradeViewAll)).Get("/grades", ListGradesHandler(d.Grading))
		pr.With(rbac.RequireAny(rbac.PermGradeViewAll, rbac.PermGradeViewOwn)).
			Get("/grades/lesson/{lessonId}", GradeForLessonHandler(d.Grading))
		pr.With(rbac.RequireOwnerOr(rbac.PermGradeViewAll, IsGradeOwner)).
			Get("/grades/user/{userId}", GradesForUserHandler(d.Grading))

		// enrollments
		pr.With(rbac.Require(rbac.PermEnrollmentSelf)).Post("/enrollments", EnrollHandler(d.Enrollments))
		pr.With(rbac.Require(rbac.PermEnrollmentSelf)).Get("/enrollments/me", MyEnrollmentsHandler(d.Enrollments))
		pr.With(rbac.Require(rbac.PermEnrollmentViewAll)).Get("/enrollments", ListEnrollmentsHandler(d.Enrollments))
		pr.With(rbac.Require(rbac.PermEnrollmentViewAll)).
			Get("/enrollments/user/{userId}", UserEnrollmentsHandler(d.Enrollments))
		pr.With(rbac.Require(rbac.PermEnrollmentSelf)).Delete("/enrollments", DeleteAccountHandler(d.Users))

		// event log (replication / audit)
		pr.With(rbac.Require(rbac.PermEventsRead)).Get("/events", ListEventsHandler(d.Events))
	})
}
