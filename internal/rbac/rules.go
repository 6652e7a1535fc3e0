package rbac

const (
	PermCourseView         = "course:view"
	PermCourseEdit         = "course:edit"
	PermAssessmentView     = "assessment:view"
	PermAssessmentAnswers  = "assessment:view-answers"
	PermAssessmentEdit     = "assessment:edit"
	PermGradeSubmit        = "grade:submit"
	PermGradeApprove       = "grade:approve"
	PermGradeViewOwn       = "grade:view-own"
	PermGradeViewAll       = "grade:view-all"
	PermEnrollmentSelf     = "enrollment:self"
	PermEnrollmentViewAll  = "enrollment:view-all"
	PermUsersList          = "users:list"
	PermUserChangePassword = "user:change_password"
	PermEventsRead         = "events:read"
)

// RolePermissions is the default policy.
var RolePermissions = map[string][]string{
	"student": {
		PermCourseView,
		PermAssessmentView,
		PermGradeSubmit,
		PermGradeViewOwn,
		PermEnrollmentSelf,
		PermUserChangePassword,
	},
	"teacher": {
		PermCourseView,
		PermCourseEdit,
		"assessment:*",
		"grade:*",
		PermEnrollmentSelf,
		PermEnrollmentViewAll,
		PermUsersList,
		PermUserChangePassword,
	},
	"admin": {
		"*", // everything
	},
}
