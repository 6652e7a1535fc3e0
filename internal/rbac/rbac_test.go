package rbac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecker_DefaultPolicy(t *testing.T) {
	c := NewChecker(nil)

	assert.True(t, c.Has("student", PermGradeSubmit))
	assert.False(t, c.Has("student", PermGradeApprove))
	assert.False(t, c.Has("student", PermAssessmentAnswers))

	assert.True(t, c.Has("teacher", PermGradeApprove), "grade:* covers approve")
	assert.True(t, c.Has("teacher", PermAssessmentEdit))
	assert.False(t, c.Has("teacher", PermEventsRead))

	assert.True(t, c.Has("admin", PermEventsRead))
	assert.False(t, c.Has("guest", PermCourseView))

	assert.True(t, c.Any("student", PermGradeViewAll, PermGradeViewOwn))
	assert.False(t, c.Any("student"))
	assert.False(t, c.Any("student", PermGradeViewAll, PermCourseEdit))
}

func serve(h func(http.Handler) http.Handler, role string) int {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if role != "" {
		req = req.WithContext(WithRole(context.Background(), role))
	}
	h(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, req)
	return rec.Code
}

func TestRequire(t *testing.T) {
	assert.Equal(t, http.StatusOK, serve(Require(PermCourseEdit), "teacher"))
	assert.Equal(t, http.StatusForbidden, serve(Require(PermCourseEdit), "student"))
	assert.Equal(t, http.StatusUnauthorized, serve(Require(PermCourseView), ""))
	assert.Equal(t, http.StatusOK, serve(RequireAny(PermGradeViewAll, PermGradeViewOwn), "student"))
}

func TestRequireOwnerOr(t *testing.T) {
	yes := func(*http.Request) bool { return true }
	no := func(*http.Request) bool { return false }

	assert.Equal(t, http.StatusOK, serve(RequireOwnerOr(PermGradeViewAll, yes), "student"))
	assert.Equal(t, http.StatusForbidden, serve(RequireOwnerOr(PermGradeViewAll, no), "student"))
	assert.Equal(t, http.StatusOK, serve(RequireOwnerOr(PermGradeViewAll, no), "teacher"))
}

func TestGrants(t *testing.T) {
	assert.True(t, grants("grade:*", "grade:approve"))
	assert.True(t, grants("*", "anything"))
	assert.True(t, grants("course:view", "course:view"))
	assert.False(t, grants("course:view", "course:view-all"))
	assert.False(t, grants("grade:*", "grades:list"))
}

func TestDeny_JSONBody(t *testing.T) {
	rec := httptest.NewRecorder()
	Deny(rec, http.StatusForbidden)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"forbidden"}`, rec.Body.String())
}
