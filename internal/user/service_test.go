package user

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mind-engage/lessonhub/internal/apperr"
	"github.com/mind-engage/lessonhub/internal/db/dbtest"
)

func newTestService(t *testing.T) (*Service, *SQLStore) {
	t.Helper()
	store := NewSQLStore(dbtest.Open(t))
	return NewService(store, WithHashCost(bcrypt.MinCost)), store
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	u, err := svc.Register(ctx, Registration{Email: " Ada@Example.com ", Password: "secret1", Permission: PermissionStudent})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Ada@Example.com", u.Email)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.True(t, strings.HasPrefix(u.Avatar, "https://www.gravatar.com/avatar/"))

	got, err := svc.Authenticate(ctx, Credentials{Email: "Ada@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(ctx, Credentials{Email: "Ada@Example.com", Password: "wrong"})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
	_, err = svc.Authenticate(ctx, Credentials{Email: "nobody@example.com", Password: "secret1"})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Register(ctx, Registration{Email: "a@b.io", Password: "secret1", Permission: PermissionTeacher})
	require.NoError(t, err)
	_, err = svc.Register(ctx, Registration{Email: "a@b.io", Password: "secret2", Permission: PermissionTeacher})
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), Registration{Email: "not-an-email", Password: "123", Permission: "guest"})
	require.Error(t, err)
	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr))
	fields := map[string]bool{}
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	assert.Equal(t, map[string]bool{"email": true, "password": true, "permission": true}, fields)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	u, err := svc.Register(ctx, Registration{Email: "a@b.io", Password: "secret1", Permission: PermissionStudent})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, u.ID, PasswordChange{PrevPassword: "secret1", NewPassword: "secret2", ConfirmPassword: "other"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	err = svc.ChangePassword(ctx, u.ID, PasswordChange{PrevPassword: "nope", NewPassword: "secret2", ConfirmPassword: "secret2"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	require.NoError(t, svc.ChangePassword(ctx, u.ID, PasswordChange{PrevPassword: "secret1", NewPassword: "secret2", ConfirmPassword: "secret2"}))
	_, err = svc.Authenticate(ctx, Credentials{Email: "a@b.io", Password: "secret2"})
	assert.NoError(t, err)

	err = svc.ChangePassword(ctx, "missing", PasswordChange{PrevPassword: "x", NewPassword: "secret2", ConfirmPassword: "secret2"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestListWithEnrollmentsAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	s1, err := svc.Register(ctx, Registration{Email: "s1@b.io", Password: "secret1", Permission: PermissionStudent})
	require.NoError(t, err)
	_, err = svc.Register(ctx, Registration{Email: "t1@b.io", Password: "secret1", Permission: PermissionTeacher})
	require.NoError(t, err)

	for i, c := range []string{"c1", "c2"} {
		_, err := store.db.ExecContext(ctx,
			`INSERT INTO enrollments (user_id, course_id, course_name, enrolled_at) VALUES ($1, $2, $3, $4)`,
			s1.ID, c, "Course "+c, i)
		require.NoError(t, err)
	}

	students, err := svc.List(ctx, PermissionStudent)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, []string{"c1", "c2"}, students[0].EnrolledCourses)

	everyone, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, everyone, 2)

	require.NoError(t, svc.Delete(ctx, s1.ID))
	_, err = svc.Get(ctx, s1.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	var left int
	require.NoError(t, store.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM enrollments`).Scan(&left))
	assert.Zero(t, left)

	assert.True(t, errors.Is(svc.Delete(ctx, s1.ID), apperr.ErrNotFound))
}

func TestGravatar(t *testing.T) {
	assert.Equal(t, Gravatar("a@b.io"), Gravatar("  A@B.IO "))
	assert.Equal(t,
		"https://www.gravatar.com/avatar/d41d8cd98f00b204e9800998ecf8427e?d=mm&r=pg&s=200",
		Gravatar(""))
}
