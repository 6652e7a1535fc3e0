package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/mind-engage/lessonhub/internal/apperr"
)

type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) Create(ctx context.Context, u User) (User, error) {
	u.ID = uuid.NewString()
	u.CreatedAt = time.Unix(0, s.now().UnixNano()).UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, permission, avatar, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Email, u.PasswordHash, u.Permission, u.Avatar, u.CreatedAt.UnixNano())
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return User{}, pkgerrors.Wrap(apperr.ErrConflict, "user already exists")
		}
		return User{}, apperr.Persistence("users: insert", err)
	}
	return u, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (User, error) {
	return s.one(ctx, `WHERE id=$1`, id)
}

func (s *SQLStore) FindByEmail(ctx context.Context, email string) (User, error) {
	return s.one(ctx, `WHERE email=$1`, email)
}

func (s *SQLStore) List(ctx context.Context, permission string) ([]User, error) {
	q := `
		SELECT u.id, u.email, u.password_hash, u.permission, u.avatar, u.created_at, e.course_id
		  FROM users u
		  LEFT JOIN enrollments e ON e.user_id = u.id`
	var args []any
	if permission != "" {
		q += ` WHERE u.permission=$1`
		args = append(args, permission)
	}
	q += ` ORDER BY u.created_at, u.id, e.enrolled_at`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, apperr.Persistence("users: list", err)
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		var (
			u        User
			created  int64
			courseID sql.NullString
		)
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Permission, &u.Avatar, &created, &courseID); err != nil {
			return nil, apperr.Persistence("users: scan", err)
		}
		if n := len(out); n > 0 && out[n-1].ID == u.ID {
			if courseID.Valid {
				out[n-1].EnrolledCourses = append(out[n-1].EnrolledCourses, courseID.String)
			}
			continue
		}
		u.CreatedAt = time.Unix(0, created).UTC()
		if courseID.Valid {
			u.EnrolledCourses = []string{courseID.String}
		}
		out = append(out, u)
	}
	return out, apperr.Persistence("users: rows", rows.Err())
}

func (s *SQLStore) SetPassword(ctx context.Context, id, hash string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET password_hash=$1 WHERE id=$2`, hash, id)
	if err != nil {
		return apperr.Persistence("users: set password", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return apperr.Persistence("users: set password", err)
	} else if n == 0 {
		return apperr.NotFound("user")
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Persistence("users: begin", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = apperr.Persistence("users: commit", tx.Commit())
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM enrollments WHERE user_id=$1`, id); err != nil {
		return apperr.Persistence("users: delete enrollments", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return apperr.Persistence("users: delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Persistence("users: delete", err)
	}
	if n == 0 {
		return apperr.NotFound("user")
	}
	return nil
}

func (s *SQLStore) one(ctx context.Context, where string, arg any) (User, error) {
	var (
		u       User
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, permission, avatar, created_at FROM users `+where, arg).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Permission, &u.Avatar, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, apperr.NotFound("user")
	}
	if err != nil {
		return User{}, apperr.Persistence("users: get", err)
	}
	u.CreatedAt = time.Unix(0, created).UTC()
	return u, nil
}
