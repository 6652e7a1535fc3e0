package grading

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mind-engage/lessonhub/internal/apperr"
)

const gradeCols = `g.id, g.user_id, g.module_id, g.lesson_id, g.approved, g.theory_answer, g.remarks, g.graded_at`

type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) FindGradesByModule(ctx context.Context, moduleID, userID string) ([]Grade, error) {
	q := `SELECT ` + gradeCols + ` FROM grades g WHERE g.module_id=$1`
	args := []any{moduleID}
	if userID != "" {
		q += ` AND g.user_id=$2`
		args = append(args, userID)
	}
	q += ` ORDER BY g.lesson_id, g.user_id`
	return s.query(ctx, "grades: by module", q, args...)
}

func (s *SQLStore) UpsertGrade(ctx context.Context, key GradeKey, p Patch) (Grade, error) {
	var (
		approved bool
		theory   sql.NullString
	)
	switch p := p.(type) {
	case AutoApproved:
		approved = true
	case PendingReview:
		theory = sql.NullString{String: p.TheoryAnswer, Valid: true}
	case Unchanged:
		return Grade{}, apperr.Invalid("patch", "nothing to persist")
	default:
		panic(fmt.Sprintf("grading: unknown patch %T", p))
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO grades (id, user_id, module_id, lesson_id, approved, theory_answer, remarks, graded_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULL, $7)
		ON CONFLICT (user_id, module_id, lesson_id) DO UPDATE
		   SET approved=excluded.approved,
		       theory_answer=excluded.theory_answer,
		       remarks=NULL,
		       graded_at=excluded.graded_at`,
		uuid.NewString(), key.UserID, key.ModuleID, key.LessonID, approved, theory, s.now().UnixNano())
	if err != nil {
		return Grade{}, apperr.Persistence("grades: upsert", err)
	}
	return s.byKey(ctx, key)
}

func (s *SQLStore) UpdateGrade(ctx context.Context, key GradeKey, a Approval) (Grade, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE grades SET approved=$1, remarks=$2
		 WHERE user_id=$3 AND module_id=$4 AND lesson_id=$5`,
		true, a.Remarks, key.UserID, key.ModuleID, key.LessonID)
	if err != nil {
		return Grade{}, apperr.Persistence("grades: approve", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Grade{}, apperr.Persistence("grades: approve", err)
	}
	if n == 0 {
		return Grade{}, apperr.NotFound("grade")
	}
	return s.byKey(ctx, key)
}

func (s *SQLStore) ListGrades(ctx context.Context, f GradeFilter) ([]Grade, error) {
	if f.Approved != nil && !*f.Approved {
		return s.pending(ctx)
	}
	q := `SELECT ` + gradeCols + ` FROM grades g`
	var args []any
	if f.Approved != nil {
		q += ` WHERE g.approved=$1`
		args = append(args, *f.Approved)
	}
	q += ` ORDER BY g.graded_at, g.id`
	return s.query(ctx, "grades: list", q, args...)
}

// pending lists grades awaiting review together with the theory question they answer.
func (s *SQLStore) pending(ctx context.Context) ([]Grade, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+gradeCols+`, COALESCE(a.theory, '')
		  FROM grades g
		  LEFT JOIN assessments a ON a.lesson_id = g.lesson_id
		 WHERE g.approved=$1
		 ORDER BY g.graded_at, g.id`, false)
	if err != nil {
		return nil, apperr.Persistence("grades: pending", err)
	}
	defer rows.Close()
	out := []Grade{}
	for rows.Next() {
		var question string
		g, err := scanGrade(rows, &question)
		if err != nil {
			return nil, err
		}
		g.TheoryQuestion = question
		out = append(out, g)
	}
	return out, apperr.Persistence("grades: pending rows", rows.Err())
}

func (s *SQLStore) FindGradeByLesson(ctx context.Context, lessonID, userID string) (Grade, error) {
	q := `SELECT ` + gradeCols + ` FROM grades g WHERE g.lesson_id=$1`
	args := []any{lessonID}
	if userID != "" {
		q += ` AND g.user_id=$2`
		args = append(args, userID)
	}
	g, err := scanGrade(s.db.QueryRowContext(ctx, q+` ORDER BY g.graded_at, g.id LIMIT 1`, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return Grade{}, apperr.NotFound("grade")
	}
	return g, err
}

func (s *SQLStore) FindGradesByUser(ctx context.Context, userID string) ([]Grade, error) {
	return s.query(ctx, "grades: by user",
		`SELECT `+gradeCols+` FROM grades g WHERE g.user_id=$1 ORDER BY g.module_id, g.lesson_id`, userID)
}

// ---------- helpers ----------

func (s *SQLStore) byKey(ctx context.Context, key GradeKey) (Grade, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+gradeCols+` FROM grades g WHERE g.user_id=$1 AND g.module_id=$2 AND g.lesson_id=$3`,
		key.UserID, key.ModuleID, key.LessonID)
	g, err := scanGrade(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Grade{}, apperr.NotFound("grade")
	}
	return g, err
}

func (s *SQLStore) query(ctx context.Context, op, q string, args ...any) ([]Grade, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	defer rows.Close()
	out := []Grade{}
	for rows.Next() {
		g, err := scanGrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, apperr.Persistence(op, rows.Err())
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGrade(row scanner, extra ...any) (Grade, error) {
	var (
		g       Grade
		theory  sql.NullString
		remarks sql.NullString
		graded  int64
	)
	dest := append([]any{&g.ID, &g.UserID, &g.ModuleID, &g.LessonID, &g.Approved, &theory, &remarks, &graded}, extra...)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Grade{}, err
		}
		return Grade{}, apperr.Persistence("grades: scan", err)
	}
	if theory.Valid {
		g.TheoryAnswer = &theory.String
	}
	if remarks.Valid {
		g.Remarks = &remarks.String
	}
	g.Date = time.Unix(0, graded).UTC()
	return g, nil
}
