package assessment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mind-engage/lessonhub/internal/apperr"
)

const selectCols = `SELECT id, module_id, lesson_id, mcq_json, theory, created_at FROM assessments`

type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) ListAssessments(ctx context.Context) ([]Assessment, error) {
	rows, err := s.db.QueryContext(ctx, selectCols+` ORDER BY module_id, lesson_id`)
	if err != nil {
		return nil, apperr.Persistence("assessments: list", err)
	}
	return scanAll(rows)
}

func (s *SQLStore) FindAssessmentByLesson(ctx context.Context, lessonID string) (*Assessment, error) {
	a, err := scanOne(s.db.QueryRowContext(ctx, selectCols+` WHERE lesson_id=$1`, lessonID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("assessment")
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *SQLStore) FindAssessmentsByModule(ctx context.Context, moduleID string) ([]Assessment, error) {
	rows, err := s.db.QueryContext(ctx, selectCols+` WHERE module_id=$1 ORDER BY lesson_id`, moduleID)
	if err != nil {
		return nil, apperr.Persistence("assessments: by module", err)
	}
	return scanAll(rows)
}

func (s *SQLStore) UpsertAssessment(ctx context.Context, a Assessment) (Assessment, error) {
	for i := range a.MCQ {
		if a.MCQ[i].ID == "" {
			a.MCQ[i].ID = uuid.NewString()
		}
	}
	if a.MCQ == nil {
		a.MCQ = []Question{}
	}
	mcq, err := json.Marshal(a.MCQ)
	if err != nil {
		return Assessment{}, apperr.Persistence("assessments: encode", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO assessments (id, module_id, lesson_id, mcq_json, theory, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (lesson_id) DO UPDATE
		   SET module_id=excluded.module_id, mcq_json=excluded.mcq_json, theory=excluded.theory`,
		uuid.NewString(), a.ModuleID, a.LessonID, string(mcq), a.Theory, s.now().UnixNano())
	if err != nil {
		return Assessment{}, apperr.Persistence("assessments: upsert", err)
	}
	out, err := s.FindAssessmentByLesson(ctx, a.LessonID)
	if err != nil {
		return Assessment{}, err
	}
	return *out, nil
}

func (s *SQLStore) DeleteAssessment(ctx context.Context, lessonID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM assessments WHERE lesson_id=$1`, lessonID)
	if err != nil {
		return apperr.Persistence("assessments: delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Persistence("assessments: delete", err)
	}
	if n == 0 {
		return apperr.NotFound("assessment")
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOne(row scanner) (Assessment, error) {
	var (
		a       Assessment
		mcqJSON string
		created int64
	)
	if err := row.Scan(&a.ID, &a.ModuleID, &a.LessonID, &mcqJSON, &a.Theory, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Assessment{}, err
		}
		return Assessment{}, apperr.Persistence("assessments: scan", err)
	}
	if err := json.Unmarshal([]byte(mcqJSON), &a.MCQ); err != nil {
		return Assessment{}, apperr.Persistence("assessments: decode mcq", err)
	}
	a.CreatedAt = time.Unix(0, created).UTC()
	return a, nil
}

func scanAll(rows *sql.Rows) ([]Assessment, error) {
	defer rows.Close()
	out := []Assessment{}
	for rows.Next() {
		a, err := scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, apperr.Persistence("assessments: rows", rows.Err())
}
