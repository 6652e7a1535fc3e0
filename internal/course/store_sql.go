package course

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mind-engage/lessonhub/internal/apperr"
)

type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) ListCourses(ctx context.Context) ([]Course, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM courses ORDER BY created_at, id`)
	if err != nil {
		return nil, apperr.Persistence("courses: list", err)
	}
	defer rows.Close()
	out := []Course{}
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, apperr.Persistence("courses: scan", err)
		}
		out = append(out, c)
	}
	return out, apperr.Persistence("courses: rows", rows.Err())
}

func (s *SQLStore) GetCourse(ctx context.Context, id string) (Course, error) {
	c, err := s.courseRow(ctx, id)
	if err != nil {
		return Course{}, err
	}
	mods, err := s.ListModules(ctx, id)
	if err != nil {
		return Course{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.module_id, l.title, l.objectives, l.overview, l.key_terms, l.content
		  FROM lessons l
		  JOIN modules m ON m.id = l.module_id
		 WHERE m.course_id = $1
		 ORDER BY l.created_at, l.id`, id)
	if err != nil {
		return Course{}, apperr.Persistence("courses: lessons", err)
	}
	lessons, err := scanLessons(rows)
	if err != nil {
		return Course{}, err
	}

	byModule := map[string][]Lesson{}
	for _, l := range lessons {
		byModule[l.ModuleID] = append(byModule[l.ModuleID], l)
	}
	for i := range mods {
		mods[i].Lessons = byModule[mods[i].ID]
	}
	c.Modules = mods
	return c, nil
}

func (s *SQLStore) CreateCourse(ctx context.Context, name string) (Course, error) {
	c := Course{ID: uuid.NewString(), Name: name}
	_, err := s.db.ExecContext(ctx, `INSERT INTO courses (id, name, created_at) VALUES ($1, $2, $3)`,
		c.ID, c.Name, s.now().UnixNano())
	if err != nil {
		return Course{}, apperr.Persistence("courses: insert", err)
	}
	return c, nil
}

func (s *SQLStore) RenameCourse(ctx context.Context, id, name string) (Course, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE courses SET name=$1 WHERE id=$2`, name, id)
	if err := affectedOne(res, err, "courses: rename", "course"); err != nil {
		return Course{}, err
	}
	return Course{ID: id, Name: name}, nil
}

func (s *SQLStore) DeleteCourse(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM courses WHERE id=$1`, id)
	return affectedOne(res, err, "courses: delete", "course")
}

func (s *SQLStore) ListModules(ctx context.Context, courseID string) ([]Module, error) {
	if _, err := s.courseRow(ctx, courseID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, course_id, name FROM modules WHERE course_id=$1 ORDER BY created_at, id`, courseID)
	if err != nil {
		return nil, apperr.Persistence("modules: list", err)
	}
	defer rows.Close()
	out := []Module{}
	for rows.Next() {
		var m Module
		if err := rows.Scan(&m.ID, &m.CourseID, &m.Name); err != nil {
			return nil, apperr.Persistence("modules: scan", err)
		}
		out = append(out, m)
	}
	return out, apperr.Persistence("modules: rows", rows.Err())
}

func (s *SQLStore) AddModule(ctx context.Context, courseID, name string) (Module, error) {
	if _, err := s.courseRow(ctx, courseID); err != nil {
		return Module{}, err
	}
	m := Module{ID: uuid.NewString(), CourseID: courseID, Name: name}
	_, err := s.db.ExecContext(ctx, `INSERT INTO modules (id, course_id, name, created_at) VALUES ($1, $2, $3, $4)`,
		m.ID, m.CourseID, m.Name, s.now().UnixNano())
	if err != nil {
		return Module{}, apperr.Persistence("modules: insert", err)
	}
	return m, nil
}

func (s *SQLStore) RenameModule(ctx context.Context, moduleID, name string) (Module, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE modules SET name=$1 WHERE id=$2`, name, moduleID)
	if err := affectedOne(res, err, "modules: rename", "module"); err != nil {
		return Module{}, err
	}
	var m Module
	err = s.db.QueryRowContext(ctx, `SELECT id, course_id, name FROM modules WHERE id=$1`, moduleID).
		Scan(&m.ID, &m.CourseID, &m.Name)
	if err != nil {
		return Module{}, apperr.Persistence("modules: get", err)
	}
	return m, nil
}

func (s *SQLStore) DeleteModule(ctx context.Context, moduleID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM modules WHERE id=$1`, moduleID)
	return affectedOne(res, err, "modules: delete", "module")
}

func (s *SQLStore) ListLessons(ctx context.Context, moduleID string) ([]Lesson, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM modules WHERE id=$1`, moduleID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("module")
	}
	if err != nil {
		return nil, apperr.Persistence("lessons: module", err)
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, module_id, title, objectives, overview, key_terms, content
		  FROM lessons WHERE module_id=$1 ORDER BY created_at, id`, moduleID)
	if err != nil {
		return nil, apperr.Persistence("lessons: list", err)
	}
	return scanLessons(rows)
}

func (s *SQLStore) AddLesson(ctx context.Context, moduleID string, l Lesson) (Lesson, error) {
	l.ID = uuid.NewString()
	l.ModuleID = moduleID
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lessons (id, module_id, title, objectives, overview, key_terms, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		l.ID, l.ModuleID, l.Title, l.Objectives, l.Overview, l.KeyTerms, l.Content, s.now().UnixNano())
	if err != nil {
		if isForeignKeyErr(err) {
			return Lesson{}, apperr.NotFound("module")
		}
		return Lesson{}, apperr.Persistence("lessons: insert", err)
	}
	return l, nil
}

func (s *SQLStore) UpdateLesson(ctx context.Context, lessonID string, p LessonPatch) (Lesson, error) {
	l, err := s.lessonRow(ctx, lessonID)
	if err != nil {
		return Lesson{}, err
	}
	if p.Empty() {
		return l, nil
	}
	p.apply(&l)
	_, err = s.db.ExecContext(ctx, `
		UPDATE lessons SET title=$1, objectives=$2, overview=$3, key_terms=$4, content=$5 WHERE id=$6`,
		l.Title, l.Objectives, l.Overview, l.KeyTerms, l.Content, lessonID)
	if err != nil {
		return Lesson{}, apperr.Persistence("lessons: update", err)
	}
	return l, nil
}

func (s *SQLStore) DeleteLesson(ctx context.Context, lessonID string) (string, error) {
	l, err := s.lessonRow(ctx, lessonID)
	if err != nil {
		return "", err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM lessons WHERE id=$1`, lessonID); err != nil {
		return "", apperr.Persistence("lessons: delete", err)
	}
	return l.ModuleID, nil
}

// ---------- helpers ----------

func (s *SQLStore) courseRow(ctx context.Context, id string) (Course, error) {
	var c Course
	err := s.db.QueryRowContext(ctx, `SELECT id, name FROM courses WHERE id=$1`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return Course{}, apperr.NotFound("course")
	}
	if err != nil {
		return Course{}, apperr.Persistence("courses: get", err)
	}
	return c, nil
}

func (s *SQLStore) lessonRow(ctx context.Context, id string) (Lesson, error) {
	var l Lesson
	err := s.db.QueryRowContext(ctx, `
		SELECT id, module_id, title, objectives, overview, key_terms, content
		  FROM lessons WHERE id=$1`, id).
		Scan(&l.ID, &l.ModuleID, &l.Title, &l.Objectives, &l.Overview, &l.KeyTerms, &l.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return Lesson{}, apperr.NotFound("lesson")
	}
	if err != nil {
		return Lesson{}, apperr.Persistence("lessons: get", err)
	}
	return l, nil
}

func scanLessons(rows *sql.Rows) ([]Lesson, error) {
	defer rows.Close()
	out := []Lesson{}
	for rows.Next() {
		var l Lesson
		if err := rows.Scan(&l.ID, &l.ModuleID, &l.Title, &l.Objectives, &l.Overview, &l.KeyTerms, &l.Content); err != nil {
			return nil, apperr.Persistence("lessons: scan", err)
		}
		out = append(out, l)
	}
	return out, apperr.Persistence("lessons: rows", rows.Err())
}

func affectedOne(res sql.Result, err error, op, what string) error {
	if err != nil {
		return apperr.Persistence(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Persistence(op, err)
	}
	if n == 0 {
		return apperr.NotFound(what)
	}
	return nil
}

func isForeignKeyErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key") // sqlite: FOREIGN KEY constraint failed; postgres: violates foreign key constraint
}
