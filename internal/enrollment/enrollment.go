// Package enrollment tracks which courses each learner is enrolled in.
package enrollment

import (
	"context"
	"database/sql"
	"time"

	"github.com/mind-engage/lessonhub/internal/apperr"
	"github.com/mind-engage/lessonhub/internal/course"
)

type Enrollment struct {
	UserID     string    `json:"userId"`
	CourseID   string    `json:"courseId"`
	CourseName string    `json:"courseName"`
	EnrolledAt time.Time `json:"enrolledAt"`

	UserEmail  string `json:"email,omitempty"`
	UserAvatar string `json:"avatar,omitempty"`
}

type Store interface {
	// Add is a no-op when the user is already enrolled in the course.
	Add(ctx context.Context, e Enrollment) error
	ForUser(ctx context.Context, userID string) ([]Enrollment, error)
	List(ctx context.Context) ([]Enrollment, error)
}

// Courses resolves the course being enrolled in.
type Courses interface {
	GetCourse(ctx context.Context, id string) (course.Course, error)
}

type Service struct {
	store   Store
	courses Courses
	now     func() time.Time
}

func NewService(store Store, courses Courses) *Service {
	return &Service{store: store, courses: courses, now: time.Now}
}

// Enroll adds courseID to the user's set and returns the whole set.
func (s *Service) Enroll(ctx context.Context, userID, courseID string) ([]Enrollment, error) {
	if courseID == "" {
		return nil, apperr.Invalid("enrolledCourseId", "this field is required")
	}
	c, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	err = s.store.Add(ctx, Enrollment{UserID: userID, CourseID: c.ID, CourseName: c.Name, EnrolledAt: s.now()})
	if err != nil {
		return nil, err
	}
	return s.store.ForUser(ctx, userID)
}

// Mine returns the caller's enrollments, possibly none.
func (s *Service) Mine(ctx context.Context, userID string) ([]Enrollment, error) {
	return s.store.ForUser(ctx, userID)
}

// ForUser is like Mine but reports apperr.ErrNotFound when the user has no enrollments.
func (s *Service) ForUser(ctx context.Context, userID string) ([]Enrollment, error) {
	out, err := s.store.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, apperr.NotFound("enrollment")
	}
	return out, nil
}

func (s *Service) List(ctx context.Context) ([]Enrollment, error) {
	return s.store.List(ctx)
}

type SQLStore struct{ db *sql.DB }

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Add(ctx context.Context, e Enrollment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO enrollments (user_id, course_id, course_name, enrolled_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, course_id) DO NOTHING`,
		e.UserID, e.CourseID, e.CourseName, e.EnrolledAt.UnixNano())
	return apperr.Persistence("enrollments: add", err)
}

func (s *SQLStore) ForUser(ctx context.Context, userID string) ([]Enrollment, error) {
	return s.query(ctx, "enrollments: for user", `WHERE e.user_id=$1`, userID)
}

func (s *SQLStore) List(ctx context.Context) ([]Enrollment, error) {
	return s.query(ctx, "enrollments: list", ``)
}

func (s *SQLStore) query(ctx context.Context, op, where string, args ...any) ([]Enrollment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.user_id, e.course_id, e.course_name, e.enrolled_at,
		       COALESCE(u.email, ''), COALESCE(u.avatar, '')
		  FROM enrollments e
		  LEFT JOIN users u ON u.id = e.user_id `+where+`
		 ORDER BY e.user_id, e.enrolled_at, e.course_id`, args...)
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	defer rows.Close()
	out := []Enrollment{}
	for rows.Next() {
		var (
			e  Enrollment
			at int64
		)
		if err := rows.Scan(&e.UserID, &e.CourseID, &e.CourseName, &at, &e.UserEmail, &e.UserAvatar); err != nil {
			return nil, apperr.Persistence(op, err)
		}
		e.EnrolledAt = time.Unix(0, at).UTC()
		out = append(out, e)
	}
	return out, apperr.Persistence(op, rows.Err())
}
