// Package grading scores MCQ submissions, decides what grade to persist and
// derives per-module completion from assessments and grades.
package grading

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/mind-engage/lessonhub/internal/assessment"
	"github.com/mind-engage/lessonhub/internal/logging"
	syncx "github.com/mind-engage/lessonhub/internal/sync"
	"github.com/mind-engage/lessonhub/internal/validation"
)

// EmptyKeyPolicy decides how SubmitGrade treats an assessment without MCQ items.
type EmptyKeyPolicy string

const (
	// EmptyKeyReject fails the submission with ErrEmptyAnswerKey.
	EmptyKeyReject EmptyKeyPolicy = "reject"
	// EmptyKeyUnapproved reports approved=false and persists nothing.
	EmptyKeyUnapproved EmptyKeyPolicy = "unapproved"
)

func ParseEmptyKeyPolicy(s string) (EmptyKeyPolicy, error) {
	switch p := EmptyKeyPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", EmptyKeyReject:
		return EmptyKeyReject, nil
	case EmptyKeyUnapproved:
		return p, nil
	default:
		return "", fmt.Errorf("unknown empty key policy %q", s)
	}
}

type Option func(*config)

type config struct {
	log      *slog.Logger
	emptyKey EmptyKeyPolicy
	events   Events
}

func WithLogger(l *slog.Logger) Option             { return func(c *config) { c.log = l } }
func WithEmptyKeyPolicy(p EmptyKeyPolicy) Option { return func(c *config) { c.emptyKey = p } }
func WithEvents(e Events) Option                 { return func(c *config) { c.events = e } }

type Service struct {
	keys     AnswerKeys
	grades   Store
	modules  Modules
	validate *validation.Validator
	cfg      config
}

func NewService(keys AnswerKeys, grades Store, modules Modules, opts ...Option) *Service {
	cfg := config{log: logging.Discard(), emptyKey: EmptyKeyReject}
	for _, o := range opts {
		o(&cfg)
	}
	return &Service{
		keys:     keys,
		grades:   grades,
		modules:  modules,
		validate: validation.New(),
		cfg:      cfg,
	}
}

// SubmitGrade scores sub against the lesson's answer key and persists the decided patch.
func (s *Service) SubmitGrade(ctx context.Context, sub Submission) (Result, error) {
	if err := s.validate.Struct(sub); err != nil {
		return Result{}, err
	}
	a, err := s.keys.FindAssessmentByLesson(ctx, sub.LessonID)
	if err != nil {
		return Result{}, err
	}

	v, err := ScoreMCQ(sub.MCQ, a.MCQ)
	if err != nil {
		if !errors.Is(err, ErrEmptyAnswerKey) || s.cfg.emptyKey == EmptyKeyReject {
			return Result{}, err
		}
		s.cfg.log.WarnContext(ctx, "assessment has no mcq items; treating as unapproved",
			"lesson_id", sub.LessonID, "module_id", sub.ModuleID)
	}
	s.cfg.log.DebugContext(ctx, "mcq scored",
		"user_id", sub.UserID, "lesson_id", sub.LessonID, "correct", v.Correct, "total", v.Total)

	switch p := Decide(v, sub.TheoryAnswer).(type) {
	case Unchanged:
	default:
		g, err := s.grades.UpsertGrade(ctx, sub.Key(), p)
		if err != nil {
			return Result{}, err
		}
		s.record(ctx, syncx.TypeGradeSubmitted, g)
	}
	return Result{Approved: v.Approved, Answers: v.Answers}, nil
}

// ApproveGrade marks a pending grade approved and attaches remarks.
func (s *Service) ApproveGrade(ctx context.Context, key GradeKey, remarks string) (Grade, error) {
	if err := s.validate.Struct(key); err != nil {
		return Grade{}, err
	}
	g, err := s.grades.UpdateGrade(ctx, key, Approval{Remarks: remarks})
	if err != nil {
		return Grade{}, err
	}
	s.record(ctx, syncx.TypeGradeApproved, g)
	return g, nil
}

// ModuleCompletionStatuses lists the course modules, with completion when q.IsCompleted is set.
// A failure on any module fails the whole call.
func (s *Service) ModuleCompletionStatuses(ctx context.Context, courseID string, q CompletionQuery) ([]ModuleCompletionStatus, error) {
	mods, err := s.modules.ListModules(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !q.IsCompleted {
		out := make([]ModuleCompletionStatus, 0, len(mods))
		for _, m := range mods {
			out = append(out, ModuleCompletionStatus{ModuleID: m.ID, ModuleName: m.Name})
		}
		return out, nil
	}

	assessments := make(map[string][]assessment.Assessment, len(mods))
	grades := make(map[string][]Grade, len(mods))
	for _, m := range mods {
		as, err := s.keys.FindAssessmentsByModule(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		gs, err := s.grades.FindGradesByModule(ctx, m.ID, q.UserID)
		if err != nil {
			return nil, err
		}
		assessments[m.ID] = as
		grades[m.ID] = gs
	}
	return Aggregate(mods, assessments, grades), nil
}

func (s *Service) ListGrades(ctx context.Context, f GradeFilter) ([]Grade, error) {
	return s.grades.ListGrades(ctx, f)
}

// GradeForLesson returns a grade for the lesson; userID narrows it to one learner.
func (s *Service) GradeForLesson(ctx context.Context, lessonID, userID string) (Grade, error) {
	return s.grades.FindGradeByLesson(ctx, lessonID, userID)
}

func (s *Service) GradesForUser(ctx context.Context, userID string) ([]Grade, error) {
	return s.grades.FindGradesByUser(ctx, userID)
}

// record appends an audit event. The grade is already written, so failures are only logged.
func (s *Service) record(ctx context.Context, typ string, g Grade) {
	if s.cfg.events == nil {
		return
	}
	key := g.UserID + "/" + g.ModuleID + "/" + g.LessonID
	if err := s.cfg.events.Record(ctx, typ, key, g); err != nil {
		s.cfg.log.ErrorContext(ctx, "append grade event", "type", typ, "key", key, "err", err)
	}
}
