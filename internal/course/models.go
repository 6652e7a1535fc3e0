package course

type Lesson struct {
	ID         string `json:"id"`
	ModuleID   string `json:"moduleId"`
	Title      string `json:"title"`
	Objectives string `json:"objectives,omitempty"`
	Overview   string `json:"overview,omitempty"`
	KeyTerms   string `json:"keyTerms,omitempty"`
	Content    string `json:"content,omitempty"`
}

type Module struct {
	ID       string   `json:"id"`
	CourseID string   `json:"courseId"`
	Name     string   `json:"moduleName"`
	Lessons  []Lesson `json:"lessons,omitempty"`
}

type Course struct {
	ID      string   `json:"id"`
	Name    string   `json:"courseName"`
	Modules []Module `json:"modules,omitempty"`
}

// LessonPatch changes only the non-empty fields.
type LessonPatch struct {
	Title      string `json:"title"`
	Objectives string `json:"objectives"`
	Overview   string `json:"overview"`
	KeyTerms   string `json:"keyTerms"`
	Content    string `json:"content"`
}

func (p LessonPatch) Empty() bool {
	return p.Title == "" && p.Objectives == "" && p.Overview == "" && p.KeyTerms == "" && p.Content == ""
}

func (p LessonPatch) apply(l *Lesson) {
	if p.Title != "" {
		l.Title = p.Title
	}
	if p.Objectives != "" {
		l.Objectives = p.Objectives
	}
	if p.Overview != "" {
		l.Overview = p.Overview
	}
	if p.KeyTerms != "" {
		l.KeyTerms = p.KeyTerms
	}
	if p.Content != "" {
		l.Content = p.Content
	}
}
