package store

import (
	"maps"
	"sync"
	"time"

	"competency-assessment-be/pkg/batch"
	"competency-assessment-be/pkg/competency"
	"competency-assessment-be/pkg/question"
	"competency-assessment-be/pkg/scoring"
	"competency-assessment-be/pkg/skillsource"

	"github.com/google/uuid"
)

const (
	// StatusCompetencies: skills and competencies loaded, sections not built yet
	StatusCompetencies = "COMPETENCIES"
	StatusInProgress   = "IN_PROGRESS"
	StatusCompleted    = "COMPLETED"
)

// AssessmentSession is the in-memory state of one self-assessment
type AssessmentSession struct {
	ID         string                 `json:"id"`
	Status     string                 `json:"status"`
	Occupation skillsource.Occupation `json:"occupation"`

	// What the user is assessed on
	Skills         []competency.Skill      `json:"skills"`
	SkillsFallback bool                    `json:"skills_fallback"`
	Competencies   []competency.Competency `json:"competencies"`
	Questions      []question.Question     `json:"questions"`

	// The organized sections and the user's progress through them
	Sections  []batch.Section            `json:"sections"`
	Submitted map[int]bool               `json:"submitted"`
	Answers   map[int]string             `json:"answers"`
	Feedback  map[int][]scoring.Feedback `json:"feedback"`
	Scored    []scoring.ScoredAnswer     `json:"scored"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// pass admits one organize or submit at a time; mu guards the fields, so
	// reads never wait for a slow pass, only for its final commit
	pass sync.Mutex
	mu   sync.RWMutex
}

// NewAssessmentSession starts a session for occ with a fresh id
func NewAssessmentSession(occ skillsource.Occupation) *AssessmentSession {
	now := time.Now()
	return &AssessmentSession{
		ID:         uuid.NewString(),
		Status:     StatusCompetencies,
		Occupation: occ,
		Submitted:  make(map[int]bool),
		Answers:    make(map[int]string),
		Feedback:   make(map[int][]scoring.Feedback),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// TryLock claims the session for one mutating pass. It reports false when
// another pass is already running.
func (s *AssessmentSession) TryLock() bool {
	return s.pass.TryLock()
}

func (s *AssessmentSession) Unlock() {
	s.pass.Unlock()
}

// Update applies fn with the fields write-locked and stamps UpdatedAt
func (s *AssessmentSession) Update(fn func(s *AssessmentSession)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
	s.UpdatedAt = time.Now()
}

// Snapshot copies the session under a read lock. Slices are shared up to their
// current length, which writers only ever extend or replace; maps are cloned.
func (s *AssessmentSession) Snapshot() *AssessmentSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &AssessmentSession{
		ID:             s.ID,
		Status:         s.Status,
		Occupation:     s.Occupation,
		Skills:         s.Skills[:len(s.Skills):len(s.Skills)],
		SkillsFallback: s.SkillsFallback,
		Competencies:   s.Competencies[:len(s.Competencies):len(s.Competencies)],
		Questions:      s.Questions[:len(s.Questions):len(s.Questions)],
		Sections:       s.Sections[:len(s.Sections):len(s.Sections)],
		Submitted:      maps.Clone(s.Submitted),
		Answers:        maps.Clone(s.Answers),
		Feedback:       maps.Clone(s.Feedback),
		Scored:         s.Scored[:len(s.Scored):len(s.Scored)],
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// SubmittedCount is the number of sections with recorded feedback
func (s *AssessmentSession) SubmittedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.Submitted)
}

// Complete reports whether every organized section has been submitted
func (s *AssessmentSession) Complete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.Sections) > 0 && len(s.Submitted) == len(s.Sections)
}
