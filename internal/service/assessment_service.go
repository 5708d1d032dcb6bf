package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"competency-assessment-be/internal/pkg/logger"
	"competency-assessment-be/internal/repository/memory"
	"competency-assessment-be/internal/tracer"
	"competency-assessment-be/pkg/batch"
	"competency-assessment-be/pkg/competency"
	"competency-assessment-be/pkg/events"
	"competency-assessment-be/pkg/question"
	"competency-assessment-be/pkg/scoring"
	"competency-assessment-be/pkg/skillsource"
	"competency-assessment-be/pkg/store"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const assessmentModule = "ASSESSMENT"

var (
	ErrSessionNotFound   = errors.New("assessment session not found")
	ErrSessionBusy       = errors.New("assessment session is busy")
	ErrSectionOutOfRange = errors.New("section index out of range")
	ErrSectionSubmitted  = errors.New("section already submitted")
	ErrInvalidOccupation = errors.New("occupation code and title are required")
)

// SkillProvider resolves occupations and their skills; *skillsource.Source implements it
type SkillProvider interface {
	Occupations() []skillsource.Occupation
	Search(ctx context.Context, term string) []skillsource.Occupation
	Skills(ctx context.Context, occ skillsource.Occupation) skillsource.SkillSet
}

// SectionOrganizer is implemented by *batch.Organizer
type SectionOrganizer interface {
	Organize(ctx context.Context, pool []question.Question, comps []competency.Competency, occupationTitle string) (*batch.Result, error)
}

// AnswerScorer is implemented by *scoring.Scorer
type AnswerScorer interface {
	Evaluate(ctx context.Context, q question.Question, response string) scoring.Feedback
}

// SectionView is one organized section with its position and submission state
type SectionView struct {
	Index             int
	TotalSectionCount int
	Submitted         bool
	Section           batch.Section
}

type IAssessmentService interface {
	ListOccupations(ctx context.Context) []skillsource.Occupation
	SearchOccupations(ctx context.Context, term string) []skillsource.Occupation

	StartSession(ctx context.Context, occ skillsource.Occupation) (*store.AssessmentSession, error)
	GetSession(ctx context.Context, sessionID string) (*store.AssessmentSession, error)
	OrganizeSections(ctx context.Context, sessionID string) (*store.AssessmentSession, error)
	GetSection(ctx context.Context, sessionID string, index int) (*SectionView, error)
	SubmitSection(ctx context.Context, sessionID string, index int, answers map[int]string) ([]scoring.Feedback, error)
	GetResults(ctx context.Context, sessionID string) (*scoring.Report, error)
	Restart(ctx context.Context, sessionID string) error
}

type assessmentService struct {
	skills    SkillProvider
	generator *question.Generator
	organizer SectionOrganizer
	scorer    AnswerScorer
	sessions  *memory.SessionRepository
	publisher IEventPublisher
	logger    logger.ILogger
}

func NewAssessmentService(
	skills SkillProvider,
	generator *question.Generator,
	organizer SectionOrganizer,
	scorer AnswerScorer,
	sessions *memory.SessionRepository,
	publisher IEventPublisher,
	log logger.ILogger,
) IAssessmentService {
	return &assessmentService{
		skills:    skills,
		generator: generator,
		organizer: organizer,
		scorer:    scorer,
		sessions:  sessions,
		publisher: publisher,
		logger:    log,
	}
}

func (s *assessmentService) ListOccupations(ctx context.Context) []skillsource.Occupation {
	return s.skills.Occupations()
}

func (s *assessmentService) SearchOccupations(ctx context.Context, term string) []skillsource.Occupation {
	ctx, span := tracer.Start(ctx, "assessment.search_occupations")
	defer span.End()
	span.SetAttributes(attribute.String("term", term))

	return s.skills.Search(ctx, term)
}

// StartSession loads skills for occ, derives the representative competencies
// and generates the question pool. The static question bank is used only when
// the skill set yields no questions at all.
func (s *assessmentService) StartSession(ctx context.Context, occ skillsource.Occupation) (*store.AssessmentSession, error) {
	occ.Code = strings.TrimSpace(occ.Code)
	occ.Title = strings.TrimSpace(occ.Title)
	if occ.Code == "" || occ.Title == "" {
		return nil, ErrInvalidOccupation
	}

	ctx, span := tracer.Start(ctx, "assessment.start_session")
	defer span.End()
	span.SetAttributes(attribute.String("occupation.code", occ.Code))

	set := s.skills.Skills(ctx, occ)

	session := store.NewAssessmentSession(occ)
	session.Skills = set.Skills
	session.SkillsFallback = set.Fallback
	session.Competencies = competency.GenerateRepresentativeCompetencies(set.Skills)
	session.Questions = s.generator.Generate(set.Skills, occ.Title)
	if len(session.Questions) == 0 {
		s.logger.Warn(assessmentModule, "No questions generated from skills, using static bank", map[string]interface{}{
			"session_id": session.ID,
			"code":       occ.Code,
		})
		session.Questions = question.FallbackBank()
	}
	s.sessions.Save(session)

	s.logger.Info(assessmentModule, "Assessment session started", map[string]interface{}{
		"session_id":   session.ID,
		"code":         occ.Code,
		"skills":       len(session.Skills),
		"competencies": len(session.Competencies),
		"questions":    len(session.Questions),
		"fallback":     set.Fallback,
	})

	if set.Fallback {
		s.publisher.Publish(ctx, events.New(events.TypeSkillSourceFallback, map[string]interface{}{
			"session_id": session.ID,
			"code":       occ.Code,
		}))
	}
	s.publisher.Publish(ctx, events.New(events.TypeSessionStarted, map[string]interface{}{
		"session_id":   session.ID,
		"code":         occ.Code,
		"occupation":   occ.Title,
		"competencies": len(session.Competencies),
		"questions":    len(session.Questions),
	}))

	return session.Snapshot(), nil
}

// GetSession returns a point-in-time copy that callers may read freely while
// other requests keep mutating the stored session.
func (s *assessmentService) GetSession(ctx context.Context, sessionID string) (*store.AssessmentSession, error) {
	session, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	return session.Snapshot(), nil
}

func (s *assessmentService) load(sessionID string) (*store.AssessmentSession, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return session, nil
}

// OrganizeSections builds the sections once per session. Calling it again on
// an organized session returns the existing sections; Restart starts over.
func (s *assessmentService) OrganizeSections(ctx context.Context, sessionID string) (*store.AssessmentSession, error) {
	session, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.TryLock() {
		return nil, ErrSessionBusy
	}
	defer session.Unlock()

	// the pass lock excludes every other writer, so these reads are stable
	if len(session.Sections) > 0 {
		return session.Snapshot(), nil
	}

	ctx, span := tracer.Start(ctx, "assessment.organize_sections")
	defer span.End()
	span.SetAttributes(
		attribute.String("session.id", session.ID),
		attribute.Int("questions", len(session.Questions)),
		attribute.Int("competencies", len(session.Competencies)),
	)

	start := time.Now()
	result, err := s.organizer.Organize(ctx, session.Questions, session.Competencies, session.Occupation.Title)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Warn(assessmentModule, "Organizing sections failed", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
		return nil, err
	}

	session.Update(func(ss *store.AssessmentSession) {
		ss.Questions = append(ss.Questions, result.Supplemental...)
		ss.Sections = result.Sections
		ss.Status = store.StatusInProgress
	})
	s.sessions.Save(session)

	span.SetAttributes(attribute.Int("sections", len(result.Sections)))
	s.logger.Info(assessmentModule, "Sections organized", map[string]interface{}{
		"session_id":   session.ID,
		"sections":     len(result.Sections),
		"supplemental": len(result.Supplemental),
		"duration_ms":  time.Since(start).Milliseconds(),
	})

	categories := make([]string, len(result.Sections))
	for i, sec := range result.Sections {
		categories[i] = sec.Category
	}
	s.publisher.Publish(ctx, events.New(events.TypeSectionsOrganized, map[string]interface{}{
		"session_id":          session.ID,
		"total_section_count": len(result.Sections),
		"categories":          categories,
	}))

	return session.Snapshot(), nil
}

func (s *assessmentService) GetSection(ctx context.Context, sessionID string, index int) (*SectionView, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(session.Sections) {
		return nil, fmt.Errorf("%w: %d of %d", ErrSectionOutOfRange, index, len(session.Sections))
	}

	return &SectionView{
		Index:             index,
		TotalSectionCount: len(session.Sections),
		Submitted:         session.Submitted[index],
		Section:           session.Sections[index],
	}, nil
}

// SubmitSection scores every question of the section. Questions without an
// answer are scored as empty responses, which always land on level 1.
func (s *assessmentService) SubmitSection(ctx context.Context, sessionID string, index int, answers map[int]string) ([]scoring.Feedback, error) {
	session, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.TryLock() {
		return nil, ErrSessionBusy
	}
	defer session.Unlock()

	if index < 0 || index >= len(session.Sections) {
		return nil, fmt.Errorf("%w: %d of %d", ErrSectionOutOfRange, index, len(session.Sections))
	}
	if session.Submitted[index] {
		return nil, fmt.Errorf("%w: %d", ErrSectionSubmitted, index)
	}

	ctx, span := tracer.Start(ctx, "assessment.submit_section")
	defer span.End()
	span.SetAttributes(attribute.String("session.id", session.ID), attribute.Int("section.index", index))

	section := session.Sections[index]
	feedback := make([]scoring.Feedback, 0, len(section.Questions))
	responses := make(map[int]string, len(section.Questions))
	scored := make([]scoring.ScoredAnswer, 0, len(section.Questions))
	for _, q := range section.Questions {
		response := strings.TrimSpace(answers[q.ID])
		fb := s.scorer.Evaluate(ctx, q, response)

		responses[q.ID] = response
		scored = append(scored, scoring.ScoredAnswer{
			Category:   section.Category,
			QuestionID: q.ID,
			Level:      fb.Level,
		})
		feedback = append(feedback, fb)
	}

	var completed bool
	var all []scoring.ScoredAnswer
	session.Update(func(ss *store.AssessmentSession) {
		for id, response := range responses {
			ss.Answers[id] = response
		}
		ss.Scored = append(ss.Scored, scored...)
		ss.Feedback[index] = feedback
		ss.Submitted[index] = true
		completed = len(ss.Submitted) == len(ss.Sections)
		if completed {
			ss.Status = store.StatusCompleted
		}
		all = ss.Scored[:len(ss.Scored):len(ss.Scored)]
	})

	s.logger.Info(assessmentModule, "Section submitted", map[string]interface{}{
		"session_id": session.ID,
		"section":    index,
		"category":   section.Category,
		"questions":  len(feedback),
	})
	s.publisher.Publish(ctx, events.New(events.TypeSectionSubmitted, map[string]interface{}{
		"session_id": session.ID,
		"section":    index,
		"category":   section.Category,
		"questions":  len(feedback),
	}))

	if completed {
		report := scoring.Aggregate(all)
		s.publisher.Publish(ctx, events.New(events.TypeAssessmentCompleted, map[string]interface{}{
			"session_id":         session.ID,
			"occupation":         session.Occupation.Title,
			"overall_label":      report.Overall.Label,
			"overall_percentage": report.Overall.Percentage,
			"answered":           report.Overall.Answered,
		}))
	}
	s.sessions.Save(session)

	return feedback, nil
}

// GetResults aggregates every answer scored so far, grouped by the category of
// the section each question was asked in.
func (s *assessmentService) GetResults(ctx context.Context, sessionID string) (*scoring.Report, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	report := scoring.Aggregate(session.Scored)
	return &report, nil
}

// Restart discards the session; the user goes back to occupation selection
func (s *assessmentService) Restart(ctx context.Context, sessionID string) error {
	session, err := s.load(sessionID)
	if err != nil {
		return err
	}
	if !session.TryLock() {
		return ErrSessionBusy
	}
	defer session.Unlock()

	s.sessions.Delete(session.ID)
	s.publisher.Publish(ctx, events.New(events.TypeAssessmentRestarted, map[string]interface{}{
		"session_id": session.ID,
		"submitted":  session.SubmittedCount(),
	}))
	return nil
}
