package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"competency-assessment-be/internal/pkg/logger"
	"competency-assessment-be/internal/repository/memory"
	"competency-assessment-be/pkg/batch"
	"competency-assessment-be/pkg/competency"
	"competency-assessment-be/pkg/events"
	"competency-assessment-be/pkg/question"
	"competency-assessment-be/pkg/scoring"
	"competency-assessment-be/pkg/skillsource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var registeredNurses = skillsource.Occupation{Code: "29-1141.00", Title: "Registered Nurses"}

type recordingPublisher struct {
	mu    sync.Mutex
	types []string
	last  map[string]map[string]interface{}
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		p.last = make(map[string]map[string]interface{})
	}
	p.types = append(p.types, event.EventType())
	p.last[event.EventType()] = event.Payload()
}

type failingOrganizer struct{}

func (failingOrganizer) Organize(context.Context, []question.Question, []competency.Competency, string) (*batch.Result, error) {
	return nil, batch.ErrNoSections
}

func newOfflineService(t *testing.T, organizer SectionOrganizer) (IAssessmentService, *recordingPublisher) {
	svc, pub, _ := newOfflineServiceWithRepo(t, organizer)
	return svc, pub
}

func newOfflineServiceWithRepo(t *testing.T, organizer SectionOrganizer) (IAssessmentService, *recordingPublisher, *memory.SessionRepository) {
	t.Helper()
	log := logger.NewNopLogger()
	if organizer == nil {
		organizer = batch.NewOrganizer(log)
	}
	pub := &recordingPublisher{}
	repo := memory.NewSessionRepository(time.Hour)
	svc := NewAssessmentService(
		skillsource.NewSource(nil, nil, log),
		question.NewGenerator(nil),
		organizer,
		scoring.NewScorer(nil, log),
		repo,
		pub,
		log,
	)
	return svc, pub, repo
}

func TestRegisteredNursesOfflineAssessment(t *testing.T) {
	svc, pub := newOfflineService(t, nil)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, registeredNurses)
	require.NoError(t, err)
	assert.True(t, session.SkillsFallback)
	assert.NotEmpty(t, session.Competencies)
	assert.NotEmpty(t, session.Questions)

	session, err = svc.OrganizeSections(ctx, session.ID)
	require.NoError(t, err)
	require.NotEmpty(t, session.Sections)

	seen := make(map[int]bool)
	for i := range session.Sections {
		view, err := svc.GetSection(ctx, session.ID, i)
		require.NoError(t, err)
		assert.Equal(t, len(session.Sections), view.TotalSectionCount)
		assert.NotEmpty(t, view.Section.CategoryCompetencies)
		assert.GreaterOrEqual(t, len(view.Section.Questions), batch.MinSectionSize)
		for _, q := range view.Section.Questions {
			assert.False(t, seen[q.ID], "question %d appears in two sections", q.ID)
			seen[q.ID] = true
		}
	}
	assert.EqualValues(t, len(session.Sections), pub.last[events.TypeSectionsOrganized]["total_section_count"])

	answered := 0
	for i, sec := range session.Sections {
		answers := make(map[int]string)
		for _, q := range sec.Questions {
			answers[q.ID] = strings.Repeat("I would assess and document the situation carefully. ", 5)
		}
		feedback, err := svc.SubmitSection(ctx, session.ID, i, answers)
		require.NoError(t, err)
		require.Len(t, feedback, len(sec.Questions))
		answered += len(feedback)
		for _, fb := range feedback {
			assert.Equal(t, scoring.MethodKeyword, fb.EvaluationMethod)
		}
	}

	report, err := svc.GetResults(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, report.Categories, len(session.Sections))
	assert.Equal(t, answered, report.Overall.Answered)
	assert.Contains(t, pub.types, events.TypeAssessmentCompleted)
	assert.Contains(t, pub.types, events.TypeSkillSourceFallback)
}

func TestOrganizeSectionsIsIdempotent(t *testing.T) {
	svc, _ := newOfflineService(t, nil)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, registeredNurses)
	require.NoError(t, err)

	first, err := svc.OrganizeSections(ctx, session.ID)
	require.NoError(t, err)
	count := len(first.Sections)

	second, err := svc.OrganizeSections(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, second.Sections, count)
}

func TestAssessmentServiceErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid occupation", func(t *testing.T) {
		svc, _ := newOfflineService(t, nil)
		_, err := svc.StartSession(ctx, skillsource.Occupation{Code: " ", Title: "Nurses"})
		assert.ErrorIs(t, err, ErrInvalidOccupation)
	})

	t.Run("unknown session", func(t *testing.T) {
		svc, _ := newOfflineService(t, nil)
		_, err := svc.GetResults(ctx, "missing")
		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.ErrorIs(t, svc.Restart(ctx, "missing"), ErrSessionNotFound)
	})

	t.Run("no sections surfaces organizer error", func(t *testing.T) {
		svc, _ := newOfflineService(t, failingOrganizer{})
		session, err := svc.StartSession(ctx, registeredNurses)
		require.NoError(t, err)

		_, err = svc.OrganizeSections(ctx, session.ID)
		assert.ErrorIs(t, err, batch.ErrNoSections)
	})

	t.Run("busy session", func(t *testing.T) {
		svc, _, repo := newOfflineServiceWithRepo(t, nil)
		started, err := svc.StartSession(ctx, registeredNurses)
		require.NoError(t, err)

		live, ok := repo.Get(started.ID)
		require.True(t, ok)
		require.True(t, live.TryLock())
		_, err = svc.OrganizeSections(ctx, started.ID)
		assert.ErrorIs(t, err, ErrSessionBusy)
		live.Unlock()
	})

	t.Run("section bounds and resubmission", func(t *testing.T) {
		svc, _ := newOfflineService(t, nil)
		session, err := svc.StartSession(ctx, registeredNurses)
		require.NoError(t, err)

		_, err = svc.GetSection(ctx, session.ID, 0)
		assert.ErrorIs(t, err, ErrSectionOutOfRange)

		session, err = svc.OrganizeSections(ctx, session.ID)
		require.NoError(t, err)

		_, err = svc.SubmitSection(ctx, session.ID, len(session.Sections), nil)
		assert.ErrorIs(t, err, ErrSectionOutOfRange)

		feedback, err := svc.SubmitSection(ctx, session.ID, 0, nil)
		require.NoError(t, err)
		for _, fb := range feedback {
			assert.Equal(t, 1, fb.Level)
		}

		_, err = svc.SubmitSection(ctx, session.ID, 0, nil)
		assert.ErrorIs(t, err, ErrSectionSubmitted)
	})

	t.Run("restart discards the session", func(t *testing.T) {
		svc, pub := newOfflineService(t, nil)
		session, err := svc.StartSession(ctx, registeredNurses)
		require.NoError(t, err)

		require.NoError(t, svc.Restart(ctx, session.ID))
		_, err = svc.GetSession(ctx, session.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.Contains(t, pub.types, events.TypeAssessmentRestarted)
	})
}

func TestReadsDuringSubmitSeeConsistentState(t *testing.T) {
	svc, _ := newOfflineService(t, nil)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, registeredNurses)
	require.NoError(t, err)
	session, err = svc.OrganizeSections(ctx, session.ID)
	require.NoError(t, err)
	total := len(session.Sections)

	done := make(chan struct{})
	var readers sync.WaitGroup
	for r := 0; r < 4; r++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				snap, err := svc.GetSession(ctx, session.ID)
				if !assert.NoError(t, err) {
					return
				}
				assert.LessOrEqual(t, snap.SubmittedCount(), total)
				for i := 0; i < total; i++ {
					_, err := svc.GetSection(ctx, session.ID, i)
					assert.NoError(t, err)
				}
				_, err = svc.GetResults(ctx, session.ID)
				assert.NoError(t, err)
			}
		}()
	}

	for i := 0; i < total; i++ {
		_, err := svc.SubmitSection(ctx, session.ID, i, map[int]string{})
		require.NoError(t, err)
	}
	close(done)
	readers.Wait()

	final, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, final.Complete())
	report, err := svc.GetResults(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, total, len(report.Categories))
}

func TestSnapshotIsDetachedFromLaterWrites(t *testing.T) {
	svc, _ := newOfflineService(t, nil)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, registeredNurses)
	require.NoError(t, err)
	organized, err := svc.OrganizeSections(ctx, session.ID)
	require.NoError(t, err)

	_, err = svc.SubmitSection(ctx, session.ID, 0, nil)
	require.NoError(t, err)

	assert.Empty(t, organized.Submitted)
	assert.Empty(t, organized.Scored)
	assert.Equal(t, 0, organized.SubmittedCount())
}

func TestSearchOccupationsOffline(t *testing.T) {
	svc, _ := newOfflineService(t, nil)
	got := svc.SearchOccupations(context.Background(), "nurse")
	require.NotEmpty(t, got)
	assert.Equal(t, registeredNurses, got[0])
	assert.Len(t, svc.ListOccupations(context.Background()), len(skillsource.Catalogue()))
}
