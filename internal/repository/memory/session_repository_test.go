package memory

import (
	"testing"
	"time"

	"competency-assessment-be/pkg/skillsource"
	"competency-assessment-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository(time.Hour)
	session := store.NewAssessmentSession(skillsource.Occupation{Code: "29-1141.00", Title: "Registered Nurses"})

	repo.Save(session)
	got, ok := repo.Get(session.ID)
	require.True(t, ok)
	assert.Same(t, session, got)
	assert.Equal(t, 1, repo.Count())

	repo.Delete(session.ID)
	_, ok = repo.Get(session.ID)
	assert.False(t, ok)
}

func TestSessionRepositoryExpiry(t *testing.T) {
	repo := NewSessionRepository(20 * time.Millisecond)
	session := store.NewAssessmentSession(skillsource.Occupation{Code: "15-1131.00", Title: "Computer Programmers"})
	repo.Save(session)

	time.Sleep(40 * time.Millisecond)
	_, ok := repo.Get(session.ID)
	assert.False(t, ok)
}
