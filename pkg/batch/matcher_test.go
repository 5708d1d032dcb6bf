package batch

import (
	"testing"

	"competency-assessment-be/pkg/competency"
	"competency-assessment-be/pkg/question"

	"github.com/stretchr/testify/assert"
)

func TestMatcherScore(t *testing.T) {
	m := NewMatcher(DefaultMatchWeights(), nil)

	tests := []struct {
		name string
		q    question.Question
		c    competency.Competency
		want int
	}{
		{
			name: "representative skill",
			q:    question.Question{SkillName: "Patient Assessment", Category: "A"},
			c:    competency.Competency{Name: "Zeta", Category: "B", RepresentativeSkills: []string{"Patient Assessment"}},
			want: 20,
		},
		{
			name: "name keyword plus text keyword",
			q:    question.Question{SkillName: "Vital Signs Monitoring"},
			c:    competency.Competency{Name: "Monitoring Excellence", Category: "B"},
			want: 18,
		},
		{
			name: "category display carries competency name",
			q:    question.Question{SkillName: "Xyz", CategoryDisplay: "Care - Zeta Beta"},
			c:    competency.Competency{Name: "Zeta Beta", Category: "B"},
			want: 15,
		},
		{
			name: "synonyms from description",
			q:    question.Question{Scenario: "assess risk to prevent falls"},
			c:    competency.Competency{Name: "Zeta", Description: "safety focus", Category: "B"},
			want: 10,
		},
		{
			name: "category only",
			q:    question.Question{SkillName: "Xyz", Category: "A"},
			c:    competency.Competency{Name: "Zeta", Category: "A"},
			want: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Score(tt.q, tt.c))
		})
	}
}

func TestMatcherBest(t *testing.T) {
	m := NewMatcher(DefaultMatchWeights(), nil)
	comps := []competency.Competency{
		{Name: "Zeta", Category: "A", RepresentativeSkills: []string{"Speaking"}},
		{Name: "Theta", Category: "A", RepresentativeSkills: []string{"Speaking"}},
		{Name: "Kappa", Category: "A", RepresentativeSkills: []string{"Writing"}},
	}

	idx, ok := m.Best(question.Question{SkillName: "Writing", Category: "A"}, comps)
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	idx, ok = m.Best(question.Question{SkillName: "Speaking", Category: "A"}, comps)
	assert.True(t, ok)
	assert.Equal(t, 0, idx, "ties go to the first competency")

	_, ok = m.Best(question.Question{SkillName: "Juggling", Category: "A"}, comps)
	assert.False(t, ok, "category bonus alone stays under the threshold")

	_, ok = m.Best(question.Question{SkillName: "Writing"}, nil)
	assert.False(t, ok)
}

func TestMatcherThresholdIsTunable(t *testing.T) {
	w := DefaultMatchWeights()
	w.Threshold = 2
	m := NewMatcher(w, nil)

	_, ok := m.Best(question.Question{SkillName: "Juggling", Category: "A"}, []competency.Competency{{Name: "Zeta", Category: "A"}})
	assert.True(t, ok)
}
