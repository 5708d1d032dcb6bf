package question

import (
	"context"
	"errors"
	"testing"
	"time"

	"competency-assessment-be/pkg/competency"
	"competency-assessment-be/pkg/llm"
	"competency-assessment-be/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorOnePerSkillWithFloor(t *testing.T) {
	skills := []competency.Skill{
		{Name: "Speaking", Category: competency.CategoryCommunication, Importance: 4.6},
		{Name: "Monitoring", Category: competency.CategoryPatientCare, Importance: 4.9},
		{Name: "Active Listening", Category: competency.CategoryCommunication, Importance: 4.7},
		{Name: "Speaking", Category: competency.CategoryCommunication, Importance: 4.6},
	}

	qs := NewGenerator(nil).Generate(skills, "Registered Nurses")

	perCategory := map[string][]Question{}
	for _, q := range qs {
		perCategory[q.Category] = append(perCategory[q.Category], q)
	}

	comm := perCategory[competency.CategoryCommunication]
	require.Len(t, comm, 3)
	assert.Equal(t, "Active Listening", comm[0].SkillName)
	assert.Equal(t, "Speaking", comm[1].SkillName)
	assert.Equal(t, "Active Listening", comm[2].SkillName, "padding cycles from the most important skill")

	care := perCategory[competency.CategoryPatientCare]
	require.Len(t, care, 3)
	for _, q := range care {
		assert.Equal(t, "Monitoring", q.SkillName)
	}

	assert.Equal(t, competency.CategoryCommunication, qs[0].Category, "first-seen category comes first")
	for i, q := range qs {
		assert.Equal(t, i+1, q.ID)
		assert.Equal(t, TypeScenario, q.Type)
		assert.Equal(t, ResponseOpenEnded, q.ResponseType)
	}
}

func TestGeneratorEmptySkills(t *testing.T) {
	assert.Empty(t, NewGenerator(nil).Generate(nil, "Registered Nurses"))
}

func TestScenarioTableLookup(t *testing.T) {
	tests := []struct {
		skill     string
		statement string
	}{
		{"Patient Care", "Clinical Assessment and Intervention for Deteriorating Patients"},
		{"Patient Assessment", "Clinical Assessment and Intervention for Deteriorating Patients"},
		{"Therapeutic Communication", "Patient-Centered Communication and Medication Education"},
		{"Critical Thinking", "Systems Analysis and Quality Improvement in Medication Safety"},
		{"Nurse Handoff", "Critical Review and Prioritization During Nurse Handoff"},
		{"Writing", ""},
	}
	for _, tt := range tests {
		t.Run(tt.skill, func(t *testing.T) {
			c := NursingScenarios.ContentFor(competency.Skill{Name: tt.skill}, "Registered Nurses")
			assert.Equal(t, tt.statement, c.SkillStatement)
			assert.NotEmpty(t, c.Scenario)
		})
	}
}

func TestGeneratorDefaultDisplay(t *testing.T) {
	qs := NewGenerator(nil).Generate([]competency.Skill{{Name: "Writing", Category: "Documentation"}}, "")
	require.NotEmpty(t, qs)
	assert.Equal(t, "Writing - Documentation", qs[0].CategoryDisplay)
	assert.False(t, qs[0].HasRubricCriteria())
}

func TestFallbackBank(t *testing.T) {
	bank := FallbackBank()
	require.Len(t, bank, 3)
	assert.Equal(t, 3, MaxID(bank))
	assert.True(t, bank[1].HasRubricCriteria())
}

func TestParseItems(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{"plain", `[{"scenario":"s","question":"q","categoryDisplay":"c"}]`, 1, false},
		{"fenced", "```json\n[{\"scenario\":\"s\",\"question\":\"q\"},{\"scenario\":\"s2\",\"question\":\"q2\"}]\n```", 2, false},
		{"bare fence", "```\n[]\n```", 0, false},
		{"prose", "Sure! Here are your questions", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := ParseItems(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, items, tt.want)
		})
	}
}

type scriptedProvider struct {
	replies []string
	errs    []error
	calls   int
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	i := p.calls
	p.calls++
	if i < len(p.errs) && p.errs[i] != nil {
		return "", p.errs[i]
	}
	if i < len(p.replies) {
		return p.replies[i], nil
	}
	return "", errors.New("no scripted reply")
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func noWait() retry.Policy {
	return retry.Policy{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		Sleeper:    retry.SleeperFunc(func(context.Context, time.Duration) error { return nil }),
	}
}

func TestAIItemGenerator(t *testing.T) {
	req := SupplementRequest{
		Category:        competency.CategorySafety,
		Competencies:    []competency.Competency{{Name: "Safety Protocols and Error Prevention"}},
		Count:           2,
		OccupationTitle: "Registered Nurses",
	}
	two := `[{"scenario":"a","question":"b"},{"scenario":"c","question":"d","categoryDisplay":"x"}]`

	t.Run("retries rate limit then succeeds", func(t *testing.T) {
		p := &scriptedProvider{
			errs:    []error{&llm.RateLimitError{Provider: "fake"}, nil},
			replies: []string{"", two},
		}
		items, err := NewAIItemGenerator(p, noWait()).Generate(context.Background(), req)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, competency.CategorySafety+" - Safety Protocols and Error Prevention", items[0].CategoryDisplay)
		assert.Equal(t, "x", items[1].CategoryDisplay)
		assert.Equal(t, 2, p.calls)
	})

	t.Run("short answer is a failure", func(t *testing.T) {
		p := &scriptedProvider{replies: []string{`[{"scenario":"a","question":"b"}]`}}
		_, err := NewAIItemGenerator(p, noWait()).Generate(context.Background(), req)
		assert.ErrorIs(t, err, ErrGeneration)
	})

	t.Run("exhausted rate limit is a failure", func(t *testing.T) {
		rl := &llm.RateLimitError{Provider: "fake"}
		p := &scriptedProvider{errs: []error{rl, rl, rl, rl}}
		_, err := NewAIItemGenerator(p, noWait()).Generate(context.Background(), req)
		assert.ErrorIs(t, err, ErrGeneration)
		assert.ErrorIs(t, err, retry.ErrRetriesExhausted)
		assert.Equal(t, 4, p.calls)
	})
}
