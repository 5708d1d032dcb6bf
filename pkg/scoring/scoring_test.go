package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"competency-assessment-be/internal/pkg/logger"
	"competency-assessment-be/pkg/llm"
	"competency-assessment-be/pkg/question"
	"competency-assessment-be/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// padTo extends s with filler words until it is exactly n characters long
func padTo(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat("x", n-len(s))
}

func TestKeywordLevel(t *testing.T) {
	strong4 := "I would assess, document, communicate and implement a plan. "
	strong2 := "I would assess and document. "

	tests := []struct {
		name        string
		response    string
		hasCriteria bool
		want        int
	}{
		{"empty with criteria", "", true, 1},
		{"empty without criteria", "", false, 1},
		{"49 chars with keywords", padTo(strong4, 49), true, 1},
		{"49 chars without criteria", padTo("", 49), false, 1},
		{"50 chars without criteria", padTo("", 50), false, 1},
		{"51 chars without criteria", padTo("", 51), false, 2},
		{"200 chars without criteria", padTo("", 200), false, 2},
		{"201 chars without criteria", padTo("", 201), false, 3},
		{"50 chars one strong hit", padTo("I would assess. ", 50), true, 1},
		{"51 chars one strong hit", padTo("I would assess. ", 51), true, 2},
		{"200 chars four strong hits", padTo(strong4, 200), true, 3},
		{"201 chars four strong hits", padTo(strong4, 201), true, 3},
		{"150 chars two strong hits", padTo(strong2, 150), true, 2},
		{"151 chars two strong hits", padTo(strong2, 151), true, 3},
		{"151 chars two developing hits", padTo("I would monitor and inform. ", 151), true, 3},
		{"60 chars one developing hit", padTo("I would monitor. ", 60), true, 2},
		{"long but no indicators", padTo("", 300), true, 1},
		{"case insensitive", padTo("ASSESS DOCUMENT COMMUNICATE IMPLEMENT ", 220), true, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeywordLevel(tt.response, tt.hasCriteria))
		})
	}
}

func TestParseJudgement(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"2", 2, false},
		{" 3\n", 3, false},
		{"1.", 1, false},
		{"4", 0, true},
		{"0", 0, true},
		{"three", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseJudgement(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidJudgement)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type flakyProvider struct {
	limited int
	reply   string
	calls   int
	opts    *llm.Options
}

func (p *flakyProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	p.calls++
	p.opts = llm.ApplyOptions(llm.Options{}, opts...)
	if p.calls <= p.limited {
		return "", &llm.RateLimitError{Provider: "fake"}
	}
	return p.reply, nil
}

func (p *flakyProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

type recordingSleeper struct {
	waits []time.Duration
}

func (s *recordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	s.waits = append(s.waits, d)
	return nil
}

func TestAIJudgeRetriesRateLimits(t *testing.T) {
	provider := &flakyProvider{limited: 2, reply: "2"}
	sleeper := &recordingSleeper{}
	judge := NewAIJudge(provider, retry.Policy{MaxRetries: 3, BaseDelay: 2 * time.Second, Sleeper: sleeper})

	level, err := judge.Judge(context.Background(), JudgeRequest{Question: "q", Response: "r"})

	require.NoError(t, err)
	assert.Equal(t, 2, level)
	assert.Equal(t, 3, provider.calls)
	require.Len(t, sleeper.waits, 2)
	assert.GreaterOrEqual(t, sleeper.waits[1], sleeper.waits[0])
	assert.Equal(t, 0.3, provider.opts.Temperature)
	assert.Equal(t, 10, provider.opts.MaxTokens)
}

func TestAIJudgeGivesUp(t *testing.T) {
	provider := &flakyProvider{limited: 10, reply: "3"}
	judge := NewAIJudge(provider, retry.Policy{MaxRetries: 3, BaseDelay: time.Second, Sleeper: &recordingSleeper{}})

	_, err := judge.Judge(context.Background(), JudgeRequest{})
	assert.ErrorIs(t, err, retry.ErrRetriesExhausted)
	assert.Equal(t, 4, provider.calls)
}

type stubJudge struct {
	level int
	err   error
	calls int
}

func (j *stubJudge) Judge(context.Context, JudgeRequest) (int, error) {
	j.calls++
	return j.level, j.err
}

func TestScorerEvaluate(t *testing.T) {
	q := question.Question{
		ID:             7,
		Prompt:         "What would you do?",
		Rubric:         map[int]string{1: "weak", 2: "fair", 3: "strong"},
		RubricCriteria: map[string]string{"level3": "x"},
	}
	answer := padTo("I would assess, document, communicate and implement. ", 210)

	t.Run("judge result wins", func(t *testing.T) {
		j := &stubJudge{level: 2}
		fb := NewScorer(j, logger.NewNopLogger()).Evaluate(context.Background(), q, answer)
		assert.Equal(t, 2, fb.Level)
		assert.Equal(t, MethodAI, fb.EvaluationMethod)
		assert.Equal(t, "fair", fb.RubricText)
		assert.Equal(t, LabelApproaching, fb.Label)
		assert.Equal(t, 7, fb.QuestionID)
	})

	t.Run("invalid judgement falls back to keywords", func(t *testing.T) {
		j := &stubJudge{err: ErrInvalidJudgement}
		fb := NewScorer(j, logger.NewNopLogger()).Evaluate(context.Background(), q, answer)
		assert.Equal(t, 3, fb.Level)
		assert.Equal(t, MethodKeyword, fb.EvaluationMethod)
	})

	t.Run("rate limit exhaustion falls back to keywords", func(t *testing.T) {
		j := &stubJudge{err: errors.Join(retry.ErrRetriesExhausted, &llm.RateLimitError{})}
		fb := NewScorer(j, logger.NewNopLogger()).Evaluate(context.Background(), q, answer)
		assert.Equal(t, MethodKeyword, fb.EvaluationMethod)
	})

	t.Run("empty answer skips the judge", func(t *testing.T) {
		j := &stubJudge{level: 3}
		fb := NewScorer(j, logger.NewNopLogger()).Evaluate(context.Background(), q, "")
		assert.Equal(t, 1, fb.Level)
		assert.Equal(t, LabelNotCompetent, fb.Label)
		assert.Equal(t, 0, j.calls)
	})

	t.Run("keyword only scorer", func(t *testing.T) {
		fb := NewScorer(nil, logger.NewNopLogger()).Evaluate(context.Background(), q, answer)
		assert.Equal(t, MethodKeyword, fb.EvaluationMethod)
		assert.Equal(t, "strong", fb.RubricText)
	})
}

func TestAggregate(t *testing.T) {
	report := Aggregate([]ScoredAnswer{
		{Category: "A", QuestionID: 1, Level: 3},
		{Category: "B", QuestionID: 2, Level: 1},
		{Category: "A", QuestionID: 3, Level: 2},
	})

	require.Len(t, report.Categories, 2)
	a := report.Categories[0]
	assert.Equal(t, "A", a.Category)
	assert.Equal(t, 2, a.Answered)
	assert.Equal(t, 2.5, a.Average)
	assert.Equal(t, 83.3, a.Percentage)
	assert.Equal(t, LabelCompetent, a.Label)

	b := report.Categories[1]
	assert.Equal(t, 33.3, b.Percentage)
	assert.Equal(t, LabelNotCompetent, b.Label)

	assert.Equal(t, 3, report.Overall.Answered)
	assert.Equal(t, 2.0, report.Overall.Average)
	assert.Equal(t, 66.7, report.Overall.Percentage)
	assert.Equal(t, LabelApproaching, report.Overall.Label)
}

func TestAggregateEmpty(t *testing.T) {
	report := Aggregate(nil)
	assert.Empty(t, report.Categories)
	assert.Equal(t, 0, report.Overall.Answered)
	assert.Equal(t, LabelNotCompetent, report.Overall.Label)
}

func TestLevelForClamps(t *testing.T) {
	assert.Equal(t, 1, LevelFor(0).Score)
	assert.Equal(t, 3, LevelFor(9).Score)
	assert.Equal(t, LabelApproaching, LevelFor(2).Label)
}
