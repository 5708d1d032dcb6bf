package scoring

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"competency-assessment-be/pkg/llm"
	"competency-assessment-be/pkg/retry"
)

// ErrInvalidJudgement is returned when the judge output is not a level in 1..3
var ErrInvalidJudgement = errors.New("invalid judgement")

// JudgeRequest carries everything an external judge sees
type JudgeRequest struct {
	Scenario       string
	Question       string
	RubricCriteria map[string]string
	Response       string
}

// Judge rates a response on the 1..3 scale
type Judge interface {
	Judge(ctx context.Context, req JudgeRequest) (int, error)
}

const judgeSystemPrompt = "You are an expert evaluator of professional competency assessments. " +
	"You evaluate responses based on provided rubrics and return only a numeric score (1, 2, or 3)."

// AIJudge asks an LLM for a level and retries rate-limited calls per its policy
type AIJudge struct {
	provider llm.LLMProvider
	policy   retry.Policy
}

func NewAIJudge(provider llm.LLMProvider, policy retry.Policy) *AIJudge {
	return &AIJudge{provider: provider, policy: policy}
}

func (j *AIJudge) Judge(ctx context.Context, req JudgeRequest) (int, error) {
	history := []llm.Message{
		{Role: "system", Content: judgeSystemPrompt},
		{Role: "user", Content: buildJudgePrompt(req)},
	}

	raw, err := retry.Do(ctx, j.policy, func(ctx context.Context) (string, error) {
		return j.provider.Chat(ctx, history, llm.WithTemperature(0.3), llm.WithMaxTokens(10))
	})
	if err != nil {
		return 0, err
	}
	return ParseJudgement(raw)
}

// ParseJudgement reads the leading integer of raw and validates it
func ParseJudgement(raw string) (int, error) {
	text := strings.TrimSpace(raw)
	end := 0
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidJudgement, raw)
	}

	level, err := strconv.Atoi(text[:end])
	if err != nil || level < 1 || level > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidJudgement, raw)
	}
	return level, nil
}

func buildJudgePrompt(req JudgeRequest) string {
	scenario := req.Scenario
	if scenario == "" {
		scenario = "N/A"
	}

	var sb strings.Builder
	sb.WriteString("You are evaluating a professional response to a scenario-based assessment question.\n\n")
	fmt.Fprintf(&sb, "SCENARIO:\n%s\n\nQUESTION:\n%s\n\nRESPONSE TO EVALUATE:\n%s\n\nEVALUATION RUBRIC:\n", scenario, req.Question, req.Response)
	for _, lvl := range RubricLevels {
		fmt.Fprintf(&sb, "\nLevel %d - %s:\nDescription: %s\nKey Indicators: %s\nExamples: %s\n",
			lvl.Score, lvl.Label, lvl.Description, strings.Join(lvl.Indicators, "; "), strings.Join(lvl.Examples, "; "))
	}
	if len(req.RubricCriteria) > 0 {
		sb.WriteString("\nADDITIONAL CRITERIA:\n")
		for level := 3; level >= 1; level-- {
			fmt.Fprintf(&sb, "Level %d: %s\n", level, req.RubricCriteria[fmt.Sprintf("level%d", level)])
		}
	}
	sb.WriteString("\nTASK:\nEvaluate the response and assign a score of 1, 2, or 3 based on the rubric above.\n")
	sb.WriteString("- Score 1 = Not Competent\n- Score 2 = Approaching Competency\n- Score 3 = Competent\n\n")
	sb.WriteString("Respond with ONLY a single number (1, 2, or 3) and nothing else.")
	return sb.String()
}
