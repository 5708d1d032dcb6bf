package scoring

import (
	"context"

	"competency-assessment-be/internal/pkg/logger"
	"competency-assessment-be/pkg/question"
)

const (
	MethodAI      = "AI"
	MethodKeyword = "Keyword"

	moduleName = "SCORER"
)

// Feedback is the evaluation of one answer
type Feedback struct {
	QuestionID       int      `json:"questionId"`
	Level            int      `json:"level"`
	Label            string   `json:"label"`
	Description      string   `json:"description"`
	RubricText       string   `json:"rubricText,omitempty"`
	Feedback         string   `json:"feedback"`
	ResponseText     string   `json:"responseText"`
	EvaluationMethod string   `json:"evaluationMethod"`
	Indicators       []string `json:"indicators"`
	Recommendations  []string `json:"recommendations"`
	NextSteps        string   `json:"nextSteps"`
	Examples         []string `json:"examples"`
}

// Scorer evaluates answers with the judge when one is configured and falls
// back to keyword scoring on any judge failure.
type Scorer struct {
	judge  Judge
	logger logger.ILogger
}

// NewScorer accepts a nil judge for keyword-only scoring
func NewScorer(judge Judge, log logger.ILogger) *Scorer {
	return &Scorer{judge: judge, logger: log}
}

// Evaluate never fails: the caller always receives a level and label
func (s *Scorer) Evaluate(ctx context.Context, q question.Question, response string) Feedback {
	if s.judge != nil && response != "" {
		level, err := s.judge.Judge(ctx, JudgeRequest{
			Scenario:       q.Scenario,
			Question:       q.Prompt,
			RubricCriteria: q.RubricCriteria,
			Response:       response,
		})
		if err == nil {
			return buildFeedback(q, response, level, MethodAI)
		}
		s.logger.Warn(moduleName, "Judge failed, falling back to keyword scoring", map[string]interface{}{
			"question_id": q.ID,
			"error":       err.Error(),
		})
	}

	return buildFeedback(q, response, KeywordLevel(response, q.HasRubricCriteria()), MethodKeyword)
}

func buildFeedback(q question.Question, response string, level int, method string) Feedback {
	lvl := LevelFor(level)
	return Feedback{
		QuestionID:       q.ID,
		Level:            lvl.Score,
		Label:            lvl.Label,
		Description:      lvl.Description,
		RubricText:       q.Rubric[lvl.Score],
		Feedback:         lvl.Feedback,
		ResponseText:     response,
		EvaluationMethod: method,
		Indicators:       lvl.Indicators,
		Recommendations:  lvl.Recommendations,
		NextSteps:        lvl.NextSteps,
		Examples:         lvl.Examples,
	}
}
