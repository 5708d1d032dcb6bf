package question

import (
	"errors"

	"competency-assessment-be/pkg/competency"
)

const (
	TypeScenario      = "scenario"
	ResponseOpenEnded = "open-ended"
)

// ErrGeneration is returned when supplemental items could not be produced in full
var ErrGeneration = errors.New("question generation failed")

// Question is one scenario item. It is immutable once it has an id.
type Question struct {
	ID              int                `json:"id"`
	Category        string             `json:"category"`
	CategoryDisplay string             `json:"categoryDisplay"`
	Type            string             `json:"type"`
	SkillName       string             `json:"skillName"`
	Scenario        string             `json:"scenario"`
	Prompt          string             `json:"question"`
	ResponseType    string             `json:"responseType"`
	Rubric          map[int]string     `json:"rubric,omitempty"`
	RubricCriteria  map[string]string  `json:"rubricCriteria,omitempty"`
	OnetSkills      []competency.Skill `json:"onetSkills,omitempty"`
}

// HasRubricCriteria reports whether the item carries custom grading criteria
func (q Question) HasRubricCriteria() bool {
	return len(q.RubricCriteria) > 0
}

// RubricText flattens the rubric for prompts and feedback
func (q Question) RubricText() string {
	text := ""
	for level := 3; level >= 1; level-- {
		if d, ok := q.Rubric[level]; ok {
			text += d + "\n"
		}
	}
	return text
}

// MaxID returns the largest id in the pool, or 0 for an empty pool
func MaxID(pool []Question) int {
	max := 0
	for _, q := range pool {
		if q.ID > max {
			max = q.ID
		}
	}
	return max
}

// Item is a supplemental question before it has been given an id and category
type Item struct {
	Scenario        string `json:"scenario"`
	Question        string `json:"question"`
	CategoryDisplay string `json:"categoryDisplay"`
}

// SupplementRequest asks for Count new items for one category
type SupplementRequest struct {
	Category        string
	Competencies    []competency.Competency
	Count           int
	OccupationTitle string
}
