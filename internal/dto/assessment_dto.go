package dto

import "time"

type OccupationResponse struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

type StartAssessmentRequest struct {
	Code  string `json:"code" validate:"required,max=20"`
	Title string `json:"title" validate:"required,min=2,max=200"`
}

type SkillResponse struct {
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Importance      float64  `json:"importance"`
	ImportanceLabel string   `json:"importance_label"`
	Description     string   `json:"description,omitempty"`
	Sources         []string `json:"sources"`
}

type CompetencyResponse struct {
	Name                 string   `json:"name"`
	Category             string   `json:"category"`
	Description          string   `json:"description"`
	Importance           float64  `json:"importance"`
	ImportanceLabel      string   `json:"importance_label"`
	Sources              []string `json:"sources"`
	SkillCount           int      `json:"skill_count"`
	RepresentativeSkills []string `json:"representative_skills"`
}

type CompetencyCategoryResponse struct {
	Category      string               `json:"category"`
	MaxImportance float64              `json:"max_importance"`
	Competencies  []CompetencyResponse `json:"competencies"`
}

type SessionResponse struct {
	Id                string             `json:"id"`
	Status            string             `json:"status"`
	Occupation        OccupationResponse `json:"occupation"`
	SkillsFallback    bool               `json:"skills_fallback"`
	SkillCount        int                `json:"skill_count"`
	CompetencyCount   int                `json:"competency_count"`
	QuestionCount     int                `json:"question_count"`
	TotalSectionCount int                `json:"total_section_count"`
	SubmittedSections int                `json:"submitted_sections"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

type StartAssessmentResponse struct {
	Session      SessionResponse              `json:"session"`
	Competencies []CompetencyCategoryResponse `json:"competencies"`
}

type CompetenciesResponse struct {
	Skills       []SkillResponse              `json:"skills"`
	Competencies []CompetencyCategoryResponse `json:"competencies"`
}

type QuestionResponse struct {
	Id              int            `json:"id"`
	Category        string         `json:"category"`
	CategoryDisplay string         `json:"category_display"`
	Type            string         `json:"type"`
	SkillName       string         `json:"skill_name"`
	Scenario        string         `json:"scenario"`
	Question        string         `json:"question"`
	ResponseType    string         `json:"response_type"`
	Rubric          map[int]string `json:"rubric,omitempty"`
}

type SectionSummaryResponse struct {
	Index           int      `json:"index"`
	Category        string   `json:"category"`
	CategoryDisplay string   `json:"category_display"`
	QuestionCount   int      `json:"question_count"`
	Competencies    []string `json:"competencies"`
	Submitted       bool     `json:"submitted"`
}

type OrganizeSectionsResponse struct {
	SessionId         string                   `json:"session_id"`
	TotalSectionCount int                      `json:"total_section_count"`
	Sections          []SectionSummaryResponse `json:"sections"`
}

type SectionResponse struct {
	Index                int                  `json:"index"`
	TotalSectionCount    int                  `json:"total_section_count"`
	Submitted            bool                 `json:"submitted"`
	Category             string               `json:"category"`
	CategoryDisplay      string               `json:"category_display"`
	Competencies         []string             `json:"competencies"`
	CategoryCompetencies []CompetencyResponse `json:"category_competencies"`
	Questions            []QuestionResponse   `json:"questions"`
}

// SubmitSectionRequest keys answers by question id
type SubmitSectionRequest struct {
	Answers map[string]string `json:"answers" validate:"omitempty,dive,keys,required,numeric,endkeys,max=10000"`
}

type FeedbackResponse struct {
	QuestionId       int      `json:"question_id"`
	Level            int      `json:"level"`
	Label            string   `json:"label"`
	Description      string   `json:"description"`
	RubricText       string   `json:"rubric_text,omitempty"`
	Feedback         string   `json:"feedback"`
	ResponseText     string   `json:"response_text"`
	EvaluationMethod string   `json:"evaluation_method"`
	Indicators       []string `json:"indicators"`
	Recommendations  []string `json:"recommendations"`
	NextSteps        string   `json:"next_steps"`
	Examples         []string `json:"examples"`
}

type SubmitSectionResponse struct {
	Index             int                `json:"index"`
	TotalSectionCount int                `json:"total_section_count"`
	Completed         bool               `json:"completed"`
	Feedback          []FeedbackResponse `json:"feedback"`
}

type CategoryResultResponse struct {
	Category   string  `json:"category"`
	Answered   int     `json:"answered"`
	Average    float64 `json:"average"`
	Percentage float64 `json:"percentage"`
	Label      string  `json:"label"`
}

type ResultsResponse struct {
	SessionId  string                   `json:"session_id"`
	Completed  bool                     `json:"completed"`
	Categories []CategoryResultResponse `json:"categories"`
	Overall    CategoryResultResponse   `json:"overall"`
}

type RubricLevelResponse struct {
	Score           int      `json:"score"`
	Label           string   `json:"label"`
	Description     string   `json:"description"`
	Feedback        string   `json:"feedback"`
	Indicators      []string `json:"indicators"`
	Examples        []string `json:"examples"`
	Recommendations []string `json:"recommendations"`
	NextSteps       string   `json:"next_steps"`
}
