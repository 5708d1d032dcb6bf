package mapper

import (
	"competency-assessment-be/internal/dto"
	"competency-assessment-be/internal/service"
	"competency-assessment-be/pkg/batch"
	"competency-assessment-be/pkg/competency"
	"competency-assessment-be/pkg/question"
	"competency-assessment-be/pkg/scoring"
	"competency-assessment-be/pkg/skillsource"
	"competency-assessment-be/pkg/store"
)

type AssessmentMapper struct{}

func NewAssessmentMapper() *AssessmentMapper {
	return &AssessmentMapper{}
}

func (m *AssessmentMapper) ToOccupationResponses(occs []skillsource.Occupation) []dto.OccupationResponse {
	res := make([]dto.OccupationResponse, 0, len(occs))
	for _, o := range occs {
		res = append(res, dto.OccupationResponse{Code: o.Code, Title: o.Title})
	}
	return res
}

func (m *AssessmentMapper) ToSessionResponse(s *store.AssessmentSession) dto.SessionResponse {
	return dto.SessionResponse{
		Id:                s.ID,
		Status:            s.Status,
		Occupation:        dto.OccupationResponse{Code: s.Occupation.Code, Title: s.Occupation.Title},
		SkillsFallback:    s.SkillsFallback,
		SkillCount:        len(s.Skills),
		CompetencyCount:   len(s.Competencies),
		QuestionCount:     len(s.Questions),
		TotalSectionCount: len(s.Sections),
		SubmittedSections: s.SubmittedCount(),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (m *AssessmentMapper) ToSkillResponses(skills []competency.Skill) []dto.SkillResponse {
	res := make([]dto.SkillResponse, 0, len(skills))
	for _, s := range skills {
		res = append(res, dto.SkillResponse{
			Name:            s.Name,
			Category:        s.Category,
			Importance:      s.Importance,
			ImportanceLabel: competency.ImportanceLabel(s.Importance),
			Description:     s.Description,
			Sources:         s.Sources,
		})
	}
	return res
}

func (m *AssessmentMapper) ToCompetencyResponse(c competency.Competency) dto.CompetencyResponse {
	return dto.CompetencyResponse{
		Name:                 c.Name,
		Category:             c.Category,
		Description:          c.Description,
		Importance:           c.Importance,
		ImportanceLabel:      competency.ImportanceLabel(c.Importance),
		Sources:              c.Sources,
		SkillCount:           c.SkillCount,
		RepresentativeSkills: c.RepresentativeSkills,
	}
}

func (m *AssessmentMapper) ToCompetencyResponses(comps []competency.Competency) []dto.CompetencyResponse {
	res := make([]dto.CompetencyResponse, 0, len(comps))
	for _, c := range comps {
		res = append(res, m.ToCompetencyResponse(c))
	}
	return res
}

// ToCompetencyCategories groups competencies in display order
func (m *AssessmentMapper) ToCompetencyCategories(comps []competency.Competency) []dto.CompetencyCategoryResponse {
	groups := competency.GroupForDisplay(comps)
	res := make([]dto.CompetencyCategoryResponse, 0, len(groups))
	for _, g := range groups {
		res = append(res, dto.CompetencyCategoryResponse{
			Category:      g.Category,
			MaxImportance: g.MaxImportance,
			Competencies:  m.ToCompetencyResponses(g.Competencies),
		})
	}
	return res
}

func (m *AssessmentMapper) ToQuestionResponse(q question.Question) dto.QuestionResponse {
	return dto.QuestionResponse{
		Id:              q.ID,
		Category:        q.Category,
		CategoryDisplay: q.CategoryDisplay,
		Type:            q.Type,
		SkillName:       q.SkillName,
		Scenario:        q.Scenario,
		Question:        q.Prompt,
		ResponseType:    q.ResponseType,
		Rubric:          q.Rubric,
	}
}

func (m *AssessmentMapper) ToOrganizeResponse(s *store.AssessmentSession) dto.OrganizeSectionsResponse {
	sections := make([]dto.SectionSummaryResponse, 0, len(s.Sections))
	for i, sec := range s.Sections {
		sections = append(sections, dto.SectionSummaryResponse{
			Index:           i,
			Category:        sec.Category,
			CategoryDisplay: sec.CategoryDisplay,
			QuestionCount:   len(sec.Questions),
			Competencies:    sec.Competencies,
			Submitted:       s.Submitted[i],
		})
	}
	return dto.OrganizeSectionsResponse{
		SessionId:         s.ID,
		TotalSectionCount: len(s.Sections),
		Sections:          sections,
	}
}

func (m *AssessmentMapper) ToSectionResponse(v *service.SectionView) dto.SectionResponse {
	return dto.SectionResponse{
		Index:                v.Index,
		TotalSectionCount:    v.TotalSectionCount,
		Submitted:            v.Submitted,
		Category:             v.Section.Category,
		CategoryDisplay:      v.Section.CategoryDisplay,
		Competencies:         v.Section.Competencies,
		CategoryCompetencies: m.ToCompetencyResponses(v.Section.CategoryCompetencies),
		Questions:            m.toQuestionResponses(v.Section),
	}
}

func (m *AssessmentMapper) toQuestionResponses(sec batch.Section) []dto.QuestionResponse {
	res := make([]dto.QuestionResponse, 0, len(sec.Questions))
	for _, q := range sec.Questions {
		res = append(res, m.ToQuestionResponse(q))
	}
	return res
}

func (m *AssessmentMapper) ToFeedbackResponses(fbs []scoring.Feedback) []dto.FeedbackResponse {
	res := make([]dto.FeedbackResponse, 0, len(fbs))
	for _, f := range fbs {
		res = append(res, dto.FeedbackResponse{
			QuestionId:       f.QuestionID,
			Level:            f.Level,
			Label:            f.Label,
			Description:      f.Description,
			RubricText:       f.RubricText,
			Feedback:         f.Feedback,
			ResponseText:     f.ResponseText,
			EvaluationMethod: f.EvaluationMethod,
			Indicators:       f.Indicators,
			Recommendations:  f.Recommendations,
			NextSteps:        f.NextSteps,
			Examples:         f.Examples,
		})
	}
	return res
}

func (m *AssessmentMapper) ToResultsResponse(sessionID string, completed bool, r *scoring.Report) dto.ResultsResponse {
	categories := make([]dto.CategoryResultResponse, 0, len(r.Categories))
	for _, c := range r.Categories {
		categories = append(categories, toCategoryResult(c))
	}
	return dto.ResultsResponse{
		SessionId:  sessionID,
		Completed:  completed,
		Categories: categories,
		Overall:    toCategoryResult(r.Overall),
	}
}

func toCategoryResult(c scoring.CategoryResult) dto.CategoryResultResponse {
	return dto.CategoryResultResponse{
		Category:   c.Category,
		Answered:   c.Answered,
		Average:    c.Average,
		Percentage: c.Percentage,
		Label:      c.Label,
	}
}

func (m *AssessmentMapper) ToRubricResponses(levels []scoring.RubricLevel) []dto.RubricLevelResponse {
	res := make([]dto.RubricLevelResponse, 0, len(levels))
	for _, l := range levels {
		res = append(res, dto.RubricLevelResponse{
			Score:           l.Score,
			Label:           l.Label,
			Description:     l.Description,
			Feedback:        l.Feedback,
			Indicators:      l.Indicators,
			Examples:        l.Examples,
			Recommendations: l.Recommendations,
			NextSteps:       l.NextSteps,
		})
	}
	return res
}
