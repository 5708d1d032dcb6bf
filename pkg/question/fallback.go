package question

// FallbackBank returns a fixed question set used when the skill set yields no
// questions at all. Ids start at 1.
func FallbackBank() []Question {
	picks := []struct {
		category string
		key      string
	}{
		{"Patient Care", "patient care"},
		{"Nurse Handoff", "handoff"},
		{"Patient Case Management", "patient case"},
	}

	out := make([]Question, 0, len(picks))
	for i, p := range picks {
		c := NursingScenarios.Default
		for _, e := range NursingScenarios.Entries {
			if e.Key == p.key {
				c = e.Content
				break
			}
		}
		out = append(out, Question{
			ID:              i + 1,
			Category:        p.category,
			CategoryDisplay: c.SkillStatement,
			Type:            TypeScenario,
			SkillName:       p.category,
			Scenario:        c.Scenario,
			Prompt:          c.Question,
			ResponseType:    ResponseOpenEnded,
			Rubric:          c.Rubric,
			RubricCriteria:  c.RubricCriteria,
			OnetSkills:      c.OnetSkills,
		})
	}
	return out
}
