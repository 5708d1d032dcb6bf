package question

import (
	"fmt"
	"sort"

	"competency-assessment-be/pkg/competency"
)

// MinPerCategory is the floor of questions generated for every category
const MinPerCategory = 3

// Generator turns skills into scenario questions, one per distinct skill and at
// least max(3, skills in category) per category.
type Generator struct {
	content ContentProvider
}

func NewGenerator(content ContentProvider) *Generator {
	if content == nil {
		content = NursingScenarios
	}
	return &Generator{content: content}
}

// Generate numbers questions from 1. Categories keep the order in which they
// first appear in skills.
func (g *Generator) Generate(skills []competency.Skill, occupationTitle string) []Question {
	var order []string
	byCategory := make(map[string][]competency.Skill)
	for _, s := range skills {
		cat := s.Category
		if cat == "" {
			cat = competency.DefaultCategory
		}
		if _, ok := byCategory[cat]; !ok {
			order = append(order, cat)
		}
		byCategory[cat] = append(byCategory[cat], s)
	}

	var out []Question
	nextID := 1
	for _, cat := range order {
		catSkills := byCategory[cat]
		sort.SliceStable(catSkills, func(i, j int) bool {
			return catSkills[i].Importance > catSkills[j].Importance
		})

		seen := make(map[string]struct{})
		for _, s := range catSkills {
			if _, dup := seen[s.Name]; dup {
				continue
			}
			seen[s.Name] = struct{}{}
			out = append(out, g.build(nextID, cat, s, occupationTitle))
			nextID++
		}

		floor := len(catSkills)
		if floor < MinPerCategory {
			floor = MinPerCategory
		}
		for i := 0; len(seen)+i < floor; i++ {
			s := catSkills[i%len(catSkills)]
			out = append(out, g.build(nextID, cat, s, occupationTitle))
			nextID++
		}
	}
	return out
}

func (g *Generator) build(id int, category string, skill competency.Skill, occupationTitle string) Question {
	c := g.content.ContentFor(skill, occupationTitle)

	display := c.SkillStatement
	if display == "" {
		detail := c.SkillDescription
		if detail == "" {
			detail = category
		}
		display = fmt.Sprintf("%s - %s", skill.Name, detail)
	}

	return Question{
		ID:              id,
		Category:        category,
		CategoryDisplay: display,
		Type:            TypeScenario,
		SkillName:       skill.Name,
		Scenario:        c.Scenario,
		Prompt:          c.Question,
		ResponseType:    ResponseOpenEnded,
		Rubric:          c.Rubric,
		RubricCriteria:  c.RubricCriteria,
		OnetSkills:      c.OnetSkills,
	}
}
