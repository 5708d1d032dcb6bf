package batch

import (
	"strings"

	"competency-assessment-be/pkg/competency"
	"competency-assessment-be/pkg/question"
)

// MatchWeights are the tunable scores of the detailed-skill matcher
type MatchWeights struct {
	Representative int // per representative skill overlapping the question's skill name
	NameKeyword    int // per competency-name word found in the skill name
	DisplayName    int // full competency name inside the category display
	TextKeyword    int // per name/description word found in skill+scenario+prompt
	Synonym        int // per domain synonym found in skill+scenario+prompt
	Category       int // raw category equality
	Threshold      int // minimum best score for a question to count as mapped
}

func DefaultMatchWeights() MatchWeights {
	return MatchWeights{
		Representative: 20,
		NameKeyword:    15,
		DisplayName:    15,
		TextKeyword:    3,
		Synonym:        5,
		Category:       2,
		Threshold:      3,
	}
}

// SynonymRule adds Synonym weight for each of Synonyms present in the question
// text when the competency name or description mentions Term.
type SynonymRule struct {
	Term     string
	Synonyms []string
}

// DefaultSynonyms is the domain-term table used by the matcher
var DefaultSynonyms = []SynonymRule{
	{Term: "assessment", Synonyms: []string{"assess", "evaluate", "monitor", "observe"}},
	{Term: "intervention", Synonyms: []string{"intervene", "treat", "care", "manage"}},
	{Term: "safety", Synonyms: []string{"safety", "risk", "prevent", "protect"}},
	{Term: "communication", Synonyms: []string{"communicate", "inform", "educate", "explain"}},
	{Term: "coordination", Synonyms: []string{"coordinate", "collaborate", "team", "work"}},
	{Term: "decision", Synonyms: []string{"decide", "judgment", "analyze", "reason"}},
	{Term: "quality", Synonyms: []string{"quality", "improve", "standard", "excellence"}},
	{Term: "professional", Synonyms: []string{"professional", "ethical", "accountable", "responsible"}},
}

// Matcher maps a question to its single best competency inside a category
type Matcher struct {
	weights  MatchWeights
	synonyms []SynonymRule
}

func NewMatcher(weights MatchWeights, synonyms []SynonymRule) *Matcher {
	if synonyms == nil {
		synonyms = DefaultSynonyms
	}
	return &Matcher{weights: weights, synonyms: synonyms}
}

// Score computes the weighted affinity between q and c
func (m *Matcher) Score(q question.Question, c competency.Competency) int {
	skillName := strings.ToLower(q.SkillName)
	if skillName == "" && q.CategoryDisplay != "" {
		parts := strings.Split(q.CategoryDisplay, " - ")
		if len(parts) > 1 {
			skillName = strings.ToLower(parts[len(parts)-1])
		}
	}
	allText := skillName + " " + strings.ToLower(q.Scenario) + " " + strings.ToLower(q.Prompt)

	name := strings.ToLower(c.Name)
	desc := strings.ToLower(c.Description)
	nameWords := longWords(name)

	score := 0
	if skillName != "" {
		for _, rep := range c.RepresentativeSkills {
			r := strings.ToLower(rep)
			if strings.Contains(skillName, r) || strings.Contains(r, skillName) {
				score += m.weights.Representative
			}
		}
		for _, w := range nameWords {
			if strings.Contains(skillName, w) {
				score += m.weights.NameKeyword
			}
		}
	}

	if q.CategoryDisplay != "" && strings.Contains(strings.ToLower(q.CategoryDisplay), name) {
		score += m.weights.DisplayName
	}

	for _, w := range append(nameWords, longWords(desc)...) {
		if strings.Contains(allText, w) {
			score += m.weights.TextKeyword
		}
	}

	for _, rule := range m.synonyms {
		if !strings.Contains(name, rule.Term) && !strings.Contains(desc, rule.Term) {
			continue
		}
		for _, syn := range rule.Synonyms {
			if strings.Contains(allText, syn) {
				score += m.weights.Synonym
			}
		}
	}

	if q.Category == c.Category {
		score += m.weights.Category
	}
	return score
}

// Best returns the index of the highest scoring competency, first wins ties.
// ok is false when comps is empty or the best score is under the threshold.
func (m *Matcher) Best(q question.Question, comps []competency.Competency) (idx int, ok bool) {
	best, bestScore := -1, 0
	for i, c := range comps {
		if s := m.Score(q, c); s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 || bestScore < m.weights.Threshold {
		return -1, false
	}
	return best, true
}

func longWords(s string) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		if len(w) > 3 {
			out = append(out, w)
		}
	}
	return out
}
