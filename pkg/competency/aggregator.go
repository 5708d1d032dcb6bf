package competency

import (
	"math"
	"sort"
	"strings"
)

// Competency is a curated grouping of related skills with aggregate importance
type Competency struct {
	Name                 string   `json:"name"`
	Category             string   `json:"category"`
	Description          string   `json:"description"`
	Importance           float64  `json:"importance"`
	Sources              []string `json:"sources"`
	SkillCount           int      `json:"skillCount"`
	RepresentativeSkills []string `json:"representativeSkills"`
}

// Aggregator turns a merged skill set into representative competencies using a
// curated Table. It holds no state besides the table.
type Aggregator struct {
	table Table
}

func NewAggregator(table Table) *Aggregator {
	return &Aggregator{table: table}
}

// GenerateRepresentativeCompetencies runs the aggregator over the nursing table
func GenerateRepresentativeCompetencies(skills []Skill) []Competency {
	return NewAggregator(NursingTable).Aggregate(skills)
}

// Aggregate is a pure function of the skill set: input order does not affect the
// result. Categories or groups missing from the table, or without any matching
// skill, yield no competency.
func (a *Aggregator) Aggregate(skills []Skill) []Competency {
	sorted := make([]Skill, len(skills))
	copy(sorted, skills)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lessFold(sorted[i].Name, sorted[j].Name)
	})

	byCategory := make(map[string][]Skill)
	for _, s := range sorted {
		cat := s.Category
		if cat == "" {
			cat = DefaultCategory
		}
		byCategory[cat] = append(byCategory[cat], s)
	}

	var out []Competency
	for _, cg := range a.table {
		categorySkills := byCategory[cg.Category]
		if len(categorySkills) == 0 {
			continue
		}
		for _, g := range cg.Groups {
			matching := matchGroup(categorySkills, g)
			if len(matching) == 0 {
				continue
			}
			out = append(out, buildCompetency(cg.Category, g, matching))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Importance != out[j].Importance {
			return out[i].Importance > out[j].Importance
		}
		ci, cj := strings.ToLower(out[i].Category), strings.ToLower(out[j].Category)
		if ci != cj {
			return ci < cj
		}
		return lessFold(out[i].Name, out[j].Name)
	})
	return out
}

func matchGroup(skills []Skill, g Group) []Skill {
	var matching []Skill
	for _, s := range skills {
		name := strings.ToLower(s.Name)
		for _, kw := range g.Keywords {
			if strings.Contains(name, strings.ToLower(kw)) {
				matching = append(matching, s)
				break
			}
		}
	}
	return matching
}

// matching is already in name order
func buildCompetency(category string, g Group, matching []Skill) Competency {
	var sum float64
	sourceSet := make(map[string]struct{})
	for _, s := range matching {
		sum += s.Importance
		for _, src := range s.Sources {
			sourceSet[src] = struct{}{}
		}
	}

	sources := make([]string, 0, len(sourceSet))
	for src := range sourceSet {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	limit := len(matching)
	if limit > 3 {
		limit = 3
	}
	representative := make([]string, 0, limit)
	for _, s := range matching[:limit] {
		representative = append(representative, s.Name)
	}

	return Competency{
		Name:                 g.Name,
		Category:             category,
		Description:          g.Description,
		Importance:           roundTenth(sum / float64(len(matching))),
		Sources:              sources,
		SkillCount:           len(matching),
		RepresentativeSkills: representative,
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func lessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

// ImportanceLabel maps an importance score to its display label
func ImportanceLabel(importance float64) string {
	switch {
	case importance >= 4.5:
		return "Extremely Important"
	case importance >= 4.0:
		return "Very Important"
	case importance >= 3.5:
		return "Important"
	case importance >= 3.0:
		return "Somewhat Important"
	default:
		return "Less Important"
	}
}

// DisplayCategory is a category with its competencies, ready for presentation
type DisplayCategory struct {
	Category      string       `json:"category"`
	MaxImportance float64      `json:"maxImportance"`
	Competencies  []Competency `json:"competencies"`
}

// GroupForDisplay orders categories by their highest competency importance, then
// name; competencies inside a category by importance, then name.
func GroupForDisplay(comps []Competency) []DisplayCategory {
	index := make(map[string]int)
	var groups []DisplayCategory
	for _, c := range comps {
		i, ok := index[c.Category]
		if !ok {
			i = len(groups)
			index[c.Category] = i
			groups = append(groups, DisplayCategory{Category: c.Category})
		}
		groups[i].Competencies = append(groups[i].Competencies, c)
		if c.Importance > groups[i].MaxImportance {
			groups[i].MaxImportance = c.Importance
		}
	}

	for i := range groups {
		cs := groups[i].Competencies
		sort.SliceStable(cs, func(a, b int) bool {
			if cs[a].Importance != cs[b].Importance {
				return cs[a].Importance > cs[b].Importance
			}
			return lessFold(cs[a].Name, cs[b].Name)
		})
	}
	sort.SliceStable(groups, func(a, b int) bool {
		if groups[a].MaxImportance != groups[b].MaxImportance {
			return groups[a].MaxImportance > groups[b].MaxImportance
		}
		return lessFold(groups[a].Category, groups[b].Category)
	})
	return groups
}
