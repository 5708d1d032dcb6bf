package competency

import (
	"sort"
	"strings"
)

// DefaultCategory is used for skills that arrive without a category
const DefaultCategory = "General Skills"

// Skill is an atomic competency signal from an occupation or credentialing database
type Skill struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Importance  float64  `json:"importance"`
	Description string   `json:"description,omitempty"`
	Sources     []string `json:"sources"`
}

// Key is the case-insensitive identity of a skill
func (s Skill) Key() string {
	return strings.ToLower(strings.TrimSpace(s.Name))
}

// MergeSkills folds any number of skill lists into one deduplicated list keyed by
// lower-cased name. On collision sources are unioned, importance takes the max and
// the first non-empty description/category wins. Output keeps first-seen order and
// each skill's sources are sorted.
func MergeSkills(lists ...[]Skill) []Skill {
	index := make(map[string]int)
	var merged []Skill

	for _, list := range lists {
		for _, s := range list {
			key := s.Key()
			if key == "" {
				continue
			}

			i, seen := index[key]
			if !seen {
				s.Sources = unionSources(nil, s.Sources)
				s.Importance = clampImportance(s.Importance)
				index[key] = len(merged)
				merged = append(merged, s)
				continue
			}

			existing := &merged[i]
			existing.Sources = unionSources(existing.Sources, s.Sources)
			if imp := clampImportance(s.Importance); imp > existing.Importance {
				existing.Importance = imp
			}
			if existing.Description == "" {
				existing.Description = s.Description
			}
			if existing.Category == "" {
				existing.Category = s.Category
			}
		}
	}

	return merged
}

func unionSources(a, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, src := range append(append([]string{}, a...), b...) {
		if src == "" {
			continue
		}
		if _, ok := set[src]; ok {
			continue
		}
		set[src] = struct{}{}
		out = append(out, src)
	}
	sort.Strings(out)
	return out
}

func clampImportance(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 5:
		return 5
	default:
		return v
	}
}
