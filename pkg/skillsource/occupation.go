// Package skillsource supplies occupations and their skills. Remote O*NET data
// is preferred; the built-in catalogue and fallback skill list keep an
// assessment possible when the remote service is unreachable.
package skillsource

import (
	"strings"

	"competency-assessment-be/pkg/competency"
)

// Occupation is one O*NET-SOC role
type Occupation struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

var builtinOccupations = []Occupation{
	{Code: "15-1132.00", Title: "Software Developers, Applications"},
	{Code: "15-1131.00", Title: "Computer Programmers"},
	{Code: "15-1121.00", Title: "Computer Systems Analysts"},
	{Code: "11-3021.00", Title: "Computer and Information Systems Managers"},
}

var healthcareOccupations = []Occupation{
	{Code: "29-1141.00", Title: "Registered Nurses"},
	{Code: "29-1171.00", Title: "Nurse Practitioners"},
	{Code: "29-2061.00", Title: "Licensed Practical and Licensed Vocational Nurses"},
	{Code: "29-1122.00", Title: "Physical Therapists"},
	{Code: "29-1061.00", Title: "Anesthesiologists"},
	{Code: "29-1126.00", Title: "Respiratory Therapists"},
	{Code: "29-2051.00", Title: "Dietetic Technicians"},
	{Code: "11-9111.00", Title: "Medical and Health Services Managers"},
}

var nursingCodePrefixes = []string{"29-114", "29-117", "29-206"}

// Catalogue returns the built-in occupations followed by the healthcare list,
// deduplicated by code.
func Catalogue() []Occupation {
	return dedupe(builtinOccupations, healthcareOccupations)
}

// LocalSearch filters the catalogue by a case-insensitive substring of the
// title or code. An empty term returns the whole catalogue.
func LocalSearch(term string) []Occupation {
	needle := strings.ToLower(strings.TrimSpace(term))
	all := Catalogue()
	if needle == "" {
		return all
	}

	out := make([]Occupation, 0)
	for _, occ := range all {
		if strings.Contains(strings.ToLower(occ.Title), needle) || strings.Contains(strings.ToLower(occ.Code), needle) {
			out = append(out, occ)
		}
	}
	return out
}

// IsNursing reports whether credentialing skills and nursing categories apply
func IsNursing(occ Occupation) bool {
	title := strings.ToLower(occ.Title)
	if strings.Contains(title, "nurse") || strings.Contains(title, "nursing") {
		return true
	}
	for _, prefix := range nursingCodePrefixes {
		if strings.HasPrefix(occ.Code, prefix) {
			return true
		}
	}
	return false
}

var categoryRules = []struct {
	category string
	keywords []string
}{
	{competency.CategoryPatientCare, []string{"monitoring", "assessment", "observation", "evaluation"}},
	{competency.CategoryDecision, []string{"critical thinking", "judgment", "decision making", "problem solving", "analysis"}},
	{competency.CategoryCommunication, []string{"listening", "speaking", "communication", "coordination", "instructing", "teaching", "writing"}},
	{competency.CategorySafety, []string{"quality", "safety", "control"}},
	{competency.CategoryProfessional, []string{"service orientation", "social perceptiveness", "time management", "learning"}},
}

// MapCategory maps a skill to one of the nursing categories when occ is a
// nursing role. Otherwise, or when no keyword matches, the generic category is
// kept, defaulting to competency.DefaultCategory.
func MapCategory(skillName, genericCategory string, occ Occupation) string {
	fallback := genericCategory
	if fallback == "" {
		fallback = competency.DefaultCategory
	}
	if !IsNursing(occ) {
		return fallback
	}

	name := strings.ToLower(skillName)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.category
			}
		}
	}
	return fallback
}

func dedupe(lists ...[]Occupation) []Occupation {
	seen := make(map[string]bool)
	out := make([]Occupation, 0)
	for _, list := range lists {
		for _, occ := range list {
			if occ.Code == "" || seen[occ.Code] {
				continue
			}
			seen[occ.Code] = true
			out = append(out, occ)
		}
	}
	return out
}
