package skillsource

import (
	"context"
	"fmt"
	"strings"

	"competency-assessment-be/internal/pkg/logger"
	"competency-assessment-be/pkg/competency"
)

const moduleName = "SKILLSOURCE"

// Remote is the network side of the source; *Client implements it
type Remote interface {
	SearchOccupations(ctx context.Context, term string) ([]Occupation, error)
	FetchSkills(ctx context.Context, occ Occupation) ([]competency.Skill, error)
}

// SkillSet is the outcome of a skill lookup
type SkillSet struct {
	Skills   []competency.Skill `json:"skills"`
	Fallback bool               `json:"fallback"`
}

// Source resolves occupations and skills. Remote failures are recovered with
// the built-in catalogue and fallback skills and are never returned.
type Source struct {
	remote Remote
	cache  *TieredCache
	logger logger.ILogger
}

// NewSource accepts a nil remote for a fully offline source and a nil cache
func NewSource(remote Remote, c *TieredCache, log logger.ILogger) *Source {
	return &Source{remote: remote, cache: c, logger: log}
}

// Occupations lists the built-in catalogue
func (s *Source) Occupations() []Occupation {
	return Catalogue()
}

// Search prefers the remote search and falls back to LocalSearch on failure or
// an empty answer.
func (s *Source) Search(ctx context.Context, term string) []Occupation {
	term = strings.TrimSpace(term)
	if term == "" {
		return Catalogue()
	}

	key := "search:" + strings.ToLower(term)
	var cached []Occupation
	if s.cache.Get(ctx, key, &cached) {
		return cached
	}

	if s.remote != nil {
		occs, err := s.remote.SearchOccupations(ctx, term)
		if err == nil {
			s.cache.Set(ctx, key, occs)
			return occs
		}
		s.logger.Warn(moduleName, "Remote occupation search failed, using local catalogue", map[string]interface{}{
			"term":  term,
			"error": err.Error(),
		})
	}

	return LocalSearch(term)
}

// Skills returns the merged remote and credentialing skills for occ. When the
// remote fetch fails or lists nothing, the fallback skill set is used instead.
func (s *Source) Skills(ctx context.Context, occ Occupation) SkillSet {
	key := "skills:" + occ.Code
	var cached []competency.Skill
	if s.cache.Get(ctx, key, &cached) {
		return SkillSet{Skills: cached}
	}

	if s.remote != nil {
		skills, err := s.remote.FetchSkills(ctx, occ)
		if err == nil && len(skills) == 0 {
			err = fmt.Errorf("%w: no skills listed for %s", ErrFetch, occ.Code)
		}
		if err == nil {
			merged := competency.MergeSkills(skills, CredentialingSkills(occ))
			s.cache.Set(ctx, key, merged)
			return SkillSet{Skills: merged}
		}
		s.logger.Warn(moduleName, "Skill fetch failed, using fallback skills", map[string]interface{}{
			"code":  occ.Code,
			"title": occ.Title,
			"error": err.Error(),
		})
	}

	return SkillSet{Skills: FallbackSkills(occ), Fallback: true}
}
