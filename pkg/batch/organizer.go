// Package batch partitions a question pool into per-category sections.
//
// Every emitted section holds at least MinSectionSize questions and no question
// appears in more than one section. Coverage of every competency in a category
// is best-effort: it is attempted through coverage-first selection and
// round-robin backfill, but it is not guaranteed once the pool runs dry.
package batch

import (
	"context"
	"errors"
	"sort"
	"time"

	"competency-assessment-be/internal/pkg/logger"
	"competency-assessment-be/pkg/competency"
	"competency-assessment-be/pkg/question"
	"competency-assessment-be/pkg/retry"
)

const (
	moduleName = "ORGANIZER"

	// MinSectionSize is the smallest section the organizer emits
	MinSectionSize = 3
)

// ErrNoSections means nothing could be organized; the caller must ask the user
// to pick another occupation.
var ErrNoSections = errors.New("no sections could be organized")

// ItemGenerator produces supplemental items for a short category. It must
// return exactly req.Count items or an error.
type ItemGenerator interface {
	Generate(ctx context.Context, req question.SupplementRequest) ([]question.Item, error)
}

// Section is one user-facing group of questions for a category
type Section struct {
	Category             string                  `json:"category"`
	CategoryDisplay      string                  `json:"categoryDisplay"`
	Questions            []question.Question     `json:"questions"`
	Competencies         []string                `json:"competencies"`
	CategoryCompetencies []competency.Competency `json:"categoryCompetencies"`
}

// Result is the outcome of one organize pass. Supplemental holds questions
// created during the pass; the caller adds them to its pool so ids stay unique.
type Result struct {
	Sections     []Section
	Supplemental []question.Question
}

// Option configures an Organizer
type Option func(*Organizer)

// WithGenerator enables shortfall escalation through g
func WithGenerator(g ItemGenerator) Option {
	return func(o *Organizer) { o.generator = g }
}

// WithWeights overrides the matcher weights
func WithWeights(w MatchWeights) Option {
	return func(o *Organizer) { o.matcher = NewMatcher(w, nil) }
}

// WithPacing sets the delay before generation for the category at index i:
// base + i*step, skipped for the first category.
func WithPacing(base, step time.Duration) Option {
	return func(o *Organizer) {
		o.paceBase = base
		o.paceStep = step
	}
}

// WithSleeper replaces the real timer used for pacing
func WithSleeper(s retry.Sleeper) Option {
	return func(o *Organizer) { o.sleeper = s }
}

// Organizer builds sections. It keeps no state between calls; a single
// Organize call owns all of its working sets.
type Organizer struct {
	logger    logger.ILogger
	matcher   *Matcher
	generator ItemGenerator
	sleeper   retry.Sleeper
	paceBase  time.Duration
	paceStep  time.Duration
}

func NewOrganizer(log logger.ILogger, opts ...Option) *Organizer {
	o := &Organizer{
		logger:   log,
		matcher:  NewMatcher(DefaultMatchWeights(), nil),
		sleeper:  retry.RealSleeper,
		paceBase: 3 * time.Second,
		paceStep: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// run carries the mutable state of one Organize call
type run struct {
	pool     []question.Question
	used     map[int]struct{}
	nextID   int
	occTitle string
	supplied []question.Question
}

func (r *run) isUsed(id int) bool {
	_, ok := r.used[id]
	return ok
}

// Organize maps the pool and competencies into ordered sections. Section order
// follows the first-seen order of competency categories. It returns
// ErrNoSections when there are no competencies or questions, or when not even
// the global fallback section could be built; it never returns any other error.
// A cancelled ctx stops building further category sections; the sections built
// so far, or failing those the global fallback, are returned.
func (o *Organizer) Organize(ctx context.Context, pool []question.Question, comps []competency.Competency, occupationTitle string) (*Result, error) {
	if len(comps) == 0 || len(pool) == 0 {
		o.logger.Warn(moduleName, "Nothing to organize", map[string]interface{}{
			"questions":    len(pool),
			"competencies": len(comps),
		})
		return nil, ErrNoSections
	}

	compOrder, compsByCat := groupCompetencies(comps)
	qOrder, qsByCat := groupQuestions(pool)

	allQuestions := make([]question.Question, 0, len(pool))
	for _, cat := range qOrder {
		allQuestions = append(allQuestions, qsByCat[cat]...)
	}

	r := &run{
		pool:     allQuestions,
		used:     make(map[int]struct{}),
		nextID:   question.MaxID(pool) + 1,
		occTitle: occupationTitle,
	}

	type plan struct {
		category   string
		candidates []question.Question
	}
	var plans []plan
	for i, cat := range compOrder {
		if len(compsByCat[cat]) == 0 {
			continue
		}
		candidates := qsByCat[cat]
		if len(candidates) == 0 && len(allQuestions) > 0 {
			for qi, q := range allQuestions {
				if qi%len(compOrder) == i {
					candidates = append(candidates, q)
				}
			}
			o.logger.Debug(moduleName, "Redistributed questions to unmatched category", map[string]interface{}{
				"category": cat,
				"count":    len(candidates),
			})
		}
		if len(candidates) == 0 {
			o.logger.Warn(moduleName, "Dropping category without candidate questions", map[string]interface{}{
				"category": cat,
			})
			continue
		}
		plans = append(plans, plan{category: cat, candidates: candidates})
	}

	var sections []Section
	for idx, p := range plans {
		if err := ctx.Err(); err != nil {
			o.logger.Warn(moduleName, "Organizing interrupted, keeping sections built so far", map[string]interface{}{
				"built":   len(sections),
				"planned": len(plans),
				"error":   err.Error(),
			})
			break
		}
		section, ok := o.buildSection(ctx, r, idx, p.category, compsByCat[p.category], p.candidates)
		if !ok {
			continue
		}
		sections = append(sections, section)
	}

	if len(sections) == 0 {
		fallback, ok := o.globalFallback(comps, compOrder, compsByCat, allQuestions)
		if !ok {
			o.logger.Error(moduleName, "No sections could be organized", map[string]interface{}{
				"questions":    len(pool),
				"competencies": len(comps),
			})
			return nil, ErrNoSections
		}
		sections = append(sections, fallback)
	}

	o.logger.Info(moduleName, "Organized questions into sections", map[string]interface{}{
		"questions":    len(pool),
		"sections":     len(sections),
		"supplemental": len(r.supplied),
	})

	return &Result{Sections: sections, Supplemental: r.supplied}, nil
}

func (o *Organizer) buildSection(ctx context.Context, r *run, idx int, category string, comps []competency.Competency, candidates []question.Question) (Section, bool) {
	// Drop anything another section already took.
	available := make([]question.Question, 0, len(candidates))
	for _, q := range candidates {
		if !r.isUsed(q.ID) {
			available = append(available, q)
		}
	}

	buckets := make([][]question.Question, len(comps))
	var unmapped []question.Question
	for _, q := range available {
		if ci, ok := o.matcher.Best(q, comps); ok {
			buckets[ci] = append(buckets[ci], q)
		} else {
			unmapped = append(unmapped, q)
		}
	}

	taken := make(map[int]struct{})
	isTaken := func(id int) bool {
		_, ok := taken[id]
		return ok
	}
	counts := make([]int, len(comps))
	var selected []question.Question
	take := func(q question.Question, ci int) {
		selected = append(selected, q)
		taken[q.ID] = struct{}{}
		if ci >= 0 {
			counts[ci]++
		}
	}

	// Coverage first: at most one question per competency.
	for ci := range comps {
		for _, q := range buckets[ci] {
			if !isTaken(q.ID) {
				take(q, ci)
				break
			}
		}
	}

	// Unmapped questions go round-robin to the least covered competencies.
	if len(unmapped) > 0 {
		order := make([]int, len(comps))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool { return counts[order[a]] < counts[order[b]] })
		for i, q := range unmapped {
			ci := order[i%len(order)]
			buckets[ci] = append(buckets[ci], q)
		}
	}

	target := len(comps)
	if target < MinSectionSize {
		target = MinSectionSize
	}
	for len(selected) < target {
		if !o.fillOne(buckets, counts, isTaken, take, available) {
			break
		}
	}

	if len(selected) < MinSectionSize {
		need := MinSectionSize - len(selected)
		added := o.supplement(ctx, r, idx, category, comps, need)
		for _, q := range added {
			take(q, -1)
		}
		if len(added) < need {
			for _, q := range r.pool {
				if len(selected) >= MinSectionSize {
					break
				}
				if r.isUsed(q.ID) || isTaken(q.ID) {
					continue
				}
				take(q, -1)
			}
		}
	}

	if len(selected) < MinSectionSize {
		o.logger.Warn(moduleName, "Dropping category with too few questions", map[string]interface{}{
			"category":  category,
			"questions": len(selected),
		})
		return Section{}, false
	}

	for id := range taken {
		r.used[id] = struct{}{}
	}

	return Section{
		Category:             category,
		CategoryDisplay:      category,
		Questions:            selected,
		Competencies:         o.coveredNames(selected, comps),
		CategoryCompetencies: comps,
	}, true
}

// fillOne adds one question for the least covered competency that still has a
// bucket question, else any untaken candidate. It reports whether anything was added.
func (o *Organizer) fillOne(buckets [][]question.Question, counts []int, isTaken func(int) bool, take func(question.Question, int), available []question.Question) bool {
	order := make([]int, len(counts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return counts[order[a]] < counts[order[b]] })

	for _, ci := range order {
		for _, q := range buckets[ci] {
			if !isTaken(q.ID) {
				take(q, ci)
				return true
			}
		}
	}

	for _, q := range available {
		if !isTaken(q.ID) {
			take(q, -1)
			return true
		}
	}
	return false
}

// supplement asks the generator for need items. Any failure, including a short
// answer, yields nil so the caller pads from the global pool.
func (o *Organizer) supplement(ctx context.Context, r *run, idx int, category string, comps []competency.Competency, need int) []question.Question {
	if o.generator == nil {
		return nil
	}

	if idx > 0 {
		delay := o.paceBase + time.Duration(idx)*o.paceStep
		o.logger.Debug(moduleName, "Pacing before supplemental generation", map[string]interface{}{
			"category": category,
			"delay":    delay.String(),
		})
		if err := o.sleeper.Sleep(ctx, delay); err != nil {
			o.logger.Warn(moduleName, "Pacing interrupted", map[string]interface{}{
				"category": category,
				"error":    err.Error(),
			})
			return nil
		}
	}

	items, err := o.generator.Generate(ctx, question.SupplementRequest{
		Category:        category,
		Competencies:    comps,
		Count:           need,
		OccupationTitle: r.occTitle,
	})
	if err == nil && len(items) < need {
		err = question.ErrGeneration
	}
	if err != nil {
		o.logger.Warn(moduleName, "Supplemental generation failed, padding from other categories", map[string]interface{}{
			"category": category,
			"needed":   need,
			"error":    err.Error(),
		})
		return nil
	}

	skillName := category
	if len(comps) > 0 {
		skillName = comps[0].Name
	}

	out := make([]question.Question, 0, need)
	for _, it := range items[:need] {
		q := question.Question{
			ID:              r.nextID,
			Category:        category,
			CategoryDisplay: it.CategoryDisplay,
			Type:            question.TypeScenario,
			SkillName:       skillName,
			Scenario:        it.Scenario,
			Prompt:          it.Question,
			ResponseType:    question.ResponseOpenEnded,
		}
		r.nextID++
		out = append(out, q)
		r.supplied = append(r.supplied, q)
	}

	o.logger.Info(moduleName, "Generated supplemental questions", map[string]interface{}{
		"category": category,
		"count":    len(out),
	})
	return out
}

func (o *Organizer) coveredNames(selected []question.Question, comps []competency.Competency) []string {
	seen := make(map[int]struct{})
	var names []string
	for _, q := range selected {
		ci, ok := o.matcher.Best(q, comps)
		if !ok {
			continue
		}
		if _, dup := seen[ci]; dup {
			continue
		}
		seen[ci] = struct{}{}
		names = append(names, comps[ci].Name)
	}
	if len(names) > 0 {
		return names
	}
	return competencyNames(comps)
}

// globalFallback builds one section over the whole pool under the first
// competency category. Organize guarantees comps is non-empty.
func (o *Organizer) globalFallback(all []competency.Competency, compOrder []string, compsByCat map[string][]competency.Competency, pool []question.Question) (Section, bool) {
	if len(pool) < MinSectionSize || len(compOrder) == 0 {
		return Section{}, false
	}

	category := compOrder[0]
	comps := compsByCat[category]
	if len(comps) == 0 {
		comps = all
		if len(comps) > 3 {
			comps = comps[:3]
		}
	}

	o.logger.Warn(moduleName, "Creating fallback section from the whole pool", map[string]interface{}{
		"category":  category,
		"questions": len(pool),
	})

	questions := make([]question.Question, len(pool))
	copy(questions, pool)
	return Section{
		Category:             category,
		CategoryDisplay:      category,
		Questions:            questions,
		Competencies:         competencyNames(comps),
		CategoryCompetencies: comps,
	}, true
}

func groupCompetencies(comps []competency.Competency) ([]string, map[string][]competency.Competency) {
	var order []string
	by := make(map[string][]competency.Competency)
	for _, c := range comps {
		cat := c.Category
		if cat == "" {
			cat = competency.DefaultCategory
		}
		if _, ok := by[cat]; !ok {
			order = append(order, cat)
		}
		by[cat] = append(by[cat], c)
	}
	return order, by
}

func groupQuestions(pool []question.Question) ([]string, map[string][]question.Question) {
	var order []string
	by := make(map[string][]question.Question)
	for _, q := range pool {
		cat := q.Category
		if cat == "" {
			cat = competency.DefaultCategory
		}
		if _, ok := by[cat]; !ok {
			order = append(order, cat)
		}
		by[cat] = append(by[cat], q)
	}
	return order, by
}

func competencyNames(comps []competency.Competency) []string {
	out := make([]string, 0, len(comps))
	for _, c := range comps {
		out = append(out, c.Name)
	}
	return out
}
