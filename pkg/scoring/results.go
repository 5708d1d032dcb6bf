package scoring

import "math"

// ScoredAnswer is one evaluated answer tagged with the category it was asked in
type ScoredAnswer struct {
	Category   string
	QuestionID int
	Level      int
}

// CategoryResult is the aggregate for one category
type CategoryResult struct {
	Category   string  `json:"category"`
	Answered   int     `json:"answered"`
	Average    float64 `json:"average"`
	Percentage float64 `json:"percentage"`
	Label      string  `json:"label"`
}

// Report is the final results view
type Report struct {
	Categories []CategoryResult `json:"categories"`
	Overall    CategoryResult   `json:"overall"`
}

// Aggregate averages levels per category in first-seen order. The overall score
// is weighted by the number of answers in each category.
func Aggregate(answers []ScoredAnswer) Report {
	var order []string
	sums := make(map[string]int)
	counts := make(map[string]int)
	total, totalCount := 0, 0

	for _, a := range answers {
		if _, ok := counts[a.Category]; !ok {
			order = append(order, a.Category)
		}
		sums[a.Category] += a.Level
		counts[a.Category]++
		total += a.Level
		totalCount++
	}

	report := Report{Categories: make([]CategoryResult, 0, len(order))}
	for _, cat := range order {
		report.Categories = append(report.Categories, summarize(cat, sums[cat], counts[cat]))
	}
	report.Overall = summarize("Overall", total, totalCount)
	return report
}

func summarize(category string, sum, count int) CategoryResult {
	res := CategoryResult{Category: category, Answered: count}
	if count == 0 {
		res.Label = ScoreLabel(0)
		return res
	}
	avg := float64(sum) / float64(count)
	res.Average = math.Round(avg*100) / 100
	res.Percentage = math.Round(avg/3*1000) / 10
	res.Label = ScoreLabel(avg)
	return res
}
