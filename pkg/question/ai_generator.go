package question

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"competency-assessment-be/pkg/llm"
	"competency-assessment-be/pkg/retry"
)

const generatorSystemPrompt = "You are an expert at creating professional competency assessment questions. You return only valid JSON arrays."

// AIItemGenerator asks an LLM for supplemental scenario items
type AIItemGenerator struct {
	provider llm.LLMProvider
	policy   retry.Policy
}

func NewAIItemGenerator(provider llm.LLMProvider, policy retry.Policy) *AIItemGenerator {
	return &AIItemGenerator{provider: provider, policy: policy}
}

// Generate returns exactly req.Count items or an error wrapping ErrGeneration.
// Rate-limit responses are retried per the policy first.
func (g *AIItemGenerator) Generate(ctx context.Context, req SupplementRequest) ([]Item, error) {
	if req.Count <= 0 {
		return nil, nil
	}

	history := []llm.Message{
		{Role: "system", Content: generatorSystemPrompt},
		{Role: "user", Content: buildGenerationPrompt(req)},
	}

	raw, err := retry.Do(ctx, g.policy, func(ctx context.Context) (string, error) {
		return g.provider.Chat(ctx, history, llm.WithTemperature(0.7), llm.WithMaxTokens(1000))
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	items, err := ParseItems(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if len(items) != req.Count {
		return nil, fmt.Errorf("%w: wanted %d items, got %d", ErrGeneration, req.Count, len(items))
	}

	fallbackDisplay := req.Category + " - " + firstCompetencyName(req)
	for i := range items {
		if strings.TrimSpace(items[i].Scenario) == "" || strings.TrimSpace(items[i].Question) == "" {
			return nil, fmt.Errorf("%w: item %d is incomplete", ErrGeneration, i)
		}
		if items[i].CategoryDisplay == "" {
			items[i].CategoryDisplay = fallbackDisplay
		}
	}
	return items, nil
}

// ParseItems decodes a JSON array of items, tolerating markdown code fences
func ParseItems(raw string) ([]Item, error) {
	content := strings.TrimSpace(raw)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
		content = strings.TrimSpace(content)
	}

	var items []Item
	if err := json.Unmarshal([]byte(content), &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

func firstCompetencyName(req SupplementRequest) string {
	if len(req.Competencies) > 0 {
		return req.Competencies[0].Name
	}
	return "Assessment"
}

func buildGenerationPrompt(req SupplementRequest) string {
	title := req.OccupationTitle
	if title == "" {
		title = "the role"
	}

	names := make([]string, 0, len(req.Competencies))
	var descriptions strings.Builder
	for _, c := range req.Competencies {
		names = append(names, c.Name)
		fmt.Fprintf(&descriptions, "- %s: %s\n", c.Name, c.Description)
	}

	var sb strings.Builder
	sb.WriteString("You are creating scenario-based assessment questions for a professional competency assessment.\n\n")
	fmt.Fprintf(&sb, "OCCUPATION: %s\nCATEGORY: %s\nCOMPETENCIES TO ASSESS:\n%s\n", title, req.Category, descriptions.String())
	fmt.Fprintf(&sb, "TASK:\nGenerate %d scenario-based question(s) that assess the competencies listed above. Each question should:\n", req.Count)
	fmt.Fprintf(&sb, "1. Present a realistic professional scenario relevant to %s\n", title)
	sb.WriteString("2. Ask how the person would handle the situation\n")
	fmt.Fprintf(&sb, "3. Be specific to the category %q and the competencies: %s\n", req.Category, strings.Join(names, ", "))
	sb.WriteString("4. Be appropriate for assessing professional competency\n\n")
	sb.WriteString("For each question, provide:\n")
	sb.WriteString("- scenario: A brief, realistic professional scenario (2-3 sentences)\n")
	sb.WriteString("- question: A question asking how they would handle the situation (1 sentence)\n")
	fmt.Fprintf(&sb, "- categoryDisplay: A short description linking to the competency (e.g., %q)\n\n", req.Category+" - "+firstCompetencyName(req))
	sb.WriteString("Return your response as a JSON array of objects with the keys \"scenario\", \"question\" and \"categoryDisplay\".\n")
	sb.WriteString("Return ONLY the JSON array, no other text.")
	return sb.String()
}
