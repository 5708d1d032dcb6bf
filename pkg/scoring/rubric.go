package scoring

// RubricLevel is one of the three competency levels
type RubricLevel struct {
	Score           int      `json:"score"`
	Label           string   `json:"label"`
	Description     string   `json:"description"`
	Feedback        string   `json:"feedback"`
	Indicators      []string `json:"indicators"`
	Examples        []string `json:"examples"`
	Recommendations []string `json:"recommendations"`
	NextSteps       string   `json:"nextSteps"`
}

const (
	LabelNotCompetent = "Not Competent"
	LabelApproaching  = "Approaching Competency"
	LabelCompetent    = "Competent"
)

// RubricLevels is the fixed catalogue, ordered from level 1 to level 3
var RubricLevels = []RubricLevel{
	{
		Score:       1,
		Label:       LabelNotCompetent,
		Description: "Response shows limited understanding, inappropriate approach, or missing essential competencies",
		Feedback:    "This response does not meet competency standards. Focus on building foundational knowledge and skills.",
		Indicators: []string{
			"Minimal or no recognition of key issues",
			"Lacks understanding of professional responsibilities",
			"No evidence of critical thinking or problem-solving",
			"Passive approach, waiting for direction from others",
			"Missing essential safety considerations",
			"No consideration of patient or family needs",
			"Inadequate or no documentation mentioned",
		},
		Examples: []string{
			"Would wait for a supervisor or physician to handle everything",
			"Does not identify potential risks or complications",
			"No mention of assessment or monitoring",
			"Ignores family concerns or patient distress",
		},
		Recommendations: []string{
			"Review professional scope of practice and responsibilities",
			"Study evidence-based practice guidelines and standards",
			"Practice identifying key issues in case scenarios",
			"Learn to recognize safety concerns and red flags",
			"Seek mentorship and ask questions when uncertain",
		},
		NextSteps: "Focus on building foundational knowledge and understanding of professional responsibilities. Practice identifying key issues in scenarios before taking action.",
	},
	{
		Score:       2,
		Label:       LabelApproaching,
		Description: "Response shows developing understanding and some competency, but needs improvement to fully meet standards",
		Feedback:    "You're making progress toward competency. Continue developing your skills to fully meet professional standards.",
		Indicators: []string{
			"Identifies some key issues but may miss important concerns",
			"Shows basic understanding of responsibilities",
			"Follows protocols but analysis is limited",
			"Seeks guidance appropriately but may be overly dependent",
			"Basic safety awareness but may miss subtle risks",
			"Mentions documentation but lacks detail",
		},
		Examples: []string{
			"Would inform a supervisor and follow their direction",
			"Identifies obvious concerns but misses underlying issues",
			"Performs a basic assessment that lacks depth",
			"Communicates with family but may not address all concerns",
		},
		Recommendations: []string{
			"Develop deeper analytical thinking skills",
			"Practice comprehensive assessment techniques",
			"Build confidence in independent decision-making within scope",
			"Practice prioritizing multiple concerns",
		},
		NextSteps: "Keep building your knowledge base and apply it to more complex scenarios, aiming for comprehensive and consistent practice.",
	},
	{
		Score:       3,
		Label:       LabelCompetent,
		Description: "Response demonstrates appropriate approach, good understanding, sound professional judgment, and meets competency standards",
		Feedback:    "Excellent response! You demonstrate competency in this area. Continue to refine and maintain your skills.",
		Indicators: []string{
			"Identifies key issues and concerns appropriately",
			"Demonstrates good understanding of professional scope",
			"Shows evidence of critical thinking and analysis",
			"Takes appropriate independent action within scope",
			"Good safety awareness and risk identification",
			"Comprehensive documentation mentioned",
			"Coordinates with team members effectively",
		},
		Examples: []string{
			"Performs thorough assessment, identifies concerns, implements appropriate interventions, and communicates with team",
			"Recognizes potential complications and takes preventive measures",
			"Balances multiple priorities effectively",
			"Provides clear explanations to patients and families",
		},
		Recommendations: []string{
			"Continue staying current with evidence-based practice",
			"Consider mentoring others to reinforce your own learning",
			"Participate in quality improvement initiatives",
			"Seek opportunities to expand your expertise",
		},
		NextSteps: "You demonstrate competency in this area. Maintain and refine your skills through ongoing practice and professional development.",
	},
}

// LevelFor returns the rubric entry for score, clamped to 1..3
func LevelFor(score int) RubricLevel {
	switch {
	case score < 1:
		score = 1
	case score > 3:
		score = 3
	}
	return RubricLevels[score-1]
}

// ScoreLabel maps an average level to its qualitative label
func ScoreLabel(avg float64) string {
	switch {
	case avg >= 2.5:
		return LabelCompetent
	case avg >= 1.5:
		return LabelApproaching
	default:
		return LabelNotCompetent
	}
}
