package competency

// Group is one curated competency inside a category. A skill belongs to the group
// when its lower-cased name contains any of the keywords.
type Group struct {
	Name        string
	Keywords    []string
	Description string
}

// CategoryGroups binds a category label to its ordered groups
type CategoryGroups struct {
	Category string
	Groups   []Group
}

// Table is an ordered, data-only rule set. Category order is the canonical
// processing order.
type Table []CategoryGroups

const (
	CategoryPatientCare   = "Patient Care & Assessment"
	CategoryDecision      = "Clinical Decision Making"
	CategoryCommunication = "Communication & Collaboration"
	CategorySafety        = "Patient Safety & Quality"
	CategoryProfessional  = "Professional Practice"
)

// NursingTable is the curated competency table for nursing occupations
var NursingTable = Table{
	{
		Category: CategoryPatientCare,
		Groups: []Group{
			{
				Name:        "Comprehensive Patient Assessment and Monitoring",
				Keywords:    []string{"assessment", "monitoring", "observation", "evaluation", "vital signs", "physical assessment", "health promotion"},
				Description: "Conducting thorough patient assessments, monitoring patient conditions, and evaluating responses to care across physical, psychological, and social dimensions.",
			},
			{
				Name:        "Clinical Intervention and Care Delivery",
				Keywords:    []string{"intervention", "treatment", "care delivery", "nursing care", "therapeutic", "physiological integrity", "pharmacological"},
				Description: "Implementing evidence-based nursing interventions, administering treatments and medications safely, and managing patient care across the continuum.",
			},
			{
				Name:        "Patient Safety and Risk Management",
				Keywords:    []string{"safety", "risk", "infection control", "prevention", "reduction of risk", "quality", "error prevention"},
				Description: "Identifying and mitigating patient safety risks, implementing infection control measures, and preventing adverse events through systematic safety practices.",
			},
		},
	},
	{
		Category: CategoryDecision,
		Groups: []Group{
			{
				Name:        "Critical Thinking and Clinical Reasoning",
				Keywords:    []string{"critical thinking", "judgment", "decision making", "problem solving", "analysis", "reasoning", "clinical inquiry"},
				Description: "Applying critical thinking skills to analyze patient situations, make sound clinical judgments, and solve complex healthcare problems using evidence-based approaches.",
			},
			{
				Name:        "Evidence-Based Practice and Quality Improvement",
				Keywords:    []string{"evidence-based", "quality", "improvement", "research", "best practices", "outcomes", "effectiveness"},
				Description: "Integrating research evidence, clinical expertise, and patient preferences into practice decisions and participating in quality improvement initiatives.",
			},
			{
				Name:        "Care Coordination and Management",
				Keywords:    []string{"coordination", "management", "planning", "prioritization", "organization", "care management", "case management"},
				Description: "Coordinating patient care across settings and providers, managing complex care plans, and prioritizing interventions based on patient acuity and needs.",
			},
		},
	},
	{
		Category: CategoryCommunication,
		Groups: []Group{
			{
				Name:        "Therapeutic Communication and Patient Education",
				Keywords:    []string{"communication", "listening", "speaking", "teaching", "education", "patient education", "facilitation of learning", "therapeutic communication"},
				Description: "Engaging in effective therapeutic communication with patients and families, providing health education, and facilitating learning to promote health and wellness.",
			},
			{
				Name:        "Interprofessional Collaboration and Teamwork",
				Keywords:    []string{"collaboration", "teamwork", "coordination", "interprofessional", "multidisciplinary", "cooperation", "partnership"},
				Description: "Working effectively with healthcare team members from various disciplines, coordinating care, and contributing to collaborative decision-making processes.",
			},
			{
				Name:        "Documentation and Professional Communication",
				Keywords:    []string{"documentation", "writing", "reporting", "handoff", "communication", "record keeping", "information management"},
				Description: "Maintaining accurate, timely, and comprehensive patient records and communicating effectively through written and verbal channels with team members.",
			},
		},
	},
	{
		Category: CategorySafety,
		Groups: []Group{
			{
				Name:        "Safety Protocols and Error Prevention",
				Keywords:    []string{"safety", "error prevention", "medication safety", "infection control", "prevention", "risk reduction"},
				Description: "Implementing safety protocols, preventing medication errors, maintaining infection control standards, and reducing risks to patient safety.",
			},
			{
				Name:        "Quality Assurance and Improvement",
				Keywords:    []string{"quality", "improvement", "assurance", "standards", "outcomes", "effectiveness", "excellence"},
				Description: "Participating in quality improvement activities, monitoring care outcomes, and contributing to initiatives that enhance patient care quality.",
			},
		},
	},
	{
		Category: CategoryProfessional,
		Groups: []Group{
			{
				Name:        "Professional Development and Lifelong Learning",
				Keywords:    []string{"learning", "development", "education", "continuing education", "professional growth", "competency", "knowledge"},
				Description: "Engaging in continuous professional development, staying current with evidence-based practice, and maintaining professional competencies.",
			},
			{
				Name:        "Ethical Practice and Professional Accountability",
				Keywords:    []string{"ethics", "accountability", "responsibility", "professionalism", "integrity", "advocacy", "values"},
				Description: "Practicing with ethical integrity, maintaining professional accountability, advocating for patients, and upholding professional standards and values.",
			},
		},
	},
}

// Categories returns the canonical category order of the table
func (t Table) Categories() []string {
	out := make([]string, len(t))
	for i, c := range t {
		out[i] = c.Category
	}
	return out
}
