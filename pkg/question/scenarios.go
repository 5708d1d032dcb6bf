package question

import (
	"strings"

	"competency-assessment-be/pkg/competency"
)

// Content is what a ContentProvider returns for one skill
type Content struct {
	SkillStatement   string
	SkillDescription string
	Scenario         string
	Question         string
	Rubric           map[int]string
	RubricCriteria   map[string]string
	OnetSkills       []competency.Skill
}

// ContentProvider produces scenario content for a skill in the context of an occupation
type ContentProvider interface {
	ContentFor(skill competency.Skill, occupationTitle string) Content
}

// ScenarioEntry binds a lookup key to scenario content
type ScenarioEntry struct {
	Key     string
	Content Content
}

// ScenarioTable matches a skill name against ordered entries and falls back to
// Default. A skill matches an entry when its lower-cased name contains the key,
// or the key contains the first word of the skill name.
type ScenarioTable struct {
	Entries []ScenarioEntry
	Default Content
}

var _ ContentProvider = (*ScenarioTable)(nil)

func (t *ScenarioTable) ContentFor(skill competency.Skill, _ string) Content {
	name := strings.ToLower(strings.TrimSpace(skill.Name))
	first := name
	if i := strings.IndexByte(name, ' '); i >= 0 {
		first = name[:i]
	}

	for _, e := range t.Entries {
		if strings.Contains(name, e.Key) || (first != "" && strings.Contains(e.Key, first)) {
			return e.Content
		}
	}
	return t.Default
}

func onet(name string, importance float64, description string) competency.Skill {
	return competency.Skill{Name: name, Importance: importance, Description: description, Sources: []string{"O*NET"}}
}

// NursingScenarios is the built-in scenario table
var NursingScenarios = &ScenarioTable{
	Entries: []ScenarioEntry{
		{
			Key: "patient care",
			Content: Content{
				SkillStatement:   "Clinical Assessment and Intervention for Deteriorating Patients",
				SkillDescription: "Recognizing and responding to patient deterioration, performing comprehensive assessments, implementing evidence-based interventions, and coordinating care",
				Scenario: "You are caring for a 68-year-old patient admitted two days ago with pneumonia who also has COPD, type 2 diabetes and hypertension. " +
					"At your afternoon assessment her oxygen saturation has fallen from 94% to 88% on 2L nasal cannula, her respiratory rate is 28, she is using accessory muscles, " +
					"her temperature is 38.2°C and she says she cannot catch her breath. The attending physician is in emergency surgery for at least two hours, " +
					"the charge nurse is at a code on another unit, and the patient's daughter has just arrived asking what is happening. " +
					"You have standing orders for oxygen titration and PRN medications but nothing specific for this acute change.",
				Question: "How would you respond to this deteriorating patient situation?",
				OnetSkills: []competency.Skill{
					onet("Active Listening", 4.5, "Understanding patient and family concerns"),
					onet("Critical Thinking", 4.8, "Analyzing patient condition and making clinical decisions"),
					onet("Judgment and Decision Making", 4.7, "Determining appropriate interventions"),
					onet("Monitoring", 4.9, "Assessing vital signs and patient status"),
					onet("Complex Problem Solving", 4.6, "Managing multiple concerns simultaneously"),
				},
				RubricCriteria: map[string]string{
					"level3": "Immediate comprehensive assessment, evidence-based interventions within scope, rapid team coordination, clear family updates and thorough documentation",
					"level2": "Basic monitoring, documentation of changes and informing the charge nurse",
					"level1": "Waiting for the physician or minimal action without immediate intervention",
				},
				Rubric: map[int]string{
					1: "Needs to develop independent clinical judgment and proactive patient care",
					2: "Shows basic patient monitoring but lacks comprehensive assessment skills",
					3: "Demonstrates sound clinical judgment with comprehensive patient care and communication",
				},
			},
		},
		{
			Key: "communication",
			Content: Content{
				SkillStatement:   "Patient-Centered Communication and Medication Education",
				SkillDescription: "Communicating with patients and families about medications, addressing concerns, and providing education that supports adherence",
				Scenario: "At handoff you learn that a 55-year-old patient admitted yesterday with an acute myocardial infarction refused his overnight beta-blocker dose " +
					"and that his family is worried about \"too many medications\". When you enter the room the untouched dose is at the bedside and he tells you the pills make him feel strange. " +
					"His wife is anxious and asks about discharge. The cardiologist has stressed that adherence is critical to preventing another cardiac event.",
				Question: "How would you address this medication non-adherence and communicate with the patient and family?",
				OnetSkills: []competency.Skill{
					onet("Active Listening", 4.7, "Understanding patient and family concerns"),
					onet("Speaking", 4.8, "Educating patient and family about medications"),
					onet("Social Perceptiveness", 4.6, "Recognizing patient and family anxiety"),
					onet("Service Orientation", 4.5, "Providing patient-centered care"),
				},
				Rubric: map[int]string{
					1: "Relies on directives rather than understanding the patient's concerns",
					2: "Provides some explanation but misses the underlying barriers to adherence",
					3: "Explores concerns, educates patient and family clearly and coordinates follow-up with the team",
				},
			},
		},
		{
			Key: "critical thinking",
			Content: Content{
				SkillStatement:   "Systems Analysis and Quality Improvement in Medication Safety",
				SkillDescription: "Analyzing patterns of error, identifying system contributors, and driving improvements in medication safety",
				Scenario: "Reviewing the unit's incident reports you notice three near-miss insulin errors in two weeks, all during evening medication passes " +
					"when staffing is lowest and two look-alike insulin pens are stored side by side. No patient has been harmed yet and no one has linked the reports.",
				Question: "How would you address this medication safety concern and the pattern of errors you've identified?",
				OnetSkills: []competency.Skill{
					onet("Critical Thinking", 4.9, "Recognizing patterns across incidents"),
					onet("Complex Problem Solving", 4.7, "Identifying system-level contributors"),
					onet("Quality Control Analysis", 4.5, "Evaluating processes for safety"),
				},
				Rubric: map[int]string{
					1: "Treats each incident in isolation without recognizing the pattern",
					2: "Reports the pattern but does not analyze contributing factors",
					3: "Analyzes root causes, proposes system changes and engages leadership and pharmacy",
				},
			},
		},
		{
			Key: "handoff",
			Content: Content{
				SkillStatement:   "Critical Review and Prioritization During Nurse Handoff",
				SkillDescription: "Receiving and analyzing handoff information, identifying gaps and concerns, prioritizing care based on acuity, and ensuring continuity of care",
				Scenario: "The night nurse, already late leaving, gives you a rushed report on three patients: a confused post-operative hip patient on anticoagulation who refused pain medication, " +
					"a patient on an insulin drip for diabetic ketoacidosis whose glucose is still elevated, and a chest-pain patient described as having an uneventful night. " +
					"In the chart you find the chest-pain patient's vital signs were last recorded four hours ago and his morning troponin is elevated, which was not mentioned.",
				Question: "How would you handle this handoff situation and prioritize your care?",
				OnetSkills: []competency.Skill{
					onet("Active Listening", 4.8, "Receiving and processing handoff information"),
					onet("Reading Comprehension", 4.6, "Reviewing charts, labs, and documentation"),
					onet("Judgment and Decision Making", 4.9, "Prioritizing patient care based on acuity"),
					onet("Time Management", 4.4, "Managing time constraints effectively"),
				},
				RubricCriteria: map[string]string{
					"level3": "Thorough handoff review, clarification of gaps, rapid assessment of high-risk patients, escalation of the troponin result and documentation",
					"level2": "Reviews handoff information, identifies some concerns and asks clarifying questions",
					"level1": "Accepts the handoff without questioning or identifying concerns",
				},
				Rubric: map[int]string{
					1: "Needs to develop critical handoff review and prioritization skills",
					2: "Shows basic handoff review but prioritization is incomplete",
					3: "Manages handoff proactively with comprehensive review and prioritization",
				},
			},
		},
		{
			Key: "patient case",
			Content: Content{
				SkillStatement:   "Comprehensive Patient Assessment and Management of Complex Cases",
				SkillDescription: "Assessing all body systems, recognizing evolving complications, and coordinating interdisciplinary management of complex patients",
				Scenario: "An 82-year-old resident admitted for a fall has become newly confused since yesterday, is pulling at her IV, has not voided for eight hours and has a low-grade fever. " +
					"Her son insists this is \"just her age\" and wants her sedated so she can rest.",
				Question: "How would you assess and manage this complex patient case?",
				RubricCriteria: map[string]string{
					"level3": "Comprehensive assessment of all systems, recognition of possible delirium or urinary infection, immediate interventions, team coordination and clear family communication",
					"level2": "Thorough assessment, identification of key concerns and communication with the team",
					"level1": "Minimal assessment or waiting for physician direction",
				},
				Rubric: map[int]string{
					1: "Needs to develop systematic assessment of complex presentations",
					2: "Identifies key concerns but management is incomplete",
					3: "Recognizes complications early and coordinates comprehensive care",
				},
			},
		},
	},
	Default: Content{
		Scenario: "You are providing care to a patient with complex medical needs and several comorbidities. The situation calls for careful clinical judgment, " +
			"clear communication with the healthcare team and coordination of care while you balance competing priorities and keep the patient safe.",
		Question: "How would you approach this complex patient care situation?",
		Rubric: map[int]string{
			1: "Needs to develop independent clinical judgment and assessment skills",
			2: "Shows basic clinical skills but needs more confidence in decision-making",
			3: "Demonstrates sound clinical judgment and comprehensive patient care",
		},
	},
}
