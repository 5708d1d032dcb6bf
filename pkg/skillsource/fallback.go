package skillsource

import "competency-assessment-be/pkg/competency"

// SourceONET tags skills that came from O*NET or its offline stand-in
const SourceONET = "O*NET"

var fallbackSkills = []competency.Skill{
	{Name: "Active Listening", Importance: 4.7, Category: competency.CategoryCommunication,
		Description: "Giving full attention to what others are saying, understanding the points being made, asking questions as appropriate, and not interrupting at inappropriate times."},
	{Name: "Critical Thinking", Importance: 4.8, Category: competency.CategoryDecision,
		Description: "Using logic and reasoning to identify the strengths and weaknesses of alternative solutions, conclusions, or approaches to problems."},
	{Name: "Monitoring", Importance: 4.9, Category: competency.CategoryPatientCare,
		Description: "Monitoring/Assessing performance of yourself, other individuals, or organizations to make improvements or take corrective action."},
	{Name: "Judgment and Decision Making", Importance: 4.7, Category: competency.CategoryDecision,
		Description: "Considering the relative costs and benefits of potential actions to choose the most appropriate one."},
	{Name: "Speaking", Importance: 4.6, Category: competency.CategoryCommunication,
		Description: "Talking to others to convey information effectively."},
	{Name: "Reading Comprehension", Importance: 4.5, Category: competency.CategoryCommunication,
		Description: "Understanding written sentences and paragraphs in work-related documents."},
	{Name: "Complex Problem Solving", Importance: 4.6, Category: competency.CategoryDecision,
		Description: "Identifying complex problems and reviewing related information to develop and evaluate options and implement solutions."},
	{Name: "Social Perceptiveness", Importance: 4.5, Category: competency.CategoryProfessional,
		Description: "Being aware of others' reactions and understanding why they react as they do."},
	{Name: "Service Orientation", Importance: 4.6, Category: competency.CategoryProfessional,
		Description: "Actively looking for ways to help people."},
	{Name: "Time Management", Importance: 4.4, Category: competency.CategoryProfessional,
		Description: "Managing one's own time and the time of others."},
	{Name: "Writing", Importance: 4.3, Category: competency.CategoryCommunication,
		Description: "Communicating effectively in writing as appropriate for the needs of the audience."},
	{Name: "Coordination", Importance: 4.5, Category: competency.CategoryCommunication,
		Description: "Adjusting actions in relation to others' actions."},
	{Name: "Instructing", Importance: 4.4, Category: competency.CategoryCommunication,
		Description: "Teaching others how to do something."},
	{Name: "Learning Strategies", Importance: 4.3, Category: competency.CategoryProfessional,
		Description: "Selecting and using training/instructional methods and procedures appropriate for the situation when learning or teaching new things."},
	{Name: "Quality Control Analysis", Importance: 4.5, Category: competency.CategorySafety,
		Description: "Conducting tests and inspections of products, services, or processes to evaluate quality or performance."},
	{Name: "Patient Assessment", Importance: 4.9, Category: competency.CategoryPatientCare,
		Description: "Conducting comprehensive physical and psychological assessments of patients to identify health status and care needs."},
	{Name: "Medication Administration", Importance: 4.8, Category: competency.CategoryPatientCare,
		Description: "Safely preparing and administering medications according to established protocols and patient-specific needs."},
	{Name: "Vital Signs Monitoring", Importance: 4.9, Category: competency.CategoryPatientCare,
		Description: "Accurately measuring and interpreting vital signs including blood pressure, pulse, temperature, and respiratory rate."},
	{Name: "Clinical Documentation", Importance: 4.6, Category: competency.CategoryCommunication,
		Description: "Maintaining accurate, timely, and comprehensive patient records in accordance with legal and professional standards."},
	{Name: "Patient Education", Importance: 4.5, Category: competency.CategoryCommunication,
		Description: "Educating patients and families about health conditions, treatments, and self-care strategies."},
	{Name: "Infection Control", Importance: 4.7, Category: competency.CategorySafety,
		Description: "Implementing and maintaining infection prevention protocols to protect patients, staff, and visitors."},
	{Name: "Emergency Response", Importance: 4.8, Category: competency.CategoryDecision,
		Description: "Responding quickly and effectively to medical emergencies and critical situations."},
	{Name: "Care Planning", Importance: 4.7, Category: competency.CategoryDecision,
		Description: "Developing and implementing individualized care plans based on patient assessment and evidence-based practice."},
	{Name: "Delegation", Importance: 4.4, Category: competency.CategoryProfessional,
		Description: "Appropriately delegating tasks to qualified team members while maintaining accountability for patient outcomes."},
	{Name: "Ethical Practice", Importance: 4.6, Category: competency.CategoryProfessional,
		Description: "Applying ethical principles and professional standards in all aspects of patient care and professional interactions."},
}

// FallbackSkills is the offline skill set: the built-in O*NET-style list merged
// with the credentialing skills that apply to occ.
func FallbackSkills(occ Occupation) []competency.Skill {
	base := make([]competency.Skill, len(fallbackSkills))
	for i, s := range fallbackSkills {
		s.Sources = []string{SourceONET}
		base[i] = s
	}
	return competency.MergeSkills(base, CredentialingSkills(occ))
}
