package skillsource

import "competency-assessment-be/pkg/competency"

// Platform is a credentialing body whose published competencies feed the skill set
type Platform struct {
	Name         string
	Abbreviation string
	Skills       []competency.Skill
}

// Platforms lists the nursing credentialing bodies in merge order
var Platforms = []Platform{
	{
		Name:         "NCLEX (National Council Licensure Examination)",
		Abbreviation: "NCLEX",
		Skills: []competency.Skill{
			{Name: "Safe and Effective Care Environment", Importance: 4.9, Category: competency.CategorySafety,
				Description: "Creating and maintaining a safe, therapeutic environment for patients, including infection control, safety protocols, and risk reduction."},
			{Name: "Health Promotion and Maintenance", Importance: 4.7, Category: competency.CategoryPatientCare,
				Description: "Promoting optimal health and preventing illness through patient education, health screening, and wellness strategies."},
			{Name: "Psychosocial Integrity", Importance: 4.6, Category: competency.CategoryProfessional,
				Description: "Supporting patients' emotional, mental, and social well-being, including coping mechanisms, therapeutic communication, and mental health support."},
			{Name: "Physiological Integrity", Importance: 4.9, Category: competency.CategoryPatientCare,
				Description: "Maintaining patients' physical health through assessment, intervention, and management of physiological needs and responses."},
			{Name: "Pharmacological and Parenteral Therapies", Importance: 4.8, Category: competency.CategoryPatientCare,
				Description: "Safely administering medications, monitoring therapeutic effects, and managing adverse reactions."},
			{Name: "Reduction of Risk Potential", Importance: 4.8, Category: competency.CategorySafety,
				Description: "Identifying and minimizing risks to patient safety, including complications, adverse events, and health hazards."},
			{Name: "Basic Care and Comfort", Importance: 4.7, Category: competency.CategoryPatientCare,
				Description: "Providing comfort measures and assisting with activities of daily living to promote patient well-being."},
		},
	},
	{
		Name:         "ANCC (American Nurses Credentialing Center)",
		Abbreviation: "ANCC",
		Skills: []competency.Skill{
			{Name: "Evidence-Based Practice", Importance: 4.7, Category: competency.CategoryDecision,
				Description: "Integrating best available evidence with clinical expertise and patient values to guide nursing practice decisions."},
			{Name: "Quality Improvement", Importance: 4.6, Category: competency.CategorySafety,
				Description: "Using data and systematic approaches to improve healthcare processes and patient outcomes."},
			{Name: "Leadership", Importance: 4.5, Category: competency.CategoryProfessional,
				Description: "Demonstrating leadership skills in clinical practice, including change management, team coordination, and professional development."},
			{Name: "Professional Development", Importance: 4.4, Category: competency.CategoryProfessional,
				Description: "Engaging in continuous learning and professional growth to maintain and enhance nursing competence."},
		},
	},
	{
		Name:         "QSEN (Quality and Safety Education for Nurses)",
		Abbreviation: "QSEN",
		Skills: []competency.Skill{
			{Name: "Patient-Centered Care", Importance: 4.9, Category: competency.CategoryPatientCare,
				Description: "Recognizing patients as partners in care, respecting their preferences and values, and engaging them in care decisions."},
			{Name: "Teamwork and Collaboration", Importance: 4.8, Category: competency.CategoryCommunication,
				Description: "Functioning effectively within nursing and interprofessional teams, fostering open communication and mutual respect."},
			{Name: "Evidence-Based Practice", Importance: 4.7, Category: competency.CategoryDecision,
				Description: "Integrating best current evidence with clinical expertise and patient/family preferences for care delivery."},
			{Name: "Quality Improvement", Importance: 4.6, Category: competency.CategorySafety,
				Description: "Using data to monitor outcomes of care processes and implementing changes to continuously improve quality and safety."},
			{Name: "Safety", Importance: 4.9, Category: competency.CategorySafety,
				Description: "Minimizing risk of harm to patients and providers through system effectiveness and individual performance."},
			{Name: "Informatics", Importance: 4.5, Category: competency.CategoryCommunication,
				Description: "Using information and technology to communicate, manage knowledge, mitigate error, and support decision-making."},
		},
	},
	{
		Name:         "AACN (American Association of Critical-Care Nurses)",
		Abbreviation: "AACN",
		Skills: []competency.Skill{
			{Name: "Clinical Judgment", Importance: 4.9, Category: competency.CategoryDecision,
				Description: "Making informed clinical decisions through critical thinking, pattern recognition, and evidence-based reasoning."},
			{Name: "Advocacy and Moral Agency", Importance: 4.7, Category: competency.CategoryProfessional,
				Description: "Acting as a patient advocate, protecting patient rights, and ensuring ethical care delivery."},
			{Name: "Caring Practices", Importance: 4.8, Category: competency.CategoryPatientCare,
				Description: "Demonstrating nursing activities that create a compassionate, supportive, and therapeutic environment."},
			{Name: "Collaboration", Importance: 4.7, Category: competency.CategoryCommunication,
				Description: "Working with healthcare team members, patients, and families to achieve optimal patient outcomes."},
			{Name: "Systems Thinking", Importance: 4.6, Category: competency.CategoryDecision,
				Description: "Understanding how healthcare systems work and how actions affect the system and patient outcomes."},
			{Name: "Response to Diversity", Importance: 4.5, Category: competency.CategoryProfessional,
				Description: "Providing culturally sensitive care that respects individual differences and values."},
			{Name: "Facilitation of Learning", Importance: 4.6, Category: competency.CategoryCommunication,
				Description: "Facilitating learning for patients, families, and healthcare team members to promote health and wellness."},
			{Name: "Clinical Inquiry", Importance: 4.5, Category: competency.CategoryDecision,
				Description: "Pursuing knowledge and clinical questions to improve patient care and professional practice."},
		},
	},
	{
		Name:         "CMSRN (Certified Medical-Surgical Registered Nurse)",
		Abbreviation: "CMSRN",
		Skills: []competency.Skill{
			{Name: "Holistic Patient Care", Importance: 4.8, Category: competency.CategoryPatientCare,
				Description: "Addressing physical, psychological, social, and spiritual needs of patients in medical-surgical settings."},
			{Name: "Interprofessional Care", Importance: 4.7, Category: competency.CategoryCommunication,
				Description: "Collaborating effectively with physicians, therapists, pharmacists, and other healthcare professionals."},
			{Name: "Nursing Teamwork", Importance: 4.6, Category: competency.CategoryCommunication,
				Description: "Working effectively within nursing teams, supporting colleagues, and maintaining professional relationships."},
			{Name: "Care Management", Importance: 4.7, Category: competency.CategoryDecision,
				Description: "Coordinating and managing patient care across the continuum, from admission through discharge."},
		},
	},
}

// CredentialingSkills returns the merged platform skills for nursing roles and
// nil for everything else. Each skill is tagged with every platform that lists it.
func CredentialingSkills(occ Occupation) []competency.Skill {
	if !IsNursing(occ) {
		return nil
	}

	lists := make([][]competency.Skill, 0, len(Platforms))
	for _, p := range Platforms {
		tagged := make([]competency.Skill, len(p.Skills))
		for i, s := range p.Skills {
			s.Sources = []string{p.Abbreviation}
			tagged[i] = s
		}
		lists = append(lists, tagged)
	}
	return competency.MergeSkills(lists...)
}
