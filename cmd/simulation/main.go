// Command simulation walks one assessment end to end without any network
// dependency: built-in skills, template questions and keyword scoring.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"competency-assessment-be/internal/pkg/logger"
	"competency-assessment-be/internal/repository/memory"
	"competency-assessment-be/internal/service"
	"competency-assessment-be/pkg/batch"
	"competency-assessment-be/pkg/competency"
	"competency-assessment-be/pkg/question"
	"competency-assessment-be/pkg/scoring"
	"competency-assessment-be/pkg/skillsource"

	"github.com/fatih/color"
	"go.uber.org/zap/zapcore"
)

var answerSets = map[string]string{
	"strong": "First I would assess the patient, prioritize safety and communicate with the team. " +
		"I would document every finding, follow the evidence-based protocol and evaluate the outcome, " +
		"then escalate to the provider and educate the family about the plan.",
	"weak":  "I would ask someone.",
	"blank": "",
}

func main() {
	code := flag.String("code", "29-1141.00", "occupation code")
	title := flag.String("title", "Registered Nurses", "occupation title")
	quality := flag.String("answers", "strong", "answer quality: strong, weak or blank")
	flag.Parse()

	answer, ok := answerSets[*quality]
	if !ok {
		color.Red("unknown answer quality %q", *quality)
		os.Exit(2)
	}

	log := logger.NewConsoleLogger(zapcore.WarnLevel)
	defer log.Sync()

	svc := service.NewAssessmentService(
		skillsource.NewSource(nil, nil, log),
		question.NewGenerator(nil),
		batch.NewOrganizer(log),
		scoring.NewScorer(nil, log),
		memory.NewSessionRepository(time.Hour),
		service.NewNopEventPublisher(),
		log,
	)
	ctx := context.Background()

	color.Cyan("=== Competency Assessment Simulation ===")
	session, err := svc.StartSession(ctx, skillsource.Occupation{Code: *code, Title: *title})
	if err != nil {
		color.Red("start failed: %v", err)
		os.Exit(1)
	}
	fmt.Printf("Session %s for %s (%d skills, fallback=%t)\n", session.ID, *title, len(session.Skills), session.SkillsFallback)

	color.Yellow("\n--- Competencies ---")
	for _, g := range competency.GroupForDisplay(session.Competencies) {
		fmt.Printf("%s (max importance %.1f)\n", g.Category, g.MaxImportance)
		for _, c := range g.Competencies {
			fmt.Printf("  - %-40s %.1f %s\n", c.Name, c.Importance, competency.ImportanceLabel(c.Importance))
		}
	}

	session, err = svc.OrganizeSections(ctx, session.ID)
	if err != nil {
		color.Red("organize failed: %v", err)
		os.Exit(1)
	}

	color.Yellow("\n--- Sections ---")
	for i := range session.Sections {
		view, err := svc.GetSection(ctx, session.ID, i)
		if err != nil {
			color.Red("section %d: %v", i, err)
			os.Exit(1)
		}
		fmt.Printf("[%d/%d] %s: %d questions\n", i+1, view.TotalSectionCount, view.Section.CategoryDisplay, len(view.Section.Questions))

		answers := make(map[int]string, len(view.Section.Questions))
		for _, q := range view.Section.Questions {
			answers[q.ID] = answer
		}
		feedback, err := svc.SubmitSection(ctx, session.ID, i, answers)
		if err != nil {
			color.Red("submit failed: %v", err)
			os.Exit(1)
		}
		for _, f := range feedback {
			printLevel(fmt.Sprintf("    Q%d level %d (%s) via %s", f.QuestionID, f.Level, f.Label, f.EvaluationMethod), f.Level)
		}
	}

	report, err := svc.GetResults(ctx, session.ID)
	if err != nil {
		color.Red("results failed: %v", err)
		os.Exit(1)
	}

	color.Yellow("\n--- Results ---")
	for _, c := range report.Categories {
		fmt.Printf("%-35s answered=%d avg=%.2f (%.0f%%) %s\n", c.Category, c.Answered, c.Average, c.Percentage, c.Label)
	}
	color.Green("Overall: %.2f (%.0f%%) %s", report.Overall.Average, report.Overall.Percentage, report.Overall.Label)
}

func printLevel(line string, level int) {
	switch level {
	case 3:
		color.Green("%s", line)
	case 2:
		color.Yellow("%s", line)
	default:
		color.Red("%s", line)
	}
}
