package bootstrap

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"competency-assessment-be/internal/config"
	"competency-assessment-be/pkg/skillsource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfflineContainerRunsAnAssessment(t *testing.T) {
	cfg := &config.Config{
		App: config.AppConfig{
			Environment: "test",
			LogFilePath: filepath.Join(t.TempDir(), "assessment.log"),
			EventTopic:  "assessment",
		},
		Ai:   config.AIConfig{QuestionGenerationEnabled: true, EvaluationEnabled: true},
		Onet: config.OnetConfig{CacheTTL: time.Minute},
		Assessment: config.AssessmentConfig{
			RetryMax:             1,
			RetryBaseDelay:       time.Millisecond,
			SessionTTL:           time.Hour,
			WeightRepresentative: 20,
			WeightNameKeyword:    15,
			WeightDisplayName:    15,
			WeightTextKeyword:    3,
			WeightSynonym:        5,
			WeightCategory:       2,
			MatchThreshold:       3,
		},
	}

	c := NewContainer(cfg, Options{Offline: true})
	defer c.Close()

	require.NotNil(t, c.AssessmentController)
	require.NotNil(t, c.CatalogController)
	require.NotNil(t, c.ProgressController)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Hub.Run(ctx)
	require.NoError(t, c.ConsumerService.Consume(ctx))

	session, err := c.AssessmentService.StartSession(ctx, skillsource.Occupation{Code: "29-1141.00", Title: "Registered Nurses"})
	require.NoError(t, err)
	assert.True(t, session.SkillsFallback)

	session, err = c.AssessmentService.OrganizeSections(ctx, session.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, session.Sections)
}
