package bootstrap

import (
	"context"
	"time"

	"competency-assessment-be/internal/config"
	"competency-assessment-be/internal/controller"
	"competency-assessment-be/internal/pkg/logger"
	"competency-assessment-be/internal/repository/memory"
	"competency-assessment-be/internal/service"
	"competency-assessment-be/internal/websocket"
	"competency-assessment-be/pkg/batch"
	"competency-assessment-be/pkg/events"
	"competency-assessment-be/pkg/llm"
	"competency-assessment-be/pkg/llm/factory"
	pktNats "competency-assessment-be/pkg/nats"
	"competency-assessment-be/pkg/question"
	"competency-assessment-be/pkg/retry"
	"competency-assessment-be/pkg/scoring"
	"competency-assessment-be/pkg/skillsource"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

const bootModule = "BOOTSTRAP"

type Container struct {
	// Controllers
	AssessmentController controller.IAssessmentController
	CatalogController    controller.ICatalogController
	ProgressController   websocket.IProgressController

	// Exposed for main.go and the offline simulation
	AssessmentService service.IAssessmentService
	ConsumerService   service.IConsumerService
	Hub               *websocket.Hub
	Logger            logger.ILogger

	closers []func()
}

// Options toggles infrastructure that an offline run does without
type Options struct {
	// Offline skips O*NET, redis, NATS and the LLM; everything runs on built-in data
	Offline bool
}

func NewContainer(cfg *config.Config, opts Options) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. Infrastructure
	var rdb *redis.Client
	var natsPub *pktNats.Publisher
	var remote skillsource.Remote
	var llmProvider llm.LLMProvider

	if !opts.Offline {
		rdb = connectRedis(cfg.App.RedisURL, sysLogger)
		if rdb != nil {
			c.closers = append(c.closers, func() { rdb.Close() })
		}

		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL, cfg.App.EventTopic, sysLogger)
		if err != nil {
			sysLogger.Warn(bootModule, "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		} else {
			c.closers = append(c.closers, natsPub.Close)
		}

		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, cfg.App.EventTopic, sysLogger)
		if err != nil {
			sysLogger.Warn(bootModule, "Failed to connect to NATS Subscriber", map[string]interface{}{"error": err.Error()})
		} else {
			c.closers = append(c.closers, natsSub.Close)
			auditor := service.NewCompletionAuditor(sysLogger)
			if err := natsSub.Subscribe(context.Background(), pktNats.Subject(events.TypeAssessmentCompleted), "assessment-audit", auditor.Handle); err != nil {
				sysLogger.Warn(bootModule, "Failed to subscribe completion auditor", map[string]interface{}{"error": err.Error()})
			}
		}

		remote = skillsource.NewClient(cfg.Onet.BaseURL, cfg.Onet.Username, cfg.Onet.Password)

		if cfg.Ai.QuestionGenerationEnabled || cfg.Ai.EvaluationEnabled {
			llmProvider, err = factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.LLMBaseURL, cfg.Ai.LLMAPIKey)
			if err != nil {
				sysLogger.Warn(bootModule, "LLM provider unavailable, AI features disabled", map[string]interface{}{"error": err.Error()})
				llmProvider = nil
			} else {
				sysLogger.Info(bootModule, "Using LLM provider", map[string]interface{}{
					"provider": cfg.Ai.LLMProvider,
					"model":    cfg.Ai.LLMModel,
				})
			}
		}
	}

	// 4. Domain Components
	policy := retry.Policy{
		MaxRetries: cfg.Assessment.RetryMax,
		BaseDelay:  cfg.Assessment.RetryBaseDelay,
		Sleeper:    retry.RealSleeper,
	}

	organizerOpts := []batch.Option{
		batch.WithPacing(cfg.Assessment.GenerationDelayBase, cfg.Assessment.GenerationDelayStep),
		batch.WithWeights(batch.MatchWeights{
			Representative: cfg.Assessment.WeightRepresentative,
			NameKeyword:    cfg.Assessment.WeightNameKeyword,
			DisplayName:    cfg.Assessment.WeightDisplayName,
			TextKeyword:    cfg.Assessment.WeightTextKeyword,
			Synonym:        cfg.Assessment.WeightSynonym,
			Category:       cfg.Assessment.WeightCategory,
			Threshold:      cfg.Assessment.MatchThreshold,
		}),
	}
	if llmProvider != nil && cfg.Ai.QuestionGenerationEnabled {
		organizerOpts = append(organizerOpts, batch.WithGenerator(question.NewAIItemGenerator(llmProvider, policy)))
	}

	var judge scoring.Judge
	if llmProvider != nil && cfg.Ai.EvaluationEnabled {
		judge = scoring.NewAIJudge(llmProvider, policy)
	}

	source := skillsource.NewSource(remote, skillsource.NewTieredCache(cfg.Onet.CacheTTL, rdb), sysLogger)
	sessionRepo := memory.NewSessionRepository(cfg.Assessment.SessionTTL)
	publisher := service.NewEventPublisher(pubSub, cfg.App.EventTopic, sysLogger)

	// 5. Services
	c.Hub = websocket.NewHub(rdb, sysLogger)
	sinks := []service.EventSink{c.Hub}
	if natsPub != nil {
		sinks = append(sinks, natsPub)
	}
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.App.EventTopic, sysLogger, sinks...)
	c.AssessmentService = service.NewAssessmentService(
		source,
		question.NewGenerator(nil),
		batch.NewOrganizer(sysLogger, organizerOpts...),
		scoring.NewScorer(judge, sysLogger),
		sessionRepo,
		publisher,
		sysLogger,
	)

	// 6. Controllers
	c.AssessmentController = controller.NewAssessmentController(c.AssessmentService)
	c.CatalogController = controller.NewCatalogController(c.AssessmentService)
	c.ProgressController = websocket.NewProgressController(c.Hub, c.AssessmentService)

	return c
}

// Close releases connections in reverse order of creation
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func connectRedis(url string, log logger.ILogger) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn(bootModule, "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: url}
	}

	rdb := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn(bootModule, "Failed to connect to Redis, lookup cache is memory-only", map[string]interface{}{"error": err.Error()})
		rdb.Close()
		return nil
	}
	return rdb
}
