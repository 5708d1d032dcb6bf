package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"competency-assessment-be/internal/bootstrap"
	"competency-assessment-be/internal/config"
	"competency-assessment-be/internal/server"
	"competency-assessment-be/internal/tracer"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg, bootstrap.Options{})
	defer container.Close()

	// 3. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.App.OtelEnabled, cfg.App.OtelEndpoint, container.Logger)
	defer shutdownTracer(context.Background())

	// 4. Start Background Services
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go container.Hub.Run(ctx)
	go func() {
		container.Logger.Info("MAIN", "Starting consumer service", nil)
		if err := container.ConsumerService.Consume(ctx); err != nil {
			container.Logger.Error("MAIN", "Consumer service stopped", map[string]interface{}{"error": err.Error()})
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown()
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}
