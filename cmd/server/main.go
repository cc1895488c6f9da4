package main

import (
	"context"
	"log"
	"time"

	"github.com/spf13/pflag"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/taskspace/api/handler"
	"github.com/fastygo/taskspace/internal/config"
	"github.com/fastygo/taskspace/internal/infrastructure/journal"
	"github.com/fastygo/taskspace/internal/infrastructure/monitor"
	"github.com/fastygo/taskspace/internal/router"
	"github.com/fastygo/taskspace/internal/services"
	"github.com/fastygo/taskspace/internal/services/lifecycle"
	"github.com/fastygo/taskspace/internal/state"
	"github.com/fastygo/taskspace/pkg/httpcontext"
	"github.com/fastygo/taskspace/pkg/logger"
	"github.com/fastygo/taskspace/repository/memory"
	"github.com/fastygo/taskspace/repository/remote"
	"github.com/fastygo/taskspace/usecase"
	authUC "github.com/fastygo/taskspace/usecase/auth"
	taskUC "github.com/fastygo/taskspace/usecase/task"
)

func main() {
	var opts config.Options
	pflag.StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file to load before reading the environment")
	pflag.StringVar(&opts.CredentialsFile, "credentials", "", "YAML credentials file (overrides CREDENTIALS_FILE)")
	pflag.StringVar(&opts.Address, "addr", "", "listen address host:port (overrides SERVER_HOST/SERVER_PORT)")
	pflag.Parse()

	cfg, err := config.LoadWith(opts)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Name:     cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	if len(cfg.Auth.Credentials) == 0 {
		zapLogger.Warn("no credentials configured; every login will be rejected")
	}

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	stopSignals := manager.Listen(cancel)
	defer stopSignals()

	journalStore, err := journal.Open(cfg.Journal.Path, "activity")
	if err != nil {
		zapLogger.Fatal("failed to open activity journal", zap.Error(err))
	}
	manager.Register("journal", func(ctx context.Context) error {
		stats := journalStore.Stats()
		zapLogger.Debug("closing journal", zap.Int("tx_count", stats.TxN))
		return journalStore.Close()
	})

	client := remote.NewClient(remote.Options{
		BaseURL: cfg.TaskAPI.BaseURL,
		Timeout: cfg.TaskAPI.Timeout,
		Name:    cfg.AppName,
	}, zapLogger.Named("task_api"))

	mon := monitor.New(client, journalStore, cfg.TaskAPI.ProbeInterval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	pruner, err := services.NewJournalPruner(journalStore, zapLogger, services.PrunerConfig{
		Interval:  cfg.Journal.PruneInterval,
		Retention: cfg.JournalRetention(),
	})
	if err != nil {
		zapLogger.Fatal("failed to schedule journal pruning", zap.Error(err))
	}
	pruner.Start()
	manager.Register("journal_pruner", func(ctx context.Context) error {
		pruner.Stop(ctx)
		return nil
	})

	taskRepo := remote.NewTaskRepository(client)
	sessionRepo := memory.NewSessionRepository()
	taskList := state.NewTaskList()
	tracker := usecase.NewTracker()
	activity := services.NewJournalBridge(journalStore)

	authUseCase := authUC.New(cfg.Auth.Credentials, sessionRepo, taskList, zapLogger)
	taskUseCase := taskUC.New(taskRepo, taskList, activity, tracker, taskUC.Options{
		DueDateLocation: cfg.TaskAPI.DueDateLocation,
	}, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:   apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}
	r := router.New(handlers, authUseCase, zapLogger)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("task_api", client.BaseURL()),
			zap.String("env", cfg.Environment),
		)
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Error("server crashed", zap.Error(err))
			cancel()
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	started := time.Now()
	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
	zapLogger.Info("shutdown complete", zap.Duration("elapsed", time.Since(started)))
}
