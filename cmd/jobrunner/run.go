package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kubev2v/jobrunner/internal/config"
	"github.com/kubev2v/jobrunner/internal/handlers"
	"github.com/kubev2v/jobrunner/internal/metrics"
	"github.com/kubev2v/jobrunner/internal/server"
	"github.com/kubev2v/jobrunner/internal/services"
	"github.com/kubev2v/jobrunner/internal/store"
	"github.com/kubev2v/jobrunner/internal/store/migrations"
	"github.com/kubev2v/jobrunner/pkg/engine"
)

func NewRunCommand() *cobra.Command {
	cfg := config.NewConfigurationWithOptionsAndDefaults()
	var demo demoOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the engine with its monitoring API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfigFile(cmd); err != nil {
				return err
			}
			if err := validate(cfg); err != nil {
				return err
			}

			logger, err := newLogger(cfg.LogFormat, cfg.LogLevel)
			if err != nil {
				return err
			}
			undo := zap.ReplaceGlobals(logger)
			defer func() {
				undo()
				_ = logger.Sync()
			}()

			zap.S().Infow("configuration loaded", "config", cfg.DebugMap())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg, demo)
		},
	}

	registerFlags(cmd.Flags(), cfg)
	demo.registerFlags(cmd.Flags())
	return cmd
}

func run(ctx context.Context, cfg *config.Configuration, demo demoOptions) error {
	env := engine.New(
		engine.WithCPUCapacity(cfg.Engine.CPUCapacity),
		engine.WithNetworkCapacity(cfg.Engine.NetworkCapacity),
		engine.WithJobPool(cfg.Engine.JobCoreWorkers, cfg.Engine.JobMaxWorkers, cfg.Engine.JobKeepAlive),
		engine.WithTaskPool(cfg.Engine.TaskCoreWorkers, cfg.Engine.TaskMaxWorkers, cfg.Engine.TaskKeepAlive),
		engine.WithTaskRetention(cfg.Engine.TaskRetention),
		engine.WithLogger(zap.L()),
	)
	defer env.Close()

	g, ctx := errgroup.WithContext(ctx)

	monitor := services.NewMonitorService(env)

	var (
		historySrv *services.HistoryService
		lister     services.HistoryLister
		recorder   metrics.RecorderSource
	)
	if cfg.History.HistoryEnabled {
		st, err := openStore(ctx, cfg.History.DataFolder)
		if err != nil {
			return err
		}
		defer st.Close()

		rec := services.NewHistoryRecorder(env, st.History(),
			services.WithBufferSize(cfg.History.BufferSize),
			services.WithMaxRetries(cfg.History.MaxRetries),
			services.WithRetention(st.History(), cfg.History.HistoryRetention),
		)
		g.Go(func() error {
			return rec.Run(ctx)
		})

		historySrv = services.NewHistoryService(st)
		lister = st.History()
		recorder = rec
	}

	h := handlers.New(monitor, historySrv, services.NewReporter(monitor, lister))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.NewCollector(env, recorder),
	)

	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
		handlers.RegisterHandlers(router, h)
	}, server.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	if err != nil {
		return err
	}

	g.Go(func() error {
		return srv.Start(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		return srv.Stop(context.Background())
	})

	if demo.enabled() {
		g.Go(func() error {
			return runDemo(ctx, env, demo)
		})
	}

	err = g.Wait()
	zap.S().Infow("jobrunner stopped", "error", err)
	return err
}

func openStore(ctx context.Context, dataFolder string) (*store.Store, error) {
	path := dataFolder
	if path == "" {
		path = ":memory:"
	} else if err := os.MkdirAll(path, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create data folder: %w", err)
	}

	db, err := store.NewDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	zap.S().Named("store").Infow("history store ready", "path", path)
	return store.NewStore(db), nil
}
