package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/subtlepseudonym/almanac"
	"github.com/subtlepseudonym/almanac/config"
)

const shutdownTimeout = 10 * time.Second

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run scheduled reports",
		Long: `Serve the HTTP API and log an almanac report for each configured job.

Configuration is read from --config (JSON, YAML or TOML) and can be
overridden with ALMANAC_ environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, rootOpts, configFile)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file")
	return cmd
}

func runServe(ctx context.Context, rootOpts *RootOptions, configFile string) error {
	logger := rootOpts.logger

	// manually set local timezone for docker container
	if tz := os.Getenv("TZ"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("load tz location: %w", err)
		}
		time.Local = loc
	}

	cfg, err := config.Open(configFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// an explicit flag wins over the config file
	if !rootOpts.logLevelSet {
		level, _ := log.ParseLevel(cfg.LogLevel)
		logger.SetLevel(level)
	}

	scheduler := cron.New()
	now := time.Now() // used for logging cron entries
	for _, job := range cfg.Jobs {
		schedule, err := config.ParseSchedule(job.Schedule, cfg.Location, logger)
		if err != nil {
			return fmt.Errorf("job %q: %w", job.Name, err)
		}

		scheduler.Schedule(schedule, almanac.Report{
			Name:   job.Name,
			Logger: logger,
		})
		logger.Info("job", "name", job.Name, "next", schedule.Next(now).Local().Format(time.RFC3339))
	}

	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: almanac.NewRouter(logger),
	}

	scheduler.Start()
	defer func() {
		<-scheduler.Stop().Done()
	}()

	errs := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
