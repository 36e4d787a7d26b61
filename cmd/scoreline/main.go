// Package main provides the scoreline command line: the prediction API
// server and one-shot team search and prediction commands.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/scoreline/internal/api"
	"github.com/yourusername/scoreline/internal/config"
	"github.com/yourusername/scoreline/internal/logger"
	"github.com/yourusername/scoreline/internal/metrics"
	"github.com/yourusername/scoreline/internal/scheduler"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile  string
	searchLimit int
	cfg         *config.Config
	appLog      *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.ConfigPathFromEnv("./config/config.yaml"), "Path to configuration file")
	teamsCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Maximum number of candidates")

	rootCmd.AddCommand(serveCmd, predictCmd, teamsCmd)
}

var rootCmd = &cobra.Command{
	Use:           "scoreline",
	Short:         "Football team resolution and scoreline prediction",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the prediction API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict HOME AWAY",
	Short: "Predict a single match and print the result as JSON",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg, appLog)
		if err != nil {
			return err
		}
		defer a.Close()

		prediction, err := a.Predictions.PredictMatch(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(prediction)
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams QUERY",
	Short: "Search the team registry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg, appLog)
		if err != nil {
			return err
		}
		defer a.Close()

		teams, err := a.Predictions.SearchTeams(cmd.Context(), args[0], searchLimit)
		if err != nil {
			return err
		}
		return printJSON(teams)
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig(ctx context.Context) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	if err := config.LoadSecretsFromAWS(ctx, cfg); err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	return config.ValidateEnvironment(cfg)
}

func runServe(ctx context.Context) error {
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     Version,
		"commit":      GitCommit,
		"build_date":  BuildDate,
	}).Info("Scoreline starting")

	a, err := newApp(ctx, cfg, appLog)
	if err != nil {
		return err
	}
	defer a.Close()

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled && a.Catalog != nil {
		sched = scheduler.NewScheduler(appLog)
		if err := sched.ScheduleCatalogWarmup(cfg.Scheduler.CatalogWarmup, a.Catalog, cfg.Cache.RefreshTimeout()); err != nil {
			return fmt.Errorf("failed to schedule catalog warm-up: %w", err)
		}
		if err := sched.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer func() {
			if err := sched.Stop(); err != nil {
				appLog.WithError(err).Error("Failed to stop scheduler")
			}
		}()
	}

	if cfg.Scheduler.WarmupOnStart && a.Catalog != nil {
		go func() {
			if err := a.Catalog.Warm(ctx); err != nil {
				appLog.WithError(err).Warn("Initial catalog warm-up failed")
			}
		}()
	}

	serverCfg := api.Config{
		ServiceName:  cfg.App.Name,
		Version:      Version,
		Commit:       GitCommit,
		Addr:         cfg.GetServerAddress(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		Logger:       appLog,
		DB:           a.DB,
		Predictor:    a.Predictions,
		MetricsPath:  cfg.Metrics.Path,
	}
	if cfg.Metrics.Enabled {
		serverCfg.MetricsHandler = metrics.Handler()
	}

	server := api.NewServer(serverCfg)
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}
	server.SetReady(true)

	<-ctx.Done()
	appLog.Info("Shutdown signal received")
	server.SetReady(false)
	if err := server.Shutdown(); err != nil {
		appLog.WithError(err).Error("API server shutdown failed")
	}
	appLog.Info("Scoreline stopped")
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
