// main.go - Entry point for the chat simulator.
// This file loads configuration, sets up logging and metrics, and runs the Bubble Tea program.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatsim/src/app"
	"chatsim/src/config"
	"chatsim/src/services/chat"
	"chatsim/src/services/metrics"
	"chatsim/src/services/responder"
	"chatsim/src/services/storage/repositories"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const version = "1.0.0"

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:     "chatsim",
	Short:   "A terminal chat client that answers with simulated assistant replies",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Missing .env is fine.
		_ = godotenv.Load()
		return nil
	},
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}
		return run(cmd.Context(), cfg)
	},
}

func init() {
	config.SetDefaults(v)

	flags := rootCmd.Flags()
	flags.String(config.KeyConfigFile, "", "path to a YAML config file")
	flags.Duration(config.KeyMinDelay, responder.DefaultMinDelay, "shortest simulated reply delay")
	flags.Duration(config.KeyMaxDelay, responder.DefaultMaxDelay, "longest simulated reply delay")
	flags.String(config.KeyResponses, "", "YAML file with canned replies")
	flags.String(config.KeyLogFile, config.DefaultLogFile(), "file to write logs to")
	flags.String(config.KeyLogLevel, "info", "log level (debug, info, warn, error)")
	flags.String(config.KeyMetricsAddr, "", "serve Prometheus metrics on this address, e.g. :9090")
	flags.Bool(config.KeyNoAltScreen, false, "render inline instead of in the alternate screen")

	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// =====================================================================================
// 🚀 Application Run
// =====================================================================================

func run(ctx context.Context, cfg config.Config) error {
	logger, closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("Starting chat simulator", "version", version, "min_delay", cfg.MinDelay, "max_delay", cfg.MaxDelay)

	responses := responder.DefaultResponses
	if cfg.ResponsesFile != "" {
		responses, err = responder.LoadResponses(cfg.ResponsesFile)
		if err != nil {
			logger.Error("Failed to load responses", "file", cfg.ResponsesFile, "error", err)
			return err
		}
		logger.Info("Loaded responses", "file", cfg.ResponsesFile, "count", len(responses))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var recorder *metrics.Recorder
	if cfg.MetricsAddr != "" {
		recorder = metrics.NewRecorder(metrics.DefaultConfig())
	}

	session := chat.NewSession(
		repositories.NewMemoryConversationRepository(),
		responder.NewCanned(responder.CannedConfig{
			Responses: responses,
			MinDelay:  cfg.MinDelay,
			MaxDelay:  cfg.MaxDelay,
		}),
		chat.WithLogger(logger),
		chat.WithMetrics(recorder),
		chat.WithContext(ctx),
	)

	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithMouseCellMotion()}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(app.New(session, app.WithLogger(logger)), opts...)

	setupGracefulShutdown(program, logger)

	g, gctx := errgroup.WithContext(ctx)
	if recorder != nil {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           metricsMux(recorder),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info("Serving metrics", "addr", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				program.Quit()
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, stop := context.WithTimeout(context.Background(), 2*time.Second)
			defer stop()
			return srv.Shutdown(shutdownCtx)
		})
	}
	g.Go(func() error {
		// Stopping the UI stops everything else.
		defer cancel()
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("run program: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application failed", "error", err)
		return err
	}
	logger.Info("Application completed successfully")
	return nil
}

func metricsMux(recorder *metrics.Recorder) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	return mux
}

// setupLogging sends slog output to the log file so it does not corrupt the UI.
func setupLogging(cfg config.Config) (*slog.Logger, func(), error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", cfg.LogFile, err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, func() { _ = f.Close() }, nil
}

// =====================================================================================
// 🛡️ Graceful Shutdown
// =====================================================================================

// setupGracefulShutdown sets up signal handling for graceful shutdown
func setupGracefulShutdown(program *tea.Program, logger *slog.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Received shutdown signal, cleaning up...")
		program.Quit()
	}()
}
