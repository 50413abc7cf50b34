package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"healthbot/internal/assess"
	"healthbot/internal/atlan"
	"healthbot/internal/bus"
	"healthbot/internal/channel"
	"healthbot/internal/chunk"
	"healthbot/internal/config"
	"healthbot/internal/domain"
	"healthbot/internal/memory"
	"healthbot/internal/pipeline"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	version    = "1.0.0"
	logger     *slog.Logger
	configPath string // overridable via --config flag
)

func main() {
	// .env is optional; missing files are fine.
	godotenv.Load()

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	root := &cobra.Command{
		Use:     "healthbot",
		Short:   "Slack-driven governance health checks for Atlan tenants",
		Long:    "Healthbot serves the /atlan-health slash command: it assesses a tenant's\ngovernance posture and posts a scored, industry-aware report back to Slack.",
		Version: version,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.json (default: ~/.healthbot/config.json)")

	root.AddCommand(initCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(historyCmd())
	root.AddCommand(configCmd())
	root.AddCommand(doctorCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir := config.DefaultConfigDir()
			cfgPath := config.DefaultConfigPath()
			if err := os.MkdirAll(cfgDir, 0o755); err != nil {
				return err
			}
			if _, err := os.Stat(cfgPath); err == nil {
				return fmt.Errorf("config already exists at %s", cfgPath)
			}
			cfg := config.Defaults()
			if err := config.Save(cfgPath, cfg); err != nil {
				return err
			}
			logger.Info("initialized", "config", cfgPath)
			return nil
		},
	}
}

// resolveConfigPath returns the config path from --config flag or default.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Slack webhook server and assessment pipeline",
		Long:  "Starts the webhook server for the /atlan-health slash command and the\nworkers that process queued assessments. Press Ctrl+C to stop.",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfgPath := resolveConfigPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Warn("config not found, using defaults", "path", cfgPath, "err", err)
		cfg = config.Defaults()
	}

	logger = setupLogger(cfg)

	signingSecret := cfg.Slack.SigningSecret
	if signingSecret == "" {
		signingSecret = os.Getenv("SLACK_SIGNING_SECRET")
	}

	// Graceful shutdown on signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobBus := bus.New(cfg.General.QueueSize, logger)
	defer jobBus.Close()

	var store domain.AssessmentStore
	if cfg.Memory.Enabled {
		sqlStore, err := memory.NewSQLiteStore(cfg.Memory.DBPath, logger)
		if err != nil {
			return fmt.Errorf("history store: %w", err)
		}
		defer sqlStore.Close()
		store = sqlStore

		go retentionLoop(ctx, sqlStore, cfg.Memory.RetentionDays)
	} else {
		logger.Info("assessment history disabled")
	}

	renderer, err := assess.NewRenderer(logger)
	if err != nil {
		return fmt.Errorf("load industry profiles: %w", err)
	}

	deliverer := channel.NewResponseURLDeliverer(logger)
	runner := pipeline.NewRunner(pipeline.RunnerConfig{
		Bus:        jobBus,
		Fetcher:    atlan.NewSimulatedFetcher(logger),
		Renderer:   renderer,
		Sender:     chunk.NewSender(deliverer, cfg.Delivery.Retries, logger),
		Store:      store,
		ChunkLimit: cfg.Delivery.ChunkLimit,
		Logger:     logger,
	})
	go runner.Run(ctx)

	metricsEndpoint := ""
	if cfg.Metrics.Enabled {
		metricsEndpoint = cfg.Metrics.Endpoint
	}

	server := channel.NewServer(channel.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		CommandPath:     cfg.Server.CommandPath,
		InteractivePath: cfg.Server.InteractivePath,
		SigningSecret:   signingSecret,
		MetricsEndpoint: metricsEndpoint,
		Version:         version,
		Logger:          logger,
	}, jobBus)

	return server.Start(ctx)
}

// retentionLoop purges old history once at startup and then daily.
func retentionLoop(ctx context.Context, store domain.AssessmentStore, retentionDays int) {
	age := time.Duration(retentionDays) * 24 * time.Hour
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		if _, err := store.PurgeOlderThan(ctx, age); err != nil && ctx.Err() == nil {
			logger.Error("history purge failed", "err", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// setupLogger builds the logger from config: level from general.logLevel,
// optionally teeing to general.logFile.
func setupLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.General.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	out := io.Writer(os.Stderr)
	if cfg.General.LogFile != "" {
		f, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Warn("cannot open log file, logging to stderr only", "path", cfg.General.LogFile, "err", err)
		} else {
			out = io.MultiWriter(os.Stderr, f)
		}
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

func historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent assessments",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := resolveConfigPath()
			cfg, err := config.Load(cfgPath)
			if err != nil {
				logger.Warn("config not found, using defaults", "path", cfgPath, "err", err)
				cfg = config.Defaults()
			}
			if !cfg.Memory.Enabled {
				return fmt.Errorf("assessment history is disabled in config")
			}

			store, err := memory.NewSQLiteStore(cfg.Memory.DBPath, logger)
			if err != nil {
				return fmt.Errorf("history store: %w", err)
			}
			defer store.Close()

			recs, err := store.RecentAssessments(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Println("No assessments recorded yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tCOMPANY\tINDUSTRY\tSCORE\tCHUNKS\tDELIVERED\tFALLBACK")
			for _, rec := range recs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%v\n",
					rec.CreatedAt.Format("2006-01-02 15:04"),
					rec.Company, rec.Industry, rec.Score,
					rec.ChunkCount, rec.Delivered, rec.Fallback,
				)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of records to show")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get [path]",
		Short: "Get a config value (e.g. delivery.chunkLimit)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := resolveConfigPath()
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			val, err := config.GetByPath(cfg, args[0])
			if err != nil {
				return err
			}
			data, _ := json.MarshalIndent(val, "", "  ")
			fmt.Println(string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all config values (secrets masked)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := resolveConfigPath()
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			data, _ := json.MarshalIndent(config.Sanitize(cfg), "", "  ")
			fmt.Println(string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show config file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(resolveConfigPath())
		},
	})

	return cmd
}
