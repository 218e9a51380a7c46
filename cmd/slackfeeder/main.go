package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jflowers/slackfeeder-sub000/internal/drive"
	"github.com/jflowers/slackfeeder-sub000/internal/exporter"
	feedermcp "github.com/jflowers/slackfeeder-sub000/internal/mcp"
	"github.com/jflowers/slackfeeder-sub000/internal/people"
	slackclient "github.com/jflowers/slackfeeder-sub000/internal/slack"
)

var version = "dev"

type config struct {
	SlackToken      string
	SlackCookie     string
	CredentialsFile string
	ParentFolderID  string
	LogLevel        string
	WorkDir         string
}

func main() {
	// Optional .env for local runs; the environment wins over the file.
	_ = godotenv.Load()

	cfg := loadConfig()
	initWorkDir(cfg.WorkDir)
	logger := initLogger(cfg.LogLevel, filepath.Join(cfg.WorkDir, "logs"))
	defer logger.Sync()

	root := newRootCmd(cfg, logger)
	if err := root.Execute(); err != nil {
		logger.Error("Command failed", zap.Error(err))
		os.Exit(1)
	}
}

func loadConfig() config {
	workDir := os.Getenv("WORK_DIR")
	if workDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		workDir = filepath.Join(homeDir, ".slackfeeder")
	}

	return config{
		SlackToken:      os.Getenv("SLACK_BOT_TOKEN"),
		SlackCookie:     os.Getenv("SLACK_COOKIE"),
		CredentialsFile: os.Getenv("DRIVE_CREDENTIALS_FILE"),
		ParentFolderID:  os.Getenv("DRIVE_FOLDER_ID"),
		LogLevel:        os.Getenv("LOG_LEVEL"),
		WorkDir:         workDir,
	}
}

func initWorkDir(workDir string) {
	for _, dir := range []string{workDir, filepath.Join(workDir, "output")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}

func newRootCmd(cfg config, logger *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "slackfeeder",
		Short:         "Export Slack conversation history to transcripts and Google Docs",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newExportCmd(cfg, logger))
	root.AddCommand(newRefsCmd(cfg, logger))
	root.AddCommand(newMCPCmd(cfg, logger))
	return root
}

func newExportCmd(cfg config, logger *zap.Logger) *cobra.Command {
	var (
		startDate      string
		endDate        string
		upload         bool
		doShare        bool
		outputDir      string
		configDir      string
		chunkSize      int
		browserBatches bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export enabled conversations to local transcripts and Drive documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputDir == "" {
				outputDir = filepath.Join(cfg.WorkDir, "output")
			}
			if configDir == "" {
				configDir = cfg.WorkDir
			}
			opts := exporter.Options{
				StartDate:      startDate,
				EndDate:        endDate,
				Upload:         upload,
				Share:          doShare,
				OutputDir:      outputDir,
				ConfigDir:      configDir,
				ChunkSize:      chunkSize,
				ParentFolderID: cfg.ParentFolderID,
				BrowserBatches: browserBatches,
			}

			e, err := buildExporter(cmd.Context(), cfg, opts, logger)
			if err != nil {
				return err
			}
			_, err = e.Run(cmd.Context())
			return err
		},
	}

	cmd.Flags().StringVar(&startDate, "start-date", "", "start of export range (YYYY-MM-DD, UTC)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "end of export range (YYYY-MM-DD, UTC, inclusive)")
	cmd.Flags().BoolVar(&upload, "upload", false, "upload per-day documents to Drive")
	cmd.Flags().BoolVar(&doShare, "share", false, "reconcile folder sharing with conversation membership")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "local transcript directory (default WORK_DIR/output)")
	cmd.Flags().StringVar(&configDir, "config-dir", "", "directory holding channels.json, people.json, and batch captures (default WORK_DIR)")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "messages per document chunk (default 10000)")
	cmd.Flags().BoolVar(&browserBatches, "browser-batches", true, "include conversations from browser-export.json")
	return cmd
}

func newRefsCmd(cfg config, logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "refs",
		Short: "Regenerate channels.json and people.json from the workspace, keeping existing decisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newSlackClient(cfg, logger)
			if err != nil {
				return err
			}
			return people.WriteRefFiles(cmd.Context(), client, cfg.WorkDir, logger)
		},
	}
}

func newMCPCmd(cfg config, logger *zap.Logger) *cobra.Command {
	var (
		upload  bool
		doShare bool
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve exporter tools over MCP on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := exporter.Options{
				Upload:         upload,
				Share:          doShare,
				OutputDir:      filepath.Join(cfg.WorkDir, "output"),
				ConfigDir:      cfg.WorkDir,
				ParentFolderID: cfg.ParentFolderID,
				BrowserBatches: true,
			}
			e, err := buildExporter(cmd.Context(), cfg, opts, logger)
			if err != nil {
				return err
			}

			server := feedermcp.CreateServer(logger, e)
			return server.Run(context.Background(), &mcpsdk.StdioTransport{})
		},
	}

	cmd.Flags().BoolVar(&upload, "upload", false, "upload per-day documents to Drive")
	cmd.Flags().BoolVar(&doShare, "share", false, "reconcile folder sharing with conversation membership")
	return cmd
}

func newSlackClient(cfg config, logger *zap.Logger) (*slackclient.Client, error) {
	return slackclient.NewClient(slackclient.Config{
		Token:  cfg.SlackToken,
		Cookie: cfg.SlackCookie,
	}, logger)
}

// buildExporter wires the pipeline. The Slack client is optional: a run
// without a token can still export stored batch captures. The Drive store
// is only built when uploading.
func buildExporter(ctx context.Context, cfg config, opts exporter.Options, logger *zap.Logger) (*exporter.Exporter, error) {
	var source exporter.HistorySource
	var lookup people.Lookup
	if cfg.SlackToken != "" {
		client, err := newSlackClient(cfg, logger)
		if err != nil {
			return nil, err
		}
		source = client
		lookup = client
	} else {
		logger.Warn("SLACK_BOT_TOKEN not set, running from stored batch captures only")
	}

	var store drive.DocumentStore
	if opts.Upload {
		if cfg.CredentialsFile == "" {
			return nil, fmt.Errorf("DRIVE_CREDENTIALS_FILE is required for uploads")
		}
		if opts.ParentFolderID == "" {
			return nil, fmt.Errorf("DRIVE_FOLDER_ID is required for uploads")
		}
		s, err := drive.NewGoogleStore(ctx, cfg.CredentialsFile, logger)
		if err != nil {
			return nil, err
		}
		store = s
	}

	dir := people.LoadDirectory(filepath.Join(cfg.WorkDir, "people.json"), logger)
	resolver := people.NewResolver(dir, lookup, logger)

	return exporter.New(source, store, resolver, dir, opts, logger)
}

func initLogger(level string, logDir string) *zap.Logger {
	logLevel := interpretLogLevel(level)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.Fatalf("Failed to create log directory: %v", err)
	}
	logFileName := fmt.Sprintf("slackfeeder-%s.log", time.Now().Format("2006-01-02"))
	logFilePath := filepath.Join(logDir, logFileName)
	logFile, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}

	// Create cores for stderr and file
	stderrCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		logLevel,
	)

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logFile),
		logLevel,
	)

	// Combine both cores
	core := zapcore.NewTee(stderrCore, fileCore)

	logger := zap.New(core, zap.AddCaller())
	return logger
}

func interpretLogLevel(level string) zapcore.Level {
	var logLevel zapcore.Level

	switch level {
	case "debug":
		logLevel = zapcore.DebugLevel
	case "warn":
		logLevel = zapcore.WarnLevel
	case "error":
		logLevel = zapcore.ErrorLevel
	default:
		logLevel = zapcore.InfoLevel
	}
	return logLevel
}
