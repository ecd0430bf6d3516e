package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/backend"
	"github.com/abhisek/studybuddy/internal/chat"
	"github.com/abhisek/studybuddy/internal/config"
	"github.com/abhisek/studybuddy/internal/document"
	"github.com/abhisek/studybuddy/internal/identity"
	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/progress"
	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/summary"
)

// env is what every command runs against: configuration, a log file and
// the local database.
type env struct {
	cfg      *config.Config
	log      *logger.Logger
	store    *store.Store
	identity *identity.Store
}

// loadConfig reads configuration and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(config.Options{ConfigFile: cfgFile, EnvFile: envFile})
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if m, _ := cmd.Flags().GetString("mode"); m != "" {
		cfg.Mode = m
	}
	return cfg, nil
}

// resolveDBPath returns the database path after config and --db overrides.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	return cfg.ResolveDBPath()
}

// openEnv loads configuration, opens the log file and the store.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	logFile, err := cfg.ResolveLogFile()
	if err != nil {
		return nil, fmt.Errorf("resolve log file: %w", err)
	}
	log, err := logger.New(cfg.Env, logFile)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("environment ready", "db", dbPath, "mode", cfg.Mode)

	return &env{cfg: cfg, log: log, store: st, identity: identity.New(st.SettingsRepo())}, nil
}

func (e *env) Close() {
	_ = e.store.Close()
	e.log.Sync()
}

// services are the four external interfaces for the configured mode.
type services struct {
	label      string
	backend    *backend.Client // nil in llm mode
	summarizer summary.Summarizer
	generator  quiz.Generator
	answerer   chat.Answerer
	progress   progress.Source
}

// services validates the configuration and builds the mode's implementations.
func (e *env) services(ctx context.Context) (*services, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	switch e.cfg.Mode {
	case config.ModeLLM:
		llmCfg := e.cfg.LLMProviderConfig()
		provider, err := llm.NewProvider(ctx, llmCfg, e.store.EventRepo(), e.log)
		if err != nil {
			return nil, err
		}
		genCfg := quiz.DefaultLLMConfig()
		genCfg.MaxDocumentChars = llmCfg.MaxDocumentChars
		return &services{
			label:      llmCfg.Provider + " (" + provider.ModelID() + ")",
			summarizer: summary.NewLLMSummarizer(provider, llmCfg.MaxDocumentChars),
			generator:  quiz.NewLLMGenerator(provider, genCfg),
			answerer:   chat.NewLLMAnswerer(provider, llmCfg.MaxDocumentChars),
			progress:   progress.NewLocalSource(e.store.ActivityRepo()),
		}, nil

	default:
		client := backend.New(backend.Options{
			BaseURL: e.cfg.Backend.URL,
			Timeout: e.cfg.Backend.Timeout,
			Logger:  e.log,
		})
		return &services{
			label:      client.BaseURL(),
			backend:    client,
			summarizer: client,
			generator:  client,
			answerer:   client,
			progress:   client,
		}, nil
	}
}

// loadDocument validates path and obtains its text: locally for .txt files,
// through the backend upload endpoint otherwise.
func (e *env) loadDocument(ctx context.Context, svc *services, path string) (*document.Document, error) {
	maxSize := e.cfg.Upload.MaxSize
	info, err := document.Stat(path, maxSize)
	if err != nil {
		return nil, err
	}

	var doc *document.Document
	if !document.NeedsExtraction(path) {
		doc, err = document.LoadText(path, maxSize)
	} else {
		if svc.backend == nil {
			return nil, fmt.Errorf("%s: %w (use --mode remote)", filepath.Base(path), document.ErrExtractionUnsupported)
		}
		var res *backend.UploadResult
		res, err = svc.backend.Upload(ctx, path)
		if err == nil {
			doc, err = document.New(orName(res.Filename, info.Name()), path, info.Size(), res.TextContent)
		}
	}
	if err != nil {
		return nil, err
	}

	e.recordNote(ctx, doc)
	return doc, nil
}

// recordNote counts the loaded document towards local progress. Failures
// are logged; they never block studying.
func (e *env) recordNote(ctx context.Context, doc *document.Document) {
	userID, err := e.identity.UserID(ctx)
	if err == nil {
		err = e.store.ActivityRepo().RecordNote(ctx, userID, doc.Name)
	}
	if err != nil {
		e.log.Warn("recording note failed", "document", doc.Name, "error", err)
	}
}

func orName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// saveDir is where summaries are written: the working directory, or the
// home directory when that is not available.
func saveDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
