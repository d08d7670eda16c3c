// Package main is the kyoshi CLI entry point.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/studyhall/kyoshi/internal/agents"
	"github.com/studyhall/kyoshi/internal/assistant"
	"github.com/studyhall/kyoshi/internal/config"
	"github.com/studyhall/kyoshi/internal/digest"
	"github.com/studyhall/kyoshi/internal/extract"
	"github.com/studyhall/kyoshi/internal/history"
	"github.com/studyhall/kyoshi/internal/llm"
	"github.com/studyhall/kyoshi/internal/materials"
	"github.com/studyhall/kyoshi/internal/models"
	"github.com/studyhall/kyoshi/internal/router"
	"github.com/studyhall/kyoshi/internal/server"
	"github.com/studyhall/kyoshi/internal/watcher"
	"github.com/studyhall/kyoshi/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kyoshi/config.yaml"

// materialExtensions mirrors what the extractor supports; the watcher filters
// on the same set.
var materialExtensions = []string{".txt", ".md", ".pdf", ".pptx", ".docx", ".odp", ".xlsx"}

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if neither
// exists, built-in defaults are used so the assistant runs without a config
// file.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			cfg := &config.Config{}
			config.ApplyDefaults(cfg)
			return cfg, "(defaults)", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "ask":
		runAsk()
	case "chat":
		runChat()
	case "digest":
		runDigest()
	case "history":
		runHistory()
	case "version", "--version", "-v":
		fmt.Printf("kyoshi version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Store      history.Store
	Loader     *materials.Loader
	Digest     *digest.Handle
	Dispatcher *assistant.Dispatcher
}

func (c *Components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	var store history.Store
	var err error
	switch cfg.History.Backend {
	case "sqlite":
		store, err = history.NewSQLiteStore(cfg.History.DatabasePath)
	default:
		store, err = history.NewFileStore(cfg.History.Dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize history store: %w", err)
	}

	esc, err := assistant.NewEscalationLog(cfg.Escalation.LogPath)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize escalation log: %w", err)
	}

	apiKey := os.Getenv(cfg.LLM.APIKeyEnv)
	if apiKey == "" {
		_ = store.Close()
		return nil, fmt.Errorf("API key not set: export %s", cfg.LLM.APIKeyEnv)
	}
	client := llm.NewDeepSeekClient(llm.DeepSeekConfig{
		BaseURL:   cfg.LLM.BaseURL,
		Model:     cfg.LLM.Model,
		APIKey:    apiKey,
		MaxTokens: cfg.LLM.MaxTokens,
		Timeout:   time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
	})

	loader := materials.NewLoader(extract.NewExtractor(),
		cfg.Materials.ChunkSize, cfg.Materials.ChunkOverlap,
		materials.WithLogger(logger))
	chunks, err := loader.Load(cfg.Materials.Folder)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load materials: %w", err)
	}
	d := digest.Build(chunks, cfg.Materials.DigestMaxChars)
	logger.Info("materials digest built",
		zap.Int("sources", len(d.Sources)),
		zap.Int("chunks", d.NumChunks),
		zap.Int("omitted_sections", d.Truncated),
	)
	handle := digest.NewHandle(d)

	dispatcher := assistant.New(
		router.New(client, router.WithLogger(logger)),
		agents.NewRegistry(client, handle),
		store,
		esc,
		assistant.WithLogger(logger),
	)

	return &Components{
		Store:      store,
		Loader:     loader,
		Digest:     handle,
		Dispatcher: dispatcher,
	}, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Materials.Watch {
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		w := watcher.NewWatcher(cfg.Materials.Folder, materialExtensions, func() {
			chunks, err := components.Loader.Load(cfg.Materials.Folder)
			if err != nil {
				logger.Warn("materials reload failed", zap.Error(err))
				return
			}
			d := digest.Build(chunks, cfg.Materials.DigestMaxChars)
			components.Digest.Swap(d)
			logger.Info("materials digest rebuilt",
				zap.Int("sources", len(d.Sources)),
				zap.Int("chunks", d.NumChunks),
			)
		}, watchOpts...)
		if err := w.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer w.Stop()
	}

	srv := server.NewServer(components.Dispatcher, components.Digest, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	session := fs.String("session", "cli", "session id for conversation history")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: kyoshi ask [flags] <question>")
		os.Exit(1)
	}
	question := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if question == "" {
		fmt.Println("Usage: kyoshi ask [flags] <question>")
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	result, err := components.Dispatcher.HandleQuestion(context.Background(), *session, question)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ask failed: %v\n", err)
		os.Exit(1)
	}
	printResult(result)
}

func runChat() {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	session := fs.String("session", "cli", "session id for conversation history")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	fmt.Println("AI teaching assistant ready. Type a question, or: history, clear, help, exit")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	ctx := context.Background()
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return
		case "help":
			fmt.Println("Commands: history (show this session), clear (wipe this session), exit")
			continue
		case "history":
			turns, err := components.Dispatcher.History(ctx, *session)
			if err != nil {
				fmt.Printf("History failed: %v\n", err)
				continue
			}
			if len(turns) == 0 {
				fmt.Println("(empty)")
				continue
			}
			for _, t := range turns {
				fmt.Printf("[%s] %s\n", t.Role, utils.Truncate(t.Content, 200))
			}
			continue
		case "clear":
			if err := components.Dispatcher.ClearHistory(ctx, *session); err != nil {
				fmt.Printf("Clear failed: %v\n", err)
			} else {
				fmt.Println("History cleared.")
			}
			continue
		}
		result, err := components.Dispatcher.HandleQuestion(ctx, *session, line)
		if err != nil {
			fmt.Printf("Ask failed: %v\n", err)
			continue
		}
		printResult(result)
	}
}

func printResult(result *models.Result) {
	if result.Notice != "" {
		fmt.Printf("[notice] %s\n", result.Notice)
	}
	if result.Answer != "" {
		fmt.Println(result.Answer)
	}
	if result.Escalated {
		fmt.Printf("(escalated; category=%s difficulty=%s)\n",
			result.Decision.Category, result.Decision.Difficulty)
	}
}

// runDigest loads the materials folder and prints a digest summary without
// touching the generation backend.
func runDigest() {
	fs := flag.NewFlagSet("digest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	full := fs.Bool("full", false, "print the full rendered digest text")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	loader := materials.NewLoader(extract.NewExtractor(),
		cfg.Materials.ChunkSize, cfg.Materials.ChunkOverlap,
		materials.WithLogger(logger))
	chunks, err := loader.Load(cfg.Materials.Folder)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load materials: %v\n", err)
		os.Exit(1)
	}
	d := digest.Build(chunks, cfg.Materials.DigestMaxChars)
	if *full {
		fmt.Println(d.Text)
		return
	}
	fmt.Printf("folder:            %s\n", cfg.Materials.Folder)
	fmt.Printf("materials:         %d\n", len(d.Sources))
	fmt.Printf("chunks:            %d\n", d.NumChunks)
	fmt.Printf("digest_chars:      %d\n", len([]rune(d.Text)))
	fmt.Printf("omitted_sections:  %d\n", d.Truncated)
	for i, src := range d.Sources {
		fmt.Printf("  %d. %s\n", i+1, filepath.Base(src))
	}
}

func runHistory() {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	session := fs.String("session", "cli", "session id")
	clear := fs.Bool("clear", false, "clear the session instead of printing it")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var store history.Store
	switch cfg.History.Backend {
	case "sqlite":
		store, err = history.NewSQLiteStore(cfg.History.DatabasePath)
	default:
		store, err = history.NewFileStore(cfg.History.Dir)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open history store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	if *clear {
		if err := store.Clear(ctx, *session); err != nil {
			fmt.Fprintf(os.Stderr, "Clear failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared session %s\n", *session)
		return
	}
	turns, err := store.Get(ctx, *session)
	if err != nil {
		fmt.Fprintf(os.Stderr, "History failed: %v\n", err)
		os.Exit(1)
	}
	if len(turns) == 0 {
		fmt.Println("(empty)")
		return
	}
	for _, t := range turns {
		fmt.Printf("[%s] %s\n", t.Role, t.Content)
	}
}

func printUsage() {
	fmt.Println(`kyoshi - AI teaching assistant for course materials

Usage:
  kyoshi server [flags]           Start the HTTP server and chat page
  kyoshi ask [flags] <question>   Ask one question from the command line
  kyoshi chat [flags]             Interactive chat session
  kyoshi digest [flags]           Load materials and print the digest summary
  kyoshi history [flags]          Show or clear a session's history
  kyoshi version                  Show version
  kyoshi help                     Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/kyoshi/config.yaml)
  --debug            Enable debug logging

Ask/Chat Flags:
  --config string    Config file path
  --session string   Session id for conversation history (default: cli)

Digest Flags:
  --config string    Config file path
  --full             Print the full rendered digest text

History Flags:
  --config string    Config file path
  --session string   Session id (default: cli)
  --clear            Clear the session instead of printing it

The generation backend needs an API key; export the variable named by
llm.api_key_env in the config (DEEPSEEK_API_KEY by default).

Examples:
  kyoshi server
  kyoshi ask "why is quicksort O(n log n) on average?"
  kyoshi chat --session alice
  kyoshi digest --full
  kyoshi history --session alice --clear`)
}
