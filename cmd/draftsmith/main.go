// Command draftsmith runs the content-generation pipeline for a topic brief,
// or serves the pipeline as an MCP server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/dusk-indust/draftsmith/internal/article"
	"github.com/dusk-indust/draftsmith/internal/config"
	"github.com/dusk-indust/draftsmith/internal/mcptools"
	"github.com/dusk-indust/draftsmith/internal/pipeline"
	"github.com/dusk-indust/draftsmith/internal/provider"
)

// CLI flags parsed from command line.
type cliFlags struct {
	Topic       string
	Keyword     string
	Words       int
	ProjectRoot string
	Model       string
	Timeout     time.Duration
	OutFile     string
	ServeMCP    bool
	Verbose     bool
	Version     bool
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("draftsmith", flag.ContinueOnError)
	fs.StringVar(&flags.Topic, "topic", "", "article topic")
	fs.StringVar(&flags.Keyword, "keyword", "", "target SEO keyword")
	fs.IntVar(&flags.Words, "words", 0, "word count goal (default from config, else 1200)")
	fs.StringVar(&flags.ProjectRoot, "project-root", ".", "directory containing draftsmith.yml")
	fs.StringVar(&flags.Model, "model", "", "model name (overrides config)")
	fs.DurationVar(&flags.Timeout, "timeout", 10*time.Minute, "overall pipeline timeout")
	fs.StringVar(&flags.OutFile, "out", "", "write the assembled draft to this file instead of stdout")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server on stdio")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose logging")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	cfg, err := config.Load(flags.ProjectRoot)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlagOverrides(cfg, flags)

	logger := zerolog.Nop()
	if flags.Verbose || cfg.Verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	p, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	pl := pipeline.New(p, pipeline.Config{
		RetryBudget:        cfg.RetryBudget,
		DraftConcurrency:   cfg.DraftConcurrency,
		VoiceToneThreshold: cfg.VoiceToneThreshold,
		Logger:             logger,
	})
	defer pl.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flags.ServeMCP {
		return mcptools.RunStdio(ctx, mcptools.NewServer(pl, cfg.WordCountGoal))
	}

	if flags.Topic == "" {
		return errors.New("-topic is required (or use -serve-mcp)")
	}

	ctx, cancel := context.WithTimeout(ctx, flags.Timeout)
	defer cancel()

	// Stream progress lines while the pipeline runs.
	go func() {
		for ev := range pl.Progress() {
			fmt.Fprintln(os.Stderr, pipeline.FormatProgress(ev))
		}
	}()

	res := pl.Run(ctx, article.Brief{
		Topic:         flags.Topic,
		TargetKeyword: flags.Keyword,
		WordCountGoal: cfg.WordCountGoal,
		ClientProfile: cfg.ClientProfile,
		Voice:         cfg.Voice,
	})

	if err := printSummary(os.Stderr, res); err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("pipeline failed: %s", res.Error)
	}

	draft := pipeline.AssembleDraft(res.Sections)
	if flags.OutFile != "" {
		return os.WriteFile(flags.OutFile, []byte(draft+"\n"), 0o644)
	}
	fmt.Println(draft)
	return nil
}

// applyFlagOverrides lets flags win over file values.
func applyFlagOverrides(cfg *config.ProjectConfig, flags cliFlags) {
	if flags.Model != "" {
		cfg.Model = flags.Model
	}
	if flags.Words > 0 {
		cfg.WordCountGoal = flags.Words
	}
	if cfg.WordCountGoal <= 0 {
		cfg.WordCountGoal = 1200
	}
}

// buildProvider constructs the OpenAI-backed provider from config and env.
func buildProvider(cfg *config.ProjectConfig) (provider.Provider, error) {
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return provider.NewOpenAI(provider.OpenAISettings{
		Model:   model,
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: cfg.BaseURL,
	})
}

// printSummary writes the gate outcomes and retry count as indented JSON.
func printSummary(w *os.File, res *pipeline.Result) error {
	summary := struct {
		RunID      string         `json:"runId"`
		Success    bool           `json:"success"`
		Error      string         `json:"error,omitempty"`
		RetryCount int            `json:"retryCount"`
		Gates      map[string]any `json:"gates"`
	}{
		RunID:      res.RunID,
		Success:    res.Success,
		Error:      res.Error,
		RetryCount: res.RetryCount,
		Gates:      make(map[string]any, len(res.Gates)),
	}
	for name, g := range res.Gates {
		summary.Gates[name] = g
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}
