package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"paperbrief/internal/citation"
	"paperbrief/internal/config"
	"paperbrief/internal/extract"
	"paperbrief/internal/logging"
	"paperbrief/internal/models"
	"paperbrief/internal/pipeline"
	"paperbrief/internal/providers"
	"paperbrief/internal/storage"
	"paperbrief/internal/ui"
	"paperbrief/internal/util"
)

var (
	flagProvider  string
	flagModel     string
	flagStyle     string
	flagMaxTokens int
	flagNoRef     bool
	flagOutput    string
	flagVerbose   bool
	flagQuiet     bool
)

var rootCmd = &cobra.Command{
	Use:   "paperbrief <input.pdf>",
	Short: "Summarize a research paper PDF into a markdown brief",
	Long: `paperbrief extracts the text of a PDF, asks a hosted model for a
structured summary, optionally resolves the paper against Crossref, and
writes <input>.md next to the input.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&flagProvider, "provider", "", "generation backend: gemini, openai, groq, or mock")
	rootCmd.Flags().StringVarP(&flagModel, "model", "m", "", "model name; discovered automatically when empty")
	rootCmd.Flags().StringVar(&flagStyle, "style", "", "summary style: concise or detailed")
	rootCmd.Flags().IntVar(&flagMaxTokens, "max-output-tokens", 0, "cap on generated tokens")
	rootCmd.Flags().BoolVar(&flagNoRef, "no-reference", false, "skip the Crossref citation lookup")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output path (default: input path with .md extension)")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress spinner and status lines")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	applyFlags(&cfg)

	level := cfg.LogLevel
	if flagVerbose {
		level = "debug"
	} else if flagQuiet {
		level = "error"
	}
	log := logging.New(level, cfg.LogFormat)

	style, err := models.ParseStyle(cfg.Style)
	if err != nil {
		return err
	}
	genCfg := models.GenerationConfig{
		Model:            cfg.Model,
		MaxOutputTokens:  cfg.MaxOutputTokens,
		Style:            style,
		IncludeReference: cfg.IncludeReference,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	console := ui.NewConsole(flagQuiet)

	key, err := resolveCredential(cfg.Provider)
	if err != nil {
		return err
	}
	provider, err := buildProvider(cfg, key)
	if err != nil {
		return err
	}

	if genCfg.Model == "" {
		if lister, ok := provider.(providers.ModelLister); ok {
			console.StartStage("discovering models")
			infos, err := lister.ListModels(ctx)
			console.StopStage()
			if err != nil {
				return fmt.Errorf("discover models: %w", err)
			}
			name, found := providers.FirstGenerateModel(infos)
			if !found {
				return fmt.Errorf("%s exposes no text generation model: %w", cfg.Provider, util.ErrInvalidModel)
			}
			genCfg.Model = name
		}
	}
	if genCfg.Model != "" {
		log.Info().Str("provider", cfg.Provider).Str("model", genCfg.Model).Msg("model selected")
		console.Announcef("# Using %s", genCfg.Model)
	}

	recorder := providers.CallRecorder(providers.NopRecorder{})
	if cfg.DatabaseURL != "" {
		db, err := storage.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open audit database: %w", err)
		}
		defer db.Close()
		if err := db.EnsureSchema(ctx); err != nil {
			return err
		}
		repo := storage.NewAuditRepo(db, uuid.NewString())
		recorder = repo
		log = log.With().Str("run_id", repo.RunID()).Logger()
	}

	client := providers.NewClient(provider, providers.RetryPolicy{
		MaxRetries: 1,
		Backoff:    time.Duration(cfg.RetryBackoffSecs) * time.Second,
	}, recorder, log)

	resolver := citation.NewResolver(
		citation.NewCrossrefClient(cfg.CrossrefBaseURL, time.Duration(cfg.LookupTimeoutSecs)*time.Second),
		cfg.SimilarityThreshold,
		log,
	)

	p := pipeline.New(extract.FileExtractor{}, client, resolver, log)

	console.StartStage("summarizing " + filepath.Base(args[0]))
	res, err := p.Run(ctx, pipeline.Options{
		InputPath:     args[0],
		OutputPath:    flagOutput,
		Config:        genCfg,
		MaxInputRunes: cfg.MaxInputRunes,
	})
	console.StopStage()
	if err != nil {
		console.Errorf("%v", err)
		return err
	}

	console.Successf("wrote %s", res.OutputPath)
	if flagQuiet {
		fmt.Println(res.OutputPath)
	}
	return nil
}

func applyFlags(cfg *config.Config) {
	if flagProvider != "" {
		cfg.Provider = flagProvider
	}
	if flagModel != "" {
		cfg.Model = flagModel
	}
	if flagStyle != "" {
		cfg.Style = flagStyle
	}
	if flagMaxTokens > 0 {
		cfg.MaxOutputTokens = flagMaxTokens
	}
	if flagNoRef {
		cfg.IncludeReference = false
	}
}

// resolveCredential finds the API key for a provider before anything touches
// the network. Gemini keys come from GEMINI_API_KEY, then GOOGLE_API_KEY,
// then ~/.config/gemini.token.
func resolveCredential(provider string) (string, error) {
	switch provider {
	case "mock":
		return "", nil
	case "gemini":
		if k := os.Getenv("GEMINI_API_KEY"); k != "" {
			return k, nil
		}
		if k := os.Getenv("GOOGLE_API_KEY"); k != "" {
			return k, nil
		}
		if home, err := os.UserHomeDir(); err == nil {
			if data, err := os.ReadFile(filepath.Join(home, ".config", "gemini.token")); err == nil {
				if k := strings.TrimSpace(string(data)); k != "" {
					return k, nil
				}
			}
		}
		return "", fmt.Errorf("no gemini credential: set GEMINI_API_KEY, GOOGLE_API_KEY, or ~/.config/gemini.token: %w", util.ErrAuthentication)
	case "openai":
		if k := os.Getenv("OPENAI_API_KEY"); k != "" {
			return k, nil
		}
		return "", fmt.Errorf("no openai credential: set OPENAI_API_KEY: %w", util.ErrAuthentication)
	case "groq":
		if k := os.Getenv("GROQ_API_KEY"); k != "" {
			return k, nil
		}
		return "", fmt.Errorf("no groq credential: set GROQ_API_KEY: %w", util.ErrAuthentication)
	default:
		return "", fmt.Errorf("unknown provider %q (want gemini, openai, groq, or mock)", provider)
	}
}

func buildProvider(cfg config.Config, key string) (providers.Provider, error) {
	timeout := time.Duration(cfg.GenerateTimeoutSecs) * time.Second
	switch cfg.Provider {
	case "gemini":
		return providers.NewGeminiProvider(key, cfg.GeminiBaseURL, timeout), nil
	case "openai":
		return providers.NewOpenAIProvider(key, cfg.OpenAIBaseURL, timeout), nil
	case "groq":
		return providers.NewGroqProvider(key, cfg.GroqBaseURL, timeout), nil
	case "mock":
		return &providers.MockProvider{}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
