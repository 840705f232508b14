// Package main provides the CLI entrypoint for typemaster.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/typemaster/internal/config"
	"github.com/verte-zerg/typemaster/internal/corpus"
	"github.com/verte-zerg/typemaster/internal/generator"
	"github.com/verte-zerg/typemaster/internal/logging"
	"github.com/verte-zerg/typemaster/internal/model"
	"github.com/verte-zerg/typemaster/internal/session"
	"github.com/verte-zerg/typemaster/internal/settings"
	"github.com/verte-zerg/typemaster/internal/stats"
	"github.com/verte-zerg/typemaster/internal/store"
	"github.com/verte-zerg/typemaster/internal/tui"
	"github.com/verte-zerg/typemaster/internal/wordlist"
)

const (
	defaultDuration    = 60
	defaultCorpus      = model.CorpusQuotes
	defaultWords       = 30
	defaultCaps        = 0.1
	defaultPunct       = 0.1
	defaultWeakTop     = 8
	defaultWeakFactor  = 2.0
	defaultWeakWindow  = 20
	defaultCurveWindow = 5
)

const defaultPunctSet = ".,!?;:"

var (
	testDuration        int
	testCompleteOnMatch bool
	testCorpus          string
	testWords           int
	testCaps            float64
	testPunct           float64
	testPunctSet        string
	testWordList        string
	testFocusWeak       bool
	testWeakTop         int
	testWeakFactor      float64
	testWeakWindow      int
	startSection        string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typemaster",
		Short:         "Terminal typing tests, lessons and progress tracking",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runAppCmd,
	}

	flags := rootCmd.Flags()
	flags.IntVar(&testDuration, "duration", defaultDuration, "test duration in seconds")
	flags.BoolVar(&testCompleteOnMatch, "complete-on-match", true, "finish the test when the whole text is typed correctly")
	flags.StringVar(&testCorpus, "corpus", defaultCorpus, "text source: quotes or words")
	flags.IntVar(&testWords, "words", defaultWords, "words per generated text")
	flags.Float64Var(&testCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	flags.Float64Var(&testPunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	flags.StringVar(&testPunctSet, "punct-set", defaultPunctSet, "punctuation set")
	flags.StringVar(&testWordList, "wordlist", "", "word list file (default: built-in English list)")
	flags.BoolVar(&testFocusWeak, "focus-weak", false, "bias generated text toward weak characters")
	flags.IntVar(&testWeakTop, "weak-top", defaultWeakTop, "number of weak characters to focus on")
	flags.Float64Var(&testWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak characters")
	flags.IntVar(&testWeakWindow, "weak-window", defaultWeakWindow, "number of recent sessions to compute weak chars")
	flags.StringVar(&startSection, "section", tui.SectionHome.String(), "section to open: home, test, lessons, dashboard, leaderboard or settings")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newLessonsCmd())

	return rootCmd
}

func runAppCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "duration", &testDuration, fileCfg.Test.Duration)
	applyBoolConfig(cmd, "complete-on-match", &testCompleteOnMatch, fileCfg.Test.CompleteOnMatch)
	applyStringConfig(cmd, "corpus", &testCorpus, fileCfg.Test.Corpus)
	applyIntConfig(cmd, "words", &testWords, fileCfg.Test.Words)
	applyFloatConfig(cmd, "caps", &testCaps, fileCfg.Test.CapsPct)
	applyFloatConfig(cmd, "punct", &testPunct, fileCfg.Test.PunctPct)
	applyStringConfig(cmd, "punct-set", &testPunctSet, fileCfg.Test.PunctSet)
	applyStringConfig(cmd, "wordlist", &testWordList, fileCfg.Test.WordList)
	applyBoolConfig(cmd, "focus-weak", &testFocusWeak, fileCfg.Test.FocusWeak)
	applyIntConfig(cmd, "weak-top", &testWeakTop, fileCfg.Test.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &testWeakFactor, fileCfg.Test.WeakFactor)
	applyIntConfig(cmd, "weak-window", &testWeakWindow, fileCfg.Test.WeakWindow)

	cfg := model.Config{
		Duration:        testDuration,
		CompleteOnMatch: testCompleteOnMatch,
		Corpus:          testCorpus,
		Words:           testWords,
		CapsPct:         testCaps,
		PunctPct:        testPunct,
		PunctSet:        testPunctSet,
		WordListPath:    testWordList,
		FocusWeak:       testFocusWeak,
		WeakTop:         testWeakTop,
		WeakFactor:      testWeakFactor,
		WeakWindow:      testWeakWindow,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	section, err := tui.ParseSection(startSection)
	if err != nil {
		return fmt.Errorf("--section: %w", err)
	}

	logger, closeLog, err := openLogger(fileCfg.Log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeLog(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	prefs, err := settings.Load(ctx, st, settings.Defaults())
	if err != nil {
		return err
	}

	source, err := buildSource(cfg, st, logger)
	if err != nil {
		return err
	}

	logger.Info("starting", "section", section.String(), "corpus", cfg.Corpus, "duration", cfg.Duration)
	app, err := tui.New(tui.Deps{
		Config:      cfg,
		StatsConfig: model.StatsConfig{CurveWindow: defaultCurveWindow},
		Store:       st,
		Settings:    prefs,
		Source:      source,
		Logger:      logger,
		Section:     section,
	})
	if err != nil {
		return err
	}
	if err := tui.Run(app); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if summary := app.Summary(); summary != "" {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), summary); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// buildSource picks the typing test text source.
func buildSource(cfg model.Config, st *store.Store, logger *slog.Logger) (session.Source, error) {
	gen := generator.New()
	if cfg.Corpus == model.CorpusQuotes {
		return corpus.NewQuotes(gen, corpus.SampleTexts), nil
	}

	words := wordlist.Default()
	if cfg.WordListPath != "" {
		loaded, err := wordlist.Load(cfg.WordListPath, "en")
		if err != nil {
			return nil, fmt.Errorf("failed to load word list %s: %w", cfg.WordListPath, err)
		}
		words = loaded
	}
	opts := generator.Options{
		Count:      cfg.Words,
		CapsPct:    cfg.CapsPct,
		PunctPct:   cfg.PunctPct,
		PunctSet:   []rune(cfg.PunctSet),
		WeakFactor: cfg.WeakFactor,
	}
	var weak corpus.WeakFunc
	if cfg.FocusWeak {
		weak = weakChars(st, cfg, logger)
	}
	return corpus.NewWords(gen, words, opts, weak), nil
}

// weakChars reloads the weakest characters before every generated text.
func weakChars(st *store.Store, cfg model.Config, logger *slog.Logger) corpus.WeakFunc {
	return func() map[rune]struct{} {
		aggs, err := st.GetWeakChars(context.Background(), cfg.WeakWindow)
		if err != nil {
			logger.Error("failed to load weak chars", "err", err)
			return nil
		}
		weak := stats.SelectWeakChars(aggs, cfg.WeakTop)
		if len(weak) == 0 {
			logger.Info("no weak characters yet; using uniform word choice")
		}
		return weak
	}
}

func openLogger(cfg config.LogConfig) (*slog.Logger, func() error, error) {
	level, err := logging.ParseLevel(deref(cfg.Level))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid [log] level: %w", err)
	}
	path := config.DefaultLogPath()
	if cfg.Path != nil {
		path = *cfg.Path
	}
	logger, closeFn, err := logging.New(logging.Config{
		Path:  path,
		Level: level,
		Debug: logging.DebugFromEnv(),
	})
	if err != nil {
		return nil, nil, err
	}
	return logger, closeFn, nil
}

func openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
