package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/typemaster/internal/model"
)

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func validateConfig(cfg model.Config) error {
	if cfg.Duration <= 0 {
		return fmt.Errorf("--duration must be > 0")
	}
	if cfg.Corpus != model.CorpusQuotes && cfg.Corpus != model.CorpusWords {
		return fmt.Errorf("--corpus must be %q or %q", model.CorpusQuotes, model.CorpusWords)
	}
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.PunctPct > 0 && cfg.PunctSet == "" {
		return fmt.Errorf("--punct-set must not be empty")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typemaster configuration
# Uncomment a value to enable it. CLI flags override config values.

[test]
# duration = %d              # Test duration in seconds
# complete-on-match = true   # Finish when the whole text is typed correctly
# corpus = %q           # Text source: "quotes" or "words"
# words = %d                 # Words per generated text
# caps = %.2f                # Probability of capitalized first letter (0-1)
# punct = %.2f               # Punctuation probability per word (0-1)
# punct-set = %q         # Punctuation set
# wordlist = ""              # Word list file, one word per line
# focus-weak = false         # Bias generated text toward weak characters
# weak-top = %d               # Number of weak characters to focus on
# weak-factor = %.1f         # Weight factor for weak characters
# weak-window = %d           # Number of recent sessions to compute weak chars

[log]
# level = "info"             # debug, info, warn or error
# path = ""                  # Log file (default: $XDG_STATE_HOME/typemaster/typemaster.log)
`,
		defaultDuration,
		defaultCorpus,
		defaultWords,
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
	)
}
