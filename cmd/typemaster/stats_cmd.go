package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/typemaster/internal/model"
	"github.com/verte-zerg/typemaster/internal/settings"
	"github.com/verte-zerg/typemaster/internal/stats"
	"github.com/verte-zerg/typemaster/internal/statsui"
	"github.com/verte-zerg/typemaster/internal/theme"
)

var (
	statsMode        string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool

	exportFormat string
	exportOutput string
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	addStatsFilterFlags(cmd)
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the dashboard")
	return cmd
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export session history as YAML or JSON",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	addStatsFilterFlags(cmd)
	cmd.Flags().StringVar(&exportFormat, "format", "yaml", "output format: yaml or json")
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func addStatsFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&statsMode, "mode", "", "session mode filter: test or lesson")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
}

func statsConfig() (model.StatsConfig, error) {
	cfg := model.StatsConfig{
		Mode:        strings.TrimSpace(statsMode),
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}
	switch cfg.Mode {
	case "", model.ModeTest, model.ModeLesson:
	default:
		return cfg, fmt.Errorf("--mode must be %q or %q", model.ModeTest, model.ModeLesson)
	}
	if cfg.Last < 0 {
		return cfg, fmt.Errorf("--last must be >= 0")
	}
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return cfg, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	return cfg, nil
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := statsConfig()
	if err != nil {
		return err
	}
	if cfg.CurveWindow <= 0 {
		return fmt.Errorf("--curve-window must be > 0")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	out := cmd.OutOrStdout()
	width, interactive := terminalWidth(out)
	if statsPlain || !interactive {
		report, err := stats.BuildReport(context.Background(), st, cfg)
		if err != nil {
			return err
		}
		return renderPlainStats(out, report, cfg.CurveWindow, width)
	}

	prefs, err := settings.Load(context.Background(), st, settings.Defaults())
	if err != nil {
		return err
	}
	dashboard := statsui.NewModel(st, cfg, theme.New(prefs.Get().DarkMode))
	dashboard.Standalone = true
	program := tea.NewProgram(dashboard, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func renderPlainStats(w io.Writer, report stats.Report, window, width int) error {
	if err := stats.RenderSummary(w, report, window, width); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return stats.RenderCharTable(w, report.CharAggsWindow)
}

// terminalWidth reports the width of w when it is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, true
	}
	return width, true
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := statsConfig()
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	sessions, err := st.ListSessions(context.Background(), cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOutput, err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				logErrf("failed to close %s: %v\n", exportOutput, cerr)
			}
		}()
		out = f
	}
	return writeSessions(out, exportFormat, sessions)
}

func writeSessions(w io.Writer, format string, sessions []model.SessionAggregate) error {
	if sessions == nil {
		sessions = []model.SessionAggregate{}
	}
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(sessions); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		data, err := json.MarshalIndent(sessions, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("--format must be yaml or json")
	}
}
