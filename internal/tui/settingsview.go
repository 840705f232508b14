package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typemaster/internal/settings"
	"github.com/verte-zerg/typemaster/internal/theme"
)

const (
	rowDarkMode = iota
	rowFontSize
	rowFontFamily
	rowUsername
	settingsRows
)

const previewText = "The quick brown fox jumps over the lazy dog."

type settingsView struct {
	styles   *theme.Styles
	settings *settings.Store
	log      *slog.Logger

	cursor  int
	editing bool
	input   textinput.Model
	errMsg  string
}

func newSettingsView(styles *theme.Styles, st *settings.Store, log *slog.Logger) *settingsView {
	input := textinput.New()
	input.Prompt = "Username: "
	input.Placeholder = "your name"
	input.CharLimit = 32
	return &settingsView{styles: styles, settings: st, log: log, input: input}
}

func (v *settingsView) capturing() bool {
	return v.editing
}

func (v *settingsView) update(msg tea.KeyMsg) tea.Cmd {
	if v.editing {
		return v.updateInput(msg)
	}
	ctx := context.Background()
	cur := v.settings.Get()
	var err error
	switch msg.String() {
	case "up", "k":
		v.cursor = (v.cursor + settingsRows - 1) % settingsRows
	case "down", "j":
		v.cursor = (v.cursor + 1) % settingsRows
	case "left", "right", "h", "l", "enter", " ":
		delta := 1
		if s := msg.String(); s == "left" || s == "h" {
			delta = -1
		}
		switch v.cursor {
		case rowDarkMode:
			err = v.settings.ToggleDarkMode(ctx)
		case rowFontSize:
			size := min(settings.MaxFontSize, max(settings.MinFontSize, cur.FontSize+delta))
			if size != cur.FontSize {
				err = v.settings.SetFontSize(ctx, size)
			}
		case rowFontFamily:
			err = v.settings.SetFontFamily(ctx, settings.NextFontFamily(cur.FontFamily, delta))
		case rowUsername:
			if msg.String() == "enter" {
				v.editing = true
				v.input.SetValue(cur.Username)
				v.input.CursorEnd()
				return v.input.Focus()
			}
		}
	}
	v.report(err)
	return nil
}

func (v *settingsView) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		v.editing = false
		v.input.Blur()
		return nil
	case tea.KeyEnter:
		v.editing = false
		v.input.Blur()
		v.report(v.settings.SetUsername(context.Background(), v.input.Value()))
		return nil
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return cmd
}

func (v *settingsView) report(err error) {
	if err != nil {
		v.log.Warn("failed to update setting", "err", err)
		v.errMsg = err.Error()
		return
	}
	v.errMsg = ""
}

func (v *settingsView) view(width, height int) string {
	cur := v.settings.Get()
	mode := "Light"
	if cur.DarkMode {
		mode = "Dark"
	}
	username := cur.Username
	if username == "" {
		username = "(not set)"
	}
	rows := []struct{ label, value string }{
		{"Theme", mode},
		{"Font size", fmt.Sprintf("%dpx", cur.FontSize)},
		{"Font family", settings.FontFamilyLabel(cur.FontFamily)},
		{"Username", username},
	}
	lines := []string{v.styles.Title.Render("Settings"), ""}
	for i, r := range rows {
		line := fmt.Sprintf("%-12s %s", r.label, r.value)
		if i == v.cursor {
			lines = append(lines, v.styles.Highlight.Render("> "+line))
		} else {
			lines = append(lines, v.styles.Text.Render("  "+line))
		}
	}
	if v.editing {
		lines = append(lines, "", v.input.View(), v.styles.Footer.Render("enter: save  ·  esc: cancel"))
	}
	if v.errMsg != "" {
		lines = append(lines, "", v.styles.Error.Render(v.errMsg))
	}
	previewWidth := textColumnWidth(width, cur.FontSize)
	lines = append(lines,
		"",
		v.styles.Muted.Render("Preview"),
		v.styles.Card.Width(min(previewWidth, max(20, width-4))).Render(v.styles.Text.Render(previewText)),
		"",
		v.styles.Footer.Render("up/down: select  ·  left/right: change  ·  enter: edit  ·  esc: back"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}
