package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typemaster/internal/theme"
)

type menuItem struct {
	section     Section
	description string
}

var homeMenu = []menuItem{
	{SectionTest, "Timed test with live WPM and accuracy"},
	{SectionLessons, "Step-by-step lessons from the home row up"},
	{SectionDashboard, "Your progress over time"},
	{SectionLeaderboard, "See how you rank"},
	{SectionSettings, "Theme, font and username"},
}

type homeView struct {
	styles *theme.Styles
	cursor int
}

func (v *homeView) update(msg tea.KeyMsg) tea.Cmd {
	switch s := msg.String(); s {
	case "up", "k":
		v.cursor = (v.cursor + len(homeMenu) - 1) % len(homeMenu)
	case "down", "j", "tab":
		v.cursor = (v.cursor + 1) % len(homeMenu)
	case "enter", " ":
		return navigate(homeMenu[v.cursor].section)
	case "q":
		return tea.Quit
	default:
		if len(s) == 1 && s[0] >= '1' && int(s[0]-'1') < len(homeMenu) {
			return navigate(homeMenu[s[0]-'1'].section)
		}
	}
	return nil
}

func (v *homeView) view(width, height int) string {
	lines := []string{
		v.styles.Title.Render("Master your typing skills"),
		v.styles.Muted.Render("Practice, take timed tests and track your progress."),
		"",
	}
	for i, item := range homeMenu {
		label := fmt.Sprintf("%d. %-12s", i+1, item.section.Title())
		if i == v.cursor {
			lines = append(lines, v.styles.Highlight.Render("> "+label)+"  "+v.styles.Text.Render(item.description))
		} else {
			lines = append(lines, v.styles.Text.Render("  "+label)+"  "+v.styles.Muted.Render(item.description))
		}
	}
	lines = append(lines, "", v.styles.Footer.Render("up/down: select  ·  enter: open  ·  q: quit"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}
