package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Section is one top-level view of the application.
type Section int

const (
	SectionHome Section = iota
	SectionTest
	SectionLessons
	SectionDashboard
	SectionLeaderboard
	SectionSettings
)

// Sections lists every section in navigation order.
var Sections = []Section{
	SectionHome,
	SectionTest,
	SectionLessons,
	SectionDashboard,
	SectionLeaderboard,
	SectionSettings,
}

func (s Section) String() string {
	switch s {
	case SectionHome:
		return "home"
	case SectionTest:
		return "test"
	case SectionLessons:
		return "lessons"
	case SectionDashboard:
		return "dashboard"
	case SectionLeaderboard:
		return "leaderboard"
	case SectionSettings:
		return "settings"
	default:
		return fmt.Sprintf("section(%d)", int(s))
	}
}

// Title is the label shown in the navigation bar.
func (s Section) Title() string {
	switch s {
	case SectionTest:
		return "Typing Test"
	default:
		name := s.String()
		return strings.ToUpper(name[:1]) + name[1:]
	}
}

// ParseSection maps a section name to its value.
func ParseSection(name string) (Section, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range Sections {
		if s.String() == name {
			return s, nil
		}
	}
	return SectionHome, fmt.Errorf("unknown section %q", name)
}

type navigateMsg struct {
	section Section
}

func navigate(s Section) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{section: s}
	}
}
