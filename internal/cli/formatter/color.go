package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/menudesk/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Palette shared with the huh prompts.
var (
	ColorAccent = lipgloss.Color("#fe8019")
	ColorMuted  = lipgloss.Color("#928374")
	ColorText   = lipgloss.Color("#ebdbb2")
)

var (
	styleHeading   = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	styleMuted     = lipgloss.NewStyle().Foreground(ColorMuted)
	styleStrong    = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	styleOK        = lipgloss.NewStyle().Foreground(lipgloss.Color("#8ec07c"))
	styleAttention = lipgloss.NewStyle().Foreground(lipgloss.Color("#fabd2f"))
	styleError     = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934"))
	styleBadge     = lipgloss.NewStyle().Foreground(lipgloss.Color("#83a598"))
)

// kindStyles colors a node kind the same way in trees, tables and badges.
var kindStyles = map[domain.NodeKind]lipgloss.Style{
	domain.KindCategory: lipgloss.NewStyle().Foreground(lipgloss.Color("#d3869b")),
	domain.KindStage:    styleBadge,
	domain.KindSeason:   styleOK,
}

// Header renders text upper-cased over a muted rule of the same width.
func Header(text string) string {
	title := strings.ToUpper(text)
	rule := strings.Repeat("─", lipgloss.Width(title))
	return fmt.Sprintf("%s\n%s", styleHeading.Render(title), styleMuted.Render(rule))
}

func Dim(text string) string  { return styleMuted.Render(text) }
func Bold(text string) string { return styleStrong.Render(text) }

func Success(text string) string { return styleOK.Render("✔ " + text) }
func Warning(text string) string { return styleAttention.Render("▲ " + text) }
func Failure(text string) string { return styleError.Render("✖ " + text) }
