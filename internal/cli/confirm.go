package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/menudesk/internal/cli/formatter"
)

func menudeskHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorAccent).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorText).Background(formatter.ColorAccent).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorMuted).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorMuted)

	return t
}

func huhConfirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	)).WithTheme(menudeskHuhTheme()).WithShowHelp(false).Run()
	return ok, err
}

// confirm gates a destructive command. --yes skips the question; without it
// a prompt is required, so non-interactive runs must pass --yes.
func (a *App) confirm(yes bool, title string) error {
	if yes {
		return nil
	}
	if a.IsInteractive == nil || !a.IsInteractive() {
		return fmt.Errorf("%s: refusing without --yes in a non-interactive session", title)
	}
	ask := a.Confirm
	if ask == nil {
		ask = huhConfirm
	}
	ok, err := ask(title)
	if err != nil {
		return fmt.Errorf("confirmation: %w", err)
	}
	if !ok {
		return errAborted
	}
	return nil
}
