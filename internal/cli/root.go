package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/menudesk/internal/domain"
	"github.com/alexanderramin/menudesk/internal/service"
)

// App holds the services and process hooks used by CLI commands.
type App struct {
	Menus  service.MenuService
	Stages service.ProviderStageService
	Import service.ImportService
	// IDs must be the generator the menu service loads trees with, so nodes
	// built here never collide with loaded ones.
	IDs domain.IDGenerator

	// IsInteractive reports whether prompts may be shown. Nil means never.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil falls back to a huh prompt.
	Confirm func(title string) (bool, error)
	// Now defaults to time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "menudesk" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "menudesk",
		Short:         "Curate localized sports navigation menus",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMenuCmd(app),
		newNodeCmd(app),
		newStagesCmd(app),
	)

	return root
}
