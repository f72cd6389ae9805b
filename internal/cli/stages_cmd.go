package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/menudesk/internal/cli/formatter"
	"github.com/alexanderramin/menudesk/internal/mapping"
	"github.com/alexanderramin/menudesk/internal/service"
)

func newStagesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stages",
		Short: "Browse imported provider stages",
	}

	cmd.AddCommand(
		newStagesListCmd(app),
		newStagesProvidersCmd(app),
		newStagesPullCmd(app),
	)

	return cmd
}

func newStagesListCmd(app *App) *cobra.Command {
	var provider, menuRef, prefix string
	var unassigned bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List provider stages, with how often a menu maps them",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if unassigned && menuRef == "" {
				return fmt.Errorf("--unassigned needs --menu to count assignments against")
			}

			var doc *service.Document
			if menuRef != "" {
				var err error
				if doc, err = app.Menus.Load(ctx, menuRef); err != nil {
					return err
				}
			}

			coll, err := app.Stages.Collection(ctx, provider, doc, mapping.Filter{
				NamePrefix:   prefix,
				HideAssigned: unassigned,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStages(coll))
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "Only this provider")
	cmd.Flags().StringVar(&menuRef, "menu", "", "Count assignments in this menu")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Only stages whose category, stage or season name starts with this")
	cmd.Flags().BoolVar(&unassigned, "unassigned", false, "Hide stages already mapped in --menu")

	return cmd
}

func newStagesProvidersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List providers with imported stages",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := app.Stages.Providers(context.Background())
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No providers imported yet."))
				return nil
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newStagesPullCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pull PROVIDER STAGE",
		Short: "Mark a provider stage's data as pulled",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Stages.Pull(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			at := "now"
			if s.PulledAt != nil {
				at = s.PulledAt.Format(time.RFC3339)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pulled %s (%s) at %s\n", s.Key(), s.DisplayName(), at)
			return nil
		},
	}
}
