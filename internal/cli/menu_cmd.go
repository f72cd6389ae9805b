package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/menudesk/internal/cli/formatter"
	"github.com/alexanderramin/menudesk/internal/config"
	"github.com/alexanderramin/menudesk/internal/domain"
	"github.com/alexanderramin/menudesk/internal/service"
	"github.com/alexanderramin/menudesk/internal/tree"
)

const defaultInvisibleWindow = 30 * 24 * time.Hour

func newMenuCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Manage menus",
	}

	cmd.AddCommand(
		newMenuCreateCmd(app),
		newMenuListCmd(app),
		newMenuShowCmd(app),
		newMenuValidateCmd(app),
		newMenuExportCmd(app),
		newMenuApplyCmd(app),
		newMenuImportCmd(app),
		newMenuPublishCmd(app),
		newMenuHistoryCmd(app),
		newMenuDeleteCmd(app),
	)

	return cmd
}

func newMenuCreateCmd(app *App) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an empty menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if lang != "" {
				canonical, err := config.CanonicalLanguage(lang)
				if err != nil {
					return err
				}
				lang = canonical
			}
			m, err := app.Menus.Create(context.Background(), args[0], lang)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created menu %s [%s] (default language %s)\n", m.Name, shortID(m.ID), m.DefaultLanguage)
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Default language of the menu (defaults to the configured one)")

	return cmd
}

func newMenuListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List menus",
		RunE: func(cmd *cobra.Command, args []string) error {
			menus, err := app.Menus.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMenuList(menus))
			return nil
		},
	}
}

// viewIn switches t to lang when one is given.
func viewIn(t *tree.Repository, lang string) (*tree.Repository, error) {
	if lang == "" {
		return t, nil
	}
	canonical, err := config.CanonicalLanguage(lang)
	if err != nil {
		return nil, err
	}
	if canonical == t.Language() {
		return t, nil
	}
	return t.WithUpdatedLanguage(canonical), nil
}

func newMenuShowCmd(app *App) *cobra.Command {
	var lang string
	var codes, dates bool
	var window time.Duration

	cmd := &cobra.Command{
		Use:   "show MENU",
		Short: "Show the menu tree with validation errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.Menus.Load(context.Background(), args[0])
			if err != nil {
				return err
			}
			t, err := viewIn(doc.Tree.Validated(), lang)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", formatter.Header(fmt.Sprintf("%s · %s · v%d", doc.Menu.Name, t.Language(), doc.Menu.Version)))
			fmt.Fprint(out, formatter.FormatTree(t, formatter.TreeOptions{ShowCodes: codes, ShowDates: dates}))
			fmt.Fprint(out, formatter.FormatInvisibleSeasons(t.GetRecentInvisibleSeasons(app.now(), window)))
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "View language (defaults to the menu's default language)")
	cmd.Flags().BoolVar(&codes, "codes", false, "Show node codes")
	cmd.Flags().BoolVar(&dates, "dates", false, "Show season dates")
	cmd.Flags().DurationVar(&window, "window", defaultInvisibleWindow, "Warn about hidden seasons that ended within this window")

	return cmd
}

func newMenuValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate MENU",
		Short: "Validate the stored menu tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.Menus.Load(context.Background(), args[0])
			if err != nil {
				return err
			}
			validated := doc.Tree.Validated()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatValidationErrors(validated))
			if validated.HasErrors() {
				return &service.ValidationError{Errors: validated.Errors()}
			}
			return nil
		},
	}
}

func newMenuExportCmd(app *App) *cobra.Command {
	var output string
	var published bool

	cmd := &cobra.Command{
		Use:   "export MENU",
		Short: "Export the menu payload as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var payload []domain.RawNode
			if published {
				pubs, err := app.Menus.Publications(ctx, args[0])
				if err != nil {
					return err
				}
				if len(pubs) == 0 {
					return fmt.Errorf("menu %q has never been published", args[0])
				}
				payload = pubs[0].Payload
			} else {
				doc, err := app.Menus.Load(ctx, args[0])
				if err != nil {
					return err
				}
				payload = doc.Tree.Serializable()
			}
			if payload == nil {
				payload = []domain.RawNode{}
			}

			data, err := json.MarshalIndent(payload, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding payload: %w", err)
			}
			data = append(data, '\n')

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d root node(s) to %s\n", len(payload), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().BoolVar(&published, "published", false, "Export the last published revision")

	return cmd
}

func newMenuApplyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "apply MENU FILE",
		Short: "Replace the menu tree with an edited JSON export",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[1], err)
			}
			var raw []domain.RawNode
			if err := json.Unmarshal(data, &raw); err != nil {
				return fmt.Errorf("parsing %s: %w", args[1], err)
			}

			doc, err := app.Menus.Load(ctx, args[0])
			if err != nil {
				return err
			}
			next := &service.Document{Menu: doc.Menu, Tree: tree.Load(raw, doc.Tree.Config(), app.IDs)}
			return saveDocument(cmd, app, next, fmt.Sprintf("Applied %s", args[1]))
		},
	}
}

func newMenuImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a provider catalog, optionally bootstrapping a menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportCatalog(context.Background(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d stage(s) for provider %s\n", result.StageCount, result.Provider)
			if result.Menu != nil {
				fmt.Fprintf(out, "Created menu %s [%s] with %d node(s)\n", result.Menu.Name, shortID(result.Menu.ID), result.NodeCount)
			}
			return nil
		},
	}
}

func newMenuPublishCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "publish MENU",
		Short: "Publish the saved menu revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := app.Menus.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if !m.HasUnpublishedChanges() {
				fmt.Fprintf(cmd.OutOrStdout(), "Menu %s has no unpublished changes.\n", m.Name)
				return nil
			}
			if err := app.confirm(yes, fmt.Sprintf("Publish %s v%d?", m.Name, m.Version)); err != nil {
				return err
			}

			pub, err := app.Menus.Publish(ctx, m.ID)
			if err != nil {
				var verr *service.ValidationError
				if errors.As(err, &verr) {
					if doc, loadErr := app.Menus.Load(ctx, m.ID); loadErr == nil {
						fmt.Fprint(cmd.OutOrStdout(), formatter.FormatValidationErrors(doc.Tree.Validated()))
					}
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published %s v%d\n", m.Name, pub.Version)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newMenuHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history MENU",
		Short: "List published revisions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pubs, err := app.Menus.Publications(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPublications(pubs))
			return nil
		},
	}
}

func newMenuDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete MENU",
		Short: "Delete a menu and its publications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := app.Menus.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.confirm(yes, fmt.Sprintf("Delete menu %s?", m.Name)); err != nil {
				return err
			}
			if err := app.Menus.Delete(ctx, m.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted menu %s\n", m.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

// saveDocument saves doc and reports the outcome. A tree that fails
// validation is printed with its errors and nothing is stored.
func saveDocument(cmd *cobra.Command, app *App, doc *service.Document, done string) error {
	saved, err := app.Menus.Save(context.Background(), doc)
	out := cmd.OutOrStdout()
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) && saved != nil {
			fmt.Fprint(out, formatter.FormatValidationErrors(saved.Tree))
			return fmt.Errorf("menu %s not saved: %w", doc.Menu.Name, service.ErrValidationFailed)
		}
		return err
	}
	fmt.Fprintf(out, "%s. %s saved as v%d\n", done, saved.Menu.Name, saved.Menu.Version)
	return nil
}
