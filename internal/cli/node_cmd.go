package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/menudesk/internal/domain"
	"github.com/alexanderramin/menudesk/internal/mapping"
	"github.com/alexanderramin/menudesk/internal/service"
	"github.com/alexanderramin/menudesk/internal/tree"
	"github.com/alexanderramin/menudesk/internal/validation"
)

func newNodeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Edit menu nodes",
		Long: `Edit menu nodes. Every change is validated against the whole menu and
saved as a new version; a change that leaves the menu invalid is rejected.

Nodes are referenced by their row number in "menu show", by their id (or an
unambiguous prefix), or by their code.`,
	}

	cmd.AddCommand(
		newNodeAddCmd(app),
		newNodeUpdateCmd(app),
		newNodeRemoveCmd(app),
		newNodeMoveCmd(app),
	)

	return cmd
}

// nodeFields are the flags shared by add and update.
type nodeFields struct {
	name, shortName, code string
	gender                string
	hidden, primary       bool
	start, end            string
	translations          map[string]string
}

func (f *nodeFields) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Display name")
	cmd.Flags().StringVar(&f.shortName, "short-name", "", "Short display name")
	cmd.Flags().StringVar(&f.code, "code", "", "URL code")
	cmd.Flags().StringVar(&f.gender, "gender", "", "Gender (male, female, mixed; empty for none)")
	cmd.Flags().BoolVar(&f.hidden, "hidden", false, "Hide the node")
	cmd.Flags().BoolVar(&f.primary, "primary", false, "Mark the season as the stage's primary one")
	cmd.Flags().StringVar(&f.start, "start", "", "Season start date (YYYY-MM-DD, 'none' to clear)")
	cmd.Flags().StringVar(&f.end, "end", "", "Season end date (YYYY-MM-DD, 'none' to clear)")
	cmd.Flags().StringToStringVar(&f.translations, "translate", nil, "Translated names, e.g. de=Fußball")
}

// apply copies every flag the user set onto b. Name, short name and code are
// written in lang.
func (f *nodeFields) apply(cmd *cobra.Command, b *domain.NodeBuilder, lang, defaultLang string) error {
	changed := cmd.Flags().Changed
	translated := lang != defaultLang

	if changed("name") {
		b.SetNameValue(lang, strings.TrimSpace(f.name), translated)
	}
	if changed("short-name") {
		b.SetShortNameValue(lang, strings.TrimSpace(f.shortName), translated)
	}
	if changed("code") {
		b.SetCodeValue(lang, strings.TrimSpace(f.code), translated)
	}
	if changed("gender") {
		if !domain.ValidGenders[f.gender] {
			return fmt.Errorf("invalid gender %q (expected male, female or mixed)", f.gender)
		}
		b.SetGender(domain.Gender(f.gender))
	}
	if changed("hidden") {
		b.SetHidden(f.hidden)
	}
	if changed("primary") {
		b.SetPrimary(f.primary)
	}

	langs := make([]string, 0, len(f.translations))
	for l := range f.translations {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	for _, l := range langs {
		b.SetNameValue(l, strings.TrimSpace(f.translations[l]), l != defaultLang)
	}
	return nil
}

// timeRange merges the --start/--end flags into the node's current range.
func (f *nodeFields) timeRange(cmd *cobra.Command, start, end *time.Time) (*time.Time, *time.Time, error) {
	var err error
	if cmd.Flags().Changed("start") {
		if start, err = parseDateFlag("start", f.start); err != nil {
			return nil, nil, err
		}
	}
	if cmd.Flags().Changed("end") {
		if end, err = parseDateFlag("end", f.end); err != nil {
			return nil, nil, err
		}
	}
	return start, end, nil
}

func parseDateFlag(flag, value string) (*time.Time, error) {
	if value == "" || value == "none" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date %q: %w", flag, value, err)
	}
	return &t, nil
}

// lookupMappings resolves provider:stage keys against the imported catalog.
func lookupMappings(ctx context.Context, app *App, doc *service.Document, keys []string) ([]domain.StageMapping, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	coll, err := app.Stages.Collection(ctx, "", doc, mapping.Filter{})
	if err != nil {
		return nil, err
	}
	out := make([]domain.StageMapping, 0, len(keys))
	for _, key := range keys {
		m, ok := coll.At(coll.IndexOf(strings.TrimSpace(key)))
		if !ok {
			return nil, fmt.Errorf("unknown provider stage %q (import a catalog or check 'stages list')", key)
		}
		out = append(out, m)
	}
	return out, nil
}

func formError(action string, errs []validation.FieldError) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("cannot %s: %s", action, strings.Join(msgs, "; "))
}

func newNodeAddCmd(app *App) *cobra.Command {
	var menuRef, kind, parentRef, stageName, seasonName string
	var mappingKeys []string
	var f nodeFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a category, stage or season",
		Long: `Add a category, stage or season. A new category or stage is only valid
once a season sits below it, so --stage and --season create that branch in
the same step: the season is primary and carries the --mapping stages.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if !domain.ValidNodeKinds[kind] {
				return fmt.Errorf("invalid --kind %q (expected category, stage or season)", kind)
			}
			nodeKind := domain.NodeKind(kind)
			if stageName != "" && nodeKind != domain.KindCategory {
				return fmt.Errorf("--stage only applies to a new category")
			}
			if seasonName != "" && nodeKind == domain.KindSeason {
				return fmt.Errorf("--season does not apply to a new season")
			}
			if seasonName != "" && nodeKind == domain.KindCategory && stageName == "" {
				return fmt.Errorf("--season under a new category needs --stage")
			}

			doc, err := app.Menus.Load(ctx, menuRef)
			if err != nil {
				return err
			}
			t := doc.Tree
			def := t.Config().DefaultLanguage

			parentID, parentKind, err := resolveParent(t, parentRef)
			if err != nil {
				return err
			}
			if !parentKind.CanContain(nodeKind) {
				return fmt.Errorf("a %s cannot hold a %s", parentKind, nodeKind)
			}

			mappings, err := lookupMappings(ctx, app, doc, mappingKeys)
			if err != nil {
				return err
			}
			start, end, err := f.timeRange(cmd, nil, nil)
			if err != nil {
				return err
			}

			// The season, new or chained, takes the season flags.
			var season *domain.MenuNode
			switch {
			case nodeKind == domain.KindSeason:
			case seasonName != "":
				season = domain.NewNodeBuilder(domain.KindSeason, app.IDs, def).
					SetNameValue(def, seasonName, false).
					SetPrimary(true).
					SetTimeRange(start, end).
					SetStageMappings(mappings).
					Build()
			case len(mappingKeys) > 0 || cmd.Flags().Changed("start") || cmd.Flags().Changed("end"):
				return fmt.Errorf("--mapping, --start and --end need a season (use --season)")
			}

			b := domain.NewNodeBuilder(nodeKind, app.IDs, def)
			if err := f.apply(cmd, b, def, def); err != nil {
				return err
			}
			if nodeKind == domain.KindSeason {
				b.SetTimeRange(start, end).SetStageMappings(mappings)
			}
			below := season
			if stageName != "" {
				sb := domain.NewNodeBuilder(domain.KindStage, app.IDs, def).SetNameValue(def, stageName, false)
				if season != nil {
					sb.SetChildren([]*domain.MenuNode{season})
				}
				below = sb.Build()
			}
			if below != nil {
				b.SetChildren([]*domain.MenuNode{below})
			}
			node := b.Build()

			if errs := t.FormErrors(node, parentID, false); len(errs) > 0 {
				return formError("add "+kind, errs)
			}
			if season != nil {
				if errs := t.FormErrors(season, domain.RootID, false); len(errs) > 0 {
					return formError("add season", errs)
				}
			}

			next := t.Insert(node, parentID)
			if next == t {
				return fmt.Errorf("cannot add %s here", kind)
			}
			return saveDocument(cmd, app, &service.Document{Menu: doc.Menu, Tree: next}, fmt.Sprintf("Added %s %s", kind, node.Title))
		},
	}

	cmd.Flags().StringVar(&menuRef, "menu", "", "Menu id or name")
	cmd.Flags().StringVar(&kind, "kind", "", "Node kind: category, stage or season")
	cmd.Flags().StringVar(&parentRef, "parent", "", "Parent node (omit for the top level)")
	cmd.Flags().StringVar(&stageName, "stage", "", "Also create a stage with this name below the new category")
	cmd.Flags().StringVar(&seasonName, "season", "", "Also create a primary season with this name")
	cmd.Flags().StringSliceVar(&mappingKeys, "mapping", nil, "Provider stage for the season, as provider:stage (repeatable)")
	f.register(cmd)
	_ = cmd.MarkFlagRequired("menu")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newNodeUpdateCmd(app *App) *cobra.Command {
	var menuRef, lang string
	var addMappings, removeMappings []string
	var f nodeFields

	cmd := &cobra.Command{
		Use:   "update NODE",
		Short: "Change a node's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			doc, err := app.Menus.Load(ctx, menuRef)
			if err != nil {
				return err
			}
			t := doc.Tree
			def := t.Config().DefaultLanguage
			editLang := def
			if lang != "" {
				view, err := viewIn(t, lang)
				if err != nil {
					return err
				}
				editLang = view.Language()
			}

			node, err := resolveNode(t, args[0])
			if err != nil {
				return err
			}

			b := domain.BuilderFrom(node, def)
			if err := f.apply(cmd, b, editLang, def); err != nil {
				return err
			}
			if node.IsSeason() {
				start, end, err := f.timeRange(cmd, node.StartDate, node.EndDate)
				if err != nil {
					return err
				}
				b.SetTimeRange(start, end)

				added, err := lookupMappings(ctx, app, doc, addMappings)
				if err != nil {
					return err
				}
				for _, m := range added {
					b.AddStageMapping(m)
				}
				for _, key := range removeMappings {
					b.RemoveStageMapping(strings.TrimSpace(key))
				}
			} else if len(addMappings)+len(removeMappings) > 0 {
				return fmt.Errorf("only seasons carry stage mappings")
			}

			updated := b.Build()
			if errs := t.FormErrors(updated, domain.RootID, false); len(errs) > 0 {
				return formError("update "+string(node.Kind), errs)
			}
			next := t.Update(updated)
			return saveDocument(cmd, app, &service.Document{Menu: doc.Menu, Tree: next}, fmt.Sprintf("Updated %s", updated.Title))
		},
	}

	cmd.Flags().StringVar(&menuRef, "menu", "", "Menu id or name")
	cmd.Flags().StringVar(&lang, "lang", "", "Language of --name, --short-name and --code (defaults to the menu's)")
	cmd.Flags().StringSliceVar(&addMappings, "add-mapping", nil, "Provider stage to add, as provider:stage (repeatable)")
	cmd.Flags().StringSliceVar(&removeMappings, "remove-mapping", nil, "Provider stage to remove, as provider:stage (repeatable)")
	f.register(cmd)
	_ = cmd.MarkFlagRequired("menu")

	return cmd
}

func newNodeRemoveCmd(app *App) *cobra.Command {
	var menuRef string
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove NODE",
		Short: "Remove a node and everything below it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.Menus.Load(context.Background(), menuRef)
			if err != nil {
				return err
			}
			node, err := resolveNode(doc.Tree, args[0])
			if err != nil {
				return err
			}

			title := fmt.Sprintf("Remove %s %s?", node.Kind, node.Title)
			if n := len(node.Children); n > 0 {
				title = fmt.Sprintf("Remove %s %s and its %d child node(s)?", node.Kind, node.Title, n)
			}
			if err := app.confirm(yes, title); err != nil {
				return err
			}

			next := doc.Tree.Remove(node.TreeID)
			return saveDocument(cmd, app, &service.Document{Menu: doc.Menu, Tree: next}, fmt.Sprintf("Removed %s", node.Title))
		},
	}

	cmd.Flags().StringVar(&menuRef, "menu", "", "Menu id or name")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	_ = cmd.MarkFlagRequired("menu")

	return cmd
}

func newNodeMoveCmd(app *App) *cobra.Command {
	var menuRef, lang string
	var to int

	cmd := &cobra.Command{
		Use:   "move NODE",
		Short: "Move a node among its siblings",
		Long: `Move a node among its siblings in one language. Moving in the default
language carries along every language that still follows the default order;
moving in another language gives that language its own order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to < 1 {
				return fmt.Errorf("--to must be a position starting at 1")
			}
			doc, err := app.Menus.Load(context.Background(), menuRef)
			if err != nil {
				return err
			}
			t, err := viewIn(doc.Tree, lang)
			if err != nil {
				return err
			}
			node, err := resolveNode(t, args[0])
			if err != nil {
				return err
			}

			next := t.Move(node.TreeID, to-1)
			return saveDocument(cmd, app, &service.Document{Menu: doc.Menu, Tree: next},
				fmt.Sprintf("Moved %s to position %d in %s", node.Title, siblingPosition(next, node.TreeID), t.Language()))
		},
	}

	cmd.Flags().StringVar(&menuRef, "menu", "", "Menu id or name")
	cmd.Flags().StringVar(&lang, "lang", "", "Language whose order changes (defaults to the menu's)")
	cmd.Flags().IntVar(&to, "to", 0, "New position among the siblings, starting at 1")
	_ = cmd.MarkFlagRequired("menu")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func siblingPosition(t *tree.Repository, id domain.TreeID) int {
	loc, ok := t.Find(id)
	if !ok {
		return 0
	}
	return loc.Index + 1
}
