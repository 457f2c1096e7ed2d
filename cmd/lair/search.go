package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/five82/lair/internal/app"
	"github.com/five82/lair/internal/catalog"
	"github.com/five82/lair/internal/filter"
	"github.com/five82/lair/internal/state"
)

type searchFlags struct {
	category  string
	rarity    string
	abilities []string
	favorites bool
}

func newSearchCmd(g *globalFlags) *cobra.Command {
	f := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Print the dragons matching a search",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var term string
			if len(args) == 1 {
				term = args[0]
			}
			return runSearch(cmd, g, f, term)
		},
	}
	cmd.Flags().StringVar(&f.category, "category", "", "dragon type")
	cmd.Flags().StringVar(&f.rarity, "rarity", "", "common, rare or legendary")
	cmd.Flags().StringSliceVar(&f.abilities, "ability", nil, "ability (repeatable, matches any)")
	cmd.Flags().BoolVar(&f.favorites, "favorites", false, "only show favorites")
	return cmd
}

func runSearch(cmd *cobra.Command, g *globalFlags, f *searchFlags, term string) (err error) {
	ctx := cmd.Context()
	rt, err := app.Open(ctx, g.options())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := app.LoadCatalog(ctx, rt.Store, rt.Config.Catalog, rt.Logger); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	types := filter.Types(rt.Store.Catalog())
	patch := filter.Patch{
		Term:     filter.String(term),
		Category: filter.String(resolveFold(f.category, types)),
		Rarity:   filter.String(strings.ToLower(f.rarity)),
	}
	if len(f.abilities) > 0 {
		patch.Abilities = filter.Strings(f.abilities...)
	}
	rt.Store.Dispatch(state.UpdateFilter{Patch: patch})

	items := rt.Store.FilteredView()
	if f.favorites {
		kept := items[:0]
		for _, it := range items {
			if rt.Store.IsFavorite(it.ID) {
				kept = append(kept, it)
			}
		}
		items = kept
	}

	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "No dragons match.")
		return nil
	}
	fmt.Fprintln(out, renderTable(items, rt.Store.IsFavorite))
	fmt.Fprintf(out, "%d of %d dragons\n", len(items), len(rt.Store.Catalog()))
	return nil
}

// resolveFold maps value onto the matching entry of known ignoring case so
// "strike" finds the "Strike" type.
func resolveFold(value string, known []string) string {
	for _, k := range known {
		if strings.EqualFold(k, value) {
			return k
		}
	}
	return value
}

func renderTable(items []catalog.Item, isFavorite func(string) bool) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		fav := ""
		if isFavorite(it.ID) {
			fav = "★"
		}
		rows = append(rows, []string{
			fav,
			it.Name,
			it.Type,
			string(it.Rarity),
			strings.Join(it.Abilities, ", "),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "NAME", "TYPE", "RARITY", "ABILITIES").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}
