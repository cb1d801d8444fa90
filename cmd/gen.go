package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/robalobadob/bingo/internal/catalog"
	"github.com/robalobadob/bingo/internal/config"
	"github.com/robalobadob/bingo/internal/content"
	"github.com/robalobadob/bingo/internal/game"
	"github.com/robalobadob/bingo/internal/shuffle"
	"github.com/robalobadob/bingo/internal/urlstate"
)

var (
	genSeed       string
	genGridSize   int
	genCategories int64
	genNames      []string
	genJSON       bool
	genBaseURL    string
	genURL        string
)

func init() {
	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Print the grid for a seed",
		Long: `Print the grid a seed, grid size and category selection produce.
Uses the same catalog the server would (CATALOG_DB, CATALOG_FILE or the
built-in one).

Examples:
  bingo gen --seed 4fzyo82mvyr
  bingo gen -s abc123 -g 3 --categories 5
  bingo gen -s abc123 --category Birds --category Bugs --json
  bingo gen --url 'http://localhost:5175/?seed=abc123&gridSize=4&categories=3'`,
		RunE: runGen,
	}

	genCmd.Flags().StringVarP(&genSeed, "seed", "s", "", "Seed (letters and digits); random when empty")
	genCmd.Flags().IntVarP(&genGridSize, "grid-size", "g", urlstate.DefaultGridSize, fmt.Sprintf("Grid size %d-%d", game.MinGridSize, game.MaxGridSize))
	genCmd.Flags().Int64VarP(&genCategories, "categories", "c", catalog.AllCategories, "Category mask (-1 for all)")
	genCmd.Flags().StringSliceVar(&genNames, "category", nil, "Category name (repeatable); overrides --categories")
	genCmd.Flags().BoolVar(&genJSON, "json", false, "Print JSON instead of a table")
	genCmd.Flags().StringVar(&genBaseURL, "base-url", "http://localhost:5175/", "Base URL for the share link")
	genCmd.Flags().StringVar(&genURL, "url", "", "Share link to reproduce; overrides the other grid flags")

	rootCmd.AddCommand(genCmd)
}

// genOutput is the --json shape.
type genOutput struct {
	Config   urlstate.Config `json:"config"`
	ShareURL string          `json:"shareUrl"`
	Cells    [][]string      `json:"cells"`
}

func runGen(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	setupLogging(cmd.ErrOrStderr(), "warn", "console")

	if genURL != "" {
		return runGenURL(cmd, cfg)
	}
	if !game.ValidSize(genGridSize) {
		return fmt.Errorf("grid size must be %d-%d, got %d", game.MinGridSize, game.MaxGridSize, genGridSize)
	}
	seed := strings.TrimSpace(genSeed)
	if seed == "" {
		seed = urlstate.RandomSeed()
	} else if !urlstate.ValidSeed(seed) {
		return fmt.Errorf("invalid seed %q: use letters and digits only", seed)
	}

	c, err := content.Load(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer c.Close()
	cat, err := c.Store.Catalog(cmd.Context())
	if err != nil {
		return err
	}

	mask := genCategories
	if len(genNames) > 0 {
		if unknown := lo.Reject(genNames, func(n string, _ int) bool { return cat.Has(n) }); len(unknown) > 0 {
			return fmt.Errorf("unknown categories: %s", strings.Join(unknown, ", "))
		}
		mask = cat.Mask(genNames)
	}
	return printGen(cmd, cat, urlstate.Config{Seed: seed, GridSize: genGridSize, Categories: mask}, genBaseURL)
}

// runGenURL reproduces the grid of a share link, with the same leniency the
// page applies to its query string.
func runGenURL(cmd *cobra.Command, cfg config.Config) error {
	u, err := url.Parse(genURL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	c, err := content.Load(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer c.Close()
	cat, err := c.Store.Catalog(cmd.Context())
	if err != nil {
		return err
	}
	return printGen(cmd, cat, urlstate.Parse(u.Query(), nil), genURL)
}

func printGen(cmd *cobra.Command, cat *catalog.Catalog, ucfg urlstate.Config, base string) error {
	rows, err := shuffle.Grid(cat, ucfg.Seed, ucfg.GridSize, cat.Selection(ucfg.Categories))
	if err != nil {
		return err
	}
	out := genOutput{
		Config:   ucfg,
		ShareURL: ucfg.ShareURL(base),
		Cells: lo.Map(rows, func(row []catalog.Item, _ int) []string {
			return lo.Map(row, func(it catalog.Item, _ int) string { return it.Description })
		}),
	}
	if genJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return printGrid(cmd.OutOrStdout(), out)
}

// printGrid writes the grid as an aligned table followed by the share link.
func printGrid(w io.Writer, out genOutput) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range out.Cells {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", out.ShareURL)
	return err
}
