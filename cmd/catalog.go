package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/bingo/assets"
	"github.com/robalobadob/bingo/internal/catalog"
	"github.com/robalobadob/bingo/internal/store"
)

var (
	importDB   string
	importFrom string
)

func init() {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the SQLite catalog",
	}

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the catalog in a SQLite database",
		Long: `Import a JSON catalog into a SQLite database, replacing what it held.
Category order in the file becomes the bit order of share-link masks.

Examples:
  bingo catalog import --db ./data/catalog.db
  bingo catalog import --db ./data/catalog.db --from ./my-catalog.json`,
		RunE: runCatalogImport,
	}
	importCmd.Flags().StringVar(&importDB, "db", "./data/catalog.db", "SQLite database path")
	importCmd.Flags().StringVar(&importFrom, "from", "", "JSON catalog file; built-in catalog when empty")

	catalogCmd.AddCommand(importCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	setupLogging(cmd.ErrOrStderr(), "info", "console")

	var (
		cat *catalog.Catalog
		err error
	)
	if importFrom != "" {
		cat, err = catalog.LoadFile(importFrom)
	} else {
		cat, err = assets.DefaultCatalog()
	}
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}

	db, err := store.OpenSQLite(importDB)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Import(cmd.Context(), cat); err != nil {
		return err
	}
	log.Info().Str("db", importDB).Int("categories", cat.Len()).Int("items", cat.Size(cat.Order())).Msg("catalog imported")
	return nil
}
