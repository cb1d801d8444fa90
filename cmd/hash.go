package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/bingo/internal/seedhash"
)

var (
	hashSeed  string
	hashDraws int
)

func init() {
	hashCmd := &cobra.Command{
		Use:   "hash",
		Short: "Print the first draws of a seed's generator",
		Long: `Print the 32-bit values the seed generator yields, one per line.
Useful for checking that another client derives the same grids.

Examples:
  bingo hash --seed bingo
  bingo hash -s abc123 -n 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if hashDraws < 0 {
				return fmt.Errorf("number of draws must be >= 0, got %d", hashDraws)
			}
			for _, u := range seedhash.Draws(hashSeed, hashDraws) {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), u); err != nil {
					return err
				}
			}
			return nil
		},
	}

	hashCmd.Flags().StringVarP(&hashSeed, "seed", "s", "", "Seed string (may be empty)")
	hashCmd.Flags().IntVarP(&hashDraws, "number", "n", 5, "Number of draws")

	rootCmd.AddCommand(hashCmd)
}
