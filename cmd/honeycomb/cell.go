package main

import (
	"fmt"

	"github.com/philipparndt/gohoneycomb/internal/datfile"
	"github.com/philipparndt/gohoneycomb/pkg/analysis"
	"github.com/philipparndt/gohoneycomb/pkg/intercalation"
	"github.com/spf13/cobra"
)

var (
	cellLatticeOut string
	cellGuestsOut  string
)

var cellCmd = &cobra.Command{
	Use:   "cell [lattice] [guests]",
	Short: "Cut a unit cell from an intercalated structure",
	Long: `Cut the prism spanned by the main channel, its first neighbour, and the two
channels completing the rhombus, keeping the lattice and guest atoms inside.`,
	Args: cobra.ExactArgs(2),
	RunE: runCell,
}

func init() {
	rootCmd.AddCommand(cellCmd)

	cellCmd.Flags().StringVar(&cellLatticeOut, "output-lattice", "", "Write the lattice atoms of the cell to this file")
	cellCmd.Flags().StringVar(&cellGuestsOut, "output-guests", "", "Write the guest atoms of the cell to this file")
}

func runCell(cmd *cobra.Command, args []string) error {
	lattice, channels, err := loadChannels(args[0])
	if err != nil {
		return err
	}
	guests, err := datfile.ReadFile(args[1])
	if err != nil {
		return err
	}
	if err := intercalation.BuildAllPlanes(cmd.Context(), channels, cfg.Intercalation.Workers, logger); err != nil {
		return err
	}

	cell, err := intercalation.CutCell(lattice, guests, channels)
	if err != nil {
		return err
	}

	fmt.Println("Unit Cell")
	fmt.Println("=========")
	for i, c := range cell.Corners {
		fmt.Printf("Corner %d: %s\n", i, analysis.FormatVector(c))
	}
	fmt.Printf("Lattice atoms: %d of %d\n", cell.Lattice.Len(), lattice.Len())
	fmt.Printf("Guest atoms: %d of %d\n", cell.Guests.Len(), guests.Len())
	if cell.Lattice.Len() > 0 {
		fmt.Printf("Guests per carbon: %.4f\n", float64(cell.Guests.Len())/float64(cell.Lattice.Len()))
	}

	return saveCell(cell)
}

func saveCell(cell *intercalation.Cell) error {
	if cellLatticeOut != "" {
		if err := datfile.WriteFile(cellLatticeOut, cell.Lattice.Sorted(), true); err != nil {
			return err
		}
		logger.Info("cell lattice saved", "path", cellLatticeOut)
	}
	if cellGuestsOut != "" {
		if err := datfile.WriteFile(cellGuestsOut, cell.Guests.Sorted(), true); err != nil {
			return err
		}
		logger.Info("cell guests saved", "path", cellGuestsOut)
	}
	return nil
}
