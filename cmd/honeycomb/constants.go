package main

import (
	"fmt"

	"github.com/philipparndt/gohoneycomb/internal/datfile"
	"github.com/philipparndt/gohoneycomb/pkg/analysis"
	"github.com/philipparndt/gohoneycomb/pkg/geometry"
	"github.com/philipparndt/gohoneycomb/pkg/intercalation"
	"github.com/spf13/cobra"
)

var (
	constantsSpecies string
	constantsLattice string
)

var constantsCmd = &cobra.Command{
	Use:   "constants",
	Short: "Show the distances derived for each guest species",
	Long: `Print the lattice parameter and the derived distances of every configured
species, or of one with --species. With --lattice, the mean guest-carbon
distance for that lattice is added.`,
	Args: cobra.NoArgs,
	RunE: runConstants,
}

func init() {
	rootCmd.AddCommand(constantsCmd)

	constantsCmd.Flags().StringVarP(&constantsSpecies, "species", "s", "", "Species key (al, ar, xe, ...)")
	constantsCmd.Flags().StringVarP(&constantsLattice, "lattice", "l", "", "Lattice file for the guest-carbon distance")
}

func runConstants(cmd *cobra.Command, args []string) error {
	table, err := cfg.SpeciesTable()
	if err != nil {
		return err
	}
	keys := table.Keys()
	if constantsSpecies != "" {
		keys = []string{constantsSpecies}
	}

	var lattice geometry.Points
	if constantsLattice != "" {
		if lattice, err = datfile.ReadFile(constantsLattice); err != nil {
			return err
		}
	}

	for _, key := range keys {
		species, err := table.Lookup(key)
		if err != nil {
			return err
		}
		printConstants(species, lattice)
	}
	return nil
}

func printConstants(species intercalation.AtomParams, lattice geometry.Points) {
	title := fmt.Sprintf("%s (%s)", species.Name, species.Symbol)
	fmt.Println(title)
	for range title {
		fmt.Print("=")
	}
	fmt.Println()
	for _, c := range analysis.ConstantsTable(species, lattice) {
		fmt.Printf("  %-42s %s\n", c.Name+":", analysis.FormatMeasurement(c.Value, ""))
	}
	fmt.Println()
}
