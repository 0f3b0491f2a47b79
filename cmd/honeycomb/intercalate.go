package main

import (
	"context"
	"fmt"

	"github.com/philipparndt/gohoneycomb/internal/datfile"
	"github.com/philipparndt/gohoneycomb/pkg/analysis"
	"github.com/philipparndt/gohoneycomb/pkg/intercalation"
	"github.com/spf13/cobra"
)

var (
	intercalateSpecies string
	intercalateOutput  string
	intercalateIndexed bool
	intercalateDetails bool
	intercalateWatch   bool
)

var intercalateCmd = &cobra.Command{
	Use:   "intercalate [file]",
	Short: "Place guest atoms inside the lattice channels",
	Long: `Seed guest atoms in front of the first wall of the main channel, move them
to equidistant positions, and replicate them over the walls of the main
channel and over every other channel of the lattice.

The steps that run are taken from the intercalation section of the
configuration file.`,
	Args: cobra.ExactArgs(1),
	RunE: runIntercalate,
}

func init() {
	rootCmd.AddCommand(intercalateCmd)

	intercalateCmd.Flags().StringVarP(&intercalateSpecies, "species", "s", "", "Guest species (defaults to the configured guest)")
	intercalateCmd.Flags().StringVarP(&intercalateOutput, "output", "o", "", "Write the guest atoms to this .dat file")
	intercalateCmd.Flags().BoolVar(&intercalateIndexed, "indexed", false, "Prefix every written atom with its index")
	intercalateCmd.Flags().BoolVar(&intercalateDetails, "details", false, "Show distances of every guest in the main channel")
	intercalateCmd.Flags().BoolVarP(&intercalateWatch, "watch", "w", false, "Run again whenever the file changes")
}

func runIntercalate(cmd *cobra.Command, args []string) error {
	filename := args[0]
	files := []string{filename}
	if configPath != "" {
		files = append(files, configPath)
	}
	first := true
	return runWatched(cmd.Context(), intercalateWatch, files, func() error {
		if !first {
			if err := loadConfig(); err != nil {
				return err
			}
		}
		first = false
		return intercalate(cmd.Context(), filename)
	})
}

func intercalate(ctx context.Context, filename string) error {
	key := intercalateSpecies
	if key == "" {
		key = cfg.Guest
	}
	table, err := cfg.SpeciesTable()
	if err != nil {
		return err
	}
	species, err := table.Lookup(key)
	if err != nil {
		return err
	}

	lattice, err := datfile.ReadFile(filename)
	if err != nil {
		return err
	}

	engine := intercalation.Engine{
		Species: species,
		Split:   cfg.Split,
		Options: cfg.Intercalation,
		Logger:  logger,
	}
	res, err := engine.Run(ctx, lattice)
	if err != nil {
		return err
	}
	guests := res.Guests()

	fmt.Println("Intercalation")
	fmt.Println("=============")
	fmt.Printf("File: %s\n", filename)
	fmt.Printf("Guest: %s (%s)\n", species.Name, species.Symbol)
	fmt.Printf("Lattice atoms: %d\n", lattice.Len())
	fmt.Printf("Channels: %d\n", len(res.Channels))
	fmt.Printf("Candidates in front of wall 0: %d\n", res.Candidates.Len())
	if res.Optimized.Status != "" {
		fmt.Printf("Optimizer: %s (objective %.6f)\n", res.Optimized.Status, res.Optimized.Objective)
	}
	fmt.Printf("Guests in the main channel: %d\n", res.Channel.Points.Len())
	fmt.Printf("Guests in the structure: %d\n", guests.Len())

	if intercalateDetails {
		infos, err := analysis.AnalyzeGuests(res.Channels[0], res.Channel.Points)
		if err != nil {
			return err
		}
		fmt.Println("\nMain channel guests:")
		fmt.Printf("%-4s %-32s %12s %12s %12s\n", "#", "Position", "To wall", "To carbon", "To guest")
		for i, g := range infos {
			fmt.Printf("%-4d %-32s %12.4f %12.4f %12.4f\n", i, analysis.FormatVector(g.Position), g.MinToPlane, g.MinToLattice, g.MinToGuest)
		}
	}

	if intercalateOutput != "" {
		if err := datfile.WriteFile(intercalateOutput, guests, intercalateIndexed); err != nil {
			return err
		}
		logger.Info("guests saved", "path", intercalateOutput, "count", guests.Len())
	}
	return nil
}
