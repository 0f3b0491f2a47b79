package main

import (
	"fmt"

	"github.com/philipparndt/gohoneycomb/internal/datfile"
	"github.com/philipparndt/gohoneycomb/pkg/analysis"
	"github.com/philipparndt/gohoneycomb/pkg/geometry"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a lattice file",
	Long:  "Show the atom count, bounding box, dimensions, and nearest-neighbour distance statistics.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	lattice, err := datfile.ReadFile(filename)
	if err != nil {
		return err
	}
	if lattice.Len() == 0 {
		return fmt.Errorf("%s: %w: no atoms", filename, geometry.ErrDegenerate)
	}

	limits := lattice.Limits()
	size := limits.Size()

	fmt.Println("Lattice Information")
	fmt.Println("===================")
	fmt.Printf("File: %s\n\n", filename)

	fmt.Printf("Atoms: %d\n\n", lattice.Len())

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(limits.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(limits.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatVector(lattice.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %s\n", analysis.FormatMeasurement(size.X, ""))
	fmt.Printf("  Depth (Y): %s\n", analysis.FormatMeasurement(size.Y, ""))
	fmt.Printf("  Height (Z): %s\n\n", analysis.FormatMeasurement(size.Z, ""))

	if lattice.Len() > 1 {
		d := geometry.NearestNeighbourDistances(lattice)
		fmt.Println("Nearest-Neighbour Distances:")
		fmt.Printf("  Minimum: %s\n", analysis.FormatMeasurement(floats.Min(d), ""))
		fmt.Printf("  Maximum: %s\n", analysis.FormatMeasurement(floats.Max(d), ""))
		fmt.Printf("  Average: %s\n", analysis.FormatMeasurement(stat.Mean(d, nil), ""))
	}
	return nil
}
