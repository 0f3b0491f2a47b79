package main

import (
	"fmt"
	"math"

	"github.com/philipparndt/gohoneycomb/internal/datfile"
	"github.com/philipparndt/gohoneycomb/pkg/analysis"
	"github.com/philipparndt/gohoneycomb/pkg/geometry"
	"github.com/spf13/cobra"
)

var (
	point1X, point1Y, point1Z float64
	point2X, point2Y, point2Z float64
)

var measureCmd = &cobra.Command{
	Use:   "measure [file]",
	Short: "Measure distance between two points",
	Long: `Measure the straight-line distance between two 3D points and report the
lattice atoms nearest to each of them.`,
	Args: cobra.ExactArgs(1),
	RunE: runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().Float64Var(&point1X, "x1", 0.0, "X coordinate of first point")
	measureCmd.Flags().Float64Var(&point1Y, "y1", 0.0, "Y coordinate of first point")
	measureCmd.Flags().Float64Var(&point1Z, "z1", 0.0, "Z coordinate of first point")
	measureCmd.Flags().Float64Var(&point2X, "x2", 0.0, "X coordinate of second point")
	measureCmd.Flags().Float64Var(&point2Y, "y2", 0.0, "Y coordinate of second point")
	measureCmd.Flags().Float64Var(&point2Z, "z2", 0.0, "Z coordinate of second point")

	measureCmd.MarkFlagsRequiredTogether("x1", "y1", "z1", "x2", "y2", "z2")
}

func runMeasure(cmd *cobra.Command, args []string) error {
	p1 := geometry.NewVector3(point1X, point1Y, point1Z)
	p2 := geometry.NewVector3(point2X, point2Y, point2Z)

	lattice, err := datfile.ReadFile(args[0])
	if err != nil {
		return err
	}

	fmt.Println("Point-to-Point Measurement")
	fmt.Println("==========================")

	nearest1, dist1 := analysis.FindNearestAtom(lattice, p1)
	nearest2, dist2 := analysis.FindNearestAtom(lattice, p2)

	fmt.Printf("\nPoint 1: %s\n", analysis.FormatVector(p1))
	if !math.IsInf(dist1, 1) {
		fmt.Printf("  Nearest atom: %s (distance: %s)\n", analysis.FormatVector(nearest1), analysis.FormatMeasurement(dist1, ""))
	}

	fmt.Printf("\nPoint 2: %s\n", analysis.FormatVector(p2))
	if !math.IsInf(dist2, 1) {
		fmt.Printf("  Nearest atom: %s (distance: %s)\n", analysis.FormatVector(nearest2), analysis.FormatMeasurement(dist2, ""))
	}

	distance, err := geometry.DistanceBetween([]float64{p1.X, p1.Y, p1.Z}, []float64{p2.X, p2.Y, p2.Z})
	if err != nil {
		return err
	}
	fmt.Printf("\nDirect distance: %s\n", analysis.FormatMeasurement(distance, ""))

	if !math.IsInf(dist1, 1) && !math.IsInf(dist2, 1) {
		fmt.Printf("Distance between nearest atoms: %s\n", analysis.FormatMeasurement(nearest1.Distance(nearest2), ""))
	}
	return nil
}
