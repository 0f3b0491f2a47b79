package main

import (
	"fmt"
	"path/filepath"

	"github.com/philipparndt/gohoneycomb/internal/datfile"
	"github.com/philipparndt/gohoneycomb/pkg/analysis"
	"github.com/spf13/cobra"
)

var (
	planesChannel int
	planesHoles   bool
	planesOutDir  string
)

var planesCmd = &cobra.Command{
	Use:   "planes [file]",
	Short: "Reconstruct the walls of a channel",
	Long: `Show the walls of a channel ordered around its axis: plane equation,
distance from the axis, angle to the next wall, ring counts, and the edge
holes left where the lattice is cut.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlanes,
}

func init() {
	rootCmd.AddCommand(planesCmd)

	planesCmd.Flags().IntVarP(&planesChannel, "channel", "n", 0, "Channel index (0 is the main channel)")
	planesCmd.Flags().BoolVar(&planesHoles, "holes", false, "List the edge holes of every wall")
	planesCmd.Flags().StringVarP(&planesOutDir, "output-dir", "o", "", "Write the atoms of every wall to plane_<n>.dat in this directory")
}

func runPlanes(cmd *cobra.Command, args []string) error {
	_, channels, err := loadChannels(args[0])
	if err != nil {
		return err
	}
	channel, err := pickChannel(channels, planesChannel)
	if err != nil {
		return err
	}
	planes, err := channel.Planes()
	if err != nil {
		return err
	}
	report, err := analysis.AnalyzeChannel(channel)
	if err != nil {
		return err
	}

	fmt.Printf("Channel #%d Planes\n", planesChannel)
	fmt.Println("==================")
	fmt.Printf("Center: %s\n", analysis.FormatVector(report.Center))
	for i, d := range report.EdgeDistances {
		fmt.Printf("Distance to edge %d: %s\n", i, analysis.FormatMeasurement(d, ""))
	}
	fmt.Println()

	for i, p := range planes {
		info := report.Planes[i]
		params := p.Params()
		fmt.Printf("Plane #%d:\n", i)
		fmt.Printf("  Equation: %.4fx %+.4fy %+.4fz %+.4f = 0\n", params.A, params.B, params.C, params.D)
		fmt.Printf("  Atoms: %d\n", info.Atoms)
		fmt.Printf("  Distance to center: %s\n", analysis.FormatMeasurement(info.DistanceToCenter, ""))
		fmt.Printf("  Angle to next plane: %.1f°\n", info.AngleToNext)
		fmt.Printf("  Hexagons: %d, Pentagons: %d\n", info.Hexagons, info.Pentagons)
		fmt.Printf("  Edge holes: %d\n", info.EdgeHoles)
		if planesHoles {
			holes := p.EdgeHoles()
			for j := 0; j < holes.Len(); j++ {
				fmt.Printf("    %s\n", analysis.FormatVector(holes.At(j)))
			}
		}
		fmt.Println()

		if planesOutDir != "" {
			path := filepath.Join(planesOutDir, fmt.Sprintf("plane_%d.dat", i))
			if err := datfile.WriteFile(path, p.Points().Sorted(), true); err != nil {
				return err
			}
		}
	}
	return nil
}
