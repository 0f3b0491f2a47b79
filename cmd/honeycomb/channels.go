package main

import (
	"fmt"
	"path/filepath"

	"github.com/philipparndt/gohoneycomb/internal/datfile"
	"github.com/philipparndt/gohoneycomb/pkg/analysis"
	"github.com/spf13/cobra"
)

var (
	channelsWatch  bool
	channelsOutDir string
)

var channelsCmd = &cobra.Command{
	Use:   "channels [file]",
	Short: "Split a lattice into channels",
	Long: `Split the lattice into channels and report, per channel, its center,
walls, rings, and distance statistics. The channel holding the origin is
listed first.`,
	Args: cobra.ExactArgs(1),
	RunE: runChannels,
}

func init() {
	rootCmd.AddCommand(channelsCmd)

	channelsCmd.Flags().BoolVarP(&channelsWatch, "watch", "w", false, "Run again whenever the file changes")
	channelsCmd.Flags().StringVarP(&channelsOutDir, "output-dir", "o", "", "Write the atoms of every channel to channel_<n>.dat in this directory")
}

func runChannels(cmd *cobra.Command, args []string) error {
	filename := args[0]
	return runWatched(cmd.Context(), channelsWatch, []string{filename}, func() error {
		return reportChannels(filename)
	})
}

func reportChannels(filename string) error {
	lattice, channels, err := loadChannels(filename)
	if err != nil {
		return err
	}

	fmt.Println("Channels")
	fmt.Println("========")
	fmt.Printf("File: %s\n", filename)
	fmt.Printf("Atoms: %d\n", lattice.Len())
	fmt.Printf("Channels: %d\n\n", len(channels))

	for i, c := range channels {
		fmt.Printf("Channel #%d:\n", i)
		fmt.Printf("  Center: %s\n", analysis.FormatVector(c.Center()))
		fmt.Printf("  Atoms: %d\n", c.Points().Len())

		report, err := analysis.AnalyzeChannel(c)
		if err != nil {
			logger.Warn("cannot analyze channel", "channel", i, "error", err)
			fmt.Println()
			continue
		}
		fmt.Printf("  Planes: %d\n", len(report.Planes))
		fmt.Printf("  Hexagons: %d\n", report.Hexagons)
		fmt.Printf("  Pentagons: %d\n", report.Pentagons)
		fmt.Printf("  Radius: %s (std dev %.4f)\n", analysis.FormatMeasurement(report.Radius, ""), report.RadiusStdDev)
		fmt.Printf("  Average distance between atoms: %s\n", analysis.FormatMeasurement(report.AvgClosestAtomDist, ""))
		fmt.Printf("  Average distance between hexagon centers: %s\n", analysis.FormatMeasurement(report.AvgClosestHexagonDist, ""))
		fmt.Printf("  Min distance between hexagon layers: %s\n\n", analysis.FormatMeasurement(report.MinHexagonLayerDistance, ""))

		if channelsOutDir != "" {
			path := filepath.Join(channelsOutDir, fmt.Sprintf("channel_%d.dat", i))
			if err := datfile.WriteFile(path, c.Points().Sorted(), true); err != nil {
				return err
			}
			logger.Info("channel saved", "path", path)
		}
	}
	return nil
}
