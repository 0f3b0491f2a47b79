package main

import (
	"fmt"
	"sort"

	"github.com/philipparndt/gohoneycomb/pkg/analysis"
	"github.com/philipparndt/gohoneycomb/pkg/honeycomb"
	"github.com/spf13/cobra"
)

var (
	polyChannel  int
	polyCount    int
	polyLargest  bool
	polySmallest bool
)

type polygonInfo struct {
	Plane     int
	Kind      honeycomb.PolygonKind
	Center    string
	Perimeter float64
}

var polygonsCmd = &cobra.Command{
	Use:   "polygons [file]",
	Short: "List the hexagons and pentagons of a channel",
	Long:  "Display the rings found in every wall of a channel with their center and perimeter.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPolygons,
}

func init() {
	rootCmd.AddCommand(polygonsCmd)

	polygonsCmd.Flags().IntVar(&polyChannel, "channel", 0, "Channel index (0 is the main channel)")
	polygonsCmd.Flags().IntVarP(&polyCount, "count", "n", 10, "Number of rings to display")
	polygonsCmd.Flags().BoolVarP(&polyLargest, "largest", "l", false, "Show largest rings by perimeter")
	polygonsCmd.Flags().BoolVarP(&polySmallest, "smallest", "s", false, "Show smallest rings by perimeter")
}

func runPolygons(cmd *cobra.Command, args []string) error {
	_, channels, err := loadChannels(args[0])
	if err != nil {
		return err
	}
	channel, err := pickChannel(channels, polyChannel)
	if err != nil {
		return err
	}
	planes, err := channel.Planes()
	if err != nil {
		return err
	}

	var rings []polygonInfo
	for i, p := range planes {
		for _, poly := range append(p.Hexagons(), p.Pentagons()...) {
			pts := poly.Points()
			perimeter := 0.0
			for j := range pts {
				perimeter += pts[j].Distance(pts[(j+1)%len(pts)])
			}
			rings = append(rings, polygonInfo{
				Plane:     i,
				Kind:      poly.Kind,
				Center:    analysis.FormatVector(poly.Center()),
				Perimeter: perimeter,
			})
		}
	}

	if polyLargest {
		sort.SliceStable(rings, func(i, j int) bool { return rings[i].Perimeter > rings[j].Perimeter })
	} else if polySmallest {
		sort.SliceStable(rings, func(i, j int) bool { return rings[i].Perimeter < rings[j].Perimeter })
	}

	count := min(polyCount, len(rings))
	var title string
	if polyLargest {
		title = fmt.Sprintf("Top %d Largest Rings", count)
	} else if polySmallest {
		title = fmt.Sprintf("Top %d Smallest Rings", count)
	} else {
		title = fmt.Sprintf("First %d Rings", count)
	}

	fmt.Println(title)
	fmt.Println("====================")
	fmt.Printf("Total rings: %d\n\n", len(rings))

	for _, r := range rings[:count] {
		fmt.Printf("%s in plane #%d:\n", r.Kind, r.Plane)
		fmt.Printf("  Center: %s\n", r.Center)
		fmt.Printf("  Perimeter: %s\n\n", analysis.FormatMeasurement(r.Perimeter, ""))
	}
	return nil
}
