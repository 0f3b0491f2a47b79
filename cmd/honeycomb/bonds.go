package main

import (
	"fmt"

	"github.com/philipparndt/gohoneycomb/pkg/analysis"
	"github.com/spf13/cobra"
)

var (
	bondsChannel   int
	bondsCount     int
	bondsLongest   bool
	bondsShortest  bool
	bondsMinLength float64
	bondsMaxLength float64
)

var bondsCmd = &cobra.Command{
	Use:   "bonds [file]",
	Short: "Analyze and measure the C-C bonds of a channel",
	Long:  "Find and measure bonds, including longest, shortest, or bonds within a specific length range.",
	Args:  cobra.ExactArgs(1),
	RunE:  runBonds,
}

func init() {
	rootCmd.AddCommand(bondsCmd)

	bondsCmd.Flags().IntVar(&bondsChannel, "channel", 0, "Channel index (0 is the main channel)")
	bondsCmd.Flags().IntVarP(&bondsCount, "count", "n", 10, "Number of bonds to display")
	bondsCmd.Flags().BoolVarP(&bondsLongest, "longest", "l", false, "Show longest bonds")
	bondsCmd.Flags().BoolVarP(&bondsShortest, "shortest", "s", false, "Show shortest bonds")
	bondsCmd.Flags().Float64Var(&bondsMinLength, "min", 0.0, "Minimum bond length filter")
	bondsCmd.Flags().Float64Var(&bondsMaxLength, "max", 0.0, "Maximum bond length filter")
}

func runBonds(cmd *cobra.Command, args []string) error {
	if bondsCount < 0 {
		return fmt.Errorf("--count must not be negative, got %d", bondsCount)
	}
	_, channels, err := loadChannels(args[0])
	if err != nil {
		return err
	}
	channel, err := pickChannel(channels, bondsChannel)
	if err != nil {
		return err
	}
	result, err := analysis.AnalyzeChannel(channel)
	if err != nil {
		return err
	}

	var bonds []analysis.BondInfo
	var title string

	if bondsLongest {
		bonds = analysis.FindLongestBonds(result, bondsCount)
		title = fmt.Sprintf("Top %d Longest Bonds", len(bonds))
	} else if bondsShortest {
		bonds = analysis.FindShortestBonds(result, bondsCount)
		title = fmt.Sprintf("Top %d Shortest Bonds", len(bonds))
	} else if bondsMaxLength > 0 {
		bonds = analysis.FindBondsByLength(result, bondsMinLength, bondsMaxLength)
		title = fmt.Sprintf("Bonds between %.4f and %.4f Å (found %d)", bondsMinLength, bondsMaxLength, len(bonds))
		if len(bonds) > bondsCount {
			bonds = bonds[:bondsCount]
		}
	} else {
		bonds = result.AllBonds
		title = fmt.Sprintf("All Bonds (showing first %d of %d)", min(bondsCount, len(bonds)), len(bonds))
		if len(bonds) > bondsCount {
			bonds = bonds[:bondsCount]
		}
	}

	fmt.Println(title)
	fmt.Println("====================")
	fmt.Printf("Total bonds in channel: %d\n", len(result.AllBonds))
	fmt.Printf("Min bond length: %s\n", analysis.FormatMeasurement(result.MinBondLength, ""))
	fmt.Printf("Max bond length: %s\n", analysis.FormatMeasurement(result.MaxBondLength, ""))
	fmt.Printf("Avg bond length: %s\n\n", analysis.FormatMeasurement(result.AvgBondLength, ""))

	if len(bonds) == 0 {
		fmt.Println("No bonds found matching the criteria.")
		return nil
	}
	fmt.Printf("%-6s %-6s %-30s %-30s %-10s\n", "Index", "Plane", "Start", "End", "Length")
	fmt.Println("--------------------------------------------------------------------------------------")
	for i, bond := range bonds {
		fmt.Printf("%-6d %-6d %-30s %-30s %-10.4f\n",
			i+1,
			bond.Plane,
			analysis.FormatVector(bond.Start),
			analysis.FormatVector(bond.End),
			bond.Length)
	}
	return nil
}
