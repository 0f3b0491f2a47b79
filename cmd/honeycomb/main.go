package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/philipparndt/gohoneycomb/internal/config"
	"github.com/philipparndt/gohoneycomb/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "honeycomb",
	Short: "Split carbon honeycomb lattices into channels and intercalate guest atoms",
	Long: `honeycomb reads the atom coordinates of a carbon honeycomb lattice
("x y z" rows), splits it into channels, reconstructs the channel walls with
their hexagons and pentagons, and places guest atoms (Al, Ar, Xe, ...) inside
the channels at equidistant positions.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML or TOML config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log every processing stage")
}

func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	return loadConfig()
}

// loadConfig resets cfg to the defaults overlaid with the --config file
func loadConfig() error {
	next := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		next = loaded
		logger.Debug("loaded config", "path", configPath)
	}
	next.Split.Logger = logger
	cfg = next
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
