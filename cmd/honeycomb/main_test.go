package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/gohoneycomb/internal/config"
	"github.com/philipparndt/gohoneycomb/internal/datfile"
	"github.com/philipparndt/gohoneycomb/internal/latticetest"
	"github.com/philipparndt/gohoneycomb/pkg/intercalation"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with fresh flag values
func execute(t *testing.T, args ...string) error {
	t.Helper()
	configPath, verbose = "", false
	channelsWatch, channelsOutDir = false, ""
	intercalateSpecies, intercalateOutput = "", ""
	intercalateIndexed, intercalateDetails, intercalateWatch = false, false, false
	cellLatticeOut, cellGuestsOut = "", ""
	constantsSpecies, constantsLattice = "", ""
	bondsCount = 10

	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func writeLattice(t *testing.T) string {
	t.Helper()
	main := latticetest.Spec{HexagonsPerWall: 2, Rows: 2}
	path := filepath.Join(t.TempDir(), "lattice.dat")
	require.NoError(t, datfile.WriteFile(path, latticetest.Lattice(main, main.Neighbour(0), main.Neighbour(1)), false))
	return path
}

func TestChannelsCommandWritesChannels(t *testing.T) {
	lattice := writeLattice(t)
	dir := t.TempDir()

	require.NoError(t, execute(t, "channels", lattice, "-o", dir))

	points, err := datfile.ReadFile(filepath.Join(dir, "channel_0.dat"))
	require.NoError(t, err)
	if points.Len() == 0 {
		t.Errorf("expected atoms in channel_0.dat, got none")
	}
}

func TestIntercalateCommand(t *testing.T) {
	lattice := writeLattice(t)
	out := filepath.Join(t.TempDir(), "guests.dat")

	require.NoError(t, execute(t, "intercalate", lattice, "-o", out, "--indexed", "--details"))

	guests, err := datfile.ReadFile(out)
	require.NoError(t, err)
	if guests.Len() == 0 {
		t.Errorf("expected guest atoms, got none")
	}

	cellGuests := filepath.Join(t.TempDir(), "cell_guests.dat")
	require.NoError(t, execute(t, "cell", lattice, out, "--output-guests", cellGuests))
	_, err = os.Stat(cellGuests)
	require.NoError(t, err)
}

func TestIntercalateUnknownSpecies(t *testing.T) {
	lattice := writeLattice(t)

	err := execute(t, "intercalate", lattice, "--species", "he")
	if !errors.Is(err, intercalation.ErrUnknownSpecies) {
		t.Errorf("expected ErrUnknownSpecies, got %v", err)
	}
}

func TestConfigFormatError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "honeycomb.ini")
	require.NoError(t, os.WriteFile(path, []byte("guest = al\n"), 0o644))

	err := execute(t, "constants", "--config", path)
	if !errors.Is(err, config.ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

func TestConstantsCommand(t *testing.T) {
	require.NoError(t, execute(t, "constants", "-s", "xe"))
	require.NoError(t, execute(t, "constants", "--lattice", writeLattice(t)))
}

func TestBondsRejectsNegativeCount(t *testing.T) {
	err := execute(t, "bonds", writeLattice(t), "--count", "-1")
	if err == nil || !strings.Contains(err.Error(), "--count") {
		t.Errorf("expected a --count error, got %v", err)
	}
}
