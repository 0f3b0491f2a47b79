package intercalation

import (
	"testing"

	"github.com/philipparndt/gohoneycomb/internal/latticetest"
	"github.com/philipparndt/gohoneycomb/pkg/geometry"
	"github.com/philipparndt/gohoneycomb/pkg/honeycomb"
	"github.com/stretchr/testify/require"
)

func aluminium() AtomParams {
	return DefaultSpecies()["al"]
}

// singleChannel is one channel of six walls, each with three hexagons
func singleChannel(t *testing.T) (geometry.Points, *honeycomb.Channel) {
	t.Helper()
	lattice := latticetest.Lattice(latticetest.Spec{HexagonsPerWall: 2, Rows: 2})
	channels, err := honeycomb.SplitIntoChannels(lattice, honeycomb.DefaultSplitConfig())
	require.NoError(t, err)
	require.Len(t, channels, 1)
	return lattice, channels[0]
}

// threeChannels are three channels meeting at one corner of the main one
func threeChannels() (latticetest.Spec, geometry.Points) {
	main := latticetest.Spec{HexagonsPerWall: 2, Rows: 2}
	return main, latticetest.Lattice(main, main.Neighbour(0), main.Neighbour(1))
}

func minPairDistance(points geometry.Points) float64 {
	best := 1e300
	for i := 0; i < points.Len(); i++ {
		for j := i + 1; j < points.Len(); j++ {
			if d := points.At(i).Distance(points.At(j)); d < best {
				best = d
			}
		}
	}
	return best
}

func wallCandidates(t *testing.T, channel *honeycomb.Channel, species AtomParams) geometry.Points {
	t.Helper()
	clusters, err := BuildNearPlanes(channel, 1, 1, species)
	require.NoError(t, err)
	candidates := ReplaceNearbyAtomsWithOne(Merge(clusters), species)
	candidates, err = FilterRelatedChannelPlanes(candidates, channel, species.MinAllowedDist())
	require.NoError(t, err)
	candidates = RemoveTooCloseAtoms(candidates, channel.Points(), species)
	require.Positive(t, candidates.Len())
	return candidates
}

func channels(c ...*honeycomb.Channel) []*honeycomb.Channel {
	return c
}
