package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/gohoneycomb/pkg/geometry"
	"github.com/philipparndt/gohoneycomb/pkg/honeycomb"
	"github.com/philipparndt/gohoneycomb/pkg/intercalation"
	"gonum.org/v1/gonum/stat"
)

// GuestInfo holds the distances of one guest atom to its surroundings
type GuestInfo struct {
	Position     geometry.Vector3
	MinToPlane   float64
	MinToLattice float64
	// MinToGuest is +Inf for a lone guest
	MinToGuest float64
}

// AnalyzeGuests measures every guest against the channel walls, the channel
// atoms and the other guests.
func AnalyzeGuests(channel *honeycomb.Channel, guests geometry.Points) ([]GuestInfo, error) {
	planes, err := channel.Planes()
	if err != nil {
		return nil, fmt.Errorf("analyze guests: %w", err)
	}
	infos := make([]GuestInfo, 0, guests.Len())
	for i := 0; i < guests.Len(); i++ {
		g := guests.At(i)
		info := GuestInfo{
			Position:     g,
			MinToPlane:   math.Inf(1),
			MinToLattice: geometry.MinDistanceTo(g, channel.Points()),
			MinToGuest:   math.Inf(1),
		}
		for _, p := range planes {
			if d := math.Abs(p.Params().SignedDistance(g)); d < info.MinToPlane {
				info.MinToPlane = d
			}
		}
		for j := 0; j < guests.Len(); j++ {
			if j == i {
				continue
			}
			if d := g.Distance(guests.At(j)); d < info.MinToGuest {
				info.MinToGuest = d
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Constant is a named value in Å
type Constant struct {
	Name  string
	Value float64
}

// ConstantsTable lists the derived distances of a species. With a lattice,
// it adds the mean guest-carbon distance: the mean of the lattice's average
// nearest-neighbour distance and the species' inter-atom distance.
func ConstantsTable(species intercalation.AtomParams, lattice geometry.Points) []Constant {
	table := []Constant{
		{"Lattice parameter", species.LatticeParam},
		{"Distance between atoms", species.DistBetweenAtoms()},
		{"Distance between layers", species.DistBetweenLayers()},
		{"Min recommended distance between atoms", species.MinRecommendedDist()},
		{"Distance to replace nearby atoms", species.ReplaceNearbyDist()},
		{"Distance to remove too close atoms", species.MinAllowedDist()},
	}
	if lattice.Len() > 1 {
		mean := stat.Mean(geometry.NearestNeighbourDistances(lattice), nil)
		table = append(table, Constant{
			Name:  fmt.Sprintf("Average %s-C distance", species.Symbol),
			Value: (mean + species.DistBetweenAtoms()) / 2,
		})
	}
	return table
}
