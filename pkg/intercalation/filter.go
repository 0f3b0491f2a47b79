package intercalation

import (
	"math"

	"github.com/philipparndt/gohoneycomb/pkg/geometry"
	"github.com/philipparndt/gohoneycomb/pkg/honeycomb"
)

// ReplaceNearbyAtomsWithOne collapses every group of candidates linked by
// distances below the species' replace threshold into its centroid.
// Groups keep the order of their first member.
func ReplaceNearbyAtomsWithOne(points geometry.Points, species AtomParams) geometry.Points {
	return replaceNearby(points, species.ReplaceNearbyDist())
}

func replaceNearby(points geometry.Points, threshold float64) geometry.Points {
	for {
		merged := mergeOnce(points, threshold)
		if merged.Len() == points.Len() {
			return merged
		}
		// centroids of neighbouring groups may now be close to each other
		points = merged
	}
}

func mergeOnce(points geometry.Points, threshold float64) geometry.Points {
	n := points.Len()
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if points.At(i).Distance(points.At(j)) < threshold {
				if ri, rj := find(i), find(j); ri != rj {
					if ri < rj {
						parent[rj] = ri
					} else {
						parent[ri] = rj
					}
				}
			}
		}
	}

	groups := make(map[int][]geometry.Vector3)
	var order []int
	for i := 0; i < n; i++ {
		r := find(i)
		if _, ok := groups[r]; !ok {
			order = append(order, r)
		}
		groups[r] = append(groups[r], points.At(i))
	}
	out := make([]geometry.Vector3, 0, len(order))
	for _, r := range order {
		out = append(out, geometry.Centroid(groups[r]))
	}
	return geometry.NewPoints(out)
}

// RemoveTooCloseAtoms keeps candidates in order, dropping any that is closer
// than the species' minimum allowed distance to the lattice or to a
// candidate already kept. lattice may be empty.
func RemoveTooCloseAtoms(points, lattice geometry.Points, species AtomParams) geometry.Points {
	minDist := species.MinAllowedDist()
	var kept []geometry.Vector3
	for i := 0; i < points.Len(); i++ {
		p := points.At(i)
		if lattice.Len() > 0 && geometry.MinDistanceTo(p, lattice) < minDist {
			continue
		}
		tooClose := false
		for _, k := range kept {
			if p.Distance(k) < minDist {
				tooClose = true
				break
			}
		}
		if !tooClose {
			kept = append(kept, p)
		}
	}
	return geometry.NewPoints(kept)
}

// FilterRelatedChannelPlanes keeps candidates lying on the channel-axis side
// of every wall, at least margin away from the nearest wall.
func FilterRelatedChannelPlanes(points geometry.Points, channel *honeycomb.Channel, margin float64) (geometry.Points, error) {
	planes, err := channel.Planes()
	if err != nil {
		return geometry.Points{}, err
	}
	center := channel.Center()
	return points.Filter(func(p geometry.Vector3) bool {
		return insideDistance(p, planes, center) >= margin
	}), nil
}

// insideDistance is the smallest distance from p to a wall, negative when p
// is on the outer side of some wall.
func insideDistance(p geometry.Vector3, planes []*honeycomb.Plane, center geometry.Vector3) float64 {
	nearest := math.Inf(1)
	for _, plane := range planes {
		d := plane.Params().SignedDistance(p) * plane.DirectionToCenter(center)
		if d < nearest {
			nearest = d
		}
	}
	return nearest
}

// FilterRelatedLattice keeps candidates at least minDist away from every
// lattice atom.
func FilterRelatedLattice(points, lattice geometry.Points, minDist float64) geometry.Points {
	return points.Filter(func(p geometry.Vector3) bool {
		return geometry.MinDistanceTo(p, lattice) >= minDist
	})
}
