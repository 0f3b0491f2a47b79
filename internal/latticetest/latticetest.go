// Package latticetest builds synthetic carbon honeycomb lattices for tests.
//
// A channel is a regular hexagon in the xy-plane whose six walls are
// graphene strips standing on the z axis. Each strip has hexagons with
// vertical bonds; corner atom columns are shared by neighbouring walls.
package latticetest

import (
	"math"

	"github.com/philipparndt/gohoneycomb/pkg/geometry"
)

// Bond is the C-C distance used by the fixtures (Å)
const Bond = 1.42

// Spec describes a hexagonal channel
type Spec struct {
	Center geometry.XY
	// HexagonsPerWall is the number of hexagons in the bottom row of a wall
	HexagonsPerWall int
	// Rows is the number of hexagon rows stacked along z
	Rows int
}

// Side returns the length of a channel wall
func (s Spec) Side() float64 {
	return float64(2*s.HexagonsPerWall) * colStep()
}

// Corners returns the six channel corners, counter-clockwise from +x
func (s Spec) Corners() []geometry.XY {
	r := s.Side()
	corners := make([]geometry.XY, 6)
	for k := range corners {
		a := float64(k) * math.Pi / 3
		corners[k] = geometry.XY{X: s.Center.X + r*math.Cos(a), Y: s.Center.Y + r*math.Sin(a)}
	}
	return corners
}

// Apothem is the distance from the channel center to each wall
func (s Spec) Apothem() float64 {
	return s.Side() * math.Sqrt(3) / 2
}

// HexagonsPerPlane is the number of complete rings in each wall
func (s Spec) HexagonsPerPlane() int {
	n := 0
	for row := 0; row < s.Rows; row++ {
		if row%2 == 0 {
			n += s.HexagonsPerWall
		} else {
			n += s.HexagonsPerWall - 1
		}
	}
	return n
}

// Channel returns the atoms of the channel, without duplicates
func (s Spec) Channel() []geometry.Vector3 {
	corners := s.Corners()
	var pts []geometry.Vector3
	for k := range corners {
		pts = append(pts, Wall(corners[k], corners[(k+1)%6], s.HexagonsPerWall, s.Rows)...)
	}
	return geometry.NewPoints(pts).Unique().Slice()
}

// Wall returns the graphene strip between corners a and b
func Wall(a, b geometry.XY, hexagons, rows int) []geometry.Vector3 {
	steps := 2 * hexagons
	type node struct{ iu, iz int } // u in column steps, z in half bonds
	seen := make(map[node]bool)
	var nodes []node
	add := func(iu, iz int) {
		n := node{iu, iz}
		if !seen[n] {
			seen[n] = true
			nodes = append(nodes, n)
		}
	}
	for row := 0; row < rows; row++ {
		zc := 3 * row // 1.5 bonds
		first, count := 1, hexagons
		if row%2 == 1 {
			first, count = 2, hexagons-1
		}
		for k := 0; k < count; k++ {
			uc := first + 2*k
			add(uc, zc+2)
			add(uc, zc-2)
			add(uc-1, zc+1)
			add(uc+1, zc+1)
			add(uc-1, zc-1)
			add(uc+1, zc-1)
		}
	}

	pts := make([]geometry.Vector3, 0, len(nodes))
	for _, n := range nodes {
		var xy geometry.XY
		switch n.iu {
		case 0:
			xy = a
		case steps:
			xy = b
		default:
			t := float64(n.iu) / float64(steps)
			xy = geometry.XY{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
		}
		pts = append(pts, geometry.NewVector3(xy.X, xy.Y, float64(n.iz)*Bond/2))
	}
	return pts
}

// Neighbour returns the channel sharing wall k (counter-clockwise from the
// wall between corners 0 and 1).
func (s Spec) Neighbour(k int) Spec {
	a := math.Pi/6 + float64(k)*math.Pi/3
	d := 2 * s.Apothem()
	n := s
	n.Center = geometry.XY{X: s.Center.X + d*math.Cos(a), Y: s.Center.Y + d*math.Sin(a)}
	return n
}

// Lattice joins the atoms of several channels. Coordinates are rounded to
// 1e-9 Å so walls shared by two channels collapse into one set of atoms.
func Lattice(specs ...Spec) geometry.Points {
	var pts []geometry.Vector3
	for _, s := range specs {
		pts = append(pts, s.Channel()...)
	}
	round := func(v float64) float64 { return math.Round(v*1e9) / 1e9 }
	return geometry.NewPoints(pts).Map(func(v geometry.Vector3) geometry.Vector3 {
		return geometry.NewVector3(round(v.X), round(v.Y), round(v.Z))
	}).Unique()
}

func colStep() float64 {
	return Bond * math.Sqrt(3) / 2
}
