package intercalation

import (
	"fmt"
	"math"

	"github.com/philipparndt/gohoneycomb/pkg/geometry"
	"github.com/philipparndt/gohoneycomb/pkg/honeycomb"
)

// Cell is a unit cell cut from an intercalated structure
type Cell struct {
	// Corners are the four channel centers spanning the cell, in ring order
	Corners []geometry.Vector3
	Lattice geometry.Points
	Guests  geometry.Points
}

// CutCell keeps the lattice and guest atoms inside the vertical prism
// spanned by the main channel center, its first sibling, and the two
// channel centers completing the rhombus (full or edge channels).
func CutCell(lattice, guests geometry.Points, channels []*honeycomb.Channel) (*Cell, error) {
	if len(channels) < 2 {
		return nil, fmt.Errorf("cut cell: %w: need 2 full channels, got %d", geometry.ErrDegenerate, len(channels))
	}
	edges, err := EdgeChannelCenters(lattice, channels)
	if err != nil {
		return nil, fmt.Errorf("cut cell: %w", err)
	}

	c0, c1 := channels[0].Center(), channels[1].Center()
	available := append([]geometry.Vector3(nil), edges...)
	for _, c := range channels {
		available = append(available, c.Center())
	}
	v := c1.Sub(c0)
	tol := v.Length() * 0.1

	find := func(p geometry.Vector3) (geometry.Vector3, bool) {
		for _, a := range available {
			if a.DistanceXY(p) < tol {
				return a, true
			}
		}
		return geometry.Vector3{}, false
	}

	var corners []geometry.Vector3
	for _, sign := range []float64{1, -1} {
		w := v.RotateAbout(geometry.Vector3{}, zAxis, sign*math.Pi/3)
		e0, ok0 := find(c0.Add(w))
		e1, ok1 := find(c1.Add(w))
		if ok0 && ok1 {
			corners = []geometry.Vector3{c0, c1, e1, e0}
			break
		}
	}
	if corners == nil {
		return nil, fmt.Errorf("cut cell: %w: no channel centers complete the cell", geometry.ErrDegenerate)
	}

	cut, err := prismCutter(corners, lattice.Limits())
	if err != nil {
		return nil, fmt.Errorf("cut cell: %w", err)
	}
	cell := &Cell{
		Corners: corners,
		Lattice: cut(lattice),
		Guests:  cut(guests),
	}
	if cell.Lattice.Len() == 0 {
		return nil, fmt.Errorf("cut cell: %w: no lattice atoms inside the cell", geometry.ErrDegenerate)
	}
	return cell, nil
}

// prismCutter returns a filter keeping the points inside the vertical prism
// over corners, between the z limits.
func prismCutter(corners []geometry.Vector3, limits geometry.Limits) (func(geometry.Points) geometry.Points, error) {
	centroid := geometry.Centroid(corners)
	type side struct {
		params    geometry.PlaneParams
		direction float64
	}
	sides := make([]side, 0, len(corners))
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		params, err := geometry.BuildPlaneParams(a, b, a.Add(zAxis))
		if err != nil {
			return nil, err
		}
		sides = append(sides, side{params: params, direction: params.SignedDistance(centroid)})
	}
	const eps = 1e-6
	return func(points geometry.Points) geometry.Points {
		points = geometry.FilterByZ(points, limits.Min.Z-eps, limits.Max.Z+eps)
		for _, s := range sides {
			points = geometry.FilterBySide(points, s.params, s.direction, eps)
		}
		return points
	}, nil
}
