package honeycomb

import (
	"fmt"
	"math"

	"github.com/philipparndt/gohoneycomb/pkg/geometry"
)

// PolygonKind tells hexagons from pentagons by their vertex count
type PolygonKind int

const (
	Pentagon PolygonKind = 5
	Hexagon  PolygonKind = 6
)

// String returns "pentagon", "hexagon" or "<n>-gon"
func (k PolygonKind) String() string {
	switch k {
	case Pentagon:
		return "pentagon"
	case Hexagon:
		return "hexagon"
	}
	return fmt.Sprintf("%d-gon", int(k))
}

// Polygon is a closed ring of bonded atoms lying in one plane
type Polygon struct {
	Kind   PolygonKind
	points []geometry.Vector3
	center geometry.Vector3
	params geometry.PlaneParams
}

func newPolygon(kind PolygonKind, points []geometry.Vector3, params geometry.PlaneParams) Polygon {
	return Polygon{
		Kind:   kind,
		points: points,
		center: geometry.Centroid(points),
		params: params,
	}
}

// Points returns the ring in traversal order
func (p Polygon) Points() []geometry.Vector3 {
	return append([]geometry.Vector3(nil), p.points...)
}

// Center returns the centroid of the ring
func (p Polygon) Center() geometry.Vector3 { return p.center }

// Params returns the equation of the plane the ring lies in
func (p Polygon) Params() geometry.PlaneParams { return p.params }

// Plane is a flat wall of a channel together with the rings found in it
type Plane struct {
	points    geometry.Points
	params    geometry.PlaneParams
	bond      float64
	segments  []Segment
	hexagons  []Polygon
	pentagons []Polygon
	edgeHoles geometry.Points
}

// NewPlane fits the plane equation to the points and extracts its hexagons,
// pentagons and edge holes. Edge holes are limited to the points' own
// bounds.
func NewPlane(points geometry.Points, cfg PlaneConfig) (*Plane, error) {
	return newPlaneWithLimits(points, cfg, nil)
}

func newPlaneWithLimits(points geometry.Points, cfg PlaneConfig, limits *geometry.Limits) (*Plane, error) {
	if points.Len() < 3 {
		return nil, fmt.Errorf("plane: %w: %d points", geometry.ErrDegenerate, points.Len())
	}
	params, err := geometry.FitPlane(points, true)
	if err != nil {
		return nil, fmt.Errorf("plane: %w", err)
	}
	for i := 0; i < points.Len(); i++ {
		if d := math.Abs(params.SignedDistance(points.At(i))); d > cfg.PlaneTolerance {
			return nil, fmt.Errorf("plane: %w: point %v is %.3g off the plane", geometry.ErrDegenerate, points.At(i), d)
		}
	}

	p := &Plane{points: points, params: params}
	p.bond = bondLength(points)

	bonds := p.bonds(cfg.BondTolerance)
	p.segments = bonds
	p.hexagons = findPolygons(bonds, Hexagon, params)
	p.pentagons = findPolygons(bonds, Pentagon, params)

	l := points.Limits()
	if limits != nil {
		l = *limits
	}
	p.edgeHoles = p.calculateEdgeHoles(bonds, l, cfg.PlaneTolerance)
	return p, nil
}

// Points returns the atoms of the wall
func (p *Plane) Points() geometry.Points { return p.points }

// Params returns the normalized plane equation
func (p *Plane) Params() geometry.PlaneParams { return p.params }

// Center returns the centroid of the wall atoms
func (p *Plane) Center() geometry.Vector3 { return p.points.Center() }

// Hexagons returns a copy of the six-membered rings of the wall
func (p *Plane) Hexagons() []Polygon { return append([]Polygon(nil), p.hexagons...) }

// Pentagons returns a copy of the five-membered rings of the wall
func (p *Plane) Pentagons() []Polygon { return append([]Polygon(nil), p.pentagons...) }

// EdgeHoles returns the interpolated lattice vertices missing along the
// truncated borders of the plane.
func (p *Plane) EdgeHoles() geometry.Points { return p.edgeHoles }

// Bonds returns the C-C bonds of the plane
func (p *Plane) Bonds() []Segment { return append([]Segment(nil), p.segments...) }

// BondLength is the shortest distance between two atoms of the plane
func (p *Plane) BondLength() float64 { return p.bond }

// DirectionToCenter returns +1 when point lies on the positive side of the
// plane and -1 otherwise.
func (p *Plane) DirectionToCenter(point geometry.Vector3) float64 {
	if p.params.SignedDistance(point) >= 0 {
		return 1
	}
	return -1
}

func bondLength(points geometry.Points) float64 {
	minDist := math.Inf(1)
	for _, d := range geometry.NearestNeighbourDistances(points) {
		if d < minDist {
			minDist = d
		}
	}
	return minDist
}

// bonds links every pair of atoms not farther apart than tolerance × the
// shortest bond.
func (p *Plane) bonds(tolerance float64) []Segment {
	var segments []Segment
	limit := p.bond * tolerance
	n := p.points.Len()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := p.points.At(i), p.points.At(j)
			if a.Distance(b) <= limit {
				segments = append(segments, Segment{A: a, B: b})
			}
		}
	}
	return segments
}

// FindPolygons returns the rings of kind found in the bond graph of points
func FindPolygons(points geometry.Points, kind PolygonKind, cfg PlaneConfig) ([]Polygon, error) {
	plane, err := NewPlane(points, cfg)
	if err != nil {
		return nil, err
	}
	return findPolygons(plane.bonds(cfg.BondTolerance), kind, plane.params), nil
}

func findPolygons(bonds []Segment, kind PolygonKind, params geometry.PlaneParams) []Polygon {
	cycles := FindPolygonNodeIndexes(bonds, int(kind), 1e-6)
	polygons := make([]Polygon, 0, len(cycles))
	for _, c := range cycles {
		polygons = append(polygons, newPolygon(kind, c.Nodes, params))
	}
	return polygons
}

// calculateEdgeHoles completes the three-fold coordination of border atoms.
// An atom with exactly two bonds is missing the third neighbour at
// p - (e1 + e2), projected onto the plane; the position is a hole when it
// falls inside limits and no atom occupies it.
func (p *Plane) calculateEdgeHoles(bonds []Segment, limits geometry.Limits, tolerance float64) geometry.Points {
	neighbours := make(map[geometry.Vector3][]geometry.Vector3)
	for _, b := range bonds {
		neighbours[b.A] = append(neighbours[b.A], b.B)
		neighbours[b.B] = append(neighbours[b.B], b.A)
	}

	eps := math.Max(tolerance, p.bond*1e-3)
	var holes []geometry.Vector3
	for i := 0; i < p.points.Len(); i++ {
		atom := p.points.At(i)
		nb := neighbours[atom]
		if len(nb) != 2 {
			continue
		}
		hole := p.params.Project(atom.Sub(nb[0].Sub(atom).Add(nb[1].Sub(atom))))
		if !within(limits, hole, eps) {
			continue
		}
		if geometry.MinDistanceTo(hole, p.points) < p.bond/2 {
			continue
		}
		if len(holes) > 0 && geometry.MinDistanceTo(hole, geometry.NewPoints(holes)) < p.bond/2 {
			continue
		}
		holes = append(holes, hole)
	}
	return geometry.NewPoints(holes)
}

func within(l geometry.Limits, v geometry.Vector3, eps float64) bool {
	return v.X >= l.Min.X-eps && v.X <= l.Max.X+eps &&
		v.Y >= l.Min.Y-eps && v.Y <= l.Max.Y+eps &&
		v.Z >= l.Min.Z-eps && v.Z <= l.Max.Z+eps
}
