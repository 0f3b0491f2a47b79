package honeycomb

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/philipparndt/gohoneycomb/pkg/geometry"
	"gonum.org/v1/gonum/stat"
)

// Channel is one pore of the honeycomb: its atoms and, once requested, the
// walls around it. A Channel does not reference the lattice it was cut from.
type Channel struct {
	points   geometry.Points
	boundary []geometry.XY
	cfg      PlaneConfig

	planesOnce sync.Once
	planes     []*Plane
	planesErr  error
}

// NewChannel wraps channel atoms. boundary is the ring of wall end points in
// the xy-plane and may be nil.
func NewChannel(points geometry.Points, boundary []geometry.XY, cfg PlaneConfig) *Channel {
	return &Channel{
		points:   points,
		boundary: append([]geometry.XY(nil), boundary...),
		cfg:      cfg,
	}
}

// Points returns the channel atoms
func (c *Channel) Points() geometry.Points { return c.points }

// Center returns the centroid of the channel atoms
func (c *Channel) Center() geometry.Vector3 { return c.points.Center() }

// Boundary returns the wall end points in ring order
func (c *Channel) Boundary() []geometry.XY { return append([]geometry.XY(nil), c.boundary...) }

// Planes builds the walls on first use
func (c *Channel) Planes() ([]*Plane, error) {
	c.planesOnce.Do(func() {
		c.planes, c.planesErr = BuildPlanes(c.points, c.cfg)
	})
	return c.planes, c.planesErr
}

// ContainsXY reports whether p lies inside the channel boundary, or on an
// atom column of the channel when no boundary is known.
func (c *Channel) ContainsXY(p geometry.XY) bool {
	for i := 0; i < c.points.Len(); i++ {
		if c.points.At(i).XY() == p {
			return true
		}
	}
	return len(c.boundary) >= 3 && pointInPolygon(p, c.boundary)
}

// AveDistBetweenClosestAtoms is the mean nearest-neighbour distance
func (c *Channel) AveDistBetweenClosestAtoms() float64 {
	d := geometry.NearestNeighbourDistances(c.points)
	if len(d) < 2 {
		return 0
	}
	return stat.Mean(d, nil)
}

// HexagonCenters returns the distinct hexagon centers of all walls
func (c *Channel) HexagonCenters() (geometry.Points, error) {
	planes, err := c.Planes()
	if err != nil {
		return geometry.Points{}, err
	}
	var centers []geometry.Vector3
	for _, p := range planes {
		for _, h := range p.Hexagons() {
			centers = append(centers, h.Center())
		}
	}
	return geometry.NewPoints(centers).Unique(), nil
}

// AveDistBetweenClosestHexagonCenters is the mean distance from each
// hexagon center to the closest other one.
func (c *Channel) AveDistBetweenClosestHexagonCenters() (float64, error) {
	centers, err := c.HexagonCenters()
	if err != nil {
		return 0, err
	}
	if centers.Len() < 2 {
		return 0, fmt.Errorf("hexagon centers: %w: %d hexagons", geometry.ErrDegenerate, centers.Len())
	}
	return stat.Mean(geometry.NearestNeighbourDistances(centers), nil), nil
}

// BuildPlanes reconstructs the walls of a channel and orders them by polar
// angle around the channel center.
func BuildPlanes(points geometry.Points, cfg PlaneConfig) ([]*Plane, error) {
	columns := geometry.GroupByUniqueXY(points)
	if len(columns) < cfg.MinPointsInLine || len(columns) < 3 {
		return nil, fmt.Errorf("build planes: %w: %d atom columns", geometry.ErrDegenerate, len(columns))
	}
	lines := geometry.GroupByXYLines(columns, cfg.Epsilon, cfg.MinPointsInLine)
	threshold := geometry.MaxNearestColumnDistance(columns) * cfg.ClearanceCoefficient

	var groups []geometry.Line
	seen := make(map[string]bool)
	for _, line := range lines {
		for _, g := range geometry.SplitLine(line, threshold) {
			if len(g) < cfg.MinPointsInLine {
				continue
			}
			key := groupKey(g)
			if seen[key] {
				continue
			}
			seen[key] = true
			groups = append(groups, g)
		}
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("build planes: %w: no walls among %d atom columns", geometry.ErrDegenerate, len(columns))
	}

	channelLimits := points.Limits()
	planes := make([]*Plane, 0, len(groups))
	for _, g := range groups {
		wall := geometry.NewPoints(g.Points())
		// holes stay within the wall's own span and the channel's height
		limits := wall.Limits()
		limits.Min.Z, limits.Max.Z = channelLimits.Min.Z, channelLimits.Max.Z
		plane, err := newPlaneWithLimits(wall, cfg, &limits)
		if err != nil {
			return nil, err
		}
		planes = append(planes, plane)
	}

	center := points.Center()
	angle := func(p *Plane) float64 {
		c := p.Center()
		a := math.Atan2(c.Y-center.Y, c.X-center.X)
		if a < 0 {
			a += 2 * math.Pi
		}
		return a
	}
	sort.SliceStable(planes, func(i, j int) bool { return angle(planes[i]) < angle(planes[j]) })
	return planes, nil
}

func groupKey(l geometry.Line) string {
	keys := l.Keys()
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].X != keys[j].X {
			return keys[i].X < keys[j].X
		}
		return keys[i].Y < keys[j].Y
	})
	return fmt.Sprint(keys)
}

func pointInPolygon(p geometry.XY, ring []geometry.XY) bool {
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}
