package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// PointFromCoords builds a point from 2 or 3 coordinates; z defaults to 0
func PointFromCoords(coords ...float64) (Vector3, error) {
	switch len(coords) {
	case 2:
		return Vector3{X: coords[0], Y: coords[1]}, nil
	case 3:
		return Vector3{X: coords[0], Y: coords[1], Z: coords[2]}, nil
	}
	return Vector3{}, fmt.Errorf("expected 2 or 3 coordinates, got %d", len(coords))
}

// DistanceBetween returns the Euclidean distance between two points given as
// 2 or 3 coordinates each.
func DistanceBetween(p1, p2 []float64) (float64, error) {
	a, err := PointFromCoords(p1...)
	if err != nil {
		return 0, err
	}
	b, err := PointFromCoords(p2...)
	if err != nil {
		return 0, err
	}
	return a.Distance(b), nil
}

// DistanceFromPlane returns the absolute distance of the first point of the
// set from the plane. Only the first point is used.
func DistanceFromPlane(points Points, params PlaneParams) (float64, error) {
	if points.Len() == 0 {
		return 0, fmt.Errorf("distance from plane: %w: empty point set", ErrDegenerate)
	}
	return math.Abs(params.SignedDistance(points.At(0))), nil
}

// SignedDistanceFromPlane returns the signed distance of every point
func SignedDistanceFromPlane(points Points, params PlaneParams) []float64 {
	out := make([]float64, points.Len())
	for i, v := range points.pts {
		out[i] = params.SignedDistance(v)
	}
	return out
}

// DistMatrix returns the symmetric pairwise distance matrix with +Inf on the
// diagonal, so a row minimum is the nearest neighbour excluding self.
func DistMatrix(points Points) *mat.SymDense {
	n := points.Len()
	if n == 0 {
		return &mat.SymDense{}
	}
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		m.SetSym(i, i, math.Inf(1))
		for j := i + 1; j < n; j++ {
			m.SetSym(i, j, points.pts[i].Distance(points.pts[j]))
		}
	}
	return m
}

// NearestNeighbourDistances returns, per point, the distance to its nearest
// other point (+Inf for a single point).
func NearestNeighbourDistances(points Points) []float64 {
	out := make([]float64, points.Len())
	if points.Len() == 0 {
		return out
	}
	m := DistMatrix(points)
	n := points.Len()
	for i := 0; i < n; i++ {
		row := make([]float64, n)
		mat.Row(row, i, m)
		out[i] = floats.Min(row)
	}
	return out
}

// MinDistances returns, for each point of from, the distance to the nearest
// point of to (+Inf when to is empty).
func MinDistances(from, to Points) []float64 {
	out := make([]float64, from.Len())
	for i, a := range from.pts {
		out[i] = minDistanceTo(a, to.pts)
	}
	return out
}

// MinDistanceSum is the sum of MinDistances
func MinDistanceSum(from, to Points) float64 {
	d := MinDistances(from, to)
	if len(d) == 0 {
		return 0
	}
	return floats.Sum(d)
}

// MinDistanceTo returns the distance from p to the nearest point of the set
func MinDistanceTo(p Vector3, points Points) float64 {
	return minDistanceTo(p, points.pts)
}

// NearestPoint returns the point of the set closest to p
func NearestPoint(p Vector3, points Points) (Vector3, float64, bool) {
	best, bestDist := Vector3{}, math.Inf(1)
	for _, v := range points.pts {
		if d := p.Distance(v); d < bestDist {
			best, bestDist = v, d
		}
	}
	return best, bestDist, points.Len() > 0
}

func minDistanceTo(p Vector3, pts []Vector3) float64 {
	best := math.Inf(1)
	for _, v := range pts {
		if d := p.Distance(v); d < best {
			best = d
		}
	}
	return best
}
