package geometry

import (
	"fmt"
	"math"
)

// PlaneParams holds the coefficients of Ax + By + Cz + D = 0
type PlaneParams struct {
	A, B, C, D float64
}

// BuildPlaneParams returns the plane through three points. The normal is
// (p2-p1)×(p3-p1) and the tuple is negated when B < 0, so B is never
// negative. Side-of-plane filters rely on this convention.
func BuildPlaneParams(p1, p2, p3 Vector3) (PlaneParams, error) {
	n := p2.Sub(p1).Cross(p3.Sub(p1))
	if n.Length() < 1e-12 {
		return PlaneParams{}, fmt.Errorf("plane through %v %v %v: %w: collinear points", p1, p2, p3, ErrDegenerate)
	}
	params := PlaneParams{A: n.X, B: n.Y, C: n.Z, D: -n.Dot(p1)}
	if params.B < 0 {
		params = PlaneParams{A: -params.A, B: -params.B, C: -params.C, D: -params.D}
	}
	return params, nil
}

// Normal returns the (unnormalized) normal vector
func (p PlaneParams) Normal() Vector3 {
	return Vector3{X: p.A, Y: p.B, Z: p.C}
}

// Normalized scales the coefficients to a unit normal; the sign is kept
func (p PlaneParams) Normalized() PlaneParams {
	l := p.Normal().Length()
	if l == 0 {
		return p
	}
	return PlaneParams{A: p.A / l, B: p.B / l, C: p.C / l, D: p.D / l}
}

// Residual evaluates Ax + By + Cz + D
func (p PlaneParams) Residual(v Vector3) float64 {
	return p.A*v.X + p.B*v.Y + p.C*v.Z + p.D
}

// SignedDistance returns the signed Euclidean distance of v from the plane
func (p PlaneParams) SignedDistance(v Vector3) float64 {
	l := p.Normal().Length()
	if l == 0 {
		return math.NaN()
	}
	return p.Residual(v) / l
}

// Project returns the orthogonal projection of v onto the plane
func (p PlaneParams) Project(v Vector3) Vector3 {
	n := p.Normal().Normalize()
	return v.Sub(n.Mul(p.SignedDistance(v)))
}

// FitPlane picks three well spread points of the set and builds their plane.
// When all points are collinear and vertical is true, the plane containing
// the line and the z axis direction is returned instead of an error.
func FitPlane(points Points, vertical bool) (PlaneParams, error) {
	if points.Len() < 2 {
		return PlaneParams{}, fmt.Errorf("fit plane: %w: %d points", ErrDegenerate, points.Len())
	}
	p1 := points.At(0)
	p2, far := p1, 0.0
	for _, v := range points.pts {
		if d := v.Distance(p1); d > far {
			p2, far = v, d
		}
	}
	if far == 0 {
		return PlaneParams{}, fmt.Errorf("fit plane: %w: coincident points", ErrDegenerate)
	}
	dir := p2.Sub(p1).Normalize()
	p3, off := p1, 0.0
	for _, v := range points.pts {
		if d := v.Sub(p1).Cross(dir).Length(); d > off {
			p3, off = v, d
		}
	}
	if off < 1e-6 {
		if !vertical || math.Abs(dir.Z) > 1-1e-9 {
			return PlaneParams{}, fmt.Errorf("fit plane: %w: collinear points", ErrDegenerate)
		}
		p3 = p1.Add(Vector3{Z: 1})
	}
	params, err := BuildPlaneParams(p1, p2, p3)
	if err != nil {
		return PlaneParams{}, err
	}
	return params.Normalized(), nil
}

// FilterBySide keeps the points whose signed distance from the plane has the
// same sign as direction's (direction > 0 keeps the positive half-space).
// Points within tolerance of the plane are kept.
func FilterBySide(points Points, params PlaneParams, direction float64, tolerance float64) Points {
	return points.Filter(func(v Vector3) bool {
		d := params.SignedDistance(v)
		if math.Abs(d) <= tolerance {
			return true
		}
		return (d > 0) == (direction > 0)
	})
}

// FilterByZ keeps the points with minZ <= z <= maxZ
func FilterByZ(points Points, minZ, maxZ float64) Points {
	return points.Filter(func(v Vector3) bool { return v.Z >= minZ && v.Z <= maxZ })
}
