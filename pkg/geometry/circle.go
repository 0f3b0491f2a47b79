package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// CircleFit represents the result of fitting a circle to a channel cross-section
type CircleFit struct {
	Center Vector3 // Circle center, z is the mean z of the points
	Radius float64
	StdDev float64 // Standard deviation of the radial residuals
}

// FitCircleXY fits a circle to the (x, y) projections of the points by
// linear least squares:
//
//	x² + y² = 2·cx·x + 2·cy·y + c,   r² = c + cx² + cy²
func FitCircleXY(points []Vector3) (*CircleFit, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("fit circle: %w: need at least 3 points, got %d", ErrDegenerate, len(points))
	}

	n := len(points)
	a := mat.NewDense(n, 3, nil)
	b := mat.NewVecDense(n, nil)
	var meanZ float64
	for i, p := range points {
		a.Set(i, 0, 2*p.X)
		a.Set(i, 1, 2*p.Y)
		a.Set(i, 2, 1)
		b.SetVec(i, p.X*p.X+p.Y*p.Y)
		meanZ += p.Z
	}
	meanZ /= float64(n)

	var sol mat.VecDense
	if err := sol.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("fit circle: %w: %v", ErrDegenerate, err)
	}
	cx, cy, c := sol.AtVec(0), sol.AtVec(1), sol.AtVec(2)
	r2 := c + cx*cx + cy*cy
	if r2 <= 0 || math.IsNaN(r2) || math.IsInf(r2, 0) {
		return nil, fmt.Errorf("fit circle: %w: points are collinear", ErrDegenerate)
	}
	radius := math.Sqrt(r2)

	var sumError float64
	for _, p := range points {
		d := math.Hypot(p.X-cx, p.Y-cy) - radius
		sumError += d * d
	}

	return &CircleFit{
		Center: NewVector3(cx, cy, meanZ),
		Radius: radius,
		StdDev: math.Sqrt(sumError / float64(n)),
	}, nil
}
