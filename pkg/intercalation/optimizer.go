package intercalation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/philipparndt/gohoneycomb/pkg/geometry"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// penaltyWeight makes losing candidates dominate the distance variance
const penaltyWeight = 1000

// Transform is a rigid motion of a candidate cluster: a shift in the
// xy-plane, then rotations about the x and y axes through the cluster
// center.
type Transform struct {
	DX, DY float64
	AX, AY float64 // radians
}

func transformFromVector(x []float64) Transform {
	return Transform{DX: x[0], DY: x[1], AX: x[2], AY: x[3]}
}

// IsIdentity reports whether every parameter is within tol of zero
func (t Transform) IsIdentity(tol float64) bool {
	return math.Abs(t.DX) <= tol && math.Abs(t.DY) <= tol &&
		math.Abs(t.AX) <= tol && math.Abs(t.AY) <= tol
}

// Apply moves the points
func (t Transform) Apply(points geometry.Points) geometry.Points {
	shift := geometry.NewVector3(t.DX, t.DY, 0)
	pivot := points.Center().Add(shift)
	xAxis, yAxis := geometry.NewVector3(1, 0, 0), geometry.NewVector3(0, 1, 0)
	return points.Map(func(p geometry.Vector3) geometry.Vector3 {
		p = p.Add(shift)
		p = p.RotateAbout(pivot, xAxis, t.AX)
		return p.RotateAbout(pivot, yAxis, t.AY)
	})
}

// Optimizer searches the rigid transform placing candidates equidistantly
// from the lattice.
type Optimizer struct {
	Species AtomParams
	// MaxIterations caps the BFGS major iterations; 0 leaves them unbounded
	// and the search stops on convergence or MaxRuntime
	MaxIterations int
	// MaxRuntime bounds the search; 0 means no limit
	MaxRuntime time.Duration
	Logger     *slog.Logger
}

// OptimizeResult holds the best transform found and the moved candidates
type OptimizeResult struct {
	Transform Transform
	Points    geometry.Points
	Objective float64
	Converged bool
	Status    string
}

// Objective returns the function minimised over [dx, dy, ax, ay]:
// 1000·(dropped/total)² plus the population variance of the candidates'
// nearest lattice distances. A candidate is dropped when it comes closer to
// the lattice than the minimum recommended distance; +Inf when all are.
func (o Optimizer) Objective(lattice, candidates geometry.Points) func(x []float64) float64 {
	minDist := o.Species.MinRecommendedDist()
	total := float64(candidates.Len())
	return func(x []float64) float64 {
		moved := transformFromVector(x).Apply(candidates)
		dists := geometry.MinDistances(moved, lattice)
		kept := 0
		for _, d := range dists {
			if d >= minDist {
				kept++
			}
		}
		if kept == 0 {
			return math.Inf(1)
		}
		penalty := (total - float64(kept)) / total
		return penaltyWeight*penalty*penalty + stat.PopVariance(dists, nil)
	}
}

// Optimize minimises the objective with BFGS from the identity transform.
// Hitting the iteration or runtime cap, or a line search failure, is not an
// error: the best point found is used and a warning is logged.
func (o Optimizer) Optimize(ctx context.Context, lattice, candidates geometry.Points) (OptimizeResult, error) {
	if candidates.Len() == 0 {
		return OptimizeResult{}, fmt.Errorf("optimize: %w: no candidates", geometry.ErrDegenerate)
	}
	if lattice.Len() == 0 {
		return OptimizeResult{}, fmt.Errorf("optimize: %w: empty lattice", geometry.ErrDegenerate)
	}
	log := o.logger()

	f := o.Objective(lattice, candidates)
	x0 := make([]float64, 4)
	f0 := f(x0)
	identity := OptimizeResult{Points: candidates, Objective: f0}
	if math.IsInf(f0, 1) {
		log.Warn("every candidate is too close to the lattice, skipping optimization", "candidates", candidates.Len())
		identity.Status = "Skipped"
		return identity, nil
	}

	problem := optimize.Problem{
		Func: f,
		Grad: func(grad, x []float64) {
			fd.Gradient(grad, f, x, &fd.Settings{Formula: fd.Central, Step: 1e-4})
			for i, g := range grad {
				if math.IsNaN(g) || math.IsInf(g, 0) {
					grad[i] = 0
				}
			}
		},
		Status: func() (optimize.Status, error) {
			if err := ctx.Err(); err != nil {
				return optimize.Failure, err
			}
			return optimize.NotTerminated, nil
		},
	}
	settings := &optimize.Settings{
		MajorIterations:   o.MaxIterations,
		Runtime:           o.MaxRuntime,
		GradientThreshold: 1e-8,
		Converger:         &optimize.FunctionConverge{Absolute: 1e-10, Iterations: 20},
	}
	method := &optimize.BFGS{Linesearcher: &optimize.Backtracking{}}

	res, err := optimize.Minimize(problem, x0, settings, method)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return OptimizeResult{}, fmt.Errorf("optimize: %w", ctxErr)
	}
	if res == nil || math.IsNaN(res.F) || res.F > f0 {
		log.Warn("optimizer failed, keeping the initial placement", "error", err)
		identity.Status = "Failure"
		return identity, nil
	}

	out := OptimizeResult{
		Transform: transformFromVector(res.X),
		Objective: res.F,
		Converged: err == nil && !res.Status.Early(),
		Status:    res.Status.String(),
	}
	out.Points = out.Transform.Apply(candidates)
	if !out.Converged {
		log.Warn("optimizer did not converge, using the best point found",
			"status", out.Status, "objective", out.Objective, "iterations", res.MajorIterations, "error", err)
	} else {
		log.Debug("optimizer converged", "status", out.Status, "objective", out.Objective,
			"iterations", res.MajorIterations, "evaluations", res.FuncEvaluations)
	}
	return out, nil
}

// AdjustClosestAtoms pulls every candidate nearer than the species' nominal
// distance to the lattice onto the mean of its lattice and guest neighbours
// within 1.01 of that distance. Candidates lacking either kind of neighbour
// stay where they are, and so do candidates whose new position would come
// closer to the lattice than the minimum recommended distance.
func AdjustClosestAtoms(candidates, lattice geometry.Points, species AtomParams) geometry.Points {
	nominal := species.DistBetweenAtoms()
	floor := species.MinRecommendedDist()
	reach := nominal * 1.01
	out := candidates.Slice()
	for i := range out {
		p := candidates.At(i)
		if geometry.MinDistanceTo(p, lattice) >= nominal {
			continue
		}
		var latticeNb, guestNb []geometry.Vector3
		for j := 0; j < lattice.Len(); j++ {
			if p.Distance(lattice.At(j)) < reach {
				latticeNb = append(latticeNb, lattice.At(j))
			}
		}
		for j := 0; j < candidates.Len(); j++ {
			if j != i && p.Distance(candidates.At(j)) < reach {
				guestNb = append(guestNb, candidates.At(j))
			}
		}
		if len(latticeNb) == 0 || len(guestNb) == 0 {
			continue
		}
		moved := geometry.Centroid(append(latticeNb, guestNb...))
		if geometry.MinDistanceTo(moved, lattice) < floor {
			continue
		}
		out[i] = moved
	}
	return geometry.NewPoints(out)
}

func (o Optimizer) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
