package intercalation

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/philipparndt/gohoneycomb/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformApply(t *testing.T) {
	pts := geometry.NewPoints([]geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(2, 0, 0),
		geometry.NewVector3(1, 3, 1),
	})

	same := Transform{}.Apply(pts)
	for i := 0; i < pts.Len(); i++ {
		if same.At(i).Distance(pts.At(i)) > 1e-12 {
			t.Errorf("identity moved point %d to %v", i, same.At(i))
		}
	}

	moved := Transform{DX: 1, DY: -2, AX: 0.3, AY: -0.2}.Apply(pts)
	want := pts.Center().Add(geometry.NewVector3(1, -2, 0))
	if d := moved.Center().Distance(want); d > 1e-9 {
		t.Errorf("expected center %v, got %v", want, moved.Center())
	}
	// rigid: pairwise distances survive
	for i := 0; i < pts.Len(); i++ {
		for j := i + 1; j < pts.Len(); j++ {
			assert.InDelta(t, pts.At(i).Distance(pts.At(j)), moved.At(i).Distance(moved.At(j)), 1e-9)
		}
	}

	assert.True(t, Transform{DX: 1e-4}.IsIdentity(1e-3))
	assert.False(t, Transform{AY: 0.01}.IsIdentity(1e-3))
}

func TestObjective(t *testing.T) {
	lattice, channel := singleChannel(t)
	o := Optimizer{Species: aluminium()}
	center := channel.Center()
	atom := lattice.At(0)

	f := o.Objective(lattice, geometry.NewPoints([]geometry.Vector3{center}))
	assert.InDelta(t, 0, f(make([]float64, 4)), 1e-12)

	f = o.Objective(lattice, geometry.NewPoints([]geometry.Vector3{atom}))
	if v := f(make([]float64, 4)); !math.IsInf(v, 1) {
		t.Errorf("expected +Inf when every candidate is dropped, got %v", v)
	}

	f = o.Objective(lattice, geometry.NewPoints([]geometry.Vector3{center, atom}))
	if v := f(make([]float64, 4)); v < 250 {
		t.Errorf("expected the penalty of one dropped candidate in two, got %v", v)
	}
}

func TestOptimizeCenteredCandidateStays(t *testing.T) {
	lattice, channel := singleChannel(t)
	o := Optimizer{Species: aluminium(), MaxIterations: 50}

	res, err := o.Optimize(context.Background(), lattice, geometry.NewPoints([]geometry.Vector3{channel.Center()}))
	require.NoError(t, err)
	if !res.Transform.IsIdentity(1e-3) {
		t.Errorf("expected the identity transform, got %+v", res.Transform)
	}
	if !res.Converged {
		t.Errorf("expected convergence, status %s", res.Status)
	}
	assert.InDelta(t, 0, res.Objective, 1e-9)
	require.Equal(t, 1, res.Points.Len())
	if d := res.Points.At(0).Distance(channel.Center()); d > 1e-3 {
		t.Errorf("candidate moved by %v", d)
	}
}

func TestOptimizeNeverWorsens(t *testing.T) {
	lattice, channel := singleChannel(t)
	al := aluminium()
	candidates := wallCandidates(t, channel, al)
	o := Optimizer{Species: al, MaxIterations: 100}

	f0 := o.Objective(lattice, candidates)(make([]float64, 4))
	res, err := o.Optimize(context.Background(), lattice, candidates)
	require.NoError(t, err)
	if res.Objective > f0+1e-12 {
		t.Errorf("objective grew from %v to %v", f0, res.Objective)
	}
	if res.Points.Len() != candidates.Len() {
		t.Errorf("expected %d moved candidates, got %d", candidates.Len(), res.Points.Len())
	}
}

func TestOptimizeSkipsHopelessCandidates(t *testing.T) {
	lattice, _ := singleChannel(t)
	o := Optimizer{Species: aluminium()}
	candidates := geometry.NewPoints([]geometry.Vector3{lattice.At(3)})

	res, err := o.Optimize(context.Background(), lattice, candidates)
	require.NoError(t, err)
	if res.Status != "Skipped" {
		t.Errorf("expected Skipped, got %q", res.Status)
	}
	if res.Points.At(0) != lattice.At(3) {
		t.Errorf("candidates should be returned unchanged")
	}
}

func TestOptimizeErrors(t *testing.T) {
	lattice, channel := singleChannel(t)
	o := Optimizer{Species: aluminium()}

	if _, err := o.Optimize(context.Background(), lattice, geometry.Points{}); !errors.Is(err, geometry.ErrDegenerate) {
		t.Errorf("expected ErrDegenerate for no candidates, got %v", err)
	}
	if _, err := o.Optimize(context.Background(), geometry.Points{}, lattice); !errors.Is(err, geometry.ErrDegenerate) {
		t.Errorf("expected ErrDegenerate for an empty lattice, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := o.Optimize(ctx, lattice, geometry.NewPoints([]geometry.Vector3{channel.Center()}))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestAdjustClosestAtoms(t *testing.T) {
	al := aluminium()
	lattice := geometry.NewPoints([]geometry.Vector3{geometry.NewVector3(0, 0, 0)})
	candidates := geometry.NewPoints([]geometry.Vector3{
		geometry.NewVector3(2.7, 0, 0),  // too close, has a guest neighbour
		geometry.NewVector3(5.5, 0, 0),  // far enough
		geometry.NewVector3(-2.5, 0, 0), // too close, alone
	})

	got := AdjustClosestAtoms(candidates, lattice, al)
	want := []geometry.Vector3{
		geometry.NewVector3(2.75, 0, 0),
		geometry.NewVector3(5.5, 0, 0),
		geometry.NewVector3(-2.5, 0, 0),
	}
	for i, w := range want {
		if d := got.At(i).Distance(w); d > 1e-12 {
			t.Errorf("candidate %d: expected %v, got %v", i, w, got.At(i))
		}
	}
}

func TestAdjustClosestAtomsKeepsAtomsOutOfTheWall(t *testing.T) {
	al := aluminium()
	var ring []geometry.Vector3
	for k := 0; k < 6; k++ {
		a := float64(k) * math.Pi / 3
		ring = append(ring, geometry.NewVector3(1.42*math.Cos(a), 1.42*math.Sin(a), 0))
	}
	lattice := geometry.NewPoints(ring)
	// the first guest sees the whole hexagon and one guest, so the mean of
	// its neighbours falls next to the hexagon center
	candidates := geometry.NewPoints([]geometry.Vector3{
		geometry.NewVector3(0, 0, 2.4),
		geometry.NewVector3(0, 0, 5.2),
	})

	got := AdjustClosestAtoms(candidates, lattice, al)
	for i := 0; i < candidates.Len(); i++ {
		if d := got.At(i).Distance(candidates.At(i)); d > 1e-12 {
			t.Errorf("candidate %d: expected %v, got %v", i, candidates.At(i), got.At(i))
		}
		if d := geometry.MinDistanceTo(got.At(i), lattice); d < al.MinRecommendedDist() {
			t.Errorf("candidate %d: %.3f from the lattice, below %.3f", i, d, al.MinRecommendedDist())
		}
	}
}
