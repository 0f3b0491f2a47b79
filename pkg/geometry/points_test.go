package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPointsCopyDoesNotAlias(t *testing.T) {
	src := []Vector3{{1, 2, 3}, {4, 5, 6}}
	p := NewPoints(src)
	src[0] = Vector3{9, 9, 9}
	if p.At(0) != (Vector3{1, 2, 3}) {
		t.Errorf("NewPoints should copy input, got %v", p.At(0))
	}

	c := p.Copy()
	if diff := cmp.Diff(p.Slice(), c.Slice()); diff != "" {
		t.Errorf("copy differs (-want +got):\n%s", diff)
	}
	s := c.Slice()
	s[1] = Vector3{}
	if c.At(1) != (Vector3{4, 5, 6}) || p.At(1) != (Vector3{4, 5, 6}) {
		t.Error("mutating a slice returned by Slice must not affect the set")
	}
	if &p.pts[0] == &c.pts[0] {
		t.Error("copy shares its backing buffer")
	}
}

func TestPointsCenterAndLimits(t *testing.T) {
	p := NewPoints([]Vector3{{0, 0, 0}, {2, 4, 6}, {1, -2, 3}})

	if got, expected := p.Center(), NewVector3(1, 2.0/3.0, 3); got.Distance(expected) > 1e-12 {
		t.Errorf("Center: expected %v, got %v", expected, got)
	}
	l := p.Limits()
	if l.Min != (Vector3{0, -2, 0}) || l.Max != (Vector3{2, 4, 6}) {
		t.Errorf("Limits: got %+v", l)
	}
	if !l.ContainsXY(Vector3{2.05, 0, 100}, 0.1) || l.ContainsXY(Vector3{3, 0, 0}, 0.1) {
		t.Error("ContainsXY returned unexpected result")
	}
}

func TestPointsSorted(t *testing.T) {
	p := NewPoints([]Vector3{{1, 0, 1}, {0, 1, 0}, {0, 0, 1}, {2, 0, 0}})
	expected := []Vector3{{2, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 0, 1}}
	if diff := cmp.Diff(expected, p.Sorted().Slice()); diff != "" {
		t.Errorf("Sorted mismatch (-want +got):\n%s", diff)
	}
	if p.At(0) != (Vector3{1, 0, 1}) {
		t.Error("Sorted must not reorder the receiver")
	}
}

func TestPointsFromRows(t *testing.T) {
	p, err := PointsFromRows([][]float64{{1, 2}, {3, 4, 5}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.At(0) != (Vector3{1, 2, 0}) {
		t.Errorf("missing z should default to 0, got %v", p.At(0))
	}
	if _, err := PointsFromRows([][]float64{{1}}); err == nil {
		t.Error("expected error for a 1-column row")
	}
	if _, err := PointsFromRows([][]float64{{1, math.NaN(), 0}}); err == nil {
		t.Error("expected error for NaN coordinates")
	}
}

func TestPointsToTable(t *testing.T) {
	p := NewPoints([]Vector3{{1, 2, 3}, {4, 5, 6}})

	table, err := p.ToTable([]string{"i", "x", "y", "z"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := [][]float64{{1, 1, 2, 3}, {2, 4, 5, 6}}
	if diff := cmp.Diff(expected, table.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}

	if _, err := p.ToTable([]string{"x", "y"}); err == nil {
		t.Error("expected error for two columns")
	}
}

func TestPointsUniqueAndMove(t *testing.T) {
	p := NewPoints([]Vector3{{1, 1, 1}, {1, 1, 1}, {2, 2, 2}})
	u := p.Unique()
	if u.Len() != 2 {
		t.Fatalf("Unique: expected 2 points, got %d", u.Len())
	}
	moved := u.Move(Vector3{1, 0, -1})
	if moved.At(1) != (Vector3{3, 2, 1}) {
		t.Errorf("Move: got %v", moved.At(1))
	}
}

func TestDistanceFromPlaneEmpty(t *testing.T) {
	_, err := DistanceFromPlane(Points{}, PlaneParams{A: 1})
	if !errors.Is(err, ErrDegenerate) {
		t.Errorf("expected ErrDegenerate, got %v", err)
	}
}
