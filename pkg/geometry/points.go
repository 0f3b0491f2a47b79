package geometry

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDegenerate is returned when there are too few points, or only
// collinear points, to build the requested figure.
var ErrDegenerate = errors.New("degenerate input")

// Points is an immutable ordered set of atom coordinates.
// Every operation returns a new value; the backing slice is never shared
// with callers.
type Points struct {
	pts []Vector3
}

// NewPoints copies pts into a new point set
func NewPoints(pts []Vector3) Points {
	cp := make([]Vector3, len(pts))
	copy(cp, pts)
	return Points{pts: cp}
}

// PointsFromRows builds a point set from raw N×3 rows. Rows of length 2 get
// z = 0.
func PointsFromRows(rows [][]float64) (Points, error) {
	pts := make([]Vector3, 0, len(rows))
	for i, row := range rows {
		p, err := PointFromCoords(row...)
		if err != nil {
			return Points{}, fmt.Errorf("row %d: %w", i, err)
		}
		if !p.IsFinite() {
			return Points{}, fmt.Errorf("row %d: non-finite coordinate %v", i, row)
		}
		pts = append(pts, p)
	}
	return Points{pts: pts}, nil
}

// Len returns the number of points
func (p Points) Len() int {
	return len(p.pts)
}

// At returns the i-th point
func (p Points) At(i int) Vector3 {
	return p.pts[i]
}

// Slice returns a copy of the coordinates
func (p Points) Slice() []Vector3 {
	cp := make([]Vector3, len(p.pts))
	copy(cp, p.pts)
	return cp
}

// Copy returns a deep copy
func (p Points) Copy() Points {
	return NewPoints(p.pts)
}

// Center returns the arithmetic mean of the coordinates
func (p Points) Center() Vector3 {
	return centroid(p.pts)
}

// Sorted returns the points ordered by z, then y, then x
func (p Points) Sorted() Points {
	cp := p.Slice()
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Less(cp[j]) })
	return Points{pts: cp}
}

// Limits returns the per-axis coordinate bounds
func (p Points) Limits() Limits {
	return LimitsOf(p.pts)
}

// Append returns a new set with other's points after p's
func (p Points) Append(other Points) Points {
	cp := make([]Vector3, 0, len(p.pts)+len(other.pts))
	cp = append(cp, p.pts...)
	cp = append(cp, other.pts...)
	return Points{pts: cp}
}

// Map returns a new set with fn applied to every point
func (p Points) Map(fn func(Vector3) Vector3) Points {
	cp := make([]Vector3, len(p.pts))
	for i, v := range p.pts {
		cp[i] = fn(v)
	}
	return Points{pts: cp}
}

// Filter returns the points for which keep returns true
func (p Points) Filter(keep func(Vector3) bool) Points {
	var cp []Vector3
	for _, v := range p.pts {
		if keep(v) {
			cp = append(cp, v)
		}
	}
	return Points{pts: cp}
}

// Move translates every point by offset
func (p Points) Move(offset Vector3) Points {
	return p.Map(func(v Vector3) Vector3 { return v.Add(offset) })
}

// Unique drops exact duplicates, keeping the first occurrence
func (p Points) Unique() Points {
	seen := make(map[Vector3]struct{}, len(p.pts))
	var cp []Vector3
	for _, v := range p.pts {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		cp = append(cp, v)
	}
	return Points{pts: cp}
}

// Table is a tabular projection of a point set for export
type Table struct {
	Columns []string
	Rows    [][]float64
}

// ToTable projects the points onto the given columns. Three names map to
// x, y, z; four names prepend a 1-based index column.
func (p Points) ToTable(columns []string) (Table, error) {
	if len(columns) != 3 && len(columns) != 4 {
		return Table{}, fmt.Errorf("expected 3 or 4 column names, got %d", len(columns))
	}
	withIndex := len(columns) == 4
	rows := make([][]float64, len(p.pts))
	for i, v := range p.pts {
		if withIndex {
			rows[i] = []float64{float64(i + 1), v.X, v.Y, v.Z}
		} else {
			rows[i] = []float64{v.X, v.Y, v.Z}
		}
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return Table{Columns: cols, Rows: rows}, nil
}

func centroid(pts []Vector3) Vector3 {
	if len(pts) == 0 {
		return Vector3{}
	}
	var sum Vector3
	for _, v := range pts {
		sum = sum.Add(v)
	}
	return sum.Mul(1.0 / float64(len(pts)))
}

// Centroid returns the arithmetic mean of pts
func Centroid(pts []Vector3) Vector3 {
	return centroid(pts)
}

// Limits holds per-axis coordinate bounds
type Limits struct {
	Min, Max Vector3
}

// LimitsOf computes the bounds of pts; empty input gives zero limits
func LimitsOf(pts []Vector3) Limits {
	if len(pts) == 0 {
		return Limits{}
	}
	l := Limits{Min: pts[0], Max: pts[0]}
	for _, v := range pts[1:] {
		l.Min = l.Min.Min(v)
		l.Max = l.Max.Max(v)
	}
	return l
}

// ContainsXY reports whether the (x, y) projection of v lies inside the
// limits expanded by margin.
func (l Limits) ContainsXY(v Vector3, margin float64) bool {
	return v.X >= l.Min.X-margin && v.X <= l.Max.X+margin &&
		v.Y >= l.Min.Y-margin && v.Y <= l.Max.Y+margin
}

// Size returns the extent along each axis
func (l Limits) Size() Vector3 {
	return l.Max.Sub(l.Min)
}
