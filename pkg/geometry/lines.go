package geometry

import (
	"math"
	"sort"
)

// Column is a set of atoms sharing the same (x, y) projection
type Column struct {
	Key    XY
	Points []Vector3
}

// Line is a run of collinear columns, ordered along its direction
type Line []Column

// Keys returns the (x, y) keys of the line's columns
func (l Line) Keys() []XY {
	keys := make([]XY, len(l))
	for i, c := range l {
		keys[i] = c.Key
	}
	return keys
}

// Points returns every atom of the line, column by column
func (l Line) Points() []Vector3 {
	var pts []Vector3
	for _, c := range l {
		pts = append(pts, c.Points...)
	}
	return pts
}

// Ends returns the extreme columns of the line: the smallest and largest x,
// or y when the line is parallel to the y axis.
func (l Line) Ends() (XY, XY) {
	if len(l) == 0 {
		return XY{}, XY{}
	}
	lo, hi := l[0].Key, l[0].Key
	vertical := true
	for _, c := range l[1:] {
		if math.Abs(c.Key.X-l[0].Key.X) > 1e-9 {
			vertical = false
			break
		}
	}
	for _, c := range l[1:] {
		k := c.Key
		if vertical {
			if k.Y < lo.Y {
				lo = k
			}
			if k.Y > hi.Y {
				hi = k
			}
			continue
		}
		if k.X < lo.X {
			lo = k
		}
		if k.X > hi.X {
			hi = k
		}
	}
	return lo, hi
}

// GroupByUniqueXY groups points by their exact (x, y) pair. Columns are
// ordered by x, then y; points inside a column by z.
func GroupByUniqueXY(points Points) []Column {
	index := make(map[XY]int)
	var columns []Column
	for _, v := range points.pts {
		k := v.XY()
		i, ok := index[k]
		if !ok {
			i = len(columns)
			index[k] = i
			columns = append(columns, Column{Key: k})
		}
		columns[i].Points = append(columns[i].Points, v)
	}
	sort.Slice(columns, func(i, j int) bool {
		if columns[i].Key.X != columns[j].Key.X {
			return columns[i].Key.X < columns[j].Key.X
		}
		return columns[i].Key.Y < columns[j].Key.Y
	})
	for _, c := range columns {
		sort.Slice(c.Points, func(i, j int) bool { return c.Points[i].Less(c.Points[j]) })
	}
	return columns
}

// AreCollinear reports whether c lies within epsilon of the line through a
// and b, measured as |(b-a)×(c-a)| / |b-a|.
func AreCollinear(a, b, c Vector3, epsilon float64) bool {
	ab := b.Sub(a)
	l := ab.Length()
	if l == 0 {
		return c.Distance(a) <= epsilon
	}
	return ab.Cross(c.Sub(a)).Length()/l <= epsilon
}

// GroupByXYLines finds every run of at least minPointsInLine columns whose
// projections are collinear within epsilon. A column may belong to several
// lines (lattice corners do).
func GroupByXYLines(columns []Column, epsilon float64, minPointsInLine int) []Line {
	n := len(columns)
	covered := make([][]bool, n)
	for i := range covered {
		covered[i] = make([]bool, n)
	}

	var lines []Line
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if covered[i][j] {
				continue
			}
			a, b := columns[i].Key.Vector3(), columns[j].Key.Vector3()
			var members []int
			for k := 0; k < n; k++ {
				if k == i || k == j || AreCollinear(a, b, columns[k].Key.Vector3(), epsilon) {
					members = append(members, k)
				}
			}
			if len(members) < minPointsInLine {
				continue
			}
			for _, m1 := range members {
				for _, m2 := range members {
					covered[m1][m2] = true
				}
			}
			lines = append(lines, orderAlong(columns, members, a, b))
		}
	}
	return lines
}

func orderAlong(columns []Column, members []int, a, b Vector3) Line {
	dir := b.Sub(a).Normalize()
	line := make(Line, len(members))
	proj := make([]float64, len(members))
	for i, m := range members {
		line[i] = columns[m]
		proj[i] = columns[m].Key.Vector3().Sub(a).Dot(dir)
	}
	sort.Sort(byProjection{line: line, proj: proj})
	return line
}

type byProjection struct {
	line Line
	proj []float64
}

func (s byProjection) Len() int           { return len(s.line) }
func (s byProjection) Less(i, j int) bool { return s.proj[i] < s.proj[j] }
func (s byProjection) Swap(i, j int) {
	s.line[i], s.line[j] = s.line[j], s.line[i]
	s.proj[i], s.proj[j] = s.proj[j], s.proj[i]
}

// SplitLine breaks a line into groups of columns connected by gaps no larger
// than threshold (connected components over the xy projection).
func SplitLine(line Line, threshold float64) []Line {
	n := len(line)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if line[i].Key.Distance(line[j].Key) <= threshold {
				if ri, rj := find(i), find(j); ri != rj {
					parent[rj] = ri
				}
			}
		}
	}

	var groups []Line
	label := make(map[int]int)
	for i := 0; i < n; i++ {
		r := find(i)
		g, ok := label[r]
		if !ok {
			g = len(groups)
			label[r] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], line[i])
	}
	return groups
}

// MaxNearestColumnDistance returns the largest distance from a column to its
// nearest other column. It is the lattice spacing for a regular lattice.
func MaxNearestColumnDistance(columns []Column) float64 {
	maxDist := 0.0
	for i, a := range columns {
		nearest := math.Inf(1)
		for j, b := range columns {
			if i == j {
				continue
			}
			if d := a.Key.Distance(b.Key); d < nearest {
				nearest = d
			}
		}
		if !math.IsInf(nearest, 1) && nearest > maxDist {
			maxDist = nearest
		}
	}
	return maxDist
}
