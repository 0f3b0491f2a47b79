package honeycomb

import (
	"fmt"
	"sort"
	"strings"

	"github.com/philipparndt/gohoneycomb/pkg/geometry"
)

// Segment is a line segment given by its two end points
type Segment struct {
	A, B geometry.Vector3
}

// Cycle is a closed chain of segments whose end points meet
type Cycle struct {
	// Segments holds the indexes of the segments in traversal order
	Segments []int
	// Nodes holds the shared end points in traversal order; Nodes[i] is the
	// start of Segments[i].
	Nodes []geometry.Vector3
}

type nodeEdge struct {
	to      int
	segment int
}

// FindPolygonNodeIndexes returns every closed chain of exactly numNodes
// segments where consecutive segments share an end point (within
// tolerance). Segments with coincident ends are ignored. The result is
// ordered by the smallest segment index of each cycle.
func FindPolygonNodeIndexes(segments []Segment, numNodes int, tolerance float64) []Cycle {
	if numNodes < 3 {
		return nil
	}

	var nodes []geometry.Vector3
	nodeOf := func(p geometry.Vector3) int {
		for i, n := range nodes {
			if n.Distance(p) <= tolerance {
				return i
			}
		}
		nodes = append(nodes, p)
		return len(nodes) - 1
	}

	var adjacency [][]nodeEdge
	for i, s := range segments {
		a, b := nodeOf(s.A), nodeOf(s.B)
		for len(adjacency) < len(nodes) {
			adjacency = append(adjacency, nil)
		}
		if a == b {
			continue
		}
		adjacency[a] = append(adjacency[a], nodeEdge{to: b, segment: i})
		adjacency[b] = append(adjacency[b], nodeEdge{to: a, segment: i})
	}

	seen := make(map[string]bool)
	var cycles []Cycle

	pathNodes := make([]int, 0, numNodes)
	pathSegments := make([]int, 0, numNodes)
	onPath := make([]bool, len(nodes))

	var walk func(start, current int)
	walk = func(start, current int) {
		for _, e := range adjacency[current] {
			if len(pathSegments) == numNodes-1 {
				if e.to != start {
					continue
				}
				segs := append(append([]int(nil), pathSegments...), e.segment)
				key := cycleKey(segs)
				if seen[key] {
					continue
				}
				seen[key] = true
				cycle := Cycle{Segments: segs, Nodes: make([]geometry.Vector3, len(pathNodes))}
				for i, n := range pathNodes {
					cycle.Nodes[i] = nodes[n]
				}
				cycles = append(cycles, cycle)
				continue
			}
			// the start node is the smallest of the cycle
			if e.to <= start || onPath[e.to] {
				continue
			}
			onPath[e.to] = true
			pathNodes = append(pathNodes, e.to)
			pathSegments = append(pathSegments, e.segment)
			walk(start, e.to)
			pathNodes = pathNodes[:len(pathNodes)-1]
			pathSegments = pathSegments[:len(pathSegments)-1]
			onPath[e.to] = false
		}
	}

	for start := range nodes {
		onPath[start] = true
		pathNodes = append(pathNodes[:0], start)
		pathSegments = pathSegments[:0]
		walk(start, start)
		onPath[start] = false
	}

	sort.SliceStable(cycles, func(i, j int) bool {
		return minInt(cycles[i].Segments) < minInt(cycles[j].Segments)
	})
	return cycles
}

func cycleKey(segments []int) string {
	sorted := append([]int(nil), segments...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, s := range sorted {
		parts[i] = fmt.Sprint(s)
	}
	return strings.Join(parts, ",")
}

func minInt(values []int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
