package honeycomb

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gohoneycomb/pkg/geometry"
)

// ErrNoChannels is returned when no closed channel could be derived from the
// lattice, even with the most relaxed clearance coefficient.
var ErrNoChannels = errors.New("no channels derivable from input")

// SplitIntoChannels partitions a lattice into channels. Walls are runs of
// collinear atom columns; a channel is a ring of cfg.PolygonNodes walls whose
// end points meet. The channel around the origin (or, failing that, the
// last one lying entirely on the non-negative side of x or y) comes first;
// the others keep their discovery order.
//
// When no ring closes, the clearance coefficient is raised by
// cfg.CoefficientStep up to cfg.MaxClearanceCoefficient before giving up
// with ErrNoChannels.
func SplitIntoChannels(lattice geometry.Points, cfg SplitConfig) ([]*Channel, error) {
	log := cfg.logger()

	if lattice.Len() < 3 {
		return nil, fmt.Errorf("split into channels: %w: %d points", geometry.ErrDegenerate, lattice.Len())
	}
	columns := geometry.GroupByUniqueXY(lattice)
	if len(columns) < 3 {
		return nil, fmt.Errorf("split into channels: %w: %d atom columns", geometry.ErrDegenerate, len(columns))
	}

	lines := geometry.GroupByXYLines(columns, cfg.Epsilon, cfg.MinPointsInLine)
	spacing := geometry.MaxNearestColumnDistance(columns)

	attempts := 1
	if cfg.CoefficientStep > 0 && cfg.MaxClearanceCoefficient > cfg.ClearanceCoefficient {
		attempts += int(math.Floor((cfg.MaxClearanceCoefficient-cfg.ClearanceCoefficient)/cfg.CoefficientStep + 1e-9))
	}

	coefficient := cfg.ClearanceCoefficient
	for attempt := 0; attempt < attempts; attempt++ {
		coefficient = cfg.ClearanceCoefficient + float64(attempt)*cfg.CoefficientStep
		channels := splitOnce(lines, spacing*coefficient, cfg)
		if len(channels) > 0 {
			log.Debug("split lattice into channels",
				"channels", len(channels), "clearance_coefficient", coefficient, "lines", len(lines))
			return channels, nil
		}
		log.Debug("no channels found, relaxing clearance", "clearance_coefficient", coefficient)
	}
	return nil, fmt.Errorf("split into channels: %w (clearance coefficient up to %.2f)", ErrNoChannels, coefficient)
}

func splitOnce(lines []geometry.Line, threshold float64, cfg SplitConfig) []*Channel {
	var groups []geometry.Line
	seen := make(map[string]bool)
	for _, line := range lines {
		for _, g := range geometry.SplitLine(line, threshold) {
			key := groupKey(g)
			if seen[key] {
				continue
			}
			seen[key] = true
			groups = append(groups, g)
		}
	}
	groups = FilterPlaneGroups(groups, cfg.TopSizes, cfg.KeepAboveSize)

	segments := make([]Segment, len(groups))
	for i, g := range groups {
		lo, hi := g.Ends()
		segments[i] = Segment{A: lo.Vector3(), B: hi.Vector3()}
	}

	var channels []*Channel
	for _, cycle := range FindPolygonNodeIndexes(segments, cfg.PolygonNodes, 1e-6) {
		var pts []geometry.Vector3
		for _, s := range cycle.Segments {
			pts = append(pts, groups[s].Points()...)
		}
		boundary := make([]geometry.XY, len(cycle.Nodes))
		for i, n := range cycle.Nodes {
			boundary[i] = n.XY()
		}
		channels = append(channels, NewChannel(geometry.NewPoints(pts).Unique().Sorted(), boundary, cfg.Plane))
	}
	return promoteMainChannel(channels)
}

// FilterPlaneGroups keeps the groups whose size is one of the topSizes
// largest distinct sizes, or exceeds keepAbove.
func FilterPlaneGroups(groups []geometry.Line, topSizes, keepAbove int) []geometry.Line {
	present := make(map[int]bool)
	for _, g := range groups {
		present[len(g)] = true
	}
	sizes := make([]int, 0, len(present))
	for s := range present {
		sizes = append(sizes, s)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))

	allowed := make(map[int]bool)
	for i, s := range sizes {
		if i < topSizes || s > keepAbove {
			allowed[s] = true
		}
	}

	var kept []geometry.Line
	for _, g := range groups {
		if allowed[len(g)] {
			kept = append(kept, g)
		}
	}
	return kept
}

func promoteMainChannel(channels []*Channel) []*Channel {
	main := -1
	for i, c := range channels {
		if c.ContainsXY(geometry.XY{}) {
			main = i
			break
		}
	}
	if main < 0 {
		// the last channel lying in a non-negative half plane wins
		for i, c := range channels {
			if allNonNegative(c.points) {
				main = i
			}
		}
	}
	if main <= 0 {
		return channels
	}
	ordered := make([]*Channel, 0, len(channels))
	ordered = append(ordered, channels[main])
	ordered = append(ordered, channels[:main]...)
	return append(ordered, channels[main+1:]...)
}

func allNonNegative(points geometry.Points) bool {
	l := points.Limits()
	return l.Min.X >= 0 || l.Min.Y >= 0
}
