package intercalation

import (
	"fmt"

	"github.com/philipparndt/gohoneycomb/pkg/geometry"
	"github.com/philipparndt/gohoneycomb/pkg/honeycomb"
)

// BuildNearPlanes proposes guest positions facing the first planesLimit
// walls of the channel: above every hexagon center (or every wall atom
// when a wall has no rings), moved towards the channel axis by k inter-layer
// distances for k = 1..layers. The result holds one cluster per wall.
func BuildNearPlanes(channel *honeycomb.Channel, planesLimit, layers int, species AtomParams) ([]geometry.Points, error) {
	planes, err := channel.Planes()
	if err != nil {
		return nil, fmt.Errorf("build inter atoms: %w", err)
	}
	if planesLimit <= 0 || planesLimit > len(planes) {
		planesLimit = len(planes)
	}
	if layers < 1 {
		layers = 1
	}

	center := channel.Center()
	clusters := make([]geometry.Points, 0, planesLimit)
	for _, plane := range planes[:planesLimit] {
		clusters = append(clusters, nearPlane(plane, center, layers, species.DistBetweenLayers()))
	}
	return clusters, nil
}

func nearPlane(plane *honeycomb.Plane, center geometry.Vector3, layers int, step float64) geometry.Points {
	var seeds []geometry.Vector3
	for _, h := range plane.Hexagons() {
		seeds = append(seeds, h.Center())
	}
	if len(seeds) == 0 {
		seeds = plane.Points().Slice()
	}

	inward := plane.Params().Normal().Normalize().Mul(plane.DirectionToCenter(center))
	candidates := make([]geometry.Vector3, 0, len(seeds)*layers)
	for k := 1; k <= layers; k++ {
		offset := inward.Mul(float64(k) * step)
		for _, s := range seeds {
			candidates = append(candidates, s.Add(offset))
		}
	}
	return geometry.NewPoints(candidates)
}

// Merge joins clusters into one point set
func Merge(clusters []geometry.Points) geometry.Points {
	var out geometry.Points
	for _, c := range clusters {
		out = out.Append(c)
	}
	return out
}
