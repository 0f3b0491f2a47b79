package honeycomb

import (
	"errors"
	"math"
	"testing"

	"github.com/philipparndt/gohoneycomb/internal/latticetest"
	"github.com/philipparndt/gohoneycomb/pkg/geometry"
)

func singleChannel(t *testing.T) (*Channel, latticetest.Spec) {
	t.Helper()
	spec := latticetest.Spec{HexagonsPerWall: 2, Rows: 2}
	channels, err := SplitIntoChannels(latticetest.Lattice(spec), DefaultSplitConfig())
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	return channels[0], spec
}

func TestBuildPlanesHexagonalPrism(t *testing.T) {
	channel, spec := singleChannel(t)

	planes, err := channel.Planes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(planes) != 6 {
		t.Fatalf("expected 6 planes, got %d", len(planes))
	}

	for i, p := range planes {
		if got := len(p.Hexagons()); got != spec.HexagonsPerPlane() {
			t.Errorf("plane %d: expected %d hexagons, got %d", i, spec.HexagonsPerPlane(), got)
		}
		if got := len(p.Pentagons()); got != 0 {
			t.Errorf("plane %d: expected no pentagons, got %d", i, got)
		}
		if math.Abs(p.BondLength()-latticetest.Bond) > 1e-9 {
			t.Errorf("plane %d: bond length %v", i, p.BondLength())
		}
		params := p.Params()
		if params.B < 0 {
			t.Errorf("plane %d: B must be non-negative, got %v", i, params.B)
		}
		for j := 0; j < p.Points().Len(); j++ {
			if d := params.Residual(p.Points().At(j)); math.Abs(d) > 1e-6 {
				t.Errorf("plane %d: point %v is %v off the plane", i, p.Points().At(j), d)
			}
		}
		if d := math.Abs(params.SignedDistance(channel.Center())); math.Abs(d-spec.Apothem()) > 1e-6 {
			t.Errorf("plane %d: expected the wall %v from the center, got %v", i, spec.Apothem(), d)
		}
	}

	// walls come in counter-clockwise order
	prev := -1.0
	for i, p := range planes {
		c := p.Center()
		a := math.Atan2(c.Y, c.X)
		if a < 0 {
			a += 2 * math.Pi
		}
		if a <= prev {
			t.Errorf("plane %d out of angular order: %v after %v", i, a, prev)
		}
		prev = a
	}
}

func TestHexagonRingOrder(t *testing.T) {
	channel, _ := singleChannel(t)
	planes, err := channel.Planes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, h := range planes[0].Hexagons() {
		pts := h.Points()
		if len(pts) != 6 || h.Kind != Hexagon {
			t.Fatalf("unexpected polygon %v with %d points", h.Kind, len(pts))
		}
		for i := range pts {
			next := pts[(i+1)%len(pts)]
			if d := pts[i].Distance(next); math.Abs(d-latticetest.Bond) > 1e-9 {
				t.Errorf("consecutive ring atoms %v and %v are %v apart", pts[i], next, d)
			}
		}
		if d := h.Center().Distance(geometry.Centroid(pts)); d > 1e-12 {
			t.Errorf("cached center off by %v", d)
		}
	}
}

func TestEdgeHoles(t *testing.T) {
	channel, _ := singleChannel(t)
	planes, err := channel.Planes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top := channel.Points().Limits().Max.Z

	for i, p := range planes {
		holes := p.EdgeHoles()
		if holes.Len() != 2 {
			t.Errorf("plane %d: expected 2 edge holes, got %d", i, holes.Len())
			continue
		}
		for j := 0; j < holes.Len(); j++ {
			h := holes.At(j)
			if math.Abs(h.Z-top) > 1e-9 {
				t.Errorf("plane %d: hole %v should sit on the top border z=%v", i, h, top)
			}
			if d := geometry.MinDistanceTo(h, p.Points()); d < latticetest.Bond-1e-9 {
				t.Errorf("plane %d: hole %v overlaps an atom (%v)", i, h, d)
			}
			if d := math.Abs(p.Params().SignedDistance(h)); d > 1e-6 {
				t.Errorf("plane %d: hole %v is off the plane by %v", i, h, d)
			}
		}
	}
}

func TestChannelStatistics(t *testing.T) {
	channel, _ := singleChannel(t)

	if got := channel.AveDistBetweenClosestAtoms(); math.Abs(got-latticetest.Bond) > 1e-9 {
		t.Errorf("expected the average closest distance to be the bond, got %v", got)
	}
	got, err := channel.AveDistBetweenClosestHexagonCenters()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got <= 0 || got > math.Sqrt(3)*latticetest.Bond+1e-9 {
		t.Errorf("unexpected average hexagon center distance %v", got)
	}
}

func TestNewPlaneDegenerate(t *testing.T) {
	_, err := NewPlane(geometry.NewPoints([]geometry.Vector3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}}), DefaultPlaneConfig())
	if !errors.Is(err, geometry.ErrDegenerate) {
		t.Errorf("expected ErrDegenerate, got %v", err)
	}

	skew := geometry.NewPoints([]geometry.Vector3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}})
	if _, err := NewPlane(skew, DefaultPlaneConfig()); !errors.Is(err, geometry.ErrDegenerate) {
		t.Errorf("expected ErrDegenerate for non-planar points, got %v", err)
	}
}

func TestFindPolygonsInWall(t *testing.T) {
	wall := latticetest.Wall(geometry.XY{}, geometry.XY{Y: 4 * math.Sqrt(3) / 2 * latticetest.Bond}, 2, 1)
	hexagons, err := FindPolygons(geometry.NewPoints(wall), Hexagon, DefaultPlaneConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hexagons) != 2 {
		t.Errorf("expected 2 hexagons, got %d", len(hexagons))
	}
}

// pentagonWall is a five-membered ring in the plane y = 0 with one spoke
// atom bonded to every ring atom
func pentagonWall() geometry.Points {
	r := latticetest.Bond / (2 * math.Sin(math.Pi/5))
	var pts []geometry.Vector3
	for k := 0; k < 5; k++ {
		a := 2 * math.Pi * float64(k) / 5
		pts = append(pts,
			geometry.NewVector3(r*math.Cos(a), 0, 5+r*math.Sin(a)),
			geometry.NewVector3((r+latticetest.Bond)*math.Cos(a), 0, 5+(r+latticetest.Bond)*math.Sin(a)))
	}
	return geometry.NewPoints(pts)
}

func TestFindPentagon(t *testing.T) {
	p, err := NewPlane(pentagonWall(), DefaultPlaneConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(p.Hexagons()); got != 0 {
		t.Errorf("expected no hexagons, got %d", got)
	}
	pentagons := p.Pentagons()
	if len(pentagons) != 1 {
		t.Fatalf("expected 1 pentagon, got %d", len(pentagons))
	}

	ring := pentagons[0]
	if ring.Kind != Pentagon {
		t.Errorf("expected kind %v, got %v", Pentagon, ring.Kind)
	}
	pts := ring.Points()
	if len(pts) != 5 {
		t.Fatalf("expected 5 ring atoms, got %d", len(pts))
	}
	for i := range pts {
		next := pts[(i+1)%len(pts)]
		if d := pts[i].Distance(next); math.Abs(d-latticetest.Bond) > 1e-9 {
			t.Errorf("ring atoms %v and %v are %v apart, ring not closed by bonds", pts[i], next, d)
		}
	}
	if d := ring.Center().Distance(geometry.NewVector3(0, 0, 5)); d > 1e-9 {
		t.Errorf("expected the ring centered at (0, 0, 5), got %v", ring.Center())
	}

	found, err := FindPolygons(pentagonWall(), Pentagon, DefaultPlaneConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 1 {
		t.Errorf("expected FindPolygons to return 1 pentagon, got %d", len(found))
	}
}
