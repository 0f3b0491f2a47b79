package analysis

import (
	"math"
	"testing"

	"github.com/philipparndt/gohoneycomb/internal/latticetest"
	"github.com/philipparndt/gohoneycomb/pkg/geometry"
	"github.com/philipparndt/gohoneycomb/pkg/honeycomb"
	"github.com/philipparndt/gohoneycomb/pkg/intercalation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixture = latticetest.Spec{HexagonsPerWall: 2, Rows: 2}

func channel(t *testing.T) *honeycomb.Channel {
	t.Helper()
	channels, err := honeycomb.SplitIntoChannels(latticetest.Lattice(fixture), honeycomb.DefaultSplitConfig())
	require.NoError(t, err)
	return channels[0]
}

func TestAnalyzeChannel(t *testing.T) {
	c := channel(t)
	report, err := AnalyzeChannel(c)
	require.NoError(t, err)

	if report.Atoms != c.Points().Len() {
		t.Errorf("expected %d atoms, got %d", c.Points().Len(), report.Atoms)
	}
	require.Len(t, report.Planes, 6)
	if report.Hexagons != 6*fixture.HexagonsPerPlane() {
		t.Errorf("expected %d hexagons, got %d", 6*fixture.HexagonsPerPlane(), report.Hexagons)
	}
	if report.Pentagons != 0 {
		t.Errorf("expected no pentagons, got %d", report.Pentagons)
	}
	for i, p := range report.Planes {
		assert.InDelta(t, fixture.Apothem(), p.DistanceToCenter, 1e-6, "plane %d distance", i)
		assert.InDelta(t, 120, p.AngleToNext, 1e-6, "plane %d angle", i)
	}

	require.Len(t, report.EdgeDistances, 6)
	for _, d := range report.EdgeDistances {
		assert.InDelta(t, fixture.Side(), d, 1e-6)
	}

	assert.InDelta(t, latticetest.Bond, report.MinBondLength, 1e-6)
	assert.InDelta(t, latticetest.Bond, report.MaxBondLength, 1e-6)
	assert.InDelta(t, latticetest.Bond, report.AvgBondLength, 1e-6)
	assert.InDelta(t, latticetest.Bond, report.AvgClosestAtomDist, 1e-6)
	assert.InDelta(t, 1.5*latticetest.Bond, report.MinHexagonLayerDistance, 1e-3)
	assert.Positive(t, report.AvgClosestHexagonDist)

	if report.Radius < fixture.Apothem() || report.Radius > fixture.Side() {
		t.Errorf("expected a radius between %.3f and %.3f, got %.3f", fixture.Apothem(), fixture.Side(), report.Radius)
	}
	if report.Center.DistanceXY(geometry.Vector3{}) > 1e-9 {
		t.Errorf("expected the center on the origin, got %v", report.Center)
	}
}

func TestBondQueries(t *testing.T) {
	report, err := AnalyzeChannel(channel(t))
	require.NoError(t, err)
	require.NotEmpty(t, report.AllBonds)

	longest := FindLongestBonds(report, 3)
	require.Len(t, longest, 3)
	for i := 1; i < len(longest); i++ {
		if longest[i].Length > longest[i-1].Length {
			t.Errorf("longest bonds not sorted at %d", i)
		}
	}
	if n := len(FindShortestBonds(report, 1_000_000)); n != len(report.AllBonds) {
		t.Errorf("expected all %d bonds, got %d", len(report.AllBonds), n)
	}
	if n := len(FindLongestBonds(report, -1)); n != 0 {
		t.Errorf("expected no bonds for a negative count, got %d", n)
	}
	if n := len(FindShortestBonds(report, -5)); n != 0 {
		t.Errorf("expected no bonds for a negative count, got %d", n)
	}
	if got := FindBondsByLength(report, 1.0, 1.3); len(got) != 0 {
		t.Errorf("expected no bonds shorter than 1.3, got %d", len(got))
	}
	if got := FindBondsByLength(report, 1.3, 1.5); len(got) != len(report.AllBonds) {
		t.Errorf("expected every bond around 1.42, got %d of %d", len(got), len(report.AllBonds))
	}
}

func TestAnalyzeGuests(t *testing.T) {
	c := channel(t)
	center := c.Center()
	guests := geometry.NewPoints([]geometry.Vector3{center, center.Add(geometry.NewVector3(1, 0, 0))})

	infos, err := AnalyzeGuests(c, guests)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.InDelta(t, fixture.Apothem(), infos[0].MinToPlane, 1e-6)
	assert.InDelta(t, 1, infos[0].MinToGuest, 1e-12)
	assert.InDelta(t, 1, infos[1].MinToGuest, 1e-12)
	if infos[0].MinToLattice < fixture.Apothem()-1e-9 {
		t.Errorf("expected the center at least %.3f from the lattice, got %.3f", fixture.Apothem(), infos[0].MinToLattice)
	}

	lone, err := AnalyzeGuests(c, geometry.NewPoints([]geometry.Vector3{center}))
	require.NoError(t, err)
	if !math.IsInf(lone[0].MinToGuest, 1) {
		t.Errorf("expected +Inf for a lone guest, got %v", lone[0].MinToGuest)
	}
}

func TestConstantsTable(t *testing.T) {
	al := intercalation.DefaultSpecies()["al"]

	table := ConstantsTable(al, geometry.Points{})
	require.Len(t, table, 6)
	assert.Equal(t, "Lattice parameter", table[0].Name)
	assert.InDelta(t, 4.0495, table[0].Value, 1e-12)
	assert.InDelta(t, al.MinAllowedDist(), table[5].Value, 1e-12)

	table = ConstantsTable(al, latticetest.Lattice(fixture))
	require.Len(t, table, 7)
	last := table[6]
	assert.Equal(t, "Average Al-C distance", last.Name)
	assert.InDelta(t, (latticetest.Bond+al.DistBetweenAtoms())/2, last.Value, 1e-6)
}

func TestFindNearestAtom(t *testing.T) {
	pts := geometry.NewPoints([]geometry.Vector3{geometry.NewVector3(0, 0, 0), geometry.NewVector3(3, 0, 0)})
	nearest, d := FindNearestAtom(pts, geometry.NewVector3(2, 0, 0))
	if nearest != geometry.NewVector3(3, 0, 0) || d != 1 {
		t.Errorf("expected (3, 0, 0) at 1, got %v at %v", nearest, d)
	}
	if _, d := FindNearestAtom(geometry.Points{}, geometry.Vector3{}); !math.IsInf(d, 1) {
		t.Errorf("expected +Inf for no atoms, got %v", d)
	}
}

func TestFormat(t *testing.T) {
	if got := FormatVector(geometry.NewVector3(1, -2, 0.5)); got != "(1.0000, -2.0000, 0.5000)" {
		t.Errorf("expected (1.0000, -2.0000, 0.5000), got %s", got)
	}
	if got := FormatMeasurement(1.42, ""); got != "1.4200 Å" {
		t.Errorf("expected 1.4200 Å, got %s", got)
	}
}
