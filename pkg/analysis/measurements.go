package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gohoneycomb/pkg/geometry"
	"github.com/philipparndt/gohoneycomb/pkg/honeycomb"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// BondInfo contains information about a C-C bond of a channel wall
type BondInfo struct {
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
	Plane  int
}

// PlaneInfo describes one wall of a channel
type PlaneInfo struct {
	Center    geometry.Vector3
	Atoms     int
	Hexagons  int
	Pentagons int
	EdgeHoles int
	// DistanceToCenter is the distance from the channel axis to the wall
	DistanceToCenter float64
	// AngleToNext is the angle (degrees, 90..180) between this wall and
	// the next one around the channel
	AngleToNext float64
}

// ChannelReport contains various measurements of a channel
type ChannelReport struct {
	Center    geometry.Vector3
	Limits    geometry.Limits
	Atoms     int
	Planes    []PlaneInfo
	Hexagons  int
	Pentagons int
	// EdgeDistances are the distances from the channel axis to the wall
	// ends, one per corner
	EdgeDistances []float64

	MinBondLength float64
	MaxBondLength float64
	AvgBondLength float64
	AllBonds      []BondInfo

	AvgClosestAtomDist      float64
	AvgClosestHexagonDist   float64 // 0 with fewer than two hexagons
	MinHexagonLayerDistance float64 // 0 with a single layer of hexagons

	// Radius comes from a least-squares circle through the atoms' xy
	Radius       float64
	RadiusStdDev float64
}

// AnalyzeChannel performs comprehensive analysis on a channel
func AnalyzeChannel(channel *honeycomb.Channel) (*ChannelReport, error) {
	planes, err := channel.Planes()
	if err != nil {
		return nil, fmt.Errorf("analyze channel: %w", err)
	}
	center := channel.Center()
	report := &ChannelReport{
		Center:             center,
		Limits:             channel.Points().Limits(),
		Atoms:              channel.Points().Len(),
		AvgClosestAtomDist: channel.AveDistBetweenClosestAtoms(),
		AllBonds:           make([]BondInfo, 0),
	}

	var corners []geometry.XY
	for i, p := range planes {
		info := PlaneInfo{
			Center:           p.Center(),
			Atoms:            p.Points().Len(),
			Hexagons:         len(p.Hexagons()),
			Pentagons:        len(p.Pentagons()),
			EdgeHoles:        p.EdgeHoles().Len(),
			DistanceToCenter: math.Abs(p.Params().SignedDistance(center)),
			AngleToNext:      angleBetweenWalls(p, planes[(i+1)%len(planes)]),
		}
		report.Planes = append(report.Planes, info)
		report.Hexagons += info.Hexagons
		report.Pentagons += info.Pentagons

		for _, b := range p.Bonds() {
			report.AllBonds = append(report.AllBonds, BondInfo{Start: b.A, End: b.B, Length: b.A.Distance(b.B), Plane: i})
		}

		a, b := geometry.Line(geometry.GroupByUniqueXY(p.Points())).Ends()
		for _, end := range []geometry.XY{a, b} {
			if !containsXY(corners, end) {
				corners = append(corners, end)
				report.EdgeDistances = append(report.EdgeDistances, end.Distance(center.XY()))
			}
		}
	}

	if len(report.AllBonds) > 0 {
		lengths := make([]float64, len(report.AllBonds))
		for i, b := range report.AllBonds {
			lengths[i] = b.Length
		}
		report.MinBondLength = floats.Min(lengths)
		report.MaxBondLength = floats.Max(lengths)
		report.AvgBondLength = stat.Mean(lengths, nil)
	}

	if d, err := channel.AveDistBetweenClosestHexagonCenters(); err == nil {
		report.AvgClosestHexagonDist = d
	}
	if centers, err := channel.HexagonCenters(); err == nil {
		report.MinHexagonLayerDistance = minLayerDistance(centers)
	}

	if fit, err := geometry.FitCircleXY(channel.Points().Slice()); err == nil {
		report.Radius = fit.Radius
		report.RadiusStdDev = fit.StdDev
	}
	return report, nil
}

// angleBetweenWalls compares the directions of the two walls in the
// xy-plane and returns the obtuse angle between them.
func angleBetweenWalls(a, b *honeycomb.Plane) float64 {
	da := wallDirection(a.Params())
	db := wallDirection(b.Params())
	cos := math.Max(-1, math.Min(1, da.Dot(db)))
	angle := math.Acos(cos) * 180 / math.Pi
	if angle < 90 {
		angle = 180 - angle
	}
	return angle
}

func wallDirection(p geometry.PlaneParams) geometry.Vector3 {
	return geometry.NewVector3(-p.B, p.A, 0).Normalize()
}

// minLayerDistance is the smallest z gap between distinct hexagon layers
func minLayerDistance(centers geometry.Points) float64 {
	var zs []float64
	for i := 0; i < centers.Len(); i++ {
		z := math.Round(centers.At(i).Z*1e3) / 1e3
		if !containsFloat(zs, z) {
			zs = append(zs, z)
		}
	}
	if len(zs) < 2 {
		return 0
	}
	sort.Float64s(zs)
	gaps := make([]float64, len(zs)-1)
	for i := range gaps {
		gaps[i] = zs[i+1] - zs[i]
	}
	return floats.Min(gaps)
}

func containsFloat(values []float64, v float64) bool {
	for _, x := range values {
		if math.Abs(x-v) < 1e-9 {
			return true
		}
	}
	return false
}

func containsXY(points []geometry.XY, p geometry.XY) bool {
	for _, q := range points {
		if q.Distance(p) < 1e-6 {
			return true
		}
	}
	return false
}

// FindBondsByLength finds all bonds within a length range
func FindBondsByLength(report *ChannelReport, minLength, maxLength float64) []BondInfo {
	var bonds []BondInfo
	for _, bond := range report.AllBonds {
		if bond.Length >= minLength && bond.Length <= maxLength {
			bonds = append(bonds, bond)
		}
	}
	return bonds
}

// FindLongestBonds returns the N longest bonds of the channel; a negative
// count returns none
func FindLongestBonds(report *ChannelReport, count int) []BondInfo {
	bonds := make([]BondInfo, len(report.AllBonds))
	copy(bonds, report.AllBonds)

	sort.SliceStable(bonds, func(i, j int) bool {
		return bonds[i].Length > bonds[j].Length
	})

	return bonds[:clampCount(count, len(bonds))]
}

// FindShortestBonds returns the N shortest bonds of the channel
func FindShortestBonds(report *ChannelReport, count int) []BondInfo {
	bonds := make([]BondInfo, len(report.AllBonds))
	copy(bonds, report.AllBonds)

	sort.SliceStable(bonds, func(i, j int) bool {
		return bonds[i].Length < bonds[j].Length
	})

	return bonds[:clampCount(count, len(bonds))]
}

// clampCount limits a requested result count to [0, n]
func clampCount(count, n int) int {
	return max(0, min(count, n))
}

// FindNearestAtom finds the atom nearest to a given point
func FindNearestAtom(points geometry.Points, point geometry.Vector3) (geometry.Vector3, float64) {
	nearest, dist, ok := geometry.NearestPoint(point, points)
	if !ok {
		return geometry.Vector3{}, math.Inf(1)
	}
	return nearest, dist
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "Å"
	}
	return fmt.Sprintf("%.4f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}
