package honeycomb

import "log/slog"

// PlaneConfig tunes the reconstruction of channel walls and their rings
type PlaneConfig struct {
	// Epsilon is the largest distance of a column from a wall line
	Epsilon float64 `yaml:"epsilon" toml:"epsilon"`
	// MinPointsInLine is the smallest number of columns forming a wall
	MinPointsInLine int `yaml:"min_points_in_line" toml:"min_points_in_line"`
	// ClearanceCoefficient multiplies the column spacing to get the gap
	// that separates two walls lying on the same line
	ClearanceCoefficient float64 `yaml:"clearance_coefficient" toml:"clearance_coefficient"`
	// BondTolerance multiplies the shortest bond to decide which atoms are bonded
	BondTolerance float64 `yaml:"bond_tolerance" toml:"bond_tolerance"`
	// PlaneTolerance is the largest distance of a wall atom from its plane
	PlaneTolerance float64 `yaml:"plane_tolerance" toml:"plane_tolerance"`
}

// SplitConfig tunes how a lattice is split into channels
type SplitConfig struct {
	Epsilon                 float64 `yaml:"epsilon" toml:"epsilon"`
	MinPointsInLine         int     `yaml:"min_points_in_line" toml:"min_points_in_line"`
	ClearanceCoefficient    float64 `yaml:"clearance_coefficient" toml:"clearance_coefficient"`
	CoefficientStep         float64 `yaml:"coefficient_step" toml:"coefficient_step"`
	MaxClearanceCoefficient float64 `yaml:"max_clearance_coefficient" toml:"max_clearance_coefficient"`
	// PolygonNodes is the number of walls closing a channel
	PolygonNodes int `yaml:"polygon_nodes" toml:"polygon_nodes"`
	// TopSizes largest distinct wall sizes are kept, plus every wall
	// larger than KeepAboveSize columns
	TopSizes      int `yaml:"top_sizes" toml:"top_sizes"`
	KeepAboveSize int `yaml:"keep_above_size" toml:"keep_above_size"`

	Plane PlaneConfig `yaml:"plane" toml:"plane"`

	Logger *slog.Logger `yaml:"-" toml:"-"`
}

// DefaultPlaneConfig returns the wall reconstruction defaults
func DefaultPlaneConfig() PlaneConfig {
	return PlaneConfig{
		Epsilon:              1e-2,
		MinPointsInLine:      3,
		ClearanceCoefficient: 1.25,
		BondTolerance:        1.2,
		PlaneTolerance:       0.05,
	}
}

// DefaultSplitConfig returns the channel splitting defaults
func DefaultSplitConfig() SplitConfig {
	return SplitConfig{
		Epsilon:                 1e-1,
		MinPointsInLine:         3,
		ClearanceCoefficient:    1.25,
		CoefficientStep:         0.25,
		MaxClearanceCoefficient: 2.5,
		PolygonNodes:            6,
		TopSizes:                3,
		KeepAboveSize:           4,
		Plane:                   DefaultPlaneConfig(),
	}
}

func (c SplitConfig) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
