package intercalation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/philipparndt/gohoneycomb/pkg/geometry"
	"github.com/philipparndt/gohoneycomb/pkg/honeycomb"
	"golang.org/x/sync/errgroup"
)

// Options selects the intercalation steps and their limits
type Options struct {
	// NumberOfPlanes is the number of walls of the main channel to fill
	NumberOfPlanes int `yaml:"number_of_planes" toml:"number_of_planes"`
	// Layers is the number of guest layers stacked in front of a wall
	Layers int `yaml:"layers" toml:"layers"`
	// PlaneMargin is the smallest guest-to-wall distance; 0 uses the
	// species' minimum allowed distance
	PlaneMargin float64 `yaml:"plane_margin" toml:"plane_margin"`

	ReplaceNearby  bool `yaml:"replace_nearby" toml:"replace_nearby"`
	FilterPlanes   bool `yaml:"filter_planes" toml:"filter_planes"`
	RemoveTooClose bool `yaml:"remove_too_close" toml:"remove_too_close"`
	Equidistant    bool `yaml:"equidistant" toml:"equidistant"`
	Reflect        bool `yaml:"reflect" toml:"reflect"`
	ToChannels     bool `yaml:"to_channels" toml:"to_channels"`
	RemoveBoundary bool `yaml:"remove_boundary" toml:"remove_boundary"`

	MaxIterations int           `yaml:"max_iterations" toml:"max_iterations"`
	MaxRuntime    time.Duration `yaml:"max_runtime" toml:"max_runtime"`
	Workers       int           `yaml:"workers" toml:"workers"`
}

// DefaultOptions fills all six walls with one layer and runs every step
func DefaultOptions() Options {
	return Options{
		NumberOfPlanes: 6,
		Layers:         1,
		ReplaceNearby:  true,
		FilterPlanes:   true,
		RemoveTooClose: true,
		Equidistant:    true,
		Reflect:        true,
		ToChannels:     true,
		MaxIterations:  200,
		Workers:        4,
	}
}

// Engine runs the whole intercalation of a lattice
type Engine struct {
	Species AtomParams
	Split   honeycomb.SplitConfig
	Options Options
	Logger  *slog.Logger
}

// Result holds the intermediate and final guest placements
type Result struct {
	Channels []*honeycomb.Channel
	// Candidates are the filtered positions proposed for wall 0
	Candidates geometry.Points
	Optimized  OptimizeResult
	// Channel holds the main channel guests by wall
	Channel Placement
	// Structure holds the guests of the whole lattice by channel
	Structure Placement
}

// Guests returns the final guest atoms sorted by z, y, x
func (r *Result) Guests() geometry.Points {
	return r.Structure.Points.Sorted()
}

// Run splits the lattice, seeds guests in front of wall 0 of the main
// channel, places them equidistantly, and replicates them over the walls and
// the channels of the lattice.
func (e Engine) Run(ctx context.Context, lattice geometry.Points) (*Result, error) {
	log := e.logger()
	opts := e.Options
	species := e.Species
	if species.LatticeParam <= 0 {
		return nil, fmt.Errorf("intercalate: %w: species lattice parameter not set", ErrUnknownSpecies)
	}

	split := e.Split
	if split.Logger == nil {
		split.Logger = log
	}
	channels, err := honeycomb.SplitIntoChannels(lattice, split)
	if err != nil {
		return nil, fmt.Errorf("intercalate: %w", err)
	}
	main := channels[0]
	if _, err := main.Planes(); err != nil {
		return nil, fmt.Errorf("intercalate: main channel: %w", err)
	}
	if err := BuildAllPlanes(ctx, channels[1:], opts.Workers, log); err != nil {
		return nil, fmt.Errorf("intercalate: %w", err)
	}
	res := &Result{Channels: channels}

	clusters, err := BuildNearPlanes(main, 1, opts.Layers, species)
	if err != nil {
		return nil, fmt.Errorf("intercalate: %w", err)
	}
	candidates := Merge(clusters)
	if opts.ReplaceNearby {
		candidates = ReplaceNearbyAtomsWithOne(candidates, species)
	}
	if opts.FilterPlanes {
		margin := opts.PlaneMargin
		if margin <= 0 {
			margin = species.MinAllowedDist()
		}
		candidates, err = FilterRelatedChannelPlanes(candidates, main, margin)
		if err != nil {
			return nil, fmt.Errorf("intercalate: %w", err)
		}
	}
	if opts.RemoveTooClose {
		candidates = RemoveTooCloseAtoms(candidates, main.Points(), species)
	}
	if candidates.Len() == 0 {
		return nil, fmt.Errorf("intercalate: %w: no candidate positions left in front of wall 0", geometry.ErrDegenerate)
	}
	res.Candidates = candidates
	log.Debug("candidates for wall 0", "count", candidates.Len())

	placed := candidates
	if opts.Equidistant {
		optimizer := Optimizer{Species: species, MaxIterations: opts.MaxIterations, MaxRuntime: opts.MaxRuntime, Logger: log}
		res.Optimized, err = optimizer.Optimize(ctx, main.Points(), candidates)
		if err != nil {
			return nil, fmt.Errorf("intercalate: %w", err)
		}
		filtered := FilterRelatedLattice(res.Optimized.Points, main.Points(), species.MinRecommendedDist())
		if filtered.Len() == 0 {
			log.Warn("every optimized atom is too close to the lattice, keeping the candidates")
			filtered = candidates
		}
		placed = AdjustClosestAtoms(filtered, main.Points(), species)
		if opts.RemoveTooClose {
			placed = RemoveTooCloseAtoms(placed, main.Points(), species)
		}
		if placed.Len() == 0 {
			log.Warn("repaired placement lost every atom, keeping the optimized one")
			placed = filtered
		}
	}

	translator := Translator{Species: species, Reflect: opts.Reflect, Workers: opts.Workers, Logger: log}
	res.Channel, err = translator.TranslateToPlanes(main, placed, opts.NumberOfPlanes)
	if err != nil {
		return nil, fmt.Errorf("intercalate: %w", err)
	}

	res.Structure = res.Channel
	if opts.ToChannels {
		res.Structure, err = translator.TranslateToChannels(ctx, lattice, channels, res.Channel.Points)
		if err != nil {
			return nil, fmt.Errorf("intercalate: %w", err)
		}
	}
	if opts.RemoveBoundary {
		res.Structure = res.Structure.within(lattice.Limits())
	}
	log.Info("intercalation done", "channels", len(channels), "guests", res.Structure.Points.Len())
	return res, nil
}

func (p Placement) within(limits geometry.Limits) Placement {
	var out Placement
	for i := 0; i < p.Points.Len(); i++ {
		if limits.ContainsXY(p.Points.At(i), 1e-6) {
			out.add(geometry.NewPoints([]geometry.Vector3{p.Points.At(i)}), p.Origin[i])
		}
	}
	return out
}

// BuildAllPlanes reconstructs the walls of every channel, one task per
// channel. Failures are logged; only cancellation is returned.
func BuildAllPlanes(ctx context.Context, channels []*honeycomb.Channel, workers int, log *slog.Logger) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, c := range channels {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := c.Planes(); err != nil {
				log.Warn("cannot build channel walls", "channel", i, "error", err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (e Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
