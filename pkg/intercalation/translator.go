package intercalation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/philipparndt/gohoneycomb/pkg/geometry"
	"github.com/philipparndt/gohoneycomb/pkg/honeycomb"
	"golang.org/x/sync/errgroup"
)

var zAxis = geometry.NewVector3(0, 0, 1)

// Placement is a set of guest atoms, each tagged with the index of the wall
// or channel it was placed for.
type Placement struct {
	Points geometry.Points
	Origin []int
}

// Of returns the atoms placed for index
func (p Placement) Of(index int) geometry.Points {
	var pts []geometry.Vector3
	for i, o := range p.Origin {
		if o == index {
			pts = append(pts, p.Points.At(i))
		}
	}
	return geometry.NewPoints(pts)
}

func (p *Placement) add(points geometry.Points, origin int) {
	p.Points = p.Points.Append(points)
	for i := 0; i < points.Len(); i++ {
		p.Origin = append(p.Origin, origin)
	}
}

// dedupe drops atoms closer than minDist to an earlier one
func (p Placement) dedupe(minDist float64) Placement {
	var out Placement
	var kept []geometry.Vector3
	for i := 0; i < p.Points.Len(); i++ {
		v := p.Points.At(i)
		clash := false
		for _, k := range kept {
			if v.Distance(k) < minDist {
				clash = true
				break
			}
		}
		if clash {
			continue
		}
		kept = append(kept, v)
		out.Origin = append(out.Origin, p.Origin[i])
	}
	out.Points = geometry.NewPoints(kept)
	return out
}

// Translator replicates a guest placement over walls and channels
type Translator struct {
	Species AtomParams
	// Reflect retries a failed target with the mirrored placement
	Reflect bool
	// Workers bounds the channels processed concurrently; 0 means one
	Workers int
	Logger  *slog.Logger
}

// TranslateToPlanes copies the atoms placed for wall 0 onto the next walls
// of the channel by rotating them about the channel axis. At most
// numberOfPlanes walls are filled (all when <= 0). A wall whose copy clashes
// with the lattice is retried mirrored when Reflect is set, otherwise it is
// skipped with a warning. Copies clashing with earlier atoms are dropped, so
// the wall-0 atoms always survive unchanged; a wall losing every atom that
// way is reported as skipped too.
func (t Translator) TranslateToPlanes(channel *honeycomb.Channel, atoms geometry.Points, numberOfPlanes int) (Placement, error) {
	planes, err := channel.Planes()
	if err != nil {
		return Placement{}, fmt.Errorf("translate to planes: %w", err)
	}
	if numberOfPlanes <= 0 || numberOfPlanes > len(planes) {
		numberOfPlanes = len(planes)
	}
	log := t.logger()
	lattice := channel.Points()
	center := channel.Center()
	base := polarAngle(planes[0].Center(), center)

	var out Placement
	out.add(atoms, 0)
	for i := 1; i < numberOfPlanes; i++ {
		angle := polarAngle(planes[i].Center(), center) - base
		rotate := func(pts geometry.Points) geometry.Points {
			return pts.Map(func(p geometry.Vector3) geometry.Vector3 { return p.RotateAbout(center, zAxis, angle) })
		}

		moved := rotate(atoms)
		if t.fits(moved, lattice) {
			out.add(moved, i)
			continue
		}
		if t.Reflect {
			mirrored := rotate(mirror(atoms, center, planes[0].Center().Sub(center)))
			if t.fits(mirrored, lattice) {
				log.Debug("placed mirrored copy", "plane", i)
				out.add(mirrored, i)
				continue
			}
		}
		log.Warn("cannot translate inter atoms to plane, skipping", "plane", i, "angle_deg", angle*180/math.Pi)
	}

	deduped := out.dedupe(t.Species.MinAllowedDist())
	for i := 1; i < numberOfPlanes; i++ {
		if out.Of(i).Len() > 0 && deduped.Of(i).Len() == 0 {
			log.Warn("cannot translate inter atoms to plane, skipping", "plane", i, "reason", "clashes with the guests of other planes")
		}
	}
	return deduped, nil
}

// TranslateToChannels copies the atoms of channels[0] into every other
// channel and into the edge channels cut by the lattice border. Targets that
// clash with the lattice are skipped with a warning. Origins are channel
// indexes; edge channels follow the full ones.
func (t Translator) TranslateToChannels(ctx context.Context, lattice geometry.Points, channels []*honeycomb.Channel, atoms geometry.Points) (Placement, error) {
	if len(channels) == 0 {
		return Placement{}, fmt.Errorf("translate to channels: %w: no channels", geometry.ErrDegenerate)
	}
	origin := channels[0].Center()

	var targets []geometry.Vector3
	for _, c := range channels[1:] {
		targets = append(targets, c.Center())
	}
	edges, err := EdgeChannelCenters(lattice, channels)
	if err != nil {
		t.logger().Warn("no edge channels", "error", err)
	}
	targets = append(targets, edges...)
	full := len(channels) - 1
	limits := lattice.Limits()

	results := make([]geometry.Points, len(targets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(t.Workers, 1))
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			edge := i >= full
			results[i] = t.translateTo(lattice, atoms, origin, target, edge, limits, i+1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Placement{}, fmt.Errorf("translate to channels: %w", err)
	}

	var out Placement
	out.add(atoms, 0)
	for i, r := range results {
		out.add(r, i+1)
	}
	return out.dedupe(t.Species.MinAllowedDist()), nil
}

func (t Translator) translateTo(lattice, atoms geometry.Points, origin, target geometry.Vector3, edge bool, limits geometry.Limits, index int) geometry.Points {
	offset := geometry.NewVector3(target.X-origin.X, target.Y-origin.Y, 0)
	place := func(pts geometry.Points) geometry.Points {
		moved := pts.Move(offset)
		if edge {
			moved = moved.Filter(func(p geometry.Vector3) bool { return limits.ContainsXY(p, 1e-6) })
		}
		return moved
	}

	moved := place(atoms)
	if moved.Len() == 0 {
		return moved
	}
	if t.fits(moved, lattice) {
		return moved
	}
	if t.Reflect {
		mirrored := place(mirror(atoms, origin, offset))
		if mirrored.Len() > 0 && t.fits(mirrored, lattice) {
			return mirrored
		}
	}
	t.logger().Warn("cannot translate inter atoms to channel, skipping",
		"channel", index, "edge", edge, "center", fmt.Sprintf("(%.3f, %.3f)", target.X, target.Y))
	return geometry.Points{}
}

func (t Translator) fits(atoms, lattice geometry.Points) bool {
	minDist := t.Species.MinAllowedDist()
	for i := 0; i < atoms.Len(); i++ {
		if geometry.MinDistanceTo(atoms.At(i), lattice) < minDist {
			return false
		}
	}
	return true
}

func (t Translator) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}

// mirror reflects points across the vertical plane through pivot that
// contains direction.
func mirror(points geometry.Points, pivot, direction geometry.Vector3) geometry.Points {
	d := geometry.NewVector3(direction.X, direction.Y, 0).Normalize()
	n := geometry.NewVector3(-d.Y, d.X, 0)
	return points.Map(func(p geometry.Vector3) geometry.Vector3 {
		return p.Sub(n.Mul(2 * p.Sub(pivot).Dot(n)))
	})
}

func polarAngle(p, center geometry.Vector3) float64 {
	return math.Atan2(p.Y-center.Y, p.X-center.X)
}

// EdgeChannelCenters returns the centers of the channels cut by the lattice
// border. Neighbouring channel centers are the reflections of the main
// channel center across its walls; their lattice is walked outwards and a
// center counts when it is not a full channel, lies within the lattice
// bounds widened by one channel radius, and has lattice atoms within that
// radius. Centers are ordered by distance from the main channel, then angle.
func EdgeChannelCenters(lattice geometry.Points, channels []*honeycomb.Channel) ([]geometry.Vector3, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("edge channels: %w: no channels", geometry.ErrDegenerate)
	}
	main := channels[0]
	planes, err := main.Planes()
	if err != nil {
		return nil, fmt.Errorf("edge channels: %w", err)
	}
	c0 := main.Center()

	var steps []geometry.Vector3
	radius := 0.0
	for _, p := range planes {
		sd := p.Params().SignedDistance(c0)
		step := p.Params().Normal().Normalize().Mul(-2 * sd)
		steps = append(steps, geometry.NewVector3(step.X, step.Y, 0))
		if r := math.Abs(sd) * 2 / math.Sqrt(3); r > radius {
			radius = r // circumradius of a regular hexagon with this apothem
		}
	}
	if radius == 0 {
		return nil, fmt.Errorf("edge channels: %w: zero channel radius", geometry.ErrDegenerate)
	}

	limits := lattice.Limits()
	tol := radius * 0.1
	isFull := func(v geometry.Vector3) bool {
		for _, c := range channels {
			if c.Center().DistanceXY(v) < tol {
				return true
			}
		}
		return false
	}
	seen := func(list []geometry.Vector3, v geometry.Vector3) bool {
		for _, s := range list {
			if s.DistanceXY(v) < tol {
				return true
			}
		}
		return false
	}

	visited := []geometry.Vector3{c0}
	queue := []geometry.Vector3{c0}
	var edges []geometry.Vector3
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, s := range steps {
			next := cur.Add(s)
			if seen(visited, next) || !limits.ContainsXY(next, radius) {
				continue
			}
			visited = append(visited, next)
			queue = append(queue, next)
			if isFull(next) {
				continue
			}
			if hasAtomsWithin(lattice, next, radius+tol) {
				edges = append(edges, geometry.NewVector3(next.X, next.Y, c0.Z))
			}
		}
	}

	sort.SliceStable(edges, func(i, j int) bool {
		di, dj := edges[i].DistanceXY(c0), edges[j].DistanceXY(c0)
		if math.Abs(di-dj) > tol {
			return di < dj
		}
		return polarAngle(edges[i], c0) < polarAngle(edges[j], c0)
	})
	return edges, nil
}

func hasAtomsWithin(lattice geometry.Points, center geometry.Vector3, radius float64) bool {
	for i := 0; i < lattice.Len(); i++ {
		if lattice.At(i).DistanceXY(center) <= radius {
			return true
		}
	}
	return false
}
