package intercalation

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrUnknownSpecies is returned for a species key missing from the table
var ErrUnknownSpecies = errors.New("unknown atom species")

// AtomParams describes a guest species. Every distance derives from the
// fcc lattice parameter (Å).
type AtomParams struct {
	Name         string
	Symbol       string
	LatticeParam float64
}

// DistBetweenAtoms is the nearest-neighbour distance of the species crystal
func (p AtomParams) DistBetweenAtoms() float64 { return p.LatticeParam / math.Sqrt2 }

// DistBetweenLayers is the distance between close-packed layers
func (p AtomParams) DistBetweenLayers() float64 { return p.LatticeParam / math.Sqrt(3) }

// MinRecommendedDist is the smallest guest distance kept after optimization
func (p AtomParams) MinRecommendedDist() float64 { return p.DistBetweenAtoms() * 0.92 }

// MinAllowedDist is the hard lower bound between a guest and any other atom
func (p AtomParams) MinAllowedDist() float64 { return p.DistBetweenAtoms() * 0.7 }

// ReplaceNearbyDist is the distance under which candidates collapse into one
func (p AtomParams) ReplaceNearbyDist() float64 { return p.DistBetweenAtoms() / 3 }

// SpeciesTable maps a lower-case species key ("al") to its parameters
type SpeciesTable map[string]AtomParams

// DefaultSpecies returns aluminium, argon and xenon
func DefaultSpecies() SpeciesTable {
	return SpeciesTable{
		"al": {Name: "Aluminium", Symbol: "Al", LatticeParam: 4.0495},
		"ar": {Name: "Argon", Symbol: "Ar", LatticeParam: 5.256},
		"xe": {Name: "Xenon", Symbol: "Xe", LatticeParam: 6.197},
	}
}

// NewSpeciesTable builds a table from symbol -> lattice parameter pairs,
// keeping the names of the known species.
func NewSpeciesTable(latticeParams map[string]float64) (SpeciesTable, error) {
	known := DefaultSpecies()
	table := make(SpeciesTable, len(latticeParams))
	for symbol, lp := range latticeParams {
		if lp <= 0 || math.IsNaN(lp) || math.IsInf(lp, 0) {
			return nil, fmt.Errorf("species %q: invalid lattice parameter %v", symbol, lp)
		}
		key := strings.ToLower(symbol)
		params, ok := known[key]
		if !ok {
			params = AtomParams{Name: symbol, Symbol: symbol}
		}
		params.LatticeParam = lp
		table[key] = params
	}
	return table, nil
}

// Lookup returns the parameters for key, case-insensitively
func (t SpeciesTable) Lookup(key string) (AtomParams, error) {
	params, ok := t[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return AtomParams{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownSpecies, key, strings.Join(t.Keys(), ", "))
	}
	return params, nil
}

// Keys returns the sorted species keys
func (t SpeciesTable) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
