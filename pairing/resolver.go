// Package pairing decides which vertex/fragment shader pairs may be active
// together and how a change to one half moves the other.
package pairing

import (
	"fmt"

	"github.com/richinsley/goicoshader/shader"
)

// Pair is the selected index into the vertex and fragment catalogs.
type Pair struct {
	Vertex   int
	Fragment int
}

func (p Pair) String() string {
	return fmt.Sprintf("{vertex %d, fragment %d}", p.Vertex, p.Fragment)
}

func (p Pair) index(stage shader.Stage) int {
	if stage == shader.Vertex {
		return p.Vertex
	}
	return p.Fragment
}

func (p Pair) with(stage shader.Stage, index int) Pair {
	if stage == shader.Vertex {
		p.Vertex = index
	} else {
		p.Fragment = index
	}
	return p
}

// Change proposes a new index for one stage.
type Change struct {
	Stage shader.Stage
	Index int
}

func ProposeVertex(index int) Change   { return Change{Stage: shader.Vertex, Index: index} }
func ProposeFragment(index int) Change { return Change{Stage: shader.Fragment, Index: index} }

// Resolution is the outcome of applying a Change.
type Resolution struct {
	Pair Pair
	// Forced is set when the partner stage was moved to keep the pair legal.
	Forced bool
	// Rejected is set when the proposal was refused and Pair is the input pair.
	Rejected bool
}

type partnerSet struct {
	fallback        int
	planet          int
	noiseVisualizer int
}

// Resolver applies the rule tables against a shader registry. It keeps no
// state between calls.
type Resolver struct {
	registry *shader.Registry
	partners [2]partnerSet
}

func NewResolver(registry *shader.Registry) (*Resolver, error) {
	r := &Resolver{registry: registry}
	for _, stage := range []shader.Stage{shader.Vertex, shader.Fragment} {
		if registry.Len(stage) == 0 {
			return nil, fmt.Errorf("%s catalog is empty", stage)
		}
		planet, ok := registry.First(stage, func(d shader.Descriptor) bool { return d.IsPlanet })
		if !ok {
			return nil, fmt.Errorf("%s catalog has no planet shader", stage)
		}
		viz, ok := registry.First(stage, func(d shader.Descriptor) bool { return d.IsNoiseVisualizer })
		if !ok {
			return nil, fmt.Errorf("%s catalog has no noise visualizer shader", stage)
		}
		r.partners[stage] = partnerSet{fallback: 0, planet: planet, noiseVisualizer: viz}
	}
	return r, nil
}

// Class reports the compatibility class of a catalog entry.
func (r *Resolver) Class(stage shader.Stage, index int) (Class, error) {
	d, err := r.registry.Describe(stage, index)
	if err != nil {
		return Plain, err
	}
	switch {
	case d.IsPlanet:
		return Planet, nil
	case d.IsNoiseVisualizer:
		return NoiseVisualizer, nil
	default:
		return Plain, nil
	}
}

// IsPlanet reports whether either half of p is a planet shader.
func (r *Resolver) IsPlanet(p Pair) (bool, error) {
	vc, err := r.Class(shader.Vertex, p.Vertex)
	if err != nil {
		return false, err
	}
	fc, err := r.Class(shader.Fragment, p.Fragment)
	if err != nil {
		return false, err
	}
	return vc == Planet || fc == Planet, nil
}

// Resolve applies change to current and returns the next legal pair.
func (r *Resolver) Resolve(current Pair, change Change) (Resolution, error) {
	res := Resolution{Pair: current}
	other := shader.Fragment
	rules := vertexRules
	if change.Stage == shader.Fragment {
		other = shader.Vertex
		rules = fragmentRules
	}

	proposed, err := r.Class(change.Stage, change.Index)
	if err != nil {
		return res, err
	}
	previousIndex := current.index(change.Stage)
	previous, err := r.Class(change.Stage, previousIndex)
	if err != nil {
		return res, err
	}
	partnerIndex := current.index(other)
	partner, err := r.Class(other, partnerIndex)
	if err != nil {
		return res, err
	}
	if change.Index == previousIndex {
		return res, nil
	}

	switch lookup(rules, proposed, partner, previous) {
	case reject:
		res.Rejected = true
		return res, nil
	case forcePlanet:
		partnerIndex = r.partners[other].planet
	case forceNoiseVisualizer:
		partnerIndex = r.partners[other].noiseVisualizer
	case forceDefault:
		partnerIndex = r.partners[other].fallback
	}

	res.Pair = current.with(change.Stage, change.Index).with(other, partnerIndex)
	res.Forced = partnerIndex != current.index(other)
	return res, nil
}
