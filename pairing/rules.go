package pairing

// Class buckets shaders for the compatibility rules. Any is only used as a
// wildcard inside rule rows.
type Class int

const (
	Plain Class = iota
	Planet
	NoiseVisualizer
	Any
)

func (c Class) String() string {
	switch c {
	case Plain:
		return "plain"
	case Planet:
		return "planet"
	case NoiseVisualizer:
		return "noise-visualizer"
	default:
		return "any"
	}
}

type action int

const (
	keep action = iota
	forcePlanet
	forceNoiseVisualizer
	forceDefault
	reject
)

// rule matches on the class of the proposed shader, of the current partner on
// the other stage, and of the shader being replaced.
type rule struct {
	proposed Class
	partner  Class
	previous Class
	then     action
}

func (r rule) matches(proposed, partner, previous Class) bool {
	return (r.proposed == Any || r.proposed == proposed) &&
		(r.partner == Any || r.partner == partner) &&
		(r.previous == Any || r.previous == previous)
}

// vertexRules apply when the vertex selection changes; the action targets the
// fragment selection. First match wins.
var vertexRules = []rule{
	{proposed: Planet, partner: Planet, previous: Any, then: keep},
	{proposed: Planet, partner: Any, previous: Any, then: forcePlanet},
	{proposed: NoiseVisualizer, partner: Planet, previous: Any, then: forceNoiseVisualizer},
	{proposed: Any, partner: Planet, previous: Any, then: forceDefault},
	{proposed: NoiseVisualizer, partner: Any, previous: Any, then: forceNoiseVisualizer},
	{proposed: Any, partner: Any, previous: NoiseVisualizer, then: forceDefault},
	// Only reachable from an illegal pair; restores the default partner.
	{proposed: Any, partner: NoiseVisualizer, previous: Any, then: forceDefault},
	{proposed: Any, partner: Any, previous: Any, then: keep},
}

// fragmentRules mirror vertexRules with one difference: while a planet vertex
// is active any non-planet fragment proposal is rejected instead of forcing
// the vertex away from planet.
var fragmentRules = []rule{
	{proposed: Planet, partner: Planet, previous: Any, then: keep},
	{proposed: Planet, partner: Any, previous: Any, then: forcePlanet},
	{proposed: Any, partner: Planet, previous: Any, then: reject},
	{proposed: NoiseVisualizer, partner: Any, previous: Any, then: forceNoiseVisualizer},
	{proposed: Any, partner: Any, previous: NoiseVisualizer, then: forceDefault},
	{proposed: Any, partner: NoiseVisualizer, previous: Any, then: forceDefault},
	{proposed: Any, partner: Any, previous: Any, then: keep},
}

func lookup(rules []rule, proposed, partner, previous Class) action {
	for _, r := range rules {
		if r.matches(proposed, partner, previous) {
			return r.then
		}
	}
	return keep
}
