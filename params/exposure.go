// Package params holds the tunable control values and decides which groups of
// them the control panel shows for the active shader pair.
package params

import (
	"fmt"

	"github.com/richinsley/goicoshader/pairing"
	"github.com/richinsley/goicoshader/shader"
)

type Group int

const (
	GroupPlanet Group = iota
	GroupNoise
	GroupColor
	groupCount
)

func (g Group) String() string {
	switch g {
	case GroupPlanet:
		return "Planet"
	case GroupNoise:
		return "Noise"
	case GroupColor:
		return "Color"
	default:
		return fmt.Sprintf("Group(%d)", int(g))
	}
}

// Groups lists every group in the order they are added to the panel.
func Groups() []Group {
	return []Group{GroupPlanet, GroupNoise, GroupColor}
}

// Panel is the part of the control panel the exposure controller drives.
type Panel interface {
	AddGroup(g Group)
	RemoveGroup(g Group)
	// AddAmplitudes creates the octave amplitude sub-group inside the Planet
	// group with count entries, opened or closed.
	AddAmplitudes(count int, open bool)
	// RemoveAmplitudes tears the sub-group down and reports whether it was open.
	RemoveAmplitudes() (open bool)
}

// Event is one group visibility transition.
type Event struct {
	Group Group
	Added bool
}

func (e Event) String() string {
	if e.Added {
		return "+" + e.Group.String()
	}
	return "-" + e.Group.String()
}

// State is what the panel currently shows.
type State struct {
	Added [groupCount]bool
	// Amplitudes is the size of the octave amplitude sub-group, 0 when absent.
	Amplitudes int
	// AmplitudesOpen is the disclosure state to restore on the next rebuild.
	AmplitudesOpen bool
}

func (s State) Visible(g Group) bool {
	return s.Added[g]
}

// Exposure reconciles panel groups with the capabilities of the active pair.
type Exposure struct {
	registry *shader.Registry
	state    State
}

func NewExposure(registry *shader.Registry) *Exposure {
	return &Exposure{registry: registry}
}

func (e *Exposure) State() State {
	return e.state
}

// Wanted computes the group visibility a pair calls for.
func (e *Exposure) Wanted(pair pairing.Pair) ([groupCount]bool, error) {
	var want [groupCount]bool
	v, err := e.registry.Describe(shader.Vertex, pair.Vertex)
	if err != nil {
		return want, err
	}
	f, err := e.registry.Describe(shader.Fragment, pair.Fragment)
	if err != nil {
		return want, err
	}
	want[GroupPlanet] = v.IsPlanet || f.IsPlanet
	want[GroupNoise] = f.IsFractalNoise
	want[GroupColor] = f.IsColorable
	return want, nil
}

// Reconcile applies every pending group toggle to panel in one pass and
// rebuilds the octave amplitude sub-group when its size no longer matches
// elevationOctaves. It returns the group transitions it made.
func (e *Exposure) Reconcile(pair pairing.Pair, elevationOctaves int, panel Panel) ([]Event, error) {
	want, err := e.Wanted(pair)
	if err != nil {
		return nil, err
	}
	count := ClampOctaves(elevationOctaves)

	var events []Event
	for _, g := range Groups() {
		if want[g] == e.state.Added[g] {
			continue
		}
		if want[g] {
			panel.AddGroup(g)
			if g == GroupPlanet {
				panel.AddAmplitudes(count, e.state.AmplitudesOpen)
				e.state.Amplitudes = count
			}
		} else {
			if g == GroupPlanet && e.state.Amplitudes > 0 {
				e.state.AmplitudesOpen = panel.RemoveAmplitudes()
				e.state.Amplitudes = 0
			}
			panel.RemoveGroup(g)
		}
		e.state.Added[g] = want[g]
		events = append(events, Event{Group: g, Added: want[g]})
	}

	if e.state.Added[GroupPlanet] && e.state.Amplitudes != count {
		open := panel.RemoveAmplitudes()
		panel.AddAmplitudes(count, open)
		e.state.Amplitudes = count
		e.state.AmplitudesOpen = open
	}
	return events, nil
}
