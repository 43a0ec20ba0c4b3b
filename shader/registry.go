package shader

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned for a catalog lookup outside the registered set.
var ErrIndexOutOfRange = errors.New("shader index out of range")

type Stage int

const (
	Vertex Stage = iota
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Descriptor is one catalog entry: the GLSL source plus the capability flags
// that drive pairing and parameter exposure.
type Descriptor struct {
	Stage             Stage
	Name              string
	Source            string
	IsPlanet          bool
	IsFractalNoise    bool
	IsColorable       bool
	IsNoiseVisualizer bool
}

// Registry holds the ordered vertex and fragment catalogs. Entries are only
// ever appended; an entry's index is its position in registration order.
type Registry struct {
	catalogs [2][]Descriptor
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends d to the catalog of the given stage and returns its index.
func (r *Registry) Register(stage Stage, d Descriptor) int {
	d.Stage = stage
	r.catalogs[stage] = append(r.catalogs[stage], d)
	return len(r.catalogs[stage]) - 1
}

func (r *Registry) Describe(stage Stage, index int) (Descriptor, error) {
	catalog := r.catalogs[stage]
	if index < 0 || index >= len(catalog) {
		return Descriptor{}, fmt.Errorf("%s catalog has %d entries, got %d: %w", stage, len(catalog), index, ErrIndexOutOfRange)
	}
	return catalog[index], nil
}

func (r *Registry) Len(stage Stage) int {
	return len(r.catalogs[stage])
}

// Names lists the display names of a catalog in index order.
func (r *Registry) Names(stage Stage) []string {
	names := make([]string, len(r.catalogs[stage]))
	for i, d := range r.catalogs[stage] {
		names[i] = d.Name
	}
	return names
}

// First returns the lowest index in the stage's catalog whose descriptor
// satisfies match.
func (r *Registry) First(stage Stage, match func(Descriptor) bool) (int, bool) {
	for i, d := range r.catalogs[stage] {
		if match(d) {
			return i, true
		}
	}
	return -1, false
}
