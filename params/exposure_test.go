package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/goicoshader/pairing"
	"github.com/richinsley/goicoshader/shader"
)

type fakePanel struct {
	groups     map[Group]bool
	amplitudes int
	open       bool
	rebuilds   int
}

func newFakePanel() *fakePanel {
	return &fakePanel{groups: make(map[Group]bool)}
}

func (p *fakePanel) AddGroup(g Group) { p.groups[g] = true }
func (p *fakePanel) RemoveGroup(g Group) { delete(p.groups, g) }

func (p *fakePanel) AddAmplitudes(count int, open bool) {
	p.amplitudes = count
	p.open = open
	p.rebuilds++
}

func (p *fakePanel) RemoveAmplitudes() bool {
	p.amplitudes = 0
	return p.open
}

var (
	lambertPair = pairing.Pair{Vertex: shader.VertexNoOp, Fragment: shader.FragmentLambert}
	planetPair  = pairing.Pair{Vertex: shader.VertexPlanet, Fragment: shader.FragmentPlanet}
	worleyPair  = pairing.Pair{Vertex: shader.VertexTwist, Fragment: shader.FragmentWorley}
	vizPair     = pairing.Pair{Vertex: shader.VertexNoiseVisualizer, Fragment: shader.FragmentNoiseVisualizer}
	normalsPair = pairing.Pair{Vertex: shader.VertexNoOp, Fragment: shader.FragmentNormals}
)

func TestReconcileInitialLambert(t *testing.T) {
	e := NewExposure(shader.Default())
	p := newFakePanel()
	events, err := e.Reconcile(lambertPair, 4, p)
	require.NoError(t, err)
	assert.Equal(t, []Event{{Group: GroupColor, Added: true}}, events)
	assert.True(t, p.groups[GroupColor])
	assert.False(t, p.groups[GroupPlanet])
	assert.Zero(t, p.amplitudes)
}

func TestReconcileToPlanet(t *testing.T) {
	e := NewExposure(shader.Default())
	p := newFakePanel()
	_, err := e.Reconcile(lambertPair, 4, p)
	require.NoError(t, err)

	events, err := e.Reconcile(planetPair, 4, p)
	require.NoError(t, err)
	assert.Equal(t, []Event{{Group: GroupPlanet, Added: true}, {Group: GroupColor, Added: false}}, events)
	assert.True(t, p.groups[GroupPlanet])
	assert.False(t, p.groups[GroupColor])
	assert.Equal(t, 4, p.amplitudes)
	assert.Equal(t, 4, e.State().Amplitudes)

	events, err = e.Reconcile(planetPair, 4, p)
	require.NoError(t, err)
	assert.Empty(t, events, "steady state emits nothing")
	assert.Equal(t, 1, p.rebuilds)
}

func TestReconcileNoiseGroups(t *testing.T) {
	e := NewExposure(shader.Default())
	p := newFakePanel()

	_, err := e.Reconcile(worleyPair, 4, p)
	require.NoError(t, err)
	assert.True(t, p.groups[GroupNoise])
	assert.True(t, p.groups[GroupColor])

	_, err = e.Reconcile(vizPair, 4, p)
	require.NoError(t, err)
	assert.True(t, p.groups[GroupNoise])
	assert.False(t, p.groups[GroupColor])
	assert.False(t, p.groups[GroupPlanet])

	_, err = e.Reconcile(normalsPair, 4, p)
	require.NoError(t, err)
	assert.Empty(t, p.groups)
}

func TestOctaveAmplitudeRebuild(t *testing.T) {
	e := NewExposure(shader.Default())
	p := newFakePanel()
	_, err := e.Reconcile(planetPair, 4, p)
	require.NoError(t, err)
	require.Equal(t, 4, p.amplitudes)

	p.open = true
	_, err = e.Reconcile(planetPair, 6, p)
	require.NoError(t, err)
	assert.Equal(t, 6, p.amplitudes)
	assert.True(t, p.open, "disclosure state survives the rebuild")

	_, err = e.Reconcile(planetPair, 3, p)
	require.NoError(t, err)
	assert.Equal(t, 3, p.amplitudes)
	assert.True(t, p.open)

	p.open = false
	_, err = e.Reconcile(planetPair, 9, p)
	require.NoError(t, err)
	assert.Equal(t, MaxOctaveAmplitudes, p.amplitudes, "count is clamped")
	assert.False(t, p.open)
}

func TestAmplitudesIgnoredWithoutPlanet(t *testing.T) {
	e := NewExposure(shader.Default())
	p := newFakePanel()
	_, err := e.Reconcile(lambertPair, 4, p)
	require.NoError(t, err)
	_, err = e.Reconcile(lambertPair, 6, p)
	require.NoError(t, err)
	assert.Zero(t, p.rebuilds)
}

func TestPlanetRemovalRemembersOpenState(t *testing.T) {
	e := NewExposure(shader.Default())
	p := newFakePanel()
	_, err := e.Reconcile(planetPair, 5, p)
	require.NoError(t, err)
	p.open = true

	events, err := e.Reconcile(lambertPair, 5, p)
	require.NoError(t, err)
	assert.Contains(t, events, Event{Group: GroupPlanet, Added: false})
	assert.Zero(t, p.amplitudes)
	assert.Zero(t, e.State().Amplitudes)

	_, err = e.Reconcile(planetPair, 2, p)
	require.NoError(t, err)
	assert.Equal(t, 2, p.amplitudes)
	assert.True(t, p.open)
}

func TestReconcileOutOfRange(t *testing.T) {
	e := NewExposure(shader.Default())
	_, err := e.Reconcile(pairing.Pair{Vertex: 0, Fragment: 99}, 4, newFakePanel())
	assert.ErrorIs(t, err, shader.ErrIndexOutOfRange)
}

func TestValuesDerived(t *testing.T) {
	v := Defaults()
	assert.InDelta(t, 77.0/255, v.Color()[0], 1e-6)
	assert.Equal(t, float32(1), v.Color()[3])
	assert.Equal(t, float32(4), v.Fractal()[0])
	assert.Equal(t, float32(0.5), v.Fractal()[1])
	assert.Equal(t, []float32{4, 8, 0.15, 0}, v.ElevationParams())
	assert.Len(t, v.Amplitudes(), MaxOctaveAmplitudes)
	assert.Equal(t, float32(0.25), v.OctaveAmps[2])

	v.ElevationOctaves = 0
	assert.Equal(t, float32(1), v.ElevationParams()[0])
}
