package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAppendsInOrder(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 0, r.Register(Vertex, Descriptor{Name: "a"}))
	assert.Equal(t, 1, r.Register(Vertex, Descriptor{Name: "b", IsPlanet: true}))
	assert.Equal(t, 0, r.Register(Fragment, Descriptor{Name: "c", Stage: Vertex}))

	d, err := r.Describe(Vertex, 1)
	require.NoError(t, err)
	assert.Equal(t, "b", d.Name)
	assert.True(t, d.IsPlanet)

	d, err = r.Describe(Fragment, 0)
	require.NoError(t, err)
	assert.Equal(t, Fragment, d.Stage, "stage comes from Register, not the descriptor literal")
	assert.Equal(t, []string{"a", "b"}, r.Names(Vertex))
}

func TestDescribeOutOfRange(t *testing.T) {
	r := Default()
	for _, idx := range []int{-1, r.Len(Vertex), 100} {
		_, err := r.Describe(Vertex, idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", idx)
	}
	_, err := r.Describe(Fragment, r.Len(Fragment))
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestDefaultCatalogFlags(t *testing.T) {
	r := Default()
	require.Equal(t, 5, r.Len(Vertex))
	require.Equal(t, 7, r.Len(Fragment))

	idx, ok := r.First(Vertex, func(d Descriptor) bool { return d.IsPlanet })
	require.True(t, ok)
	assert.Equal(t, VertexPlanet, idx)
	idx, ok = r.First(Fragment, func(d Descriptor) bool { return d.IsPlanet })
	require.True(t, ok)
	assert.Equal(t, FragmentPlanet, idx)
	idx, ok = r.First(Vertex, func(d Descriptor) bool { return d.IsNoiseVisualizer })
	require.True(t, ok)
	assert.Equal(t, VertexNoiseVisualizer, idx)
	idx, ok = r.First(Fragment, func(d Descriptor) bool { return d.IsNoiseVisualizer })
	require.True(t, ok)
	assert.Equal(t, FragmentNoiseVisualizer, idx)

	for _, i := range []int{FragmentNormals, FragmentPlanet, FragmentNoiseVisualizer} {
		d, err := r.Describe(Fragment, i)
		require.NoError(t, err)
		assert.False(t, d.IsColorable, d.Name)
	}
	for _, i := range []int{FragmentFBM, FragmentPerlin, FragmentWorley} {
		d, err := r.Describe(Fragment, i)
		require.NoError(t, err)
		assert.True(t, d.IsFractalNoise, d.Name)
		assert.True(t, d.IsColorable, d.Name)
	}
}

func TestFirstMissing(t *testing.T) {
	r := NewRegistry()
	r.Register(Fragment, Descriptor{Name: "only"})
	idx, ok := r.First(Fragment, func(d Descriptor) bool { return d.IsPlanet })
	assert.False(t, ok)
	assert.Equal(t, -1, idx)
}
