package program

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/goicoshader/graphics"
	"github.com/richinsley/goicoshader/graphics/graphicstest"
	"github.com/richinsley/goicoshader/shader"
)

func source(t *testing.T, stage shader.Stage, index int) string {
	t.Helper()
	d, err := shader.Default().Describe(stage, index)
	require.NoError(t, err)
	return d.Source
}

func link(t *testing.T, gpu *graphicstest.Backend, active *Active, v, f int) *Program {
	t.Helper()
	p, err := Link(gpu, active, source(t, shader.Vertex, v), source(t, shader.Fragment, f))
	require.NoError(t, err)
	return p
}

func TestLinkResolvesDeclaredSlots(t *testing.T) {
	gpu := graphicstest.New()
	p := link(t, gpu, &Active{}, shader.VertexNoOp, shader.FragmentLambert)

	for _, u := range []Uniform{Model, ModelInvTr, ViewProj, Color} {
		assert.True(t, p.Has(u), u.String())
	}
	for _, u := range []Uniform{VertTime, FragTime, Octaves, Fractal, CamPos, ElevationParams, OctaveAmps} {
		assert.False(t, p.Has(u), u.String())
	}

	planet := link(t, gpu, &Active{}, shader.VertexPlanet, shader.FragmentPlanet)
	for _, u := range []Uniform{VertTime, FragTime, CamPos, ElevationParams, OctaveAmps} {
		assert.True(t, planet.Has(u), u.String())
	}
	assert.False(t, planet.Has(Color))
}

func TestSettersSkipAbsentSlots(t *testing.T) {
	gpu := graphicstest.New()
	p := link(t, gpu, &Active{}, shader.VertexNoOp, shader.FragmentNormals)

	// The fake panics on an upload to location -1, so these must all be no-ops.
	assert.NotPanics(t, func() {
		p.SetGeometryColor(mgl32.Vec4{1, 0, 0, 1})
		p.SetTimes(3, 4)
		p.SetOctaves(5)
		p.SetFractal(mgl32.Vec2{4, 0.5})
		p.SetCamPos(mgl32.Vec3{0, 0, 5})
		p.SetElevationParams([]float32{4, 8, 0.1, 0})
		p.SetOctaveAmps([]float32{1, 0.5})
	})
	_, ok := gpu.Uniform(p.Handle(), "u_Color")
	assert.False(t, ok)
}

func TestSetModelMatrixUploadsInverseTranspose(t *testing.T) {
	gpu := graphicstest.New()
	p := link(t, gpu, &Active{}, shader.VertexNoOp, shader.FragmentLambert)

	model := mgl32.Scale3D(2, 4, 8)
	p.SetModelMatrix(model)

	got, ok := gpu.Uniform(p.Handle(), "u_Model")
	require.True(t, ok)
	assert.Equal(t, model[:], got)

	invTr, ok := gpu.Uniform(p.Handle(), "u_ModelInvTr")
	require.True(t, ok)
	want := mgl32.Scale3D(0.5, 0.25, 0.125)
	for i := range want {
		assert.InDelta(t, want[i], invTr[i], 1e-6, "element %d", i)
	}
}

func TestSetValues(t *testing.T) {
	gpu := graphicstest.New()
	p := link(t, gpu, &Active{}, shader.VertexPlanet, shader.FragmentPlanet)

	p.SetTimes(7, 9)
	p.SetCamPos(mgl32.Vec3{1, 2, 3})
	p.SetElevationParams([]float32{4, 8, 0.15, 0})
	p.SetOctaveAmps([]float32{1, 0.5, 0.25, 0.125, 0.0625, 0.03125})

	v, _ := gpu.Uniform(p.Handle(), "u_VertTime")
	assert.Equal(t, []float32{7}, v)
	v, _ = gpu.Uniform(p.Handle(), "u_FragTime")
	assert.Equal(t, []float32{9}, v)
	v, _ = gpu.Uniform(p.Handle(), "u_CamPos")
	assert.Equal(t, []float32{1, 2, 3}, v)
	v, _ = gpu.Uniform(p.Handle(), "u_ElevationParams")
	assert.Equal(t, []float32{4, 8, 0.15, 0}, v)
	v, _ = gpu.Uniform(p.Handle(), "u_OctaveAmps")
	assert.Len(t, v, 6)

	fbm := link(t, gpu, &Active{}, shader.VertexNoOp, shader.FragmentFBM)
	fbm.SetGeometryColorRGB(255, 0, 51)
	fbm.SetOctaves(6)
	fbm.SetFractal(mgl32.Vec2{8, 0.5})
	v, _ = gpu.Uniform(fbm.Handle(), "u_Color")
	assert.InDeltaSlice(t, []float32{1, 0, 0.2, 1}, v, 1e-6)
	v, _ = gpu.Uniform(fbm.Handle(), "u_Octaves")
	assert.Equal(t, []float32{6}, v)
	v, _ = gpu.Uniform(fbm.Handle(), "u_Fractal")
	assert.Equal(t, []float32{8, 0.5}, v)
}

func TestRedundantBindsElided(t *testing.T) {
	gpu := graphicstest.New()
	active := &Active{}
	a := link(t, gpu, active, shader.VertexNoOp, shader.FragmentLambert)
	b := link(t, gpu, active, shader.VertexTwist, shader.FragmentFBM)

	a.SetModelMatrix(mgl32.Ident4())
	a.SetViewProjMatrix(mgl32.Ident4())
	a.SetGeometryColorRGB(1, 2, 3)
	assert.Equal(t, 1, gpu.UseCalls)

	b.SetTimes(1, 1)
	assert.Equal(t, 2, gpu.UseCalls)
	assert.Equal(t, b.Handle(), active.Current())

	a.Draw(graphics.Mesh{Count: 3})
	assert.Equal(t, 3, gpu.UseCalls)

	a.Delete()
	assert.Equal(t, graphics.NoProgram, active.Current())
	assert.Contains(t, gpu.Deleted, a.Handle())
}

func TestDrawBindsAttributes(t *testing.T) {
	gpu := graphicstest.New()
	p := link(t, gpu, &Active{}, shader.VertexNoOp, shader.FragmentLambert)
	mesh, err := gpu.NewMesh(nil, nil, []uint32{0, 1, 2})
	require.NoError(t, err)

	p.Draw(mesh)
	require.Len(t, gpu.Draws, 1)
	assert.Equal(t, p.Handle(), gpu.Draws[0].Program)
	assert.ElementsMatch(t, []int32{0, 1}, gpu.Draws[0].Attribs)
	assert.Equal(t, int32(3), gpu.Draws[0].Mesh.Count)

	gpu.Draws = nil
	p.Draw(mesh)
	assert.ElementsMatch(t, []int32{0, 1}, gpu.Draws[0].Attribs, "attributes are disabled after each draw")
}

func TestLinkFailureWraps(t *testing.T) {
	gpu := graphicstest.New()
	gpu.Fail = func(string, string) error {
		return graphics.ErrShaderLink
	}
	_, err := Link(gpu, &Active{}, "v", "f")
	require.Error(t, err)
	assert.True(t, errors.Is(err, graphics.ErrShaderLink))
}
