package driver

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/goicoshader/geometry"
	"github.com/richinsley/goicoshader/graphics"
	"github.com/richinsley/goicoshader/graphics/graphicstest"
	"github.com/richinsley/goicoshader/pairing"
	"github.com/richinsley/goicoshader/panel"
	"github.com/richinsley/goicoshader/params"
	"github.com/richinsley/goicoshader/shader"
)

type fixedCamera struct{}

func (fixedCamera) ViewProj() mgl32.Mat4 { return mgl32.Ident4() }
func (fixedCamera) Position() mgl32.Vec3 { return mgl32.Vec3{0, 0, 5} }

type harness struct {
	gpu    *graphicstest.Backend
	panel  *panel.Panel
	driver *FrameDriver
}

func newHarness(t *testing.T, start params.Values, fail func(vs, fs string) error) *harness {
	t.Helper()
	reg := shader.Default()
	gpu := graphicstest.New()
	gpu.Fail = fail
	p := panel.New(start, reg.Names(shader.Vertex), reg.Names(shader.Fragment))
	d, err := New(gpu, reg, p, fixedCamera{}, geometry.NewProvider(gpu))
	require.NoError(t, err)
	return &harness{gpu: gpu, panel: p, driver: d}
}

func withPair(vertex, fragment int) params.Values {
	v := params.Defaults()
	v.VertexShader = vertex
	v.FragmentShader = fragment
	return v
}

func (h *harness) frame(t *testing.T) {
	t.Helper()
	require.NoError(t, h.driver.Frame(640, 480))
}

func TestInitialFrameDrawsOnce(t *testing.T) {
	h := newHarness(t, params.Defaults(), nil)
	assert.Equal(t, 2, h.gpu.LinkCount)

	h.frame(t)
	require.Len(t, h.gpu.Draws, 1)
	assert.Equal(t, h.driver.Program().Handle(), h.gpu.Draws[0].Program)
	assert.Equal(t, 1, h.gpu.Clears)
	assert.True(t, h.panel.HasFolder(panel.FolderColor))
	assert.False(t, h.panel.HasFolder(panel.FolderPlanet))
}

func TestPlanetVertexForcesFragmentAndDrawsMoon(t *testing.T) {
	h := newHarness(t, params.Defaults(), nil)
	h.frame(t)
	old := h.driver.Program().Handle()

	h.panel.Set(panel.VertexShader, shader.VertexPlanet)
	h.frame(t)

	want := pairing.Pair{Vertex: shader.VertexPlanet, Fragment: shader.FragmentPlanet}
	assert.Equal(t, want, h.driver.State().Pair)
	assert.Equal(t, want, h.driver.State().Compiled)
	assert.Equal(t, shader.FragmentPlanet, h.panel.Values().FragmentShader)
	assert.Contains(t, h.gpu.Deleted, old)
	assert.Equal(t, 3, h.gpu.LinkCount)

	frame := h.gpu.Draws[1:]
	require.Len(t, frame, 2)
	assert.Equal(t, h.driver.Program().Handle(), frame[0].Program)
	assert.NotEqual(t, frame[0].Program, frame[1].Program)

	assert.True(t, h.panel.HasFolder(panel.FolderPlanet))
	assert.False(t, h.panel.HasFolder(panel.FolderColor))
	assert.Equal(t, 4, h.panel.AmplitudeCount())
}

func TestFragmentRejectedWhilePlanetVertex(t *testing.T) {
	h := newHarness(t, withPair(shader.VertexPlanet, shader.FragmentPlanet), nil)
	h.frame(t)
	links := h.gpu.LinkCount

	h.panel.Set(panel.FragmentShader, shader.FragmentWorley)
	h.frame(t)

	assert.Equal(t, shader.FragmentPlanet, h.panel.Values().FragmentShader)
	assert.Equal(t, pairing.Pair{Vertex: shader.VertexPlanet, Fragment: shader.FragmentPlanet}, h.driver.State().Pair)
	assert.Equal(t, links, h.gpu.LinkCount)
	assert.GreaterOrEqual(t, h.panel.Refreshes(), 1)
}

func TestLeavingNoiseVisualizerRestoresDefault(t *testing.T) {
	h := newHarness(t, withPair(shader.VertexNoiseVisualizer, shader.FragmentNoiseVisualizer), nil)
	h.frame(t)
	assert.True(t, h.panel.HasFolder(panel.FolderNoise))

	h.panel.Set(panel.VertexShader, shader.VertexNoOp)
	h.frame(t)

	assert.Equal(t, pairing.Pair{}, h.driver.State().Pair)
	assert.Equal(t, shader.FragmentLambert, h.panel.Values().FragmentShader)
	assert.False(t, h.panel.HasFolder(panel.FolderNoise))
}

func TestLeavingPlanetThroughVertexDoesNotBounceBack(t *testing.T) {
	h := newHarness(t, withPair(shader.VertexPlanet, shader.FragmentPlanet), nil)
	h.frame(t)

	h.panel.Set(panel.VertexShader, shader.VertexTwist)
	h.frame(t)
	h.frame(t)

	assert.Equal(t, pairing.Pair{Vertex: shader.VertexTwist, Fragment: shader.FragmentLambert}, h.driver.State().Pair)
	assert.Len(t, h.gpu.Draws, 2+1+1)
}

func TestRelinkFailureKeepsPreviousProgram(t *testing.T) {
	fail := func(vs, fs string) error {
		if strings.Contains(vs, "fs_Noise") {
			return fmt.Errorf("%w: varying fs_Noise", graphics.ErrShaderLink)
		}
		return nil
	}
	h := newHarness(t, params.Defaults(), fail)
	h.frame(t)
	old := h.driver.Program()

	h.panel.Set(panel.VertexShader, shader.VertexNoiseVisualizer)
	require.NoError(t, h.driver.Frame(640, 480))

	assert.Same(t, old, h.driver.Program())
	assert.Equal(t, pairing.Pair{}, h.driver.State().Pair)
	assert.Equal(t, shader.VertexNoOp, h.panel.Values().VertexShader)
	assert.Equal(t, shader.FragmentLambert, h.panel.Values().FragmentShader)
	assert.Empty(t, h.gpu.Deleted)
	assert.Equal(t, old.Handle(), h.gpu.Draws[len(h.gpu.Draws)-1].Program)
}

func TestTimeCountersAdvanceByTickSpeed(t *testing.T) {
	h := newHarness(t, withPair(shader.VertexPlanet, shader.FragmentPlanet), nil)
	h.panel.Set(panel.FragTickSpeed, 2)

	for i := 0; i < 3; i++ {
		h.frame(t)
	}
	assert.Equal(t, TimeCounters{Vert: 3, Frag: 6}, h.driver.State().Time)

	handle := h.driver.Program().Handle()
	vt, ok := h.gpu.Uniform(handle, "u_VertTime")
	require.True(t, ok)
	assert.Equal(t, []float32{2}, vt)
	ft, ok := h.gpu.Uniform(handle, "u_FragTime")
	require.True(t, ok)
	assert.Equal(t, []float32{4}, ft)
}

func TestElevationOctavesRebuildAmplitudes(t *testing.T) {
	h := newHarness(t, withPair(shader.VertexPlanet, shader.FragmentPlanet), nil)
	h.frame(t)
	require.Equal(t, 4, h.panel.AmplitudeCount())

	h.panel.Set(panel.ElevationOctaves, 6)
	h.frame(t)
	assert.Equal(t, 6, h.panel.AmplitudeCount())

	h.panel.Set(panel.ElevationOctaves, 3)
	h.frame(t)
	assert.Equal(t, 3, h.panel.AmplitudeCount())

	elev, ok := h.gpu.Uniform(h.driver.Program().Handle(), "u_ElevationParams")
	require.True(t, ok)
	assert.Equal(t, float32(3), elev[0])
}

func TestTessellationChangeReplacesMesh(t *testing.T) {
	h := newHarness(t, params.Defaults(), nil)
	h.frame(t)
	first := h.gpu.Draws[0].Mesh

	h.panel.Set(panel.Tessellations, 2)
	h.frame(t)

	require.Len(t, h.gpu.DeletedMesh, 1)
	assert.Equal(t, first, h.gpu.DeletedMesh[0])
	assert.NotEqual(t, first, h.gpu.Draws[1].Mesh)
}

func TestOutOfRangeIndexAbortsFrame(t *testing.T) {
	h := newHarness(t, params.Defaults(), nil)
	h.frame(t)

	h.panel.SetVertexShader(99)
	err := h.driver.Frame(640, 480)
	assert.ErrorIs(t, err, shader.ErrIndexOutOfRange)
}

func TestIllegalStartIsRepaired(t *testing.T) {
	h := newHarness(t, withPair(shader.VertexNoOp, shader.FragmentPlanet), nil)
	assert.Equal(t, pairing.Pair{}, h.driver.State().Pair)
	assert.Equal(t, shader.FragmentLambert, h.panel.Values().FragmentShader)

	h.frame(t)
	assert.Len(t, h.gpu.Draws, 1)
}

func TestStartupLinkFailureIsReturned(t *testing.T) {
	reg := shader.Default()
	gpu := graphicstest.New()
	gpu.Fail = func(vs, fs string) error { return graphics.ErrShaderCompile }
	p := panel.New(params.Defaults(), reg.Names(shader.Vertex), reg.Names(shader.Fragment))
	_, err := New(gpu, reg, p, fixedCamera{}, geometry.NewProvider(gpu))
	assert.ErrorIs(t, err, graphics.ErrShaderCompile)
}

func TestMoonOrbitsWithVertexTime(t *testing.T) {
	v := params.Defaults()
	a := moonModel(v, 0).Col(3)
	b := moonModel(v, 400).Col(3)
	assert.InDelta(t, moonOrbitRadius, mgl32.Vec3{a[0], a[1], a[2]}.Len(), 1e-4)
	assert.InDelta(t, moonOrbitRadius, mgl32.Vec3{b[0], b[1], b[2]}.Len(), 1e-4)
	assert.False(t, a.ApproxEqual(b))
}
