// Package driver runs the per-frame control loop: it diffs the panel against
// the last frame, keeps the shader pair legal, relinks, reconciles the panel
// groups, uploads uniforms and issues the draws.
package driver

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goicoshader/graphics"
	"github.com/richinsley/goicoshader/pairing"
	"github.com/richinsley/goicoshader/params"
	"github.com/richinsley/goicoshader/program"
	"github.com/richinsley/goicoshader/shader"
)

const (
	moonScale       = 0.27
	moonOrbitRadius = 2.2
	// moonOrbitRate is radians per vertex time tick.
	moonOrbitRate = 0.004
)

var clearColor = mgl32.Vec4{0.2, 0.2, 0.2, 1}

// Controls is the control panel as seen by the driver.
type Controls interface {
	params.Panel
	Values() params.Values
	SetVertexShader(index int)
	SetFragmentShader(index int)
	Refresh()
}

type Camera interface {
	ViewProj() mgl32.Mat4
	Position() mgl32.Vec3
}

type MeshProvider interface {
	Regenerate(level int) (graphics.Mesh, error)
	Mesh() graphics.Mesh
	Release()
}

// TimeCounters are the two shader clocks. They advance by the tick speeds
// once per frame and are never reset.
type TimeCounters struct {
	Vert int32
	Frag int32
}

// ControllerState is everything the driver remembers between frames.
type ControllerState struct {
	// Prev holds the control values seen at the end of the previous frame.
	Prev params.Values
	Pair pairing.Pair
	Time TimeCounters
	// Compiled is the pair the current program was linked from.
	Compiled pairing.Pair
}

type FrameDriver struct {
	gpu      graphics.Backend
	registry *shader.Registry
	resolver *pairing.Resolver
	exposure *params.Exposure
	panel    Controls
	camera   Camera
	meshes   MeshProvider

	active  program.Active
	program *program.Program
	moon    *program.Program
	state   ControllerState
}

// New resolves a legal starting pair from the panel values, links its program
// and the moon program, and builds the initial mesh. Link failures here are
// returned to the caller.
func New(gpu graphics.Backend, registry *shader.Registry, panel Controls, camera Camera, meshes MeshProvider) (*FrameDriver, error) {
	resolver, err := pairing.NewResolver(registry)
	if err != nil {
		return nil, err
	}
	d := &FrameDriver{
		gpu:      gpu,
		registry: registry,
		resolver: resolver,
		exposure: params.NewExposure(registry),
		panel:    panel,
		camera:   camera,
		meshes:   meshes,
	}

	values := panel.Values()
	pair, err := d.startPair(values)
	if err != nil {
		return nil, err
	}
	if pair.Vertex != values.VertexShader || pair.Fragment != values.FragmentShader {
		log.Printf("starting pair %s repaired to %s", pairing.Pair{Vertex: values.VertexShader, Fragment: values.FragmentShader}, pair)
		d.writeBack(pair)
		values = panel.Values()
	}

	d.program, err = d.link(pair)
	if err != nil {
		return nil, err
	}
	vs, fs := shader.MoonSources()
	d.moon, err = program.Link(gpu, &d.active, vs, fs)
	if err != nil {
		d.program.Delete()
		return nil, fmt.Errorf("moon: %w", err)
	}
	if _, err := meshes.Regenerate(values.Tessellations); err != nil {
		d.program.Delete()
		d.moon.Delete()
		return nil, err
	}
	if _, err := d.exposure.Reconcile(pair, values.ElevationOctaves, panel); err != nil {
		return nil, err
	}

	d.state = ControllerState{Prev: values, Pair: pair, Compiled: pair}
	return d, nil
}

// startPair resolves the configured indices against the default pair, the
// fragment first and the vertex second, so the vertex wins any conflict.
func (d *FrameDriver) startPair(v params.Values) (pairing.Pair, error) {
	var pair pairing.Pair
	res, err := d.resolver.Resolve(pair, pairing.ProposeFragment(v.FragmentShader))
	if err != nil {
		return pair, err
	}
	res, err = d.resolver.Resolve(res.Pair, pairing.ProposeVertex(v.VertexShader))
	if err != nil {
		return pair, err
	}
	return res.Pair, nil
}

func (d *FrameDriver) State() ControllerState {
	return d.state
}

func (d *FrameDriver) Program() *program.Program {
	return d.program
}

// Shutdown releases every GPU object the driver owns.
func (d *FrameDriver) Shutdown() {
	d.program.Delete()
	d.moon.Delete()
	d.meshes.Release()
}

func (d *FrameDriver) link(pair pairing.Pair) (*program.Program, error) {
	v, err := d.registry.Describe(shader.Vertex, pair.Vertex)
	if err != nil {
		return nil, err
	}
	f, err := d.registry.Describe(shader.Fragment, pair.Fragment)
	if err != nil {
		return nil, err
	}
	p, err := program.Link(d.gpu, &d.active, v.Source, f.Source)
	if err != nil {
		return nil, fmt.Errorf("pair %q/%q: %w", v.Name, f.Name, err)
	}
	log.Printf("linked %s / %s", v.Name, f.Name)
	return p, nil
}

func (d *FrameDriver) writeBack(pair pairing.Pair) {
	d.panel.SetVertexShader(pair.Vertex)
	d.panel.SetFragmentShader(pair.Fragment)
	d.panel.Refresh()
}

// Frame runs one iteration of the control loop and draws into a viewport of
// the given size. Errors are fatal to the loop; a pair that fails to link is
// not an error.
func (d *FrameDriver) Frame(width, height int) error {
	d.gpu.Viewport(width, height)
	d.gpu.Clear(clearColor[0], clearColor[1], clearColor[2], clearColor[3])

	values := d.panel.Values()
	prev := d.state.Prev

	if values.Tessellations != prev.Tessellations {
		if _, err := d.meshes.Regenerate(values.Tessellations); err != nil {
			log.Printf("tessellation %d: %v", values.Tessellations, err)
		} else {
			log.Printf("tessellation level %d", values.Tessellations)
		}
	}

	if values.VertexShader != prev.VertexShader || values.FragmentShader != prev.FragmentShader {
		if err := d.switchPair(prev, values); err != nil {
			return err
		}
		values = d.panel.Values()
	}

	logChanges(prev, values)

	events, err := d.exposure.Reconcile(d.state.Pair, values.ElevationOctaves, d.panel)
	if err != nil {
		return err
	}
	if len(events) > 0 {
		log.Printf("panel groups %v", events)
	}

	d.push(values)

	planet, err := d.resolver.IsPlanet(d.state.Pair)
	if err != nil {
		return err
	}
	mesh := d.meshes.Mesh()
	d.program.Draw(mesh)
	if planet {
		d.drawMoon(values, mesh)
	}

	d.state.Time.Vert += int32(values.VertTickSpeed)
	d.state.Time.Frag += int32(values.FragTickSpeed)
	d.state.Prev = values
	return nil
}

// switchPair resolves the indices the user changed since prev, relinks when
// the pair differs from the compiled one, and writes the outcome back to the
// panel. A vertex change is resolved before a fragment change.
func (d *FrameDriver) switchPair(prev, values params.Values) error {
	pair := d.state.Pair
	changed := false

	if values.VertexShader != prev.VertexShader && values.VertexShader != pair.Vertex {
		res, err := d.resolver.Resolve(pair, pairing.ProposeVertex(values.VertexShader))
		if err != nil {
			return err
		}
		pair = res.Pair
		changed = changed || res.Forced
	}
	if values.FragmentShader != prev.FragmentShader && values.FragmentShader != pair.Fragment {
		res, err := d.resolver.Resolve(pair, pairing.ProposeFragment(values.FragmentShader))
		if err != nil {
			return err
		}
		if res.Rejected {
			log.Printf("fragment %d rejected while a planet vertex is active", values.FragmentShader)
		}
		pair = res.Pair
		changed = changed || res.Forced || res.Rejected
	}

	if pair != d.state.Compiled {
		p, err := d.link(pair)
		if err != nil {
			log.Printf("keeping %s: %v", d.state.Compiled, err)
			pair = d.state.Compiled
			changed = true
		} else {
			d.program.Delete()
			d.program = p
			d.state.Compiled = pair
		}
	}

	d.state.Pair = pair
	if changed || pair.Vertex != values.VertexShader || pair.Fragment != values.FragmentShader {
		d.writeBack(pair)
	}
	return nil
}

func (d *FrameDriver) push(values params.Values) {
	p := d.program
	p.SetModelMatrix(mgl32.Scale3D(values.ScaleX, values.ScaleY, values.ScaleZ))
	p.SetViewProjMatrix(d.camera.ViewProj())
	p.SetCamPos(d.camera.Position())
	p.SetGeometryColor(values.Color())
	p.SetTimes(d.state.Time.Vert, d.state.Time.Frag)
	p.SetOctaves(int32(values.Octaves))
	p.SetFractal(values.Fractal())
	p.SetElevationParams(values.ElevationParams())
	p.SetOctaveAmps(values.Amplitudes())
}

// moonModel places the moon on a circular orbit in the XZ plane around the
// scaled body.
func moonModel(values params.Values, vertTime int32) mgl32.Mat4 {
	angle := float32(vertTime) * moonOrbitRate
	scale := values.Scale().Mul(moonScale)
	return mgl32.HomogRotate3DY(angle).
		Mul4(mgl32.Translate3D(moonOrbitRadius, 0, 0)).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

func (d *FrameDriver) drawMoon(values params.Values, mesh graphics.Mesh) {
	m := d.moon
	m.SetModelMatrix(moonModel(values, d.state.Time.Vert))
	m.SetViewProjMatrix(d.camera.ViewProj())
	m.SetCamPos(d.camera.Position())
	m.SetTimes(d.state.Time.Vert, d.state.Time.Frag)
	m.Draw(mesh)
}

func logChanges(prev, cur params.Values) {
	if prev.Red != cur.Red || prev.Green != cur.Green || prev.Blue != cur.Blue {
		log.Printf("color %d %d %d", cur.Red, cur.Green, cur.Blue)
	}
	if prev.Scale() != cur.Scale() {
		log.Printf("scale %v", cur.Scale())
	}
	if prev.Octaves != cur.Octaves || prev.BaseFrequency != cur.BaseFrequency {
		log.Printf("noise octaves %d base frequency %d", cur.Octaves, cur.BaseFrequency)
	}
	if prev.ElevationOctaves != cur.ElevationOctaves || prev.Terraces != cur.Terraces ||
		prev.Height != cur.Height || prev.SeaLevel != cur.SeaLevel || prev.OctaveAmps != cur.OctaveAmps {
		log.Printf("elevation %v amplitudes %v", cur.ElevationParams(), cur.Amplitudes())
	}
}
