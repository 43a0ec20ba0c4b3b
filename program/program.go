// Package program wraps a linked GPU program and the uniform slots resolved
// for it at link time.
package program

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goicoshader/graphics"
)

// Program is a linked shader pair. Every setter is a no-op for a uniform the
// pair does not declare.
type Program struct {
	gpu      graphics.Backend
	active   *Active
	handle   graphics.Program
	uniforms [uniformCount]Slot
	attrPos  Slot
	attrNor  Slot
}

// Link compiles and links the two sources and resolves every known uniform
// and attribute. Errors wrap graphics.ErrShaderCompile or graphics.ErrShaderLink.
func Link(gpu graphics.Backend, active *Active, vertexSource, fragmentSource string) (*Program, error) {
	handle, err := gpu.NewProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	p := &Program{
		gpu:    gpu,
		active: active,
		handle: handle,
	}
	for u := Uniform(0); u < uniformCount; u++ {
		p.uniforms[u] = p.lookup(u)
	}
	p.attrPos = slotAt(gpu.AttribLocation(handle, "vs_Pos"))
	p.attrNor = slotAt(gpu.AttribLocation(handle, "vs_Nor"))
	return p, nil
}

func (p *Program) lookup(u Uniform) Slot {
	name := uniformNames[u]
	if arrays[u] {
		if loc := p.gpu.UniformLocation(p.handle, name+"[0]"); loc >= 0 {
			return slotAt(loc)
		}
	}
	return slotAt(p.gpu.UniformLocation(p.handle, name))
}

func (p *Program) Handle() graphics.Program {
	return p.handle
}

// Has reports whether the program declares u.
func (p *Program) Has(u Uniform) bool {
	return p.uniforms[u].present
}

// Delete releases the GPU program. The Program must not be used afterwards.
func (p *Program) Delete() {
	p.active.Forget(p.handle)
	p.gpu.DeleteProgram(p.handle)
}

func (p *Program) use() {
	p.active.Use(p.gpu, p.handle)
}

// SetModelMatrix uploads the model matrix and its inverse transpose, which is
// always derived even when the program has no normal matrix uniform.
func (p *Program) SetModelMatrix(model mgl32.Mat4) {
	p.use()

	if s := p.uniforms[Model]; s.present {
		p.gpu.UniformMatrix4fv(s.loc, model)
	}

	invTr := model.Transpose().Inv()
	if s := p.uniforms[ModelInvTr]; s.present {
		p.gpu.UniformMatrix4fv(s.loc, invTr)
	}
}

func (p *Program) SetViewProjMatrix(vp mgl32.Mat4) {
	p.use()

	if s := p.uniforms[ViewProj]; s.present {
		p.gpu.UniformMatrix4fv(s.loc, vp)
	}
}

func (p *Program) SetGeometryColor(color mgl32.Vec4) {
	p.use()

	if s := p.uniforms[Color]; s.present {
		p.gpu.Uniform4f(s.loc, color[0], color[1], color[2], color[3])
	}
}

// SetGeometryColorRGB takes 0-255 channels.
func (p *Program) SetGeometryColorRGB(red, green, blue int) {
	p.SetGeometryColor(mgl32.Vec4{float32(red) / 255, float32(green) / 255, float32(blue) / 255, 1})
}

func (p *Program) SetVertTime(t int32) {
	p.use()

	if s := p.uniforms[VertTime]; s.present {
		p.gpu.Uniform1i(s.loc, t)
	}
}

func (p *Program) SetFragTime(t int32) {
	p.use()

	if s := p.uniforms[FragTime]; s.present {
		p.gpu.Uniform1i(s.loc, t)
	}
}

func (p *Program) SetTimes(vertTime, fragTime int32) {
	p.SetVertTime(vertTime)
	p.SetFragTime(fragTime)
}

func (p *Program) SetOctaves(octaves int32) {
	p.use()

	if s := p.uniforms[Octaves]; s.present {
		p.gpu.Uniform1i(s.loc, octaves)
	}
}

func (p *Program) SetFractal(fractal mgl32.Vec2) {
	p.use()

	if s := p.uniforms[Fractal]; s.present {
		p.gpu.Uniform2f(s.loc, fractal[0], fractal[1])
	}
}

func (p *Program) SetCamPos(pos mgl32.Vec3) {
	p.use()

	if s := p.uniforms[CamPos]; s.present {
		p.gpu.Uniform3f(s.loc, pos[0], pos[1], pos[2])
	}
}

func (p *Program) SetElevationParams(params []float32) {
	p.use()

	if s := p.uniforms[ElevationParams]; s.present && len(params) > 0 {
		p.gpu.Uniform1fv(s.loc, params)
	}
}

func (p *Program) SetOctaveAmps(amps []float32) {
	p.use()

	if s := p.uniforms[OctaveAmps]; s.present && len(amps) > 0 {
		p.gpu.Uniform1fv(s.loc, amps)
	}
}

// Draw binds the mesh attributes the program reads and issues the draw call.
func (p *Program) Draw(m graphics.Mesh) {
	p.use()

	if p.attrPos.present {
		p.gpu.EnableAttrib(m, p.attrPos.loc, graphics.AttribPosition)
	}
	if p.attrNor.present {
		p.gpu.EnableAttrib(m, p.attrNor.loc, graphics.AttribNormal)
	}

	p.gpu.DrawElements(m)

	if p.attrPos.present {
		p.gpu.DisableAttrib(p.attrPos.loc)
	}
	if p.attrNor.present {
		p.gpu.DisableAttrib(p.attrNor.loc)
	}
}
