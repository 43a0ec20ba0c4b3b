// Package glbackend implements graphics.Backend on an OpenGL 4.1 core context.
// Every method must be called on the thread that owns the current context.
package glbackend

import (
	"fmt"
	"log"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/richinsley/goicoshader/graphics"
	"github.com/richinsley/goicoshader/translator"
)

var glInitOnce sync.Once

type programInfo struct {
	vertex   *translator.Translated
	fragment *translator.Translated
}

// Backend is the go-gl implementation of graphics.Backend.
type Backend struct {
	// es selects ESSL output from the translator for GLES contexts.
	es       bool
	programs map[graphics.Program]*programInfo
}

// New loads the GL entry points for the current context and sets the fixed
// pipeline state the demo relies on.
func New(es bool) (*Backend, error) {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	return &Backend{
		es:       es,
		programs: make(map[graphics.Program]*programInfo),
	}, nil
}

func (b *Backend) NewProgram(vertexSource, fragmentSource string) (graphics.Program, error) {
	vs, err := translator.Translate(vertexSource, translator.Vertex, b.es)
	if err != nil {
		return graphics.NoProgram, fmt.Errorf("%w: %v", graphics.ErrShaderCompile, err)
	}
	fs, err := translator.Translate(fragmentSource, translator.Fragment, b.es)
	if err != nil {
		return graphics.NoProgram, fmt.Errorf("%w: %v", graphics.ErrShaderCompile, err)
	}

	handle, err := newProgram(vs.Code, fs.Code)
	if err != nil {
		return graphics.NoProgram, err
	}
	p := graphics.Program(handle)
	b.programs[p] = &programInfo{vertex: vs, fragment: fs}
	return p, nil
}

func (b *Backend) DeleteProgram(p graphics.Program) {
	if p == graphics.NoProgram {
		return
	}
	gl.DeleteProgram(uint32(p))
	delete(b.programs, p)
}

func (b *Backend) UseProgram(p graphics.Program) {
	gl.UseProgram(uint32(p))
}

// UniformLocation looks name up through the translator's variable map of
// either stage, then asks GL for the location of the mapped name.
func (b *Backend) UniformLocation(p graphics.Program, name string) int32 {
	info, ok := b.programs[p]
	if !ok {
		return -1
	}
	mapped, ok := info.vertex.MappedName(name)
	if !ok {
		mapped, ok = info.fragment.MappedName(name)
	}
	if !ok {
		return -1
	}
	return gl.GetUniformLocation(uint32(p), gl.Str(mapped+"\x00"))
}

func (b *Backend) AttribLocation(p graphics.Program, name string) int32 {
	info, ok := b.programs[p]
	if !ok {
		return -1
	}
	mapped, ok := info.vertex.MappedName(name)
	if !ok {
		mapped = name
	}
	return gl.GetAttribLocation(uint32(p), gl.Str(mapped+"\x00"))
}

func (b *Backend) Uniform1i(loc int32, v int32) { gl.Uniform1i(loc, v) }

func (b *Backend) Uniform2f(loc int32, x, y float32) { gl.Uniform2f(loc, x, y) }

func (b *Backend) Uniform3f(loc int32, x, y, z float32) { gl.Uniform3f(loc, x, y, z) }

func (b *Backend) Uniform4f(loc int32, x, y, z, w float32) { gl.Uniform4f(loc, x, y, z, w) }

func (b *Backend) Uniform1fv(loc int32, v []float32) {
	if len(v) == 0 {
		return
	}
	gl.Uniform1fv(loc, int32(len(v)), &v[0])
}

func (b *Backend) UniformMatrix4fv(loc int32, m [16]float32) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (b *Backend) NewMesh(positions, normals []float32, indices []uint32) (graphics.Mesh, error) {
	if len(positions) == 0 || len(indices) == 0 {
		return graphics.Mesh{}, fmt.Errorf("empty mesh: %d positions, %d indices", len(positions), len(indices))
	}
	if len(normals) != len(positions) {
		return graphics.Mesh{}, fmt.Errorf("mesh has %d position and %d normal components", len(positions), len(normals))
	}

	var m graphics.Mesh
	gl.GenVertexArrays(1, &m.VAO)
	gl.BindVertexArray(m.VAO)

	gl.GenBuffers(1, &m.Positions)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.Positions)
	gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, gl.Ptr(positions), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.Normals)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.Normals)
	gl.BufferData(gl.ARRAY_BUFFER, len(normals)*4, gl.Ptr(normals), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.Indices)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.Indices)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	m.Count = int32(len(indices))
	return m, nil
}

func (b *Backend) DeleteMesh(m graphics.Mesh) {
	buffers := []uint32{m.Positions, m.Normals, m.Indices}
	gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
	}
}

// EnableAttrib points loc at the mesh buffer for kind. Both buffers hold
// four floats per vertex.
func (b *Backend) EnableAttrib(m graphics.Mesh, loc int32, kind graphics.AttribKind) {
	if loc < 0 {
		return
	}
	buf := m.Positions
	if kind == graphics.AttribNormal {
		buf = m.Normals
	}
	gl.BindVertexArray(m.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	gl.EnableVertexAttribArray(uint32(loc))
	gl.VertexAttribPointer(uint32(loc), 4, gl.FLOAT, false, 0, gl.PtrOffset(0))
}

func (b *Backend) DisableAttrib(loc int32) {
	if loc < 0 {
		return
	}
	gl.DisableVertexAttribArray(uint32(loc))
}

func (b *Backend) DrawElements(m graphics.Mesh) {
	gl.BindVertexArray(m.VAO)
	gl.DrawElements(gl.TRIANGLES, m.Count, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (b *Backend) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (b *Backend) Clear(r, g, bl, a float32) {
	gl.ClearColor(r, g, bl, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels returns the default framebuffer as tightly packed RGBA, bottom
// row first.
func (b *Backend) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%w: %s", graphics.ErrShaderLink, strings.TrimRight(logText, "\x00"))
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", graphics.ErrShaderCompile, strings.TrimRight(logText, "\x00"))
	}
	return shader, nil
}
