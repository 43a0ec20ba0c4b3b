package graphics

import "errors"

var (
	// ErrShaderCompile reports GPU source that failed to compile.
	ErrShaderCompile = errors.New("shader compile failure")
	// ErrShaderLink reports a vertex/fragment pair whose interfaces do not link.
	ErrShaderLink = errors.New("shader link failure")
)

// Program is a linked GPU program handle. The zero value is never a valid program.
type Program uint32

// NoProgram is the handle of "no program bound".
const NoProgram Program = 0

type AttribKind int

const (
	AttribPosition AttribKind = iota
	AttribNormal
)

// Mesh holds the GPU buffers of an indexed triangle mesh.
type Mesh struct {
	VAO       uint32
	Positions uint32
	Normals   uint32
	Indices   uint32
	Count     int32
}

// Backend is the narrow set of GPU primitives the demo needs. Locations follow
// the GL convention: -1 means the program does not declare the name.
type Backend interface {
	NewProgram(vertexSource, fragmentSource string) (Program, error)
	DeleteProgram(p Program)
	UseProgram(p Program)
	UniformLocation(p Program, name string) int32
	AttribLocation(p Program, name string) int32

	Uniform1i(loc int32, v int32)
	Uniform2f(loc int32, x, y float32)
	Uniform3f(loc int32, x, y, z float32)
	Uniform4f(loc int32, x, y, z, w float32)
	Uniform1fv(loc int32, v []float32)
	UniformMatrix4fv(loc int32, m [16]float32)

	NewMesh(positions, normals []float32, indices []uint32) (Mesh, error)
	DeleteMesh(m Mesh)
	EnableAttrib(m Mesh, loc int32, kind AttribKind)
	DisableAttrib(loc int32)
	DrawElements(m Mesh)

	Viewport(width, height int)
	Clear(r, g, b, a float32)
	ReadPixels(width, height int) []byte
}
