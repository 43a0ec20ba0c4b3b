// Package graphicstest provides a recording graphics.Backend for tests.
package graphicstest

import (
	"fmt"
	"regexp"

	"github.com/richinsley/goicoshader/graphics"
)

var (
	uniformDecl = regexp.MustCompile(`uniform\s+(?:(?:highp|mediump|lowp)\s+)?\w+\s+(\w+)`)
	attribDecl  = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?in\s+\w+\s+(vs_\w+)`)
)

// Draw records one DrawElements call.
type Draw struct {
	Program graphics.Program
	Mesh    graphics.Mesh
	Attribs []int32
}

type programInfo struct {
	uniforms map[string]int32
	attribs  map[string]int32
}

// Backend declares every uniform and vs_ attribute it finds in the sources
// handed to NewProgram and records everything else that is called on it.
type Backend struct {
	// Fail, when set, is consulted before linking. A non-nil error aborts NewProgram.
	Fail func(vertexSource, fragmentSource string) error

	Active      graphics.Program
	UseCalls    int
	LinkCount   int
	Deleted     []graphics.Program
	DeletedMesh []graphics.Mesh
	Draws       []Draw
	Values      map[int32][]float32
	Clears      int

	programs map[graphics.Program]*programInfo
	enabled  []int32
	next     graphics.Program
	nextLoc  int32
	nextBuf  uint32
}

func New() *Backend {
	return &Backend{
		Values:   make(map[int32][]float32),
		programs: make(map[graphics.Program]*programInfo),
	}
}

func (b *Backend) NewProgram(vertexSource, fragmentSource string) (graphics.Program, error) {
	if b.Fail != nil {
		if err := b.Fail(vertexSource, fragmentSource); err != nil {
			return graphics.NoProgram, err
		}
	}
	b.next++
	b.LinkCount++
	info := &programInfo{
		uniforms: make(map[string]int32),
		attribs:  make(map[string]int32),
	}
	for _, src := range []string{vertexSource, fragmentSource} {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			if _, ok := info.uniforms[m[1]]; !ok {
				info.uniforms[m[1]] = b.nextLoc
				b.nextLoc++
			}
		}
	}
	for i, m := range attribDecl.FindAllStringSubmatch(vertexSource, -1) {
		info.attribs[m[1]] = int32(i)
	}
	b.programs[b.next] = info
	return b.next, nil
}

func (b *Backend) DeleteProgram(p graphics.Program) {
	delete(b.programs, p)
	b.Deleted = append(b.Deleted, p)
}

func (b *Backend) UseProgram(p graphics.Program) {
	b.UseCalls++
	b.Active = p
}

func (b *Backend) UniformLocation(p graphics.Program, name string) int32 {
	if info, ok := b.programs[p]; ok {
		if loc, ok := info.uniforms[name]; ok {
			return loc
		}
	}
	return -1
}

func (b *Backend) AttribLocation(p graphics.Program, name string) int32 {
	if info, ok := b.programs[p]; ok {
		if loc, ok := info.attribs[name]; ok {
			return loc
		}
	}
	return -1
}

// Uniform returns the last value uploaded to the named uniform of p.
func (b *Backend) Uniform(p graphics.Program, name string) ([]float32, bool) {
	loc := b.UniformLocation(p, name)
	if loc < 0 {
		return nil, false
	}
	v, ok := b.Values[loc]
	return v, ok
}

// Declares reports whether p has a location for the named uniform.
func (b *Backend) Declares(p graphics.Program, name string) bool {
	return b.UniformLocation(p, name) >= 0
}

func (b *Backend) set(loc int32, v ...float32) {
	if loc < 0 {
		panic(fmt.Sprintf("graphicstest: upload to absent location %d", loc))
	}
	b.Values[loc] = v
}

func (b *Backend) Uniform1i(loc int32, v int32) { b.set(loc, float32(v)) }
func (b *Backend) Uniform2f(loc int32, x, y float32) { b.set(loc, x, y) }
func (b *Backend) Uniform3f(loc int32, x, y, z float32) { b.set(loc, x, y, z) }
func (b *Backend) Uniform4f(loc int32, x, y, z, w float32) { b.set(loc, x, y, z, w) }

func (b *Backend) Uniform1fv(loc int32, v []float32) {
	b.set(loc, append([]float32(nil), v...)...)
}

func (b *Backend) UniformMatrix4fv(loc int32, m [16]float32) {
	b.set(loc, m[:]...)
}

func (b *Backend) NewMesh(positions, normals []float32, indices []uint32) (graphics.Mesh, error) {
	b.nextBuf += 4
	return graphics.Mesh{
		VAO:       b.nextBuf - 3,
		Positions: b.nextBuf - 2,
		Normals:   b.nextBuf - 1,
		Indices:   b.nextBuf,
		Count:     int32(len(indices)),
	}, nil
}

func (b *Backend) DeleteMesh(m graphics.Mesh) {
	b.DeletedMesh = append(b.DeletedMesh, m)
}

func (b *Backend) EnableAttrib(m graphics.Mesh, loc int32, kind graphics.AttribKind) {
	b.enabled = append(b.enabled, loc)
}

func (b *Backend) DisableAttrib(loc int32) {
	for i, l := range b.enabled {
		if l == loc {
			b.enabled = append(b.enabled[:i], b.enabled[i+1:]...)
			return
		}
	}
}

func (b *Backend) DrawElements(m graphics.Mesh) {
	b.Draws = append(b.Draws, Draw{
		Program: b.Active,
		Mesh:    m,
		Attribs: append([]int32(nil), b.enabled...),
	})
}

func (b *Backend) Viewport(width, height int) {}

func (b *Backend) Clear(r, g, bl, a float32) { b.Clears++ }

func (b *Backend) ReadPixels(width, height int) []byte {
	return make([]byte, width*height*4)
}

var _ graphics.Backend = (*Backend)(nil)
