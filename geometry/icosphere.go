// Package geometry builds the icosphere mesh the demo shades.
package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goicoshader/graphics"
)

// MaxTessellation bounds subdivision; level 8 is already 1.3M triangles.
const MaxTessellation = 8

// Icosphere is the CPU side of a subdivided unit icosahedron. Positions and
// normals are packed as vec4 (w = 1 and w = 0 respectively).
type Icosphere struct {
	Positions []float32
	Normals   []float32
	Indices   []uint32
}

// NewIcosphere subdivides an icosahedron `level` times and projects every
// vertex onto the sphere of the given radius.
func NewIcosphere(center mgl32.Vec3, radius float32, level int) *Icosphere {
	const x = 0.525731112119133606
	const z = 0.850650808352039932
	verts := []mgl32.Vec3{
		{-x, 0, z}, {x, 0, z}, {-x, 0, -z}, {x, 0, -z},
		{0, z, x}, {0, z, -x}, {0, -z, x}, {0, -z, -x},
		{z, x, 0}, {-z, x, 0}, {z, -x, 0}, {-z, -x, 0},
	}
	tris := []uint32{
		0, 4, 1, 0, 9, 4, 9, 5, 4, 4, 5, 8, 4, 8, 1,
		8, 10, 1, 8, 3, 10, 5, 3, 8, 5, 2, 3, 2, 7, 3,
		7, 10, 3, 7, 6, 10, 7, 11, 6, 11, 0, 6, 0, 1, 6,
		6, 1, 10, 9, 0, 11, 9, 11, 2, 9, 2, 5, 7, 2, 11,
	}

	for i := 0; i < level; i++ {
		verts, tris = subdivide(verts, tris)
	}

	ico := &Icosphere{
		Positions: make([]float32, 0, len(verts)*4),
		Normals:   make([]float32, 0, len(verts)*4),
		Indices:   tris,
	}
	for _, v := range verts {
		n := v.Normalize()
		p := center.Add(n.Mul(radius))
		ico.Positions = append(ico.Positions, p[0], p[1], p[2], 1)
		ico.Normals = append(ico.Normals, n[0], n[1], n[2], 0)
	}
	return ico
}

type edge struct{ a, b uint32 }

func subdivide(verts []mgl32.Vec3, tris []uint32) ([]mgl32.Vec3, []uint32) {
	midpoints := make(map[edge]uint32, len(tris))
	midpoint := func(a, b uint32) uint32 {
		if a > b {
			a, b = b, a
		}
		if i, ok := midpoints[edge{a, b}]; ok {
			return i
		}
		m := verts[a].Add(verts[b]).Normalize()
		verts = append(verts, m)
		i := uint32(len(verts) - 1)
		midpoints[edge{a, b}] = i
		return i
	}

	out := make([]uint32, 0, len(tris)*4)
	for t := 0; t < len(tris); t += 3 {
		v0, v1, v2 := tris[t], tris[t+1], tris[t+2]
		a := midpoint(v0, v1)
		b := midpoint(v1, v2)
		c := midpoint(v2, v0)
		out = append(out,
			v0, a, c,
			v1, b, a,
			v2, c, b,
			a, b, c,
		)
	}
	return verts, out
}

// VertexCount is the number of distinct vertices.
func (ico *Icosphere) VertexCount() int {
	return len(ico.Positions) / 4
}

// Provider regenerates the GPU mesh for a tessellation level, releasing the
// previous one.
type Provider struct {
	gpu     graphics.Backend
	current graphics.Mesh
	level   int
	loaded  bool
}

func NewProvider(gpu graphics.Backend) *Provider {
	return &Provider{gpu: gpu, level: -1}
}

func (p *Provider) Regenerate(level int) (graphics.Mesh, error) {
	if level < 0 || level > MaxTessellation {
		return p.current, fmt.Errorf("tessellation level %d outside 0..%d", level, MaxTessellation)
	}
	ico := NewIcosphere(mgl32.Vec3{0, 0, 0}, 1, level)
	mesh, err := p.gpu.NewMesh(ico.Positions, ico.Normals, ico.Indices)
	if err != nil {
		return p.current, fmt.Errorf("failed to upload icosphere: %w", err)
	}
	if p.loaded {
		p.gpu.DeleteMesh(p.current)
	}
	p.current = mesh
	p.level = level
	p.loaded = true
	return mesh, nil
}

func (p *Provider) Mesh() graphics.Mesh {
	return p.current
}

func (p *Provider) Level() int {
	return p.level
}

// Release deletes the current mesh.
func (p *Provider) Release() {
	if p.loaded {
		p.gpu.DeleteMesh(p.current)
		p.loaded = false
	}
}
