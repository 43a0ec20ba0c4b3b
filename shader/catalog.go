package shader

// Default builds the registry used by the demo. Index order is what the
// control panel shows and must not change between releases.
func Default() *Registry {
	r := NewRegistry()

	r.Register(Vertex, Descriptor{Name: "NoOp", Source: lambertVert})
	r.Register(Vertex, Descriptor{Name: "Vertex Deformator", Source: vertexDeformatorVert})
	r.Register(Vertex, Descriptor{Name: "Twist Deformator", Source: twistDeformatorVert})
	r.Register(Vertex, Descriptor{Name: "Planet", Source: planetVert, IsPlanet: true})
	r.Register(Vertex, Descriptor{Name: "Noise Visualizer", Source: noiseVisualizerVert, IsNoiseVisualizer: true})

	r.Register(Fragment, Descriptor{Name: "Lambert", Source: lambertFrag, IsColorable: true})
	r.Register(Fragment, Descriptor{Name: "Normals", Source: normalViewerFrag})
	r.Register(Fragment, Descriptor{Name: "Fractal Brownian Motion", Source: fbmNoisyColorFrag, IsFractalNoise: true, IsColorable: true})
	r.Register(Fragment, Descriptor{Name: "Fractal Perlin Noise", Source: perlinNoisyColorFrag, IsFractalNoise: true, IsColorable: true})
	r.Register(Fragment, Descriptor{Name: "Fractal Worley Noise", Source: worleyNoisyColorFrag, IsFractalNoise: true, IsColorable: true})
	r.Register(Fragment, Descriptor{Name: "Planet", Source: planetFrag, IsPlanet: true})
	r.Register(Fragment, Descriptor{Name: "Noise Visualizer", Source: noiseVisualizerFrag, IsNoiseVisualizer: true, IsFractalNoise: true})

	return r
}

// Indices into Default. Tests and the config loader refer to shaders by these.
const (
	VertexNoOp              = 0
	VertexDeformator        = 1
	VertexTwist             = 2
	VertexPlanet            = 3
	VertexNoiseVisualizer   = 4
	FragmentLambert         = 0
	FragmentNormals         = 1
	FragmentFBM             = 2
	FragmentPerlin          = 3
	FragmentWorley          = 4
	FragmentPlanet          = 5
	FragmentNoiseVisualizer = 6
)

// MoonSources returns the fixed pair used for the secondary body.
func MoonSources() (vertex, fragment string) {
	return lambertVert, moonFrag
}
