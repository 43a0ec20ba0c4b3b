package params

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxOctaveAmplitudes is the length of the per-octave amplitude array the
// planet shader declares.
const MaxOctaveAmplitudes = 6

// Values is a snapshot of every tunable control.
type Values struct {
	Tessellations    int                          `toml:"tessellations"`
	VertexShader     int                          `toml:"vertex_shader"`
	FragmentShader   int                          `toml:"fragment_shader"`
	VertTickSpeed    int                          `toml:"vert_tick_speed"`
	FragTickSpeed    int                          `toml:"frag_tick_speed"`
	Red              int                          `toml:"red"`
	Green            int                          `toml:"green"`
	Blue             int                          `toml:"blue"`
	ScaleX           float32                      `toml:"x_scale"`
	ScaleY           float32                      `toml:"y_scale"`
	ScaleZ           float32                      `toml:"z_scale"`
	Octaves          int                          `toml:"octaves"`
	BaseFrequency    int                          `toml:"base_frequency"`
	ElevationOctaves int                          `toml:"elevation_octaves"`
	Terraces         int                          `toml:"terraces"`
	Height           float32                      `toml:"height"`
	SeaLevel         float32                      `toml:"sea_level"`
	OctaveAmps       [MaxOctaveAmplitudes]float32 `toml:"octave_amps"`
}

// Defaults returns the values the demo starts with.
func Defaults() Values {
	v := Values{
		Tessellations:    6,
		VertTickSpeed:    1,
		FragTickSpeed:    1,
		Red:              77,
		Green:            142,
		Blue:             187,
		ScaleX:           1,
		ScaleY:           1,
		ScaleZ:           1,
		Octaves:          4,
		BaseFrequency:    2,
		ElevationOctaves: 4,
		Terraces:         8,
		Height:           0.15,
	}
	for i := range v.OctaveAmps {
		v.OctaveAmps[i] = float32(math.Pow(0.5, float64(i)))
	}
	return v
}

// Color is the base color normalised to [0, 1] with full alpha.
func (v Values) Color() mgl32.Vec4 {
	return mgl32.Vec4{float32(v.Red) / 255, float32(v.Green) / 255, float32(v.Blue) / 255, 1}
}

func (v Values) Scale() mgl32.Vec3 {
	return mgl32.Vec3{v.ScaleX, v.ScaleY, v.ScaleZ}
}

// Fractal is {base frequency, gain}; the frequency control is an exponent.
func (v Values) Fractal() mgl32.Vec2 {
	return mgl32.Vec2{float32(math.Pow(2, float64(v.BaseFrequency))), 0.5}
}

// ElevationParams packs {octaves, terraces, height, sea level} for u_ElevationParams.
func (v Values) ElevationParams() []float32 {
	return []float32{float32(ClampOctaves(v.ElevationOctaves)), float32(v.Terraces), v.Height, v.SeaLevel}
}

func (v Values) Amplitudes() []float32 {
	return v.OctaveAmps[:]
}

// ClampOctaves limits an elevation octave count to the amplitude array size.
func ClampOctaves(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxOctaveAmplitudes {
		return MaxOctaveAmplitudes
	}
	return n
}
