package panel

import (
	"fmt"

	"github.com/richinsley/goicoshader/params"
)

// Folder is a collapsible section of the panel.
type Folder int

const (
	FolderRoot Folder = iota
	FolderScale
	FolderPlanet
	FolderAmplitudes
	FolderNoise
	FolderColor
	folderCount
)

var folderNames = [folderCount]string{
	FolderRoot:       "",
	FolderScale:      "Scale Geometry",
	FolderPlanet:     "Planet",
	FolderAmplitudes: "Octave Amplitudes",
	FolderNoise:      "Modify Fractal Noise",
	FolderColor:      "Modify Color",
}

func (f Folder) String() string {
	if f < 0 || f >= folderCount {
		return fmt.Sprintf("Folder(%d)", int(f))
	}
	return folderNames[f]
}

func folderOf(g params.Group) Folder {
	switch g {
	case params.GroupPlanet:
		return FolderPlanet
	case params.GroupNoise:
		return FolderNoise
	default:
		return FolderColor
	}
}

// Control identifies one tunable value.
type Control int

const (
	Tessellations Control = iota
	VertexShader
	FragmentShader
	VertTickSpeed
	FragTickSpeed
	ScaleX
	ScaleY
	ScaleZ
	ElevationOctaves
	Terraces
	Height
	SeaLevel
	OctaveAmp0
	OctaveAmp1
	OctaveAmp2
	OctaveAmp3
	OctaveAmp4
	OctaveAmp5
	Octaves
	BaseFrequency
	Red
	Green
	Blue
	controlCount
)

// Spec describes a control's label, range and home folder.
type Spec struct {
	Name   string
	Min    float64
	Max    float64
	Step   float64
	Folder Folder
}

var specs = [controlCount]Spec{
	Tessellations:    {"Tesselations", 0, 8, 1, FolderRoot},
	VertexShader:     {"Vertex Shader", 0, 0, 1, FolderRoot},
	FragmentShader:   {"Fragment Shader", 0, 0, 1, FolderRoot},
	VertTickSpeed:    {"Vert Tick Speed", 0, 5, 1, FolderRoot},
	FragTickSpeed:    {"Frag Tick Speed", 0, 5, 1, FolderRoot},
	ScaleX:           {"x-Scale", 0, 3, 0.1, FolderScale},
	ScaleY:           {"y-Scale", 0, 3, 0.1, FolderScale},
	ScaleZ:           {"z-Scale", 0, 3, 0.1, FolderScale},
	ElevationOctaves: {"Elevation Octaves", 1, params.MaxOctaveAmplitudes, 1, FolderPlanet},
	Terraces:         {"Terraces", 1, 32, 1, FolderPlanet},
	Height:           {"Height", 0, 0.5, 0.01, FolderPlanet},
	SeaLevel:         {"Sea Level", -0.2, 0.2, 0.01, FolderPlanet},
	OctaveAmp0:       {"Octave 1", 0, 1, 0.05, FolderAmplitudes},
	OctaveAmp1:       {"Octave 2", 0, 1, 0.05, FolderAmplitudes},
	OctaveAmp2:       {"Octave 3", 0, 1, 0.05, FolderAmplitudes},
	OctaveAmp3:       {"Octave 4", 0, 1, 0.05, FolderAmplitudes},
	OctaveAmp4:       {"Octave 5", 0, 1, 0.05, FolderAmplitudes},
	OctaveAmp5:       {"Octave 6", 0, 1, 0.05, FolderAmplitudes},
	Octaves:          {"Octaves", 1, 8, 1, FolderNoise},
	BaseFrequency:    {"Base Frequency", 0, 3, 1, FolderNoise},
	Red:              {"red", 0, 255, 1, FolderColor},
	Green:            {"green", 0, 255, 1, FolderColor},
	Blue:             {"blue", 0, 255, 1, FolderColor},
}

func (c Control) String() string {
	if c < 0 || c >= controlCount {
		return fmt.Sprintf("Control(%d)", int(c))
	}
	return specs[c].Name
}

func (c Control) amplitude() (int, bool) {
	if c >= OctaveAmp0 && c <= OctaveAmp5 {
		return int(c - OctaveAmp0), true
	}
	return 0, false
}

// get reads a control from v as float64.
func get(v *params.Values, c Control) float64 {
	if i, ok := c.amplitude(); ok {
		return float64(v.OctaveAmps[i])
	}
	switch c {
	case Tessellations:
		return float64(v.Tessellations)
	case VertexShader:
		return float64(v.VertexShader)
	case FragmentShader:
		return float64(v.FragmentShader)
	case VertTickSpeed:
		return float64(v.VertTickSpeed)
	case FragTickSpeed:
		return float64(v.FragTickSpeed)
	case ScaleX:
		return float64(v.ScaleX)
	case ScaleY:
		return float64(v.ScaleY)
	case ScaleZ:
		return float64(v.ScaleZ)
	case ElevationOctaves:
		return float64(v.ElevationOctaves)
	case Terraces:
		return float64(v.Terraces)
	case Height:
		return float64(v.Height)
	case SeaLevel:
		return float64(v.SeaLevel)
	case Octaves:
		return float64(v.Octaves)
	case BaseFrequency:
		return float64(v.BaseFrequency)
	case Red:
		return float64(v.Red)
	case Green:
		return float64(v.Green)
	case Blue:
		return float64(v.Blue)
	}
	return 0
}

// put writes x into v; integer controls truncate after rounding by the caller.
func put(v *params.Values, c Control, x float64) {
	if i, ok := c.amplitude(); ok {
		v.OctaveAmps[i] = float32(x)
		return
	}
	switch c {
	case Tessellations:
		v.Tessellations = int(x)
	case VertexShader:
		v.VertexShader = int(x)
	case FragmentShader:
		v.FragmentShader = int(x)
	case VertTickSpeed:
		v.VertTickSpeed = int(x)
	case FragTickSpeed:
		v.FragTickSpeed = int(x)
	case ScaleX:
		v.ScaleX = float32(x)
	case ScaleY:
		v.ScaleY = float32(x)
	case ScaleZ:
		v.ScaleZ = float32(x)
	case ElevationOctaves:
		v.ElevationOctaves = int(x)
	case Terraces:
		v.Terraces = int(x)
	case Height:
		v.Height = float32(x)
	case SeaLevel:
		v.SeaLevel = float32(x)
	case Octaves:
		v.Octaves = int(x)
	case BaseFrequency:
		v.BaseFrequency = int(x)
	case Red:
		v.Red = int(x)
	case Green:
		v.Green = int(x)
	case Blue:
		v.Blue = int(x)
	}
}
