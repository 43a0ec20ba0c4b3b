// Package options holds the command-line options and loads the optional
// TOML file of initial control values.
package options

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/richinsley/goicoshader/params"
	"github.com/richinsley/goicoshader/shader"
)

const (
	ModeInteractive = "interactive"
	ModeRecord      = "record"
)

type ShaderOptions struct {
	Help       *bool
	Mode       *string
	Duration   *float64
	FPS        *int
	Width      *int
	Height     *int
	OutputFile *string
	FFmpegPath *string
	ConfigFile *string // TOML file overriding the initial control values
}

// Register defines every flag on fs and returns the options they fill.
func Register(fs *flag.FlagSet) *ShaderOptions {
	return &ShaderOptions{
		Help:       fs.Bool("help", false, "Show help message"),
		Mode:       fs.String("mode", ModeInteractive, "Run mode: interactive or record"),
		Duration:   fs.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:        fs.Int("fps", 60, "Frames per second for recording"),
		Width:      fs.Int("width", 1280, "Width of the window or output"),
		Height:     fs.Int("height", 720, "Height of the window or output"),
		OutputFile: fs.String("output", "output.mp4", "Output file name for recording"),
		FFmpegPath: fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		ConfigFile: fs.String("config", "", "TOML file with initial control values"),
	}
}

func (o *ShaderOptions) Record() bool {
	return *o.Mode == ModeRecord
}

// Validate checks the flag values that cannot be fixed up later.
func (o *ShaderOptions) Validate() error {
	switch *o.Mode {
	case ModeInteractive, ModeRecord:
	default:
		return fmt.Errorf("unknown mode %q", *o.Mode)
	}
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", *o.Width, *o.Height)
	}
	if o.Record() {
		if *o.FPS <= 0 {
			return fmt.Errorf("invalid fps %d", *o.FPS)
		}
		if *o.Duration <= 0 {
			return fmt.Errorf("invalid duration %v", *o.Duration)
		}
	}
	return nil
}

// LoadValues returns the default control values overlaid with the TOML file
// at path. An empty path yields the defaults.
func LoadValues(path string, reg *shader.Registry) (params.Values, error) {
	v := params.Defaults()
	if path == "" {
		return v, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return v, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return v, fmt.Errorf("config %s: %s", path, strict.String())
		}
		return v, fmt.Errorf("config %s: %w", path, err)
	}

	if _, err := reg.Describe(shader.Vertex, v.VertexShader); err != nil {
		return v, fmt.Errorf("config %s: vertex_shader: %w", path, err)
	}
	if _, err := reg.Describe(shader.Fragment, v.FragmentShader); err != nil {
		return v, fmt.Errorf("config %s: fragment_shader: %w", path, err)
	}
	return v, nil
}
