package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goicoshader/camera"
	"github.com/richinsley/goicoshader/driver"
	"github.com/richinsley/goicoshader/geometry"
	"github.com/richinsley/goicoshader/glbackend"
	"github.com/richinsley/goicoshader/glfwcontext"
	"github.com/richinsley/goicoshader/options"
	"github.com/richinsley/goicoshader/panel"
	"github.com/richinsley/goicoshader/renderer"
	"github.com/richinsley/goicoshader/shader"
)

const windowTitle = "goicoshader"

func init() {
	runtime.LockOSThread()
}

// bindKeys maps the arrow keys onto the panel cursor and the number keys onto
// the collapsible folders. Shift steps ten at a time.
func bindKeys(ctx *glfwcontext.Context, p *panel.Panel) {
	step := func(dir int) func(glfw.ModifierKey) {
		return func(mods glfw.ModifierKey) {
			n := dir
			if mods&glfw.ModShift != 0 {
				n *= 10
			}
			p.StepCursor(n)
		}
	}
	ctx.RegisterKeyCallback(glfw.KeyRight, step(1))
	ctx.RegisterKeyCallback(glfw.KeyLeft, step(-1))
	ctx.RegisterKeyCallback(glfw.KeyDown, func(glfw.ModifierKey) {
		p.MoveCursor(1)
		p.Refresh()
	})
	ctx.RegisterKeyCallback(glfw.KeyUp, func(glfw.ModifierKey) {
		p.MoveCursor(-1)
		p.Refresh()
	})
	folderKeys := []glfw.Key{glfw.Key1, glfw.Key2, glfw.Key3, glfw.Key4, glfw.Key5}
	for i, key := range folderKeys {
		n := i
		ctx.RegisterKeyCallback(key, func(glfw.ModifierKey) { p.ToggleFolder(n) })
	}
}

func run(opts *options.ShaderOptions) error {
	registry := shader.Default()
	values, err := options.LoadValues(*opts.ConfigFile, registry)
	if err != nil {
		return err
	}

	ctx, err := glfwcontext.New(*opts.Width, *opts.Height, windowTitle, !opts.Record())
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	ctx.MakeCurrent()

	gpu, err := glbackend.New(false)
	if err != nil {
		ctx.Shutdown()
		return err
	}

	p := panel.New(values, registry.Names(shader.Vertex), registry.Names(shader.Fragment))
	cam := camera.New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})

	d, err := driver.New(gpu, registry, p, cam, geometry.NewProvider(gpu))
	if err != nil {
		ctx.Shutdown()
		return fmt.Errorf("failed to initialize scene: %w", err)
	}

	r := renderer.NewRenderer(ctx, gpu, d, cam, windowTitle)
	defer r.Shutdown()
	p.OnRefresh = r.SetStatus

	if opts.Record() {
		err = r.RunRecord(renderer.RecordOptions{
			Duration:   *opts.Duration,
			FPS:        *opts.FPS,
			OutputFile: *opts.OutputFile,
			FFmpegPath: *opts.FFmpegPath,
		})
		if err != nil {
			return fmt.Errorf("offscreen rendering failed: %w", err)
		}
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
		return nil
	}

	bindKeys(ctx, p)
	p.Refresh()
	return r.Run()
}

func main() {
	opts := options.Register(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Println("Procedural icosphere shader demo")
		flag.PrintDefaults()
		return
	}
	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	if err := run(opts); err != nil {
		glfwcontext.TerminateGraphics()
		log.Fatalf("%v", err)
	}
}
