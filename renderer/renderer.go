// Package renderer owns the window, the GPU backend and the frame driver, and
// runs them either interactively or as an offscreen recording.
package renderer

import (
	"fmt"
	"log"
	"math"

	"github.com/richinsley/goicoshader/camera"
	"github.com/richinsley/goicoshader/driver"
	"github.com/richinsley/goicoshader/graphics"
)

const (
	orbitSensitivity = 0.005
	zoomStep         = 0.9
	// fpsInterval is how often, in seconds, the frame rate in the title updates.
	fpsInterval = 1.0
)

// Renderer drives one FrameDriver from a graphics.Context.
type Renderer struct {
	context graphics.Context
	gpu     graphics.Backend
	driver  *driver.FrameDriver
	camera  *camera.Camera

	width     int
	height    int
	lastMouse graphics.MouseState

	title     string
	status    string
	fps       float64
	fpsFrames int
	fpsStart  float64
}

func NewRenderer(ctx graphics.Context, gpu graphics.Backend, d *driver.FrameDriver, cam *camera.Camera, title string) *Renderer {
	r := &Renderer{
		context:  ctx,
		gpu:      gpu,
		driver:   d,
		camera:   cam,
		title:    title,
		fpsStart: ctx.Time(),
	}
	r.resize()
	return r
}

// SetStatus replaces the status text shown after the title.
func (r *Renderer) SetStatus(status string) {
	r.status = status
	r.updateTitle()
}

func (r *Renderer) updateTitle() {
	title := r.title
	if r.status != "" {
		title += " | " + r.status
	}
	if r.fps > 0 {
		title += fmt.Sprintf(" | %.0f fps", r.fps)
	}
	r.context.SetTitle(title)
}

// countFrame updates the frame rate once per fpsInterval.
func (r *Renderer) countFrame() {
	r.fpsFrames++
	now := r.context.Time()
	if elapsed := now - r.fpsStart; elapsed >= fpsInterval {
		r.fps = float64(r.fpsFrames) / elapsed
		r.fpsFrames = 0
		r.fpsStart = now
		r.updateTitle()
	}
}

// resize tracks the framebuffer and keeps the camera aspect ratio in step.
func (r *Renderer) resize() {
	w, h := r.context.GetFramebufferSize()
	if w == r.width && h == r.height {
		return
	}
	r.width, r.height = w, h
	if h > 0 {
		r.camera.SetAspectRatio(float32(w) / float32(h))
		r.camera.UpdateProjectionMatrix()
	}
}

// handleInput orbits the camera while the primary button is held and zooms
// on scroll.
func (r *Renderer) handleInput() {
	m := r.context.GetMouseInput()
	if m.Down && r.lastMouse.Down {
		dx := m.X - r.lastMouse.X
		dy := m.Y - r.lastMouse.Y
		r.camera.Orbit(-dx*orbitSensitivity, dy*orbitSensitivity)
	}
	if m.Scroll != 0 {
		r.camera.Zoom(float32(math.Pow(zoomStep, float64(m.Scroll))))
	}
	r.lastMouse = m
}

// RenderFrame runs one driver frame at the current framebuffer size.
func (r *Renderer) RenderFrame() error {
	r.resize()
	return r.driver.Frame(r.width, r.height)
}

// Run is the interactive loop. It returns when the window is closed or a
// frame fails.
func (r *Renderer) Run() error {
	log.Println("Starting interactive render loop...")
	for !r.context.ShouldClose() {
		r.handleInput()
		if err := r.RenderFrame(); err != nil {
			return err
		}
		r.context.EndFrame()
		r.countFrame()
	}
	return nil
}

// Shutdown releases the driver's GPU objects and destroys the window.
func (r *Renderer) Shutdown() {
	r.driver.Shutdown()
	r.context.Shutdown()
}
