package glfwcontext

import (
	"log"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/richinsley/goicoshader/graphics"
)

// Context wraps a GLFW window and implements graphics.Context.
type Context struct {
	window *glfw.Window
	scroll float64
	// Functions to run on key presses and repeats, keyed by key.
	keyCallbacks map[glfw.Key]func(mods glfw.ModifierKey)
}

// New creates a GL 4.1 core window of the given size. Hidden windows are used
// for recording.
func New(width, height int, title string, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
		glfw.WindowHint(glfw.Visible, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func(glfw.ModifierKey)),
	}
	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		c.scroll += yoff
	})
	return c, nil
}

// RegisterKeyCallback runs f whenever key is pressed or auto-repeats.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func(mods glfw.ModifierKey)) {
	c.keyCallbacks[key] = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
	if action == glfw.Press || action == glfw.Repeat {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback(mods)
		}
	}
}

// GetMouseInput returns the cursor in framebuffer pixels (origin top left),
// the primary button state and the scroll since the previous call.
func (c *Context) GetMouseInput() graphics.MouseState {
	var m graphics.MouseState
	if c.window == nil {
		return m
	}

	fbWidth, fbHeight := c.GetFramebufferSize()
	winWidth, winHeight := c.window.GetSize()
	scaleX, scaleY := 1.0, 1.0
	if winWidth > 0 && winHeight > 0 {
		scaleX = float64(fbWidth) / float64(winWidth)
		scaleY = float64(fbHeight) / float64(winHeight)
	}

	cursorX, cursorY := c.window.GetCursorPos()
	m.X = float32(cursorX * scaleX)
	m.Y = float32(cursorY * scaleY)
	m.Down = c.window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press
	m.Scroll = float32(c.scroll)
	c.scroll = 0
	return m
}

func (c *Context) SetTitle(title string) {
	c.window.SetTitle(title)
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts GLFW down. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
