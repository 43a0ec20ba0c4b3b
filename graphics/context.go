package graphics

// MouseState is the cursor position in framebuffer pixels, whether the
// primary button is held, and the scroll accumulated since the last frame.
type MouseState struct {
	X, Y   float32
	Down   bool
	Scroll float32
}

// Context defines the interface for an OpenGL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
	// GetMouseInput returns the current mouse state and resets the scroll accumulator.
	GetMouseInput() MouseState
	SetTitle(title string)
}
