package renderer

import (
	"fmt"
	"io"
	"log"
	"runtime"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// numBuffers bounds the frames in flight between the render thread and the
// encoder.
const numBuffers = 4

// Frame is one rendered frame, bottom row first, ready for encoding.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// RecordOptions describes one recording.
type RecordOptions struct {
	Duration   float64
	FPS        int
	OutputFile string
	FFmpegPath string
}

func (o RecordOptions) totalFrames() int {
	return int(o.Duration * float64(o.FPS))
}

func getArgs(width, height, fps int) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": fps,
	}

	// GL rows come bottom first.
	outputArgs = ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
	}
	switch runtime.GOOS {
	case "darwin":
		log.Println("Using macOS (VideoToolbox) hardware acceleration.")
		outputArgs["c:v"] = "h264_videotoolbox"
		outputArgs["b:v"] = "25M"
	default:
		log.Println("Using software encoding pipeline (no hardware acceleration).")
		outputArgs["c:v"] = "libx264"
		outputArgs["crf"] = 18
	}
	return
}

// runEncoder is the consumer. It starts ffmpeg on a pipe and copies frames
// into it until frameChan is closed.
func runEncoder(opts RecordOptions, width, height int, frameChan <-chan *Frame, doneChan chan<- error) {
	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := getArgs(width, height, opts.FPS)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if opts.FFmpegPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(opts.FFmpegPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()

	writeErr := writeFrames(pipeWriter, frameChan)
	pipeWriter.Close()
	if err := <-errc; err != nil {
		doneChan <- fmt.Errorf("ffmpeg failed: %w", err)
		return
	}
	doneChan <- writeErr
}

// writeFrames copies every frame to w. After a write error the remaining
// frames are drained so the producer never blocks.
func writeFrames(w io.Writer, frameChan <-chan *Frame) error {
	var err error
	for frame := range frameChan {
		if err != nil {
			continue
		}
		if _, werr := w.Write(frame.Pixels); werr != nil {
			err = fmt.Errorf("failed to write frame %d: %w", frame.PTS, werr)
			log.Printf("Error writing frame %d to encoder: %v", frame.PTS, werr)
		}
	}
	return err
}

// produceFrames renders n frames at the framebuffer size and sends each one
// to frameChan. It closes frameChan when done.
func (r *Renderer) produceFrames(n int, frameChan chan<- *Frame) error {
	defer close(frameChan)
	for i := 0; i < n; i++ {
		if err := r.RenderFrame(); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		pixels := r.gpu.ReadPixels(r.width, r.height)
		frameChan <- &Frame{Pixels: pixels, PTS: int64(i)}
		r.context.EndFrame()
	}
	return nil
}

// RunRecord renders Duration*FPS frames and encodes them to OutputFile. The
// shader clocks advance once per frame, so the video is independent of how
// fast frames are rendered.
func (r *Renderer) RunRecord(opts RecordOptions) error {
	log.Println("Starting in record mode...")
	r.resize()
	frameChan := make(chan *Frame, numBuffers)
	encoderDoneChan := make(chan error, 1)

	go runEncoder(opts, r.width, r.height, frameChan, encoderDoneChan)

	renderErr := r.produceFrames(opts.totalFrames(), frameChan)
	encodeErr := <-encoderDoneChan
	if renderErr != nil {
		return renderErr
	}
	return encodeErr
}
