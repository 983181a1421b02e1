package particlefield

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// ErrNotReady is returned when the atlas or a frame is requested before
	// the provider has finished loading. Renderers treat it as "skip frame".
	ErrNotReady = errors.New("particlefield: frame provider not ready")
	// ErrInvalidArgument is returned for a negative frame index.
	ErrInvalidArgument = errors.New("particlefield: invalid argument")
	// ErrMisconfigured is returned when derived frame geometry is degenerate,
	// e.g. frame dimensions larger than the atlas.
	ErrMisconfigured = errors.New("particlefield: misconfigured frame provider")
)

// FrameProvider maps frame indices to source rectangles within one shared
// atlas image.
type FrameProvider interface {
	// Image returns the atlas, or ErrNotReady before loading completes.
	Image() (*ebiten.Image, error)
	// IsReady reports whether the atlas and its geometry are available.
	IsReady() bool
	// Len is the frame count. Zero before ready.
	Len() int
	// Scale is a rendering multiplier applied on top of each particle's scale.
	Scale() float64
	// Frame returns the source rectangle for index, wrapping modulo Len.
	// It fails with ErrInvalidArgument for index < 0 and ErrNotReady
	// before the provider is ready.
	Frame(index int) (Rect, error)
}

// errReporter is implemented by providers that can fail permanently while
// loading. The renderer surfaces the error instead of skipping forever.
type errReporter interface {
	Err() error
}
