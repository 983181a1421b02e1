package particlefield

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteSheetOptions is the partial frame specification of a SpriteSheet.
// Zero values are derived from the atlas's intrinsic size on load.
type SpriteSheetOptions struct {
	FrameWidth  int
	FrameHeight int
	Length      int
	Scale       float64 // zero means 1
}

// SpriteSheet is a FrameProvider over a grid of equally sized frames read
// left to right, top to bottom. It supports single images, horizontal and
// vertical strips and fixed-size grids.
//
// A SpriteSheet stays not-ready until its loader delivers the decoded atlas.
// All geometry is derived once at that point and never changes afterward.
type SpriteSheet struct {
	ref   string
	opts  SpriteSheetOptions
	image *ebiten.Image

	frameWidth  int
	frameHeight int
	columns     int
	length      int

	ready    bool
	complete bool
	err      error
}

// NewSpriteSheet registers interest in ref with loader. The loader may
// complete synchronously (cached) or later from its own poll loop.
func NewSpriteSheet(ref string, loader ImageLoader, opts SpriteSheetOptions) *SpriteSheet {
	s := &SpriteSheet{ref: ref, opts: opts}
	loader.Load(ref, s.onLoad)
	return s
}

// NewSpriteSheetFromImage builds a ready sheet from an already decoded atlas.
func NewSpriteSheetFromImage(img *ebiten.Image, opts SpriteSheetOptions) (*SpriteSheet, error) {
	s := &SpriteSheet{opts: opts}
	b := img.Bounds()
	s.onLoad(LoadedImage{Image: img, Width: b.Dx(), Height: b.Dy()}, nil)
	if s.err != nil {
		return nil, s.err
	}
	return s, nil
}

// onLoad is the loader's completion callback. Only the first call counts.
func (s *SpriteSheet) onLoad(li LoadedImage, err error) {
	if s.complete {
		if globalDebug {
			log.Printf("particlefield: sprite sheet %q: duplicate load completion ignored", s.ref)
		}
		return
	}
	s.complete = true
	if err != nil {
		s.err = fmt.Errorf("particlefield: load sprite sheet %q: %w", s.ref, err)
		return
	}
	if err := s.derive(li); err != nil {
		s.err = err
		return
	}
	s.image = li.Image
	s.ready = true
}

// derive computes frame geometry from the intrinsic atlas size.
func (s *SpriteSheet) derive(li LoadedImage) error {
	if li.Image == nil || li.Width <= 0 || li.Height <= 0 {
		return fmt.Errorf("%w: sprite sheet %q has empty atlas (%dx%d)", ErrMisconfigured, s.ref, li.Width, li.Height)
	}
	fw := s.opts.FrameWidth
	if fw == 0 {
		fw = li.Width
	}
	fh := s.opts.FrameHeight
	if fh == 0 {
		fh = li.Height
	}
	if fw < 0 || fh < 0 || s.opts.Length < 0 {
		return fmt.Errorf("%w: sprite sheet %q has negative frame spec %dx%d len %d", ErrMisconfigured, s.ref, fw, fh, s.opts.Length)
	}
	columns := li.Width / fw
	length := s.opts.Length
	if length == 0 {
		length = columns * (li.Height / fh)
	}
	if columns == 0 || length == 0 {
		return fmt.Errorf("%w: sprite sheet %q: frame %dx%d does not fit atlas %dx%d",
			ErrMisconfigured, s.ref, fw, fh, li.Width, li.Height)
	}

	s.frameWidth = fw
	s.frameHeight = fh
	s.columns = columns
	s.length = length
	return nil
}

// Image returns the atlas image.
func (s *SpriteSheet) Image() (*ebiten.Image, error) {
	if !s.ready {
		return nil, ErrNotReady
	}
	return s.image, nil
}

// IsReady reports whether the atlas has loaded and geometry is derived.
func (s *SpriteSheet) IsReady() bool { return s.ready }

// Len returns the number of frames.
func (s *SpriteSheet) Len() int { return s.length }

// Scale returns the rendering multiplier, 1 when unspecified.
func (s *SpriteSheet) Scale() float64 {
	if s.opts.Scale == 0 {
		return 1
	}
	return s.opts.Scale
}

func (s *SpriteSheet) FrameWidth() int  { return s.frameWidth }
func (s *SpriteSheet) FrameHeight() int { return s.frameHeight }
func (s *SpriteSheet) Columns() int     { return s.columns }

// Err returns the load or derivation failure, if any. A sheet with an
// error never becomes ready.
func (s *SpriteSheet) Err() error { return s.err }

// Frame returns the grid cell for index modulo Len.
func (s *SpriteSheet) Frame(index int) (Rect, error) {
	if index < 0 {
		return Rect{}, fmt.Errorf("%w: frame index %d", ErrInvalidArgument, index)
	}
	if !s.ready {
		return Rect{}, ErrNotReady
	}
	idx := index % s.length
	col := idx % s.columns
	row := idx / s.columns
	return Rect{
		X:      float64(col * s.frameWidth),
		Y:      float64(row * s.frameHeight),
		Width:  float64(s.frameWidth),
		Height: float64(s.frameHeight),
	}, nil
}
