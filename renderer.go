package particlefield

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// DrawBatch is one batched draw instruction: many transformed, tinted
// copies of regions of one atlas. Transforms, Sources and Colors have equal
// length and are aligned with the particle collection at build time.
type DrawBatch struct {
	Image      *ebiten.Image
	Transforms []RSTransform
	Sources    []Rect
	Colors     []Color
	BlendMode  BlendMode
	Clip       Rect
}

// Len returns the number of sprites in the batch.
func (b *DrawBatch) Len() int { return len(b.Transforms) }

// FrameEvent describes one render pass for FrameObservers.
type FrameEvent struct {
	Elapsed   time.Duration
	Particles int
	Drawn     bool
}

// FrameObserver is notified after every render pass.
type FrameObserver interface {
	ObserveFrame(FrameEvent)
}

// RenderStats counts render passes over the renderer's lifetime.
type RenderStats struct {
	Frames    int // passes that built a batch
	Skipped   int // passes skipped (no particles or provider not ready)
	DrawCalls int // batched draw instructions issued
	Quads     int // sprites in the most recent batch
}

// BatchRenderer turns a Controller's state into one batched draw per frame.
type BatchRenderer struct {
	c *Controller

	batch    DrawBatch
	hasBatch bool
	err      error

	verts []ebiten.Vertex
	inds  []uint32

	observers []FrameObserver
	stats     RenderStats
	debug     bool
}

// NewBatchRenderer returns a renderer for c.
func NewBatchRenderer(c *Controller) *BatchRenderer {
	return &BatchRenderer{c: c}
}

// AddObserver registers o to receive a FrameEvent after each render pass.
func (r *BatchRenderer) AddObserver(o FrameObserver) {
	r.observers = append(r.observers, o)
}

// SetDebugMode enables per-frame timing stats on stderr.
func (r *BatchRenderer) SetDebugMode(enabled bool) {
	r.debug = enabled
	globalDebug = enabled
}

// Stats returns the renderer's counters.
func (r *BatchRenderer) Stats() RenderStats { return r.stats }

// Err returns the error that stopped the last render pass, if any.
func (r *BatchRenderer) Err() error { return r.err }

// Render runs the controller's tick for size and then builds the batch.
// It returns ok=false without error when there is nothing to draw or the
// frame provider is not ready yet. The returned batch is reused by the
// next call.
func (r *BatchRenderer) Render(size Size) (*DrawBatch, bool, error) {
	c := r.c
	c.ExecuteOnTick(size)

	batch, ok, err := r.build(size)
	r.notify(ok)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		r.stats.Skipped++
		return nil, false, nil
	}
	r.stats.Frames++
	r.stats.Quads = batch.Len()
	return batch, true, nil
}

func (r *BatchRenderer) build(size Size) (*DrawBatch, bool, error) {
	c := r.c
	fp := c.Frames
	if len(c.Particles) == 0 || fp == nil {
		return nil, false, nil
	}
	if !fp.IsReady() {
		if er, ok := fp.(errReporter); ok && er.Err() != nil {
			return nil, false, er.Err()
		}
		return nil, false, nil
	}
	img, err := fp.Image()
	if errors.Is(err, ErrNotReady) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	b := &r.batch
	b.Image = img
	b.BlendMode = c.BlendMode
	b.Clip = Rect{0, 0, size.Width, size.Height}
	b.Transforms = b.Transforms[:0]
	b.Sources = b.Sources[:0]
	b.Colors = b.Colors[:0]

	xOffset := alignOffset(size.Width, c.Origin.X)
	yOffset := alignOffset(size.Height, c.Origin.Y)
	sheetScale := fp.Scale()

	for i, p := range c.Particles {
		src, err := fp.Frame(p.Frame)
		if err != nil {
			return nil, false, fmt.Errorf("particlefield: particle %d frame %d: %w", i, p.Frame, err)
		}
		b.Sources = append(b.Sources, src)
		b.Transforms = append(b.Transforms, RSTransform{
			TranslateX: p.X + xOffset,
			TranslateY: p.Y + yOffset,
			Rotation:   p.Rotation,
			Scale:      p.Scale * sheetScale,
			AnchorX:    alignOffset(src.Width, c.Anchor.X),
			AnchorY:    alignOffset(src.Height, c.Anchor.Y),
		})
		b.Colors = append(b.Colors, p.Color.WithAlpha(p.Color.A*c.Opacity))
	}
	return b, true, nil
}

func (r *BatchRenderer) notify(drawn bool) {
	if len(r.observers) == 0 {
		return
	}
	ev := FrameEvent{Elapsed: r.c.Elapsed(), Particles: len(r.c.Particles), Drawn: drawn}
	for _, o := range r.observers {
		o.ObserveFrame(ev)
	}
}

// Draw renders onto target, whose bounds must start at the origin. When a
// tick is due the batch is rebuilt; otherwise the previous batch is drawn
// again so a stopped simulation stays on screen. Errors are kept in Err
// and the frame is left empty.
func (r *BatchRenderer) Draw(target *ebiten.Image) {
	var stats debugStats
	var t0 time.Time

	if r.c.RenderDue() {
		bounds := target.Bounds()
		size := Size{float64(bounds.Dx()), float64(bounds.Dy())}

		if r.debug {
			t0 = time.Now()
		}
		_, ok, err := r.Render(size)
		if r.debug {
			stats.renderTime = time.Since(t0)
		}
		r.hasBatch = ok
		if err != nil && r.err == nil {
			log.Printf("particlefield: render: %v", err)
		}
		r.err = err
	}
	if !r.hasBatch || r.c.Disposed() {
		return
	}

	if r.debug {
		t0 = time.Now()
	}
	r.submit(target)
	if r.debug {
		stats.submitTime = time.Since(t0)
		stats.quadCount = r.batch.Len()
		stats.drawCallCount = r.stats.DrawCalls
		r.debugLog(stats)
	}
}

// submit issues the current batch as a single DrawTriangles32 call.
func (r *BatchRenderer) submit(target *ebiten.Image) {
	b := &r.batch
	if b.Len() == 0 || b.Image == nil {
		return
	}

	r.verts = r.verts[:0]
	r.inds = r.inds[:0]

	for i := range b.Transforms {
		m := b.Transforms[i].Affine()
		src := b.Sources[i]
		cr, cg, cb, ca := b.Colors[i].premultiplied()

		// TL, TR, BL, BR in frame-local pixels.
		lx := [4]float64{0, src.Width, 0, src.Width}
		ly := [4]float64{0, 0, src.Height, src.Height}
		sx := [4]float32{float32(src.X), float32(src.X + src.Width), float32(src.X), float32(src.X + src.Width)}
		sy := [4]float32{float32(src.Y), float32(src.Y), float32(src.Y + src.Height), float32(src.Y + src.Height)}

		base := uint32(len(r.verts))
		for j := 0; j < 4; j++ {
			dx, dy := applyAffine(m, lx[j], ly[j])
			r.verts = append(r.verts, ebiten.Vertex{
				DstX:   float32(dx),
				DstY:   float32(dy),
				SrcX:   sx[j],
				SrcY:   sy[j],
				ColorR: cr,
				ColorG: cg,
				ColorB: cb,
				ColorA: ca,
			})
		}

		// Two triangles: TL-TR-BL, TR-BR-BL
		r.inds = append(r.inds,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
	}

	dst := target
	if clip := b.Clip.image(); !clip.Empty() && clip != target.Bounds() {
		dst = target.SubImage(clip).(*ebiten.Image)
	}

	var op ebiten.DrawTrianglesOptions
	op.Blend = b.BlendMode.EbitenBlend()
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	dst.DrawTriangles32(r.verts, r.inds, b.Image, &op)
	r.stats.DrawCalls++
}
