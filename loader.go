package particlefield

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// LoadedImage is a decoded atlas plus its intrinsic pixel size.
type LoadedImage struct {
	Image         *ebiten.Image
	Width, Height int
}

// ImageLoader resolves an image reference and calls done exactly once,
// either before Load returns (cached) or later on the host's thread.
type ImageLoader interface {
	Load(ref string, done func(LoadedImage, error))
}

// Poller is polled once per frame by the Scheduler before it ticks, so that
// asynchronous completions are delivered on the render thread.
type Poller interface {
	// Poll delivers pending completions and returns how many were delivered.
	Poll() int
}

// StaticLoader serves images that are already decoded. Completion is
// synchronous.
type StaticLoader map[string]*ebiten.Image

// Load implements ImageLoader.
func (l StaticLoader) Load(ref string, done func(LoadedImage, error)) {
	img, ok := l[ref]
	if !ok || img == nil {
		done(LoadedImage{}, fmt.Errorf("particlefield: image %q not found", ref))
		return
	}
	b := img.Bounds()
	done(LoadedImage{Image: img, Width: b.Dx(), Height: b.Dy()}, nil)
}

type pendingLoad struct {
	ref  string
	img  image.Image
	err  error
	done func(LoadedImage, error)
}

// FileLoader decodes images from a file system in the background. PNG, JPEG,
// GIF, BMP and WebP are supported. Decoded results wait in a queue until
// Poll hands them to their callbacks on the calling goroutine, where the
// ebiten image is created.
type FileLoader struct {
	fsys fs.FS

	mu       sync.Mutex
	ready    []pendingLoad
	inflight int
	cache    map[string]*ebiten.Image
}

// NewFileLoader returns a loader reading from fsys.
func NewFileLoader(fsys fs.FS) *FileLoader {
	return &FileLoader{fsys: fsys, cache: make(map[string]*ebiten.Image)}
}

// Load implements ImageLoader. Previously decoded refs complete synchronously.
func (l *FileLoader) Load(ref string, done func(LoadedImage, error)) {
	l.mu.Lock()
	if img, ok := l.cache[ref]; ok {
		l.mu.Unlock()
		b := img.Bounds()
		done(LoadedImage{Image: img, Width: b.Dx(), Height: b.Dy()}, nil)
		return
	}
	l.inflight++
	l.mu.Unlock()

	go func() {
		img, err := l.decode(ref)
		l.mu.Lock()
		l.ready = append(l.ready, pendingLoad{ref: ref, img: img, err: err, done: done})
		l.mu.Unlock()
	}()
}

func (l *FileLoader) decode(ref string) (image.Image, error) {
	f, err := l.fsys.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("particlefield: open %s: %w", ref, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("particlefield: decode %s: %w", ref, err)
	}
	return img, nil
}

// Pending reports how many loads have not yet been delivered.
func (l *FileLoader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inflight
}

// Poll implements Poller.
func (l *FileLoader) Poll() int {
	l.mu.Lock()
	batch := l.ready
	l.ready = nil
	l.inflight -= len(batch)
	l.mu.Unlock()

	for _, p := range batch {
		if p.err != nil {
			p.done(LoadedImage{}, p.err)
			continue
		}
		l.mu.Lock()
		eimg, ok := l.cache[p.ref]
		if !ok {
			eimg = ebiten.NewImageFromImage(p.img)
			l.cache[p.ref] = eimg
		}
		l.mu.Unlock()
		b := p.img.Bounds()
		p.done(LoadedImage{Image: eimg, Width: b.Dx(), Height: b.Dy()}, nil)
	}
	return len(batch)
}
