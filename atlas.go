package particlefield

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// PackedAtlas is a FrameProvider for texture-packed atlases whose frames have
// individual sizes. Frames are indexed in natural name order, so "spark_2"
// comes before "spark_10".
type PackedAtlas struct {
	image  *ebiten.Image
	names  []string
	frames []Rect
	index  map[string]int
	scale  float64
}

// LoadPackedAtlas parses TexturePacker JSON for a single page image.
// Supports both the hash format (single "frames" object) and the array
// format ("textures" array; only the first page is used). Rotated regions
// are rejected.
func LoadPackedAtlas(jsonData []byte, img *ebiten.Image) (*PackedAtlas, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: packed atlas has no image", ErrMisconfigured)
	}
	// Probe top-level keys to detect format.
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("particlefield: failed to parse atlas JSON: %w", err)
	}

	var frames map[string]jsonFrame
	switch {
	case probe.Textures != nil:
		var textures []jsonTexturePage
		if err := json.Unmarshal(probe.Textures, &textures); err != nil {
			return nil, fmt.Errorf("particlefield: failed to parse atlas textures array: %w", err)
		}
		if len(textures) > 0 {
			frames = textures[0].Frames
		}
	case probe.Frames != nil:
		if err := json.Unmarshal(probe.Frames, &frames); err != nil {
			return nil, fmt.Errorf("particlefield: failed to parse atlas frames: %w", err)
		}
	default:
		return nil, fmt.Errorf("particlefield: atlas JSON has neither \"frames\" nor \"textures\" key")
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: packed atlas has no frames", ErrMisconfigured)
	}

	a := &PackedAtlas{
		image: img,
		names: make([]string, 0, len(frames)),
		index: make(map[string]int, len(frames)),
		scale: 1,
	}
	for name, f := range frames {
		if f.Rotated {
			return nil, fmt.Errorf("%w: atlas frame %q is rotated", ErrMisconfigured, name)
		}
		if f.Frame.W <= 0 || f.Frame.H <= 0 {
			return nil, fmt.Errorf("%w: atlas frame %q is empty", ErrMisconfigured, name)
		}
		a.names = append(a.names, name)
	}
	sort.Slice(a.names, func(i, j int) bool { return naturalLess(a.names[i], a.names[j]) })
	a.frames = make([]Rect, len(a.names))
	for i, name := range a.names {
		r := frames[name].Frame
		a.frames[i] = Rect{float64(r.X), float64(r.Y), float64(r.W), float64(r.H)}
		a.index[name] = i
	}
	return a, nil
}

// SetScale sets the rendering multiplier. Zero resets it to 1.
func (a *PackedAtlas) SetScale(s float64) {
	if s == 0 {
		s = 1
	}
	a.scale = s
}

func (a *PackedAtlas) Image() (*ebiten.Image, error) { return a.image, nil }
func (a *PackedAtlas) IsReady() bool                 { return true }
func (a *PackedAtlas) Len() int                      { return len(a.frames) }
func (a *PackedAtlas) Scale() float64                { return a.scale }

// Frame returns the packed rectangle for index modulo Len.
func (a *PackedAtlas) Frame(index int) (Rect, error) {
	if index < 0 {
		return Rect{}, fmt.Errorf("%w: frame index %d", ErrInvalidArgument, index)
	}
	return a.frames[index%len(a.frames)], nil
}

// FrameIndex returns the index of the named frame.
func (a *PackedAtlas) FrameIndex(name string) (int, bool) {
	i, ok := a.index[name]
	return i, ok
}

// Names returns frame names in index order. The returned slice MUST NOT be mutated.
func (a *PackedAtlas) Names() []string { return a.names }

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame   jsonRect `json:"frame"`
	Rotated bool     `json:"rotated"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// naturalLess orders strings with embedded decimal runs compared by value.
func naturalLess(a, b string) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			si := i
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			sj := j
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na, nb := trimZeros(a[si:i]), trimZeros(b[sj:j])
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if na != nb {
				return na < nb
			}
			continue
		}
		if ca != cb {
			return ca < cb
		}
		i++
		j++
	}
	return len(a)-i < len(b)-j
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func trimZeros(s string) string {
	for len(s) > 1 && s[0] == '0' {
		s = s[1:]
	}
	return s
}
