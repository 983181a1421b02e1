package particlefield

import (
	"errors"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Test JSON fixtures ---

const sparkHashJSON = `{
  "frames": {
    "spark_10.png": {
      "frame": {"x": 96, "y": 0, "w": 8, "h": 8},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 8, "h": 8},
      "sourceSize": {"w": 8, "h": 8}
    },
    "spark_2.png": {
      "frame": {"x": 32, "y": 0, "w": 16, "h": 24},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 16, "h": 24},
      "sourceSize": {"w": 16, "h": 24}
    },
    "spark_1.png": {
      "frame": {"x": 0, "y": 0, "w": 32, "h": 32},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 32, "h": 32},
      "sourceSize": {"w": 32, "h": 32}
    }
  },
  "meta": {
    "image": "sparks.png",
    "size": {"w": 128, "h": 32}
  }
}`

const sparkArrayJSON = `{
  "textures": [
    {
      "image": "sparks.png",
      "frames": {
        "a.png": {"frame": {"x": 0, "y": 0, "w": 4, "h": 4}, "rotated": false},
        "b.png": {"frame": {"x": 4, "y": 0, "w": 6, "h": 2}, "rotated": false}
      }
    }
  ]
}`

func TestLoadPackedAtlasHashFormat(t *testing.T) {
	a, err := LoadPackedAtlas([]byte(sparkHashJSON), ebiten.NewImage(128, 32))
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 3 {
		t.Fatalf("Len = %d, want 3", a.Len())
	}
	if !a.IsReady() {
		t.Error("packed atlas should be ready")
	}

	want := []string{"spark_1.png", "spark_2.png", "spark_10.png"}
	for i, name := range want {
		if a.Names()[i] != name {
			t.Errorf("Names()[%d] = %q, want %q", i, a.Names()[i], name)
		}
	}

	r, err := a.Frame(1)
	if err != nil {
		t.Fatal(err)
	}
	if r != (Rect{32, 0, 16, 24}) {
		t.Errorf("Frame(1) = %v, want {32 0 16 24}", r)
	}
}

func TestLoadPackedAtlasArrayFormat(t *testing.T) {
	a, err := LoadPackedAtlas([]byte(sparkArrayJSON), ebiten.NewImage(16, 16))
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 2 {
		t.Fatalf("Len = %d, want 2", a.Len())
	}
	i, ok := a.FrameIndex("b.png")
	if !ok || i != 1 {
		t.Errorf("FrameIndex(b.png) = %d, %v; want 1, true", i, ok)
	}
	if _, ok := a.FrameIndex("missing.png"); ok {
		t.Error("FrameIndex should miss unknown names")
	}
}

func TestPackedAtlasWraparound(t *testing.T) {
	a, err := LoadPackedAtlas([]byte(sparkHashJSON), ebiten.NewImage(128, 32))
	if err != nil {
		t.Fatal(err)
	}
	for k := 0; k < a.Len(); k++ {
		r0, _ := a.Frame(k)
		r1, _ := a.Frame(k + a.Len())
		if r0 != r1 {
			t.Errorf("Frame(%d) = %v, Frame(%d) = %v", k, r0, k+a.Len(), r1)
		}
	}
	if _, err := a.Frame(-1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Frame(-1) err = %v, want ErrInvalidArgument", err)
	}
}

func TestPackedAtlasScale(t *testing.T) {
	a, err := LoadPackedAtlas([]byte(sparkArrayJSON), ebiten.NewImage(16, 16))
	if err != nil {
		t.Fatal(err)
	}
	if a.Scale() != 1 {
		t.Errorf("default Scale = %v, want 1", a.Scale())
	}
	a.SetScale(2)
	if a.Scale() != 2 {
		t.Errorf("Scale = %v, want 2", a.Scale())
	}
	a.SetScale(0)
	if a.Scale() != 1 {
		t.Errorf("Scale after SetScale(0) = %v, want 1", a.Scale())
	}
}

func TestLoadPackedAtlasErrors(t *testing.T) {
	img := ebiten.NewImage(4, 4)
	tests := []struct {
		name    string
		json    string
		wantErr string
		is      error
	}{
		{"invalid json", `{not json`, "parse atlas JSON", nil},
		{"no keys", `{"meta": {}}`, "neither", nil},
		{"empty frames", `{"frames": {}}`, "no frames", ErrMisconfigured},
		{"rotated", `{"frames": {"r": {"frame": {"x":0,"y":0,"w":2,"h":2}, "rotated": true}}}`, "rotated", ErrMisconfigured},
		{"zero size", `{"frames": {"z": {"frame": {"x":0,"y":0,"w":0,"h":2}}}}`, "empty", ErrMisconfigured},
	}
	for _, tt := range tests {
		_, err := LoadPackedAtlas([]byte(tt.json), img)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: err = %v, want substring %q", tt.name, err, tt.wantErr)
		}
		if tt.is != nil && !errors.Is(err, tt.is) {
			t.Errorf("%s: err = %v, want errors.Is %v", tt.name, err, tt.is)
		}
	}

	if _, err := LoadPackedAtlas([]byte(sparkArrayJSON), nil); !errors.Is(err, ErrMisconfigured) {
		t.Errorf("nil image err = %v, want ErrMisconfigured", err)
	}
}

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"a", "b", true},
		{"b", "a", false},
		{"fx_2", "fx_10", true},
		{"fx_10", "fx_2", false},
		{"fx_02", "fx_3", true},
		{"fx", "fx_1", true},
		{"same", "same", false},
	}
	for _, tt := range tests {
		if got := naturalLess(tt.a, tt.b); got != tt.want {
			t.Errorf("naturalLess(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
