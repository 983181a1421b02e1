package particlefield

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
	"time"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// drain polls l until every load has been delivered.
func drain(t *testing.T, l *FileLoader) int {
	t.Helper()
	delivered := 0
	deadline := time.Now().Add(5 * time.Second)
	for l.Pending() > 0 {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for loads")
		}
		delivered += l.Poll()
		time.Sleep(time.Millisecond)
	}
	return delivered
}

func TestFileLoaderDeliversOnPoll(t *testing.T) {
	fsys := fstest.MapFS{"fx/spark.png": {Data: pngBytes(t, 40, 10)}}
	l := NewFileLoader(fsys)

	var got LoadedImage
	var gotErr error
	calls := 0
	l.Load("fx/spark.png", func(img LoadedImage, err error) {
		calls++
		got, gotErr = img, err
	})
	if calls != 0 {
		t.Fatal("completion ran before Poll")
	}
	if l.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", l.Pending())
	}

	if n := drain(t, l); n != 1 {
		t.Errorf("delivered = %d, want 1", n)
	}
	if calls != 1 || gotErr != nil {
		t.Fatalf("calls=%d err=%v", calls, gotErr)
	}
	if got.Width != 40 || got.Height != 10 || got.Image == nil {
		t.Errorf("loaded = %+v", got)
	}
}

func TestFileLoaderCachesDecodedImages(t *testing.T) {
	fsys := fstest.MapFS{"spark.png": {Data: pngBytes(t, 8, 8)}}
	l := NewFileLoader(fsys)
	var first LoadedImage
	l.Load("spark.png", func(img LoadedImage, _ error) { first = img })
	drain(t, l)

	synced := false
	l.Load("spark.png", func(img LoadedImage, err error) {
		synced = true
		if img.Image != first.Image || err != nil {
			t.Errorf("cached load = %+v, %v", img, err)
		}
	})
	if !synced {
		t.Error("cached ref should complete before Load returns")
	}
	if l.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", l.Pending())
	}
}

func TestFileLoaderErrors(t *testing.T) {
	fsys := fstest.MapFS{"bad.png": {Data: []byte("definitely not a png")}}
	l := NewFileLoader(fsys)

	errs := map[string]error{}
	for _, ref := range []string{"missing.png", "bad.png"} {
		l.Load(ref, func(_ LoadedImage, err error) { errs[ref] = err })
	}
	drain(t, l)

	for _, ref := range []string{"missing.png", "bad.png"} {
		if errs[ref] == nil {
			t.Errorf("%s: expected error", ref)
		}
	}
}

func TestSpriteSheetWithFileLoaderViaScheduler(t *testing.T) {
	fsys := fstest.MapFS{"strip.png": {Data: pngBytes(t, 130, 23)}}
	l := NewFileLoader(fsys)
	sheet := NewSpriteSheet("strip.png", l, SpriteSheetOptions{FrameWidth: 21})

	c := NewController(sheet, nil)
	c.Spawn(NewParticle())
	s := NewScheduler(c, NewManualClock(time.Unix(0, 0)))
	s.AddPoller(l)
	s.Start()

	deadline := time.Now().Add(5 * time.Second)
	for !sheet.IsReady() {
		if time.Now().After(deadline) {
			t.Fatalf("sheet never became ready: %v", sheet.Err())
		}
		s.Frame()
		time.Sleep(time.Millisecond)
	}
	if sheet.Len() != 6 {
		t.Errorf("Len = %d, want 6", sheet.Len())
	}
}

func TestStaticLoaderMissing(t *testing.T) {
	var err error
	StaticLoader{}.Load("nope.png", func(_ LoadedImage, e error) { err = e })
	if err == nil {
		t.Error("expected error for missing ref")
	}
}
