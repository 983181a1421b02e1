package particlefield

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/pierrec/lz4/v4"
	"github.com/quasilyte/gdata/v2"
)

// Snapshot is a frozen copy of a controller's particles and visual
// configuration.
type Snapshot struct {
	Elapsed   time.Duration `json:"elapsed"`
	BlendMode BlendMode     `json:"blend"`
	Origin    Vec2          `json:"origin"`
	Anchor    Vec2          `json:"anchor"`
	Opacity   float64       `json:"opacity"`
	Particles []Particle    `json:"particles"`
}

// TakeSnapshot copies c's current state. Later changes to c do not affect
// the snapshot.
func TakeSnapshot(c *Controller) *Snapshot {
	s := &Snapshot{
		Elapsed:   c.Elapsed(),
		BlendMode: c.BlendMode,
		Origin:    c.Origin,
		Anchor:    c.Anchor,
		Opacity:   c.Opacity,
		Particles: make([]Particle, len(c.Particles)),
	}
	for i, p := range c.Particles {
		s.Particles[i] = *p
	}
	return s
}

// Restore replaces c's particles and visual configuration with copies from
// the snapshot. The controller's elapsed time and callbacks are untouched.
func (s *Snapshot) Restore(c *Controller) {
	c.BlendMode = s.BlendMode
	c.Origin = s.Origin
	c.Anchor = s.Anchor
	c.Opacity = s.Opacity
	c.Clear()
	for i := range s.Particles {
		p := s.Particles[i]
		c.Particles = append(c.Particles, &p)
	}
}

// EncodeSnapshot serializes s as lz4-compressed JSON.
func EncodeSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if err := json.NewEncoder(zw).Encode(s); err != nil {
		return nil, fmt.Errorf("particlefield: encode snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("particlefield: compress snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot is the inverse of EncodeSnapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	raw, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("particlefield: decompress snapshot: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("particlefield: decode snapshot: %w", err)
	}
	return &s, nil
}

// ObjectStore is the subset of *gdata.Manager used by SnapshotStore.
type ObjectStore interface {
	SaveObjectProp(object, prop string, data []byte) error
	LoadObjectProp(object, prop string) ([]byte, error)
	ObjectPropExists(object, prop string) bool
}

const snapshotObject = "snapshots"

// SnapshotStore persists named snapshots. A store without a backend (nil
// receiver or nil ObjectStore) silently saves nothing and loads nothing.
type SnapshotStore struct {
	store ObjectStore
}

// NewSnapshotStore wraps an existing object store.
func NewSnapshotStore(store ObjectStore) *SnapshotStore {
	return &SnapshotStore{store: store}
}

// OpenSnapshotStore opens the per-user data directory for appName.
func OpenSnapshotStore(appName string) (*SnapshotStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("particlefield: open snapshot store: %w", err)
	}
	return &SnapshotStore{store: m}, nil
}

func (s *SnapshotStore) disabled() bool {
	return s == nil || s.store == nil
}

// Save snapshots c under name.
func (s *SnapshotStore) Save(name string, c *Controller) error {
	if s.disabled() {
		return nil
	}
	data, err := EncodeSnapshot(TakeSnapshot(c))
	if err != nil {
		return err
	}
	if err := s.store.SaveObjectProp(snapshotObject, name, data); err != nil {
		return fmt.Errorf("particlefield: save snapshot %q: %w", name, err)
	}
	if globalDebug {
		log.Printf("particlefield: saved snapshot %q (%d particles, %d bytes)", name, len(c.Particles), len(data))
	}
	return nil
}

// Load restores the snapshot saved under name into c. It reports false
// when no such snapshot exists.
func (s *SnapshotStore) Load(name string, c *Controller) (bool, error) {
	if s.disabled() || !s.store.ObjectPropExists(snapshotObject, name) {
		return false, nil
	}
	data, err := s.store.LoadObjectProp(snapshotObject, name)
	if err != nil {
		return false, fmt.Errorf("particlefield: load snapshot %q: %w", name, err)
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return false, err
	}
	snap.Restore(c)
	return true, nil
}
