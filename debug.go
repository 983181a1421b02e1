package particlefield

import (
	"fmt"
	"os"
	"time"
)

// globalDebug mirrors the most recently set renderer debug flag so that
// frame providers (which lack a renderer pointer) can check it cheaply.
var globalDebug bool

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when the renderer's debug mode is on.
type debugStats struct {
	renderTime    time.Duration // tick callback + batch build
	submitTime    time.Duration
	quadCount     int
	drawCallCount int
}

// debugLog prints timing and draw-call stats to stderr.
func (r *BatchRenderer) debugLog(stats debugStats) {
	if !r.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[particlefield] render: %v | submit: %v | total: %v\n",
		stats.renderTime, stats.submitTime, stats.renderTime+stats.submitTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[particlefield] quads: %d | draw calls: %d | skipped: %d\n",
		stats.quadCount, stats.drawCallCount, r.stats.Skipped)
}
