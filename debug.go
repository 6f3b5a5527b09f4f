package pinchview

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugOut is where debug logging goes. Tests swap it for a buffer.
var debugOut io.Writer = os.Stderr

// debugf prints a prefixed line to stderr. Callers gate it on their debug flag.
func debugf(format string, args ...any) {
	_, _ = fmt.Fprintf(debugOut, "[pinchview] "+format+"\n", args...)
}

// debugStats holds per-tick timing. Only populated when the viewer is in
// debug mode.
type debugStats struct {
	inputTime  time.Duration
	frameTime  time.Duration
	frames     int
	containers int
}

// debugLog prints update timing to stderr.
func (v *Viewer) debugLog(stats debugStats) {
	if !v.debug {
		return
	}
	debugf("input: %v | frames: %v (%d callbacks) | containers: %d",
		stats.inputTime, stats.frameTime, stats.frames, stats.containers)
}
