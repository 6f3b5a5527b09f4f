package pinchview

// Synthetic touch frames. Each queued frame is the full set of fingers down
// for one tick; an empty frame lifts every finger. While frames are queued,
// real input is ignored.

const (
	injectFingerA = 1
	injectFingerB = 2
)

// InjectTouches queues one frame with exactly the given touches down.
// The frame is consumed on the next Update.
func (v *Viewer) InjectTouches(touches ...Touch) {
	frame := make([]Touch, len(touches))
	copy(frame, touches)
	v.injectQueue = append(v.injectQueue, frame)
}

// InjectPress queues a single finger press at the given screen coordinates.
func (v *Viewer) InjectPress(x, y float64) {
	v.InjectTouches(Touch{ID: injectFingerA, X: x, Y: y})
}

// InjectMove queues a single finger move. Use it between InjectPress and
// InjectRelease to simulate a drag.
func (v *Viewer) InjectMove(x, y float64) {
	v.InjectTouches(Touch{ID: injectFingerA, X: x, Y: y})
}

// InjectRelease queues a frame with no fingers down.
func (v *Viewer) InjectRelease() {
	v.InjectTouches()
}

// InjectTap queues a press followed by a release at the same point.
// Consumes two frames.
func (v *Viewer) InjectTap(x, y float64) {
	v.InjectPress(x, y)
	v.InjectRelease()
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves, the final move to (toX, toY) and a release.
// The total sequence consumes `frames` frames. Minimum frames is 3.
func (v *Viewer) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	v.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		v.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	v.InjectRelease()
}

// InjectPinch queues a horizontal two-finger pinch centered on (cx, cy):
// one finger down, both down fromDist apart, interpolated spreads ending
// toDist apart, then a release. Consumes `frames` frames, minimum 4.
func (v *Viewer) InjectPinch(cx, cy, fromDist, toDist float64, frames int) {
	if frames < 4 {
		frames = 4
	}
	pair := func(d float64) (Touch, Touch) {
		return Touch{ID: injectFingerA, X: cx - d/2, Y: cy},
			Touch{ID: injectFingerB, X: cx + d/2, Y: cy}
	}
	a, _ := pair(fromDist)
	v.InjectTouches(a)
	a, b := pair(fromDist)
	v.InjectTouches(a, b)
	steps := frames - 3
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		a, b = pair(fromDist + (toDist-fromDist)*t)
		v.InjectTouches(a, b)
	}
	v.InjectRelease()
}

// nextInjected pops one queued frame. ok is false when the queue is empty.
func (v *Viewer) nextInjected() (frame []Touch, ok bool) {
	if len(v.injectQueue) == 0 {
		return nil, false
	}
	frame = v.injectQueue[0]
	copy(v.injectQueue, v.injectQueue[1:])
	v.injectQueue[len(v.injectQueue)-1] = nil
	v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]
	return frame, true
}
