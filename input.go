package pinchview

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const (
	maxPointers  = 10 // pointer 0 = mouse, 1-9 = touch
	mousePointer = 0
)

// touchPhase identifies which container handler a dispatched event goes to.
type touchPhase uint8

const (
	phaseStart touchPhase = iota
	phaseMove
	phaseEnd
)

func (p touchPhase) String() string {
	switch p {
	case phaseStart:
		return "start"
	case phaseMove:
		return "move"
	default:
		return "end"
	}
}

type touchDispatch struct {
	phase touchPhase
	ev    TouchEvent
}

// --- Per-pointer state ---

type pointerState struct {
	down bool
	x, y float64
}

// inputState turns per-tick snapshots of the pointers that are down into
// start/move/end events, the way a browser reports touches.
type inputState struct {
	pointers     [maxPointers]pointerState
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	frameBuf     []Touch
	out          []touchDispatch

	// Mouse emulates a single finger when no touch is down.
	mouse bool
}

// poll reads the pointers currently down from Ebitengine.
func (in *inputState) poll() []Touch {
	frame := in.frameBuf[:0]

	touchIDs := ebiten.AppendTouchIDs(in.prevTouchIDs[:0])
	in.prevTouchIDs = touchIDs

	var active [maxPointers]bool
	for _, tid := range touchIDs {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		frame = append(frame, Touch{ID: slot, X: float64(tx), Y: float64(ty)})
	}

	// Free slots whose touch is gone.
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !active[i] {
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}

	if in.mouse && len(frame) == 0 && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		frame = append(frame, Touch{ID: mousePointer, X: float64(mx), Y: float64(my)})
	}

	in.frameBuf = frame
	sortTouches(frame)
	return frame
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (in *inputState) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// sortTouches orders a frame by pointer ID so finger order is stable
// between ticks. Frames hold at most maxPointers entries.
func sortTouches(ts []Touch) {
	for i := 1; i < len(ts); i++ {
		for j := i; j > 0 && ts[j].ID < ts[j-1].ID; j-- {
			ts[j], ts[j-1] = ts[j-1], ts[j]
		}
	}
}

// diff compares frame against the previous tick and returns the events to
// dispatch, in order: one end if fingers lifted, one start if fingers went
// down, then one move if a finger that stayed down changed position.
// Fingers lifting or landing on the same tick are reported together, as a
// browser does. The returned slice is reused next call.
func (in *inputState) diff(frame []Touch, now time.Time) []touchDispatch {
	in.out = in.out[:0]

	var inFrame [maxPointers]bool
	for _, t := range frame {
		if t.ID >= 0 && t.ID < maxPointers {
			inFrame[t.ID] = true
		}
	}

	released := false
	for id := 0; id < maxPointers; id++ {
		if in.pointers[id].down && !inFrame[id] {
			in.pointers[id].down = false
			released = true
		}
	}
	if released {
		in.out = append(in.out, touchDispatch{phase: phaseEnd, ev: TouchEvent{Touches: in.downTouches(), Time: now}})
	}

	pressed, moved := false, false
	var nx, ny [maxPointers]float64
	var stayed [maxPointers]bool
	for _, t := range frame {
		if t.ID < 0 || t.ID >= maxPointers {
			continue
		}
		ps := &in.pointers[t.ID]
		if !ps.down {
			ps.down = true
			ps.x, ps.y = t.X, t.Y
			pressed = true
			continue
		}
		stayed[t.ID] = true
		nx[t.ID], ny[t.ID] = t.X, t.Y
		if ps.x != t.X || ps.y != t.Y {
			moved = true
		}
	}
	if pressed {
		in.out = append(in.out, touchDispatch{phase: phaseStart, ev: TouchEvent{Touches: in.downTouches(), Time: now}})
	}

	if moved {
		for id := 0; id < maxPointers; id++ {
			if stayed[id] {
				in.pointers[id].x, in.pointers[id].y = nx[id], ny[id]
			}
		}
		in.out = append(in.out, touchDispatch{phase: phaseMove, ev: TouchEvent{Touches: in.downTouches(), Time: now}})
	}
	return in.out
}

// downTouches returns a fresh slice of the pointers currently down.
func (in *inputState) downTouches() []Touch {
	var ts []Touch
	for id := 0; id < maxPointers; id++ {
		if ps := in.pointers[id]; ps.down {
			ts = append(ts, Touch{ID: id, X: ps.x, Y: ps.y})
		}
	}
	return ts
}

// reset forgets every pointer, e.g. when the routing target changes.
func (in *inputState) reset() {
	in.pointers = [maxPointers]pointerState{}
}

// dispatch delivers one event to a container.
func (d touchDispatch) dispatch(c *Container) {
	switch d.phase {
	case phaseStart:
		c.TouchStart(d.ev)
	case phaseMove:
		c.TouchMove(d.ev)
	case phaseEnd:
		c.TouchEnd(d.ev)
	}
}
