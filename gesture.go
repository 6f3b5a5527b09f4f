package pinchview

import (
	"math"
	"time"
)

const (
	// minPinchDistance floors the starting finger distance of a pinch so two
	// touches reported at the same point cannot divide by zero.
	minPinchDistance = 1.0
	// minReleaseDuration floors the gesture duration used for release velocity.
	minReleaseDuration = time.Millisecond
)

// session is the gesture state of a container: nil (idle), *singleTouch or
// *twoFinger. Transitions happen only in the touch handlers below.
type session interface {
	isSession()
}

// singleTouch tracks a one-finger pan or tap.
type singleTouch struct {
	startX, startY float64
	startLeft      float64
	startTop       float64
	startTime      time.Time
	tap            bool
	diffX, diffY   float64
}

// twoFinger tracks a pinch. pivot is the finger midpoint in image-local
// coordinates at the time the second finger went down.
type twoFinger struct {
	start     Box
	pivot     Vec2
	startDist float64
	zoom      float64
}

func (*singleTouch) isSession() {}
func (*twoFinger) isSession()   {}

func touchDistance(a, b Touch) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// TouchStart handles a finger going down. ev.Touches lists every finger
// currently down. A running momentum animation is cancelled before any
// session state changes.
func (c *Container) TouchStart(ev TouchEvent) {
	c.anim.cancel()

	switch len(ev.Touches) {
	case 1:
		c.beginSingle(ev.Touches[0], ev.Time, true)
	case 2:
		c.beginPinch(ev.Touches[0], ev.Touches[1])
	default:
		// Three or more fingers: ignored.
	}
}

// beginSingle starts (or re-baselines) a one-finger session at t.
func (c *Container) beginSingle(t Touch, at time.Time, tap bool) {
	c.session = &singleTouch{
		startX:    t.X,
		startY:    t.Y,
		startLeft: c.geom.box.Left,
		startTop:  c.geom.box.Top,
		startTime: at,
		tap:       tap,
	}
}

// beginPinch starts a two-finger session. Without a loaded image there is
// nothing to zoom and the session drops to idle.
func (c *Container) beginPinch(t0, t1 Touch) {
	if c.forwarding {
		// A page drag in progress is abandoned in favour of the pinch.
		c.callEnd(false)
	}
	if !c.geom.valid {
		c.session = nil
		return
	}

	midX := math.Abs(math.Round((t0.X + t1.X) / 2))
	midY := math.Abs(math.Round((t0.Y + t1.Y) / 2))

	start := c.geom.box
	c.session = &twoFinger{
		start:     start,
		pivot:     Vec2{X: midX - start.Left, Y: midY - start.Top},
		startDist: math.Max(touchDistance(t0, t1), minPinchDistance),
		zoom:      1,
	}
	if c.debug {
		debugf("image %d: pinch start pivot=(%.1f, %.1f) box=%v", c.index, midX-start.Left, midY-start.Top, start)
	}
}

// TouchMove handles finger movement.
func (c *Container) TouchMove(ev TouchEvent) {
	switch len(ev.Touches) {
	case 1:
		if s, ok := c.session.(*singleTouch); ok {
			c.moveSingle(s, ev.Touches[0])
		}
	case 2:
		if s, ok := c.session.(*twoFinger); ok {
			c.movePinch(s, ev.Touches[0], ev.Touches[1])
		}
	default:
	}
}

func (c *Container) moveSingle(s *singleTouch, t Touch) {
	s.diffX = t.X - s.startX
	s.diffY = t.Y - s.startY

	if math.Abs(s.diffX) > c.cfg.TapSlop || math.Abs(s.diffY) > c.cfg.TapSlop {
		s.tap = false
	}

	g := &c.geom
	if g.unzoomed() {
		// At fit width the drag belongs to the pager, not the image.
		c.callMove(s.diffX)
		return
	}

	b := g.box
	left := s.startLeft + s.diffX
	minLeft := g.origin.Width - b.Width
	switch {
	case left < minLeft:
		c.callMove(left - minLeft)
	case left > 0:
		c.callMove(left)
	}
	b.Left = g.clampLeft(left, b.Width)
	b.Top = g.clampTop(s.startTop+s.diffY, b.Height)
	g.box = b
}

func (c *Container) movePinch(s *twoFinger, t0, t1 Touch) {
	// Zoom grows with the square root of the finger spread.
	zoom := math.Sqrt(touchDistance(t0, t1) / s.startDist)
	s.zoom = zoom

	c.geom.box = Box{
		Width:  zoom * s.start.Width,
		Height: zoom * s.start.Height,
		Left:   s.start.Left + (1-zoom)*s.pivot.X,
		Top:    s.start.Top + (1-zoom)*s.pivot.Y,
	}
	c.emit(EventPinch, 0, false, zoom)
	if c.debug {
		debugf("image %d: pinch zoom=%.3f box=%v", c.index, zoom, c.geom.box)
	}
}

// TouchEnd handles a finger lifting. ev.Touches lists the fingers that
// remain down.
func (c *Container) TouchEnd(ev TouchEvent) {
	switch s := c.session.(type) {
	case *twoFinger:
		c.endPinch(s, ev)
	case *singleTouch:
		if len(ev.Touches) == 0 {
			c.endSingle(s, ev.Time)
		}
	}
}

// endPinch clamps the pinch result and hands over to whatever fingers are
// left on the screen.
func (c *Container) endPinch(s *twoFinger, ev TouchEvent) {
	g := &c.geom
	w, h := g.clampSize(g.box.Width, g.box.Height)
	zoom := w / s.start.Width

	b := Box{Width: w, Height: h}
	b.Left = g.clampLeft(s.start.Left+(1-zoom)*s.pivot.X, w)
	b.Top = g.clampTop(s.start.Top+(1-zoom)*s.pivot.Y, h)
	g.box = b
	c.emit(EventPinchEnd, 0, false, g.zoom())
	if c.debug {
		debugf("image %d: pinch end zoom=%.3f box=%v", c.index, g.zoom(), b)
	}

	switch n := len(ev.Touches); {
	case n == 0:
		c.session = nil
	case n == 1:
		c.beginSingle(ev.Touches[0], ev.Time, false)
	default:
		c.beginPinch(ev.Touches[0], ev.Touches[1])
	}
}

// endSingle finishes a one-finger gesture: tap-to-close, page hand-off and
// momentum.
func (c *Container) endSingle(s *singleTouch, at time.Time) {
	c.session = nil
	dt := at.Sub(s.startTime)

	if dt < c.cfg.TapMaxDuration && s.tap {
		c.forwarding = false
		c.emit(EventTap, 0, false, 0)
		if c.debug {
			debugf("image %d: tap after %v, closing", c.index, dt)
		}
		if c.cb.OnClose != nil {
			c.cb.OnClose()
		}
		return
	}

	c.callEnd(math.Abs(s.diffY) < c.cfg.PageChangeMaxDY)

	if !c.geom.valid || dt >= c.cfg.MomentumDuration/2 {
		return
	}
	if dt < minReleaseDuration {
		dt = minReleaseDuration
	}

	// Extrapolate the release velocity over the full animation window.
	scale := ms(c.cfg.MomentumDuration) / ms(dt)
	g := &c.geom
	b := g.box
	to := Vec2{
		X: g.clampLeft(s.diffX*scale+s.startLeft, b.Width),
		Y: b.Top,
	}
	if b.Height > g.viewport.h() {
		to.Y = g.clampTop(s.diffY*scale+s.startTop, b.Height)
	}
	from := Vec2{X: b.Left, Y: b.Top}
	c.anim.start(at, from, to)
	c.emit(EventMomentum, 0, false, 0)
	if c.debug {
		debugf("image %d: momentum %v -> %v after %v", c.index, from, to, dt)
	}
}

// cancelGesture drops the current session without a release, closing a
// forwarded drag with OnEnd(false).
func (c *Container) cancelGesture() {
	c.session = nil
	c.callEnd(false)
}

// callMove forwards a horizontal delta, announcing the drag first.
func (c *Container) callMove(dx float64) {
	if !c.forwarding {
		c.forwarding = true
		c.emit(EventPanStart, 0, false, 0)
		if c.cb.OnStart != nil {
			c.cb.OnStart()
		}
	}
	c.emit(EventPanMove, dx, false, 0)
	if c.cb.OnMove != nil {
		c.cb.OnMove(dx)
	}
}

// callEnd closes a forwarded drag. It is a no-op when nothing was forwarded.
func (c *Container) callEnd(allowChange bool) {
	if !c.forwarding {
		return
	}
	c.forwarding = false
	c.emit(EventPanEnd, 0, allowChange, 0)
	if c.cb.OnEnd != nil {
		c.cb.OnEnd(allowChange)
	}
}
