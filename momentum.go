package pinchview

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// EaseOutQuart returns the ease-out-quartic interpolation between start and
// end at elapsed time t of duration d:
//
//	start + (end-start) * (1 - (t/d - 1)^4)
//
// t is clamped to [0, d].
func EaseOutQuart(t, d time.Duration, start, end float64) float64 {
	if d <= 0 || t >= d {
		return end
	}
	if t <= 0 {
		return start
	}
	v, _ := gween.New(float32(start), float32(end), float32(ms(d)), ease.OutQuart).Set(float32(ms(t)))
	return float64(v)
}

// ms converts a duration to fractional milliseconds.
func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// momentum is one running settle animation. Tween time is in milliseconds.
type momentum struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	from   Vec2
	to     Vec2
	start  time.Time
	frame  FrameID
}

// animator eases the container's box from its release position to a
// clamped rest position, one frame callback at a time.
type animator struct {
	sched    FrameScheduler
	duration time.Duration
	active   *momentum

	// apply writes an intermediate position; finish writes the final one.
	apply  func(pos Vec2)
	finish func(target Vec2)
}

// running reports whether a momentum animation is in flight.
func (a *animator) running() bool {
	return a.active != nil
}

// start begins easing from -> to at now, cancelling any animation in flight.
func (a *animator) start(now time.Time, from, to Vec2) {
	a.cancel()
	d := float32(ms(a.duration))
	m := &momentum{
		tweenX: gween.New(float32(from.X), float32(to.X), d, ease.OutQuart),
		tweenY: gween.New(float32(from.Y), float32(to.Y), d, ease.OutQuart),
		from:   from,
		to:     to,
		start:  now,
	}
	a.active = m
	m.frame = a.sched.RequestFrame(a.step)
}

// step advances the animation to now. Past the duration it performs the
// final write and stops rescheduling.
func (a *animator) step(now time.Time) {
	m := a.active
	if m == nil {
		return
	}
	m.frame = 0
	elapsed := now.Sub(m.start)
	if elapsed > a.duration {
		a.active = nil
		if a.finish != nil {
			a.finish(m.to)
		}
		return
	}
	t := float32(ms(elapsed))
	x, _ := m.tweenX.Set(t)
	y, _ := m.tweenY.Set(t)
	if a.apply != nil {
		a.apply(Vec2{X: float64(x), Y: float64(y)})
	}
	m.frame = a.sched.RequestFrame(a.step)
}

// cancel aborts the animation and its pending frame synchronously.
func (a *animator) cancel() {
	if a.active == nil {
		return
	}
	a.sched.CancelFrame(a.active.frame)
	a.active = nil
}
