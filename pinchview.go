package pinchview

import (
	"image/color"
	"time"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorBlack is the default viewer background.
var ColorBlack = Color{0, 0, 0, 1}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(Clamp(c.R*c.A, 0, 1) * 255),
		G: uint8(Clamp(c.G*c.A, 0, 1) * 255),
		B: uint8(Clamp(c.B*c.A, 0, 1) * 255),
		A: uint8(Clamp(c.A, 0, 1) * 255),
	}
}

// Vec2 is a 2D vector used for positions, offsets and pivots.
type Vec2 struct {
	X, Y float64
}

// Viewport is the screen area an image container draws into. Both
// dimensions are positive pixel counts.
type Viewport struct {
	ScreenWidth, ScreenHeight int
}

func (v Viewport) w() float64 { return float64(v.ScreenWidth) }
func (v Viewport) h() float64 { return float64(v.ScreenHeight) }

// Touch is a single finger (or emulated pointer) in screen coordinates.
type Touch struct {
	ID   int
	X, Y float64
}

// TouchEvent carries the touches still down after the event happened and
// the time it happened at. For a touch-end event Touches lists the fingers
// that remain on the screen.
type TouchEvent struct {
	Touches []Touch
	Time    time.Time
}

// Callbacks are the outbound hooks of an image container.
//
// OnStart fires once per gesture before the first OnMove. OnMove receives
// the cumulative horizontal displacement that the container did not consume
// itself. OnEnd fires on release, paired with a prior OnStart. OnClose fires
// on tap-to-close. Any of them may be nil.
type Callbacks struct {
	OnStart func()
	OnMove  func(deltaX float64)
	OnEnd   func(allowChange bool)
	OnClose func()
}

// EventType identifies a kind of gesture event reported to an EventStore.
type EventType uint8

const (
	EventTap        EventType = iota // tap-to-close recognised
	EventPanStart                    // first forwarded horizontal delta of a gesture
	EventPanMove                     // forwarded horizontal delta
	EventPanEnd                      // gesture released after forwarding
	EventPinch                       // two-finger zoom step
	EventPinchEnd                    // two-finger gesture released and clamped
	EventMomentum                    // momentum animation started
	EventPageChange                  // viewer switched to another image
	EventClose                       // viewer close requested
)

func (e EventType) String() string {
	switch e {
	case EventTap:
		return "tap"
	case EventPanStart:
		return "pan-start"
	case EventPanMove:
		return "pan-move"
	case EventPanEnd:
		return "pan-end"
	case EventPinch:
		return "pinch"
	case EventPinchEnd:
		return "pinch-end"
	case EventMomentum:
		return "momentum"
	case EventPageChange:
		return "page-change"
	case EventClose:
		return "close"
	default:
		return "unknown"
	}
}

// EventStore is the interface for optional ECS integration.
// When set on a Viewer, gesture events are forwarded to it.
type EventStore interface {
	EmitEvent(event GestureEvent)
}

// GestureEvent carries gesture data for the ECS bridge.
type GestureEvent struct {
	Type  EventType
	Index int // image index within the viewer
	// Pan fields (valid for EventPanMove, EventPanEnd)
	DeltaX      float64
	AllowChange bool
	// Pinch fields (valid for EventPinch, EventPinchEnd)
	Zoom float64
	// Geometry after the event
	Box Box
}
