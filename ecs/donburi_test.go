package ecs

import (
	"testing"

	"github.com/phanxgames/pinchview"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []pinchview.GestureEvent
	GestureEventType.Subscribe(world, func(w donburi.World, e pinchview.GestureEvent) {
		received = append(received, e)
	})

	store.EmitEvent(pinchview.GestureEvent{
		Type:        pinchview.EventPanEnd,
		Index:       3,
		AllowChange: true,
	})
	store.EmitEvent(pinchview.GestureEvent{
		Type: pinchview.EventPinch,
		Zoom: 2.0,
		Box:  pinchview.Box{Width: 200, Height: 100},
	})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("events delivered before ProcessEvents: %d", len(received))
	}
	GestureEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != pinchview.EventPanEnd || e0.Index != 3 || !e0.AllowChange {
		t.Errorf("event 0: %+v", e0)
	}
	e1 := received[1]
	if e1.Type != pinchview.EventPinch || e1.Zoom != 2.0 || e1.Box.Width != 200 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	GestureEventType.Subscribe(world, func(w donburi.World, e pinchview.GestureEvent) {
		count1++
	})
	GestureEventType.Subscribe(world, func(w donburi.World, e pinchview.GestureEvent) {
		count2++
	})

	store.EmitEvent(pinchview.GestureEvent{Type: pinchview.EventTap})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiStore_ViewerClose(t *testing.T) {
	world := donburi.NewWorld()

	v, err := pinchview.NewViewer(pinchview.ViewerOptions{
		Sources:  []string{"missing-a.png", "missing-b.png"},
		Index:    1,
		Viewport: pinchview.Viewport{ScreenWidth: 320, ScreenHeight: 480},
	})
	if err != nil {
		t.Fatal(err)
	}
	v.SetEventStore(NewDonburiStore(world))

	var got []pinchview.GestureEvent
	GestureEventType.Subscribe(world, func(w donburi.World, e pinchview.GestureEvent) {
		got = append(got, e)
	})

	v.Close()
	GestureEventType.ProcessEvents(world)

	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Type != pinchview.EventClose || got[0].Index != 1 {
		t.Errorf("close event: %+v", got[0])
	}
}
