package pinchview

import (
	"reflect"
	"testing"
)

func phases(ds []touchDispatch) []touchPhase {
	out := make([]touchPhase, len(ds))
	for i, d := range ds {
		out[i] = d.phase
	}
	return out
}

func TestDiffSingleFinger(t *testing.T) {
	var in inputState

	ds := in.diff([]Touch{{ID: 1, X: 10, Y: 20}}, at(0))
	if !reflect.DeepEqual(phases(ds), []touchPhase{phaseStart}) {
		t.Fatalf("press: %v", phases(ds))
	}
	if !reflect.DeepEqual(ds[0].ev.Touches, []Touch{{ID: 1, X: 10, Y: 20}}) || !ds[0].ev.Time.Equal(at(0)) {
		t.Errorf("press event = %+v", ds[0].ev)
	}

	if ds := in.diff([]Touch{{ID: 1, X: 10, Y: 20}}, at(16)); len(ds) != 0 {
		t.Errorf("unchanged frame produced %v", phases(ds))
	}

	ds = in.diff([]Touch{{ID: 1, X: 15, Y: 20}}, at(32))
	if !reflect.DeepEqual(phases(ds), []touchPhase{phaseMove}) {
		t.Fatalf("move: %v", phases(ds))
	}
	if ds[0].ev.Touches[0].X != 15 {
		t.Errorf("move event = %+v", ds[0].ev)
	}

	ds = in.diff(nil, at(48))
	if !reflect.DeepEqual(phases(ds), []touchPhase{phaseEnd}) {
		t.Fatalf("release: %v", phases(ds))
	}
	if len(ds[0].ev.Touches) != 0 {
		t.Errorf("release lists remaining touches %v", ds[0].ev.Touches)
	}
}

func TestDiffSecondFinger(t *testing.T) {
	var in inputState
	in.diff([]Touch{{ID: 1, X: 10, Y: 10}}, at(0))

	ds := in.diff([]Touch{{ID: 1, X: 10, Y: 10}, {ID: 2, X: 50, Y: 10}}, at(16))
	if !reflect.DeepEqual(phases(ds), []touchPhase{phaseStart}) {
		t.Fatalf("second press: %v", phases(ds))
	}
	if len(ds[0].ev.Touches) != 2 {
		t.Errorf("start lists %d touches, want 2", len(ds[0].ev.Touches))
	}

	// Lift the first finger: the end event lists the one left.
	ds = in.diff([]Touch{{ID: 2, X: 50, Y: 10}}, at(32))
	if !reflect.DeepEqual(phases(ds), []touchPhase{phaseEnd}) {
		t.Fatalf("partial release: %v", phases(ds))
	}
	if !reflect.DeepEqual(ds[0].ev.Touches, []Touch{{ID: 2, X: 50, Y: 10}}) {
		t.Errorf("remaining = %v", ds[0].ev.Touches)
	}
}

func TestDiffSimultaneousRelease(t *testing.T) {
	var in inputState
	in.diff([]Touch{{ID: 1}, {ID: 2, X: 5}}, at(0))

	ds := in.diff(nil, at(16))
	if !reflect.DeepEqual(phases(ds), []touchPhase{phaseEnd}) {
		t.Fatalf("release: %v", phases(ds))
	}
	if len(ds[0].ev.Touches) != 0 {
		t.Errorf("remaining = %v", ds[0].ev.Touches)
	}
}

func TestDiffOrder(t *testing.T) {
	var in inputState
	in.diff([]Touch{{ID: 1}, {ID: 2, X: 5}}, at(0))

	// Finger 1 lifts, finger 3 lands, finger 2 moves, all on one tick.
	ds := in.diff([]Touch{{ID: 2, X: 9}, {ID: 3, X: 40}}, at(16))
	want := []touchPhase{phaseEnd, phaseStart, phaseMove}
	if !reflect.DeepEqual(phases(ds), want) {
		t.Fatalf("phases = %v, want %v", phases(ds), want)
	}
	// The move carries the new position; the start still shows the old one.
	if ds[1].ev.Touches[0].X != 5 || ds[2].ev.Touches[0].X != 9 {
		t.Errorf("start=%v move=%v", ds[1].ev.Touches, ds[2].ev.Touches)
	}
}

func TestInputReset(t *testing.T) {
	var in inputState
	in.diff([]Touch{{ID: 1}}, at(0))
	in.reset()
	ds := in.diff([]Touch{{ID: 1}}, at(16))
	if !reflect.DeepEqual(phases(ds), []touchPhase{phaseStart}) {
		t.Errorf("after reset: %v", phases(ds))
	}
}

func TestSortTouches(t *testing.T) {
	ts := []Touch{{ID: 3}, {ID: 1}, {ID: 2}}
	sortTouches(ts)
	for i, tc := range ts {
		if tc.ID != i+1 {
			t.Fatalf("order = %v", ts)
		}
	}
}

func TestDispatchRoutesPhases(t *testing.T) {
	c, _, rec := newLoadedContainer(t, 200, 100)
	var in inputState

	for _, frame := range [][]Touch{
		{{ID: 1, X: 100, Y: 100}},
		{{ID: 1, X: 160, Y: 100}},
	} {
		for _, d := range in.diff(frame, at(0)) {
			d.dispatch(c)
		}
	}
	if !c.Gesturing() || !reflect.DeepEqual(rec.moves, []float64{60}) {
		t.Errorf("gesturing=%v moves=%v", c.Gesturing(), rec.moves)
	}
}

func TestTouchPhaseString(t *testing.T) {
	if phaseStart.String() != "start" || phaseMove.String() != "move" || phaseEnd.String() != "end" {
		t.Error("unexpected phase names")
	}
}
