package pinchview

import "time"

// FrameFunc is a per-frame callback. now is the time of the frame.
type FrameFunc func(now time.Time)

// FrameID identifies a requested frame callback. The zero value is never
// issued and is safe to cancel.
type FrameID uint64

// FrameScheduler runs callbacks on the next animation frame.
// CancelFrame must take effect immediately: a cancelled callback never runs.
type FrameScheduler interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

type frameEntry struct {
	id FrameID
	fn FrameFunc
}

// FrameQueue is a FrameScheduler flushed once per tick by its owner.
// Callbacks requested while a flush is running are deferred to the next
// flush, so self-rescheduling animations advance one step per tick.
type FrameQueue struct {
	pending []frameEntry
	running []frameEntry
	nextID  FrameID
}

// RequestFrame queues fn for the next Flush.
func (q *FrameQueue) RequestFrame(fn FrameFunc) FrameID {
	q.nextID++
	q.pending = append(q.pending, frameEntry{id: q.nextID, fn: fn})
	return q.nextID
}

// CancelFrame removes a queued callback. Unknown or already-run IDs are
// ignored.
func (q *FrameQueue) CancelFrame(id FrameID) {
	if id == 0 {
		return
	}
	for i := range q.pending {
		if q.pending[i].id == id {
			copy(q.pending[i:], q.pending[i+1:])
			q.pending[len(q.pending)-1] = frameEntry{}
			q.pending = q.pending[:len(q.pending)-1]
			return
		}
	}
	// A callback running in this flush may cancel one queued behind it.
	for i := range q.running {
		if q.running[i].id == id {
			q.running[i].fn = nil
			return
		}
	}
}

// Flush runs every callback queued before the call and returns how many ran.
func (q *FrameQueue) Flush(now time.Time) int {
	if len(q.pending) == 0 {
		return 0
	}
	q.running, q.pending = q.pending, q.running[:0]
	ran := 0
	for i := range q.running {
		fn := q.running[i].fn
		if fn == nil {
			continue
		}
		q.running[i].fn = nil
		fn(now)
		ran++
	}
	q.running = q.running[:0]
	return ran
}

// Len reports the number of callbacks waiting for the next Flush.
func (q *FrameQueue) Len() int {
	return len(q.pending)
}
