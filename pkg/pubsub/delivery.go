package pubsub

import (
	"sync/atomic"

	"github.com/fanouthq/pubsub-go/pkg/scheduler"
)

// wrapper is the reference-counted, immutable (channel name, payload) pair
// created once per publish and shared by every matching subscription's
// delivery task. It is released exactly once, when the last task holding a
// reference completes.
type wrapper struct {
	ref      atomic.Int64
	channel  string
	payload  []byte
	freeHook func(*wrapper)
}

func (w *wrapper) retain() {
	w.ref.Add(1)
}

func (w *wrapper) release() {
	n := w.ref.Add(-1)
	if n > 0 {
		return
	}
	if n < 0 {
		panic("message wrapper reference count underflow")
	}
	if w.freeHook != nil {
		w.freeHook(w)
	}
	w.payload = nil
}

// deliveryTask carries one (wrapper, subscription) delivery through the
// scheduler. Both reference counts were incremented under the registry lock
// before the task was handed out; Run performs the matching decrements.
type deliveryTask struct {
	sub  *Subscription
	wrap *wrapper
}

func (t *deliveryTask) Run() scheduler.Disposition {
	m := Message{
		Channel:      t.wrap.channel,
		Payload:      t.wrap.payload,
		Subscription: t.sub,
		Udata1:       t.sub.udata1,
		Udata2:       t.sub.udata2,
		task:         t,
	}
	t.sub.onMessage(&m)

	deferred := m.deferred
	t.wrap.release()
	t.sub.release()
	if deferred {
		// Defer already took replacement references for the next run.
		return scheduler.Reschedule
	}
	return scheduler.Done
}

// unsubTask runs a subscription's unsubscribe notification off the lock.
type unsubTask struct {
	sub *Subscription
}

func (t *unsubTask) Run() scheduler.Disposition {
	t.sub.onUnsubscribe(t.sub.udata1, t.sub.udata2)
	t.sub.release()
	return scheduler.Done
}
