package pubsub

// MessageHandler receives messages delivered to a subscription. It runs on
// a scheduler worker, never under the registry lock. The *Message argument
// is only valid for the duration of the call.
type MessageHandler func(m *Message)

// UnsubscribeHandler runs asynchronously after a subscription is fully
// canceled, carrying the subscription's two user-data slots.
type UnsubscribeHandler func(udata1, udata2 any)

// Message is the read-only view handed to a message handler.
type Message struct {
	// Channel is the name the message was published to (the published
	// name, not the pattern that matched it).
	Channel string

	// Payload is the published message body. Shared across every matching
	// subscription's delivery; handlers must not modify it.
	Payload []byte

	// Subscription is the receiving subscription's handle.
	Subscription *Subscription

	// Udata1 and Udata2 are the subscription's opaque user-data slots.
	Udata1 any
	Udata2 any

	task     *deliveryTask
	deferred bool
}

// Defer hands the current delivery back to the scheduler so the handler can
// yield instead of completing, fragmenting expensive handling across runs.
// The same message is delivered to the same subscription again later.
//
// Defer is only meaningful while the handler invocation that received m is
// still running; the handler should return promptly after calling it. At
// most one re-submission per invocation takes effect.
func (m *Message) Defer() {
	if m.task == nil || m.deferred {
		return
	}
	m.deferred = true
	// Mirror the increments taken when the delivery was first scheduled,
	// so the completing run's decrements cannot free either object.
	m.task.wrap.retain()
	m.task.sub.retain()
}
