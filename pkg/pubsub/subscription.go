package pubsub

import (
	"container/list"
	"sync/atomic"
)

// Subscription is a registered (channel, handler, user data) triple with an
// independent reference-counted lifetime. Handles are returned by
// Registry.Subscribe and stay valid until the last in-flight delivery or
// pending unsubscribe notification referencing them completes.
type Subscription struct {
	reg     *Registry
	channel *channel      // owning channel (back-reference, not ownership)
	elem    *list.Element // membership slot in channel.subs
	key     clientKey

	onMessage     MessageHandler
	onUnsubscribe UnsubscribeHandler
	udata1        any
	udata2        any

	// ref counts the registry's reference plus one per in-flight delivery
	// or pending unsubscribe notification. The subscription is reclaimed
	// exactly once, when ref reaches zero.
	ref      atomic.Int64
	unlinked bool // guarded by reg.mu
}

// Channel returns the channel name the subscription is registered on.
func (s *Subscription) Channel() string { return s.channel.name }

// Pattern reports whether the subscription is on a pattern channel.
func (s *Subscription) Pattern() bool { return s.channel.pattern }

func (s *Subscription) retain() {
	s.ref.Add(1)
}

func (s *Subscription) release() {
	n := s.ref.Add(-1)
	if n > 0 {
		return
	}
	if n < 0 {
		panic("subscription reference count underflow")
	}
	if s.reg.subFreeHook != nil {
		s.reg.subFreeHook(s)
	}
	s.onMessage = nil
	s.onUnsubscribe = nil
	s.udata1 = nil
	s.udata2 = nil
}
