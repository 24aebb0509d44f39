// Package pubsub implements an in-process publish/subscribe core.
//
// A Registry maps named channels to subscriptions. Channels are either
// exact-match or pattern-match (binary glob, see pkg/glob); the two kinds
// live in disjoint collections even when they share the same name text. A
// channel exists exactly while it has at least one subscription: it is
// created lazily on first subscribe and removed atomically with its last
// unsubscribe.
//
// Publishing goes through an Engine, a pluggable delivery backend. The
// built-in process engine delivers to matching local subscriptions through
// a deferred-task scheduler; the built-in cluster engine is a stub marking
// the seam where a cross-process transport would plug in. Registered
// engines are notified of every channel create and destroy, which lets an
// external transport mirror the local subscription surface.
//
// Message handlers run on the scheduler's workers, never under the registry
// lock, so a slow handler cannot block registry operations or other
// deliveries. No ordering is guaranteed between deliveries, whether they
// stem from the same publish or from different ones.
//
// Example:
//
//	reg, err := pubsub.New(nil)
//	if err != nil {
//		return err
//	}
//	defer reg.Close()
//
//	sub, err := reg.Subscribe(pubsub.SubscribeArgs{
//		Channel: "room.*",
//		Pattern: true,
//		OnMessage: func(m *pubsub.Message) {
//			fmt.Printf("%s: %s\n", m.Channel, m.Payload)
//		},
//	})
//	if err != nil {
//		return err
//	}
//
//	reg.Publish(pubsub.PublishArgs{Channel: "room.1", Payload: []byte("hi")})
//	reg.Unsubscribe(sub)
package pubsub
