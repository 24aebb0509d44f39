package pubsub

// Engine is a pluggable delivery backend.
//
// Engines registered with a Registry receive Subscribe and Unsubscribe
// notifications whenever a channel is created or destroyed. Those calls run
// while the registry lock is held: they must return quickly and must not
// call back into the registry.
type Engine interface {
	// Subscribe notifies the engine that a channel came into existence.
	Subscribe(channel string, pattern bool)

	// Unsubscribe notifies the engine that a channel was destroyed.
	Unsubscribe(channel string, pattern bool)

	// Publish delivers payload to the engine's subscribers of channel.
	Publish(channel string, payload []byte) error
}
