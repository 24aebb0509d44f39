package pubsub

import "errors"

var (
	// ErrMissingChannel is returned when a channel name is absent.
	ErrMissingChannel = errors.New("channel name is required")
	// ErrMissingHandler is returned when a subscribe call carries no message handler.
	ErrMissingHandler = errors.New("message handler is required")
	// ErrMissingPayload is returned when a publish call carries no payload.
	ErrMissingPayload = errors.New("message payload is required")
	// ErrNilSubscription is returned when unsubscribing a nil handle.
	ErrNilSubscription = errors.New("subscription cannot be nil")
	// ErrNoSubscribers is returned by the process engine when neither an
	// exact channel nor any pattern channel matched the published name.
	ErrNoSubscribers = errors.New("no matching channel")
	// ErrClusterUnreachable is returned by the stub cluster engine; a real
	// cross-process transport replaces it.
	ErrClusterUnreachable = errors.New("cluster engine has no transport")
	// ErrRegistryClosed is returned when operating on a closed registry.
	ErrRegistryClosed = errors.New("registry is closed")
)
