package pubsub

import (
	"container/list"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fanouthq/pubsub-go/pkg/scheduler"
)

// channel is a named delivery topic. It exists only while it has at least
// one subscription; creation and removal happen under the registry lock.
type channel struct {
	name    string
	pattern bool
	subs    list.List // of *Subscription, in insertion order
}

// clientKey identifies a subscription for deduplication: the identity hash
// of its handlers and user data, combined with the channel name. The
// pattern flag is deliberately not part of the key.
type clientKey struct {
	hash    uint64
	channel string
}

// Registry owns the subscription state: exact channels, pattern channels,
// the subscription identity index, and the engine set, all behind a single
// coarse lock. Critical sections are short (map and list operations only);
// user callbacks never run while the lock is held.
type Registry struct {
	mu       sync.Mutex
	channels map[string]*channel
	patterns map[string]*channel
	clients  map[clientKey]*Subscription
	engines  map[Engine]struct{}

	defaultEngine Engine
	process       *processEngine
	cluster       *clusterEngine

	sched    Scheduler
	ownSched *scheduler.Pool
	log      zerolog.Logger
	closed   bool

	// test instrumentation, fired when a refcount reaches zero
	subFreeHook func(*Subscription)
	msgFreeHook func(*wrapper)
}

// New creates a Registry. A nil config uses defaults: an owned scheduler
// pool and no logging. The process engine starts as the default engine.
func New(cfg *Config) (*Registry, error) {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	c.SetDefaults()

	r := &Registry{
		channels: make(map[string]*channel),
		patterns: make(map[string]*channel),
		clients:  make(map[clientKey]*Subscription),
		engines:  make(map[Engine]struct{}),
		sched:    c.Scheduler,
		log:      *c.Logger,
	}
	if r.sched == nil {
		r.ownSched = scheduler.NewPool(nil)
		r.sched = r.ownSched
	}
	r.process = &processEngine{reg: r}
	r.cluster = &clusterEngine{}
	r.defaultEngine = r.process
	return r, nil
}

// Close stops the registry. Subsequent operations return ErrRegistryClosed.
// If the registry owns its scheduler pool, Close drains it, so in-flight
// deliveries and pending unsubscribe notifications complete before Close
// returns. Close is idempotent.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	if r.ownSched != nil {
		return r.ownSched.Close()
	}
	return nil
}

// SubscribeArgs carries the parameters of a subscription.
type SubscribeArgs struct {
	// Channel is the channel name, or the glob pattern when Pattern is set.
	Channel string
	// Pattern selects the pattern-channel collection.
	Pattern bool
	// OnMessage receives delivered messages. Required.
	OnMessage MessageHandler
	// OnUnsubscribe, when set, runs asynchronously once the subscription
	// is fully canceled. If Subscribe fails it is invoked synchronously
	// before returning, so resources tied to it are not leaked.
	OnUnsubscribe UnsubscribeHandler
	// Udata1 and Udata2 are opaque user-data slots passed to handlers.
	// Their references participate in subscription identity.
	Udata1 any
	Udata2 any
}

// Subscribe registers a subscription on the named channel, creating the
// channel if needed. Subscribing with parameters identical to an existing,
// still-registered subscription on the same channel returns the existing
// handle; no new registry entries are made.
func (r *Registry) Subscribe(args SubscribeArgs) (*Subscription, error) {
	if args.Channel == "" || args.OnMessage == nil {
		r.log.Warn().
			Str("channel", args.Channel).
			Msg("subscription request missing channel name or message handler")
		if args.OnUnsubscribe != nil {
			args.OnUnsubscribe(args.Udata1, args.Udata2)
		}
		if args.Channel == "" {
			return nil, ErrMissingChannel
		}
		return nil, ErrMissingHandler
	}

	key := clientKey{hash: clientHash(args), channel: args.Channel}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		if args.OnUnsubscribe != nil {
			args.OnUnsubscribe(args.Udata1, args.Udata2)
		}
		return nil, ErrRegistryClosed
	}
	if existing := r.clients[key]; existing != nil {
		r.mu.Unlock()
		return existing, nil
	}

	s := &Subscription{
		reg:           r,
		key:           key,
		onMessage:     args.OnMessage,
		onUnsubscribe: args.OnUnsubscribe,
		udata1:        args.Udata1,
		udata2:        args.Udata2,
	}
	s.ref.Store(1)
	r.clients[key] = s

	coll := r.channels
	if args.Pattern {
		coll = r.patterns
	}
	ch := coll[args.Channel]
	if ch == nil {
		ch = &channel{name: args.Channel, pattern: args.Pattern}
		coll[args.Channel] = ch
		r.notifyChannelCreate(ch)
		r.log.Debug().
			Str("channel", ch.name).
			Bool("pattern", ch.pattern).
			Uint64("channel_id", ChannelID(ch.name)).
			Msg("channel created")
	}
	s.channel = ch
	s.elem = ch.subs.PushBack(s)
	r.mu.Unlock()
	return s, nil
}

// FindSubscription looks up an existing subscription with exactly the given
// parameters. It never mutates registry state and never creates a channel.
//
// Use with care: never unsubscribe a handle more times than it was
// subscribed, since the handle is reclaimed once its reference count
// reaches zero.
func (r *Registry) FindSubscription(args SubscribeArgs) *Subscription {
	if args.Channel == "" || args.OnMessage == nil {
		return nil
	}
	key := clientKey{hash: clientHash(args), channel: args.Channel}
	r.mu.Lock()
	s := r.clients[key]
	r.mu.Unlock()
	return s
}

// Unsubscribe cancels a subscription. The membership removal and, when the
// channel empties, the channel removal plus engine notification happen
// under one lock acquisition, so no other caller can observe an empty
// channel as live. The unsubscribe notification, if any, runs
// asynchronously. Unsubscribing an already-canceled handle is a no-op.
func (r *Registry) Unsubscribe(s *Subscription) error {
	if s == nil {
		return ErrNilSubscription
	}

	r.mu.Lock()
	if s.unlinked {
		r.mu.Unlock()
		return nil
	}
	s.unlinked = true

	ch := s.channel
	ch.subs.Remove(s.elem)
	delete(r.clients, s.key)
	if ch.subs.Len() == 0 {
		coll := r.channels
		if ch.pattern {
			coll = r.patterns
		}
		if coll[ch.name] != ch {
			r.log.Error().
				Str("channel", ch.name).
				Msg("channel registry corruption detected")
			panic("pubsub: channel registry corruption detected")
		}
		delete(coll, ch.name)
		r.notifyChannelDestroy(ch)
		r.log.Debug().
			Str("channel", ch.name).
			Bool("pattern", ch.pattern).
			Uint64("channel_id", ChannelID(ch.name)).
			Msg("channel destroyed")
	}
	r.mu.Unlock()

	if s.onUnsubscribe != nil {
		s.retain()
		if err := r.sched.Schedule(&unsubTask{sub: s}); err != nil {
			// Scheduler gone; run the notification inline rather than
			// leaking the caller's resources.
			r.log.Warn().Err(err).Msg("unsubscribe notification ran inline")
			s.onUnsubscribe(s.udata1, s.udata2)
			s.release()
		}
	}
	s.release()
	return nil
}

// PublishArgs carries the parameters of a publish call.
type PublishArgs struct {
	// Channel is the name to publish to. Required.
	Channel string
	// Payload is the message body. Required (may be empty, not nil).
	Payload []byte
	// Engine, when set, handles this publish instead of the default.
	Engine Engine
}

// Publish routes a message through an engine: the explicit engine if given,
// else the current default engine, else the cluster engine. All three being
// unresolvable means the registry state is corrupted and Publish panics.
func (r *Registry) Publish(args PublishArgs) error {
	if args.Channel == "" {
		return ErrMissingChannel
	}
	if args.Payload == nil {
		return ErrMissingPayload
	}

	e := args.Engine
	if e == nil {
		r.mu.Lock()
		e = r.defaultEngine
		r.mu.Unlock()
	}
	if e == nil {
		e = r.ClusterEngine()
	}
	if e == nil {
		r.log.Error().Msg("no engine resolvable, registry state corrupted")
		panic("pubsub: no engine resolvable for publish")
	}
	return e.Publish(args.Channel, args.Payload)
}

// RegisterEngine adds an engine to the engine set. From this point on the
// engine is notified of channel creates and destroys; channels that already
// exist are not replayed to it.
func (r *Registry) RegisterEngine(e Engine) {
	if e == nil {
		return
	}
	r.mu.Lock()
	r.engines[e] = struct{}{}
	r.mu.Unlock()
}

// DeregisterEngine removes an engine from the engine set so it can be torn
// down safely. Deregistering the current default engine resets the default
// to the cluster engine.
func (r *Registry) DeregisterEngine(e Engine) {
	r.mu.Lock()
	if r.defaultEngine == e {
		r.defaultEngine = r.cluster
	}
	delete(r.engines, e)
	r.mu.Unlock()
}

// SetDefaultEngine replaces the engine used by publishes that name none.
// Setting nil makes such publishes fall back to the cluster engine.
func (r *Registry) SetDefaultEngine(e Engine) {
	r.mu.Lock()
	r.defaultEngine = e
	r.mu.Unlock()
}

// DefaultEngine returns the engine consulted when a publish names none.
func (r *Registry) DefaultEngine() Engine {
	r.mu.Lock()
	e := r.defaultEngine
	r.mu.Unlock()
	return e
}

// ProcessEngine returns the built-in local delivery engine.
func (r *Registry) ProcessEngine() Engine { return r.process }

// ClusterEngine returns the built-in cluster stub engine.
func (r *Registry) ClusterEngine() Engine { return r.cluster }

// notifyChannelCreate runs under the lock; engine hooks must not block.
func (r *Registry) notifyChannelCreate(ch *channel) {
	for e := range r.engines {
		e.Subscribe(ch.name, ch.pattern)
	}
}

// notifyChannelDestroy runs under the lock; engine hooks must not block.
func (r *Registry) notifyChannelDestroy(ch *channel) {
	for e := range r.engines {
		e.Unsubscribe(ch.name, ch.pattern)
	}
}
