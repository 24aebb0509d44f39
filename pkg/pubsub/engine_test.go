package pubsub

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine records the notifications and publishes it receives.
type fakeEngine struct {
	mu         sync.Mutex
	subscribed []string
	removed    []string
	published  []string
	publishErr error
}

func (e *fakeEngine) Subscribe(channel string, pattern bool) {
	e.mu.Lock()
	e.subscribed = append(e.subscribed, channel)
	e.mu.Unlock()
}

func (e *fakeEngine) Unsubscribe(channel string, pattern bool) {
	e.mu.Lock()
	e.removed = append(e.removed, channel)
	e.mu.Unlock()
}

func (e *fakeEngine) Publish(channel string, payload []byte) error {
	e.mu.Lock()
	e.published = append(e.published, channel)
	e.mu.Unlock()
	return e.publishErr
}

func (e *fakeEngine) snapshot() (subscribed, removed, published []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.subscribed...),
		append([]string(nil), e.removed...),
		append([]string(nil), e.published...)
}

func TestEngine_NotifiedOfChannelLifecycle(t *testing.T) {
	r, err := New(nil)
	require.NoError(t, err)
	defer r.Close()

	eng := &fakeEngine{}
	r.RegisterEngine(eng)

	s1, err := r.Subscribe(SubscribeArgs{Channel: "orders", OnMessage: func(m *Message) {}})
	require.NoError(t, err)
	s2, err := r.Subscribe(SubscribeArgs{Channel: "orders", OnMessage: func(m *Message) {}, Udata1: &struct{}{}})
	require.NoError(t, err)

	subscribed, removed, _ := eng.snapshot()
	assert.Equal(t, []string{"orders"}, subscribed, "create fires once, on first subscribe only")
	assert.Empty(t, removed)

	require.NoError(t, r.Unsubscribe(s1))
	_, removed, _ = eng.snapshot()
	assert.Empty(t, removed, "destroy must not fire while members remain")

	require.NoError(t, r.Unsubscribe(s2))
	_, removed, _ = eng.snapshot()
	assert.Equal(t, []string{"orders"}, removed, "destroy fires with the last unsubscribe")
}

func TestEngine_NoRetroactiveNotification(t *testing.T) {
	r, err := New(nil)
	require.NoError(t, err)
	defer r.Close()

	s, err := r.Subscribe(SubscribeArgs{Channel: "orders", OnMessage: func(m *Message) {}})
	require.NoError(t, err)
	defer r.Unsubscribe(s)

	// Engines registered after a channel exists only see future events.
	eng := &fakeEngine{}
	r.RegisterEngine(eng)

	subscribed, _, _ := eng.snapshot()
	assert.Empty(t, subscribed)

	s2, err := r.Subscribe(SubscribeArgs{Channel: "payments", OnMessage: func(m *Message) {}})
	require.NoError(t, err)
	defer r.Unsubscribe(s2)

	subscribed, _, _ = eng.snapshot()
	assert.Equal(t, []string{"payments"}, subscribed)
}

func TestPublish_ExplicitEngine(t *testing.T) {
	r, err := New(nil)
	require.NoError(t, err)
	defer r.Close()

	eng := &fakeEngine{}
	err = r.Publish(PublishArgs{Channel: "orders", Payload: []byte("x"), Engine: eng})
	require.NoError(t, err)

	_, _, published := eng.snapshot()
	assert.Equal(t, []string{"orders"}, published)
}

func TestPublish_DefaultEngine(t *testing.T) {
	r, err := New(nil)
	require.NoError(t, err)
	defer r.Close()

	eng := &fakeEngine{}
	r.RegisterEngine(eng)
	r.SetDefaultEngine(eng)

	err = r.Publish(PublishArgs{Channel: "orders", Payload: []byte("x")})
	require.NoError(t, err)
	_, _, published := eng.snapshot()
	assert.Equal(t, []string{"orders"}, published)
}

func TestDeregisterDefaultEngine_FallsBackToCluster(t *testing.T) {
	r, err := New(nil)
	require.NoError(t, err)
	defer r.Close()

	eng := &fakeEngine{}
	r.RegisterEngine(eng)
	r.SetDefaultEngine(eng)
	require.Same(t, Engine(eng), r.DefaultEngine())

	r.DeregisterEngine(eng)
	assert.Same(t, r.ClusterEngine(), r.DefaultEngine())

	// The cluster stub fails by contract.
	err = r.Publish(PublishArgs{Channel: "orders", Payload: []byte("x")})
	assert.ErrorIs(t, err, ErrClusterUnreachable)
}

func TestSetDefaultEngine_NilFallsBackAtPublish(t *testing.T) {
	r, err := New(nil)
	require.NoError(t, err)
	defer r.Close()

	r.SetDefaultEngine(nil)
	err = r.Publish(PublishArgs{Channel: "orders", Payload: []byte("x")})
	assert.ErrorIs(t, err, ErrClusterUnreachable)
}

func TestPublish_MissingArguments(t *testing.T) {
	r, err := New(nil)
	require.NoError(t, err)
	defer r.Close()

	err = r.Publish(PublishArgs{Payload: []byte("x")})
	assert.ErrorIs(t, err, ErrMissingChannel)

	err = r.Publish(PublishArgs{Channel: "orders"})
	assert.ErrorIs(t, err, ErrMissingPayload)

	// Empty but non-nil payloads are legitimate messages.
	s, err := r.Subscribe(SubscribeArgs{Channel: "orders", OnMessage: func(m *Message) {}})
	require.NoError(t, err)
	defer r.Unsubscribe(s)
	assert.NoError(t, r.Publish(PublishArgs{Channel: "orders", Payload: []byte{}}))
}

func TestClusterEngine_PublishAlwaysFails(t *testing.T) {
	r, err := New(nil)
	require.NoError(t, err)
	defer r.Close()

	err = r.ClusterEngine().Publish("orders", []byte("x"))
	assert.ErrorIs(t, err, ErrClusterUnreachable)
}
