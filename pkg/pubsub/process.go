package pubsub

import "github.com/fanouthq/pubsub-go/pkg/glob"

// processEngine delivers messages to matching subscriptions in this
// registry. Its channel notification hooks are no-ops: local delivery needs
// no bookkeeping beyond the registry itself.
type processEngine struct {
	reg *Registry
}

func (e *processEngine) Subscribe(channel string, pattern bool)   {}
func (e *processEngine) Unsubscribe(channel string, pattern bool) {}

// Publish fans the message out to the exact-match channel and to every
// pattern channel whose glob matches the published name. Reference counts
// are taken under the registry lock, before any task is handed to the
// scheduler; the tasks themselves are scheduled after the lock is released
// so a full scheduler queue cannot stall registry operations.
func (e *processEngine) Publish(channelName string, payload []byte) error {
	if channelName == "" {
		return ErrMissingChannel
	}
	if payload == nil {
		return ErrMissingPayload
	}
	r := e.reg

	w := &wrapper{channel: channelName, payload: payload, freeHook: r.msgFreeHook}

	matched := false
	var tasks []*deliveryTask

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRegistryClosed
	}
	if ch := r.channels[channelName]; ch != nil {
		matched = true
		tasks = appendDeliveries(tasks, ch, w)
	}
	name := []byte(channelName)
	for _, ch := range r.patterns {
		if glob.Match([]byte(ch.name), name) {
			matched = true
			tasks = appendDeliveries(tasks, ch, w)
		}
	}
	r.mu.Unlock()

	for _, t := range tasks {
		if err := r.sched.Schedule(t); err != nil {
			r.log.Warn().
				Err(err).
				Str("channel", channelName).
				Msg("delivery dropped")
			t.wrap.release()
			t.sub.release()
		}
	}

	if !matched {
		return ErrNoSubscribers
	}
	return nil
}

// appendDeliveries takes one wrapper and one subscription reference per
// member of ch. Caller holds the registry lock.
func appendDeliveries(tasks []*deliveryTask, ch *channel, w *wrapper) []*deliveryTask {
	for el := ch.subs.Front(); el != nil; el = el.Next() {
		s := el.Value.(*Subscription)
		w.retain()
		s.retain()
		tasks = append(tasks, &deliveryTask{sub: s, wrap: w})
	}
	return tasks
}
