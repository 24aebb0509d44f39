package pubsub

// clusterEngine is the stub standing in for a cross-process transport. It
// marks the architectural seam where a real cluster backend would be
// substituted: its notification hooks accept channel events silently and
// its publish always fails.
type clusterEngine struct{}

func (e *clusterEngine) Subscribe(channel string, pattern bool)   {}
func (e *clusterEngine) Unsubscribe(channel string, pattern bool) {}

func (e *clusterEngine) Publish(channel string, payload []byte) error {
	return ErrClusterUnreachable
}
