package pubsub

import (
	"github.com/rs/zerolog"

	"github.com/fanouthq/pubsub-go/pkg/scheduler"
)

// Scheduler runs delivery and unsubscribe-notification tasks off the
// registry lock. *scheduler.Pool satisfies it.
type Scheduler interface {
	Schedule(t scheduler.Task) error
}

// Config holds configuration for a Registry.
type Config struct {
	// Scheduler executes deferred tasks. When nil, the registry creates
	// and owns a scheduler.Pool with default settings.
	Scheduler Scheduler

	// Logger receives registry diagnostics. When nil, logging is disabled.
	Logger *zerolog.Logger
}

// SetDefaults sets sensible default values for unset configuration fields.
func (c *Config) SetDefaults() {
	if c.Logger == nil {
		l := zerolog.Nop()
		c.Logger = &l
	}
}
