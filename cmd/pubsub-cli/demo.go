package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fanouthq/pubsub-go/pkg/pubsub"
)

func newDemoCommand() *cobra.Command {
	var (
		rooms    int
		messages int
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a local publish/subscribe demo",
		Long: `Run a local publish/subscribe demo: subscribes an exact channel per
room plus one pattern channel covering all of them, publishes a few
messages, then shows the default engine falling back to the cluster stub.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(rooms, messages)
		},
	}

	cmd.Flags().IntVar(&rooms, "rooms", 3, "Number of room channels")
	cmd.Flags().IntVar(&messages, "messages", 2, "Messages to publish per room")
	return cmd
}

func runDemo(rooms, messages int) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
	if verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}

	reg, err := pubsub.New(&pubsub.Config{Logger: &logger})
	if err != nil {
		return fmt.Errorf("failed to create registry: %w", err)
	}

	// One exact subscription per room.
	for i := 1; i <= rooms; i++ {
		room := fmt.Sprintf("room.%d", i)
		_, err := reg.Subscribe(pubsub.SubscribeArgs{
			Channel: room,
			OnMessage: func(m *pubsub.Message) {
				logger.Info().
					Str("channel", m.Channel).
					Str("via", m.Subscription.Channel()).
					Uint64("channel_id", pubsub.ChannelID(m.Channel)).
					Msg(string(m.Payload))
			},
		})
		if err != nil {
			return fmt.Errorf("failed to subscribe %s: %w", room, err)
		}
	}

	// One pattern subscription covering every room.
	_, err = reg.Subscribe(pubsub.SubscribeArgs{
		Channel: "room.*",
		Pattern: true,
		OnMessage: func(m *pubsub.Message) {
			logger.Info().
				Str("channel", m.Channel).
				Str("via", "room.* (pattern)").
				Msg(string(m.Payload))
		},
		OnUnsubscribe: func(u1, u2 any) {
			logger.Info().Msg("pattern subscription fully canceled")
		},
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe pattern: %w", err)
	}

	for i := 1; i <= rooms; i++ {
		for n := 0; n < messages; n++ {
			payload := []byte(fmt.Sprintf("message %s", uuid.NewString()))
			if err := reg.Publish(pubsub.PublishArgs{
				Channel: fmt.Sprintf("room.%d", i),
				Payload: payload,
			}); err != nil {
				return fmt.Errorf("publish failed: %w", err)
			}
		}
	}

	// Route no-engine publishes away from the process engine: they now hit
	// the cluster stub, which fails by contract.
	reg.SetDefaultEngine(nil)
	if err := reg.Publish(pubsub.PublishArgs{
		Channel: "room.1",
		Payload: []byte("going nowhere"),
	}); err != nil {
		logger.Info().Err(err).Msg("publish without a default engine")
	}

	// Close drains in-flight deliveries before returning.
	if err := reg.Close(); err != nil {
		return fmt.Errorf("failed to close registry: %w", err)
	}
	return nil
}
