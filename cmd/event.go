package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/loanlink/internal/core/events"
	"github.com/frahmantamala/loanlink/pkg/logger"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event bus commands",
	Long:  `Inspect the in-process event bus by publishing the payment lifecycle events with sample payloads.`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [checkout.created|payment.reconciled|payment.skipped]",
	Short: "Publish a payment lifecycle event",
	Long:  `Publish one of the payment lifecycle events to a bus with a debug subscriber, to verify handler wiring and payload shapes.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishLifecycleEvent(args[0])
	},
}

var (
	eventSessionID  string
	eventSkipReason string
)

func publishLifecycleEvent(eventType string) error {
	logger := logger.LoggerWrapper()

	sessionID := eventSessionID
	if sessionID == "" {
		sessionID = "cs_debug_" + uuid.NewString()
	}

	var event events.Event
	switch eventType {
	case events.EventTypeCheckoutCreated:
		event = events.NewCheckoutCreatedEvent(sessionID, uuid.NewString(), "borrower@loanlink.dev")
	case events.EventTypePaymentReconciled:
		event = events.NewPaymentReconciledEvent(uuid.NewString(), sessionID, "pi_debug_"+uuid.NewString(), uuid.NewString(), "10")
	case events.EventTypePaymentSkipped:
		event = events.NewPaymentSkippedEvent(sessionID, eventSkipReason)
	default:
		return fmt.Errorf("unknown event type %q", eventType)
	}

	eventBus := events.NewEventBus(logger)
	eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		logger.Info("debug subscriber received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	logger.Info("publishing event", "event_type", eventType, "event_id", event.EventID(), "session_id", sessionID)

	if err := eventBus.PublishSync(context.Background(), event); err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}

	logger.Info("event delivered")
	return nil
}

func init() {
	publishEventCmd.Flags().StringVar(&eventSessionID, "session", "", "Checkout session id to stamp on the event")
	publishEventCmd.Flags().StringVar(&eventSkipReason, "reason", "not_paid", "Skip reason for payment.skipped")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
