package notify

import (
	"context"

	"loyalty-system/internal/common/logger"
	"loyalty-system/internal/connections/rabbitmq"
)

// Run consumes every loyalty event from the notifications queue and logs it.
// Blocks until ctx is canceled or the delivery channel closes.
func Run(ctx context.Context, client *rabbitmq.Client, lg *logger.Logger) error {
	if err := client.DeclareAll(); err != nil {
		return err
	}
	deliveries, err := client.Consume(rabbitmq.NotificationsQueue, "notification-subscriber", 1)
	if err != nil {
		return err
	}
	lg.Info("subscriber_started", map[string]any{"queue": rabbitmq.NotificationsQueue})

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			lg.Info("notification_received", map[string]any{
				"routing_key": d.RoutingKey,
				"body":        string(d.Body),
			})
			_ = d.Ack(false)
		}
	}
}
