package notify

import (
	"context"

	"notifybot/internal/domain"
	"notifybot/internal/metrics"
)

var sentCounter = metrics.Collector.Counter(
	"notifybot_messages_sent_total", "Messages delivered to the recipient")

// Deliver resolves the recipient on an already-connected client and
// transmits text as one direct message. One attempt, no retry; any
// failure is terminal for the run.
func Deliver(ctx context.Context, client domain.Sender, recipientID, text string) error {
	if err := client.Resolve(ctx, recipientID); err != nil {
		return err
	}
	if err := client.Send(ctx, text); err != nil {
		return err
	}
	sentCounter.Inc()
	return nil
}
