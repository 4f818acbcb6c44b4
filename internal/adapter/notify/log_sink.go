package notify

import (
	"context"
	"log"

	"github.com/moodify-shop/moodify/internal/core/domain"
)

// LogSink writes toasts to the process log. Used when no pub/sub transport
// is configured, and as the quiet default in tools.
type LogSink struct{}

func NewLogSink() *LogSink { return &LogSink{} }

func (*LogSink) Publish(_ context.Context, n domain.Notification) error {
	log.Printf("toast [%s] %s", n.Kind, n.Message)
	return nil
}
