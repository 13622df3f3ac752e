package data

import (
	"context"

	"go-linktrack/internal/biz"
	"go-linktrack/internal/domain/event"
	"go-linktrack/internal/infra/eventbus"

	"github.com/go-kratos/kratos/v2/log"
)

var _ biz.Sink = (*EventBusSink)(nil)

// EventBusSink publishes emitted records as events on the bus. Publish
// failures are logged and dropped.
type EventBusSink struct {
	bus *eventbus.EventBus
	log *log.Helper
}

// NewEventBusSink creates the bus-backed analytics sink.
func NewEventBusSink(bus *eventbus.EventBus, logger log.Logger) biz.Sink {
	return &EventBusSink{
		bus: bus,
		log: log.NewHelper(logger),
	}
}

func (s *EventBusSink) EmitEvent(ctx context.Context, category, action, label string) {
	s.publish(ctx, event.NewLinkEventTracked(category, action, label))
}

func (s *EventBusSink) EmitPageview(ctx context.Context, path string) {
	s.publish(ctx, event.NewPageviewTracked(path))
}

func (s *EventBusSink) publish(ctx context.Context, e event.Event) {
	if err := s.bus.Publish(ctx, e); err != nil {
		s.log.WithContext(ctx).Warnf("failed to publish %s: %v", e.EventName(), err)
	}
}
