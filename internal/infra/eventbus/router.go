package eventbus

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EventHandler consumes one kind of tracked-click event from LinkEventsTopic.
type EventHandler interface {
	// HandlerName must be unique within a Router.
	HandlerName() string
	// EventName selects the envelopes delivered to Handle.
	EventName() string
	Handle(ctx context.Context, envelope *EventEnvelope) error
}

// Router subscribes each registered handler to LinkEventsTopic. Every
// handler sees every message and keeps only its own event name.
type Router struct {
	router   *message.Router
	eventBus *EventBus
	logger   watermill.LoggerAdapter
}

func NewRouter(eventBus *EventBus, logger watermill.LoggerAdapter) (*Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return nil, err
	}
	return &Router{
		router:   router,
		eventBus: eventBus,
		logger:   logger,
	}, nil
}

// AddHandler must be called before Run.
func (r *Router) AddHandler(handler EventHandler) {
	r.router.AddNoPublisherHandler(
		handler.HandlerName(),
		LinkEventsTopic,
		r.eventBus.Subscriber(),
		r.dispatch(handler),
	)
}

func (r *Router) dispatch(handler EventHandler) message.NoPublishHandlerFunc {
	fields := watermill.LogFields{"handler": handler.HandlerName()}

	return func(msg *message.Message) error {
		envelope, err := MessageToEnvelope(msg)
		if err != nil {
			// acked: a malformed envelope never decodes on redelivery
			r.logger.Error("dropping undecodable link event", err, fields.Add(watermill.LogFields{"message_uuid": msg.UUID}))
			return nil
		}
		if envelope.EventName != handler.EventName() {
			return nil
		}

		if err := handler.Handle(msg.Context(), envelope); err != nil {
			r.logger.Error("link event handler failed", err, fields.Add(watermill.LogFields{
				"event_name": envelope.EventName,
				"event_id":   envelope.EventID,
				"subject":    envelope.AggregateID,
			}))
			return err
		}
		return nil
	}
}

// Run blocks until ctx is cancelled or Close is called.
func (r *Router) Run(ctx context.Context) error {
	return r.router.Run(ctx)
}

// Running is closed once all handlers are subscribed.
func (r *Router) Running() chan struct{} {
	return r.router.Running()
}

func (r *Router) Close() error {
	return r.router.Close()
}
