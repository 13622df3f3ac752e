package biz

import (
	"context"
	"encoding/json"

	"go-linktrack/internal/domain"
	"go-linktrack/internal/domain/event"
	"go-linktrack/internal/infra/eventbus"

	"github.com/go-kratos/kratos/v2/log"
)

// Compile-time interface checks
var (
	_ eventbus.EventHandler = (*LoggingEventHandler)(nil)
	_ eventbus.EventHandler = (*RecordEventHandler)(nil)
)

// TrackedEventNames lists every event the click pipeline publishes.
var TrackedEventNames = []string{
	event.LinkEventTrackedName,
	event.PageviewTrackedName,
}

// LoggingEventHandler logs tracked events.
type LoggingEventHandler struct {
	log       *log.Helper
	eventName string
}

// NewLoggingEventHandler creates a new logging event handler.
func NewLoggingEventHandler(logger log.Logger, eventName string) *LoggingEventHandler {
	return &LoggingEventHandler{
		log:       log.NewHelper(logger),
		eventName: eventName,
	}
}

func (h *LoggingEventHandler) HandlerName() string {
	return "logging_handler_" + h.eventName
}

func (h *LoggingEventHandler) EventName() string {
	return h.eventName
}

func (h *LoggingEventHandler) Handle(ctx context.Context, envelope *eventbus.EventEnvelope) error {
	record, err := DecodeRecord(envelope)
	if err != nil {
		return err
	}
	if record == nil {
		h.log.WithContext(ctx).Debugf("[Event] %s: %s", envelope.EventName, envelope.AggregateID)
		return nil
	}
	if record.Kind == domain.KindPageview {
		h.log.WithContext(ctx).Infof("[Event] pageview %s", record.Category)
		return nil
	}
	h.log.WithContext(ctx).Infof("[Event] %s / %s / %s", record.Category, record.Action, record.Label)
	return nil
}

// RecordEventHandler persists tracked events.
type RecordEventHandler struct {
	repo      RecordRepo
	eventName string
	log       *log.Helper
}

// NewRecordEventHandler creates a handler storing eventName events in repo.
func NewRecordEventHandler(repo RecordRepo, eventName string, logger log.Logger) *RecordEventHandler {
	return &RecordEventHandler{
		repo:      repo,
		eventName: eventName,
		log:       log.NewHelper(logger),
	}
}

func (h *RecordEventHandler) HandlerName() string {
	return "record_handler_" + h.eventName
}

func (h *RecordEventHandler) EventName() string {
	return h.eventName
}

// Handle stores the record. Undecodable payloads are dropped so they are
// not redelivered forever.
func (h *RecordEventHandler) Handle(ctx context.Context, envelope *eventbus.EventEnvelope) error {
	record, err := DecodeRecord(envelope)
	if err != nil {
		h.log.WithContext(ctx).Warnf("failed to decode %s event: %v", envelope.EventName, err)
		return nil
	}
	if record == nil {
		return nil
	}
	if err := h.repo.Save(ctx, record); err != nil {
		h.log.WithContext(ctx).Warnf("failed to store record %s: %v", record.ID, err)
		return err
	}
	return nil
}

// DecodeRecord converts a tracked-event envelope into its stored form.
// Envelopes of other events yield nil.
func DecodeRecord(envelope *eventbus.EventEnvelope) (*domain.TrackedRecord, error) {
	switch envelope.EventName {
	case event.LinkEventTrackedName:
		var evt event.LinkEventTracked
		if err := json.Unmarshal(envelope.Payload, &evt); err != nil {
			return nil, err
		}
		return &domain.TrackedRecord{
			ID:         evt.EventID(),
			Kind:       domain.KindEvent,
			Category:   evt.Category,
			Action:     evt.Action,
			Label:      evt.Label,
			OccurredAt: evt.OccurredAt(),
		}, nil
	case event.PageviewTrackedName:
		var evt event.PageviewTracked
		if err := json.Unmarshal(envelope.Payload, &evt); err != nil {
			return nil, err
		}
		return &domain.TrackedRecord{
			ID:         evt.EventID(),
			Kind:       domain.KindPageview,
			Category:   evt.Path,
			OccurredAt: evt.OccurredAt(),
		}, nil
	default:
		return nil, nil
	}
}

// RegisterEventHandlers registers all event handlers with the router.
func RegisterEventHandlers(router *eventbus.Router, repo RecordRepo, logger log.Logger) {
	for _, eventName := range TrackedEventNames {
		router.AddHandler(NewLoggingEventHandler(logger, eventName))
		router.AddHandler(NewRecordEventHandler(repo, eventName, logger))
	}
}
