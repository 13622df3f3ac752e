package biz

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-linktrack/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
)

// NavigationDelay is how long navigation is held back after a tracked click
// so the sink can flush. It is a heuristic: navigation happens when it
// elapses whether or not the sink has finished.
const NavigationDelay = 400 * time.Millisecond

var (
	ErrSinkUnavailable      = errors.New("analytics sink unavailable")
	ErrNavigatorUnavailable = errors.New("navigator unavailable")
)

// Decision is the outcome of handling one click.
type Decision struct {
	Category domain.Category
	// Record is nil for Internal links.
	Record *domain.EventRecord
	// PreventDefault is set when default navigation must be suppressed
	// and a deferred navigation to Destination was scheduled.
	PreventDefault bool
	Destination    string
	Delay          time.Duration
}

// Tracked reports whether the click was emitted to the sink.
func (d Decision) Tracked() bool {
	return d.Record != nil
}

// Interceptor handles click notifications: classify, build the record,
// emit it, then decide about navigation.
type Interceptor struct {
	classifier *Classifier
	builder    *RecordBuilder
	sink       Sink
	navigator  Navigator
	log        *log.Helper
}

// NewInterceptor wires the click pipeline. Both the sink and the navigator
// are required; without them tracking stays off entirely.
func NewInterceptor(classifier *Classifier, builder *RecordBuilder, sink Sink, navigator Navigator, logger log.Logger) (*Interceptor, error) {
	if sink == nil {
		return nil, ErrSinkUnavailable
	}
	if navigator == nil {
		return nil, ErrNavigatorUnavailable
	}
	return &Interceptor{
		classifier: classifier,
		builder:    builder,
		sink:       sink,
		navigator:  navigator,
		log:        log.NewHelper(logger),
	}, nil
}

// HandleClick processes one click. Emission always happens before the
// deferred navigation is scheduled. Any internal fault leaves the click
// untouched, as if the link were Internal.
func (i *Interceptor) HandleClick(ctx context.Context, attrs domain.LinkAttributes) Decision {
	category := i.classifier.Classify(attrs)
	if !category.Tracked() {
		return Decision{Category: domain.Internal}
	}

	var file domain.FileRef
	if category == domain.Download || category == domain.Pageview {
		ref, err := i.classifier.FileRef(attrs.Href)
		if err != nil {
			i.log.WithContext(ctx).Errorf("classified %s but extraction failed: %v", category, err)
			return Decision{Category: domain.Internal}
		}
		file = ref
	}

	record, err := i.builder.Build(category, attrs, file)
	if err != nil {
		i.log.WithContext(ctx).Errorf("failed to build record for %q: %v", attrs.Href, err)
		return Decision{Category: domain.Internal}
	}

	i.emit(ctx, record)

	decision := Decision{Category: category, Record: &record}
	if strings.EqualFold(attrs.Target, "_blank") {
		return decision
	}

	decision.PreventDefault = true
	decision.Destination = record.Destination
	decision.Delay = NavigationDelay
	i.navigator.NavigateAfter(record.Destination, NavigationDelay)

	return decision
}

func (i *Interceptor) emit(ctx context.Context, record domain.EventRecord) {
	if record.IsPageview() {
		i.sink.EmitPageview(ctx, record.Category)
		return
	}
	i.sink.EmitEvent(ctx, record.Category, record.Action, record.Label)
}
