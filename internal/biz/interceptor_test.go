package biz

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"go-linktrack/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// callLog records sink and navigator calls in the order they happen.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type fakeSink struct{ log *callLog }

func (s *fakeSink) EmitEvent(_ context.Context, category, action, label string) {
	s.log.add("event %s|%s|%s", category, action, label)
}

func (s *fakeSink) EmitPageview(_ context.Context, path string) {
	s.log.add("pageview %s", path)
}

type fakeNavigator struct{ log *callLog }

func (n *fakeNavigator) NavigateAfter(destination string, delay time.Duration) {
	n.log.add("navigate %s after %s", destination, delay)
}

func newTestInterceptor(t *testing.T, cfg domain.ClassificationConfig) (*Interceptor, *callLog) {
	t.Helper()
	calls := &callLog{}
	i, err := NewInterceptor(
		NewClassifier(cfg, testHost),
		NewRecordBuilder(cfg, "/base/"),
		&fakeSink{log: calls},
		&fakeNavigator{log: calls},
		log.DefaultLogger,
	)
	require.NoError(t, err)
	return i, calls
}

func TestNewInterceptor_RequiresCapabilities(t *testing.T) {
	cfg := domain.EventsConfig()
	classifier := NewClassifier(cfg, testHost)
	builder := NewRecordBuilder(cfg, "")

	_, err := NewInterceptor(classifier, builder, nil, &fakeNavigator{log: &callLog{}}, log.DefaultLogger)
	assert.ErrorIs(t, err, ErrSinkUnavailable)

	_, err = NewInterceptor(classifier, builder, &fakeSink{log: &callLog{}}, nil, log.DefaultLogger)
	assert.ErrorIs(t, err, ErrNavigatorUnavailable)
}

func TestInterceptor_HandleClick(t *testing.T) {
	tests := []struct {
		name      string
		cfg       domain.ClassificationConfig
		attrs     domain.LinkAttributes
		wantCalls []string
		wantCat   domain.Category
	}{
		{
			name:    "external link is emitted then deferred",
			cfg:     domain.EventsConfig(),
			attrs:   domain.LinkAttributes{Href: "https://other.org/x"},
			wantCat: domain.External,
			wantCalls: []string{
				"event Link clicks|External link|https://other.org/x",
				"navigate https://other.org/x after 400ms",
			},
		},
		{
			name:    "download destination carries base path",
			cfg:     domain.EventsConfig(),
			attrs:   domain.LinkAttributes{Href: "files/report.pdf"},
			wantCat: domain.Download,
			wantCalls: []string{
				"event Downloads|PDF download|report.pdf",
				"navigate /base/files/report.pdf after 400ms",
			},
		},
		{
			name:    "pageview goes to the pageview call",
			cfg:     domain.EventsWithPageviewsConfig(),
			attrs:   domain.LinkAttributes{Href: "files/report.pdf"},
			wantCat: domain.Pageview,
			wantCalls: []string{
				"pageview /PDF/report.pdf",
				"navigate /base/files/report.pdf after 400ms",
			},
		},
		{
			name:    "email label has prefix stripped",
			cfg:     domain.EventsConfig(),
			attrs:   domain.LinkAttributes{Href: "mailto:jane@example.com"},
			wantCat: domain.Email,
			wantCalls: []string{
				"event Link clicks|Email link|jane@example.com",
				"navigate mailto:jane@example.com after 400ms",
			},
		},
		{
			name:    "phone label has prefix stripped",
			cfg:     domain.EventsConfig(),
			attrs:   domain.LinkAttributes{Href: "tel:+15551234567", Target: "_self"},
			wantCat: domain.Phone,
			wantCalls: []string{
				"event Link clicks|Telephone link|+15551234567",
				"navigate tel:+15551234567 after 400ms",
			},
		},
		{
			name:      "new tab is emitted but not deferred",
			cfg:       domain.EventsConfig(),
			attrs:     domain.LinkAttributes{Href: "https://other.org/x", Target: "_BLANK"},
			wantCat:   domain.External,
			wantCalls: []string{"event Link clicks|External link|https://other.org/x"},
		},
		{
			name:    "internal link does nothing",
			cfg:     domain.EventsConfig(),
			attrs:   domain.LinkAttributes{Href: "/about"},
			wantCat: domain.Internal,
		},
		{
			name:    "download-only ignores external links",
			cfg:     domain.DownloadsOnlyConfig(),
			attrs:   domain.LinkAttributes{Href: "https://other.org/x"},
			wantCat: domain.Internal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			sut, calls := newTestInterceptor(t, tt.cfg)

			// Act
			decision := sut.HandleClick(context.Background(), tt.attrs)

			// Assert
			assert.Equal(t, tt.wantCat, decision.Category)
			assert.Equal(t, tt.wantCalls, calls.all())
		})
	}
}

func TestInterceptor_DecisionForDeferredNavigation(t *testing.T) {
	sut, _ := newTestInterceptor(t, domain.EventsConfig())

	decision := sut.HandleClick(context.Background(), domain.LinkAttributes{Href: "a.zip"})

	assert.True(t, decision.Tracked())
	assert.True(t, decision.PreventDefault)
	assert.Equal(t, "/base/a.zip", decision.Destination)
	assert.Equal(t, 400*time.Millisecond, decision.Delay)
	require.NotNil(t, decision.Record)
	assert.Equal(t, "ZIP download", decision.Record.Action)
}

func TestInterceptor_DecisionForNewTab(t *testing.T) {
	sut, _ := newTestInterceptor(t, domain.EventsConfig())

	decision := sut.HandleClick(context.Background(), domain.LinkAttributes{Href: "a.zip", Target: "_blank"})

	assert.True(t, decision.Tracked())
	assert.False(t, decision.PreventDefault)
	assert.Empty(t, decision.Destination)
	assert.Zero(t, decision.Delay)
}

func TestInterceptor_DecisionForInternal(t *testing.T) {
	sut, _ := newTestInterceptor(t, domain.EventsConfig())

	decision := sut.HandleClick(context.Background(), domain.LinkAttributes{})

	assert.False(t, decision.Tracked())
	assert.False(t, decision.PreventDefault)
	assert.Nil(t, decision.Record)
}

func TestInterceptor_EachClickSchedulesItsOwnNavigation(t *testing.T) {
	sut, calls := newTestInterceptor(t, domain.EventsConfig())

	sut.HandleClick(context.Background(), domain.LinkAttributes{Href: "a.zip"})
	sut.HandleClick(context.Background(), domain.LinkAttributes{Href: "b.zip"})

	assert.Equal(t, []string{
		"event Downloads|ZIP download|a.zip",
		"navigate /base/a.zip after 400ms",
		"event Downloads|ZIP download|b.zip",
		"navigate /base/b.zip after 400ms",
	}, calls.all())
}
