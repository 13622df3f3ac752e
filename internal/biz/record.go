package biz

import (
	"errors"
	"fmt"

	"go-linktrack/internal/domain"
)

// ErrNotTracked is returned when a record is requested for an Internal link.
var ErrNotTracked = errors.New("category is not tracked")

const downloadsCategory = "Downloads"

// RecordBuilder turns a classified click into the record handed to the sink.
type RecordBuilder struct {
	basePath        string
	defaultCategory string
}

// NewRecordBuilder creates a builder. basePath is the document's declared
// base href, or "" when it has none.
func NewRecordBuilder(cfg domain.ClassificationConfig, basePath string) *RecordBuilder {
	return &RecordBuilder{
		basePath:        basePath,
		defaultCategory: cfg.DefaultCategory(),
	}
}

// Build creates the record for category. file is required for Download and
// Pageview and ignored otherwise.
func (b *RecordBuilder) Build(category domain.Category, attrs domain.LinkAttributes, file domain.FileRef) (domain.EventRecord, error) {
	href := attrs.Href

	switch category {
	case domain.External:
		return b.event("", "External link", href, href), nil
	case domain.Download:
		if file.Extension == "" {
			return domain.EventRecord{}, fmt.Errorf("%w: %q", domain.ErrExtensionMismatch, href)
		}
		return b.event(downloadsCategory, file.Extension+" download", file.Name, b.basePath+href), nil
	case domain.Pageview:
		if file.Extension == "" {
			return domain.EventRecord{}, fmt.Errorf("%w: %q", domain.ErrExtensionMismatch, href)
		}
		return domain.EventRecord{
			Kind:        domain.KindPageview,
			Category:    "/" + file.Extension + "/" + file.Name,
			Destination: b.basePath + href,
		}, nil
	case domain.Email:
		return b.event("", "Email link", StripEmailPrefix(href), href), nil
	case domain.Phone:
		return b.event("", "Telephone link", StripPhonePrefix(href), href), nil
	default:
		return domain.EventRecord{}, fmt.Errorf("%w: %s", ErrNotTracked, category)
	}
}

func (b *RecordBuilder) event(category, action, label, destination string) domain.EventRecord {
	if category == "" {
		category = b.defaultCategory
	}
	return domain.EventRecord{
		Kind:        domain.KindEvent,
		Category:    category,
		Action:      action,
		Label:       label,
		Destination: destination,
	}
}
