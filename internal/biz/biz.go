package biz

import (
	"errors"
	"fmt"

	"go-linktrack/internal/conf"
	"go-linktrack/internal/domain"

	"github.com/google/wire"
	"github.com/samber/lo"
)

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(
	NewClassificationConfig,
	ProvideClassifier,
	ProvideRecordBuilder,
	NewClientNavigator,
	NewInterceptor,
	NewStatsUsecase,
)

const (
	VariantDownloads       = "downloads"
	VariantEvents          = "events"
	VariantEventsPageviews = "events_pageviews"
)

var ErrUnknownVariant = errors.New("unknown tracking variant")

// PresetConfig returns the classification preset for a variant name.
// An empty name selects the events-with-pageviews preset.
func PresetConfig(variant string) (domain.ClassificationConfig, error) {
	switch variant {
	case VariantDownloads:
		return domain.DownloadsOnlyConfig(), nil
	case VariantEvents:
		return domain.EventsConfig(), nil
	case VariantEventsPageviews, "":
		return domain.EventsWithPageviewsConfig(), nil
	default:
		return domain.ClassificationConfig{}, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
}

// NewClassificationConfig builds the configuration from the tracking
// settings: the variant preset, with any extension groups or default
// category given in c replacing the preset's.
func NewClassificationConfig(c *conf.Tracking) (domain.ClassificationConfig, error) {
	if c == nil {
		return domain.EventsWithPageviewsConfig(), nil
	}
	preset, err := PresetConfig(c.Variant)
	if err != nil {
		return domain.ClassificationConfig{}, err
	}
	if len(c.DownloadExtensions) == 0 && len(c.PageviewExtensions) == 0 && c.DefaultCategory == "" {
		return preset, nil
	}

	download := lo.Ternary(len(c.DownloadExtensions) > 0, c.DownloadExtensions, preset.DownloadExtensions())
	pageview := lo.Ternary(len(c.PageviewExtensions) > 0, c.PageviewExtensions, preset.PageviewExtensions())

	return domain.NewClassificationConfig(download, pageview, preset.TrackOutbound(), c.DefaultCategory)
}

// ProvideClassifier builds the classifier for the configured page host.
func ProvideClassifier(cfg domain.ClassificationConfig, c *conf.Tracking) *Classifier {
	var host string
	if c != nil {
		host = c.Host
	}
	return NewClassifier(cfg, host)
}

// ProvideRecordBuilder builds the record builder for the configured base href.
func ProvideRecordBuilder(cfg domain.ClassificationConfig, c *conf.Tracking) *RecordBuilder {
	var base string
	if c != nil {
		base = c.BaseHref
	}
	return NewRecordBuilder(cfg, base)
}
