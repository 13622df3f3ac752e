package domain

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/samber/lo"
)

// DefaultCategory is the event category used when a record leaves it unset.
const DefaultCategory = "Link clicks"

var (
	// baseDownloadExtensions are tracked as download events in every preset.
	baseDownloadExtensions = []string{
		"dmg", "exe",
		"rar", "zip",
		"mp3",
		"avi", "flv", "mov", "wav", "wma", "wmv",
		"doc", "docx", "xls", "xlsx", "ppt", "pptx",
	}
	// documentExtensions move between the download and pageview groups.
	documentExtensions = []string{"pdf", "txt"}

	extensionPattern = regexp.MustCompile(`^[a-z0-9]+$`)
)

// ClassificationConfig is the immutable set of recognized extension groups.
// Build one with NewClassificationConfig or a preset; the zero value tracks
// nothing.
type ClassificationConfig struct {
	downloadExtensions []string
	pageviewExtensions []string
	trackOutbound      bool
	defaultCategory    string
}

// NewClassificationConfig validates and normalizes the extension groups.
// Extensions are lower-cased and a leading dot is dropped. An extension
// present in both groups is rejected.
func NewClassificationConfig(download, pageview []string, trackOutbound bool, defaultCategory string) (ClassificationConfig, error) {
	download = normalizeExtensions(download)
	pageview = normalizeExtensions(pageview)

	if err := validation.Validate(download,
		validation.Required.Error("download extensions are required"),
		validation.Each(validation.Required, validation.Match(extensionPattern)),
	); err != nil {
		return ClassificationConfig{}, fmt.Errorf("%w: download: %v", ErrInvalidExtension, err)
	}
	if err := validation.Validate(pageview,
		validation.Each(validation.Required, validation.Match(extensionPattern)),
	); err != nil {
		return ClassificationConfig{}, fmt.Errorf("%w: pageview: %v", ErrInvalidExtension, err)
	}

	if overlap := lo.Intersect(download, pageview); len(overlap) > 0 {
		return ClassificationConfig{}, fmt.Errorf("%w: %s", ErrOverlappingExtensions, strings.Join(overlap, ", "))
	}

	if defaultCategory == "" {
		defaultCategory = DefaultCategory
	}

	return ClassificationConfig{
		downloadExtensions: download,
		pageviewExtensions: pageview,
		trackOutbound:      trackOutbound,
		defaultCategory:    defaultCategory,
	}, nil
}

func normalizeExtensions(exts []string) []string {
	normalized := lo.Map(exts, func(ext string, _ int) string {
		return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	})
	return lo.Uniq(normalized)
}

// DownloadsOnlyConfig tracks file downloads only, pdf and txt included.
func DownloadsOnlyConfig() ClassificationConfig {
	return mustConfig(lo.Flatten([][]string{baseDownloadExtensions, documentExtensions}), nil, false)
}

// EventsConfig tracks downloads, pdf and txt included, plus external,
// email and telephone links.
func EventsConfig() ClassificationConfig {
	return mustConfig(lo.Flatten([][]string{baseDownloadExtensions, documentExtensions}), nil, true)
}

// EventsWithPageviewsConfig is EventsConfig with pdf and txt reported as
// virtual pageviews instead of download events.
func EventsWithPageviewsConfig() ClassificationConfig {
	return mustConfig(baseDownloadExtensions, documentExtensions, true)
}

func mustConfig(download, pageview []string, trackOutbound bool) ClassificationConfig {
	cfg, err := NewClassificationConfig(download, pageview, trackOutbound, "")
	if err != nil {
		panic(err)
	}
	return cfg
}

// DownloadExtensions returns a copy of the download group.
func (c ClassificationConfig) DownloadExtensions() []string {
	return append([]string(nil), c.downloadExtensions...)
}

// PageviewExtensions returns a copy of the pageview group, empty when the
// configuration has none.
func (c ClassificationConfig) PageviewExtensions() []string {
	return append([]string(nil), c.pageviewExtensions...)
}

// HasPageviews reports whether a pageview group is configured.
func (c ClassificationConfig) HasPageviews() bool {
	return len(c.pageviewExtensions) > 0
}

// TrackOutbound reports whether external, email and telephone links are tracked.
func (c ClassificationConfig) TrackOutbound() bool {
	return c.trackOutbound
}

// DefaultCategory is the category label used when a record leaves it unset.
func (c ClassificationConfig) DefaultCategory() string {
	if c.defaultCategory == "" {
		return DefaultCategory
	}
	return c.defaultCategory
}
