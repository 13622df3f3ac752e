package biz

import (
	"testing"

	"go-linktrack/internal/conf"
	"go-linktrack/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClassificationConfig_Presets(t *testing.T) {
	tests := []struct {
		variant      string
		wantOutbound bool
		wantPageview bool
	}{
		{variant: VariantDownloads, wantOutbound: false, wantPageview: false},
		{variant: VariantEvents, wantOutbound: true, wantPageview: false},
		{variant: VariantEventsPageviews, wantOutbound: true, wantPageview: true},
		{variant: "", wantOutbound: true, wantPageview: true},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			cfg, err := NewClassificationConfig(&conf.Tracking{Variant: tt.variant})

			require.NoError(t, err)
			assert.Equal(t, tt.wantOutbound, cfg.TrackOutbound())
			assert.Equal(t, tt.wantPageview, cfg.HasPageviews())
		})
	}
}

func TestNewClassificationConfig_UnknownVariant(t *testing.T) {
	_, err := NewClassificationConfig(&conf.Tracking{Variant: "everything"})

	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestNewClassificationConfig_Overrides(t *testing.T) {
	cfg, err := NewClassificationConfig(&conf.Tracking{
		Variant:            VariantEventsPageviews,
		DownloadExtensions: []string{"zip", "tar"},
		DefaultCategory:    "Clicks",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"zip", "tar"}, cfg.DownloadExtensions())
	assert.ElementsMatch(t, []string{"pdf", "txt"}, cfg.PageviewExtensions())
	assert.Equal(t, "Clicks", cfg.DefaultCategory())
}

func TestNewClassificationConfig_OverlappingOverrideRejected(t *testing.T) {
	_, err := NewClassificationConfig(&conf.Tracking{
		Variant:            VariantEventsPageviews,
		DownloadExtensions: []string{"zip", "pdf"},
	})

	assert.ErrorIs(t, err, domain.ErrOverlappingExtensions)
}

func TestNewClassificationConfig_BlankOverrideRejected(t *testing.T) {
	_, err := NewClassificationConfig(&conf.Tracking{
		Variant:            VariantEvents,
		DownloadExtensions: []string{"zip", " "},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidExtension)
}

func TestProvideClassifierAndBuilder(t *testing.T) {
	c := &conf.Tracking{Host: "example.com", BaseHref: "/docs/"}
	cfg := domain.EventsConfig()

	classifier := ProvideClassifier(cfg, c)
	builder := ProvideRecordBuilder(cfg, c)

	assert.Equal(t, domain.Internal, classifier.Classify(domain.LinkAttributes{Href: "https://example.com/"}))
	rec, err := builder.Build(domain.Download, domain.LinkAttributes{Href: "a.zip"}, domain.FileRef{Name: "a.zip", Extension: "ZIP"})
	require.NoError(t, err)
	assert.Equal(t, "/docs/a.zip", rec.Destination)
}
