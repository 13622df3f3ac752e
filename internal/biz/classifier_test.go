package biz

import (
	"testing"

	"go-linktrack/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHost = "example.com"

func TestClassifier_Classify(t *testing.T) {
	events := NewClassifier(domain.EventsConfig(), testHost)
	pageviews := NewClassifier(domain.EventsWithPageviewsConfig(), testHost)
	downloads := NewClassifier(domain.DownloadsOnlyConfig(), testHost)

	tests := []struct {
		name       string
		classifier *Classifier
		attrs      domain.LinkAttributes
		want       domain.Category
	}{
		{name: "absolute link to other host", classifier: events, attrs: domain.LinkAttributes{Href: "https://other.org/page"}, want: domain.External},
		{name: "http scheme to other host", classifier: events, attrs: domain.LinkAttributes{Href: "http://other.org"}, want: domain.External},
		{name: "absolute link to own host", classifier: events, attrs: domain.LinkAttributes{Href: "http://example.com/page"}, want: domain.Internal},
		{name: "own host in other case", classifier: events, attrs: domain.LinkAttributes{Href: "HTTPS://EXAMPLE.COM/x"}, want: domain.Internal},
		{name: "rel external overrides download", classifier: events, attrs: domain.LinkAttributes{Href: "report.pdf", Rel: "external"}, want: domain.External},
		{name: "rel with several tokens", classifier: events, attrs: domain.LinkAttributes{Href: "/about", Rel: "nofollow external"}, want: domain.External},
		{name: "host as prefix of other domain is same-site", classifier: events, attrs: domain.LinkAttributes{Href: "https://example.com.evil.com/x"}, want: domain.Internal},
		{name: "host in query string is same-site", classifier: events, attrs: domain.LinkAttributes{Href: "https://evil.com/?ref=example.com"}, want: domain.Internal},
		{name: "external file is external", classifier: events, attrs: domain.LinkAttributes{Href: "https://other.org/file.zip"}, want: domain.External},
		{name: "relative download", classifier: events, attrs: domain.LinkAttributes{Href: "files/setup.EXE"}, want: domain.Download},
		{name: "same-site absolute download", classifier: events, attrs: domain.LinkAttributes{Href: "https://example.com/a/deck.pptx"}, want: domain.Download},
		{name: "pdf is a download without pageview group", classifier: events, attrs: domain.LinkAttributes{Href: "docs/file.pdf"}, want: domain.Download},
		{name: "pdf is a pageview with pageview group", classifier: pageviews, attrs: domain.LinkAttributes{Href: "docs/file.pdf"}, want: domain.Pageview},
		{name: "txt is a pageview with pageview group", classifier: pageviews, attrs: domain.LinkAttributes{Href: "NOTES.TXT"}, want: domain.Pageview},
		{name: "zip stays a download with pageview group", classifier: pageviews, attrs: domain.LinkAttributes{Href: "a.zip"}, want: domain.Download},
		{name: "extension must end the href", classifier: events, attrs: domain.LinkAttributes{Href: "file.pdf?download=1"}, want: domain.Internal},
		{name: "email", classifier: events, attrs: domain.LinkAttributes{Href: "mailto:jane@example.com"}, want: domain.Email},
		{name: "email upper case", classifier: events, attrs: domain.LinkAttributes{Href: "MAILTO:jane@other.org"}, want: domain.Email},
		{name: "phone", classifier: events, attrs: domain.LinkAttributes{Href: "tel:+15551234567"}, want: domain.Phone},
		{name: "empty href", classifier: events, attrs: domain.LinkAttributes{}, want: domain.Internal},
		{name: "fragment", classifier: events, attrs: domain.LinkAttributes{Href: "#top"}, want: domain.Internal},
		{name: "relative page", classifier: pageviews, attrs: domain.LinkAttributes{Href: "/about.html"}, want: domain.Internal},
		{name: "downloads only: local file", classifier: downloads, attrs: domain.LinkAttributes{Href: "a.zip"}, want: domain.Download},
		{name: "downloads only: pdf", classifier: downloads, attrs: domain.LinkAttributes{Href: "a.pdf"}, want: domain.Download},
		{name: "downloads only: external file ignored", classifier: downloads, attrs: domain.LinkAttributes{Href: "https://other.org/a.zip"}, want: domain.Internal},
		{name: "downloads only: rel external ignored", classifier: downloads, attrs: domain.LinkAttributes{Href: "a.zip", Rel: "external"}, want: domain.Internal},
		{name: "downloads only: email ignored", classifier: downloads, attrs: domain.LinkAttributes{Href: "mailto:jane@example.com"}, want: domain.Internal},
		{name: "downloads only: phone ignored", classifier: downloads, attrs: domain.LinkAttributes{Href: "tel:123"}, want: domain.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.classifier.Classify(tt.attrs))
		})
	}
}

func TestClassifier_ClassifyIsIdempotent(t *testing.T) {
	c := NewClassifier(domain.EventsWithPageviewsConfig(), testHost)
	attrs := domain.LinkAttributes{Href: "report.PDF", Rel: "", Target: "_self"}

	first := c.Classify(attrs)
	second := c.Classify(attrs)

	assert.Equal(t, first, second)
	assert.Equal(t, domain.Pageview, first)
}

func TestClassifier_CaseInsensitiveExtensions(t *testing.T) {
	c := NewClassifier(domain.EventsConfig(), testHost)

	assert.Equal(t,
		c.Classify(domain.LinkAttributes{Href: "file.pdf"}),
		c.Classify(domain.LinkAttributes{Href: "FILE.PDF"}),
	)
}

func TestClassifier_PdfNeverDownloadWithPageviewGroup(t *testing.T) {
	c := NewClassifier(domain.EventsWithPageviewsConfig(), testHost)

	for _, href := range []string{"a.pdf", "A.PDF", "/x/y/z.Pdf", "https://example.com/r.pdf"} {
		assert.NotEqual(t, domain.Download, c.Classify(domain.LinkAttributes{Href: href}), href)
	}
}

func TestClassifier_EmptyHostNeverExternalByScheme(t *testing.T) {
	c := NewClassifier(domain.EventsConfig(), "")

	assert.Equal(t, domain.Internal, c.Classify(domain.LinkAttributes{Href: "https://other.org"}))
	assert.Equal(t, domain.External, c.Classify(domain.LinkAttributes{Href: "https://other.org", Rel: "external"}))
}

func TestFileName(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{href: "a/b/c.pdf", want: "c.pdf"},
		{href: "c.pdf", want: "c.pdf"},
		{href: "https://example.com/files/setup.exe", want: "setup.exe"},
		{href: "dir/", want: ""},
		{href: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.href))
		})
	}
}

func TestClassifier_FileExtension(t *testing.T) {
	events := NewClassifier(domain.EventsConfig(), testHost)
	pageviews := NewClassifier(domain.EventsWithPageviewsConfig(), testHost)

	ext, err := events.FileExtension("report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "PDF", ext)

	ext, err = pageviews.FileExtension("notes.Txt")
	require.NoError(t, err)
	assert.Equal(t, "TXT", ext)

	ext, err = pageviews.FileExtension("budget.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "XLSX", ext)

	_, err = events.FileExtension("index.html")
	assert.ErrorIs(t, err, domain.ErrExtensionMismatch)
}

func TestClassifier_FileRef(t *testing.T) {
	c := NewClassifier(domain.EventsConfig(), testHost)

	ref, err := c.FileRef("/media/song.MP3")

	require.NoError(t, err)
	assert.Equal(t, domain.FileRef{Name: "song.MP3", Extension: "MP3"}, ref)
}

func TestClassifier_ZeroConfigTracksNothing(t *testing.T) {
	c := NewClassifier(domain.ClassificationConfig{}, testHost)

	assert.Equal(t, domain.Internal, c.Classify(domain.LinkAttributes{Href: "file."}))
	assert.Equal(t, domain.Internal, c.Classify(domain.LinkAttributes{Href: "report.pdf"}))
	assert.Equal(t, domain.Internal, c.Classify(domain.LinkAttributes{Href: "https://other.org"}))
}

func TestStripPrefixes(t *testing.T) {
	assert.Equal(t, "team@example.com", StripEmailPrefix("MailTo:team@example.com"))
	assert.Equal(t, "x@mailto:y", StripEmailPrefix("x@mailto:y"))
	assert.Equal(t, "+15551234", StripPhonePrefix("TEL:+15551234"))
	assert.Equal(t, "555", StripPhonePrefix("555"))
}
