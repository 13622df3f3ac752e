package biz

import (
	"fmt"
	"regexp"
	"strings"

	"go-linktrack/internal/domain"
)

var (
	schemePattern = regexp.MustCompile(`(?i)^https?://`)
	emailPattern  = regexp.MustCompile(`(?i)^mailto:`)
	phonePattern  = regexp.MustCompile(`(?i)^tel:`)
)

// Classifier assigns exactly one Category to a clicked link.
//
// Rules are tried in a fixed order and the first match wins:
// external, download, pageview, email, phone. Anything else is Internal.
// A Classifier is immutable and safe for concurrent use.
type Classifier struct {
	cfg      domain.ClassificationConfig
	host     string
	download *regexp.Regexp
	pageview *regexp.Regexp
}

// NewClassifier builds a classifier for a page served from host.
func NewClassifier(cfg domain.ClassificationConfig, host string) *Classifier {
	c := &Classifier{
		cfg:      cfg,
		host:     strings.ToLower(host),
		download: extensionRegexp(cfg.DownloadExtensions()),
	}
	if cfg.HasPageviews() {
		c.pageview = extensionRegexp(cfg.PageviewExtensions())
	}
	return c
}

// extensionRegexp returns nil for an empty group.
func extensionRegexp(exts []string) *regexp.Regexp {
	if len(exts) == 0 {
		return nil
	}
	quoted := make([]string, len(exts))
	for i, ext := range exts {
		quoted[i] = regexp.QuoteMeta(ext)
	}
	return regexp.MustCompile(`(?i)\.(` + strings.Join(quoted, "|") + `)$`)
}

// Config returns the configuration the classifier was built with.
func (c *Classifier) Config() domain.ClassificationConfig {
	return c.cfg
}

// Classify returns the category of the link.
func (c *Classifier) Classify(attrs domain.LinkAttributes) domain.Category {
	href := attrs.Href

	if c.IsExternal(href, attrs.Rel) {
		// Download-only tracking ignores external links entirely,
		// including external files.
		if !c.cfg.TrackOutbound() {
			return domain.Internal
		}
		return domain.External
	}
	if c.download != nil && c.download.MatchString(href) {
		return domain.Download
	}
	if c.pageview != nil && c.pageview.MatchString(href) {
		return domain.Pageview
	}
	if !c.cfg.TrackOutbound() {
		return domain.Internal
	}
	if emailPattern.MatchString(href) {
		return domain.Email
	}
	if phonePattern.MatchString(href) {
		return domain.Phone
	}
	return domain.Internal
}

// IsExternal reports whether the link is marked rel="external" or is an
// absolute http(s) URL that does not contain the page host.
//
// The host test is a case-insensitive substring match over the whole href,
// not a comparison of the parsed authority: "https://a.org/?ref=example.com"
// counts as same-site on example.com.
func (c *Classifier) IsExternal(href, rel string) bool {
	if strings.Contains(rel, "external") {
		return true
	}
	return schemePattern.MatchString(href) &&
		!strings.Contains(strings.ToLower(href), c.host)
}

// FileName returns the last "/"-delimited segment of href.
func FileName(href string) string {
	return href[strings.LastIndex(href, "/")+1:]
}

// FileExtension returns the upper-cased recognized extension of fileName,
// trying the download group before the pageview group.
func (c *Classifier) FileExtension(fileName string) (string, error) {
	for _, re := range []*regexp.Regexp{c.download, c.pageview} {
		if re == nil {
			continue
		}
		if m := re.FindStringSubmatch(fileName); m != nil {
			return strings.ToUpper(m[1]), nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrExtensionMismatch, fileName)
}

// FileRef extracts the file name and extension of a download or pageview link.
func (c *Classifier) FileRef(href string) (domain.FileRef, error) {
	name := FileName(href)
	ext, err := c.FileExtension(name)
	if err != nil {
		return domain.FileRef{}, err
	}
	return domain.FileRef{Name: name, Extension: ext}, nil
}

// StripEmailPrefix removes a leading "mailto:" in any case.
func StripEmailPrefix(href string) string {
	return emailPattern.ReplaceAllString(href, "")
}

// StripPhonePrefix removes a leading "tel:" in any case.
func StripPhonePrefix(href string) string {
	return phonePattern.ReplaceAllString(href, "")
}
