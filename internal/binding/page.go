// Package binding adapts an HTML document to the click pipeline: it reads
// the page's host and base href once, and resolves a clicked element to
// the attributes of its nearest enclosing anchor.
package binding

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"go-linktrack/internal/biz"
	"go-linktrack/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

var ErrNoAnchor = errors.New("element is not inside an anchor")

// ClickHandler receives click notifications for anchors.
type ClickHandler interface {
	HandleClick(ctx context.Context, attrs domain.LinkAttributes) biz.Decision
}

// Page is a parsed document. Host and BaseHref never change after LoadPage.
type Page struct {
	doc      *goquery.Document
	host     string
	baseHref string
}

// LoadPage parses the document served at pageURL.
func LoadPage(r io.Reader, pageURL string) (*Page, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Page{
		doc:      doc,
		host:     u.Host,
		baseHref: doc.Find("base").First().AttrOr("href", ""),
	}, nil
}

// Host is the host identity links are compared against.
func (p *Page) Host() string {
	return p.host
}

// BaseHref is the document's declared <base href>, or "".
func (p *Page) BaseHref() string {
	return p.baseHref
}

// Anchor returns the attributes of the anchor enclosing the first element
// matching selector. The element may be the anchor itself.
func (p *Page) Anchor(selector string) (domain.LinkAttributes, error) {
	sel := p.doc.Find(selector).First()
	if sel.Length() == 0 {
		return domain.LinkAttributes{}, fmt.Errorf("%w: no element matches %q", ErrNoAnchor, selector)
	}
	attrs, ok := AnchorAttributes(sel)
	if !ok {
		return domain.LinkAttributes{}, fmt.Errorf("%w: %q", ErrNoAnchor, selector)
	}
	return attrs, nil
}

// Anchors returns a snapshot of every anchor in document order.
func (p *Page) Anchors() []domain.LinkAttributes {
	var anchors []domain.LinkAttributes
	p.doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		anchors = append(anchors, snapshot(s))
	})
	return anchors
}

// Click delivers a click on the element matching selector to handler.
// Clicks outside any anchor are not delivered.
func (p *Page) Click(ctx context.Context, selector string, handler ClickHandler) (biz.Decision, error) {
	attrs, err := p.Anchor(selector)
	if err != nil {
		return biz.Decision{}, err
	}
	return handler.HandleClick(ctx, attrs), nil
}

// AnchorAttributes resolves sel to its nearest enclosing anchor.
func AnchorAttributes(sel *goquery.Selection) (domain.LinkAttributes, bool) {
	anchor := sel.Closest("a")
	if anchor.Length() == 0 {
		return domain.LinkAttributes{}, false
	}
	return snapshot(anchor), true
}

func snapshot(a *goquery.Selection) domain.LinkAttributes {
	return domain.LinkAttributes{
		Href:   a.AttrOr("href", ""),
		Rel:    a.AttrOr("rel", ""),
		Target: a.AttrOr("target", ""),
	}
}
