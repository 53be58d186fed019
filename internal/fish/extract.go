package fish

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultBaseURL = "https://www.fishbase.se"

	noImageMarker   = "No image available for this species"
	etymologyMarker = "Etymology:"
	citationPrefix  = "(Ref"
)

// Extractor turns a FishBase species summary page into a Record.
type Extractor struct {
	base *url.URL
}

// NewExtractor creates an extractor that resolves relative image paths
// against baseURL.
func NewExtractor(baseURL string) (*Extractor, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	return &Extractor{base: u}, nil
}

func (e *Extractor) Extract(page []byte) (Record, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	scinameDiv := doc.Find("div#ss-sciname").First()
	if scinameDiv.Length() == 0 {
		return Record{}, fmt.Errorf("%w: scientific name block not found", ErrExtraction)
	}
	parts := scinameDiv.Find("a")
	if parts.Length() < 2 {
		return Record{}, fmt.Errorf("%w: scientific name has %d parts", ErrExtraction, parts.Length())
	}

	rec := Record{
		ScientificName: strings.TrimSpace(parts.Eq(0).Text()) + " " + strings.TrimSpace(parts.Eq(1).Text()),
		CommonName:     strings.TrimSpace(scinameDiv.Find("span.sheader2").First().Text()),
	}

	// The photo block can exist and still only hold a placeholder, so the
	// marker decides whether the species has an image.
	if !strings.Contains(doc.Text(), noImageMarker) {
		imageURL, err := e.imageURL(doc)
		if err != nil {
			return Record{}, err
		}
		rec.ImageURL = imageURL
	}

	rec.Genus = extractGenus(doc)
	return rec, nil
}

func (e *Extractor) imageURL(doc *goquery.Document) (string, error) {
	photo := doc.Find("div#ss-photo").First()
	if photo.Length() == 0 {
		photo = doc.Find("div#ss-photo-full").First()
	}
	if photo.Length() == 0 {
		return "", fmt.Errorf("%w: photo block not found", ErrExtraction)
	}

	src, ok := photo.Find("img").First().Attr("src")
	if !ok || strings.TrimSpace(src) == "" {
		return "", fmt.Errorf("%w: photo block has no image", ErrExtraction)
	}

	ref, err := url.Parse(strings.TrimSpace(src))
	if err != nil {
		return "", fmt.Errorf("%w: bad image src %q", ErrExtraction, src)
	}
	return e.base.ResolveReference(ref).String(), nil
}

func extractGenus(doc *goquery.Document) string {
	var note string
	doc.Find("div.smallSpace").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if strings.Contains(text, etymologyMarker) {
			note = text
		}
	})
	if note == "" {
		return ""
	}
	return ParseGenus(note)
}

// ParseGenus returns the last parenthesised run before the etymology
// marker, skipping citations such as "(Ref 123)".
func ParseGenus(note string) string {
	before, _, _ := strings.Cut(note, etymologyMarker)

	var runs []string
	open := -1
	for i, c := range before {
		switch c {
		case '(':
			open = i
		case ')':
			if open < 0 {
				continue
			}
			run := before[open : i+1]
			open = -1
			if strings.HasPrefix(run, citationPrefix) {
				continue
			}
			runs = append(runs, strings.TrimSpace(run[1:len(run)-1]))
		}
	}

	if len(runs) == 0 {
		return ""
	}
	return runs[len(runs)-1]
}
