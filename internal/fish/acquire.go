package fish

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

type Purpose int

const (
	PurposeFotd Purpose = iota
	PurposeRandom
)

func (p Purpose) String() string {
	switch p {
	case PurposeFotd:
		return "fotd"
	default:
		return "random"
	}
}

// Criteria decides which scraped records are complete enough to be used.
type Criteria struct {
	CommonNameRequiredForFotd   bool
	ImageRequiredForFotd        bool
	CommonNameRequiredForRandom bool
	ImageRequiredForRandom      bool
}

// Rejects returns a non-empty reason when r doesn't meet the criteria for
// the given purpose.
func (c Criteria) Rejects(r Record, p Purpose) string {
	nameRequired, imageRequired := c.CommonNameRequiredForRandom, c.ImageRequiredForRandom
	if p == PurposeFotd {
		nameRequired, imageRequired = c.CommonNameRequiredForFotd, c.ImageRequiredForFotd
	}

	switch {
	case nameRequired && !r.HasCommonName():
		return "no common name"
	case imageRequired && !r.HasImage():
		return "no image"
	default:
		return ""
	}
}

func (c Criteria) Accepts(r Record, p Purpose) bool {
	return c.Rejects(r, p) == ""
}

// PageFetcher returns the body of a freshly picked random species page.
type PageFetcher interface {
	FetchPage(ctx context.Context) ([]byte, error)
}

type PageFetcherFunc func(ctx context.Context) ([]byte, error)

func (f PageFetcherFunc) FetchPage(ctx context.Context) ([]byte, error) { return f(ctx) }

type Acquirer struct {
	fetch       PageFetcher
	ex          *Extractor
	criteria    Criteria
	maxAttempts int
	logger      *log.Logger
}

type AcquirerOption func(*Acquirer)

// WithMaxAttempts caps the number of fetches per acquisition. Zero means
// no cap.
func WithMaxAttempts(n int) AcquirerOption {
	return func(a *Acquirer) {
		if n > 0 {
			a.maxAttempts = n
		}
	}
}

func WithLogger(l *log.Logger) AcquirerOption {
	return func(a *Acquirer) {
		if l != nil {
			a.logger = l
		}
	}
}

func NewAcquirer(fetch PageFetcher, ex *Extractor, criteria Criteria, opts ...AcquirerOption) *Acquirer {
	a := &Acquirer{
		fetch:    fetch,
		ex:       ex,
		criteria: criteria,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Acquire fetches random species until one satisfies the criteria for p.
// Fetch and extraction errors end the loop immediately; only rejected
// records are retried. Without an attempt cap this can take a while
// against a source that rarely yields a matching record.
func (a *Acquirer) Acquire(ctx context.Context, p Purpose) (Record, error) {
	for attempt := 1; a.maxAttempts == 0 || attempt <= a.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Record{}, err
		}

		page, err := a.fetch.FetchPage(ctx)
		if err != nil {
			return Record{}, err
		}

		rec, err := a.ex.Extract(page)
		if err != nil {
			return Record{}, err
		}

		if reason := a.criteria.Rejects(rec, p); reason != "" {
			a.logger.Debug("fish rejected, trying again",
				"purpose", p, "species", rec.ScientificName, "reason", reason, "attempt", attempt)
			continue
		}

		a.logger.Info("suitable fish found", "purpose", p, "species", rec.ScientificName, "attempts", attempt)
		return rec, nil
	}

	return Record{}, fmt.Errorf("%w after %d attempts", ErrNoSuitableFish, a.maxAttempts)
}
