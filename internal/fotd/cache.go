package fotd

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/faideww/fish-of-the-day/internal/fish"
	"github.com/faideww/fish-of-the-day/internal/store"
	"golang.org/x/sync/singleflight"
)

type Acquirer interface {
	Acquire(ctx context.Context, p fish.Purpose) (fish.Record, error)
}

// Cache hands out the fish of the day, picking a new one the first time
// it is asked for on a new day.
type Cache struct {
	store    store.FotdStore
	acquirer Acquirer
	clk      Clock
	logger   *log.Logger

	mu    sync.Mutex
	group singleflight.Group
}

type Option func(*Cache)

func WithClock(clk Clock) Option {
	return func(c *Cache) {
		if clk != nil {
			c.clk = clk
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

func New(st store.FotdStore, acq Acquirer, opts ...Option) *Cache {
	c := &Cache{
		store:    st,
		acquirer: acq,
		clk:      RealClock{},
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns today's entry, acquiring and persisting a new fish when the
// stored one is missing, unreadable or from another day.
func (c *Cache) Get(ctx context.Context) (store.Entry, error) {
	today := Today(c.clk)
	if e, ok := c.current(ctx, today); ok {
		return e, nil
	}

	// Concurrent callers for the same day share one refresh.
	v, err, _ := c.group.Do(today.Format("2006-01-02"), func() (any, error) {
		return c.refresh(ctx, today)
	})
	if err != nil {
		return store.Entry{}, err
	}
	return v.(store.Entry), nil
}

// Prime makes sure an entry for today exists.
func (c *Cache) Prime(ctx context.Context) error {
	e, err := c.Get(ctx)
	if err != nil {
		return err
	}
	c.logger.Info("fish of the day ready", "date", e.FormattedDate(), "species", e.Fish.ScientificName)
	return nil
}

func (c *Cache) current(ctx context.Context, today time.Time) (store.Entry, bool) {
	e, err := c.store.ReadFotd(ctx)
	switch {
	case errors.Is(err, store.ErrUnset):
		c.logger.Debug("no fish of the day set")
		return store.Entry{}, false
	case err != nil:
		c.logger.Warn("unreadable fish of the day, picking a new one", "err", err)
		return store.Entry{}, false
	case !e.IsSet():
		return store.Entry{}, false
	case !sameDay(e.Date, today):
		c.logger.Debug("fish of the day is stale", "date", e.FormattedDate())
		return store.Entry{}, false
	}
	return e, true
}

func (c *Cache) refresh(ctx context.Context, today time.Time) (store.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Another refresh may have finished while we waited.
	if e, ok := c.current(ctx, today); ok {
		return e, nil
	}

	rec, err := c.acquirer.Acquire(ctx, fish.PurposeFotd)
	if err != nil {
		return store.Entry{}, err
	}

	e := store.Entry{Fish: &rec, Date: today}
	if err := c.store.WriteFotd(ctx, e); err != nil {
		c.logger.Error("failed to persist fish of the day", "err", err)
	} else {
		c.logger.Info("new fish of the day", "date", e.FormattedDate(), "species", rec.ScientificName)
	}
	return e, nil
}
