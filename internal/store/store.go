package store

import (
	"context"
	"errors"
	"time"

	"github.com/faideww/fish-of-the-day/internal/fish"
)

// DateLayout is how the selection date is persisted and shown to users.
const DateLayout = "Jan 02 2006"

var (
	// ErrUnset is returned when no complete entry has been stored yet.
	ErrUnset = errors.New("fish of the day not set")
	// ErrCorrupt is returned when the stored entry can't be decoded.
	ErrCorrupt = errors.New("fish of the day entry corrupt")
)

// Entry is the persisted fish of the day and the day it was picked.
type Entry struct {
	Fish *fish.Record
	Date time.Time
}

func (e Entry) IsSet() bool {
	return e.Fish != nil && !e.Date.IsZero()
}

// FormattedDate renders the selection day the way users see it.
func (e Entry) FormattedDate() string {
	return e.Date.Format(DateLayout)
}

type FotdStore interface {
	ReadFotd(ctx context.Context) (Entry, error)
	WriteFotd(ctx context.Context, e Entry) error
}
