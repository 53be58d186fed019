package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/faideww/fish-of-the-day/internal/fish"
)

// JSONStore keeps the fish of the day in a single JSON document.
type JSONStore struct {
	mu   sync.Mutex
	path string
	loc  *time.Location
}

type fotdJSON struct {
	Fish *fishJSON `json:"fish"`
	Date *string   `json:"date"`
}

type fishJSON struct {
	Species  string  `json:"species"`
	HasName  bool    `json:"hasName"`
	Name     *string `json:"name"`
	HasImage bool    `json:"hasImage"`
	Image    *string `json:"image"`
	Genus    *string `json:"genus"`
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: filepath.Clean(path), loc: time.Local}
}

func (s *JSONStore) ReadFotd(ctx context.Context) (Entry, error) {
	s.mu.Lock()
	raw, err := os.ReadFile(s.path)
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Entry{}, ErrUnset
		}
		return Entry{}, fmt.Errorf("read %s: %w", s.path, err)
	}

	var doc fotdJSON
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc.Fish == nil || doc.Date == nil || *doc.Date == "" {
		return Entry{}, ErrUnset
	}
	if doc.Fish.Species == "" {
		return Entry{}, fmt.Errorf("%w: fish has no species", ErrCorrupt)
	}

	day, err := time.ParseInLocation(DateLayout, *doc.Date, s.loc)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	rec := fish.Record{
		ScientificName: doc.Fish.Species,
		CommonName:     deref(doc.Fish.Name),
		ImageURL:       deref(doc.Fish.Image),
		Genus:          deref(doc.Fish.Genus),
	}
	return Entry{Fish: &rec, Date: day}, nil
}

// WriteFotd replaces the stored document. The file is written next to the
// target and renamed into place so readers never see a partial document.
func (s *JSONStore) WriteFotd(ctx context.Context, e Entry) error {
	doc := fotdJSON{}
	if e.IsSet() {
		date := e.FormattedDate()
		doc.Date = &date
		doc.Fish = &fishJSON{
			Species:  e.Fish.ScientificName,
			HasName:  e.Fish.HasCommonName(),
			Name:     ref(e.Fish.CommonName),
			HasImage: e.Fish.HasImage(),
			Image:    ref(e.Fish.ImageURL),
			Genus:    ref(e.Fish.Genus),
		}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal fotd: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create store path: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".fotd-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write fotd: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write fotd: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
