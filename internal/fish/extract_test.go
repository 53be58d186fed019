package fish

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type pageOpts struct {
	genus      string
	species    string
	commonName string
	photoID    string
	imgSrc     string
	noImage    bool
	notes      []string
}

func speciesPage(o pageOpts) []byte {
	if o.genus == "" {
		o.genus = "Rhincodon"
	}
	if o.species == "" {
		o.species = "typus"
	}

	photo := ""
	if o.photoID != "" {
		img := ""
		if o.imgSrc != "" {
			img = fmt.Sprintf(`<img src="%s" alt="photo">`, o.imgSrc)
		}
		photo = fmt.Sprintf(`<div id="%s">%s</div>`, o.photoID, img)
	}

	marker := ""
	if o.noImage {
		marker = `<span>No image available for this species; drawing shows typical species in Family.</span>`
	}

	notes := ""
	for _, n := range o.notes {
		notes += fmt.Sprintf(`<div class="smallSpace">%s</div>`, n)
	}

	return []byte(fmt.Sprintf(`<html><body>
<div id="ss-sciname">
  <h1><a href="/genus/1">%s</a> <a href="/species/1">%s</a></h1>
  <span class="sheader2">  %s  </span>
</div>
<div id="ss-photomap-container">%s%s</div>
<div id="ss-main">%s</div>
</body></html>`, o.genus, o.species, o.commonName, photo, marker, notes))
}

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	ex, err := NewExtractor(DefaultBaseURL)
	require.NoError(t, err)
	return ex
}

func TestExtract(t *testing.T) {
	ex := newTestExtractor(t)

	testCases := []struct {
		name     string
		page     pageOpts
		expected Record
	}{
		{
			name: "complete page",
			page: pageOpts{
				commonName: "Whale shark",
				photoID:    "ss-photo",
				imgSrc:     "/images/species/Rhtyp_u0.jpg",
				notes:      []string{"Etymology: Rhincodon: Greek, rhinos = nose."},
			},
			expected: Record{
				ScientificName: "Rhincodon typus",
				CommonName:     "Whale shark",
				ImageURL:       "https://www.fishbase.se/images/species/Rhtyp_u0.jpg",
			},
		},
		{
			name: "fallback photo block",
			page: pageOpts{
				photoID: "ss-photo-full",
				imgSrc:  "/photos/full.jpg",
			},
			expected: Record{
				ScientificName: "Rhincodon typus",
				ImageURL:       "https://www.fishbase.se/photos/full.jpg",
			},
		},
		{
			name: "placeholder photo with marker",
			page: pageOpts{
				commonName: "Blue tang",
				photoID:    "ss-photo",
				imgSrc:     "/images/thumbnails/family.gif",
				noImage:    true,
			},
			expected: Record{
				ScientificName: "Rhincodon typus",
				CommonName:     "Blue tang",
			},
		},
		{
			name: "marker without photo block",
			page: pageOpts{noImage: true},
			expected: Record{
				ScientificName: "Rhincodon typus",
			},
		},
		{
			name: "genus from last etymology note",
			page: pageOpts{
				photoID: "ss-photo",
				imgSrc:  "https://cdn.example.org/a.jpg",
				notes: []string{
					"Etymology: (first)",
					"Distribution (Ref 5)",
					"Named for the Greek (logos) honoring (Ref 123) the discoverer. Etymology: from Greek.",
				},
			},
			expected: Record{
				ScientificName: "Rhincodon typus",
				ImageURL:       "https://cdn.example.org/a.jpg",
				Genus:          "logos",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := ex.Extract(speciesPage(tc.page))
			require.NoError(t, err)
			if diff := cmp.Diff(tc.expected, rec); diff != "" {
				t.Fatalf("record mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractCommonNameIffNonEmpty(t *testing.T) {
	ex := newTestExtractor(t)

	for _, name := range []string{"", "   ", "\n\t", "Clown anemonefish", " Sea goldie "} {
		rec, err := ex.Extract(speciesPage(pageOpts{commonName: name, noImage: true}))
		require.NoError(t, err)
		require.Equal(t, strings.TrimSpace(name) != "", rec.HasCommonName(), "name %q", name)
	}
}

func TestExtractErrors(t *testing.T) {
	ex := newTestExtractor(t)

	testCases := []struct {
		name string
		page []byte
	}{
		{
			name: "no sciname block",
			page: []byte(`<html><body><div id="ss-photo"><img src="/a.jpg"></div></body></html>`),
		},
		{
			name: "single name part",
			page: []byte(`<html><body><div id="ss-sciname"><a>Rhincodon</a></div></body></html>`),
		},
		{
			name: "image expected but no photo block",
			page: speciesPage(pageOpts{commonName: "Whale shark"}),
		},
		{
			name: "image expected but photo block empty",
			page: speciesPage(pageOpts{photoID: "ss-photo"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ex.Extract(tc.page)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrExtraction), "got %v", err)
		})
	}
}

func TestParseGenus(t *testing.T) {
	testCases := []struct {
		note     string
		expected string
	}{
		{
			note:     "Named for the Greek (logos) honoring (Ref 123) the discoverer. Etymology: from Greek.",
			expected: "logos",
		},
		{
			note:     "Eponym of (first) and (Second family). Etymology: (ignored)",
			expected: "Second family",
		},
		{
			note:     "Only citations (Ref 1) (Ref 2). Etymology: x",
			expected: "",
		},
		{
			note:     "No parentheses at all. Etymology: x",
			expected: "",
		},
		{
			note:     "Nested (outer (inner) text) Etymology:",
			expected: "inner",
		},
		{
			note:     "Unbalanced ) closing (open Etymology:",
			expected: "",
		},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.expected, ParseGenus(tc.note), tc.note)
	}
}

func TestIsRare(t *testing.T) {
	require.True(t, IsRare(Record{ScientificName: "Rhincodon typus", CommonName: "Whale Shark"}))
	require.True(t, IsRare(Record{ScientificName: "Rhincodon typus", CommonName: "whale shark"}))
	require.False(t, IsRare(Record{ScientificName: "Rhincodon typus"}))
	require.False(t, IsRare(Record{ScientificName: "Carcharodon carcharias", CommonName: "Great white shark"}))
}
