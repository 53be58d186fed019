package fish

// Record is one species as scraped from a species summary page.
// Optional fields are empty strings when the page doesn't provide them.
type Record struct {
	ScientificName string
	CommonName     string
	ImageURL       string
	Genus          string
}

func (r Record) HasCommonName() bool { return r.CommonName != "" }

func (r Record) HasImage() bool { return r.ImageURL != "" }

func (r Record) HasGenus() bool { return r.Genus != "" }
