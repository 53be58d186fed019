package fish

import "strings"

// rareSpecies maps lowercased common names to species worth celebrating.
var rareSpecies = map[string]bool{
	"whale shark": true,
}

// IsRare reports whether the record's common name is one of the
// celebrated species. Records without a common name are never rare.
func IsRare(r Record) bool {
	if !r.HasCommonName() {
		return false
	}
	return rareSpecies[strings.ToLower(strings.TrimSpace(r.CommonName))]
}
