// internal/directus/models.go
package directus

import (
	"encoding/json"
	"time"
)

// CollectionResult is the ordered record sequence returned by the CMS for
// one collection. Records are opaque; no schema is assumed.
type CollectionResult []json.RawMessage

// AggregatedData is the full-mode retrieval output. SearchResults and
// AllData share the configured collection list as key set; a SearchResults
// entry may be empty while the AllData entry is not.
type AggregatedData struct {
	SearchResults map[string]CollectionResult `json:"searchResults"`
	AllData       map[string]CollectionResult `json:"allData"`
	Metadata      Metadata                    `json:"metadata"`
}

type Metadata struct {
	Query       string    `json:"query"`
	Timestamp   time.Time `json:"timestamp"`
	Collections []string  `json:"collections"`
}

// listEnvelope is the Directus items response wrapper.
type listEnvelope struct {
	Data []json.RawMessage `json:"data"`
}
