package identify

import (
	"context"
	"encoding/json"
)

// Result is the species suggestion extracted from an identification
// provider, plus the provider's raw payload for clients that want more.
type Result struct {
	SpeciesName   string          `json:"speciesName"`
	CommonName    string          `json:"commonName,omitempty"`
	NeedsLight    string          `json:"needsLight,omitempty"`
	NeedsWater    string          `json:"needsWater,omitempty"`
	NeedsHumidity string          `json:"needsHumidity,omitempty"`
	Raw           json.RawMessage `json:"-"`
}

// Identifier recognizes a plant species from a photo URL.
type Identifier interface {
	Identify(ctx context.Context, imageURL string) (Result, error)
}
