package videos

import "context"

// Details captures the provider-sourced fields used to enrich a catalog entry.
type Details struct {
	Title           string
	Description     string
	DurationSeconds int
}

// Provider returns details for a provider-assigned video identifier.
type Provider interface {
	Lookup(ctx context.Context, videoID string) (Details, error)
}
