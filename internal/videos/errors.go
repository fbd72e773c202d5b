package videos

import "errors"

var (
	// ErrProviderUnavailable indicates the metadata provider is not configured.
	ErrProviderUnavailable = errors.New("video metadata provider unavailable")
	// ErrNoResult indicates the provider reported no item for the identifier.
	ErrNoResult = errors.New("video metadata not found")
)
