package models

import "time"

// VideoType identifies the hosting provider a video URL points at.
type VideoType string

const (
	VideoTypeYouTube VideoType = "YOUTUBE"
	VideoTypeVimeo   VideoType = "VIMEO"
	VideoTypeOther   VideoType = "OTHER"
)

// Category groups videos in the catalog. Names are unique case-insensitively.
type Category struct {
	ID          string
	Name        string
	Description string
}

// Video is a catalog entry pointing at an externally hosted video.
//
// VideoType and VideoID are derived from URL as part of every persist and are
// never accepted from callers directly.
type Video struct {
	ID              string
	Title           string
	Description     *string
	URL             string
	DurationSeconds *int
	VideoType       VideoType
	VideoID         *string
	CategoryID      *string
	CategoryName    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
