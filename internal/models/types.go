package models

import "fmt"

// MediaType represents the kind of media item in the collection
type MediaType string

const (
	MediaTypeMovie  MediaType = "movie"
	MediaTypeMusic  MediaType = "music"
	MediaTypeGame   MediaType = "game"
	MediaTypeBook   MediaType = "book"
	MediaTypeTVShow MediaType = "tv_show"
)

// AllMediaTypes returns the closed set of media types
func AllMediaTypes() []MediaType {
	return []MediaType{MediaTypeMovie, MediaTypeMusic, MediaTypeGame, MediaTypeBook, MediaTypeTVShow}
}

// ParseMediaType validates a raw string against the closed media type set.
// Empty string and "all" mean "no constraint" and parse to the zero value.
func ParseMediaType(raw string) (MediaType, error) {
	switch MediaType(raw) {
	case "", "all":
		return "", nil
	case MediaTypeMovie, MediaTypeMusic, MediaTypeGame, MediaTypeBook, MediaTypeTVShow:
		return MediaType(raw), nil
	}
	return "", fmt.Errorf("invalid media type: %q", raw)
}

// Label returns a human-readable name for the media type
func (t MediaType) Label() string {
	switch t {
	case MediaTypeMovie:
		return "movie"
	case MediaTypeMusic:
		return "music"
	case MediaTypeGame:
		return "game"
	case MediaTypeBook:
		return "book"
	case MediaTypeTVShow:
		return "TV show"
	}
	return string(t)
}

// Status represents the ownership status of a media item
type Status string

const (
	StatusWishlist       Status = "wishlist"
	StatusOwned          Status = "owned"
	StatusCurrentlyInUse Status = "currently_in_use"
	StatusCompleted      Status = "completed"
)

// AllStatuses returns the closed set of ownership statuses
func AllStatuses() []Status {
	return []Status{StatusWishlist, StatusOwned, StatusCurrentlyInUse, StatusCompleted}
}

// ParseStatus validates a raw string against the closed status set.
// Empty string and "all" mean "no constraint" and parse to the zero value.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case "", "all":
		return "", nil
	case StatusWishlist, StatusOwned, StatusCurrentlyInUse, StatusCompleted:
		return Status(raw), nil
	}
	return "", fmt.Errorf("invalid status: %q", raw)
}

// Label returns a human-readable name for the status
func (s Status) Label() string {
	switch s {
	case StatusWishlist:
		return "wishlist"
	case StatusOwned:
		return "owned"
	case StatusCurrentlyInUse:
		return "currently in use"
	case StatusCompleted:
		return "completed"
	}
	return string(s)
}
