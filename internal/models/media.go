package models

import "time"

// MediaItem represents a single entry in the personal media collection
type MediaItem struct {
	ID uint64 `boltholdKey:"ID" json:"id"`

	Title   string `json:"title"`
	Creator string `json:"creator"`

	MediaType MediaType `boltholdIndex:"MediaType" json:"media_type"`
	Status    Status    `boltholdIndex:"Status" json:"status"`

	// ReleaseDate is free-form: a bare year or a full date
	ReleaseDate string            `json:"release_date,omitempty"`
	Genre       string            `json:"genre,omitempty"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`

	UserID string `json:"user_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
