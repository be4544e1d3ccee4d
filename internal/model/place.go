package model

import "time"

// ExtractedPlace is the structured record produced by the map-link
// extraction service. It is ephemeral: only the fields copied into a new
// place row survive a run.
type ExtractedPlace struct {
	Name        string            `json:"name"`
	Address     string            `json:"address"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	Phone       string            `json:"phone,omitempty"`
	Website     string            `json:"website,omitempty"`
	Photos      []string          `json:"photos,omitempty"`
	Hours       map[string]string `json:"hours,omitempty"`
	Rating      *float64          `json:"rating,omitempty"`
	ReviewCount *int              `json:"review_count,omitempty"`
}

// ExistingPlace is the read-only projection of an already-persisted place
// used for duplicate matching.
type ExistingPlace struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is a persisted place-of-interest entity.
type Place struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Address     string            `json:"address"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	Phone       string            `json:"phone,omitempty"`
	Website     string            `json:"website,omitempty"`
	Photos      []string          `json:"photos,omitempty"`
	Hours       map[string]string `json:"hours,omitempty"`
	Rating      *float64          `json:"rating,omitempty"`
	ReviewCount *int              `json:"review_count,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}
