package models

import "time"

// GuideRequest is a member's request for a guided dive.
// Guides holds the volunteers in the order they signed up.
type GuideRequest struct {
	ID        string    `json:"id"`
	Requester string    `json:"requester"`
	Location  string    `json:"location"`
	Date      string    `json:"date,omitempty"`
	Time      string    `json:"time,omitempty"`
	Guides    []string  `json:"guides"`
	CreatedAt time.Time `json:"created_at"`
}
