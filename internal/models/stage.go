package models

import "time"

// Stage is a named growth phase referenced by Device and Protocol.
type Stage struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type StageCreate struct {
	Name string `json:"name"`
}

type StageUpdate struct {
	Name *string `json:"name,omitempty"`
}
