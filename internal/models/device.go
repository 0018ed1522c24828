package models

import "time"

// Device is a controlled grow box. ID is server-assigned and never changes.
type Device struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Stage     *Stage    `json:"stage,omitempty"` // snapshot, not a live reference
}

type DeviceCreate struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// DeviceUpdate carries only the fields being changed.
type DeviceUpdate struct {
	Name    *string `json:"name,omitempty"`
	Status  *string `json:"status,omitempty"`
	StageID *int64  `json:"stageId,omitempty"`
}
