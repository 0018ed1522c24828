package models

import "time"

// Tracking is an immutable sensor snapshot. Device and Protocol are
// denormalized embeds for display; DeviceID and ProtocolID are authoritative.
type Tracking struct {
	ID           int64     `json:"id"`
	DeviceID     int64     `json:"deviceId"`
	Device       *Device   `json:"device,omitempty"`
	ProtocolID   int64     `json:"protocolId"`
	Temperature  float64   `json:"temperature"`
	AirHumidity  float64   `json:"airHumidity"`
	SoilHumidity float64   `json:"soilHumidity"`
	Co2          float64   `json:"co2"`
	Lux          float64   `json:"lux"`
	Humidity     float64   `json:"humidity"`
	CreatedAt    time.Time `json:"createdAt"`

	// actuator states at the time of the reading
	TurnLightIntensity    *float64 `json:"turnLightIntensity,omitempty"`
	TurnExausterIntensity *float64 `json:"turnExausterIntensity,omitempty"`
	TurnBlowerIntensity   *float64 `json:"turnBlowerIntensity,omitempty"`
	TurnACOn              *int     `json:"turnACOn,omitempty"`
	TurnWaterOn           *bool    `json:"turnWaterOn,omitempty"`
	TurnFan1On            *bool    `json:"turnFan1On,omitempty"`
	TurnFan2On            *bool    `json:"turnFan2On,omitempty"`
	TurnHumidifierOn      *bool    `json:"turnHumidifierOn,omitempty"`
	TurnDehumidifierOn    *bool    `json:"turnDehumidifierOn,omitempty"`

	Protocol *Protocol `json:"protocol,omitempty"`
}

type TrackingCreate struct {
	DeviceID     int64   `json:"deviceId"`
	Temperature  float64 `json:"temperature"`
	AirHumidity  float64 `json:"airHumidity"`
	SoilHumidity float64 `json:"soilHumidity"`
	Co2          float64 `json:"co2"`
	Ppfd         float64 `json:"ppfd"`
}

type TrackingUpdate struct {
	DeviceID    *int64   `json:"deviceId,omitempty"`
	ProtocolID  *int64   `json:"protocolId,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
}
