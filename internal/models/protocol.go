package models

import "time"

// Protocol is a set of target setpoints applied while a device is in a stage.
// The ideal* values are not range-checked here.
type Protocol struct {
	ID                     int64      `json:"id"`
	Name                   string     `json:"name"`
	StageID                int64      `json:"stageId"`
	Delay                  int        `json:"delay"`
	StartHour              *int       `json:"startHour,omitempty"`
	EndHour                *int       `json:"endHour,omitempty"`
	IdealLightIntensity    *float64   `json:"idealLightIntensity,omitempty"`
	IdealExausterIntensity *float64   `json:"idealExausterIntensity,omitempty"`
	IdealBlowerIntensity   *float64   `json:"idealBlowerIntensity,omitempty"`
	IdealSoilHumidity      *float64   `json:"idealSoilHumidity,omitempty"`
	IdealAirHumidity       *float64   `json:"idealAirHumidity,omitempty"`
	IdealTemperature       *float64   `json:"idealTemperature,omitempty"`
	IdealCo2               *float64   `json:"idealCo2,omitempty"`
	CreatedAt              *time.Time `json:"createdAt,omitempty"`
	UpdatedAt              *time.Time `json:"updatedAt,omitempty"`
	Stage                  *Stage     `json:"stage,omitempty"`
}

type ProtocolCreate struct {
	Name    string `json:"name"`
	StageID int64  `json:"stageId"`
	Delay   int    `json:"delay"`
}

type ProtocolUpdate struct {
	Name                   *string  `json:"name,omitempty"`
	StageID                *int64   `json:"stageId,omitempty"`
	Delay                  *int     `json:"delay,omitempty"`
	StartHour              *int     `json:"startHour,omitempty"`
	EndHour                *int     `json:"endHour,omitempty"`
	IdealLightIntensity    *float64 `json:"idealLightIntensity,omitempty"`
	IdealExausterIntensity *float64 `json:"idealExausterIntensity,omitempty"`
	IdealBlowerIntensity   *float64 `json:"idealBlowerIntensity,omitempty"`
	IdealSoilHumidity      *float64 `json:"idealSoilHumidity,omitempty"`
	IdealAirHumidity       *float64 `json:"idealAirHumidity,omitempty"`
	IdealTemperature       *float64 `json:"idealTemperature,omitempty"`
	IdealCo2               *float64 `json:"idealCo2,omitempty"`
}
