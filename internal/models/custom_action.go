package models

import (
	"errors"
	"fmt"
	"time"
)

// Custom action status values.
const (
	ActionActive   = "active"
	ActionInactive = "inactive"
)

var (
	ErrInvalidActionStatus = errors.New("status must be active or inactive")
	ErrCyclesExceeded      = errors.New("cycles must not exceed maxCycles")
)

// CustomAction is a scheduled actuator override for one device.
// The turn*On switches are 0/1 integers on the wire.
type CustomAction struct {
	ID                    int64      `json:"id"`
	DeviceID              int64      `json:"deviceId"`
	Device                *Device    `json:"device,omitempty"`
	TurnLightIntensity    float64    `json:"turnLightIntensity"`
	TurnExausterIntensity float64    `json:"turnExausterIntensity"`
	TurnBlowerIntensity   float64    `json:"turnBlowerIntensity"`
	TurnACOn              int        `json:"turnACOn"`
	TurnWaterOn           int        `json:"turnWaterOn"`
	TurnFan1On            int        `json:"turnFan1On"`
	TurnFan2On            int        `json:"turnFan2On"`
	TurnHumidifierOn      int        `json:"turnHumidifierOn"`
	TurnDehumidifierOn    int        `json:"turnDehumidifierOn"`
	Cycles                int        `json:"cycles"`
	MaxCycles             int        `json:"maxCycles"`
	Status                string     `json:"status"`
	CreatedAt             *time.Time `json:"createdAt,omitempty"`
}

// Validate checks the application-level expectations: a known status and
// cycles never above maxCycles.
func (a CustomAction) Validate() error {
	if a.Status != ActionActive && a.Status != ActionInactive {
		return fmt.Errorf("%w: got %q", ErrInvalidActionStatus, a.Status)
	}
	if a.Cycles < 0 || a.MaxCycles < 0 {
		return errors.New("cycle values cannot be negative")
	}
	if a.Cycles > a.MaxCycles {
		return fmt.Errorf("%w: %d > %d", ErrCyclesExceeded, a.Cycles, a.MaxCycles)
	}
	return nil
}

type CustomActionCreate struct {
	DeviceID              int64   `json:"deviceId"`
	TurnLightIntensity    float64 `json:"turnLightIntensity"`
	TurnExausterIntensity float64 `json:"turnExausterIntensity"`
	TurnBlowerIntensity   float64 `json:"turnBlowerIntensity"`
	TurnACOn              int     `json:"turnACOn"`
	TurnWaterOn           int     `json:"turnWaterOn"`
	TurnFan1On            int     `json:"turnFan1On"`
	TurnFan2On            int     `json:"turnFan2On"`
	TurnHumidifierOn      int     `json:"turnHumidifierOn"`
	TurnDehumidifierOn    int     `json:"turnDehumidifierOn"`
	Cycles                int     `json:"cycles"`
	MaxCycles             int     `json:"maxCycles"`
	Status                string  `json:"status"`
}

type CustomActionUpdate struct {
	DeviceID              *int64   `json:"deviceId,omitempty"`
	TurnLightIntensity    *float64 `json:"turnLightIntensity,omitempty"`
	TurnExausterIntensity *float64 `json:"turnExausterIntensity,omitempty"`
	TurnBlowerIntensity   *float64 `json:"turnBlowerIntensity,omitempty"`
	TurnACOn              *int     `json:"turnACOn,omitempty"`
	TurnWaterOn           *int     `json:"turnWaterOn,omitempty"`
	TurnFan1On            *int     `json:"turnFan1On,omitempty"`
	TurnFan2On            *int     `json:"turnFan2On,omitempty"`
	TurnHumidifierOn      *int     `json:"turnHumidifierOn,omitempty"`
	TurnDehumidifierOn    *int     `json:"turnDehumidifierOn,omitempty"`
	Cycles                *int     `json:"cycles,omitempty"`
	MaxCycles             *int     `json:"maxCycles,omitempty"`
	Status                *string  `json:"status,omitempty"`
}
