package service

import (
	"context"
	"fmt"

	"auto_grow/internal/models"
	"auto_grow/internal/repository"
)

const kindCustomAction = "custom_action"

type CustomActionService struct {
	docs    collection[models.CustomAction]
	devices *DeviceService
}

var _ CustomActions = (*CustomActionService)(nil)

func NewCustomActionService(repo repository.RecordRepo, devices *DeviceService) *CustomActionService {
	return &CustomActionService{
		docs: collection[models.CustomAction]{
			repo: repo,
			kind: kindCustomAction,
			stamp: func(a *models.CustomAction, rec repository.Record) {
				a.ID = rec.ID
				a.CreatedAt = ptr(rec.CreatedAt)
			},
			deviceOf: func(a *models.CustomAction) *int64 { return &a.DeviceID },
		},
		devices: devices,
	}
}

func (s *CustomActionService) List(ctx context.Context) ([]models.CustomAction, error) {
	return s.docs.list(ctx, repository.RecordFilter{})
}

func (s *CustomActionService) Get(ctx context.Context, id int64) (models.CustomAction, error) {
	return s.docs.get(ctx, id)
}

func (s *CustomActionService) Create(ctx context.Context, in models.CustomActionCreate) (models.CustomAction, error) {
	a := models.CustomAction{
		DeviceID:              in.DeviceID,
		TurnLightIntensity:    in.TurnLightIntensity,
		TurnExausterIntensity: in.TurnExausterIntensity,
		TurnBlowerIntensity:   in.TurnBlowerIntensity,
		TurnACOn:              in.TurnACOn,
		TurnWaterOn:           in.TurnWaterOn,
		TurnFan1On:            in.TurnFan1On,
		TurnFan2On:            in.TurnFan2On,
		TurnHumidifierOn:      in.TurnHumidifierOn,
		TurnDehumidifierOn:    in.TurnDehumidifierOn,
		Cycles:                in.Cycles,
		MaxCycles:             in.MaxCycles,
		Status:                in.Status,
	}
	if err := a.Validate(); err != nil {
		return a, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	d, err := s.devices.Get(ctx, in.DeviceID)
	if err != nil {
		return a, referenceError("device", in.DeviceID, err)
	}
	a.Device = &d
	return s.docs.insert(ctx, a)
}

func (s *CustomActionService) Update(ctx context.Context, id int64, in models.CustomActionUpdate) (models.CustomAction, error) {
	a, err := s.docs.get(ctx, id)
	if err != nil {
		return a, err
	}
	if in.DeviceID != nil {
		d, err := s.devices.Get(ctx, *in.DeviceID)
		if err != nil {
			return a, referenceError("device", *in.DeviceID, err)
		}
		a.DeviceID = d.ID
		a.Device = &d
	}
	set(&a.TurnLightIntensity, in.TurnLightIntensity)
	set(&a.TurnExausterIntensity, in.TurnExausterIntensity)
	set(&a.TurnBlowerIntensity, in.TurnBlowerIntensity)
	set(&a.TurnACOn, in.TurnACOn)
	set(&a.TurnWaterOn, in.TurnWaterOn)
	set(&a.TurnFan1On, in.TurnFan1On)
	set(&a.TurnFan2On, in.TurnFan2On)
	set(&a.TurnHumidifierOn, in.TurnHumidifierOn)
	set(&a.TurnDehumidifierOn, in.TurnDehumidifierOn)
	set(&a.Cycles, in.Cycles)
	set(&a.MaxCycles, in.MaxCycles)
	set(&a.Status, in.Status)

	if err := a.Validate(); err != nil {
		return a, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.docs.replace(ctx, id, a)
}

func (s *CustomActionService) Delete(ctx context.Context, id int64) error {
	return s.docs.remove(ctx, id)
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
