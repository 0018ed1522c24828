package service

import (
	"context"
	"errors"
	"strings"

	"auto_grow/internal/models"
	"auto_grow/internal/repository"
)

const kindDevice = "device"

type DeviceService struct {
	docs   collection[models.Device]
	stages *StageService
}

var _ Devices = (*DeviceService)(nil)

func NewDeviceService(repo repository.RecordRepo, stages *StageService) *DeviceService {
	return &DeviceService{
		docs: collection[models.Device]{
			repo: repo,
			kind: kindDevice,
			stamp: func(d *models.Device, rec repository.Record) {
				d.ID = rec.ID
				d.CreatedAt = rec.CreatedAt
				d.UpdatedAt = rec.UpdatedAt
			},
		},
		stages: stages,
	}
}

func (s *DeviceService) List(ctx context.Context) ([]models.Device, error) {
	return s.docs.list(ctx, repository.RecordFilter{})
}

func (s *DeviceService) Get(ctx context.Context, id int64) (models.Device, error) {
	return s.docs.get(ctx, id)
}

func (s *DeviceService) Create(ctx context.Context, in models.DeviceCreate) (models.Device, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Device{}, invalid("name is required")
	}
	return s.docs.insert(ctx, models.Device{Name: name, Status: strings.TrimSpace(in.Status)})
}

// Update applies the set fields. A stageId of 0 detaches the stage;
// any other value embeds a snapshot of that stage.
func (s *DeviceService) Update(ctx context.Context, id int64, in models.DeviceUpdate) (models.Device, error) {
	d, err := s.docs.get(ctx, id)
	if err != nil {
		return d, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return d, invalid("name must not be empty")
		}
		d.Name = name
	}
	if in.Status != nil {
		d.Status = strings.TrimSpace(*in.Status)
	}
	if in.StageID != nil {
		if *in.StageID == 0 {
			d.Stage = nil
		} else {
			st, err := s.stages.Get(ctx, *in.StageID)
			if err != nil {
				return d, referenceError("stage", *in.StageID, err)
			}
			d.Stage = &st
		}
	}
	return s.docs.replace(ctx, id, d)
}

func (s *DeviceService) Delete(ctx context.Context, id int64) error {
	return s.docs.remove(ctx, id)
}

// referenceError turns a missing referenced entity into bad input.
func referenceError(kind string, id int64, err error) error {
	if errors.Is(err, ErrNotFound) {
		return invalid("%s %d does not exist", kind, id)
	}
	return err
}
