package service

import (
	"context"
	"strings"

	"auto_grow/internal/models"
	"auto_grow/internal/repository"
)

const kindProtocol = "protocol"

type ProtocolService struct {
	docs   collection[models.Protocol]
	stages *StageService
}

var _ Protocols = (*ProtocolService)(nil)

func NewProtocolService(repo repository.RecordRepo, stages *StageService) *ProtocolService {
	return &ProtocolService{
		docs: collection[models.Protocol]{
			repo: repo,
			kind: kindProtocol,
			stamp: func(p *models.Protocol, rec repository.Record) {
				p.ID = rec.ID
				p.CreatedAt = ptr(rec.CreatedAt)
				p.UpdatedAt = ptr(rec.UpdatedAt)
			},
		},
		stages: stages,
	}
}

func (s *ProtocolService) List(ctx context.Context) ([]models.Protocol, error) {
	return s.docs.list(ctx, repository.RecordFilter{})
}

func (s *ProtocolService) Get(ctx context.Context, id int64) (models.Protocol, error) {
	return s.docs.get(ctx, id)
}

func (s *ProtocolService) Create(ctx context.Context, in models.ProtocolCreate) (models.Protocol, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Protocol{}, invalid("name is required")
	}
	if in.Delay < 0 {
		return models.Protocol{}, invalid("delay cannot be negative")
	}
	st, err := s.stages.Get(ctx, in.StageID)
	if err != nil {
		return models.Protocol{}, referenceError("stage", in.StageID, err)
	}
	return s.docs.insert(ctx, models.Protocol{
		Name:    name,
		StageID: in.StageID,
		Delay:   in.Delay,
		Stage:   &st,
	})
}

func (s *ProtocolService) Update(ctx context.Context, id int64, in models.ProtocolUpdate) (models.Protocol, error) {
	p, err := s.docs.get(ctx, id)
	if err != nil {
		return p, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return p, invalid("name must not be empty")
		}
		p.Name = name
	}
	if in.StageID != nil {
		st, err := s.stages.Get(ctx, *in.StageID)
		if err != nil {
			return p, referenceError("stage", *in.StageID, err)
		}
		p.StageID = *in.StageID
		p.Stage = &st
	}
	if in.Delay != nil {
		if *in.Delay < 0 {
			return p, invalid("delay cannot be negative")
		}
		p.Delay = *in.Delay
	}
	for _, h := range []*int{in.StartHour, in.EndHour} {
		if h != nil && (*h < 0 || *h > 23) {
			return p, invalid("hours must be within 0..23, got %d", *h)
		}
	}
	setIfPresent(&p.StartHour, in.StartHour)
	setIfPresent(&p.EndHour, in.EndHour)
	setIfPresent(&p.IdealLightIntensity, in.IdealLightIntensity)
	setIfPresent(&p.IdealExausterIntensity, in.IdealExausterIntensity)
	setIfPresent(&p.IdealBlowerIntensity, in.IdealBlowerIntensity)
	setIfPresent(&p.IdealSoilHumidity, in.IdealSoilHumidity)
	setIfPresent(&p.IdealAirHumidity, in.IdealAirHumidity)
	setIfPresent(&p.IdealTemperature, in.IdealTemperature)
	setIfPresent(&p.IdealCo2, in.IdealCo2)

	return s.docs.replace(ctx, id, p)
}

func (s *ProtocolService) Delete(ctx context.Context, id int64) error {
	return s.docs.remove(ctx, id)
}

// ForStage returns the first protocol bound to stageID.
func (s *ProtocolService) ForStage(ctx context.Context, stageID int64) (*models.Protocol, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].StageID == stageID {
			return &all[i], nil
		}
	}
	return nil, nil
}

// setIfPresent copies an optional update field onto an optional entity field.
func setIfPresent[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}
