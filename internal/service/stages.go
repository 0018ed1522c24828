package service

import (
	"context"
	"strings"

	"auto_grow/internal/models"
	"auto_grow/internal/repository"
)

const kindStage = "stage"

type StageService struct {
	docs collection[models.Stage]
}

var _ Stages = (*StageService)(nil)

func NewStageService(repo repository.RecordRepo) *StageService {
	return &StageService{docs: collection[models.Stage]{
		repo: repo,
		kind: kindStage,
		stamp: func(s *models.Stage, rec repository.Record) {
			s.ID = rec.ID
			s.CreatedAt = ptr(rec.CreatedAt)
			s.UpdatedAt = ptr(rec.UpdatedAt)
		},
	}}
}

func (s *StageService) List(ctx context.Context) ([]models.Stage, error) {
	return s.docs.list(ctx, repository.RecordFilter{})
}

func (s *StageService) Get(ctx context.Context, id int64) (models.Stage, error) {
	return s.docs.get(ctx, id)
}

func (s *StageService) Create(ctx context.Context, in models.StageCreate) (models.Stage, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Stage{}, invalid("name is required")
	}
	return s.docs.insert(ctx, models.Stage{Name: name})
}

func (s *StageService) Update(ctx context.Context, id int64, in models.StageUpdate) (models.Stage, error) {
	st, err := s.docs.get(ctx, id)
	if err != nil {
		return st, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return st, invalid("name must not be empty")
		}
		st.Name = name
	}
	return s.docs.replace(ctx, id, st)
}

func (s *StageService) Delete(ctx context.Context, id int64) error {
	return s.docs.remove(ctx, id)
}
