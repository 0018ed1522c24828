package service

import (
	"context"
	"encoding/json"
	"fmt"

	"auto_grow/internal/repository"
)

// collection maps one entity type onto the records table. Documents are
// stored with their embeds as of the write; stamp copies the row id and
// timestamps back onto the decoded value.
type collection[T any] struct {
	repo     repository.RecordRepo
	kind     string
	stamp    func(*T, repository.Record)
	deviceOf func(*T) *int64
}

func (c collection[T]) decode(rec repository.Record) (T, error) {
	var v T
	if err := json.Unmarshal(rec.Body, &v); err != nil {
		return v, fmt.Errorf("decode %s %d: %w", c.kind, rec.ID, err)
	}
	c.stamp(&v, rec)
	return v, nil
}

func (c collection[T]) device(v *T) *int64 {
	if c.deviceOf == nil {
		return nil
	}
	return c.deviceOf(v)
}

func (c collection[T]) list(ctx context.Context, f repository.RecordFilter) ([]T, error) {
	recs, err := c.repo.List(ctx, c.kind, f)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		v, err := c.decode(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c collection[T]) get(ctx context.Context, id int64) (T, error) {
	var zero T
	rec, err := c.repo.Get(ctx, c.kind, id)
	if err != nil {
		return zero, err
	}
	if rec == nil {
		return zero, fmt.Errorf("%s %d: %w", c.kind, id, ErrNotFound)
	}
	return c.decode(*rec)
}

func (c collection[T]) insert(ctx context.Context, v T) (T, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return v, fmt.Errorf("encode %s: %w", c.kind, err)
	}
	rec, err := c.repo.Insert(ctx, c.kind, c.device(&v), body)
	if err != nil {
		return v, err
	}
	c.stamp(&v, rec)
	return v, nil
}

// replace overwrites the stored document and returns it as re-read.
func (c collection[T]) replace(ctx context.Context, id int64, v T) (T, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return v, fmt.Errorf("encode %s: %w", c.kind, err)
	}
	ok, err := c.repo.Update(ctx, c.kind, id, c.device(&v), body)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, fmt.Errorf("%s %d: %w", c.kind, id, ErrNotFound)
	}
	return c.get(ctx, id)
}

func (c collection[T]) remove(ctx context.Context, id int64) error {
	ok, err := c.repo.Delete(ctx, c.kind, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s %d: %w", c.kind, id, ErrNotFound)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func ptr[T any](v T) *T { return &v }
