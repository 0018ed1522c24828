package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"auto_grow/internal/repository"
)

// memRecords is an in-memory repository.RecordRepo for service tests.
type memRecords struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]repository.Record
	now    func() time.Time
}

func newMemRecords() *memRecords {
	return &memRecords{
		rows: make(map[int64]repository.Record),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (m *memRecords) Insert(ctx context.Context, kind string, deviceID *int64, body []byte) (repository.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	now := m.now()
	rec := repository.Record{ID: m.nextID, Kind: kind, DeviceID: deviceID, Body: body, CreatedAt: now, UpdatedAt: now}
	m.rows[rec.ID] = rec
	return rec, nil
}

func (m *memRecords) Get(ctx context.Context, kind string, id int64) (*repository.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.rows[id]
	if !ok || rec.Kind != kind {
		return nil, nil
	}
	return &rec, nil
}

func (m *memRecords) List(ctx context.Context, kind string, f repository.RecordFilter) ([]repository.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []repository.Record
	for _, rec := range m.rows {
		if rec.Kind != kind {
			continue
		}
		if f.DeviceID != nil && (rec.DeviceID == nil || *rec.DeviceID != *f.DeviceID) {
			continue
		}
		if !f.Since.IsZero() && rec.CreatedAt.Before(f.Since) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if f.Newest {
			if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].ID > out[j].ID
		}
		return out[i].ID < out[j].ID
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memRecords) Update(ctx context.Context, kind string, id int64, deviceID *int64, body []byte) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.rows[id]
	if !ok || rec.Kind != kind {
		return false, nil
	}
	rec.DeviceID = deviceID
	rec.Body = body
	rec.UpdatedAt = m.now()
	m.rows[id] = rec
	return true, nil
}

func (m *memRecords) Delete(ctx context.Context, kind string, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.rows[id]
	if !ok || rec.Kind != kind {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}
