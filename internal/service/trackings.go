package service

import (
	"context"
	"fmt"
	"time"

	"auto_grow/internal/models"
	"auto_grow/internal/repository"
)

const (
	kindTracking = "tracking"

	// luxPerPPFD converts photosynthetic photon flux density to
	// illuminance for a daylight spectrum.
	luxPerPPFD = 54.0
)

type TrackingService struct {
	docs      collection[models.Tracking]
	devices   *DeviceService
	protocols *ProtocolService
	now       func() time.Time
}

var _ Trackings = (*TrackingService)(nil)

func NewTrackingService(repo repository.RecordRepo, devices *DeviceService, protocols *ProtocolService) *TrackingService {
	return &TrackingService{
		docs: collection[models.Tracking]{
			repo: repo,
			kind: kindTracking,
			stamp: func(t *models.Tracking, rec repository.Record) {
				t.ID = rec.ID
				t.CreatedAt = rec.CreatedAt
			},
			deviceOf: func(t *models.Tracking) *int64 { return &t.DeviceID },
		},
		devices:   devices,
		protocols: protocols,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *TrackingService) List(ctx context.Context) ([]models.Tracking, error) {
	return s.docs.list(ctx, repository.RecordFilter{})
}

func (s *TrackingService) Get(ctx context.Context, id int64) (models.Tracking, error) {
	return s.docs.get(ctx, id)
}

// Create records a reading. The device and the protocol currently bound
// to the device's stage are embedded as they are now.
func (s *TrackingService) Create(ctx context.Context, in models.TrackingCreate) (models.Tracking, error) {
	d, err := s.devices.Get(ctx, in.DeviceID)
	if err != nil {
		return models.Tracking{}, referenceError("device", in.DeviceID, err)
	}

	t := models.Tracking{
		DeviceID:     d.ID,
		Device:       &d,
		Temperature:  in.Temperature,
		AirHumidity:  in.AirHumidity,
		SoilHumidity: in.SoilHumidity,
		Co2:          in.Co2,
		Lux:          in.Ppfd * luxPerPPFD,
		Humidity:     in.AirHumidity,
	}
	if d.Stage != nil {
		p, err := s.protocols.ForStage(ctx, d.Stage.ID)
		if err != nil {
			return models.Tracking{}, err
		}
		if p != nil {
			t.ProtocolID = p.ID
			t.Protocol = p
		}
	}
	return s.docs.insert(ctx, t)
}

func (s *TrackingService) Update(ctx context.Context, id int64, in models.TrackingUpdate) (models.Tracking, error) {
	t, err := s.docs.get(ctx, id)
	if err != nil {
		return t, err
	}
	if in.DeviceID != nil {
		d, err := s.devices.Get(ctx, *in.DeviceID)
		if err != nil {
			return t, referenceError("device", *in.DeviceID, err)
		}
		t.DeviceID = d.ID
		t.Device = &d
	}
	if in.ProtocolID != nil {
		p, err := s.protocols.Get(ctx, *in.ProtocolID)
		if err != nil {
			return t, referenceError("protocol", *in.ProtocolID, err)
		}
		t.ProtocolID = p.ID
		t.Protocol = &p
	}
	if in.Temperature != nil {
		t.Temperature = *in.Temperature
	}
	if in.Humidity != nil {
		t.Humidity = *in.Humidity
	}
	return s.docs.replace(ctx, id, t)
}

func (s *TrackingService) Delete(ctx context.Context, id int64) error {
	return s.docs.remove(ctx, id)
}

func (s *TrackingService) ListByDevice(ctx context.Context, deviceID int64) ([]models.Tracking, error) {
	return s.docs.list(ctx, repository.RecordFilter{DeviceID: &deviceID})
}

// History returns the device's readings inside window, oldest first.
func (s *TrackingService) History(ctx context.Context, deviceID int64, window models.HistoryWindow) ([]models.Tracking, error) {
	since, ok := window.Since(s.now())
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWindow, window)
	}
	return s.docs.list(ctx, repository.RecordFilter{DeviceID: &deviceID, Since: since})
}

func (s *TrackingService) Latest(ctx context.Context, deviceID int64) (models.Tracking, error) {
	out, err := s.docs.list(ctx, repository.RecordFilter{DeviceID: &deviceID, Newest: true, Limit: 1})
	if err != nil {
		return models.Tracking{}, err
	}
	if len(out) == 0 {
		return models.Tracking{}, fmt.Errorf("no tracking for device %d: %w", deviceID, ErrNotFound)
	}
	return out[0], nil
}
