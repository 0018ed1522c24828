package service

import (
	"context"
	"sync"
	"time"

	"auto_grow/internal/logger"
	"auto_grow/internal/models"
)

// ----------- Simulation constants -----------
const (
	AmbientTempC        = 22.0  // °C with no protocol
	AmbientAirHumidity  = 55.0  // %
	AmbientSoilHumidity = 40.0  // %
	AmbientCo2          = 420.0 // ppm
	LightOnPPFD         = 600.0 // µmol/m²/s during the protocol's light hours

	TempStepC     = 0.5  // max change per tick
	HumidityStep  = 1.0  // % per tick
	SoilStep      = 0.5  // % per tick
	Co2StepPPM    = 10.0 // ppm per tick
	PPFDStepPerTk = 150.0
)

// DeviceStatusInactive devices are skipped by the simulator.
const DeviceStatusInactive = "inactive"

type reading struct {
	temp, air, soil, co2, ppfd float64
}

// SimulatorService feeds synthetic sensor readings for every active device,
// drifting each value toward the ideal of the protocol bound to the
// device's stage.
type SimulatorService struct {
	devices   *DeviceService
	protocols *ProtocolService
	trackings *TrackingService
	log       *logger.Logger

	mu   sync.Mutex
	last map[int64]reading
	now  func() time.Time
}

func NewSimulatorService(devices *DeviceService, protocols *ProtocolService, trackings *TrackingService, log *logger.Logger) *SimulatorService {
	return &SimulatorService{
		devices:   devices,
		protocols: protocols,
		trackings: trackings,
		log:       log,
		last:      make(map[int64]reading),
		now:       time.Now,
	}
}

// Run ticks at the given interval until ctx is canceled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := s.step(ctx); err != nil {
				s.log.Warnw("simulator_step_failed", "err", err)
			}
		}
	}
}

// step appends one reading per active device.
func (s *SimulatorService) step(ctx context.Context) error {
	devices, err := s.devices.List(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range devices {
		if d.Status == DeviceStatusInactive {
			continue
		}
		var p *models.Protocol
		if d.Stage != nil {
			if p, err = s.protocols.ForStage(ctx, d.Stage.ID); err != nil {
				return err
			}
		}

		cur, ok := s.last[d.ID]
		if !ok {
			cur = reading{temp: AmbientTempC, air: AmbientAirHumidity, soil: AmbientSoilHumidity, co2: AmbientCo2}
		}
		next := advance(cur, targetFor(p, s.now().Hour()))

		if _, err := s.trackings.Create(ctx, models.TrackingCreate{
			DeviceID:     d.ID,
			Temperature:  next.temp,
			AirHumidity:  next.air,
			SoilHumidity: next.soil,
			Co2:          next.co2,
			Ppfd:         next.ppfd,
		}); err != nil {
			return err
		}
		s.last[d.ID] = next
	}
	return nil
}

// targetFor returns the setpoints for a device. Unset ideals fall back to
// ambient; light follows the protocol's start/end hours.
func targetFor(p *models.Protocol, hour int) reading {
	t := reading{temp: AmbientTempC, air: AmbientAirHumidity, soil: AmbientSoilHumidity, co2: AmbientCo2}
	if p == nil {
		return t
	}
	t.temp = orDefault(p.IdealTemperature, t.temp)
	t.air = orDefault(p.IdealAirHumidity, t.air)
	t.soil = orDefault(p.IdealSoilHumidity, t.soil)
	t.co2 = orDefault(p.IdealCo2, t.co2)
	if p.StartHour != nil && p.EndHour != nil && lightsOn(*p.StartHour, *p.EndHour, hour) {
		t.ppfd = LightOnPPFD
	}
	return t
}

// lightsOn handles windows that wrap past midnight.
func lightsOn(start, end, hour int) bool {
	if start <= end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}

func advance(cur, target reading) reading {
	return reading{
		temp: approach(cur.temp, target.temp, TempStepC),
		air:  approach(cur.air, target.air, HumidityStep),
		soil: approach(cur.soil, target.soil, SoilStep),
		co2:  approach(cur.co2, target.co2, Co2StepPPM),
		ppfd: approach(cur.ppfd, target.ppfd, PPFDStepPerTk),
	}
}

// approach moves cur toward target by at most step.
func approach(cur, target, step float64) float64 {
	switch {
	case cur < target:
		return minFloat(cur+step, target)
	case cur > target:
		return maxFloat(cur-step, target)
	default:
		return cur
	}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// helpers
func maxFloat(a, b float64) float64 {
	if a >= b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a <= b {
		return a
	}
	return b
}
