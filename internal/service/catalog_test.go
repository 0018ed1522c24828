package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"auto_grow/internal/models"
	"auto_grow/internal/repository"
)

type catalog struct {
	repo      *memRecords
	stages    *StageService
	devices   *DeviceService
	protocols *ProtocolService
	trackings *TrackingService
	actions   *CustomActionService
}

func newCatalog() *catalog {
	repo := newMemRecords()
	stages := NewStageService(repo)
	devices := NewDeviceService(repo, stages)
	protocols := NewProtocolService(repo, stages)
	return &catalog{
		repo:      repo,
		stages:    stages,
		devices:   devices,
		protocols: protocols,
		trackings: NewTrackingService(repo, devices, protocols),
		actions:   NewCustomActionService(repo, devices),
	}
}

func mustStage(t *testing.T, c *catalog, name string) models.Stage {
	t.Helper()
	st, err := c.stages.Create(context.Background(), models.StageCreate{Name: name})
	if err != nil {
		t.Fatalf("create stage: %v", err)
	}
	return st
}

func mustDevice(t *testing.T, c *catalog, name string, stageID int64) models.Device {
	t.Helper()
	ctx := context.Background()
	d, err := c.devices.Create(ctx, models.DeviceCreate{Name: name, Status: "active"})
	if err != nil {
		t.Fatalf("create device: %v", err)
	}
	if stageID != 0 {
		if d, err = c.devices.Update(ctx, d.ID, models.DeviceUpdate{StageID: &stageID}); err != nil {
			t.Fatalf("attach stage: %v", err)
		}
	}
	return d
}

func TestStageService_CRUD(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()

	if _, err := c.stages.Create(ctx, models.StageCreate{Name: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank name: got %v, want ErrInvalidInput", err)
	}

	st := mustStage(t, c, "Vegetative")
	if st.ID == 0 || st.CreatedAt == nil || st.UpdatedAt == nil {
		t.Fatalf("stamp not applied: %+v", st)
	}

	name := "Flowering"
	upd, err := c.stages.Update(ctx, st.ID, models.StageUpdate{Name: &name})
	if err != nil || upd.Name != "Flowering" || upd.ID != st.ID {
		t.Fatalf("Update() = %+v, %v", upd, err)
	}

	if err := c.stages.Delete(ctx, st.ID); err != nil {
		t.Fatalf("Delete() = %v", err)
	}
	if _, err := c.stages.Get(ctx, st.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() after delete = %v, want ErrNotFound", err)
	}
	if err := c.stages.Delete(ctx, st.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete() = %v, want ErrNotFound", err)
	}
}

func TestDeviceService_StageEmbedIsSnapshot(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()

	st := mustStage(t, c, "Seedling")
	d := mustDevice(t, c, "Tent A", st.ID)
	if d.Stage == nil || d.Stage.Name != "Seedling" {
		t.Fatalf("stage not embedded: %+v", d.Stage)
	}

	// Renaming the stage does not rewrite the cached view on the device.
	newName := "Seedling v2"
	if _, err := c.stages.Update(ctx, st.ID, models.StageUpdate{Name: &newName}); err != nil {
		t.Fatalf("rename stage: %v", err)
	}
	got, err := c.devices.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("Get() = %v", err)
	}
	if got.Stage.Name != "Seedling" {
		t.Fatalf("embed changed to %q", got.Stage.Name)
	}

	zero := int64(0)
	got, err = c.devices.Update(ctx, d.ID, models.DeviceUpdate{StageID: &zero})
	if err != nil || got.Stage != nil {
		t.Fatalf("detach: %+v, %v", got.Stage, err)
	}
}

func TestDeviceService_UnknownStageIsInvalidInput(t *testing.T) {
	c := newCatalog()
	d := mustDevice(t, c, "Tent", 0)

	missing := int64(404)
	_, err := c.devices.Update(context.Background(), d.ID, models.DeviceUpdate{StageID: &missing})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestDeviceService_PartialUpdateKeepsOtherFields(t *testing.T) {
	c := newCatalog()
	d := mustDevice(t, c, "Tent", 0)

	status := "maintenance"
	got, err := c.devices.Update(context.Background(), d.ID, models.DeviceUpdate{Status: &status})
	if err != nil {
		t.Fatalf("Update() = %v", err)
	}
	if got.Name != "Tent" || got.Status != "maintenance" {
		t.Fatalf("unexpected device: %+v", got)
	}
}

func TestProtocolService_Validation(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()
	st := mustStage(t, c, "Veg")

	tests := []struct {
		name string
		in   models.ProtocolCreate
	}{
		{"blank name", models.ProtocolCreate{Name: "", StageID: st.ID}},
		{"negative delay", models.ProtocolCreate{Name: "p", StageID: st.ID, Delay: -1}},
		{"unknown stage", models.ProtocolCreate{Name: "p", StageID: 999}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.protocols.Create(ctx, tt.in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("got %v, want ErrInvalidInput", err)
			}
		})
	}

	p, err := c.protocols.Create(ctx, models.ProtocolCreate{Name: "p", StageID: st.ID, Delay: 30})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	bad := 24
	if _, err := c.protocols.Update(ctx, p.ID, models.ProtocolUpdate{EndHour: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("hour 24: got %v", err)
	}

	temp, start := 24.5, 6
	upd, err := c.protocols.Update(ctx, p.ID, models.ProtocolUpdate{IdealTemperature: &temp, StartHour: &start})
	if err != nil {
		t.Fatalf("Update() = %v", err)
	}
	if upd.IdealTemperature == nil || *upd.IdealTemperature != 24.5 || *upd.StartHour != 6 || upd.Delay != 30 {
		t.Fatalf("unexpected protocol: %+v", upd)
	}
	if upd.IdealCo2 != nil {
		t.Fatalf("unset ideal became %v", *upd.IdealCo2)
	}
}

func TestTrackingService_CreateEmbedsDeviceAndStageProtocol(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()

	st := mustStage(t, c, "Veg")
	p, err := c.protocols.Create(ctx, models.ProtocolCreate{Name: "veg-day", StageID: st.ID})
	if err != nil {
		t.Fatalf("create protocol: %v", err)
	}
	d := mustDevice(t, c, "Tent", st.ID)

	tr, err := c.trackings.Create(ctx, models.TrackingCreate{DeviceID: d.ID, Temperature: 23, AirHumidity: 60, Ppfd: 10})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if tr.ProtocolID != p.ID || tr.Protocol == nil || tr.Device == nil || tr.Device.ID != d.ID {
		t.Fatalf("embeds missing: %+v", tr)
	}
	if tr.Lux != 540 || tr.Humidity != 60 {
		t.Fatalf("derived fields: lux=%v humidity=%v", tr.Lux, tr.Humidity)
	}

	if _, err := c.trackings.Create(ctx, models.TrackingCreate{DeviceID: 999}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown device: got %v", err)
	}
}

func TestTrackingService_HistoryAndLatest(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()
	d := mustDevice(t, c, "Tent", 0)
	other := mustDevice(t, c, "Other", 0)

	now := time.Date(2025, 8, 31, 15, 0, 0, 0, time.UTC)
	c.trackings.now = func() time.Time { return now }

	at := func(ts time.Time, dev int64, temp float64) {
		c.repo.now = func() time.Time { return ts }
		if _, err := c.trackings.Create(ctx, models.TrackingCreate{DeviceID: dev, Temperature: temp}); err != nil {
			t.Fatalf("create tracking: %v", err)
		}
	}
	at(now.AddDate(0, -2, 0), d.ID, 1)
	at(now.AddDate(0, 0, -3), d.ID, 2)
	at(now.Add(-time.Hour), d.ID, 3)
	at(now.Add(-time.Minute), other.ID, 99)

	tests := []struct {
		window models.HistoryWindow
		want   []float64
	}{
		{models.HistoryToday, []float64{3}},
		{models.HistoryWeek, []float64{2, 3}},
		{models.HistoryMonth, []float64{2, 3}},
		{models.HistoryQuarter, []float64{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(string(tt.window), func(t *testing.T) {
			got, err := c.trackings.History(ctx, d.ID, tt.window)
			if err != nil {
				t.Fatalf("History() = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("History() len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Temperature != tt.want[i] {
					t.Fatalf("History()[%d].Temperature = %v, want %v", i, got[i].Temperature, tt.want[i])
				}
			}
		})
	}

	if _, err := c.trackings.History(ctx, d.ID, "fortnight"); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("unknown window: got %v", err)
	}

	latest, err := c.trackings.Latest(ctx, d.ID)
	if err != nil || latest.Temperature != 3 {
		t.Fatalf("Latest() = %+v, %v", latest, err)
	}
	if _, err := c.trackings.Latest(ctx, 12345); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Latest() for unknown device = %v", err)
	}

	all, err := c.trackings.ListByDevice(ctx, d.ID)
	if err != nil || len(all) != 3 {
		t.Fatalf("ListByDevice() = %d items, %v", len(all), err)
	}
}

func TestCustomActionService_Validates(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()
	d := mustDevice(t, c, "Tent", 0)

	if _, err := c.actions.Create(ctx, models.CustomActionCreate{DeviceID: d.ID, Status: "paused"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad status: got %v", err)
	}
	if _, err := c.actions.Create(ctx, models.CustomActionCreate{DeviceID: d.ID, Status: "active", Cycles: 3, MaxCycles: 2}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("cycles > max: got %v", err)
	}

	a, err := c.actions.Create(ctx, models.CustomActionCreate{DeviceID: d.ID, Status: "active", TurnWaterOn: 1, MaxCycles: 5})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if a.Device == nil || a.Device.ID != d.ID || a.CreatedAt == nil {
		t.Fatalf("unexpected action: %+v", a)
	}

	six := 6
	if _, err := c.actions.Update(ctx, a.ID, models.CustomActionUpdate{Cycles: &six}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("update beyond max: got %v", err)
	}
	inactive := models.ActionInactive
	upd, err := c.actions.Update(ctx, a.ID, models.CustomActionUpdate{Status: &inactive})
	if err != nil || upd.Status != "inactive" || upd.TurnWaterOn != 1 {
		t.Fatalf("Update() = %+v, %v", upd, err)
	}
}

func TestCollection_KindsDoNotCollide(t *testing.T) {
	c := newCatalog()
	st := mustStage(t, c, "Veg")

	if _, err := c.devices.Get(context.Background(), st.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("stage id resolved as device: %v", err)
	}
}

var _ repository.RecordRepo = (*memRecords)(nil)
