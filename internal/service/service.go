package service

import (
	"context"
	"errors"
	"time"

	"auto_grow/internal/logger"
	"auto_grow/internal/models"
	"auto_grow/internal/repository"
)

// Domain errors shared by the catalog services. Handlers map them to
// HTTP statuses.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidWindow = errors.New("invalid history window")
)

// Authorization checks a username/password pair against the configured one.
type Authorization interface {
	Verify(username, password string) error
}

// CRUD is the collection surface of every catalog entity.
type CRUD[T, C, U any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, in C) (T, error)
	Update(ctx context.Context, id int64, in U) (T, error)
	Delete(ctx context.Context, id int64) error
}

type Devices = CRUD[models.Device, models.DeviceCreate, models.DeviceUpdate]
type Stages = CRUD[models.Stage, models.StageCreate, models.StageUpdate]
type Protocols = CRUD[models.Protocol, models.ProtocolCreate, models.ProtocolUpdate]
type CustomActions = CRUD[models.CustomAction, models.CustomActionCreate, models.CustomActionUpdate]

// Trackings adds the per-device queries.
type Trackings interface {
	CRUD[models.Tracking, models.TrackingCreate, models.TrackingUpdate]
	ListByDevice(ctx context.Context, deviceID int64) ([]models.Tracking, error)
	History(ctx context.Context, deviceID int64, window models.HistoryWindow) ([]models.Tracking, error)
	Latest(ctx context.Context, deviceID int64) (models.Tracking, error)
}

// Simulator appends synthetic sensor readings until ctx is canceled.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates the sub-services used by the HTTP layer.
type Service struct {
	Authorization
	Simulator

	Devices       Devices
	Stages        Stages
	Protocols     Protocols
	Trackings     Trackings
	CustomActions CustomActions
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, auth Authorization, log *logger.Logger) *Service {
	stages := NewStageService(repos.Records)
	devices := NewDeviceService(repos.Records, stages)
	protocols := NewProtocolService(repos.Records, stages)
	trackings := NewTrackingService(repos.Records, devices, protocols)

	return &Service{
		Authorization: auth,
		Simulator:     NewSimulatorService(devices, protocols, trackings, log),
		Devices:       devices,
		Stages:        stages,
		Protocols:     protocols,
		Trackings:     trackings,
		CustomActions: NewCustomActionService(repos.Records, devices),
	}
}
