package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"auto_grow/internal/models"
)

const (
	DevicesPath       = "/api/devices/"
	StagesPath        = "/api/stages/"
	ProtocolsPath     = "/api/protocols/"
	TrackingsPath     = "/api/trackings/"
	CustomActionsPath = "/api/custom-actions/"
)

type (
	DevicesAPI       = Resource[models.Device, models.DeviceCreate, models.DeviceUpdate]
	StagesAPI        = Resource[models.Stage, models.StageCreate, models.StageUpdate]
	ProtocolsAPI     = Resource[models.Protocol, models.ProtocolCreate, models.ProtocolUpdate]
	CustomActionsAPI = Resource[models.CustomAction, models.CustomActionCreate, models.CustomActionUpdate]
)

func (c *Client) Devices() DevicesAPI {
	return DevicesAPI{c: c, base: DevicesPath}
}

func (c *Client) Stages() StagesAPI {
	return StagesAPI{c: c, base: StagesPath}
}

func (c *Client) Protocols() ProtocolsAPI {
	return ProtocolsAPI{c: c, base: ProtocolsPath}
}

func (c *Client) CustomActions() CustomActionsAPI {
	return CustomActionsAPI{c: c, base: CustomActionsPath}
}

// TrackingsAPI adds the per-device queries to the common CRUD surface.
type TrackingsAPI struct {
	Resource[models.Tracking, models.TrackingCreate, models.TrackingUpdate]
}

func (c *Client) Trackings() TrackingsAPI {
	return TrackingsAPI{Resource[models.Tracking, models.TrackingCreate, models.TrackingUpdate]{c: c, base: TrackingsPath}}
}

func (t TrackingsAPI) ListByDevice(ctx context.Context, deviceID int64) ([]models.Tracking, error) {
	return request[[]models.Tracking](ctx, t.c, http.MethodGet, devicePath(deviceID), nil)
}

// ListByDeviceHistory passes window through unchanged; the server decides
// which tokens it accepts.
func (t TrackingsAPI) ListByDeviceHistory(ctx context.Context, deviceID int64, window models.HistoryWindow) ([]models.Tracking, error) {
	path := devicePath(deviceID) + "/history/" + url.PathEscape(string(window))
	return request[[]models.Tracking](ctx, t.c, http.MethodGet, path, nil)
}

func (t TrackingsAPI) Latest(ctx context.Context, deviceID int64) (models.Tracking, error) {
	return request[models.Tracking](ctx, t.c, http.MethodGet, devicePath(deviceID)+"/latest", nil)
}

func devicePath(deviceID int64) string {
	return fmt.Sprintf("%sdevice/%d", TrackingsPath, deviceID)
}
