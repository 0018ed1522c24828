package client

import (
	"context"
	"fmt"

	"auto_grow/internal/models"

	"golang.org/x/sync/errgroup"
)

// Snapshot is the catalog view used by dashboards, keyed by entity id.
type Snapshot struct {
	Devices   map[int64]models.Device
	Stages    map[int64]models.Stage
	Protocols map[int64]models.Protocol
}

// Snapshot fetches devices, stages and protocols concurrently. Each result
// lands in its own field regardless of which call finishes first; the
// first failure is returned.
func (c *Client) Snapshot(ctx context.Context) (Snapshot, error) {
	var (
		devices   []models.Device
		stages    []models.Stage
		protocols []models.Protocol
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		devices, err = c.Devices().List(gctx)
		if err != nil {
			return fmt.Errorf("devices: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		stages, err = c.Stages().List(gctx)
		if err != nil {
			return fmt.Errorf("stages: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		protocols, err = c.Protocols().List(gctx)
		if err != nil {
			return fmt.Errorf("protocols: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	s := Snapshot{
		Devices:   make(map[int64]models.Device, len(devices)),
		Stages:    make(map[int64]models.Stage, len(stages)),
		Protocols: make(map[int64]models.Protocol, len(protocols)),
	}
	for _, d := range devices {
		s.Devices[d.ID] = d
	}
	for _, st := range stages {
		s.Stages[st.ID] = st
	}
	for _, p := range protocols {
		s.Protocols[p.ID] = p
	}
	return s, nil
}
