package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"auto_grow/internal/client"
	"auto_grow/internal/models"
)

const timeLayout = "2006-01-02 15:04"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderDevices(w io.Writer, list []models.Device) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tSTAGE\tUPDATED")
	for _, d := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", d.ID, d.Name, orDash(d.Status), stageName(d.Stage), formatTime(d.UpdatedAt))
	}
	return tw.Flush()
}

func renderStages(w io.Writer, list []models.Stage) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, s := range list {
		fmt.Fprintf(tw, "%d\t%s\n", s.ID, s.Name)
	}
	return tw.Flush()
}

func renderProtocols(w io.Writer, list []models.Protocol) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tSTAGE\tDELAY\tHOURS\tTEMP\tAIR%\tSOIL%\tCO2")
	for _, p := range list {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.StageID, p.Delay, hours(p.StartHour, p.EndHour),
			optFloat(p.IdealTemperature), optFloat(p.IdealAirHumidity),
			optFloat(p.IdealSoilHumidity), optFloat(p.IdealCo2))
	}
	return tw.Flush()
}

func renderActions(w io.Writer, list []models.CustomAction) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDEVICE\tSTATUS\tCYCLES\tLIGHT\tWATER\tAC")
	for _, a := range list {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d/%d\t%.0f\t%s\t%s\n",
			a.ID, a.DeviceID, a.Status, a.Cycles, a.MaxCycles,
			a.TurnLightIntensity, onOff(a.TurnWaterOn), onOff(a.TurnACOn))
	}
	return tw.Flush()
}

func renderTrackings(w io.Writer, list []models.Tracking) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTIME\tTEMP\tAIR%\tSOIL%\tCO2\tLUX\tPROTOCOL")
	for _, t := range list {
		fmt.Fprintf(tw, "%d\t%s\t%.1f\t%.1f\t%.1f\t%.0f\t%.0f\t%s\n",
			t.ID, formatTime(t.CreatedAt), t.Temperature, t.AirHumidity,
			t.SoilHumidity, t.Co2, t.Lux, protocolName(t))
	}
	return tw.Flush()
}

// renderDashboard lists devices in id order with the protocols that apply
// to their current stage.
func renderDashboard(w io.Writer, snap client.Snapshot) error {
	perStage := make(map[int64]int, len(snap.Stages))
	for _, p := range snap.Protocols {
		perStage[p.StageID]++
	}

	ids := make([]int64, 0, len(snap.Devices))
	for id := range snap.Devices {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	fmt.Fprintf(w, "%d devices, %d stages, %d protocols\n\n", len(snap.Devices), len(snap.Stages), len(snap.Protocols))
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDEVICE\tSTATUS\tSTAGE\tPROTOCOLS")
	for _, id := range ids {
		d := snap.Devices[id]
		name, count := "-", 0
		if d.Stage != nil {
			name = d.Stage.Name
			if s, ok := snap.Stages[d.Stage.ID]; ok {
				name = s.Name // prefer the live name over the snapshot
			}
			count = perStage[d.Stage.ID]
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", d.ID, d.Name, orDash(d.Status), name, count)
	}
	return tw.Flush()
}

func stageName(s *models.Stage) string {
	if s == nil {
		return "-"
	}
	return s.Name
}

func protocolName(t models.Tracking) string {
	if t.Protocol != nil {
		return t.Protocol.Name
	}
	if t.ProtocolID != 0 {
		return fmt.Sprintf("#%d", t.ProtocolID)
	}
	return "-"
}

func hours(start, end *int) string {
	if start == nil || end == nil {
		return "-"
	}
	return fmt.Sprintf("%02d-%02d", *start, *end)
}

func optFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}

func onOff(v int) string {
	if v != 0 {
		return "on"
	}
	return "off"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}
