package autosave

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/ViniDeiro/daily-icu/internal/domain"
)

// Draft is one editable snapshot of a day form, handed to the coalescer
// on every change.
type Draft struct {
	DayID    string
	DayDate  time.Time
	Override bool

	DailyPlan string
	Fields    domain.ClinicalFields

	// DevicesRaw is the device list as typed: comma-separated free
	// text. It is normalized before fingerprinting and saving and takes
	// precedence over Fields.Devices when non-empty.
	DevicesRaw string
}

// NormalizeDevices splits raw comma-separated device input, trims each
// entry and drops empties, so "CVC, SVD,,  " and "CVC,SVD" are the same
// list.
func NormalizeDevices(raw string) []string {
	parts := strings.Split(raw, ",")
	devices := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			devices = append(devices, p)
		}
	}
	return devices
}

func (d Draft) devices() []string {
	if strings.TrimSpace(d.DevicesRaw) != "" {
		return NormalizeDevices(d.DevicesRaw)
	}
	return append([]string{}, d.Fields.Devices...)
}

type fingerprintPayload struct {
	DayID     string
	DailyPlan string
	Fields    domain.ClinicalFields
}

// Fingerprint serializes the draft content to a canonical form. Two
// drafts with the same fingerprint represent the same saved state, so
// the second one is not worth a write. The day id is part of the
// fingerprint: switching days always looks like a change.
func Fingerprint(d Draft) string {
	payload := fingerprintPayload{
		DayID:     d.DayID,
		DailyPlan: d.DailyPlan,
		Fields:    d.Fields,
	}
	payload.Fields.Devices = d.devices()

	raw, err := json.Marshal(payload)
	if err != nil {
		// ClinicalFields is plain data; Marshal cannot fail on it.
		return ""
	}
	return string(raw)
}
