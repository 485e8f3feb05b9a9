package client

import (
	"encoding/json"
	"strconv"
)

// Position is the robot's planar position in meters from its start point.
type Position struct {
	X float64
	Y float64
}

// Snapshot is the latest known merged telemetry state. Pointer fields are
// nil while no reading has arrived; State and Direction are empty strings
// until first reported. A snapshot is only ever updated incrementally via
// Merge, never replaced wholesale.
type Snapshot struct {
	Ultrasonic  *float64
	Temperature *float64
	Pressure    *float64
	State       string
	Position    *Position
	Direction   string
}

// Merge overlays the fields present in update onto the snapshot. Absent
// fields keep their prior values.
func (s *Snapshot) Merge(update Snapshot) {
	if update.Ultrasonic != nil {
		s.Ultrasonic = update.Ultrasonic
	}
	if update.Temperature != nil {
		s.Temperature = update.Temperature
	}
	if update.Pressure != nil {
		s.Pressure = update.Pressure
	}
	if update.State != "" {
		s.State = update.State
	}
	if update.Position != nil {
		s.Position = update.Position
	}
	if update.Direction != "" {
		s.Direction = update.Direction
	}
}

// telemetryWire covers both key conventions the firmware has shipped with:
// long-form lower-case keys and the short-form upper-case keys of the
// memory-constrained builds. json.Number fields tolerate both numeric and
// quoted renderings of state/direction.
type telemetryWire struct {
	Ultrasonic  *float64        `json:"ultrasonic"`
	Temperature *float64        `json:"temperature"`
	Pressure    *float64        `json:"pressure"`
	State       json.RawMessage `json:"state"`
	Position    []float64       `json:"position"`
	Direction   json.RawMessage `json:"direction"`

	US  *float64        `json:"US"`
	TC  *float64        `json:"TC"`
	PA  *float64        `json:"PA"`
	ST  json.RawMessage `json:"ST"`
	XY  []float64       `json:"XY"`
	HDG json.RawMessage `json:"HDG"`
}

// ReconcileTelemetry resolves one raw telemetry data payload into a partial
// Snapshot. For every logical field the long-form key wins when both
// conventions are present. A position is accepted only as a two-element
// pair; any other shape leaves the field absent.
func ReconcileTelemetry(data json.RawMessage) (Snapshot, error) {
	var w telemetryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return Snapshot{}, err
	}

	var out Snapshot
	out.Ultrasonic = pickNumber(w.Ultrasonic, w.US)
	out.Temperature = pickNumber(w.Temperature, w.TC)
	out.Pressure = pickNumber(w.Pressure, w.PA)
	out.State = pickScalar(w.State, w.ST)
	out.Direction = pickScalar(w.Direction, w.HDG)
	out.Position = pickPosition(w.Position, w.XY)
	return out, nil
}

func pickNumber(long, short *float64) *float64 {
	if long != nil {
		return long
	}
	return short
}

func pickScalar(long, short json.RawMessage) string {
	if s := scalarText(long); s != "" {
		return s
	}
	return scalarText(short)
}

func pickPosition(long, short []float64) *Position {
	if p := asPair(long); p != nil {
		return p
	}
	return asPair(short)
}

func asPair(v []float64) *Position {
	if len(v) != 2 {
		return nil
	}
	return &Position{X: v[0], Y: v[1]}
}

// scalarText renders a state/direction value that may arrive as a JSON
// string or number. Anything else reads as absent.
func scalarText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}
