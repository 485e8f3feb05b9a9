package client

import (
	"encoding/json"
	"testing"
)

func TestReconcileTelemetryKeyPrecedence(t *testing.T) {
	tests := []struct {
		name string
		data string
		want float64
		get  func(Snapshot) *float64
	}{
		{
			name: "long-form temperature only",
			data: `{"temperature": 24.5}`,
			want: 24.5,
			get:  func(s Snapshot) *float64 { return s.Temperature },
		},
		{
			name: "short-form temperature only",
			data: `{"TC": 31.0}`,
			want: 31.0,
			get:  func(s Snapshot) *float64 { return s.Temperature },
		},
		{
			name: "long-form wins over short-form",
			data: `{"temperature": 24.5, "TC": 99}`,
			want: 24.5,
			get:  func(s Snapshot) *float64 { return s.Temperature },
		},
		{
			name: "ultrasonic long-form wins",
			data: `{"ultrasonic": 120, "US": 7}`,
			want: 120,
			get:  func(s Snapshot) *float64 { return s.Ultrasonic },
		},
		{
			name: "pressure short-form",
			data: `{"PA": 1013.2}`,
			want: 1013.2,
			get:  func(s Snapshot) *float64 { return s.Pressure },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReconcileTelemetry(json.RawMessage(tt.data))
			if err != nil {
				t.Fatalf("ReconcileTelemetry() error: %v", err)
			}
			v := tt.get(got)
			if v == nil {
				t.Fatalf("field absent, want %v", tt.want)
			}
			if *v != tt.want {
				t.Errorf("field = %v, want %v", *v, tt.want)
			}
		})
	}
}

func TestReconcileTelemetryPosition(t *testing.T) {
	tests := []struct {
		name string
		data string
		want *Position
	}{
		{"two-element pair", `{"position": [1.5, -2]}`, &Position{X: 1.5, Y: -2}},
		{"short-form pair", `{"XY": [3, 4]}`, &Position{X: 3, Y: 4}},
		{"long-form wins", `{"position": [1, 2], "XY": [9, 9]}`, &Position{X: 1, Y: 2}},
		{"one element is absent", `{"position": [1]}`, nil},
		{"three elements is absent", `{"position": [1, 2, 3]}`, nil},
		{"missing is absent", `{"temperature": 20}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReconcileTelemetry(json.RawMessage(tt.data))
			if err != nil {
				t.Fatalf("ReconcileTelemetry() error: %v", err)
			}
			if tt.want == nil {
				if got.Position != nil {
					t.Errorf("position = %+v, want absent", *got.Position)
				}
				return
			}
			if got.Position == nil {
				t.Fatalf("position absent, want %+v", *tt.want)
			}
			if *got.Position != *tt.want {
				t.Errorf("position = %+v, want %+v", *got.Position, *tt.want)
			}
		})
	}
}

func TestReconcileTelemetryScalars(t *testing.T) {
	got, err := ReconcileTelemetry(json.RawMessage(`{"state": 2, "HDG": "NE"}`))
	if err != nil {
		t.Fatalf("ReconcileTelemetry() error: %v", err)
	}
	if got.State != "2" {
		t.Errorf("state = %q, want %q", got.State, "2")
	}
	if got.Direction != "NE" {
		t.Errorf("direction = %q, want %q", got.Direction, "NE")
	}
}

func TestSnapshotMergeKeepsPriorValues(t *testing.T) {
	temp := 22.0
	dist := 80.0
	s := Snapshot{Temperature: &temp, Ultrasonic: &dist, State: "1"}

	press := 1011.0
	s.Merge(Snapshot{Pressure: &press, Direction: "N"})

	if s.Temperature == nil || *s.Temperature != 22.0 {
		t.Error("temperature should retain its prior value")
	}
	if s.Ultrasonic == nil || *s.Ultrasonic != 80.0 {
		t.Error("ultrasonic should retain its prior value")
	}
	if s.State != "1" {
		t.Error("state should retain its prior value")
	}
	if s.Pressure == nil || *s.Pressure != 1011.0 {
		t.Error("pressure should take the update's value")
	}
	if s.Direction != "N" {
		t.Error("direction should take the update's value")
	}
}
