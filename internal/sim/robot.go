// Package sim is a scripted stand-in for the ARECAbot firmware: it drives
// a simple kinematic model, answers every command with an ack, and emits
// telemetry in the same mixed shapes the real robot does.
package sim

import (
	"context"
	"log"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/samartha-hm/ARECAbot/internal/config"
	"github.com/samartha-hm/ARECAbot/internal/ws"
)

// Broadcaster is where the robot publishes its frames; the ws.Hub in
// production, a collector in tests.
type Broadcaster interface {
	Broadcast(v any)
}

// Drive states reported in telemetry.
const (
	stateIdle    = 0
	stateDriving = 1
	stateAuto    = 2
)

var compass = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Robot holds the simulated drive and mechanism state.
type Robot struct {
	out Broadcaster
	cfg config.SimConfig

	mu      sync.Mutex
	x, y    float64
	heading float64 // degrees, 0 = north, clockwise
	motion  string  // one of F/B/L/R, or "" when stopped
	speedL  int
	speedR  int
	roller  bool
	auto    bool
	ticks   int
}

func New(out Broadcaster, cfg config.SimConfig) *Robot {
	return &Robot{
		out:    out,
		cfg:    cfg,
		speedL: 180,
		speedR: 180,
	}
}

// Apply executes one command token and broadcasts an ack for it. Unknown
// tokens still get an ack — the firmware acknowledges receipt, not
// validity — plus a log frame flagging them.
func (r *Robot) Apply(cmd string) {
	r.mu.Lock()
	unknown := false
	switch {
	case cmd == "F" || cmd == "B" || cmd == "L" || cmd == "R":
		r.motion = cmd
	case cmd == "STOP":
		r.motion = ""
	case cmd == "MODE AUTO":
		r.auto = true
	case cmd == "MODE MANUAL":
		r.auto = false
		r.motion = ""
	case cmd == "ROLLER ON":
		r.roller = true
	case cmd == "ROLLER OFF":
		r.roller = false
	case cmd == "STATUS":
		// Answered below with an immediate full telemetry frame.
	case strings.HasPrefix(cmd, "SPDL "):
		r.speedL = clampSpeed(parseSpeed(cmd))
	case strings.HasPrefix(cmd, "SPDR "):
		r.speedR = clampSpeed(parseSpeed(cmd))
	default:
		unknown = true
	}
	status := cmd == "STATUS"
	r.mu.Unlock()

	r.broadcastMessage(ws.MsgAck, cmd)
	if unknown {
		r.broadcastMessage(ws.MsgLog, "unknown command: "+cmd)
	}
	if status {
		r.broadcastMessage(ws.MsgTelemetry, r.telemetryLong())
	}
}

// Start runs the drive integration and telemetry loop until ctx ends.
func (r *Robot) Start(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.step(r.cfg.TickInterval.Seconds())
			r.emitTelemetry()
		}
	}
}

// step advances the kinematic model by dt seconds.
func (r *Robot) step(dt float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ticks++

	if r.auto {
		// Auto mode patrols the fence line: advance and curve gently.
		r.heading += 10 * dt
		r.advance(0.5 * dt)
		return
	}

	speed := float64(r.speedL+r.speedR) / 2 / 255 // 0..1
	switch r.motion {
	case "F":
		r.advance(speed * dt)
	case "B":
		r.advance(-speed * dt)
	case "L":
		r.heading -= 45 * dt
	case "R":
		r.heading += 45 * dt
	}
	r.heading = math.Mod(r.heading+360, 360)
}

// advance moves along the current heading, stopping at the fence.
func (r *Robot) advance(d float64) {
	rad := r.heading * math.Pi / 180
	nx := r.x + d*math.Sin(rad)
	ny := r.y + d*math.Cos(rad)
	if math.Hypot(nx, ny) < r.cfg.FenceRadius {
		r.x, r.y = nx, ny
	}
}

// emitTelemetry broadcasts one telemetry frame per tick, alternating
// between the enveloped and direct frame shapes and between the long-form
// and short-form key conventions, the way mixed firmware fleets do.
func (r *Robot) emitTelemetry() {
	r.mu.Lock()
	ticks := r.ticks
	nearFence := r.cfg.FenceRadius-math.Hypot(r.x, r.y) < 2
	r.mu.Unlock()

	var data any
	if ticks%2 == 0 {
		data = r.telemetryLong()
	} else {
		data = r.telemetryShort()
	}

	if ticks%4 < 2 {
		r.broadcastMessage(ws.MsgTelemetry, data)
	} else {
		frame, err := ws.TelemetryFrame(data)
		if err != nil {
			log.Printf("telemetry frame error: %v", err)
			return
		}
		r.out.Broadcast(frame)
	}

	if nearFence && ticks%10 == 0 {
		r.broadcastMessage(ws.MsgLog, "fence proximity warning")
	}
}

func (r *Robot) broadcastMessage(msgType string, data any) {
	frame, err := ws.MessageFrame(msgType, data)
	if err != nil {
		log.Printf("message frame error: %v", err)
		return
	}
	r.out.Broadcast(frame)
}

func (r *Robot) telemetryLong() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return map[string]any{
		"ultrasonic":  round1(r.ultrasonicLocked()),
		"temperature": round1(hostTemperature()),
		"pressure":    round1(pressureReading()),
		"state":       r.stateLocked(),
		"position":    []float64{round2(r.x), round2(r.y)},
		"direction":   compassPoint(r.heading),
	}
}

func (r *Robot) telemetryShort() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return map[string]any{
		"US":  round1(r.ultrasonicLocked()),
		"TC":  round1(hostTemperature()),
		"PA":  round1(pressureReading()),
		"ST":  r.stateLocked(),
		"XY":  []float64{round2(r.x), round2(r.y)},
		"HDG": compassPoint(r.heading),
	}
}

// ultrasonicLocked ranges against the fence along the radial, in cm.
// Callers hold r.mu.
func (r *Robot) ultrasonicLocked() float64 {
	d := (r.cfg.FenceRadius - math.Hypot(r.x, r.y)) * 100
	if d < 0 {
		return 0
	}
	return d
}

func (r *Robot) stateLocked() int {
	switch {
	case r.auto:
		return stateAuto
	case r.motion != "":
		return stateDriving
	default:
		return stateIdle
	}
}

// Position reports the current position, for tests and diagnostics.
func (r *Robot) Position() (x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.x, r.y
}

// Speeds reports the configured wheel speeds.
func (r *Robot) Speeds() (left, right int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.speedL, r.speedR
}

func compassPoint(heading float64) string {
	idx := int(math.Mod(heading+22.5, 360) / 45)
	return compass[idx%len(compass)]
}

func parseSpeed(cmd string) int {
	fields := strings.Fields(cmd)
	if len(fields) != 2 {
		return 0
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0
	}
	return n
}

func clampSpeed(n int) int {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// pressureReading wanders slowly around standard pressure.
func pressureReading() float64 {
	return 1013.25 + 2*math.Sin(float64(time.Now().Unix())/600)
}
