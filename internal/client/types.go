// Package client implements the transport/session layer of the ARECAbot
// control deck: a persistent WebSocket channel with a single-shot HTTP
// fallback, plus normalization of the robot's mixed inbound payload shapes
// into a fixed set of events. Types mirror the firmware wire protocol
// without importing simulator packages.
package client

import (
	"encoding/json"
	"fmt"
)

// FrameType identifies the kind of WebSocket frame.
type FrameType string

const (
	// FrameCmd carries an outbound command: data = {"cmd": "<token>"}.
	FrameCmd FrameType = "cmd"
	// FrameMessage carries an inbound payload that still needs
	// classification by its inner discriminator.
	FrameMessage FrameType = "message"
	// FrameTelemetry carries telemetry data directly, without the
	// message envelope. Older firmware builds emit this shape.
	FrameTelemetry FrameType = "telemetry"
)

// Frame is the envelope for all WebSocket traffic.
type Frame struct {
	Type FrameType       `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Inner discriminator values carried by FrameMessage payloads.
const (
	MsgTelemetry = "telemetry"
	MsgAck       = "ack"
	MsgLog       = "log"
)

// CmdPayload is the data field of an outbound FrameCmd.
type CmdPayload struct {
	Cmd string `json:"cmd"`
}

// FallbackBody is the JSON body of the one-shot HTTP fallback request.
type FallbackBody struct {
	C string `json:"c"`
}

// Command vocabulary understood by the firmware. The session layer never
// interprets these; they are transmitted as opaque strings.
const (
	CmdForward  = "F"
	CmdBackward = "B"
	CmdLeft     = "L"
	CmdRight    = "R"
	CmdStop     = "STOP"

	CmdModeAuto   = "MODE AUTO"
	CmdModeManual = "MODE MANUAL"

	CmdStatus = "STATUS"

	CmdRollerOn  = "ROLLER ON"
	CmdRollerOff = "ROLLER OFF"
)

// Speed axes for parameterized speed commands.
const (
	AxisSpeedLeft  = "SPDL"
	AxisSpeedRight = "SPDR"
)

// SpeedCommand builds a parameterized speed directive of the form
// "<AXIS> <value>". Range clamping is the caller's job; the wire accepts
// whatever it is given.
func SpeedCommand(axis string, value int) string {
	return fmt.Sprintf("%s %d", axis, value)
}

// Log line prefixes. The session layer emits every log event with one of
// these so consumers can classify lines without parsing their content.
const (
	PrefixTX  = "TX: "
	PrefixRX  = "RX: "
	PrefixSYS = "SYS: "
)
