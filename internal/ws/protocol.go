package ws

import "encoding/json"

// Frame is the envelope for all WebSocket traffic. The dashboard mirrors
// these types on its side rather than importing this package.
type Frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	FrameCmd       = "cmd"
	FrameMessage   = "message"
	FrameTelemetry = "telemetry"
)

// Message is the inner envelope carried by FrameMessage payloads.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

const (
	MsgTelemetry = "telemetry"
	MsgAck       = "ack"
	MsgLog       = "log"
)

// CmdPayload is the data field of an inbound FrameCmd.
type CmdPayload struct {
	Cmd string `json:"cmd"`
}

// FallbackBody is the JSON body accepted by POST /cmd.
type FallbackBody struct {
	C string `json:"c"`
}

// MessageFrame wraps an inner message into a broadcastable frame.
func MessageFrame(msgType string, data any) (Frame, error) {
	inner, err := json.Marshal(Message{Type: msgType, Data: data})
	if err != nil {
		return Frame{}, err
	}
	return Frame{Type: FrameMessage, Data: inner}, nil
}

// TelemetryFrame wraps telemetry data into the direct frame shape that
// older dashboard builds subscribe to.
func TelemetryFrame(data any) (Frame, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Type: FrameTelemetry, Data: raw}, nil
}
