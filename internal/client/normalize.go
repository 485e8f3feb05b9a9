package client

import "encoding/json"

// normalizer maps one inbound payload to exactly one bus event. The robot
// speaks several shapes over the same channel: enveloped messages with a
// type discriminator, bare telemetry frames, and (from the bootloader and
// older firmware) plain text that is not JSON at all.
type normalizer struct {
	bus *EventBus
}

// message is the inner envelope carried by FrameMessage payloads.
type message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// handleMessage classifies one FrameMessage payload.
func (n normalizer) handleMessage(payload []byte) {
	var msg message
	if err := json.Unmarshal(payload, &msg); err != nil {
		// Not JSON: surface the raw text verbatim and stop.
		n.bus.publishLog(PrefixRX + string(payload))
		return
	}

	switch msg.Type {
	case MsgTelemetry:
		n.bus.publishTelemetry(msg.Data)
	case MsgAck:
		ack := renderData(msg.Data)
		n.bus.publishAck(ack)
		n.bus.publishLog(PrefixRX + "ack: " + ack)
	case MsgLog:
		n.bus.publishLog(PrefixRX + renderData(msg.Data))
	default:
		n.bus.publishLog(PrefixRX + string(payload))
	}
}

// handleTelemetry handles the direct telemetry frame. Both inbound paths
// deliver the same data field to the same telemetry event.
func (n normalizer) handleTelemetry(data json.RawMessage) {
	n.bus.publishTelemetry(data)
}

// renderData renders a data field for display: JSON strings lose their
// quotes, everything else keeps its JSON rendering.
func renderData(data json.RawMessage) string {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	return string(data)
}
