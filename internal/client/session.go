package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
)

// SessionClient owns the persistent channel to the robot and the one-shot
// HTTP fallback. All outcomes — connects, drops, acks, telemetry, failures —
// surface as bus events; no method ever returns an error to the caller.
type SessionClient struct {
	cfg   Config
	bus   *EventBus
	httpc *http.Client

	mu        sync.Mutex
	writeMu   sync.Mutex // serialises all conn writes (cmd, ping)
	conn      *websocket.Conn
	connected bool
	cancel    context.CancelFunc
}

// New creates a client for the endpoint described by cfg. Nothing is dialed
// until Connect.
func New(cfg Config) *SessionClient {
	return &SessionClient{
		cfg:   cfg,
		bus:   NewEventBus(),
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

// Bus exposes the event subscription surface. Subscribe before Connect to
// observe the first connectivity flip.
func (c *SessionClient) Bus() *EventBus { return c.bus }

// Connected reports whether the persistent channel is currently up.
func (c *SessionClient) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Connect starts the channel lifecycle in the background: dial, read until
// the connection drops, redial with doubling backoff, up to the configured
// attempt budget. Exhausting the budget parks the client disconnected until
// Connect is called again. Calling Connect while a previous lifecycle is
// running replaces it.
func (c *SessionClient) Connect(ctx context.Context) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	go c.run(runCtx)
}

// Close tears down the channel and stops reconnecting.
func (c *SessionClient) Close() {
	c.mu.Lock()
	cancel := c.cancel
	conn := c.conn
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if conn != nil {
		conn.Close()
	}
}

func (c *SessionClient) run(ctx context.Context) {
	norm := normalizer{bus: c.bus}
	attempts := 0
	delay := c.cfg.ReconnectBaseDelay

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		dialer := websocket.Dialer{HandshakeTimeout: c.cfg.DialTimeout}
		conn, _, err := dialer.DialContext(ctx, c.cfg.WSURL(), nil)
		if err != nil {
			attempts++
			if attempts >= c.cfg.MaxReconnects {
				c.bus.publishLog(PrefixSYS + "reconnect budget exhausted: " + err.Error())
				return
			}
			log.Printf("ws dial error: %v (retry in %v)", err, delay)
			if !sleepCtx(ctx, delay) {
				return
			}
			delay = min(delay*2, c.cfg.ReconnectMaxDelay)
			continue
		}

		attempts = 0
		delay = c.cfg.ReconnectBaseDelay

		c.mu.Lock()
		c.conn = conn
		c.connected = true
		c.mu.Unlock()

		c.bus.publishConnectivity(true)
		c.bus.publishLog(fmt.Sprintf("%slink up %s:%d", PrefixSYS, c.cfg.Host, c.cfg.Port))

		pingCtx, pingCancel := context.WithCancel(ctx)
		go c.pingLoop(pingCtx, conn)

		err = c.readLoop(conn, norm)
		pingCancel()

		c.mu.Lock()
		if c.conn == conn {
			c.conn = nil
			c.connected = false
		}
		c.mu.Unlock()
		conn.Close()

		c.bus.publishConnectivity(false)
		c.bus.publishLog(PrefixSYS + "link down: " + err.Error())

		if ctx.Err() != nil {
			return
		}
	}
}

// readLoop processes inbound frames one at a time; normalization and bus
// dispatch for one frame complete before the next is read.
func (c *SessionClient) readLoop(conn *websocket.Conn, norm normalizer) error {
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongTimeout))
		return nil
	})
	conn.SetReadDeadline(time.Now().Add(pongTimeout))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			// Not a frame at all: classify the raw bytes.
			norm.handleMessage(data)
			continue
		}
		switch f.Type {
		case FrameTelemetry:
			norm.handleTelemetry(f.Data)
		case FrameMessage:
			norm.handleMessage(f.Data)
		default:
			norm.handleMessage(data)
		}
	}
}

func (c *SessionClient) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			cc := c.conn
			c.mu.Unlock()
			if cc != conn {
				return
			}
			c.writeMu.Lock()
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			err := conn.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

// SendCommand transmits one command token. The transport is chosen fresh on
// every call: the persistent channel when it is up, otherwise a single
// fallback request. Failures on either path degrade to SYS log events;
// there is no retry and nothing is reported back to the caller. Commands
// are fire-and-forget control signals — loss is corrected by re-issue, not
// by delivery guarantees here.
func (c *SessionClient) SendCommand(ctx context.Context, cmd string) {
	c.mu.Lock()
	conn := c.conn
	connected := c.connected
	c.mu.Unlock()

	if connected && conn != nil {
		data, _ := json.Marshal(CmdPayload{Cmd: cmd})
		c.writeMu.Lock()
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		err := conn.WriteJSON(Frame{Type: FrameCmd, Data: data})
		c.writeMu.Unlock()
		if err != nil {
			c.bus.publishLog(PrefixSYS + "cmd send failed: " + err.Error())
			return
		}
		c.bus.publishLog(PrefixTX + cmd)
		return
	}

	c.sendFallback(ctx, cmd)
}

// sendFallback issues the one-shot HTTP request: POST /cmd with {"c": cmd},
// response body read as plain text and logged.
func (c *SessionClient) sendFallback(ctx context.Context, cmd string) {
	c.bus.publishLog(PrefixTX + "(fallback) " + cmd)

	body, _ := json.Marshal(FallbackBody{C: cmd})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.CmdURL(), bytes.NewReader(body))
	if err != nil {
		c.bus.publishLog(PrefixSYS + "fallback failed: " + err.Error())
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.bus.publishLog(PrefixSYS + "fallback failed: " + err.Error())
		return
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		c.bus.publishLog(PrefixSYS + "fallback read failed: " + err.Error())
		return
	}
	c.bus.publishLog(PrefixRX + string(text))
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
