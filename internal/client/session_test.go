package client

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// cfgFor points a fast-retrying config at an httptest server.
func cfgFor(t *testing.T, srvURL string) Config {
	t.Helper()
	u, err := url.Parse(srvURL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatalf("split host port: %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("parse port: %v", err)
	}
	return Config{
		Host:               host,
		Port:               port,
		DialTimeout:        time.Second,
		MaxReconnects:      3,
		ReconnectBaseDelay: 10 * time.Millisecond,
		ReconnectMaxDelay:  50 * time.Millisecond,
	}
}

func waitBool(t *testing.T, ch <-chan bool, want bool) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Fatalf("connectivity = %v, want %v", got, want)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for connectivity event")
	}
}

func waitLogContaining(t *testing.T, ch <-chan string, substr string) string {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case line := <-ch:
			if strings.Contains(line, substr) {
				return line
			}
		case <-deadline:
			t.Fatalf("timed out waiting for log line containing %q", substr)
		}
	}
}

func TestSendCommandPersistentChannel(t *testing.T) {
	frames := make(chan Frame, 4)
	var fallbackHits int32
	upgrader := websocket.Upgrader{}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var f Frame
			if conn.ReadJSON(&f) != nil {
				return
			}
			frames <- f
		}
	})
	mux.HandleFunc("/cmd", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fallbackHits, 1)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(cfgFor(t, srv.URL))
	defer c.Close()

	connected := make(chan bool, 4)
	logs := make(chan string, 32)
	c.Bus().OnConnectivity(func(v bool) { connected <- v })
	c.Bus().OnLog(func(line string) { logs <- line })

	c.Connect(context.Background())
	waitBool(t, connected, true)

	c.SendCommand(context.Background(), CmdForward)

	select {
	case f := <-frames:
		if f.Type != FrameCmd {
			t.Errorf("frame type = %q, want %q", f.Type, FrameCmd)
		}
		var p CmdPayload
		if err := json.Unmarshal(f.Data, &p); err != nil {
			t.Fatalf("decode cmd payload: %v", err)
		}
		if p.Cmd != "F" {
			t.Errorf("cmd = %q, want %q", p.Cmd, "F")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no frame received on the persistent channel")
	}

	line := waitLogContaining(t, logs, "F")
	if !strings.HasPrefix(line, PrefixTX) {
		t.Errorf("log line = %q, want TX prefix", line)
	}
	if n := atomic.LoadInt32(&fallbackHits); n != 0 {
		t.Errorf("fallback requests = %d, want 0", n)
	}
}

func TestSendCommandFallback(t *testing.T) {
	var gotBody string
	var gotContentType string
	mux := http.NewServeMux()
	mux.HandleFunc("/cmd", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		io.WriteString(w, "OK")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(cfgFor(t, srv.URL))

	var logs []string
	c.Bus().OnLog(func(line string) { logs = append(logs, line) })

	// Never connected: the selector must take the fallback path.
	c.SendCommand(context.Background(), CmdStop)

	if gotBody != `{"c":"STOP"}` {
		t.Errorf("fallback body = %q, want %q", gotBody, `{"c":"STOP"}`)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q, want application/json", gotContentType)
	}
	if len(logs) != 2 {
		t.Fatalf("log lines = %d, want 2 (outbound + response): %v", len(logs), logs)
	}
	if logs[0] != PrefixTX+"(fallback) STOP" {
		t.Errorf("outbound log = %q", logs[0])
	}
	if logs[1] != PrefixRX+"OK" {
		t.Errorf("response log = %q", logs[1])
	}
}

func TestSendCommandFallbackFailure(t *testing.T) {
	// Grab an address that refuses connections.
	srv := httptest.NewServer(http.NotFoundHandler())
	srvURL := srv.URL
	srv.Close()

	c := New(cfgFor(t, srvURL))

	var logs []string
	c.Bus().OnLog(func(line string) { logs = append(logs, line) })

	c.SendCommand(context.Background(), CmdStatus) // must not panic or block

	if len(logs) != 2 {
		t.Fatalf("log lines = %d, want 2 (outbound + failure): %v", len(logs), logs)
	}
	sysLines := 0
	for _, line := range logs {
		if strings.HasPrefix(line, PrefixSYS) {
			sysLines++
			if !strings.Contains(line, "fallback failed") {
				t.Errorf("system log = %q, want the failure description", line)
			}
		}
	}
	if sysLines != 1 {
		t.Errorf("system log lines = %d, want exactly 1", sysLines)
	}
}

func TestConnectExhaustsReconnectBudget(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srvURL := srv.URL
	srv.Close()

	cfg := cfgFor(t, srvURL)
	cfg.MaxReconnects = 2
	c := New(cfg)
	defer c.Close()

	logs := make(chan string, 32)
	c.Bus().OnLog(func(line string) { logs <- line })

	c.Connect(context.Background())

	line := waitLogContaining(t, logs, "reconnect budget exhausted")
	if !strings.HasPrefix(line, PrefixSYS) {
		t.Errorf("log line = %q, want SYS prefix", line)
	}
	if c.Connected() {
		t.Error("client should remain disconnected after the budget is spent")
	}
}

func TestConnectivityFlipsOnServerClose(t *testing.T) {
	// The upgraded connection is handed to the test so it can be dropped
	// server-side; httptest's CloseClientConnections cannot reach it once
	// the upgrade hijacks it.
	serverConns := make(chan *websocket.Conn, 2)
	upgrader := websocket.Upgrader{}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverConns <- conn
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(cfgFor(t, srv.URL))
	defer c.Close()

	connected := make(chan bool, 8)
	c.Bus().OnConnectivity(func(v bool) { connected <- v })

	c.Connect(context.Background())
	waitBool(t, connected, true)

	select {
	case conn := <-serverConns:
		conn.Close()
	case <-time.After(3 * time.Second):
		t.Fatal("server never saw the connection")
	}
	waitBool(t, connected, false)
}
