package client

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultHost is the robot's access-point address, used when no host is
// configured. Deployments on a shared LAN override it.
const DefaultHost = "192.168.4.1"

// DefaultPort is the fixed port the firmware serves both the WebSocket and
// the fallback command endpoint on.
const DefaultPort = 8080

// Config carries the endpoint and channel tuning for one session client.
// It is threaded explicitly into New so multiple independent clients can
// coexist (and tests can point at ephemeral servers).
type Config struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// DialTimeout bounds a single WebSocket handshake attempt.
	DialTimeout time.Duration `yaml:"dial_timeout"`
	// MaxReconnects bounds consecutive failed attempts before the client
	// parks in the disconnected state. The counter resets after every
	// successful handshake.
	MaxReconnects int `yaml:"max_reconnects"`

	ReconnectBaseDelay time.Duration `yaml:"reconnect_base_delay"`
	ReconnectMaxDelay  time.Duration `yaml:"reconnect_max_delay"`
}

// DefaultConfig returns the stock tuning: 5 s handshake timeout, at most
// 10 reconnection attempts, 1 s base backoff doubling up to 30 s.
func DefaultConfig() Config {
	return Config{
		Host:               DefaultHost,
		Port:               DefaultPort,
		DialTimeout:        5 * time.Second,
		MaxReconnects:      10,
		ReconnectBaseDelay: time.Second,
		ReconnectMaxDelay:  30 * time.Second,
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WSURL returns the persistent channel endpoint.
func (c Config) WSURL() string {
	return fmt.Sprintf("ws://%s:%d/ws", c.Host, c.Port)
}

// CmdURL returns the fallback command endpoint.
func (c Config) CmdURL() string {
	return fmt.Sprintf("http://%s:%d/cmd", c.Host, c.Port)
}
