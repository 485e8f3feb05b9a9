// Package app is the root Bubble Tea model of the control deck. It bridges
// the session client's event bus onto the program's message loop and fans
// keystrokes out as commands.
package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samartha-hm/ARECAbot/internal/client"
	"github.com/samartha-hm/ARECAbot/internal/views/controls"
	"github.com/samartha-hm/ARECAbot/internal/views/help"
	"github.com/samartha-hm/ARECAbot/internal/views/logfeed"
	"github.com/samartha-hm/ARECAbot/internal/views/status"
	"github.com/samartha-hm/ARECAbot/internal/views/telemetry"
)

const frameInterval = time.Second / 30

// --- Bus bridge messages ---

// ConnectivityMsg reports a connected/disconnected flip.
type ConnectivityMsg struct{ Connected bool }

// TelemetryMsg carries one raw telemetry payload.
type TelemetryMsg struct{ Data json.RawMessage }

// AckMsg carries one command acknowledgement.
type AckMsg struct{ Ack string }

// LogMsg carries one classified log line.
type LogMsg struct{ Line string }

type frameMsg struct{}

// Model is the root Bubble Tea model.
type Model struct {
	client *client.SessionClient
	ctx    context.Context
	cancel context.CancelFunc
	events chan tea.Msg

	keys   KeyMap
	width  int
	height int

	statusBar status.Model
	telemetry telemetry.Model
	controls  controls.Model
	logs      logfeed.Model
	help      help.Model
	showHelp  bool
}

// New creates the root model and wires the bus into the event channel.
// The client may be nil in tests that only exercise rendering.
func New(c *client.SessionClient, endpoint string) Model {
	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		client:    c,
		ctx:       ctx,
		cancel:    cancel,
		events:    make(chan tea.Msg, 256),
		keys:      DefaultKeyMap(),
		statusBar: status.New(endpoint),
		telemetry: telemetry.New(),
		controls:  controls.New(),
		logs:      logfeed.New(),
		help:      help.New(),
	}

	if c != nil {
		events := m.events
		bus := c.Bus()
		bus.OnConnectivity(func(v bool) { events <- ConnectivityMsg{Connected: v} })
		bus.OnTelemetry(func(data json.RawMessage) { events <- TelemetryMsg{Data: data} })
		bus.OnAck(func(ack string) { events <- AckMsg{Ack: ack} })
		bus.OnLog(func(line string) { events <- LogMsg{Line: line} })
	}

	return m
}

// Init connects the session client and starts the event pump.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForEvent(), m.nextFrame()}
	if m.client != nil {
		c, ctx := m.client, m.ctx
		cmds = append(cmds, func() tea.Msg {
			c.Connect(ctx)
			return nil
		})
	}
	return tea.Batch(cmds...)
}

// waitForEvent blocks until the bus delivers the next event.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg { return <-events }
}

func (m Model) nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ConnectivityMsg:
		m.statusBar.Connected = msg.Connected
		return m, m.waitForEvent()

	case TelemetryMsg:
		update, err := client.ReconcileTelemetry(msg.Data)
		if err != nil {
			m.logs.Add(client.PrefixSYS + "bad telemetry: " + err.Error())
			return m, m.waitForEvent()
		}
		m.telemetry.Apply(update)
		return m, m.waitForEvent()

	case AckMsg:
		m.statusBar.LastAck = msg.Ack
		return m, m.waitForEvent()

	case LogMsg:
		m.logs.Add(msg.Line)
		return m, m.waitForEvent()

	case frameMsg:
		m.telemetry.Animate()
		return m, m.nextFrame()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		if m.client != nil {
			m.client.Close()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Forward):
		return m.send(client.CmdForward)
	case key.Matches(msg, m.keys.Backward):
		return m.send(client.CmdBackward)
	case key.Matches(msg, m.keys.Left):
		return m.send(client.CmdLeft)
	case key.Matches(msg, m.keys.Right):
		return m.send(client.CmdRight)
	case key.Matches(msg, m.keys.Stop):
		return m.send(client.CmdStop)

	case key.Matches(msg, m.keys.Mode):
		m.statusBar.Auto = !m.statusBar.Auto
		m.controls.Auto = m.statusBar.Auto
		if m.statusBar.Auto {
			return m.send(client.CmdModeAuto)
		}
		return m.send(client.CmdModeManual)

	case key.Matches(msg, m.keys.Roller):
		m.statusBar.Roller = !m.statusBar.Roller
		m.controls.Roller = m.statusBar.Roller
		if m.statusBar.Roller {
			return m.send(client.CmdRollerOn)
		}
		return m.send(client.CmdRollerOff)

	case key.Matches(msg, m.keys.Status):
		return m.send(client.CmdStatus)

	case key.Matches(msg, m.keys.Axis):
		m.controls.ToggleAxis()
		return m, nil

	case key.Matches(msg, m.keys.SpeedUp):
		return m.sendSpeed(controls.SpeedStep)
	case key.Matches(msg, m.keys.SpeedDown):
		return m.sendSpeed(-controls.SpeedStep)

	case key.Matches(msg, m.keys.LogUp):
		m.logs.ScrollUp(1)
		return m, nil
	case key.Matches(msg, m.keys.LogDown):
		m.logs.ScrollDown(1)
		return m, nil
	}

	return m, nil
}

// send dispatches one command off the update loop. Re-pressing a motion
// key (terminal auto-repeat while held) naturally re-issues the command,
// which is the hold-to-move behavior the at-most-once transport relies on.
func (m Model) send(cmd string) (tea.Model, tea.Cmd) {
	m.controls.LastCmd = cmd
	if m.client == nil {
		return m, nil
	}
	c, ctx := m.client, m.ctx
	return m, func() tea.Msg {
		c.SendCommand(ctx, cmd)
		return nil
	}
}

func (m Model) sendSpeed(delta int) (tea.Model, tea.Cmd) {
	value := m.controls.AdjustSpeed(delta)
	axis := client.AxisSpeedLeft
	if m.controls.SelectedAxis == 1 {
		axis = client.AxisSpeedRight
	}
	return m.send(client.SpeedCommand(axis, value))
}

// View renders the deck.
func (m Model) View() string {
	width := m.width
	if width < 60 {
		width = 60
	}

	if m.showHelp {
		return m.help.View(width - 2)
	}

	m.statusBar.Width = width
	half := (width - 2) / 2
	m.telemetry.Width = half
	m.controls.Width = width - 2 - half
	m.logs.Width = width - 2
	if m.height > 0 {
		m.logs.Height = m.height - 16
	}

	middle := lipgloss.JoinHorizontal(lipgloss.Top, m.telemetry.View(), m.controls.View())
	return lipgloss.JoinVertical(lipgloss.Left,
		m.statusBar.View(),
		middle,
		m.logs.View(),
	)
}
