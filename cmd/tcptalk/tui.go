package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	tcptalk "github.com/pol4bear/TCPTalk"
	"github.com/pol4bear/TCPTalk/codec"
)

// receiveMsg carries one receive-loop event into the program
type receiveMsg struct {
	data []byte
	err  error
}

type model struct {
	client tcptalk.Client
	cfg    *Config
	log    zerolog.Logger

	input    textinput.Model
	lines    []string
	lastRecv string
	status   string
	errMsg   string
	events   chan receiveMsg
	quitting bool
	width    int
	height   int
}

func newModel(tcpClient tcptalk.Client, cfg *Config, log zerolog.Logger) model {
	input := textinput.New()
	input.Placeholder = "type a line and press enter to send"
	input.Focus()

	return model{
		client: tcpClient,
		cfg:    cfg,
		log:    log,
		input:  input,
		events: make(chan receiveMsg, 16),
	}
}

// runTUI connects the client, then hands the terminal to the bubbletea
// program until the user quits or the receive loop dies.
func runTUI(tcpClient tcptalk.Client, cfg *Config, log zerolog.Logger) error {
	m := newModel(tcpClient, cfg, log)

	if err := tcpClient.ConnectReceive(context.Background(), cfg.Address, cfg.Port, m.onReceived); err != nil {
		log.Error().Err(err).Msg("connect failed")
		return cli.Exit(err.Error(), 1)
	}
	log.Info().Str("address", cfg.Address).Int("port", cfg.Port).Msg("connected")

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	tcpClient.Disconnect()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

// onReceived runs on the receive-loop goroutine. Events are dropped rather
// than blocking the loop if the UI stops draining them.
func (m model) onReceived(data []byte, err error) {
	select {
	case m.events <- receiveMsg{data: data, err: err}:
	default:
	}
}

func (m model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvent())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.quitting = true
			m.client.Disconnect()
			return m, tea.Quit
		case "enter":
			return m.sendLine(), nil
		case "ctrl+y":
			return m.copyLastReceived(), nil
		}

	case receiveMsg:
		return m.handleReceive(msg), m.waitForEvent()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) sendLine() model {
	line := m.input.Value()
	payload, err := codec.Encode(m.cfg.Encoding, line)
	if err != nil {
		m.errMsg = fmt.Sprintf("encode failed: %v", err)
		return m
	}
	if err := m.client.Send(payload); err != nil {
		m.errMsg = fmt.Sprintf("send failed: %v", err)
		m.log.Error().Err(err).Msg("send failed")
		return m
	}

	m.lines = append(m.lines, sentStyle.Render("> "+line))
	m.input.Reset()
	m.status = ""
	m.errMsg = ""
	return m
}

func (m model) copyLastReceived() model {
	if m.lastRecv == "" {
		m.status = "nothing received yet"
		return m
	}
	if err := clipboard.WriteAll(m.lastRecv); err != nil {
		m.errMsg = fmt.Sprintf("clipboard copy failed: %v", err)
		m.log.Error().Err(err).Msg("clipboard copy failed")
		return m
	}
	m.status = "copied last received line"
	return m
}

func (m model) handleReceive(msg receiveMsg) model {
	if msg.err != nil {
		m.lines = append(m.lines, errorStyle.Render("! receive failed: "+msg.err.Error()))
		m.status = "receive loop stopped"
		m.log.Error().Err(msg.err).Msg("receive loop stopped")
		return m
	}

	text, err := codec.Decode(m.cfg.Encoding, msg.data)
	if err != nil {
		text = string(msg.data)
	}
	m.lastRecv = text
	m.lines = append(m.lines, recvStyle.Render("< "+text))
	return m
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("tcptalk %s:%d (%s)", m.cfg.Address, m.cfg.Port, m.cfg.Encoding)))
	b.WriteString("\n\n")

	visible := m.lines
	if max := m.height - 7; max > 0 && len(visible) > max {
		visible = visible[len(visible)-max:]
	}
	for _, line := range visible {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	status := m.status
	if !m.client.Connected() {
		status = "disconnected"
	}
	if status != "" {
		b.WriteString(statusStyle.Render(status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter: send │ esc: quit │ ctrl+y: copy last received"))
	return b.String()
}
