// Package tui renders the countdown in a terminal with bubbletea.
package tui

import (
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iburimskiy/keys-countdown/internal/config"
	"github.com/iburimskiy/keys-countdown/internal/view"
)

const redrawInterval = time.Second / 4

var (
	teal  = lipgloss.Color("#20b2aa")
	pink  = lipgloss.Color("#ff6b9d")
	gold  = lipgloss.Color("#ffd700")
	cream = lipgloss.Color("#fffef0")

	titleStyle = lipgloss.NewStyle().
			Background(teal).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true).
			Padding(0, 1)
	headingStyle = lipgloss.NewStyle().Foreground(pink).Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(teal)
	tileStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(pink).
			Foreground(pink).
			Bold(true).
			Align(lipgloss.Center).
			Width(9)
	labelStyle  = lipgloss.NewStyle().Foreground(teal).Width(11).Align(lipgloss.Center)
	windowStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(teal).
			Padding(0, 2)
	badgeStyle = lipgloss.NewStyle().Background(teal).Foreground(cream).Bold(true).Padding(0, 1)
	footStyle  = lipgloss.NewStyle().Foreground(gold)
)

type keyMap struct {
	Sound      key.Binding
	Fullscreen key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sound, k.Fullscreen, k.Back, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Sound: key.NewBinding(
		key.WithKeys(" ", "space", "s"),
		key.WithHelp("space", "ocean sounds"),
	),
	Fullscreen: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fullscreen"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "exit fullscreen / quit"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type tickMsg time.Time

// altScreenMsg reports that the terminal switched screens.
type altScreenMsg bool

// Screen treats the terminal's alternate screen as fullscreen. Requests are
// queued and turned into bubbletea commands by the model; the state flips
// only once the command has run.
type Screen struct {
	pending *bool
	mu      sync.Mutex
	on      bool
}

func NewScreen() *Screen {
	return &Screen{}
}

func (s *Screen) IsFullscreen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.on
}

func (s *Screen) SetFullscreen(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &on
	return nil
}

func (s *Screen) set(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.on = on
}

// flush turns a queued request into a command.
func (s *Screen) flush() tea.Cmd {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()
	if pending == nil {
		return nil
	}

	on := *pending
	toggle := tea.ExitAltScreen
	if on {
		toggle = tea.EnterAltScreen
	}
	return tea.Sequence(toggle, func() tea.Msg { return altScreenMsg(on) })
}

// Model is the bubbletea model for the countdown.
type Model struct {
	view   *view.View
	screen *Screen
	page   config.PageConfig
	help   help.Model
	width  int
	height int
}

func New(v *view.View, screen *Screen, page config.PageConfig) Model {
	return Model{
		view:   v,
		screen: screen,
		page:   page,
		help:   help.New(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(redrawInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		cmd = tick()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case altScreenMsg:
		m.screen.set(bool(msg))
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.view.Tap()
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Sound):
			m.view.Tap()
		case key.Matches(msg, keys.Fullscreen):
			m.view.ToggleFullscreen()
			cmd = m.screen.flush()
		case key.Matches(msg, keys.Back):
			// leave the alternate screen first, quit only when already out
			if !m.view.IsFullscreen() {
				return m, tea.Quit
			}
			m.view.ToggleFullscreen()
			cmd = m.screen.flush()
		}
	}

	m.view.Sync()
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("o o o  " + m.page.Title))
	b.WriteString("\n\n")

	header := "* NOW LOADING VACATION MODE *"
	if m.view.Arrived() {
		header = "* VACATION MODE ACTIVATED *"
	}
	b.WriteString(subtleStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(headingStyle.Render(m.page.Heading))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(m.view.Departure()))
	b.WriteString("\n")
	b.WriteString(headingStyle.Render(m.page.Weather))
	b.WriteString("\n\n")

	tiles := m.view.Tiles()
	blocks := make([]string, 0, len(tiles))
	for _, t := range tiles {
		blocks = append(blocks, lipgloss.JoinVertical(lipgloss.Center,
			tileStyle.Render(t.Value),
			labelStyle.Render(t.Label),
		))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
	b.WriteString("\n\n")
	b.WriteString(footStyle.Render(m.page.Footer))

	window := windowStyle.Render(lipgloss.JoinVertical(lipgloss.Center, strings.Split(b.String(), "\n")...))

	parts := []string{window}
	if m.view.IsPlaying() {
		parts = append(parts, badgeStyle.Render("OCEAN SOUNDS ON"))
	}
	parts = append(parts, m.view.Tagline(), m.help.View(keys))
	content := lipgloss.JoinVertical(lipgloss.Center, parts...)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
