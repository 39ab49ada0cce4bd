package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-skirmish/internal/combat"
	"github.com/vovakirdan/tui-skirmish/internal/core"
)

// Layout constants
const (
	buttonCols      = 4 // Buttons per row
	minButtonWidth  = 12
	minLogHeight    = 3
	healthBarWidth  = 20
	chromeHeight    = 5 // Title, blank lines and help bar
	panelBorderRows = 2
)

// CombatModel is the Bubble Tea model for one fight.
type CombatModel struct {
	fight      *Fight
	grid       *ButtonGrid
	keyMapper  *KeyMapper
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	viewport   viewport.Model
	help       help.Model
	logLines   int // Buffer length last rendered into the viewport
	quitting   bool
	backToMenu bool
	exitOnBack bool // Standalone fights have no menu to return to
}

// NewCombatModel creates a model driving the given fight.
func NewCombatModel(fight *Fight, cfg core.RuntimeConfig) CombatModel {
	h := help.New()
	h.ShowAll = false

	m := CombatModel{
		fight:      fight,
		grid:       NewButtonGrid(fight.Session.Buttons().Bindings(), buttonCols),
		keyMapper:  NewKeyMapper(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		help:       h,
	}
	m.viewport = viewport.New(m.logWidth(), m.logHeight())
	m.refreshLog()
	return m
}

// Init starts the tick loop.
func (m CombatModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m CombatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m CombatModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToFrame(msg, m.grid, &m.inputFrame) {
	case CombatActionQuit:
		m.quitting = true
		m.fight.Close()
		return m, tea.Quit

	case CombatActionBack:
		m.backToMenu = true
		m.fight.Close()
		if m.exitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case CombatActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.resizeLog()
		return m, nil

	case CombatActionScroll:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleResize processes window resize events.
func (m CombatModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.resizeLog()
	return m, nil
}

// handleTick runs one combat tick with the clicks gathered since the last one.
func (m CombatModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	res := m.fight.Tick(m.inputFrame)
	m.inputFrame.Clear()
	if res.Advanced {
		m.refreshLog()
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *CombatModel) refreshLog() {
	if m.fight.Log.Len() == m.logLines {
		return
	}
	m.logLines = m.fight.Log.Len()
	m.viewport.SetContent(RenderLog(m.fight.Log))
	m.viewport.GotoBottom()
}

func (m *CombatModel) resizeLog() {
	m.viewport.Width = m.logWidth()
	m.viewport.Height = m.logHeight()
	m.viewport.SetContent(RenderLog(m.fight.Log))
	m.viewport.GotoBottom()
}

func (m CombatModel) cellWidth() int {
	return max(minButtonWidth, (m.config.ScreenW-2)/buttonCols-2)
}

func (m CombatModel) logWidth() int {
	return max(20, m.config.ScreenW-4)
}

func (m CombatModel) logHeight() int {
	units := len(m.fight.Session.Monsters()) + 1 + panelBorderRows
	buttons := m.grid.Rows() * 3
	helpRows := 1
	if m.help.ShowAll {
		helpRows = 3
	}
	return max(minLogHeight, m.config.ScreenH-chromeHeight-units-buttons-helpRows-panelBorderRows)
}

// View renders the fight.
func (m CombatModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("%s  ·  %s  ·  turn %d", m.fight.Name, m.fight.Difficulty, m.fight.Session.Turn()+1)
	b.WriteString(titleStyle.Render(centerText(title, m.config.ScreenW)))
	b.WriteString("\n")
	b.WriteString(centerText(m.statusLine(), m.config.ScreenW))
	b.WriteString("\n")

	b.WriteString(panelStyle.Render(m.unitsView()))
	b.WriteString("\n")
	b.WriteString(panelStyle.Width(m.logWidth()).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(renderButtons(m.grid, m.cellWidth()))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keyMapper.Keys())))

	return b.String()
}

func (m CombatModel) statusLine() string {
	s := m.fight.Session
	switch s.Status() {
	case combat.StatusVictory:
		return colorStyles[core.ColorBrightGreen].Render("Victory! Press esc to leave")
	case combat.StatusDefeat:
		return colorStyles[core.ColorBrightRed].Render("You have fallen. Press esc to leave")
	}

	current := s.Current()
	if current.IsPlayer() {
		return colorStyles[core.ColorBrightGreen].Render("Your turn")
	}
	return colorStyles[core.ColorOrange].Render(s.Name(current) + "'s turn")
}

func (m CombatModel) unitsView() string {
	s := m.fight.Session
	current := s.Current()

	lines := make([]string, 0, len(s.Monsters())+1)
	p := s.Player()
	lines = append(lines, marker(current.IsPlayer())+healthBar(p.Name, p.Health, healthBarWidth))
	for _, mon := range s.Monsters() {
		lines = append(lines, marker(current == mon.Ref())+healthBar(mon.Name, mon.Health, healthBarWidth))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func marker(active bool) string {
	if active {
		return "> "
	}
	return "  "
}

// IsQuitting returns true if user requested to quit entirely.
func (m CombatModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to leave the fight.
func (m CombatModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for a single fight.
func Run(opts FightOptions, cfg core.RuntimeConfig) error {
	fight, err := NewFight(opts)
	if err != nil {
		return err
	}
	defer fight.Close()

	model := NewCombatModel(fight, cfg)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Mouse wheel scrolls the log
	)

	_, err = p.Run()
	return err
}
