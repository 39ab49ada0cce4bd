package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-skirmish/internal/core"
)

// CombatKeyMap defines the key bindings for a fight.
type CombatKeyMap struct {
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Press  key.Binding
	Direct key.Binding
	Scroll key.Binding
	Help   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k CombatKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Press, k.Direct, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k CombatKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Press, k.Direct, k.Scroll},
		{k.Help, k.Back, k.Quit},
	}
}

// DefaultCombatKeyMap returns default key bindings.
func DefaultCombatKeyMap() CombatKeyMap {
	return CombatKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "focus left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "focus right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "focus up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "focus down"),
		),
		Press: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "press button"),
		),
		Direct: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "press n-th button"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("pgup", "pgdown"),
			key.WithHelp("pgup/pgdn", "scroll log"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "leave fight"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// CombatAction is what a key means during a fight.
type CombatAction int

const (
	CombatActionNone CombatAction = iota
	CombatActionFocus
	CombatActionPress
	CombatActionScroll
	CombatActionHelp
	CombatActionBack
	CombatActionQuit
)

// KeyMapper translates Bubble Tea key messages to button clicks.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys CombatKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultCombatKeyMap()}
}

// Keys returns the bindings used for the help view.
func (km *KeyMapper) Keys() CombatKeyMap {
	return km.keys
}

// MapKeyToFrame applies a key to the button grid and records the
// resulting clicks in frame. Focus changes produce hover clicks; presses
// produce a ClickStart/ClickStop pair.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, grid *ButtonGrid, frame *core.InputFrame) CombatAction {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return CombatActionQuit
	case key.Matches(msg, km.keys.Back):
		return CombatActionBack
	case key.Matches(msg, km.keys.Help):
		return CombatActionHelp
	case key.Matches(msg, km.keys.Scroll):
		return CombatActionScroll

	case key.Matches(msg, km.keys.Left):
		km.move(grid, frame, -1, 0)
		return CombatActionFocus
	case key.Matches(msg, km.keys.Right):
		km.move(grid, frame, 1, 0)
		return CombatActionFocus
	case key.Matches(msg, km.keys.Up):
		km.move(grid, frame, 0, -1)
		return CombatActionFocus
	case key.Matches(msg, km.keys.Down):
		km.move(grid, frame, 0, 1)
		return CombatActionFocus

	case key.Matches(msg, km.keys.Press):
		if b, ok := grid.Focused(); ok {
			pressClicks(frame, b.ID)
			return CombatActionPress
		}
	case key.Matches(msg, km.keys.Direct):
		index := int(msg.String()[0] - '1')
		if b, ok := grid.At(index); ok {
			pressClicks(frame, b.ID)
			return CombatActionPress
		}
	}

	return CombatActionNone
}

func (km *KeyMapper) move(grid *ButtonGrid, frame *core.InputFrame, dx, dy int) {
	before, hadFocus := grid.Focused()
	grid.Move(dx, dy)
	after, ok := grid.Focused()
	if !ok || (hadFocus && after.ID == before.ID) {
		return
	}
	if hadFocus {
		frame.Add(core.Click{Button: before.ID, Type: core.HoverStop})
	}
	frame.Add(core.Click{Button: after.ID, Type: core.HoverStart})
}

func pressClicks(frame *core.InputFrame, id core.ButtonID) {
	frame.Add(core.Click{Button: id, Type: core.ClickStart})
	frame.Add(core.Click{Button: id, Type: core.ClickStop})
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionHistory
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionHistory
	}

	return MenuActionNone
}
