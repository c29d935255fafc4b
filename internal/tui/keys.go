package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap lists every binding of the UI. Screens expose subsets through help.
type keyMap struct {
	Quit     key.Binding
	Back     key.Binding
	Next     key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Open     key.Binding
	Toggle   key.Binding
	Reset    key.Binding
	Lap      key.Binding
	SetAlarm key.Binding
	Enable   key.Binding
	Silence  key.Binding
	Cancel   key.Binding
	Help     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "home")),
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next screen")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous field")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next field")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "start/stop")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Lap:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "lap")),
		SetAlarm: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "set alarm")),
		Enable:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle alarm")),
		Silence:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop sound")),
		Cancel:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear alarm")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	}
}

// screenKeys adapts the bindings of one screen to help.KeyMap.
type screenKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k screenKeys) ShortHelp() []key.Binding  { return k.short }
func (k screenKeys) FullHelp() [][]key.Binding { return k.full }

func (k keyMap) forScreen(s screen) screenKeys {
	global := []key.Binding{k.Next, k.Back, k.Help, k.Quit}

	var local []key.Binding

	switch s {
	case screenHome:
		local = []key.Binding{k.Up, k.Down, k.Open}
	case screenClock:
		local = []key.Binding{k.SetAlarm, k.Enable, k.Silence, k.Cancel}
	case screenTimer:
		local = []key.Binding{k.Toggle, k.Reset, k.Left, k.Right, k.Up, k.Down}
	case screenStopwatch:
		local = []key.Binding{k.Toggle, k.Lap, k.Reset}
	}

	return screenKeys{
		short: append(append([]key.Binding{}, local...), k.Help, k.Quit),
		full:  [][]key.Binding{local, global},
	}
}
