package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	prev   key.Binding
	next   key.Binding
	up     key.Binding
	down   key.Binding
	toggle key.Binding
	bulk   key.Binding
	enter  key.Binding
	back   key.Binding
	save   key.Binding
	clear  key.Binding
	reload key.Binding
	help   key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle row")),
		bulk:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "select first N")),
		enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save selection")),
		clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear selection")),
		reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.prev, k.next, k.toggle, k.bulk, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.prev, k.next, k.up, k.down},
		{k.toggle, k.bulk, k.enter, k.back},
		{k.save, k.clear, k.reload, k.quit},
	}
}
