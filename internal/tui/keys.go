package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up      key.Binding
	down    key.Binding
	left    key.Binding
	right   key.Binding
	enter   key.Binding
	esc     key.Binding
	tab     key.Binding
	backtab key.Binding
	space   key.Binding
	submit  key.Binding
	quit    key.Binding
	again   key.Binding
	copy    key.Binding
}

var keys = keyMap{
	up:      key.NewBinding(key.WithKeys("up")),
	down:    key.NewBinding(key.WithKeys("down")),
	left:    key.NewBinding(key.WithKeys("left")),
	right:   key.NewBinding(key.WithKeys("right")),
	enter:   key.NewBinding(key.WithKeys("enter")),
	esc:     key.NewBinding(key.WithKeys("esc")),
	tab:     key.NewBinding(key.WithKeys("tab")),
	backtab: key.NewBinding(key.WithKeys("shift+tab")),
	space:   key.NewBinding(key.WithKeys(" ")),
	submit:  key.NewBinding(key.WithKeys("ctrl+s")),
	quit:    key.NewBinding(key.WithKeys("ctrl+c")),
	again:   key.NewBinding(key.WithKeys("n")),
	copy:    key.NewBinding(key.WithKeys("c")),
}
