package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Enter    key.Binding
	Back     key.Binding
	Replay   key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Panel    key.Binding
	Projects key.Binding
	Tools    key.Binding
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Filter   key.Binding
	Copy     key.Binding
	Palette  key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "entrar")),
		Back:     key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("b/esc", "voltar")),
		Replay:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reiniciar boot")),
		NextTab:  key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "próxima aba")),
		PrevTab:  key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "aba anterior")),
		Panel:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "painel")),
		Projects: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "projetos")),
		Tools:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "ferramentas")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "cima")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "baixo")),
		Toggle:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "mostrar/ocultar")),
		Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filtrar")),
		Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copiar")),
		Palette:  key.NewBinding(key.WithKeys(":", "ctrl+p"), key.WithHelp(":", "comandos")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "sair")),
	}
}

// bindings returns the help entries for what the current screen accepts.
func (m model) bindings() []key.Binding {
	k := m.keys
	if m.screen == screenHero {
		if m.booted {
			return []key.Binding{k.Enter, k.Replay, k.Quit}
		}
		return []key.Binding{k.Replay, k.Quit}
	}
	if m.paletteOpen {
		return nil
	}
	if m.filtering {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "aplicar")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "limpar")),
		}
	}
	out := []key.Binding{k.NextTab, k.Up, k.Down}
	switch m.tab {
	case tabProjects:
		out = append(out, k.Toggle, k.Filter)
	case tabTools:
		out = append(out, k.Copy)
	}
	return append(out, k.Palette, k.Back, k.Quit)
}
