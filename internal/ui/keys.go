package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PlayPause key.Binding
	StepBack  key.Binding
	StepFwd   key.Binding
	Restart   key.Binding
	Save      key.Binding
	Open      key.Binding
	ChooseDir key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		StepBack: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "step back"),
		),
		StepFwd: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "step forward"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart & play"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save frame"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open video"),
		),
		ChooseDir: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "save dir"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.StepBack, k.StepFwd, k.Save, k.Open, k.ChooseDir, k.Restart, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.StepBack, k.StepFwd, k.Restart},
		{k.Save, k.Open, k.ChooseDir, k.Quit},
	}
}
