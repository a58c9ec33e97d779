package session

import "slices"

// KeyMap binds key strings, as reported by bubbletea's tea.KeyMsg.String,
// to session actions.
type KeyMap struct {
	Toggle []string
	Down   []string
	Up     []string
	Commit []string
	Close  []string
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: []string{"ctrl+k"},
		Down:   []string{"down", "ctrl+n"},
		Up:     []string{"up", "ctrl+p"},
		Commit: []string{"enter"},
		Close:  []string{"esc"},
	}
}

func bound(binding []string, key string) bool {
	return slices.Contains(binding, key)
}
