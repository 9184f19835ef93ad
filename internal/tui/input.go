package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessellate-ai/samplerev/internal/review"
)

// keyEventFrom normalizes a Bubble Tea key message into the review
// dispatcher's event shape. Shifted letters arrive as bare uppercase
// runes, so case carries the shift flag for rune keys.
func keyEventFrom(msg tea.KeyMsg, textFocused bool) review.KeyEvent {
	ev := review.KeyEvent{TextInputFocused: textFocused}

	parts := strings.Split(msg.String(), "+")
	key := parts[len(parts)-1]
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "ctrl", "cmd", "super":
			ev.CtrlOrCmd = true
		case "alt":
			ev.Alt = true
		case "shift":
			ev.Shift = true
		}
	}

	switch key {
	case "left":
		key = "arrowleft"
	case "right":
		key = "arrowright"
	}

	if len(key) == 1 && key != strings.ToLower(key) {
		ev.Shift = true
	}
	ev.Key = key
	return ev
}

// findMatch returns the index of the first item whose ID or loaded
// file name contains query, or -1.
func (m Model) findMatch(query string) int {
	q := strings.ToLower(query)
	for i, id := range m.session.Items() {
		if strings.Contains(strings.ToLower(string(id)), q) {
			return i
		}
		if s, ok := m.samples[id]; ok && strings.Contains(strings.ToLower(s.FileName), q) {
			return i
		}
	}
	return -1
}
