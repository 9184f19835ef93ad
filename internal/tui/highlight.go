package tui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// highlightJSON renders an annotation payload with JSON syntax
// highlighting, one styled string per line. Falls back to plain lines
// when tokenization fails.
func highlightJSON(src string) []string {
	plain := strings.Split(src, "\n")

	lexer := lexers.Get("json")
	if lexer == nil {
		return plain
	}
	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return plain
	}

	style := styles.Get("dracula")
	if style == nil {
		style = styles.Fallback
	}

	var lines []string
	var b strings.Builder
	for _, token := range iterator.Tokens() {
		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, b.String())
				b.Reset()
			}
			if part == "" {
				continue
			}
			if color := tokenColor(style, token.Type); color != "" {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(part))
			} else {
				b.WriteString(part)
			}
		}
	}
	lines = append(lines, b.String())

	for len(lines) < len(plain) {
		lines = append(lines, "")
	}
	return lines
}

// tokenColor resolves a token type to a hex color from the style.
func tokenColor(style *chroma.Style, t chroma.TokenType) string {
	entry := style.Get(t)
	if !entry.Colour.IsSet() {
		return ""
	}
	return entry.Colour.String()
}
