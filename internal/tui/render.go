package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessellate-ai/samplerev/internal/review"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	listWidth := m.listWidth()
	detailWidth := m.width - listWidth - 1

	list := m.renderList(listWidth, m.height-2)
	detail := m.renderDetail(detailWidth, m.height-2)

	main := lipgloss.JoinHorizontal(lipgloss.Top, list, " ", detail)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m Model) listWidth() int {
	maxLen := 24
	for id, s := range m.samples {
		name := s.FileName
		if name == "" {
			name = string(id)
		}
		if len(name) > maxLen {
			maxLen = len(name)
		}
	}
	w := maxLen + 6 // glyph + padding
	if w > m.width/3 {
		w = m.width / 3
	}
	if w < 24 {
		w = 24
	}
	return w
}

// decisionGlyph returns the marker and style for an item's verdict.
func decisionGlyph(kind review.DecisionKind, decided bool) (string, lipgloss.Style) {
	if !decided {
		return "·", pendingStyle
	}
	switch kind {
	case review.DecisionKeep:
		return "✓", keptStyle
	case review.DecisionRemove:
		return "✗", removedStyle
	default:
		return "○", skippedStyle
	}
}

func (m Model) renderList(width, height int) string {
	items := m.session.Items()
	verdicts := m.session.Verdicts()
	pos := m.session.Pos()

	innerHeight := height - 2 // borders
	visible := innerHeight
	if visible < 1 {
		visible = 1
	}

	// Window the list around the cursor.
	start := pos - visible/2
	if start+visible > len(items) {
		start = len(items) - visible
	}
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(items) {
		end = len(items)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		id := items[i]
		name := string(id)
		if s, ok := m.samples[id]; ok && s.FileName != "" {
			name = s.FileName
		}

		kind, decided := verdicts[id]
		glyph, glyphStyle := decisionGlyph(kind, decided)

		maxName := width - 8
		if maxName > 0 && len(name) > maxName {
			name = "…" + name[len(name)-maxName+1:]
		}

		line := glyphStyle.Render(glyph) + " " + name
		if i == pos {
			line = itemSelectedStyle.Width(width - 4).Render("▸ " + glyph + " " + name)
		} else {
			line = itemStyle.Render("  ") + line
		}

		b.WriteString(line)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}

	return listStyle.Width(width).Height(innerHeight).Render(b.String())
}

func (m Model) renderDetail(width, height int) string {
	innerHeight := height - 2

	id, err := m.session.Current()
	if err != nil {
		return detailStyle.Width(width).Height(innerHeight).Render("No samples")
	}

	var b strings.Builder
	b.WriteString(detailHeaderStyle.Render(string(id)))
	b.WriteByte('\n')

	s, ok := m.samples[id]
	if !ok {
		b.WriteString(m.spin.View())
		b.WriteString(" loading sample…")
		return detailStyle.Width(width).Height(innerHeight).Render(b.String())
	}

	field := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString(fieldNameStyle.Render(fmt.Sprintf("%-12s", name)))
		b.WriteString(value)
		b.WriteByte('\n')
	}
	field("file", s.FileName)
	field("bucket", s.Bucket)
	field("key", s.ObjectKey)
	field("size", formatSize(s.FileSize))
	field("type", s.ContentType)
	field("status", string(s.Status))
	field("annotation", string(s.AnnotationStatus))
	if len(s.Tags) > 0 {
		field("tags", strings.Join(s.Tags, ", "))
	}

	if len(s.Annotation) > 0 {
		b.WriteByte('\n')
		b.WriteString(annotationHeaderStyle.Render("Annotation"))
		b.WriteByte('\n')

		raw, err := json.MarshalIndent(s.Annotation, "", "  ")
		if err == nil {
			lines := highlightJSON(string(raw))
			// Leave room for the header fields above.
			maxLines := innerHeight - 12
			if maxLines < 3 {
				maxLines = 3
			}
			if len(lines) > maxLines {
				lines = append(lines[:maxLines], fieldNameStyle.Render("…"))
			}
			b.WriteString(strings.Join(lines, "\n"))
		}
	}

	return detailStyle.Width(width).Height(innerHeight).Render(b.String())
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	case n > 0:
		return fmt.Sprintf("%d B", n)
	default:
		return ""
	}
}

func (m Model) renderStatusBar() string {
	if m.search.Focused() {
		return statusBarStyle.Width(m.width).Render(searchStyle.Render(m.search.View()))
	}

	verdicts := m.session.Verdicts()
	counts := map[review.DecisionKind]int{}
	for _, k := range verdicts {
		counts[k]++
	}

	left := fmt.Sprintf(" %s  Sample %d/%d", m.dataset.Name, m.session.Pos()+1, m.session.Len())
	if m.toast != nil {
		style := toastStyle
		if m.toast.isErr {
			style = toastErrorStyle
		}
		left += "  " + style.Render(m.toast.text)
	} else if m.session.AtEnd() && m.session.LogLen() > 0 {
		left += "  " + completeStyle.Render("end of list - press q for summary")
	}

	right := fmt.Sprintf("✓%d ✗%d ○%d  ? help ",
		counts[review.DecisionKeep], counts[review.DecisionRemove], counts[review.DecisionSkip])

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(detailHeaderStyle.Render("samplerev - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	helpItems := []struct{ key, desc string }{
		{"y", "Keep sample"},
		{"n", "Remove sample"},
		{"s", "Skip sample"},
		{"a/←", "Previous sample"},
		{"d/→", "Next sample"},
		{"ctrl+z", "Undo last decision"},
		{"/", "Search by file name or id"},
		{"?", "Toggle this help"},
		{"q", "Quit and print summary"},
	}

	for _, item := range helpItems {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			helpKeyStyle.Width(12).Render(item.key),
			item.desc,
		))
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("Shortcuts are paused while this help is open."))

	return b.String()
}
