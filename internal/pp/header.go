package pp

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Header renders a banner: the title centred between two rules of the
// given width. A width smaller than the title grows to fit it.
func Header(title string, width int) string {
	title = strings.TrimSpace(title)
	if w := lipgloss.Width(title) + 2; width < w {
		width = w
	}
	rule := strings.Repeat("-", width)
	body := lipgloss.NewStyle().Bold(true).Width(width).Align(lipgloss.Center).Render(title)
	return lipgloss.JoinVertical(lipgloss.Left, rule, body, rule)
}
