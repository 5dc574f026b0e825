package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/memvault/memvault/internal/models"
)

// Theme holds the color scheme for CLI output.
type Theme struct {
	Accent  lipgloss.Color
	Date    lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
	Locked  lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Accent:  lipgloss.Color("#6C5CE7"), // violet
	Date:    lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
	Locked:  lipgloss.Color("#FFD75F"), // amber
}

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(defaultTheme.Accent).
			Padding(0, 1)

	dateStyle    = lipgloss.NewStyle().Foreground(defaultTheme.Date)
	emotionStyle = lipgloss.NewStyle().Foreground(defaultTheme.Accent).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(defaultTheme.Hint).Italic(true)
	successStyle = lipgloss.NewStyle().Foreground(defaultTheme.Success).Bold(true)
	lockedStyle  = lipgloss.NewStyle().Foreground(defaultTheme.Locked).Bold(true)
)

// renderMemoryCard formats one memory for terminal output.
func renderMemoryCard(m models.Memory, showScore bool) string {
	var b strings.Builder

	header := dateStyle.Render(m.DateOnly()) + "  " + emotionStyle.Render(m.Emotion)
	if m.IsTimeCapsule {
		header += "  " + lockedStyle.Render("⏰ capsule")
	}
	fmt.Fprintf(&b, "#%d  %s\n", m.ID, header)
	b.WriteString(m.Text)

	details := []string{}
	if m.Location != "" && m.Location != models.DefaultLocation {
		details = append(details, "📍 "+m.Location)
	}
	if len(m.People) > 0 {
		details = append(details, "👥 "+strings.Join(m.People, ", "))
	}
	if len(m.Topics) > 0 {
		details = append(details, "🏷  "+strings.Join(m.Topics, ", "))
	}
	if showScore && m.RelevanceScore != 0 {
		details = append(details, fmt.Sprintf("score %.2f", m.RelevanceScore))
	}
	if len(details) > 0 {
		b.WriteString("\n" + hintStyle.Render(strings.Join(details, "   ")))
	}

	return cardStyle.Render(b.String())
}

// renderLockedCard shows a locked capsule without revealing its text.
func renderLockedCard(m models.Memory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d  %s  %s\n", m.ID,
		dateStyle.Render("created "+m.DateOnly()),
		lockedStyle.Render("🔒 unlocks "+m.UnlockDate))
	b.WriteString(hintStyle.Render("This time capsule is locked until the unlock date."))
	return cardStyle.Render(b.String())
}
