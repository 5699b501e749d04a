package editor

import "github.com/charmbracelet/lipgloss"

// Style controls the editor's rendering.
type Style struct {
	Text        lipgloss.Style
	Placeholder lipgloss.Style
	Selection   lipgloss.Style
	Cursor      lipgloss.Style

	// Image renders the inline "[image N]" placeholder of a pasted image.
	Image lipgloss.Style

	Emoji         lipgloss.Style
	EmojiSelected lipgloss.Style

	Notice lipgloss.Style
}

func DefaultStyle() Style {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Text:          lipgloss.NewStyle(),
		Placeholder:   dim,
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		Image:         lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Emoji:         lipgloss.NewStyle(),
		EmojiSelected: lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		Notice:        lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}
