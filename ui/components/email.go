package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/coldmail/ui/styles"
)

// RenderEmail draws the generated email panel.
func RenderEmail(email string, width int) string {
	title := styles.TitleStyle().Render("Your Cold Email")
	return styles.EmailStyle(width).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", email))
}
