package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/coldmail/internal/models"
	"github.com/Rorical/coldmail/ui/styles"
)

// Field is one rendered input of the key panel
type Field struct {
	Label   string
	View    string
	Focused bool
}

// RenderKeyPanel draws the API key panel: inputs, the result area and the
// verify/save controls with their enabled state.
func RenderKeyPanel(panel models.KeyPanel, fields []Field, spinner string, width int) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle().Render("Verify API Keys") + "\n\n")
	for _, f := range fields {
		b.WriteString(styles.FieldLabelStyle(f.Focused).Render(f.Label) + f.View + "\n")
	}
	b.WriteString("\n")

	if panel.Loading != "" {
		b.WriteString(spinner + " " + panel.Loading + "\n")
	}
	for _, line := range panel.Result {
		b.WriteString(resultStyle(line.Kind).Render(line.Text) + "\n")
	}
	if panel.Loading != "" || len(panel.Result) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		control("enter Verify", panel.VerifyEnabled()),
		"  ",
		control("ctrl+s Save Keys", panel.SaveEnabled()),
		"  ",
		styles.HelpStyle().Render("tab next field · esc close"),
	))

	return styles.PanelStyle(width).Render(b.String())
}

func control(label string, enabled bool) string {
	if enabled {
		return styles.EnabledStyle().Render("[" + label + "]")
	}
	return styles.DisabledStyle().Render("[" + label + "]")
}

func resultStyle(kind models.ResultKind) lipgloss.Style {
	switch kind {
	case models.ResultSuccess:
		return styles.SuccessAlert()
	case models.ResultWarning:
		return styles.WarningAlert()
	case models.ResultFailure:
		return styles.DangerAlert()
	default:
		return styles.InfoAlert()
	}
}
