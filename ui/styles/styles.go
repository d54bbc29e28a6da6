package styles

import "github.com/charmbracelet/lipgloss"

var (
	colorSuccess   = lipgloss.Color("42")
	colorDanger    = lipgloss.Color("196")
	colorWarning   = lipgloss.Color("214")
	colorSecondary = lipgloss.Color("241")
	colorAccent    = lipgloss.Color("62")
)

func InputStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Width(max(width-4, 10))
}

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorSecondary).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}

func HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorSecondary).
		Padding(0, 1)
}

func UserStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("39")).
		Padding(0, 1).
		MarginLeft(2)
}

func BotStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorWarning).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(colorWarning).
		Padding(0, 1).
		MarginLeft(2)
}

func TypingStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorSecondary).
		Italic(true).
		Padding(0, 1).
		MarginLeft(3)
}

// EmailStyle frames the generated email panel
func EmailStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("141")).
		Padding(0, 1).
		Width(max(width-4, 10))
}

func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("141")).
		Bold(true)
}

// PanelStyle frames the API key panel
func PanelStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorWarning).
		Padding(0, 1).
		Width(max(width-4, 10))
}

func FieldLabelStyle(focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().Width(20)
	if focused {
		return s.Foreground(colorWarning).Bold(true)
	}
	return s.Foreground(colorSecondary)
}

// Badge styles for provider status
func SuccessBadge() lipgloss.Style {
	return badge(colorSuccess)
}

func DangerBadge() lipgloss.Style {
	return badge(colorDanger)
}

func SecondaryBadge() lipgloss.Style {
	return badge(colorSecondary)
}

func badge(bg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(bg).
		Padding(0, 1).
		MarginRight(1)
}

// Alert styles for key panel result lines
func SuccessAlert() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSuccess)
}

func WarningAlert() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorWarning)
}

func DangerAlert() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorDanger)
}

func InfoAlert() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSecondary)
}

func DisabledStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Strikethrough(true)
}

func EnabledStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
}
