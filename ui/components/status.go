package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/coldmail/internal/api"
	"github.com/Rorical/coldmail/ui/styles"
)

// RenderStatus draws the provider badges, the verify shortcut and the
// status text. It is a pure function of its arguments.
func RenderStatus(status api.APIStatus, text string, width int) string {
	parts := []string{
		Badge(api.ProviderDeepSeek, status.DeepSeek),
		Badge(api.ProviderGroq, status.Groq),
		styles.HelpStyle().Render("ctrl+k Verify API Keys"),
	}
	if text != "" {
		parts = append(parts, text)
	}

	statusStyle := styles.StatusStyle(width)
	return statusStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

// Badge renders one provider as connected, failed (with its reason) or
// not configured.
func Badge(provider string, status api.ProviderStatus) string {
	name := api.ProviderName(provider)
	switch status.State() {
	case api.StatusSuccess:
		return styles.SuccessBadge().Render(name + ": Connected")
	case api.StatusError:
		reason := status.Message
		if reason == "" {
			reason = "Connection failed"
		}
		return styles.DangerBadge().Render(name+": Failed") + styles.HelpStyle().Render("("+truncate(reason, 40)+")")
	default:
		return styles.SecondaryBadge().Render(name + ": Not Configured")
	}
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
