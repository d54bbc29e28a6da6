package components

import (
	"strings"

	"github.com/Rorical/coldmail/internal/models"
	"github.com/Rorical/coldmail/ui/styles"
)

// RenderMessages draws the conversation log. typing is the current spinner
// frame shown on typing indicator entries.
func RenderMessages(messages []models.Message, typing string, width int) string {
	var b strings.Builder

	userStyle := styles.UserStyle()
	botStyle := styles.BotStyle()
	typingStyle := styles.TypingStyle()
	if width > 8 {
		userStyle = userStyle.MaxWidth(width - 2).Width(width - 6)
		botStyle = botStyle.MaxWidth(width - 2).Width(width - 6)
	}

	for _, msg := range messages {
		switch msg.Type {
		case models.User:
			b.WriteString(userStyle.Render("You: "+msg.Content) + "\n\n")
		case models.Bot:
			b.WriteString(botStyle.Render(msg.Content) + "\n\n")
		case models.Typing:
			b.WriteString(typingStyle.Render("Typing "+typing) + "\n\n")
		}
	}

	return b.String()
}
