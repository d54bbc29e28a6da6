package components

import (
	"github.com/Rorical/coldmail/ui/styles"
)

// RenderHelp lists the chat shortcuts. The copy entry shows the current
// copy control label.
func RenderHelp(copyLabel string, emailVisible bool) string {
	text := "enter send · ctrl+k keys · pgup/pgdn scroll · ctrl+c quit"
	if emailVisible {
		text = "enter send · ctrl+y " + copyLabel + " · ctrl+d download · ctrl+k keys · ctrl+c quit"
	}
	return styles.HelpStyle().Render(text)
}
