package components

import (
	"github.com/Rorical/coldmail/ui/styles"
)

func RenderInput(view string, width int) string {
	inputStyle := styles.InputStyle(width)
	return inputStyle.Render(view)
}
