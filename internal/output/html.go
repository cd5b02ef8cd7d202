package output

import (
	"fmt"
	"html"
	"strings"
)

// Anchor renders link as an underlined HTML anchor for pasting into mail
// templates. An empty text shows the link with its https scheme folded to
// "///".
func Anchor(link, text string) string {
	if text == "" {
		text = strings.Replace(link, "https://", "///", 1)
	}
	return fmt.Sprintf(`<a href="%s"><u>%s</u></a>`, html.EscapeString(link), html.EscapeString(text))
}
