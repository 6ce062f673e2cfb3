package ui

import (
	"fmt"
	"strings"
)

// Logo is the ASCII art logo for apkmeta.
const Logo = `
             _                     _
  __ _ _ __ | | ___ __ ___   ___| |_ __ _
 / _` + "`" + ` | '_ \| |/ / '_ ` + "`" + ` _ \ / _ \ __/ _` + "`" + ` |
| (_| | |_) |   <| | | | | |  __/ || (_| |
 \__,_| .__/|_|\_\_| |_| |_|\___|\__\__,_|
      |_|
`

// Version holds the application version, set at startup.
var Version = "dev"

// SetVersion sets the application version for logo rendering.
func SetVersion(v string) {
	Version = v
}

// RenderLogo returns the styled logo with version underneath.
func RenderLogo() string {
	var result strings.Builder
	for _, line := range strings.Split(Logo, "\n") {
		if line != "" {
			result.WriteString(LogoStyle.Render(line) + "\n")
		}
	}
	result.WriteString("\n")
	v := Version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	result.WriteString(v + "\n")
	result.WriteString("\n")
	return result.String()
}

// KeyValue represents a key-value pair for ordered summary output.
type KeyValue struct {
	Key   string
	Value string
}

// RenderFields formats key-value pairs one per line, keys padded to a common width.
func RenderFields(items []KeyValue) string {
	width := 0
	for _, item := range items {
		width = max(width, len(item.Key))
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		pad := strings.Repeat(" ", width-len(item.Key)+1)
		fmt.Fprintf(&b, "%s%s%s", Bold(item.Key+":"), pad, item.Value)
	}
	return b.String()
}
