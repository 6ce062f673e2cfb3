// Package help provides colorful CLI help output.
package help

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/zapstore/apkmeta/internal/cli"
	"github.com/zapstore/apkmeta/internal/ui"
)

// Color palette: green, dark purple, greyscale
var (
	green  = lipgloss.Color("35")
	purple = lipgloss.Color("54")

	grey     = lipgloss.Color("245")
	greyDark = lipgloss.Color("242")
	white    = lipgloss.Color("252")
)

// Render functions that don't add extra whitespace
func renderGreen(s string) string {
	return lipgloss.NewStyle().Foreground(green).Render(s)
}

func renderPurple(s string) string {
	return lipgloss.NewStyle().Foreground(purple).Render(s)
}

func renderPurpleBold(s string) string {
	return lipgloss.NewStyle().Foreground(purple).Bold(true).Render(s)
}

func renderGreenBold(s string) string {
	return lipgloss.NewStyle().Foreground(green).Bold(true).Render(s)
}

func renderWhite(s string) string {
	return lipgloss.NewStyle().Foreground(white).Render(s)
}

func renderGrey(s string) string {
	return lipgloss.NewStyle().Foreground(grey).Render(s)
}

func renderGreyDark(s string) string {
	return lipgloss.NewStyle().Foreground(greyDark).Render(s)
}

func renderURL(s string) string {
	return lipgloss.NewStyle().Foreground(green).Underline(true).Render(s)
}

var commandSummaries = map[cli.Command]string{
	cli.CommandIdentity: "Print package name and launch activity",
	cli.CommandVersion:  "Print version name and version code",
	cli.CommandInspect:  "Print all extracted metadata (--json for machines)",
}

// RootHelp returns the top-level --help output.
func RootHelp() string {
	var b strings.Builder

	b.WriteString(ui.RenderLogo())
	b.WriteString(renderWhite("Read identity and version metadata from Android APK files") + "\n\n")

	b.WriteString(renderPurpleBold("USAGE") + "\n")
	b.WriteString("  " + renderGreen("apkmeta") + " <command> [options] <file.apk>...\n\n")

	b.WriteString(renderPurpleBold("COMMANDS") + "\n")
	for _, cmd := range cli.Commands {
		writeFlag(&b, string(cmd), commandSummaries[cmd])
	}
	b.WriteString("\n")

	b.WriteString(renderPurpleBold("EXAMPLES") + "\n")
	writeExample(&b, "apkmeta identity app.apk", "com.example.app/com.example.app.MainActivity")
	writeExample(&b, "apkmeta version build/*.apk", "One line per file")
	writeExample(&b, "apkmeta inspect --json app.apk", "Metadata as JSON")
	writeExample(&b, "apkmeta identity --launcher-category \\", "")
	writeExample(&b, "  android.intent.category.LEANBACK_LAUNCHER tv.apk", "Android TV launcher")
	b.WriteString("\n")

	writeGlobalFlags(&b)

	b.WriteString(renderPurpleBold("CONFIGURATION") + "\n")
	b.WriteString(renderGreyDark("  Optional YAML file, loaded from ./apkmeta.yaml or -c <path>:") + "\n\n")
	writeConfigKey(&b, "manifest_name:", "AndroidManifest.xml")
	writeConfigKey(&b, "launcher_category:", "android.intent.category.LAUNCHER")
	writeConfigKey(&b, "max_entry_size:", "681574400")
	writeConfigKey(&b, "decoder:", "apkparser   # or androidbinary, text")
	writeConfigKey(&b, "allow_plain_text:", "false")
	b.WriteString("\n")

	b.WriteString(renderPurpleBold("EXIT CODES") + "\n")
	writeExitCode(&b, "0", "Success")
	writeExitCode(&b, "1", "Usage, config or I/O error")
	writeExitCode(&b, "2", "Not a readable APK archive, or no manifest inside")
	writeExitCode(&b, "3", "Manifest could not be decoded")
	writeExitCode(&b, "4", "Required manifest field missing or invalid")
	writeExitCode(&b, "130", "Interrupted")
	b.WriteString("\n")

	b.WriteString(renderPurpleBold("MORE INFO") + "\n")
	b.WriteString("  " + renderGreen("apkmeta <command> --help") + "  " + renderWhite("Detailed command help") + "\n")
	b.WriteString("  " + renderURL("https://github.com/zapstore/apkmeta") + "\n")

	return b.String()
}

// IdentityHelp returns colorful help for the identity subcommand.
func IdentityHelp() string {
	var b strings.Builder

	b.WriteString(renderGreenBold("apkmeta identity") + " " + renderWhite("- "+commandSummaries[cli.CommandIdentity]) + "\n\n")

	b.WriteString(renderPurpleBold("USAGE") + "\n")
	b.WriteString("  " + renderGreen("apkmeta identity") + " [options] <file.apk>...\n\n")

	b.WriteString(renderPurpleBold("HOW IT WORKS") + "\n")
	b.WriteString(renderWhite("  1. Reads the package attribute of the <manifest> element") + "\n")
	b.WriteString(renderWhite("  2. Walks <activity> and <activity-alias> elements in document order") + "\n")
	b.WriteString(renderWhite("  3. Picks the first one with a launcher <category> and a name") + "\n\n")

	b.WriteString(renderPurpleBold("OUTPUT") + "\n")
	b.WriteString(renderGreyDark("  com.example.app/com.example.app.MainActivity") + "\n\n")

	writeGlobalFlags(&b)
	return b.String()
}

// VersionHelp returns colorful help for the version subcommand.
func VersionHelp() string {
	var b strings.Builder

	b.WriteString(renderGreenBold("apkmeta version") + " " + renderWhite("- "+commandSummaries[cli.CommandVersion]) + "\n\n")

	b.WriteString(renderPurpleBold("USAGE") + "\n")
	b.WriteString("  " + renderGreen("apkmeta version") + " [options] <file.apk>...\n\n")

	b.WriteString(renderPurpleBold("NORMALIZATION") + "\n")
	b.WriteString(renderWhite("  The declared versionName keeps only digits and dots.") + "\n")
	b.WriteString(renderWhite("  It must have at least two numeric components:") + "\n\n")
	writeExample(&b, "1.2.3", "1.2.3")
	writeExample(&b, "1.2.3-beta4", "1.2.34")
	writeExample(&b, "v2.0 (build 7)", "2.07")
	writeExample(&b, "3", "rejected (single component)")
	b.WriteString("\n")

	b.WriteString(renderPurpleBold("OUTPUT") + "\n")
	b.WriteString(renderGreyDark("  1.2.34 (12)") + "\n\n")

	writeGlobalFlags(&b)
	return b.String()
}

// InspectHelp returns colorful help for the inspect subcommand.
func InspectHelp() string {
	var b strings.Builder

	b.WriteString(renderGreenBold("apkmeta inspect") + " " + renderWhite("- "+commandSummaries[cli.CommandInspect]) + "\n\n")

	b.WriteString(renderPurpleBold("USAGE") + "\n")
	b.WriteString("  " + renderGreen("apkmeta inspect") + " [--json] [options] <file.apk>...\n\n")

	b.WriteString(renderPurpleBold("OPTIONS") + "\n")
	writeFlag(&b, "--json", "One JSON object per file on stdout")
	b.WriteString("\n")

	b.WriteString(renderPurpleBold("OUTPUT (--json)") + "\n")
	b.WriteString(renderGreyDark("  {") + "\n")
	b.WriteString(renderGreyDark("    \"package_id\": \"com.example.app\",") + "\n")
	b.WriteString(renderGreyDark("    \"launch_activity\": \"com.example.app.MainActivity\",") + "\n")
	b.WriteString(renderGreyDark("    \"version_name\": \"1.2.34\",") + "\n")
	b.WriteString(renderGreyDark("    \"version_code\": 12,") + "\n")
	b.WriteString(renderGreyDark("    \"version_raw\": \"1.2.3-beta4\",") + "\n")
	b.WriteString(renderGreyDark("    \"version_semver\": \"v1.2.34\",") + "\n")
	b.WriteString(renderGreyDark("    \"architectures\": [\"arm64-v8a\", \"armeabi-v7a\"],") + "\n")
	b.WriteString(renderGreyDark("    \"file_path\": \"app.apk\",") + "\n")
	b.WriteString(renderGreyDark("    \"file_size\": 1048576,") + "\n")
	b.WriteString(renderGreyDark("    \"sha256\": \"abc123...\"") + "\n")
	b.WriteString(renderGreyDark("  }") + "\n\n")

	writeGlobalFlags(&b)
	return b.String()
}

// HandleHelp writes help for a command to w.
func HandleHelp(w io.Writer, cmd cli.Command) {
	switch cmd {
	case cli.CommandIdentity:
		fmt.Fprint(w, IdentityHelp())
	case cli.CommandVersion:
		fmt.Fprint(w, VersionHelp())
	case cli.CommandInspect:
		fmt.Fprint(w, InspectHelp())
	default:
		fmt.Fprint(w, RootHelp())
	}
}

func writeGlobalFlags(b *strings.Builder) {
	b.WriteString(renderPurpleBold("GLOBAL FLAGS") + "\n")
	writeFlag(b, "-c, --config <file>", "Config file (default: ./apkmeta.yaml if present)")
	writeFlag(b, "--decoder <name>", "Manifest decoder: apkparser, androidbinary, text")
	writeFlag(b, "--launcher-category <cat>", "Category marking the launch activity")
	writeFlag(b, "-v, --verbose", "Verbose output (-vv for debug logs)")
	writeFlag(b, "-q, --quiet", "Results and errors only")
	writeFlag(b, "--no-color", "Disable colored output")
	writeFlag(b, "--version", "Show version")
	writeFlag(b, "-h, --help", "Show help")
	b.WriteString("\n")
}

// Helper to write a flag line
func writeFlag(b *strings.Builder, flag, desc string) {
	b.WriteString("  " + renderGreen(flag))
	// Pad to align descriptions (min 1 space)
	padding := 28 - len(flag)
	if padding < 1 {
		padding = 1
	}
	b.WriteString(strings.Repeat(" ", padding))
	b.WriteString(renderWhite(desc) + "\n")
}

// Helper to write an example line
func writeExample(b *strings.Builder, cmd, desc string) {
	b.WriteString("  " + renderGreen(cmd))
	padding := 38 - len(cmd)
	if padding > 0 {
		b.WriteString(strings.Repeat(" ", padding))
	}
	b.WriteString(renderGrey(desc) + "\n")
}

func writeConfigKey(b *strings.Builder, key, value string) {
	b.WriteString("  " + renderGreen(key))
	b.WriteString(strings.Repeat(" ", max(1, 20-len(key))))
	b.WriteString(renderWhite(value) + "\n")
}

func writeExitCode(b *strings.Builder, code, desc string) {
	b.WriteString("  " + renderPurple(code))
	b.WriteString(strings.Repeat(" ", 6-len(code)))
	b.WriteString(renderWhite(desc) + "\n")
}
