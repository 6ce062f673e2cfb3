package ui

import (
	"fmt"
	"io"
	"os"
)

// VerbWidth is the fixed width for right-aligned action verbs in status lines.
const VerbWidth = 12

// Verbosity levels.
const (
	VerbQuiet   = -1 // -q: results + errors only
	VerbNormal  = 0  // default: status + results + errors
	VerbVerbose = 1  // -v: above + detail (entry names, hashes)
	VerbDebug   = 2  // -vv: above + debug (decoder choice, raw attributes)
)

// Output streams. Results go to Out, everything else to Err.
var (
	Out io.Writer = os.Stdout
	Err io.Writer = os.Stderr
)

// Verbosity and QuietMode control what gets printed. Set by main from CLI options.
var (
	Verbosity int  // See VerbQuiet..VerbDebug
	QuietMode bool // When true, suppress all status (-q)
)

// SetVerbosity sets the package verbosity level.
func SetVerbosity(v int) {
	Verbosity = v
}

// SetQuietMode sets whether status output is suppressed (quiet / -q).
func SetQuietMode(q bool) {
	QuietMode = q
}

// statusLine renders a verb-aligned line. Verb is right-aligned to VerbWidth.
func statusLine(verb, detail string) string {
	styled := AccentStyle.Render(fmt.Sprintf("%*s", VerbWidth, verb))
	return fmt.Sprintf("%s  %s", styled, detail)
}

// Status prints a status line with a right-aligned verb and detail to Err.
// Suppressed in quiet mode. Used for per-file progress (e.g. "   Inspected  app.apk").
func Status(verb, detail string) {
	if QuietMode {
		return
	}
	fmt.Fprintln(Err, statusLine(verb, detail))
}

// Detail prints a status line only when verbosity >= 1 (verbose / -v).
func Detail(verb, detail string) {
	if QuietMode || Verbosity < VerbVerbose {
		return
	}
	fmt.Fprintln(Err, statusLine(verb, detail))
}

// Result writes scriptable output to Out. Always prints (even in quiet mode).
func Result(s string) {
	fmt.Fprintln(Out, s)
}

// ErrorStatus prints an error-colored verb-prefix line to Err.
// Shown even in quiet mode.
func ErrorStatus(verb, detail string) {
	styled := ErrorStyle.Render(fmt.Sprintf("%*s", VerbWidth, verb))
	fmt.Fprintf(Err, "%s  %s\n", styled, detail)
}

// FormatError builds a multi-line error message in "Error -> why -> fix" form.
// Use when the error has an actionable suggestion. Empty why/fix are omitted.
func FormatError(what, why, fix string) string {
	out := "Error: " + what
	if why != "" {
		out += "\n  " + string('\u2192') + " " + why
	}
	if fix != "" {
		out += "\n  " + string('\u2192') + " " + fix
	}
	return out
}
