package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Output formats for markdown documents.
const (
	formatAuto   = "auto"
	formatText   = "text"
	formatPretty = "pretty"
)

const defaultWidth = 100

// stdout receives documents and command results.
var stdout io.Writer = os.Stdout

func validFormat(format string) error {
	switch format {
	case formatAuto, formatText, formatPretty:
		return nil
	}
	return fmt.Errorf("unknown format %q, want %s, %s or %s", format, formatAuto, formatText, formatPretty)
}

// printMarkdown prints md on stdout, rendered for the terminal when asked to
// or, in auto mode, when stdout is one.
func printMarkdown(md, format string) {
	fd := int(os.Stdout.Fd())
	isTerm := term.IsTerminal(fd)
	if format == formatText || (format == formatAuto && !isTerm) {
		fmt.Fprint(stdout, md)
		return
	}

	width := defaultWidth
	if isTerm {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
