package display

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// New creates a new formatter based on configuration.
func New(cfg Config) Formatter {
	// Set defaults.
	if cfg.Format == "" {
		cfg.Format = FormatTable
	}

	switch cfg.Format {
	case FormatJSON:
		return &jsonFormatter{config: cfg}
	case FormatSimple:
		return &simpleFormatter{config: cfg}
	case FormatTable:
		fallthrough
	default:
		return &tableFormatter{config: cfg}
	}
}

// formatFloat formats a float with specified precision.
func formatFloat(f float64, precision int) string {
	format := fmt.Sprintf("%%.%df", precision)
	return fmt.Sprintf(format, f)
}

// maxWidth resolves the table width cap for a writer. A configured cap
// wins; otherwise terminal output is capped at the terminal width and
// anything else is uncapped.
func maxWidth(cfg Config, w io.Writer) int {
	if cfg.MaxWidth > 0 {
		return cfg.MaxWidth
	}

	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 0
	}
	return width
}

// truncate shortens a cell to fit a width, marking the cut.
func truncate(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}

// writeHeader writes a section header.
func writeHeader(w io.Writer, title string, compact bool) error {
	if compact {
		_, err := fmt.Fprintf(w, "%s\n", title)
		return err
	}

	separator := ""
	for i := 0; i < len(title); i++ {
		separator += "="
	}

	_, err := fmt.Fprintf(w, "\n%s\n%s\n\n", title, separator)
	return err
}
