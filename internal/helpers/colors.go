package helpers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	// SuccessColor for successful operations
	SuccessColor = color.New(color.FgGreen, color.Bold)

	// ErrorColor for error messages
	ErrorColor = color.New(color.FgRed, color.Bold)

	// WarningColor for warning messages
	WarningColor = color.New(color.FgYellow, color.Bold)

	// InfoColor for informational messages
	InfoColor = color.New(color.FgCyan, color.Bold)

	// TitleColor for titles and headers
	TitleColor = color.New(color.FgMagenta, color.Bold)
)

// Printer writes colored operator messages to a writer
type Printer struct {
	out io.Writer
}

// NewPrinter creates a printer writing to out. A nil out means stdout.
func NewPrinter(out io.Writer) *Printer {
	if out == nil {
		out = color.Output
	}
	return &Printer{out: out}
}

// Writer returns the underlying writer
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Success prints a success message
func (p *Printer) Success(format string, args ...interface{}) {
	SuccessColor.Fprintf(p.out, "✅ "+format+"\n", args...)
}

// Error prints an error message
func (p *Printer) Error(format string, args ...interface{}) {
	ErrorColor.Fprintf(p.out, "❌ "+format+"\n", args...)
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...interface{}) {
	WarningColor.Fprintf(p.out, "⚠️  "+format+"\n", args...)
}

// Info prints an info message
func (p *Printer) Info(format string, args ...interface{}) {
	InfoColor.Fprintf(p.out, "ℹ️  "+format+"\n", args...)
}

// Title prints a title
func (p *Printer) Title(format string, args ...interface{}) {
	TitleColor.Fprintf(p.out, "🎯 "+format+"\n", args...)
}

// Field prints a labelled value, used for the extracted issue fields
func (p *Printer) Field(label string, value interface{}) {
	InfoColor.Fprintf(p.out, "%s: ", label)
	fmt.Fprintf(p.out, "%v\n", value)
}

// Separator prints a visual separator
func (p *Printer) Separator() {
	fmt.Fprintln(p.out, strings.Repeat("─", 80))
}

// DisableColor turns off ANSI colors for all printers
func DisableColor() {
	color.NoColor = true
}

// IsTerminal checks if output is going to a terminal
func IsTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
