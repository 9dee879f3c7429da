// Package output provides console output helpers for CLI commands.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
)

var (
	// Stdout receives regular command output.
	Stdout io.Writer = os.Stdout
	// Stderr receives warnings and errors.
	Stderr io.Writer = os.Stderr

	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	successColor = color.New(color.FgGreen)
	infoColor    = color.New(color.FgCyan)
)

// JSON writes indented JSON to stdout.
func JSON(v any) error {
	enc := json.NewEncoder(Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table creates an aligned table writer for stdout.
// Remember to call Flush() when done writing.
func Table() *tabwriter.Writer {
	return tabwriter.NewWriter(Stdout, 0, 0, 2, ' ', 0)
}

// Println writes an uncoloured line to stdout.
func Println(format string, args ...any) {
	fmt.Fprintf(Stdout, format+"\n", args...)
}

// Success prints a green line to stdout.
func Success(format string, args ...any) {
	successColor.Fprintf(Stdout, format+"\n", args...)
}

// Info prints a cyan line to stdout.
func Info(format string, args ...any) {
	infoColor.Fprintf(Stdout, format+"\n", args...)
}

// Warn prints a warning message to stderr.
func Warn(format string, args ...any) {
	warnColor.Fprintf(Stderr, "Warning: "+format+"\n", args...)
}

// Error prints an error message to stderr.
func Error(format string, args ...any) {
	errorColor.Fprintf(Stderr, "Error: "+format+"\n", args...)
}
