// Package debug holds the switches and the output used for tracing the
// parser, the lookups and the patch engine. Switches are read once from the
// environment:
//
//	JSONTREE_DEBUG_PARSE   parse errors and recovery
//	JSONTREE_DEBUG_LOOKUP  offset and path lookups
//	JSONTREE_DEBUG_PATCH   edits produced by the patch engine
package debug

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type debug struct {
	Parse  bool
	Lookup bool
	Patch  bool
}

var d *debug

var (
	out    io.Writer = os.Stderr
	prefix           = color.New(color.FgYellow).SprintFunc()
)

func init() {
	d = &debug{}
	d.Parse = boolEnv("JSONTREE_DEBUG_PARSE")
	d.Lookup = boolEnv("JSONTREE_DEBUG_LOOKUP")
	d.Patch = boolEnv("JSONTREE_DEBUG_PATCH")
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		color.NoColor = true
	}
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Lookup() bool {
	return d.Lookup
}
func Patch() bool {
	return d.Patch
}

// Logf writes a debug line to stderr.
func Logf(msg string, args ...any) {
	fmt.Fprint(out, prefix("jsontree: "))
	fmt.Fprintf(out, msg, args...)
}

// SetOutput redirects debug output, it returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	prev := out
	out = w
	return prev
}

// Enable turns all switches on or off.
func Enable(on bool) {
	d.Parse, d.Lookup, d.Patch = on, on, on
}
