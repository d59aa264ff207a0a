// Package renderer turns engine results into markdown reports for the CLI.
package renderer

import (
	"fmt"
	"strings"
)

// mdBuilder is a strings.Builder with printf helpers for writing markdown
// tables line by line.
type mdBuilder struct {
	*strings.Builder
}

func newBuilder() *mdBuilder { return &mdBuilder{Builder: &strings.Builder{}} }

// Printf formats according to a format specifier and writes to the builder.
func (b *mdBuilder) Printf(format string, args ...any) {
	fmt.Fprintf(b, format, args...)
}
