// Package printer writes styled, line oriented CLI output.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hay-kot/a4s/internal/core/styles"
)

type ctxKey struct{}

// Printer writes status lines. Errors go to the error writer so they stay
// visible when stdout is piped.
type Printer struct {
	out io.Writer
	err io.Writer
}

// New creates a Printer.
func New(out, errOut io.Writer) *Printer {
	return &Printer{out: out, err: errOut}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stdout and stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stdout, os.Stderr)
}

// Successf prints a line prefixed with a check mark.
func (p *Printer) Successf(format string, args ...any) {
	p.line(p.out, styles.TextSuccessStyle.Render("✔"), format, args...)
}

// Infof prints a line prefixed with an info marker.
func (p *Printer) Infof(format string, args ...any) {
	p.line(p.out, styles.TextPrimaryStyle.Render("•"), format, args...)
}

// Warnf prints a line prefixed with a warning marker.
func (p *Printer) Warnf(format string, args ...any) {
	p.line(p.err, styles.TextWarningStyle.Render("!"), format, args...)
}

// Errorf prints a line prefixed with a cross to the error writer.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(p.err, styles.TextErrorStyle.Render("✘"), format, args...)
}

// Printf prints an unadorned line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

// Section prints a bold header followed by a divider.
func (p *Printer) Section(title string) {
	_, _ = fmt.Fprintln(p.out, styles.CommandHeaderStyle.Render(title))
	_, _ = fmt.Fprintln(p.out, styles.DividerStyle.Render(strings.Repeat("─", max(len(title), 24))))
}

func (p *Printer) line(w io.Writer, marker, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "%s %s\n", marker, fmt.Sprintf(format, args...))
}
