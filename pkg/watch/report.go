package watch

import (
	"io"

	"github.com/fatih/color"
)

// Printer writes leveled, colorized status lines for humans. All output is
// free-form text; nothing machine-readable is promised.
type Printer struct {
	out io.Writer

	info *color.Color
	ok   *color.Color
	warn *color.Color
	fail *color.Color
}

// NewPrinter builds a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:  out,
		info: color.New(color.FgCyan),
		ok:   color.New(color.FgGreen),
		warn: color.New(color.FgYellow),
		fail: color.New(color.FgRed),
	}
}

func (p *Printer) Infof(format string, args ...any) {
	_, _ = p.info.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Okf(format string, args ...any) {
	_, _ = p.ok.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Warnf(format string, args ...any) {
	_, _ = p.warn.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	_, _ = p.fail.Fprintf(p.out, format+"\n", args...)
}
