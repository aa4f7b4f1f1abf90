package export

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Progress reports export steps.
type Progress interface {
	Start(total int)
	Step(label string)
	Finish()
}

// NewProgress returns a progress bar on w when w is a terminal, and a silent
// reporter otherwise.
func NewProgress(w io.Writer) Progress {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return &barProgress{writer: w}
	}
	return nopProgress{}
}

type barProgress struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
}

func (p *barProgress) Start(total int) {
	w := p.writer
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Exporting"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}

func (p *barProgress) Step(label string) {
	if p.bar == nil {
		return
	}
	p.bar.Describe(label)
	_ = p.bar.Add(1)
}

func (p *barProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

type nopProgress struct{}

func (nopProgress) Start(int)   {}
func (nopProgress) Step(string) {}
func (nopProgress) Finish()     {}
