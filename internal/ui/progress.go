package ui

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

const progressTemplate pb.ProgressBarTemplate = `{{string . "prefix"}}{{counters . }} {{bar . }} {{percent . }}`

// Progress tracks languages collected for one source. A Progress without a
// writer does nothing.
type Progress struct {
	bar *pb.ProgressBar
}

// NewProgress starts a progress bar of total steps on w. Passing a nil w
// returns a silent Progress.
func NewProgress(w io.Writer, title string, total int) *Progress {
	if w == nil {
		return &Progress{}
	}

	bar := progressTemplate.New(total).
		SetWriter(w).
		Set("prefix", title+" ").
		Start()

	return &Progress{bar: bar}
}

// Increment advances the bar by one language
func (p *Progress) Increment() {
	if p.bar != nil {
		p.bar.Increment()
	}
}

// Finish stops the bar and prints its final state
func (p *Progress) Finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}
