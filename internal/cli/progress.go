package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/layerlint/internal/design"
	"github.com/mvp-joe/layerlint/internal/rename"
)

// minBarTotal is the smallest batch worth drawing a bar for.
const minBarTotal = 50

// CLIProgressReporter draws a progress bar for large batches.
type CLIProgressReporter struct {
	w         io.Writer
	bar       *progressbar.ProgressBar
	startTime time.Time
	processed int
}

// NewCLIProgressReporter creates a reporter writing to w.
func NewCLIProgressReporter(w io.Writer) *CLIProgressReporter {
	return &CLIProgressReporter{w: w}
}

func (c *CLIProgressReporter) OnStart(total int) {
	c.startTime = time.Now()
	c.processed = 0
	if total < minBarTotal {
		return
	}
	c.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(c.w),
		progressbar.OptionSetDescription("Naming layers"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("layers/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.w)
		}),
	)
}

func (c *CLIProgressReporter) OnNodeProcessed(n *design.Node) {
	c.processed++
	if c.bar != nil {
		c.bar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(result *rename.Result) {
	if c.bar != nil {
		c.bar.Finish()
		c.bar = nil
	}
}

// Processed returns how many layers the current batch has handled.
func (c *CLIProgressReporter) Processed() int {
	return c.processed
}
