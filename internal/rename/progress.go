package rename

import "github.com/mvp-joe/layerlint/internal/design"

// ProgressReporter receives callbacks while a batch runs.
type ProgressReporter interface {
	// OnStart is called once the layers are collected.
	OnStart(total int)

	// OnNodeProcessed is called after each layer, renamed or not.
	OnNodeProcessed(n *design.Node)

	// OnComplete is called when the batch finishes.
	OnComplete(result *Result)
}

// NoOpProgressReporter reports nothing.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnStart(total int)              {}
func (NoOpProgressReporter) OnNodeProcessed(n *design.Node) {}
func (NoOpProgressReporter) OnComplete(result *Result)      {}
