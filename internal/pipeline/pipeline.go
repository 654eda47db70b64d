package pipeline

import "os"

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline, recording each stage's wall-clock cost on
// the context. With ctx.Verbose set, a per-stage timing report is written
// to stderr after the last stage.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx.startTiming()
		ctx = processor.Process(ctx)
		ctx.stopTiming(processor.Name())
		// Continue on errors to collect diagnostics from all stages
		// (e.g. LSP needs both parse and semantic errors).
	}
	if ctx.Verbose {
		ctx.ReportTimings(os.Stderr)
	}
	return ctx
}
