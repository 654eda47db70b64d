package normalize

import "github.com/treep-lang/treep/internal/pipeline"

// Processor lowers ctx.Program (set by the parser stage) into ctx.Tree.
type Processor struct{}

func (Processor) Name() string { return "normalize" }

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Program == nil {
		return ctx
	}
	ctx.Tree = Normalize(ctx.Program)
	return ctx
}
