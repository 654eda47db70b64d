package parser

import (
	"github.com/treep-lang/treep/internal/pipeline"
)

// Processor runs the parser as a pipeline stage, turning ctx.Source into
// ctx.Program.
type Processor struct{}

func (Processor) Name() string { return "parser" }

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	p := New(ctx.FilePath, ctx.Source)
	ctx.Program = p.ParseProgram()
	for _, err := range p.Errors() {
		ctx.AddError(err)
	}
	return ctx
}
