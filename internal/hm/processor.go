package hm

import (
	"github.com/treep-lang/treep/internal/diagnostics"
	"github.com/treep-lang/treep/internal/pipeline"
)

// Processor type-checks ctx.Tree (post macro-expansion), recording the
// inferred top-level type on ctx.Type and leaving ctx.TypeEnv populated
// with every top-level binding's generalized scheme.
type Processor struct{}

func (Processor) Name() string { return "typecheck" }

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Tree == nil {
		return ctx
	}
	inf := NewInferencer()
	typ, err := inf.Infer(ctx.TypeEnv, ctx.Tree)
	if err != nil {
		ctx.AddError(diagnostics.AtNode(diagnostics.KindType, ctx.Tree, "%s", err))
		return ctx
	}
	ctx.Type = typ
	return ctx
}
