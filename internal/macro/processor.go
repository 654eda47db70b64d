package macro

import (
	"github.com/treep-lang/treep/internal/diagnostics"
	"github.com/treep-lang/treep/internal/pipeline"
	"github.com/treep-lang/treep/internal/token"
)

// Processor rewrites ctx.Tree in place through the built-in macro table.
type Processor struct {
	Expander *Expander
}

func NewProcessor() *Processor { return &Processor{Expander: New()} }

func (*Processor) Name() string { return "macro" }

func (p *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Tree == nil {
		return ctx
	}
	expanded, err := p.Expander.Expand(ctx.Tree)
	if err != nil {
		if de, ok := err.(*diagnostics.Error); ok {
			ctx.AddError(de)
		} else {
			ctx.AddError(diagnostics.New(diagnostics.KindMacro, token.Position{}, "%s", err))
		}
		return ctx
	}
	ctx.Tree = expanded
	return ctx
}
