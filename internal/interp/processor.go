package interp

import (
	"github.com/treep-lang/treep/internal/diagnostics"
	"github.com/treep-lang/treep/internal/pipeline"
	"github.com/treep-lang/treep/internal/token"
)

// Processor runs ctx.Tree (post type-check) to completion, writing
// println/debug/log/trace output to ctx.Out.
type Processor struct {
	Result Object
}

func (*Processor) Name() string { return "interp" }

func (p *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Tree == nil {
		return ctx
	}
	out := ctx.Out
	if out == nil {
		out = discardWriter{}
	}
	ev := New(out)
	env := ev.NewGlobalEnv()
	result, err := ev.Run(env, ctx.Tree)
	if err != nil {
		ctx.AddError(diagnostics.New(diagnostics.KindRuntime, token.Position{}, "%s", err))
		return ctx
	}
	p.Result = result
	return ctx
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
