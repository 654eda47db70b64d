package lexer

import (
	"github.com/treep-lang/treep/internal/pipeline"
	"github.com/treep-lang/treep/internal/token"
)

// Processor runs the lexer as a standalone pipeline stage, populating
// ctx.Tokens for callers that want the raw token stream (the verbose
// timing report counts it) independent of parsing, which
// re-lexes internally rather than consuming this slice.
type Processor struct{}

func (Processor) Name() string { return "lexer" }

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.Source)
	for {
		tok := l.NextToken()
		ctx.Tokens = append(ctx.Tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return ctx
}
