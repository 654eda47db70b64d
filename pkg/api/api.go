// Package api exposes TreeP's programmatic interfaces: compile-and-run a
// source string to its terminal value, expand a source string to its
// macro-expanded ET, type-check without running, and build a transducer
// from an ordered rule list. Each assembles the same stage packages
// (internal/lexer, internal/parser, internal/normalize, internal/macro,
// internal/hm, internal/interp) through internal/pipeline.
package api

import (
	"fmt"
	"io"
	"os"

	"github.com/treep-lang/treep/internal/element"
	"github.com/treep-lang/treep/internal/hm"
	"github.com/treep-lang/treep/internal/interp"
	"github.com/treep-lang/treep/internal/lexer"
	"github.com/treep-lang/treep/internal/macro"
	"github.com/treep-lang/treep/internal/normalize"
	"github.com/treep-lang/treep/internal/parser"
	"github.com/treep-lang/treep/internal/pipeline"
	"github.com/treep-lang/treep/internal/transducer"
)

// Result is what CompileAndRun returns on success: the terminal value
// from `main` (or the last top-level statement, if there is no `main`),
// its inferred type, and the run's pipeline context, whose Timings map
// holds per-stage durations.
type Result struct {
	Value   interp.Object
	Type    hm.Type
	Context *pipeline.PipelineContext
}

// frontend runs the shared lexer -> parser -> normalize -> macro ->
// typecheck stages, common to both CompileAndRun and Expand.
func frontend(filePath, source string, out io.Writer, verbose bool, withTypeCheck bool) *pipeline.PipelineContext {
	ctx := pipeline.NewContext(filePath, source, out)
	ctx.Verbose = verbose

	stages := []pipeline.Processor{
		&lexer.Processor{},
		&parser.Processor{},
		&normalize.Processor{},
		macro.NewProcessor(),
	}
	if withTypeCheck {
		stages = append(stages, &hm.Processor{})
	}
	return pipeline.New(stages...).Run(ctx)
}

// CompileAndRun lexes, parses, normalizes, macro-expands, type-checks,
// and interprets source, returning the terminal value `main` produces
// (or, absent a `main` binding, the last top-level statement's value).
// println/debug/log/trace writes go to out; an unhandled error(msg)
// surfaces as a RuntimeError carrying msg in the returned error.
func CompileAndRun(source string, out io.Writer) (*Result, error) {
	if out == nil {
		out = os.Stdout
	}
	ctx := frontend("<source>", source, out, false, true)
	if err := firstError(ctx); err != nil {
		return nil, err
	}

	interpProc := &interp.Processor{}
	ctx = interpProc.Process(ctx)
	if err := firstError(ctx); err != nil {
		return nil, err
	}

	typ := ctx.Type
	if sc, ok := ctx.TypeEnv.Lookup("main"); ok {
		typ = hm.NewInferencer().Instantiate(sc)
	}
	return &Result{Value: interpProc.Result, Type: typ, Context: ctx}, nil
}

// Expand lexes, parses, normalizes, and macro-expands source, returning
// the expanded ET without type-checking or running it.
func Expand(source string) (*element.Element, error) {
	ctx := frontend("<source>", source, io.Discard, false, false)
	if err := firstError(ctx); err != nil {
		return nil, err
	}
	return ctx.Tree, nil
}

// TypeCheck lexes, parses, normalizes, expands, and type-checks source,
// returning the inferred type of its terminal form without running it:
// main's type when a main binding exists, the last top-level statement's
// type otherwise — mirroring what CompileAndRun would evaluate.
func TypeCheck(source string) (hm.Type, error) {
	ctx := frontend("<source>", source, io.Discard, false, true)
	if err := firstError(ctx); err != nil {
		return nil, err
	}
	if sc, ok := ctx.TypeEnv.Lookup("main"); ok {
		return hm.NewInferencer().Instantiate(sc), nil
	}
	return ctx.Type, nil
}

// NewTransducer builds a transducer from an ordered rule list. It is a
// thin re-export of transducer.New so callers depend only on pkg/api.
func NewTransducer(rules ...transducer.Rule) *transducer.Transducer {
	return transducer.New(rules...)
}

func firstError(ctx *pipeline.PipelineContext) error {
	if len(ctx.Errors) == 0 {
		return nil
	}
	e := ctx.Errors[0]
	return fmt.Errorf("%s", e.Format(false))
}
