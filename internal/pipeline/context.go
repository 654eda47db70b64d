package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/treep-lang/treep/internal/cst"
	"github.com/treep-lang/treep/internal/diagnostics"
	"github.com/treep-lang/treep/internal/element"
	"github.com/treep-lang/treep/internal/hm"
	"github.com/treep-lang/treep/internal/token"
)

// PipelineContext threads state between Processors: each stage reads the
// fields earlier stages populated and fills in its own, accumulating
// Errors rather than aborting, so later stages (and a caller presenting
// diagnostics) see every failure a single run produced, not just the
// first.
type PipelineContext struct {
	RunID    uuid.UUID
	FilePath string
	Source   string
	Verbose  bool
	Out      io.Writer

	Tokens  []token.Token
	Program *cst.Program
	Tree    *element.Element // set by normalize, replaced by the macro stage's expanded tree
	TypeEnv *hm.Env
	Type    hm.Type

	Errors []*diagnostics.Error

	stageStart time.Time
	stageOrder []string
	Timings    map[string]time.Duration
}

// NewContext builds a PipelineContext for one compilation run, stamping a
// fresh RunID so log lines from concurrent CLI invocations (or a future
// service wrapper) stay attributable to a single source file.
func NewContext(filePath, source string, out io.Writer) *PipelineContext {
	return &PipelineContext{
		RunID:    uuid.New(),
		FilePath: filePath,
		Source:   source,
		Out:      out,
		TypeEnv:  hm.NewEnv(),
		Timings:  make(map[string]time.Duration),
	}
}

// AddError records a diagnostic, filling in the context's file and source
// if the error did not already carry them.
func (c *PipelineContext) AddError(err *diagnostics.Error) {
	if err.File == "" || err.Source == "" {
		err = err.WithSource(c.FilePath, c.Source)
	}
	c.Errors = append(c.Errors, err)
}

// Processor is one pipeline stage: lexer, parser, normalizer, macro
// expander, inferencer, or interpreter. Every stage returns the same
// context it was given, mutated in place, so implementations are free to
// either allocate a new context or simply return their input.
type Processor interface {
	Name() string
	Process(ctx *PipelineContext) *PipelineContext
}

// startTiming and stopTiming let Pipeline.Run record each stage's
// wall-clock cost into ctx.Timings, so no Processor times itself.
func (c *PipelineContext) startTiming() { c.stageStart = time.Now() }

func (c *PipelineContext) stopTiming(name string) {
	if _, seen := c.Timings[name]; !seen {
		c.stageOrder = append(c.stageOrder, name)
	}
	c.Timings[name] = time.Since(c.stageStart)
}

// ReportTimings writes a per-stage timing summary for this run, in stage
// order: a header line identifying the run and its input size, then one
// line per completed stage.
func (c *PipelineContext) ReportTimings(w io.Writer) {
	fmt.Fprintf(w, "run %s: %s (%s, %s tokens)\n",
		c.RunID, c.FilePath,
		humanize.Bytes(uint64(len(c.Source))),
		humanize.Comma(int64(len(c.Tokens))))
	for _, name := range c.stageOrder {
		fmt.Fprintf(w, "  %-10s %v\n", name, c.Timings[name].Round(time.Microsecond))
	}
}
