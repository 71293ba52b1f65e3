// Package pipeline runs the summarization stages for one document in order:
// extract, prompt, generate, parse, resolve, render, write.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"paperbrief/internal/models"
	"paperbrief/internal/summary"
	"paperbrief/internal/util"
)

// Stage names appear in failure diagnostics so the operator can tell where a
// run stopped.
const (
	StageExtract  = "extract"
	StageGenerate = "generate"
	StageParse    = "parse_response"
	StageWrite    = "write_output"
)

// Extractor turns a PDF file into a SourceDocument.
type Extractor interface {
	ExtractFile(path string) (models.SourceDocument, error)
}

// Generator produces raw model output for a prompt. *providers.Client
// implements it.
type Generator interface {
	Generate(ctx context.Context, req models.GenerationRequest) (models.GenerationResponse, error)
}

// ReferenceResolver looks up a citation for a parsed summary.
type ReferenceResolver interface {
	Resolve(ctx context.Context, sum models.SummaryResult) models.Reference
}

// Options configures one run.
type Options struct {
	InputPath     string
	OutputPath    string // derived from InputPath when empty
	Config        models.GenerationConfig
	MaxInputRunes int
}

// Result reports what a completed run produced.
type Result struct {
	OutputPath string
	Summary    models.SummaryResult
	Reference  models.Reference
	Response   models.GenerationResponse
	Truncated  bool
	Pages      int
}

// Pipeline wires the stages together. It processes one document per Run and
// no stage starts before the previous one finished.
type Pipeline struct {
	extractor Extractor
	generator Generator
	resolver  ReferenceResolver
	log       zerolog.Logger
}

func New(e Extractor, g Generator, r ReferenceResolver, log zerolog.Logger) *Pipeline {
	return &Pipeline{extractor: e, generator: g, resolver: r, log: log}
}

// Run executes all stages for one input file. On failure the returned error
// names the stage that aborted the run and no output file is written.
func (p *Pipeline) Run(ctx context.Context, opts Options) (Result, error) {
	var res Result
	start := time.Now()

	p.log.Info().Str("input", opts.InputPath).Msg("extracting text")
	doc, err := p.extractor.ExtractFile(opts.InputPath)
	if err != nil {
		return res, stageError(StageExtract, err)
	}
	res.Pages = doc.Pages
	p.log.Debug().
		Int("pages", doc.Pages).
		Int("chars", len(doc.Text)).
		Dur("elapsed", time.Since(start)).
		Msg("extraction complete")

	req := summary.BuildPrompt(doc.Text, opts.Config, opts.MaxInputRunes)
	res.Truncated = req.Truncated
	if req.Truncated {
		p.log.Warn().Int("limit_runes", opts.MaxInputRunes).Msg("document truncated to fit prompt limit")
	}

	resp, err := p.generator.Generate(ctx, req)
	if err != nil {
		return res, stageError(StageGenerate, err)
	}
	res.Response = resp
	p.log.Debug().Str("provider", resp.Provider).Str("model", resp.Model).Msg("generation complete")

	sum, err := summary.ParseSummary(resp.Text)
	if err != nil {
		return res, stageError(StageParse, err)
	}
	res.Summary = sum

	ref := models.SkippedReference()
	if opts.Config.IncludeReference {
		ref = p.resolver.Resolve(ctx, sum)
	}
	res.Reference = ref

	rendered := summary.RenderMarkdown(sum, ref)

	out := opts.OutputPath
	if out == "" {
		out = DefaultOutputPath(opts.InputPath)
	}
	// A canceled run must not leave an output file behind.
	if err := ctx.Err(); err != nil {
		return res, stageError(StageWrite, err)
	}
	if err := util.WriteTextAtomic(out, rendered); err != nil {
		return res, stageError(StageWrite, err)
	}
	res.OutputPath = out
	p.log.Info().
		Str("output", out).
		Str("title", sum.Title).
		Str("reference", string(ref.Status)).
		Dur("elapsed", time.Since(start)).
		Msg("summary written")
	return res, nil
}

// DefaultOutputPath maps input.pdf to input.md next to the input.
func DefaultOutputPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".md"
}

func stageError(stage string, err error) error {
	return fmt.Errorf("%s: %w", stage, err)
}
