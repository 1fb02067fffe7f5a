// Package pipeline wires inspection, instrumentation, verification and
// grading into one run over a single sketch file.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/viant/afs"
	"go.uber.org/zap"

	"github.com/inolab/pinspect/compare"
	"github.com/inolab/pinspect/harness"
	"github.com/inolab/pinspect/inspector"
	"github.com/inolab/pinspect/inspector/cpp"
	"github.com/inolab/pinspect/inspector/repository"
	"github.com/inolab/pinspect/inspector/sketch"
	"github.com/inolab/pinspect/instrument"
	"github.com/inolab/pinspect/verify"
)

// Options selects which stages run beyond instrumentation
type Options struct {
	// OutputURL is where the instrumented sketch is written; empty skips the write
	OutputURL string
	// CheckURL points at the CSV verification table; empty skips verification
	CheckURL string
	// Harness, when set together with OutputURL, builds and grades the
	// instrumented sketch
	Harness *harness.Config
	// Expected is the expected emulator output for grading
	Expected string
	Compare  compare.Options
}

// Report aggregates everything one run produced
type Report struct {
	SourceURL         string
	Project           *repository.Project
	RunID             string
	InputFingerprint  uint64
	OutputFingerprint uint64
	EditCount         int
	Calls             []instrument.CallRecord
	Verification      []verify.Result
	Grade             *compare.Outcome
	HarnessResult     *harness.RunResult
}

// Pipeline runs the analysis stages over sketch files
type Pipeline struct {
	fs       afs.Service
	config   *sketch.Config
	factory  *inspector.Factory
	detector *repository.Detector
	logger   *zap.Logger
}

// New creates a Pipeline. A nil logger disables logging.
func New(config *sketch.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	config = config.Normalize()
	return &Pipeline{
		fs:       afs.New(),
		config:   config,
		factory:  inspector.NewFactory(config),
		detector: repository.New(),
		logger:   logger,
	}
}

// Run analyzes one sketch: parse, instrument, optionally write the artifact,
// verify against the expected-pin table, and build/grade via the harness.
func (p *Pipeline) Run(ctx context.Context, sourceURL string, options Options) (*Report, error) {
	content, err := p.fs.DownloadWithURL(ctx, sourceURL)
	if err != nil {
		return nil, fmt.Errorf("failed to read sketch %s: %w", sourceURL, err)
	}

	ins, err := p.factory.GetInspector(sourceURL)
	if err != nil {
		return nil, err
	}
	file, err := ins.InspectNamedSource(content, sourceURL)
	if err != nil {
		return nil, err
	}

	report := &Report{SourceURL: sourceURL}
	if report.InputFingerprint, err = file.Fingerprint(); err != nil {
		return nil, err
	}
	// Best effort: remote URLs and orphan files stay without project info.
	if project, perr := p.detector.DetectProject(sourceURL); perr == nil {
		report.Project = project
	} else {
		p.logger.Debug("project detection skipped",
			zap.String("source", sourceURL), zap.Error(perr))
	}

	result, err := instrument.NewInstrumenter(p.config).Rewrite(file)
	if err != nil {
		return nil, err
	}
	report.EditCount = result.EditCount()
	report.Calls = result.Calls
	if report.OutputFingerprint, err = sketch.Hash(result.Output); err != nil {
		return nil, err
	}
	p.logger.Info("instrumented sketch",
		zap.String("source", sourceURL),
		zap.Int("edits", report.EditCount))

	if options.OutputURL != "" {
		if err := p.fs.Upload(ctx, options.OutputURL, os.FileMode(0644), bytes.NewReader(result.Output)); err != nil {
			return nil, fmt.Errorf("failed to write instrumented sketch %s: %w", options.OutputURL, err)
		}
	}

	if options.CheckURL != "" {
		entries, err := verify.LoadTable(ctx, options.CheckURL)
		if err != nil {
			return nil, err
		}
		report.Verification = verify.Verify(file, entries)
	}

	if options.Harness != nil && options.OutputURL != "" {
		if err := p.grade(ctx, options, report); err != nil {
			return report, err
		}
	}
	return report, nil
}

func (p *Pipeline) grade(ctx context.Context, options Options, report *Report) error {
	runner := harness.NewRunner(options.Harness, p.logger)
	runResult, err := runner.Run(ctx, options.OutputURL)
	if runResult != nil {
		report.HarnessResult = runResult
		report.RunID = runResult.RunID
	}
	if err != nil {
		return err
	}
	outcome := compare.Match(runResult.RawOutput, options.Expected, options.Compare)
	report.Grade = &outcome
	p.logger.Info("graded emulator output",
		zap.Bool("passed", outcome.Passed),
		zap.Float64("markFraction", outcome.MarkFraction))
	return nil
}

// Verify parses a sketch file and classifies it against a check table
func (p *Pipeline) Verify(ctx context.Context, sourceURL, checkURL string) ([]verify.Result, error) {
	report, err := p.Run(ctx, sourceURL, Options{CheckURL: checkURL})
	if err != nil {
		return nil, err
	}
	return report.Verification, nil
}

// Inspect parses one sketch file with the pipeline's configuration
func (p *Pipeline) Inspect(ctx context.Context, sourceURL string) (*cpp.File, error) {
	content, err := p.fs.DownloadWithURL(ctx, sourceURL)
	if err != nil {
		return nil, fmt.Errorf("failed to read sketch %s: %w", sourceURL, err)
	}
	ins, err := p.factory.GetInspector(sourceURL)
	if err != nil {
		return nil, err
	}
	return ins.InspectNamedSource(content, sourceURL)
}
