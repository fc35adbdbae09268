package xfail

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// TestRunner runs one verbose test run and returns the raw report text.
type TestRunner interface {
	Run(ctx context.Context, testName string) (string, error)
}

// Options control a single fix invocation.
type Options struct {
	// Force is reserved: it will override report validation once a
	// validation step exists. It currently has no effect.
	Force bool
	// Platform requests a platform-specific annotation. Matching a real
	// test with this set is reported as a PlatformError.
	Platform bool
}

// Summary describes what one fix run did.
type Summary struct {
	Overall   string   // suite-level verdict from the report
	Total     int      // parsed test records
	Patched   []string // names of tests that received an annotation
	Unmatched []string // failing tests with no matching definition in the file
	Skipped   int      // malformed report lines discarded by the parser
}

// Fixer sequences run, parse, patch, and write for one test group.
type Fixer struct {
	runner  TestRunner
	patcher *Patcher
	log     *zap.Logger
}

// NewFixer creates a Fixer. A nil patcher gets the default marker; a nil
// logger is replaced with a no-op logger.
func NewFixer(runner TestRunner, patcher *Patcher, log *zap.Logger) *Fixer {
	if patcher == nil {
		patcher = NewPatcher("")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Fixer{runner: runner, patcher: patcher, log: log}
}

// Fix runs testName under the configured runner, patches every failing or
// erroring test into the file at path, and writes the result back in place.
//
// Patches apply sequentially against the accumulated in-memory text, in
// report order: each patch sees the output of the previous one. The final
// write is a single truncate-and-write with no backup and no re-validation.
func (f *Fixer) Fix(ctx context.Context, testName, path string, opts Options) (*Summary, error) {
	report, err := f.runner.Run(ctx, testName)
	if err != nil {
		return nil, err
	}

	res, skipped := ParseString(report)
	if skipped > 0 {
		f.log.Warn("skipped malformed report lines", zap.Int("count", skipped))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	text := string(data)

	sum := &Summary{Overall: res.Overall, Total: len(res.Tests), Skipped: skipped}
	for _, t := range res.Tests {
		if t.Result != "fail" && t.Result != "error" {
			continue
		}
		f.log.Info("modifying test",
			zap.String("name", t.Name),
			zap.String("test_path", t.Path))

		patched, applied, err := f.patcher.Apply(text, SplitTestPath(t.Path), opts.Platform)
		if err != nil {
			return nil, fmt.Errorf("patching %s: %w", t.Name, err)
		}
		if applied {
			text = patched
			sum.Patched = append(sum.Patched, t.Name)
		} else {
			sum.Unmatched = append(sum.Unmatched, t.Name)
		}
	}

	_ = opts.Force // reserved for a future validation override

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	f.log.Info("wrote file",
		zap.String("path", path),
		zap.Int("patched", len(sum.Patched)),
		zap.Int("unmatched", len(sum.Unmatched)))
	return sum, nil
}
