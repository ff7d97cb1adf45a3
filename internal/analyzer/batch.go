package analyzer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"contractlens/internal/errors"
	"contractlens/internal/model"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Input is one named contract text of a batch.
type Input struct {
	Name   string
	Source string
}

// Result is the outcome for one input. Exactly one of Contract and Err is set.
// Analysis holds the declarations and coded findings behind Contract; it may be
// shared with other inputs of identical source and must not be modified.
type Result struct {
	Name     string
	Contract *model.AnalyzedContract
	Analysis *Analysis
	Err      error
}

// BatchResult holds per-input results in input order.
type BatchResult struct {
	Results []Result
	err     error
}

// Err is non-nil only when there was nothing to analyze or every input failed.
func (b *BatchResult) Err() error {
	return b.err
}

// Contracts returns the successfully analyzed models in input order.
func (b *BatchResult) Contracts() []*model.AnalyzedContract {
	var out []*model.AnalyzedContract
	for _, r := range b.Results {
		if r.Contract != nil {
			out = append(out, r.Contract)
		}
	}
	return out
}

// Failures returns the failed inputs in input order.
func (b *BatchResult) Failures() []errors.InputFailure {
	var out []errors.InputFailure
	for _, r := range b.Results {
		if r.Err != nil {
			out = append(out, errors.InputFailure{Name: r.Name, Err: r.Err})
		}
	}
	return out
}

// AnalyzeBatch analyzes inputs concurrently, at most limit at a time (no limit
// when limit <= 0). Inputs with blank source are dropped. A failing input does
// not affect the others; identical sources in flight at the same time share one
// analysis. A non-empty Name replaces the contract name found in the text.
//
// The returned error equals the result's Err, or the context error when the
// batch was cancelled.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, inputs []Input, limit int) (*BatchResult, error) {
	var pending []Input
	for _, in := range inputs {
		if strings.TrimSpace(in.Source) != "" {
			pending = append(pending, in)
		}
	}
	if len(pending) == 0 {
		b := &BatchResult{err: errors.NothingToAnalyze()}
		return b, b.err
	}

	results := make([]Result, len(pending))
	var group singleflight.Group

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, in := range pending {
		i, in := i, in // per-iteration copies for the goroutine below (pre-Go 1.22 loop semantics)
		results[i] = Result{Name: in.Name, Err: context.Canceled}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return err
			}

			v, err, shared := group.Do(hashString(in.Source), func() (interface{}, error) {
				return a.Run(in.Source)
			})
			if err != nil {
				log.Debugf("input %q failed: %s", in.Name, err)
				results[i].Err = err
				return nil
			}
			if shared {
				log.Debugf("input %q shares its analysis with an identical source", in.Name)
			}

			// Shallow copy: the name differs per input, nothing else is mutated.
			analysis := v.(*Analysis)
			contract := *analysis.Contract
			if in.Name != "" {
				contract.Name = in.Name
			}
			results[i] = Result{Name: in.Name, Contract: &contract, Analysis: analysis}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return &BatchResult{Results: results, err: err}, err
	}

	b := &BatchResult{Results: results}
	if failures := b.Failures(); len(failures) == len(results) {
		b.err = errors.AllFailed(failures)
	}
	return b, b.err
}

func hashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
