// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package format

import (
	"context"
	"runtime"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/bufbuild/docfmt/syntax"
)

// Job is a single file for a [Batch] to format.
type Job struct {
	Path, Source string
}

// Result is the outcome of formatting a [Job].
type Result struct {
	Path   string
	Output *Output
	Err    error
}

// Batch formats many files in parallel.
//
// Files share nothing mutable, so a failure in one file never affects
// another.
type Batch struct {
	// Parses a file into a tree.
	Parse func(path, source string) (*syntax.Tree, error)
	Rules Rules

	Options Options

	// Failures are logged here. May be nil.
	Logger log.Logger

	// Maximum number of files to format at once. Defaults to GOMAXPROCS.
	Parallelism int
}

// Run formats every job, returning one result per job, in order.
//
// The returned error combines the errors of every failed file. If ctx is
// cancelled, files that have not been started yet fail with ctx's error.
func (b *Batch) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	if err := b.Options.Validate(); err != nil {
		return nil, err
	}

	logger := b.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	limit := b.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, job := range jobs {
		results[i].Path = job.Path
		if err := gctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		g.Go(func() error {
			out, err := b.format(job)
			if err != nil {
				level.Warn(logger).Log("msg", "failed to format file", "path", job.Path, "err", err)
				results[i].Err = err
				return nil
			}
			level.Debug(logger).Log("msg", "formatted file", "path", job.Path, "bytes", len(out.Text))
			results[i].Output = out
			return nil
		})
	}
	_ = g.Wait()

	var err error
	for _, result := range results {
		err = multierr.Append(err, result.Err)
	}
	return results, err
}

func (b *Batch) format(job Job) (*Output, error) {
	tree, err := b.Parse(job.Path, job.Source)
	if err != nil {
		return nil, err
	}
	return Format(tree, b.Rules, b.Options)
}
