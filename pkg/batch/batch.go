// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package batch hashes many files in parallel, one session per file.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"github.com/rhash/RHash/pkg/algorithms"
	"github.com/rhash/RHash/pkg/hashing/digests"
	"github.com/rhash/RHash/pkg/hashing/provider"
	"github.com/rhash/RHash/pkg/logging"
	"github.com/rhash/RHash/pkg/magnet"
	"github.com/rhash/RHash/pkg/metrics"
	"github.com/rhash/RHash/pkg/session"
)

// Options configures Run.
type Options struct {
	// Algorithms is the selection computed for every file.
	Algorithms algorithms.Set
	// ChunkSize is the read buffer size; 0 uses session.DefaultChunkSize.
	ChunkSize int
	// Jobs bounds the number of files hashed at once; 0 uses GOMAXPROCS.
	Jobs int
	// FailFast stops the run at the first failing file.
	FailFast bool
	// Magnet also builds a magnet link per file.
	Magnet bool
	// Uppercase renders magnet digests in upper case.
	Uppercase bool

	Provider provider.Provider
	Logger   logging.Logger
	Recorder metrics.Recorder
}

// Result is the outcome for one input path.
type Result struct {
	Path    string
	Size    uint64
	Digests []digests.Digest
	// Magnet is set when Options.Magnet is.
	Magnet string
	// Err is the failure for this path; other paths are unaffected unless
	// FailFast is set.
	Err error
}

// ErrNoAlgorithms is returned when Options.Algorithms is empty.
var ErrNoAlgorithms = errors.New("no algorithms selected")

// Run hashes paths and returns one Result per path, in input order.
//
// Per-file failures are recorded in Result.Err and the run continues. With
// FailFast the first failure cancels the remaining work and is returned.
// Cancelling ctx stops the run and returns ctx's error.
func Run(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	if opts.Algorithms.IsEmpty() {
		return nil, ErrNoAlgorithms
	}
	if opts.Provider == nil {
		opts.Provider = provider.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.Nop()
	}
	logger := logging.EnsureLogger(opts.Logger)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// each goroutine writes only its own index
	results := make([]Result, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				results[i] = Result{Path: path, Err: gctx.Err()}
				return gctx.Err()
			default:
			}

			results[i] = hashOne(gctx, path, opts, logger)
			if results[i].Err != nil && opts.FailFast {
				return fmt.Errorf("%s: %w", path, results[i].Err)
			}
			return nil
		})
	}

	err := g.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return results, ctxErr
	}
	if err != nil {
		return results, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	logger.WithFields(map[string]interface{}{
		"files":  len(paths),
		"failed": failed,
	}).Debugln("batch finished")
	return results, nil
}

func hashOne(ctx context.Context, path string, opts Options, logger logging.Logger) Result {
	start := time.Now()
	res := Result{Path: path}
	log := logger.WithField("path", path)

	defer func() {
		opts.Recorder.ObserveFile(opts.Algorithms.String(), res.Size, time.Since(start), res.Err)
		if res.Err != nil {
			log.WithField("error", res.Err).Warnln("hashing failed")
		}
	}()

	s, err := session.New(opts.Algorithms, session.WithProvider(opts.Provider), session.WithLogger(log))
	if err != nil {
		res.Err = err
		return res
	}
	defer s.Close()

	n, err := s.UpdateFile(ctx, path, opts.ChunkSize)
	if size, convErr := safecast.Conv[uint64](n); convErr == nil {
		res.Size = size
	}
	if err != nil {
		res.Err = err
		return res
	}
	if err := s.Finish(); err != nil {
		res.Err = err
		return res
	}
	if res.Digests, err = s.Digests(); err != nil {
		res.Err = err
		return res
	}
	if opts.Magnet {
		res.Magnet, res.Err = s.MagnetWithOptions(filepath.Base(path), magnet.Options{Uppercase: opts.Uppercase})
	}
	return res
}
