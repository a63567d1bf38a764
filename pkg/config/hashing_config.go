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

// Package config holds the settings of a hashing run and loads them from
// TOML files.
package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/rhash/RHash/pkg/algorithms"
	"github.com/rhash/RHash/pkg/batch"
	"github.com/rhash/RHash/pkg/encoding"
	"github.com/rhash/RHash/pkg/hashing/provider"
	"github.com/rhash/RHash/pkg/logging"
	"github.com/rhash/RHash/pkg/metrics"
	"github.com/rhash/RHash/pkg/session"
)

// DefaultAlgorithms is the selection used when none is configured.
var DefaultAlgorithms = algorithms.NewSet(algorithms.CRC32)

// HashingConfig holds configuration for hashing files.
//
// It determines which algorithms run, how inputs are read and expanded, and
// how digests are rendered.
type HashingConfig struct {
	algorithms algorithms.Set
	// parse failure from SetAlgorithmNames, reported by Validate
	algorithmsErr error
	// set once a selection replaces DefaultAlgorithms
	algorithmsSet bool

	// Output rendering
	format    encoding.Format
	uppercase bool
	magnet    bool

	// Chunk size for file reading
	chunkSize int

	// Parallel files; 0 means GOMAXPROCS
	jobs     int
	failFast bool

	// Operand expansion
	recursive      bool
	followSymlinks bool
	exclude        []string
}

// NewHashingConfig creates a configuration with defaults: CRC32, each
// algorithm's preferred rendering, 8 KiB chunks, one job per CPU.
//
// Returns a HashingConfig ready for customization via method chaining.
func NewHashingConfig() *HashingConfig {
	return &HashingConfig{
		algorithms: DefaultAlgorithms,
		format:     encoding.Default,
		chunkSize:  session.DefaultChunkSize,
		exclude:    []string{},
	}
}

// SetAlgorithms replaces the algorithm selection.
func (c *HashingConfig) SetAlgorithms(set algorithms.Set) *HashingConfig {
	c.algorithms, c.algorithmsErr, c.algorithmsSet = set, nil, true
	return c
}

// SetAlgorithmNames parses names such as "md5,sha1" or "all". Unknown names
// are reported by Validate.
func (c *HashingConfig) SetAlgorithmNames(names ...string) *HashingConfig {
	set, err := algorithms.ParseNames(names)
	c.algorithms, c.algorithmsErr, c.algorithmsSet = set, err, true
	return c
}

// SetFormat sets the digest rendering. Modifier bits are kept.
func (c *HashingConfig) SetFormat(f encoding.Format) *HashingConfig {
	c.format = f
	return c
}

// SetUppercase toggles upper-case digests.
func (c *HashingConfig) SetUppercase(upper bool) *HashingConfig {
	c.uppercase = upper
	return c
}

// SetMagnet toggles magnet link output.
func (c *HashingConfig) SetMagnet(enabled bool) *HashingConfig {
	c.magnet = enabled
	return c
}

// SetChunkSize sets the read buffer size. Zero selects the default.
func (c *HashingConfig) SetChunkSize(size int) *HashingConfig {
	c.chunkSize = size
	return c
}

// SetJobs sets how many files are hashed at once. Zero means one per CPU.
func (c *HashingConfig) SetJobs(jobs int) *HashingConfig {
	c.jobs = jobs
	return c
}

// SetFailFast stops a run at the first failing file.
func (c *HashingConfig) SetFailFast(failFast bool) *HashingConfig {
	c.failFast = failFast
	return c
}

// SetRecursive enables descending into directory operands.
func (c *HashingConfig) SetRecursive(recursive bool) *HashingConfig {
	c.recursive = recursive
	return c
}

// SetFollowSymlinks enables hashing symlink targets.
func (c *HashingConfig) SetFollowSymlinks(follow bool) *HashingConfig {
	c.followSymlinks = follow
	return c
}

// AddExcludedPaths appends paths to skip during expansion.
func (c *HashingConfig) AddExcludedPaths(paths ...string) *HashingConfig {
	c.exclude = append(c.exclude, paths...)
	return c
}

func (c *HashingConfig) Algorithms() algorithms.Set { return c.algorithms }

// AlgorithmsConfigured reports whether the selection was set explicitly,
// either by a setter or by an algorithms key in a config file.
func (c *HashingConfig) AlgorithmsConfigured() bool { return c.algorithmsSet }

func (c *HashingConfig) Magnet() bool { return c.magnet }
func (c *HashingConfig) ChunkSize() int { return c.chunkSize }
func (c *HashingConfig) Jobs() int { return c.jobs }
func (c *HashingConfig) FailFast() bool { return c.failFast }

// Format returns the configured rendering with the uppercase modifier
// applied.
func (c *HashingConfig) Format() encoding.Format {
	if c.uppercase {
		return c.format | encoding.Uppercase
	}
	return c.format
}

// Validate checks the configuration for consistency.
func (c *HashingConfig) Validate() error {
	var errs []error
	if c.algorithmsErr != nil {
		errs = append(errs, c.algorithmsErr)
	} else if c.algorithms.IsEmpty() {
		errs = append(errs, errors.New("no hash algorithm selected"))
	} else if err := c.algorithms.Validate(); err != nil {
		errs = append(errs, err)
	}
	if base := c.format.Base(); base < encoding.Default || base > encoding.Base64 {
		errs = append(errs, fmt.Errorf("invalid output format %d", c.format))
	}
	if c.chunkSize < 0 {
		errs = append(errs, fmt.Errorf("chunk size must be non-negative, got %d", c.chunkSize))
	}
	if c.jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs must be non-negative, got %d", c.jobs))
	}
	return errors.Join(errs...)
}

// ExpandOptions returns the operand expansion settings.
func (c *HashingConfig) ExpandOptions() batch.ExpandOptions {
	return batch.ExpandOptions{
		Recursive:      c.recursive,
		FollowSymlinks: c.followSymlinks,
		Exclude:        append([]string(nil), c.exclude...),
	}
}

// BatchOptions returns the settings for batch.Run.
func (c *HashingConfig) BatchOptions() batch.Options {
	return batch.Options{
		Algorithms: c.algorithms,
		ChunkSize:  c.chunkSize,
		Jobs:       c.jobs,
		FailFast:   c.failFast,
		Magnet:     c.magnet,
		Uppercase:  c.uppercase,
	}
}

// Hash expands operands and hashes every resulting file.
//
// Parameters:
//   - p: algorithm provider; nil selects provider.Default()
//   - logger, recorder: optional observers
//
// Returns one batch.Result per file, in expansion order.
func (c *HashingConfig) Hash(
	ctx context.Context,
	operands []string,
	p provider.Provider,
	logger logging.Logger,
	recorder metrics.Recorder,
) ([]batch.Result, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid hashing configuration: %w", err)
	}
	files, err := batch.Expand(operands, c.ExpandOptions())
	if err != nil {
		return nil, err
	}
	opts := c.BatchOptions()
	opts.Provider = p
	opts.Logger = logger
	opts.Recorder = recorder
	return batch.Run(ctx, files, opts)
}
