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

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rhash/RHash/cmd/rhash/cli/options"
	"github.com/rhash/RHash/pkg/batch"
	"github.com/rhash/RHash/pkg/config"
	"github.com/rhash/RHash/pkg/hashing/provider"
)

var errorColor = color.New(color.FgRed, color.Bold)

// exitError carries the process exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }

// PrintError writes err to w in the CLI's error style.
func PrintError(w io.Writer, err error) {
	_, _ = errorColor.Fprint(w, "rhash: ")
	_, _ = fmt.Fprintln(w, err)
}

// loadConfig starts from the --config file, or the defaults without one,
// and applies the input and run flags the user set explicitly.
func loadConfig(cmd *cobra.Command, ro *options.RootOptions, in options.InputFlags, run options.RunFlags) (*config.HashingConfig, error) {
	cfg := config.NewHashingConfig()
	if ro.ConfigPath != "" {
		var err error
		if cfg, err = config.LoadFile(ro.ConfigPath); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("recursive") {
		cfg.SetRecursive(in.Recursive)
	}
	if flags.Changed("follow") {
		cfg.SetFollowSymlinks(in.FollowSymlinks)
	}
	if flags.Changed("exclude") {
		cfg.AddExcludedPaths(in.Exclude...)
	}
	if flags.Changed("jobs") {
		cfg.SetJobs(run.Jobs)
	}
	if flags.Changed("chunk-size") {
		cfg.SetChunkSize(run.ChunkSize)
	}
	if flags.Changed("fail-fast") {
		cfg.SetFailFast(run.FailFast)
	}
	return cfg, nil
}

// runHash hashes the operands with cfg and hands every result to emit.
// Files that fail are reported on stderr and turn into a non-zero exit.
func runHash(
	cmd *cobra.Command,
	ro *options.RootOptions,
	cfg *config.HashingConfig,
	operands []string,
	metricsFile string,
	emit func(w io.Writer, r batch.Result),
) error {
	obs := ro.NewObservability(metricsFile)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if ro.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ro.Timeout)
		defer cancel()
	}

	results, err := cfg.Hash(ctx, operands, provider.Default(), obs.Logger, obs.Recorder())
	if flushErr := obs.Flush(); flushErr != nil {
		obs.Logger.Error("failed to write metrics: %v", flushErr)
	}
	if err != nil {
		return err
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			PrintError(stderr, r.Err)
			continue
		}
		emit(stdout, r)
	}
	if failed > 0 {
		return &exitError{code: 1, err: fmt.Errorf("%d of %d files could not be hashed", failed, len(results))}
	}
	return nil
}
