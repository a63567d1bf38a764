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

package options

import (
	"github.com/spf13/cobra"
)

// FlagAdder is implemented by any flag group that can register itself to a cobra command.
type FlagAdder interface {
	AddFlags(cmd *cobra.Command)
}

// InputFlags control how file operands are expanded.
// These flags are shared by the hash and magnet commands.
type InputFlags struct {
	// Recursive descends into directory operands.
	Recursive bool
	// FollowSymlinks hashes symlink targets instead of skipping links.
	FollowSymlinks bool
	// Exclude lists paths to skip during expansion.
	Exclude []string
}

// AddFlags adds input flags to the cobra command.
func (o *InputFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&o.Recursive, "recursive", "r", false, "Process directories recursively.")
	cmd.Flags().BoolVar(&o.FollowSymlinks, "follow", false, "Follow symbolic links.")
	cmd.Flags().StringSliceVar(&o.Exclude, "exclude", nil, "Paths to skip when expanding directories.")
}

// RunFlags control how files are read and scheduled.
type RunFlags struct {
	// Jobs bounds how many files are hashed at once.
	Jobs int
	// ChunkSize is the read buffer size in bytes.
	ChunkSize int
	// FailFast stops at the first failing file.
	FailFast bool
	// MetricsFile receives Prometheus metrics in text format.
	MetricsFile string
}

// AddFlags adds run flags to the cobra command.
func (o *RunFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&o.Jobs, "jobs", "j", 0, "Number of files hashed in parallel (0 = one per CPU).")
	cmd.Flags().IntVar(&o.ChunkSize, "chunk-size", 0, "Read buffer size in bytes (0 = 8192).")
	cmd.Flags().BoolVar(&o.FailFast, "fail-fast", false, "Stop at the first file that cannot be hashed.")
	cmd.Flags().StringVar(&o.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run.")
}

// AddAllFlags is a helper function to register multiple flag groups at once.
func AddAllFlags(cmd *cobra.Command, flagGroups ...FlagAdder) {
	for _, fg := range flagGroups {
		fg.AddFlags(cmd)
	}
}
