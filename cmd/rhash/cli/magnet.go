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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rhash/RHash/cmd/rhash/cli/options"
	"github.com/rhash/RHash/pkg/algorithms"
	"github.com/rhash/RHash/pkg/batch"
	"github.com/rhash/RHash/pkg/hashing/provider"
)

// DefaultMagnetAlgorithms are the exact topics of a plain magnet link.
var DefaultMagnetAlgorithms = algorithms.NewSet(algorithms.TTH, algorithms.ED2K, algorithms.AICH)

// defaultMagnetSelection keeps the default topics the provider can compute,
// falling back to everything it supports.
func defaultMagnetSelection(supported algorithms.Set) algorithms.Set {
	if s := DefaultMagnetAlgorithms.Intersect(supported); !s.IsEmpty() {
		return s
	}
	return supported
}

func Magnet(ro *options.RootOptions) *cobra.Command {
	o := &options.MagnetOptions{}

	cmd := &cobra.Command{
		Use:   "magnet [OPTIONS] FILE...",
		Short: "Print magnet links for files.",
		Long: `Print one magnet link per file.

The link carries the file size, the file name and one exact topic per
algorithm. Without --algorithms the TTH, ED2K and AICH topics are used where
the built-in provider supports them.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, ro, o.InputFlags, o.RunFlags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("algorithms") {
				cfg.SetAlgorithmNames(o.Algorithms...)
			} else if !cfg.AlgorithmsConfigured() {
				cfg.SetAlgorithms(defaultMagnetSelection(provider.Supported()))
			}
			if cmd.Flags().Changed("uppercase") {
				cfg.SetUppercase(o.Uppercase)
			}
			cfg.SetMagnet(true)

			return runHash(cmd, ro, cfg, args, o.MetricsFile, func(w io.Writer, r batch.Result) {
				_, _ = fmt.Fprintln(w, r.Magnet)
			})
		},
	}

	o.AddFlags(cmd)
	return cmd
}
