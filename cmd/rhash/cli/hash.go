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
	"github.com/rhash/RHash/pkg/batch"
	"github.com/rhash/RHash/pkg/encoding"
)

func Hash(ro *options.RootOptions) *cobra.Command {
	o := &options.HashOptions{}

	long := `Compute message digests of files.

With a single algorithm every file prints as "<digest>  <path>", the layout
of md5sum and friends. With several algorithms every digest prints on its own
line as "<ALGORITHM> (<path>) = <digest>". With --magnet one magnet link is
printed per file instead.

Directories are hashed only with --recursive.`

	cmd := &cobra.Command{
		Use:   "hash [OPTIONS] FILE...",
		Short: "Compute message digests of files.",
		Long:  long,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, ro, o.InputFlags, o.RunFlags)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("algorithms") {
				cfg.SetAlgorithmNames(o.Algorithms...)
			}
			if flags.Changed("format") {
				f, err := encoding.ParseFormat(o.Format)
				if err != nil {
					return err
				}
				cfg.SetFormat(f)
			}
			if flags.Changed("uppercase") {
				cfg.SetUppercase(o.Uppercase)
			}
			if flags.Changed("magnet") {
				cfg.SetMagnet(o.Magnet)
			}

			format := cfg.Format()
			magnet := cfg.Magnet()
			return runHash(cmd, ro, cfg, args, o.MetricsFile, func(w io.Writer, r batch.Result) {
				if magnet {
					_, _ = fmt.Fprintln(w, r.Magnet)
					return
				}
				if len(r.Digests) == 1 {
					_, _ = fmt.Fprintf(w, "%s  %s\n", r.Digests[0].Format(format), r.Path)
					return
				}
				for _, d := range r.Digests {
					_, _ = fmt.Fprintf(w, "%s (%s) = %s\n", d.Algorithm(), r.Path, d.Format(format))
				}
			})
		},
	}

	o.AddFlags(cmd)
	return cmd
}
