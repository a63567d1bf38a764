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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rhash/RHash/cmd/rhash/cli/options"
	"github.com/rhash/RHash/pkg/encoding"
	"github.com/rhash/RHash/pkg/magnet"
	"github.com/rhash/RHash/pkg/session"
)

func Check(ro *options.RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [OPTIONS] MAGNET [FILE]",
		Short: "Verify a file against a magnet link.",
		Long: `Verify a file against the size and exact topics of a magnet link.

FILE defaults to the link's dn parameter. Topics naming unknown URNs or
algorithms this build cannot compute are skipped. The file passes when
nothing mismatches and at least the size or one digest was verified; the
exit code is 1 otherwise.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			link, err := magnet.Parse(args[0])
			if err != nil {
				return err
			}
			path := link.Filename
			if len(args) == 2 {
				path = args[1]
			}
			if path == "" {
				return errors.New("magnet link has no dn parameter; pass FILE")
			}

			logger := ro.NewLogger()
			for _, t := range link.Unknown() {
				logger.Warn("skipping unknown topic urn:%s", t.Token)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if ro.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, ro.Timeout)
				defer cancel()
			}

			report, err := session.CheckMagnet(ctx, path, link, session.WithLogger(logger))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if report.OK() {
				_, _ = fmt.Fprintf(w, "%s  OK\n", path)
				return nil
			}
			_, _ = fmt.Fprintf(w, "%s  ERROR\n", path)
			if report.SizeChecked && !report.SizeOK {
				_, _ = fmt.Fprintf(w, "  size: expected %d, got %d\n", link.Size, report.Size)
			}
			for _, tc := range report.Topics {
				switch tc.Status {
				case session.CheckMismatch:
					f := encoding.MagnetFormat(tc.Topic.ID)
					_, _ = fmt.Fprintf(w, "  %s: expected %s, got %s\n",
						tc.Topic.ID, tc.Expected.Format(f), tc.Actual.Format(f))
				case session.CheckInvalid:
					_, _ = fmt.Fprintf(w, "  %s: %v\n", tc.Topic.ID, tc.Err)
				}
			}
			if report.Verified() == 0 && !report.SizeChecked {
				_, _ = fmt.Fprintln(w, "  nothing to verify")
			}
			return &exitError{code: 1, err: fmt.Errorf("%s does not match the magnet link", path)}
		},
	}
	return cmd
}
