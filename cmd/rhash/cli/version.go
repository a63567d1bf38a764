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

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Build information, overridden at link time via -ldflags.
var (
	GitVersion = "v0.1.0-dev"
	GitCommit  = ""
	BuildDate  = ""
)

var versionColor = color.New(color.FgGreen, color.Bold)

func Version() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "rhash %s\n", versionColor.Sprint(GitVersion))
			if GitCommit != "" {
				_, _ = fmt.Fprintf(w, "commit: %s\n", GitCommit)
			}
			if BuildDate != "" {
				_, _ = fmt.Fprintf(w, "built:  %s\n", BuildDate)
			}
			return nil
		},
	}
}
