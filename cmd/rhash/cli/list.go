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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rhash/RHash/pkg/algorithms"
	"github.com/rhash/RHash/pkg/hashing/provider"
)

func List() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List hash algorithms.",
		Long: `List every algorithm of the catalog with its digest size and magnet
token. Algorithms marked with * can be computed by this build.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			supported := provider.Supported()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, " \tNAME\tBYTES\tMAGNET")
			for _, info := range algorithms.All() {
				mark := " "
				if supported.Contains(info.ID) {
					mark = "*"
				}
				magnet := info.MagnetName
				if magnet == "" {
					magnet = "-"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", mark, info.Name, info.DigestSize, magnet)
			}
			return w.Flush()
		},
	}
}
