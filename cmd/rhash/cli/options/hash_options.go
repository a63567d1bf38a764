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

// HashOptions holds the flags of the hash command.
type HashOptions struct {
	InputFlags
	RunFlags

	Algorithms []string // --algorithms
	Format     string   // --format
	Uppercase  bool     // --uppercase
	Magnet     bool     // --magnet
}

func (o *HashOptions) AddFlags(cmd *cobra.Command) {
	AddAllFlags(cmd, &o.InputFlags, &o.RunFlags)

	cmd.Flags().StringSliceVarP(&o.Algorithms, "algorithms", "a", nil,
		"Comma separated algorithms, e.g. md5,sha1 or all (default crc32).")
	cmd.Flags().StringVar(&o.Format, "format", "", "Digest rendering: default, hex, base32, base64.")
	cmd.Flags().BoolVar(&o.Uppercase, "uppercase", false, "Print digests in upper case.")
	cmd.Flags().BoolVar(&o.Magnet, "magnet", false, "Print a magnet link instead of digest lines.")
}

// MagnetOptions holds the flags of the magnet command.
type MagnetOptions struct {
	InputFlags
	RunFlags

	Algorithms []string // --algorithms
	Uppercase  bool     // --uppercase
}

func (o *MagnetOptions) AddFlags(cmd *cobra.Command) {
	AddAllFlags(cmd, &o.InputFlags, &o.RunFlags)

	cmd.Flags().StringSliceVarP(&o.Algorithms, "algorithms", "a", nil,
		"Algorithms in the link (default tth,ed2k,aich where supported).")
	cmd.Flags().BoolVar(&o.Uppercase, "uppercase", false, "Print link digests in upper case.")
}
