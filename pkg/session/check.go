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

package session

import (
	"context"
	"fmt"
	"os"

	"fortio.org/safecast"

	"github.com/rhash/RHash/pkg/algorithms"
	"github.com/rhash/RHash/pkg/hashing/digests"
	"github.com/rhash/RHash/pkg/hashing/provider"
	"github.com/rhash/RHash/pkg/magnet"
)

// CheckStatus is the outcome for one exact topic of a magnet link.
type CheckStatus int

const (
	// CheckOK means the computed digest equals the topic value.
	CheckOK CheckStatus = iota
	// CheckMismatch means the computed digest differs from the topic value.
	CheckMismatch
	// CheckInvalid means the topic value could not be decoded.
	CheckInvalid
	// CheckSkipped means the topic names an algorithm outside the catalog
	// or one the provider cannot compute.
	CheckSkipped
)

func (s CheckStatus) String() string {
	switch s {
	case CheckOK:
		return "OK"
	case CheckMismatch:
		return "MISMATCH"
	case CheckInvalid:
		return "INVALID"
	case CheckSkipped:
		return "SKIPPED"
	default:
		return fmt.Sprintf("CheckStatus(%d)", int(s))
	}
}

// TopicCheck is the result for one topic, in link order.
type TopicCheck struct {
	Topic  magnet.Topic
	Status CheckStatus
	// Expected is the decoded topic value; Actual the computed digest.
	// Both are zero unless Status is CheckOK or CheckMismatch.
	Expected digests.Digest
	Actual   digests.Digest
	// Err explains CheckInvalid and CheckSkipped.
	Err error
}

// CheckReport collects the results of CheckMagnet for one file.
type CheckReport struct {
	Path string
	// Size is the number of bytes read from the file.
	Size uint64
	// SizeChecked is set when the link carries xl; SizeOK when it matched.
	SizeChecked bool
	SizeOK      bool
	Topics      []TopicCheck
}

// Verified returns how many topics matched.
func (r CheckReport) Verified() int {
	n := 0
	for _, t := range r.Topics {
		if t.Status == CheckOK {
			n++
		}
	}
	return n
}

// OK reports whether nothing failed and at least one property, a digest or
// the size, was actually verified.
func (r CheckReport) OK() bool {
	if r.SizeChecked && !r.SizeOK {
		return false
	}
	for _, t := range r.Topics {
		if t.Status == CheckMismatch || t.Status == CheckInvalid {
			return false
		}
	}
	return r.SizeChecked || r.Verified() > 0
}

// CheckMagnet hashes the file at path with every algorithm of link that the
// provider can compute and compares the results with the link.
//
// Topics outside the catalog or unsupported by the provider are reported
// as CheckSkipped. The returned error covers I/O and session failures only;
// mismatches are reported through the CheckReport.
func CheckMagnet(ctx context.Context, path string, link *magnet.Link, opts ...Option) (CheckReport, error) {
	const op = "check"
	report := CheckReport{Path: path}
	if link == nil {
		return report, newError(KindInvalidSelection, op, "magnet link must be non-nil", nil)
	}
	p := buildOptions(opts).provider

	report.Topics = make([]TopicCheck, len(link.Topics))
	var selection algorithms.Set
	unsupported := make(map[algorithms.ID]error)
	for i, t := range link.Topics {
		tc := TopicCheck{Topic: t}
		switch expected, err := t.Digest(); {
		case !t.Known():
			tc.Status, tc.Err = CheckSkipped, err
		case err != nil:
			tc.Status, tc.Err = CheckInvalid, err
		default:
			cerr, seen := unsupported[t.ID]
			if !seen {
				cerr = canCompute(p, t.ID)
				unsupported[t.ID] = cerr
			}
			if cerr != nil {
				tc.Status, tc.Err = CheckSkipped, cerr
			} else {
				tc.Expected = expected
				selection = selection.Add(t.ID)
			}
		}
		report.Topics[i] = tc
	}

	if selection.IsEmpty() {
		fi, err := os.Stat(path)
		if err != nil {
			return report, newError(KindIO, op, fmt.Sprintf("stat file %q", path), err)
		}
		if size, convErr := safecast.Conv[uint64](fi.Size()); convErr == nil {
			report.Size = size
		}
	} else {
		s, err := New(selection, opts...)
		if err != nil {
			return report, err
		}
		defer s.Close()

		if _, err := s.UpdateFile(ctx, path, DefaultChunkSize); err != nil {
			return report, err
		}
		if err := s.Finish(); err != nil {
			return report, err
		}
		report.Size = s.BytesHashed()

		for i := range report.Topics {
			tc := &report.Topics[i]
			if tc.Expected.IsZero() {
				continue
			}
			if tc.Actual, err = s.Digest(tc.Topic.ID); err != nil {
				return report, err
			}
			if tc.Actual.Equal(tc.Expected) {
				tc.Status = CheckOK
			} else {
				tc.Status = CheckMismatch
			}
		}
	}

	if link.HasSize {
		report.SizeChecked = true
		report.SizeOK = link.Size == report.Size
	}
	return report, nil
}

// canCompute asks p for a context computing id alone.
func canCompute(p provider.Provider, id algorithms.ID) error {
	c, err := p.Create(algorithms.NewSet(id))
	if err != nil {
		return err
	}
	c.Release()
	return nil
}
