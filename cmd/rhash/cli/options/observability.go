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
	"github.com/rhash/RHash/pkg/logging"
	"github.com/rhash/RHash/pkg/metrics"
)

// Observability holds the logger and optional metrics collector of one
// command run.
type Observability struct {
	Logger    logging.Logger
	Collector *metrics.Collector

	metricsFile string
}

// NewObservability returns an Observability with a logger built from root
// options. A collector is created only when metricsFile is set.
func (o *RootOptions) NewObservability(metricsFile string) Observability {
	obs := Observability{
		Logger:      o.NewLogger(),
		metricsFile: metricsFile,
	}
	if metricsFile != "" {
		obs.Collector = metrics.NewCollector()
	}
	return obs
}

// Recorder returns the collector, or a no-op recorder without one.
func (o Observability) Recorder() metrics.Recorder {
	if o.Collector == nil {
		return metrics.Nop()
	}
	return o.Collector
}

// Flush writes collected metrics to the metrics file, if any.
func (o Observability) Flush() error {
	if o.Collector == nil {
		return nil
	}
	return o.Collector.WriteTextfile(o.metricsFile)
}
