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

// Package metrics exposes hashing counters as Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const prometheusMetricNamespace = "rhash"

var hashPrometheusMetricLabels = []string{"algorithms"}

// Recorder receives one observation per hashed input.
type Recorder interface {
	// ObserveFile records a hashed input. err is nil on success; size is
	// the number of bytes fed before completion or failure.
	ObserveFile(algorithms string, size uint64, elapsed time.Duration, err error)
}

// Nop returns a Recorder that drops observations.
func Nop() Recorder {
	return nopRecorder{}
}

type nopRecorder struct{}

func (nopRecorder) ObserveFile(string, uint64, time.Duration, error) {}

// Collector is a Recorder backed by Prometheus counters and a histogram.
type Collector struct {
	registry *prometheus.Registry

	filesTotal    *prometheus.CounterVec
	filesFailed   *prometheus.CounterVec
	bytesTotal    *prometheus.CounterVec
	hashDurations *prometheus.HistogramVec
}

var _ Recorder = (*Collector)(nil)

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		filesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: prometheusMetricNamespace,
				Name:      "files_hashed_total",
				Help:      "Number of inputs hashed successfully.",
			},
			hashPrometheusMetricLabels,
		),
		filesFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: prometheusMetricNamespace,
				Name:      "files_failed_total",
				Help:      "Number of inputs that could not be hashed.",
			},
			hashPrometheusMetricLabels,
		),
		bytesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: prometheusMetricNamespace,
				Name:      "bytes_hashed_total",
				Help:      "Number of bytes fed to hashing sessions.",
			},
			hashPrometheusMetricLabels,
		),
		hashDurations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: prometheusMetricNamespace,
				Name:      "hash_duration_seconds",
				Help:      "Duration to hash one input.",
				Buckets:   []float64{0.001, 0.01, 0.1, 1.0, 10.0, 60.0},
			},
			hashPrometheusMetricLabels,
		),
	}
	c.registry.MustRegister(c.filesTotal, c.filesFailed, c.bytesTotal, c.hashDurations)
	return c
}

// ObserveFile implements Recorder.
func (c *Collector) ObserveFile(algorithms string, size uint64, elapsed time.Duration, err error) {
	c.bytesTotal.WithLabelValues(algorithms).Add(float64(size))
	c.hashDurations.WithLabelValues(algorithms).Observe(elapsed.Seconds())
	if err != nil {
		c.filesFailed.WithLabelValues(algorithms).Inc()
		return
	}
	c.filesTotal.WithLabelValues(algorithms).Inc()
}

// Gatherer returns the registry holding the collectors.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteTextfile writes the current metrics in the text exposition format,
// suitable for the node exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
