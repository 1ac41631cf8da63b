// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	verifyDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lambdamorph_verify_duration_seconds",
		Help:    "Wall-clock time spent verifying one expression against the registry.",
		Buckets: prometheus.DefBuckets,
	})

	verifyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lambdamorph_verify_total",
		Help: "Count of verification attempts, partitioned by match outcome.",
	}, []string{"matched"})

	reductionSteps = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lambdamorph_reduction_steps",
		Help:    "Number of β-reduction steps taken while normalizing an expression.",
		Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1000},
	})
)
