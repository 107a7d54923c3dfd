package handlers

import (
	"time"

	"github.com/armon/go-metrics"
)

const txBuilderMetrics = "txbuilder"

func incrCounter(name string) {
	metrics.IncrCounter([]string{txBuilderMetrics, name}, 1)
}

func measureSince(name string, start time.Time) {
	metrics.MeasureSince([]string{txBuilderMetrics, name}, start)
}
