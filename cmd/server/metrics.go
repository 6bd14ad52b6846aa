package main

import (
	"errors"
	"math"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Simplici0/groentetuin/internal/harvest"
)

type metrics struct {
	calculations *prometheus.CounterVec
	undefined    *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "groentetuin_calculations_total",
			Help: "Yield and profit calculations served, by operation and mode.",
		}, []string{"operation", "mode"}),
		undefined: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "groentetuin_undefined_results_total",
			Help: "Calculations that hit a missing factor level, cost or price.",
		}, []string{"operation"}),
	}
	reg.MustRegister(m.calculations, m.undefined)
	return m
}

// observe records one calculation. A NaN result or a strict-mode
// missing-definition error counts as undefined.
func (m *metrics) observe(operation string, mode harvest.Mode, value float64, err error) {
	m.calculations.WithLabelValues(operation, mode.String()).Inc()
	if math.IsNaN(value) || isMissingDefinition(err) {
		m.undefined.WithLabelValues(operation).Inc()
	}
}

func isMissingDefinition(err error) bool {
	return errors.Is(err, harvest.ErrMissingFactorDefinition) || errors.Is(err, harvest.ErrMissingPriceOrCost)
}
