// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package validator

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the outcomes of
// validation and the plan fragments built.
// A nil *Metrics records nothing.
type Metrics struct {
	clauses   *prometheus.CounterVec
	fragments *prometheus.CounterVec
}

// NewMetrics creates the validator metrics
// and registers them with reg, if reg is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		clauses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "traverse",
				Name:      "clauses_validated_total",
				Help:      "Number of traversal clauses validated, by clause and result",
			},
			[]string{"clause", "result"},
		),
		fragments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "traverse",
				Name:      "plan_fragments_total",
				Help:      "Number of plan fragments built, by kind",
			},
			[]string{"kind"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.clauses, m.fragments)
	}
	return m
}

func (m *Metrics) clause(name string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.clauses.WithLabelValues(name, result).Inc()
}

func (m *Metrics) fragment(kind string) {
	if m == nil {
		return
	}
	m.fragments.WithLabelValues(kind).Inc()
}
