package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type IncrementalCounter interface {
	Increment(val ...string)
}

type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labels)
	reg.MustRegister(vec)
	return &Counter{Name: name, Help: help, vec: vec}
}

// Set holds the counters the dashboard reports.
type Set struct {
	PageRenders IncrementalCounter
	Logins      IncrementalCounter
	SignOuts    IncrementalCounter
	NameSyncs   IncrementalCounter

	gatherer prometheus.Gatherer
}

func NewSet(reg *prometheus.Registry) *Set {
	return &Set{
		PageRenders: NewCounterWithRegistry(reg, "ems_page_renders_total", "Dashboard pages rendered, by page.", "page"),
		Logins:      NewCounterWithRegistry(reg, "ems_logins_total", "Login attempts, by result.", "result"),
		SignOuts:    NewCounterWithRegistry(reg, "ems_signouts_total", "Sessions terminated from the shell."),
		NameSyncs:   NewCounterWithRegistry(reg, "ems_shell_name_syncs_total", "Shell display-name cache replacements."),
		gatherer:    reg,
	}
}

var Default = NewSet(prometheus.NewRegistry())

func (s *Set) Handler() http.Handler {
	return promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})
}
