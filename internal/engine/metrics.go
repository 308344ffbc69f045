package engine

import (
	"rogee/internal/domain"
	"rogee/internal/systems"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics инкапсулирует Prometheus-метрики одного забега.
// They live on a private registry so several games (and tests) never clash.
type Metrics struct {
	Registry *prometheus.Registry

	ticks    *prometheus.CounterVec
	entities prometheus.Gauge
	deaths   *prometheus.CounterVec
	damage   prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rogee",
			Name:      "ticks_total",
			Help:      "Тики планировщика по RunState на начало тика.",
		}, []string{"state"}),
		entities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rogee",
			Name:      "entities",
			Help:      "Живые сущности после тика.",
		}),
		deaths: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rogee",
			Name:      "deaths_total",
			Help:      "Сущности, удалённые death-culling.",
		}, []string{"kind"}),
		damage: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rogee",
			Name:      "damage_applied_total",
			Help:      "Сумма урона, применённого DamageSystem.",
		}),
	}
	m.Registry.MustRegister(m.ticks, m.entities, m.deaths, m.damage)
	return m
}

// Observe records one finished tick.
func (m *Metrics) Observe(state domain.RunState, r *systems.TickReport, entities int) {
	m.ticks.WithLabelValues(state.String()).Inc()
	m.entities.Set(float64(entities))
	m.damage.Add(float64(r.DamageApplied))
	for _, d := range r.Deaths {
		kind := "monster"
		if d.IsPlayer {
			kind = "player"
		}
		m.deaths.WithLabelValues(kind).Inc()
	}
}
