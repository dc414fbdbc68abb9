// Package metrics expone contadores Prometheus del libro y de la resolución de permisos.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/hospital-inventory/internal/application/authz"
	"github.com/jhoicas/hospital-inventory/internal/application/inventory"
)

const namespace = "hospinv"

var (
	_ inventory.LedgerMetrics = (*Collector)(nil)
	_ authz.Metrics           = (*Collector)(nil)
)

// Collector agrupa los contadores de la aplicación.
type Collector struct {
	movements   *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	recomputes  prometheus.Counter
	resolutions *prometheus.CounterVec
}

// New registra los contadores en reg. Con reg nil usa el registro por defecto.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "movements_total",
			Help:      "Movimientos registrados por código de tipo.",
		}, []string{"type_code"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "movement_rejections_total",
			Help:      "Movimientos rechazados por motivo.",
		}, []string{"reason"}),
		recomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "recomputations_total",
			Help:      "Recálculos de cantidad tras eliminar un movimiento.",
		}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ability",
			Name:      "resolutions_total",
			Help:      "Resoluciones de permisos por resultado.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(c.movements, c.rejections, c.recomputes, c.resolutions)
	return c
}

// MovementRecorded cuenta un movimiento confirmado.
func (c *Collector) MovementRecorded(typeCode string) { c.movements.WithLabelValues(typeCode).Inc() }

// MovementRejected cuenta un movimiento rechazado.
func (c *Collector) MovementRejected(reason string) { c.rejections.WithLabelValues(reason).Inc() }

// Recomputed cuenta un recálculo completo.
func (c *Collector) Recomputed() { c.recomputes.Inc() }

// AbilityResolved cuenta una resolución de permisos.
func (c *Collector) AbilityResolved(outcome string) { c.resolutions.WithLabelValues(outcome).Inc() }
