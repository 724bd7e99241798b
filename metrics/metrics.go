// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package metrics provides optional Prometheus instrumentation for a
// tinyframe.Instance. The core package never imports this one; callers wire
// a Recorder in around their own Send/AcceptByte/Tick call sites and around
// Config.ErrorReporter.
package metrics

import (
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"code.hybscloud.com/tinyframe"
)

// Recorder holds the Prometheus collectors for one or more Instances,
// distinguished by the "peer" label supplied at NewRecorder time.
type Recorder struct {
	peer string

	framesSent       *prometheus.CounterVec
	framesReceived   *prometheus.CounterVec
	framesDropped    *prometheus.CounterVec
	checksumFailures prometheus.Counter
	idListeners      prometheus.Gauge
	typeListeners    prometheus.Gauge
	genListeners     prometheus.Gauge
}

// NewRecorder builds and registers a Recorder's collectors against reg.
// peer is attached to every metric as a constant label, so one registry can
// host recorders for several Instances.
func NewRecorder(reg prometheus.Registerer, peer string) *Recorder {
	constLabels := prometheus.Labels{"peer": peer}

	r := &Recorder{
		peer: peer,
		framesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "tinyframe",
			Name:        "frames_sent_total",
			Help:        "Frames successfully handed to the byte sink.",
			ConstLabels: constLabels,
		}, []string{"type"}),
		framesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "tinyframe",
			Name:        "frames_received_total",
			Help:        "Frames dispatched to a listener after passing checksum validation.",
			ConstLabels: constLabels,
		}, []string{"type"}),
		framesDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "tinyframe",
			Name:        "frames_dropped_total",
			Help:        "Frames dropped without being handled by a listener, by reason.",
			ConstLabels: constLabels,
		}, []string{"reason"}),
		checksumFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "tinyframe",
			Name:        "checksum_failures_total",
			Help:        "Header or data checksum mismatches.",
			ConstLabels: constLabels,
		}),
		idListeners: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "tinyframe",
			Name:        "id_listeners",
			Help:        "Live entries in the ID listener table's high-water range.",
			ConstLabels: constLabels,
		}),
		typeListeners: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "tinyframe",
			Name:        "type_listeners",
			Help:        "Live entries in the type listener table's high-water range.",
			ConstLabels: constLabels,
		}),
		genListeners: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "tinyframe",
			Name:        "generic_listeners",
			Help:        "Live entries in the generic listener table's high-water range.",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(r.framesSent, r.framesReceived, r.framesDropped,
		r.checksumFailures, r.idListeners, r.typeListeners, r.genListeners)
	return r
}

// WrapWrite returns a Hooks.Write replacement that delegates to write
// unchanged. It records no metric itself; sent frames are counted by
// ObserveSend.
func (r *Recorder) WrapWrite(write func([]byte) error) func([]byte) error {
	return func(p []byte) error {
		return write(p)
	}
}

// ObserveSend increments the sent-frame counter for typ. Call it once per
// completed Send/Query/Respond/MultipartClose.
func (r *Recorder) ObserveSend(typ uint32) {
	r.framesSent.WithLabelValues(typeLabel(typ)).Inc()
}

// WrapListener returns a tinyframe.Listener that records a received-frame
// observation before delegating to next.
func (r *Recorder) WrapListener(next tinyframe.Listener) tinyframe.Listener {
	return func(msg *tinyframe.Message) tinyframe.Result {
		r.framesReceived.WithLabelValues(typeLabel(msg.Type)).Inc()
		return next(msg)
	}
}

// ErrorReporter wraps next (which may be nil) with Prometheus
// instrumentation: it classifies each reported diagnostic by substring
// match against the tinyframe core's own report() call sites and forwards
// the original message unchanged.
func (r *Recorder) ErrorReporter(next tinyframe.ErrorReporter) tinyframe.ErrorReporter {
	return func(format string, args ...any) {
		switch {
		case strings.Contains(format, "checksum mismatch"):
			r.checksumFailures.Inc()
		case strings.Contains(format, "discarded oversize"):
			// end of a frame already counted when its oversize LEN was seen
		case strings.Contains(format, "oversize"):
			r.framesDropped.WithLabelValues("oversize").Inc()
		case strings.Contains(format, "inactivity timeout"):
			r.framesDropped.WithLabelValues("timeout_resync").Inc()
		case strings.Contains(format, "unhandled message"):
			r.framesDropped.WithLabelValues("unhandled").Inc()
		}
		if next != nil {
			next(format, args...)
		}
	}
}

// SetListenerOccupancy records the three listener tables' current
// high-water counts. Callers with access to an Instance's own bookkeeping
// (there is no exported accessor, by design: the tables are internal) can
// instead track occupancy themselves via their own Add/Remove call counts
// and report it here.
func (r *Recorder) SetListenerOccupancy(id, typ, generic int) {
	r.idListeners.Set(float64(id))
	r.typeListeners.Set(float64(typ))
	r.genListeners.Set(float64(generic))
}

func typeLabel(typ uint32) string {
	return strconv.FormatUint(uint64(typ), 10)
}
