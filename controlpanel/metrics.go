package controlpanel

import (
	"github.com/prometheus/client_golang/prometheus"

	"solarsystem/assets"
	"solarsystem/core"
)

// Metrics tracks frame loop and panel activity
type Metrics struct {
	frames   prometheus.Counter
	fps      prometheus.Gauge
	paused   prometheus.Gauge
	picks    *prometheus.CounterVec
	commands *prometheus.CounterVec
	rejected prometheus.Counter
	assets   *prometheus.GaugeVec
	clients  prometheus.Gauge
}

// NewMetrics registers the viewer's metrics with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "solarsystem",
			Name:      "frames_total",
			Help:      "Frames rendered.",
		}),
		fps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "solarsystem",
			Name:      "fps",
			Help:      "Frames per second over the last second.",
		}),
		paused: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "solarsystem",
			Name:      "paused",
			Help:      "1 while the simulation is paused.",
		}),
		picks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "solarsystem",
			Name:      "hover_frames_total",
			Help:      "Frames in which a body was under the pointer.",
		}, []string{"body"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "solarsystem",
			Name:      "panel_commands_total",
			Help:      "Commands queued from the control panel.",
		}, []string{"op"}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "solarsystem",
			Name:      "panel_rejected_total",
			Help:      "Panel messages that could not be turned into commands.",
		}),
		assets: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "solarsystem",
			Name:      "assets",
			Help:      "Texture assets by load state.",
		}, []string{"state"}),
		clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "solarsystem",
			Name:      "panel_clients",
			Help:      "Connected control panel clients.",
		}),
	}
	reg.MustRegister(m.frames, m.fps, m.paused, m.picks, m.commands, m.rejected, m.assets, m.clients)
	return m
}

// ObserveFrame records one frame report
func (m *Metrics) ObserveFrame(rep core.FrameReport, paused bool) {
	m.frames.Inc()
	if rep.Picked != "" {
		m.picks.WithLabelValues(rep.Picked).Inc()
	}
	if paused {
		m.paused.Set(1)
	} else {
		m.paused.Set(0)
	}
}

// SetFPS records the measured frame rate
func (m *Metrics) SetFPS(fps float64) {
	m.fps.Set(fps)
}

// SetAssets records asset counts per load state
func (m *Metrics) SetAssets(counts map[assets.State]int) {
	for state, n := range counts {
		m.assets.WithLabelValues(state.String()).Set(float64(n))
	}
}
