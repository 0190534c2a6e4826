package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FramesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glboot_frames_rendered_total",
		Help: "Total number of swapped frames",
	})
	FrameDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "glboot_frame_duration_seconds",
		Help:    "Time between two consecutive buffer swaps",
		Buckets: []float64{.001, .002, .004, .008, .0167, .0333, .0667, .1, .25, .5},
	})
	ProgramBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glboot_program_builds_total",
		Help: "Number of shader program builds by result",
	}, []string{"result"})
)

// ObserveFrame records one rendered frame.
func ObserveFrame(d time.Duration) {
	FramesRendered.Inc()
	if d > 0 {
		FrameDuration.Observe(d.Seconds())
	}
}

// ObserveBuild records a result of the shader program build.
func ObserveBuild(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	ProgramBuilds.WithLabelValues(result).Inc()
}

// DeltaTimer measures time between the calls of Next.
type DeltaTimer struct {
	time.Time
}

// Next returns the time passed since the previous call, 0 for the first one.
func (d *DeltaTimer) Next() time.Duration {
	now := time.Now()
	defer func() { d.Time = now }()
	if d.IsZero() {
		return 0
	}
	return now.Sub(d.Time)
}
