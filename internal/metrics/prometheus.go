package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	VideosProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slideflow_videos_processed_total",
		Help: "Total number of videos processed, by status",
	}, []string{"status"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "slideflow_stage_duration_seconds",
		Help:    "Duration of each pipeline stage",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
	}, []string{"stage"})

	FramesExtractedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slideflow_frames_extracted_total",
		Help: "Total number of frames extracted across all videos",
	})

	SlidesDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slideflow_slides_dropped_total",
		Help: "Slides discarded by curation or content filtering, by reason",
	}, []string{"reason"})

	SummarizerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slideflow_summarizer_requests_total",
		Help: "Outbound summarization calls, by outcome",
	}, []string{"outcome"})

	RateLimitWait = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "slideflow_ratelimit_wait_seconds",
		Help:    "Time spent blocked in the request scheduler",
		Buckets: []float64{0, 0.1, 0.5, 1, 5, 15, 30, 60},
	})
)
