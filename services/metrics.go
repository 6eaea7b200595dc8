package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	LeadFormsOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_forms_opened_total",
			Help: "Total number of lead forms opened",
		},
		[]string{"plan"},
	)

	LeadValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_validation_failures_total",
			Help: "Total number of field validation failures when advancing or finalizing",
		},
		[]string{"field"},
	)

	LeadUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_attachment_uploads_total",
			Help: "Total number of payment confirmation uploads",
		},
		[]string{"outcome"},
	)

	LeadSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_submissions_total",
			Help: "Total number of lead submissions sent to the backend",
		},
		[]string{"plan", "outcome"},
	)

	LeadSubmissionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "lead_submission_duration_seconds",
			Help: "Duration of upload plus submission for a finalized lead",
		},
	)

	LeadSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lead_sessions_active",
			Help: "Number of visitor form sessions held in memory",
		},
	)

	LeadStagedBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lead_staged_attachment_bytes",
			Help: "Bytes of payment confirmations staged in memory awaiting upload",
		},
	)
)
