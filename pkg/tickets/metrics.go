package tickets

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TicketsOpened counts ticket channels created, by panel.
	TicketsOpened = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tickets_opened_total",
		Help: "Ticket channels created",
	}, []string{"panel"})

	// TicketsClosed counts tickets closed, by panel.
	TicketsClosed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tickets_closed_total",
		Help: "Tickets closed with a transcript",
	}, []string{"panel"})

	// TicketsRejected counts ticket requests refused because of a per user limit, by panel.
	TicketsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tickets_rejected_total",
		Help: "Ticket requests refused because the user reached the option limit",
	}, []string{"panel"})

	// TranscriptDuration is how long transcripts take to generate and deliver.
	TranscriptDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tickets_transcript_duration_seconds",
		Help:    "Time taken to generate and deliver a transcript",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
	})
)
