package transcript

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TranscriptPages is the number of history pages read.
	TranscriptPages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "transcript_history_pages_total",
			Help: "Total number of channel history pages read",
		},
	)

	// TranscriptMessages is the number of messages read into transcripts.
	TranscriptMessages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "transcript_messages_total",
			Help: "Total number of messages read into transcripts",
		},
	)
)
