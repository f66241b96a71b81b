package main

import (
	"log/slog"

	"github.com/Jacobbrewer1/ticketpanel/pkg/tickets"
	"github.com/Jacobbrewer1/ticketpanel/pkg/transcript"
	"golang.org/x/time/rate"
)

// newTranscriptGenerator creates the transcript generator, pacing history reads at the configured rate. A rate
// of zero or less does not pace them.
func newTranscriptGenerator(l *slog.Logger, s tickets.Session, cfg *Config) *transcript.Generator {
	var limiter *rate.Limiter
	if cfg.TranscriptRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.TranscriptRate), 1)
	}
	return transcript.NewGenerator(l, s, limiter)
}
