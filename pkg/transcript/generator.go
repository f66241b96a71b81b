package transcript

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/logging"
	"github.com/samber/lo"
	"golang.org/x/time/rate"
)

// pageSize is the most messages Discord returns per history request.
const pageSize = 100

// MessageFetcher reads a page of channel history.
type MessageFetcher interface {
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string) ([]*discordgo.Message, error)
}

// Meta describes the ticket a transcript is generated for.
type Meta struct {
	// Channel is the ticket channel. Required.
	Channel *discordgo.Channel

	// Owner is the user the ticket was opened for.
	Owner *discordgo.User

	GuildName string
	PanelName string
	CreatedAt time.Time
	ClosedAt  time.Time
	ClosedBy  *discordgo.User

	// Roles and Channels map ids to names so mentions can be rendered readably.
	Roles    map[string]string
	Channels map[string]string
}

// Transcript is a rendered channel history.
type Transcript struct {
	// Document is a self contained HTML document.
	Document []byte

	// Participants are the distinct authors of the channel in order of their first message.
	Participants []*discordgo.User

	// MessageCount is the number of messages read, including ones not rendered.
	MessageCount int
}

// Generator renders channel histories. It never modifies the channel.
type Generator struct {
	// l is the logger.
	l *slog.Logger

	// fetcher reads channel history.
	fetcher MessageFetcher

	// limiter paces history requests.
	limiter *rate.Limiter
}

// NewGenerator creates a Generator. A nil limiter does not pace requests.
func NewGenerator(l *slog.Logger, fetcher MessageFetcher, limiter *rate.Limiter) *Generator {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &Generator{
		l:       l,
		fetcher: fetcher,
		limiter: limiter,
	}
}

// Generate walks the whole history of the channel oldest first and renders it.
func (g *Generator) Generate(ctx context.Context, meta *Meta) (*Transcript, error) {
	if meta == nil || meta.Channel == nil {
		return nil, fmt.Errorf("transcript channel is nil")
	}

	l := g.l.With(slog.String(logging.KeyChannelID, meta.Channel.ID))
	start := time.Now()

	r := newRenderer(meta)
	authors := make([]*discordgo.User, 0)
	views := make([]*messageView, 0)
	count := 0

	// "0" is before every snowflake, so the first page holds the oldest messages.
	cursor := "0"
	for {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("error waiting for history page: %w", err)
		}

		page, err := g.fetcher.ChannelMessages(meta.Channel.ID, pageSize, "", cursor, "")
		if err != nil {
			return nil, fmt.Errorf("error fetching channel history: %w", err)
		}
		TranscriptPages.Inc()

		// Pages arrive newest first.
		slices.SortFunc(page, func(a, b *discordgo.Message) int {
			return compareSnowflakes(a.ID, b.ID)
		})

		for _, m := range page {
			count++
			if m.Author != nil {
				authors = append(authors, m.Author)
			}
			if v := r.message(m); v != nil {
				views = append(views, v)
			}
		}

		if len(page) < pageSize {
			break
		}
		cursor = page[len(page)-1].ID
	}

	participants := lo.UniqBy(authors, func(u *discordgo.User) string {
		return u.ID
	})

	buf := new(bytes.Buffer)
	if err := documentTemplate.Execute(buf, r.document(views, participants, count)); err != nil {
		return nil, fmt.Errorf("error rendering transcript: %w", err)
	}

	TranscriptMessages.Add(float64(count))
	l.Debug("Generated transcript",
		slog.Int("messages", count),
		slog.Int("participants", len(participants)),
		slog.Duration("took", time.Since(start)),
	)

	return &Transcript{
		Document:     buf.Bytes(),
		Participants: participants,
		MessageCount: count,
	}, nil
}

// compareSnowflakes orders two snowflakes numerically without parsing them.
func compareSnowflakes(a, b string) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
