package tickets

import (
	"sync"

	"github.com/Jacobbrewer1/discordgo"
)

// Responder answers an interaction. Discord accepts exactly one initial response per interaction; every later
// message has to be a followup. Responder tracks which of the two applies so callers do not have to.
type Responder struct {
	s Session
	i *discordgo.Interaction

	mu    sync.Mutex
	acked bool
}

// NewResponder creates a Responder for the interaction.
func NewResponder(s Session, i *discordgo.Interaction) *Responder {
	return &Responder{
		s: s,
		i: i,
	}
}

// Acknowledged reports whether the interaction has had its initial response.
func (r *Responder) Acknowledged() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.acked
}

// Defer acknowledges the interaction with an ephemeral "thinking" state. It does nothing if the interaction has
// already been acknowledged.
func (r *Responder) Defer() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.acked {
		return nil
	}

	err := r.s.InteractionRespond(r.i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		return err
	}
	r.acked = true
	return nil
}

// Ephemeral sends a text message only the invoking user can see.
func (r *Responder) Ephemeral(content string) error {
	return r.send(&discordgo.InteractionResponseData{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}

// EphemeralEmbed sends an embed only the invoking user can see.
func (r *Responder) EphemeralEmbed(embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	return r.send(&discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
		Flags:      discordgo.MessageFlagsEphemeral,
	})
}

// Message sends a message. It is visible to everyone unless the interaction was deferred ephemerally.
func (r *Responder) Message(data *discordgo.InteractionResponseData) error {
	return r.send(data)
}

func (r *Responder) send(data *discordgo.InteractionResponseData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.acked {
		err := r.s.InteractionRespond(r.i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: data,
		})
		if err != nil {
			return err
		}
		r.acked = true
		return nil
	}

	_, err := r.s.FollowupMessageCreate(r.i, &discordgo.WebhookParams{
		Content:    data.Content,
		Embeds:     data.Embeds,
		Components: data.Components,
		Flags:      data.Flags,
	})
	return err
}
