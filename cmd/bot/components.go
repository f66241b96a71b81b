package main

import (
	"context"
	"fmt"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/messages"
	"github.com/Jacobbrewer1/ticketpanel/pkg/tickets"
)

// optionButtonProcessor handles a click on an option button. The value is the option id.
func optionButtonProcessor(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, value string) error {
	return a.Tickets().SelectOption(ctx, r, i.Interaction, "", value)
}

// dropdownProcessor handles a panel dropdown. The value is the panel name and the selection is the option id.
func dropdownProcessor(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, value string) error {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return &tickets.UserError{Message: messages.ErrOptionNoLongerValid}
	}
	return a.Tickets().SelectOption(ctx, r, i.Interaction, value, values[0])
}

func closeProcessor(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, _ string) error {
	customID := i.MessageComponentData().CustomID
	ref, ok := tickets.ParseCloseButtonID(customID)
	if !ok {
		return fmt.Errorf("invalid close button %q", customID)
	}
	return a.Tickets().Close(ctx, r, i.Interaction, ref)
}
