package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/logging"
	"github.com/Jacobbrewer1/ticketpanel/pkg/messages"
	"github.com/Jacobbrewer1/ticketpanel/pkg/request"
	"github.com/Jacobbrewer1/ticketpanel/pkg/tickets"
	"github.com/gorilla/mux"
)

// interactionTimeout bounds the work done for a single interaction, including transcript generation.
const interactionTimeout = 5 * time.Minute

// slashProcessor handles an invoked sub command.
type slashProcessor func(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, args *commandArgs) error

// slashCommand is a top level slash command and the processors of its sub commands, keyed by the space
// separated sub command path.
type slashCommand struct {
	def        *discordgo.ApplicationCommand
	adminOnly  bool
	processors map[string]slashProcessor
}

// componentProcessor handles a message component. value is the part of the custom id after the prefix.
type componentProcessor func(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, value string) error

type Controller func(w http.ResponseWriter, r *http.Request)

func middlewareHttp(handler Controller, a IApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()
		cw := request.NewClientWriter(w)

		// Recover from any panics that occur in the handler.
		defer func() {
			if rec := recover(); rec != nil {
				a.Log().Error("Panic in handler",
					slog.String(logging.KeyError, fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)
				cw.WriteHeader(http.StatusInternalServerError)
				if err := json.NewEncoder(cw).Encode(request.NewMessage(request.ErrInternalServer.Error())); err != nil {
					a.Log().Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
				}
			}
		}()

		var path string
		route := mux.CurrentRoute(r)
		if route != nil { // The route may be nil if the request is not routed.
			var err error
			path, err = route.GetPathTemplate()
			if err != nil {
				// An error here is only returned if the route does not define a path.
				a.Log().Error("Error getting path template", slog.String(logging.KeyError, err.Error()))
				path = r.URL.Path
			}
		} else {
			path = r.URL.Path
		}

		defer func() {
			// The status code is only known once the handler has returned.
			HttpTotalRequests.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Inc()
			HttpRequestDuration.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Observe(time.Since(now).Seconds())
		}()

		handler(cw, r)
	}
}

// interactionHandler routes slash commands by name and components by custom id prefix. Every interaction gets
// a response: user errors are shown as they are, anything else is logged and reported as an internal error.
func interactionHandler(a IApp, commands map[string]*slashCommand, components map[string]componentProcessor) func(i *discordgo.InteractionCreate) {
	return func(i *discordgo.InteractionCreate) {
		r := tickets.NewResponder(a.Discord(), i.Interaction)
		ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
		defer cancel()

		var name string
		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			name = i.ApplicationCommandData().Name
		case discordgo.InteractionMessageComponent:
			name, _ = tickets.ParseCustomID(i.MessageComponentData().CustomID)
		default:
			return
		}

		l := a.Log().With(
			slog.String(logging.KeyCommand, name),
			slog.String(logging.KeyGuildID, i.GuildID),
		)
		start := time.Now()

		defer func() {
			if rec := recover(); rec != nil {
				l.Error("Panic handling interaction",
					slog.String(logging.KeyError, fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)
				respondError(l, r, name, fmt.Errorf("panic: %v", rec))
			}
			DiscordCommandDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		}()

		var err error
		if i.GuildID == "" {
			err = &tickets.UserError{Message: messages.ErrGuildOnly}
		} else if i.Type == discordgo.InteractionApplicationCommand {
			err = handleCommand(ctx, a, r, i, commands)
		} else {
			err = handleComponent(ctx, a, r, i, components)
		}

		if err != nil {
			respondError(l, r, name, err)
		}
	}
}

func handleCommand(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, commands map[string]*slashCommand) error {
	data := i.ApplicationCommandData()
	cmd, ok := commands[data.Name]
	if !ok {
		return &tickets.UserError{Message: messages.ErrUnknownCommand}
	}

	if cmd.adminOnly && !isAdmin(i.Member) {
		return &tickets.UserError{Message: messages.ErrAdminOnly}
	}

	args := parseCommandArgs(data.Options)
	processor, ok := cmd.processors[args.path]
	if !ok {
		return &tickets.UserError{
			Message: messages.ErrUnknownCommand,
			Err:     fmt.Errorf("no processor for %s %s", data.Name, args.path),
		}
	}
	return processor(ctx, a, r, i, args)
}

func handleComponent(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, components map[string]componentProcessor) error {
	customID := i.MessageComponentData().CustomID
	prefix, value := tickets.ParseCustomID(customID)

	processor, ok := components[prefix]
	if !ok {
		return fmt.Errorf("no processor for component %q", customID)
	}
	return processor(ctx, a, r, i, value)
}

// respondError answers an interaction that failed.
func respondError(l *slog.Logger, r *tickets.Responder, name string, err error) {
	msg := messages.ErrUserErrorProcessing
	kind := "internal"

	var ue *tickets.UserError
	if errors.As(err, &ue) {
		msg = ue.Message
		kind = "user"
		l.Debug("Interaction refused", slog.String(logging.KeyError, err.Error()))
	} else {
		l.Error("Error processing interaction", slog.String(logging.KeyError, err.Error()))
	}
	DiscordInteractionErrors.WithLabelValues(name, kind).Inc()

	if err := r.Ephemeral(msg); err != nil {
		l.Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
	}
}
