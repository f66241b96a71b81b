package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/logging"
)

// rehydrateTimeout bounds the store reads done for a single guild on startup.
const rehydrateTimeout = 30 * time.Second

func readyHandler(a IApp) func(s *discordgo.Session, r *discordgo.Ready) {
	return func(_ *discordgo.Session, r *discordgo.Ready) {
		a.Log().Info("Logged in", slog.String("username", r.User.Username), slog.Int("guilds", len(r.Guilds)))
		TotalDiscordGuilds.Set(float64(len(r.Guilds)))

		for _, g := range r.Guilds {
			rehydrateGuild(a, g.ID)
		}
	}
}

func guildCreateHandler(a IApp, applicationId string) func(s *discordgo.Session, g *discordgo.GuildCreate) {
	return func(s *discordgo.Session, g *discordgo.GuildCreate) {
		if g.Unavailable {
			return
		}
		a.Log().Info("Joined guild", slog.String(logging.KeyGuildID, g.ID), slog.String("name", g.Name))
		if s.State != nil {
			TotalDiscordGuilds.Set(float64(len(s.State.Guilds)))
		}

		if _, err := s.ApplicationCommandBulkOverwrite(applicationId, g.ID, commandDefinitions()); err != nil {
			a.Log().Error("Error registering commands",
				slog.String(logging.KeyGuildID, g.ID),
				slog.String(logging.KeyError, err.Error()))
		}

		rehydrateGuild(a, g.ID)
	}
}

func guildDeleteHandler(a IApp) func(s *discordgo.Session, g *discordgo.GuildDelete) {
	return func(s *discordgo.Session, g *discordgo.GuildDelete) {
		if g.Unavailable {
			return
		}
		a.Log().Info("Left guild", slog.String(logging.KeyGuildID, g.ID))
		if s.State != nil {
			TotalDiscordGuilds.Set(float64(len(s.State.Guilds)))
		}
		ActivePanels.DeleteLabelValues(g.ID)
	}
}

// rehydrateGuild loads the panels of a guild so they are repaired before the first interaction and exports how
// many can be used.
func rehydrateGuild(a IApp, guildID string) {
	ctx, cancel := context.WithTimeout(context.Background(), rehydrateTimeout)
	defer cancel()

	n, err := a.Tickets().Rehydrate(ctx, guildID)
	if err != nil {
		a.Log().Error("Error loading panels",
			slog.String(logging.KeyGuildID, guildID),
			slog.String(logging.KeyError, err.Error()))
		return
	}

	ActivePanels.WithLabelValues(guildID).Set(float64(n))
	a.Log().Debug("Loaded panels", slog.String(logging.KeyGuildID, guildID), slog.Int("active", n))
}
