package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/dataaccess"
	"github.com/Jacobbrewer1/ticketpanel/pkg/logging"
	"github.com/Jacobbrewer1/ticketpanel/pkg/request"
	"github.com/Jacobbrewer1/ticketpanel/pkg/tickets"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// PathMetrics is the path for metrics.
	PathMetrics = "/metrics"

	// PathHealth is the path for the health check.
	PathHealth = "/health"
)

// IApp is the interface for the application.
type IApp interface {
	// Log returns the logger.
	Log() *slog.Logger

	// Discord returns the discord session used by handlers.
	Discord() tickets.Session

	// Tickets returns the ticket lifecycle manager.
	Tickets() *tickets.Manager

	Panels() dataaccess.PanelDal
	Embeds() dataaccess.EmbedDal
	Settings() dataaccess.SettingsDal
}

type App struct {
	// is the logger.
	*slog.Logger

	// cfg is the configuration.
	cfg *Config

	// r is the router for the application.
	r *mux.Router

	// svr is the server for the application.
	svr *http.Server

	// s is the discord session.
	s *discordgo.Session

	// ds wraps s for the handlers.
	ds tickets.Session

	// kv is the store backing the dals.
	kv dataaccess.KV

	panels   dataaccess.PanelDal
	embeds   dataaccess.EmbedDal
	settings dataaccess.SettingsDal

	// tickets runs the ticket lifecycle.
	tickets *tickets.Manager

	// eventNotifier is the channel for notifying of events.
	eventNotifier chan any
}

// NewApp creates a new instance of App.
func NewApp(
	l *slog.Logger,
	cfg *Config,
	r *mux.Router,
	s *discordgo.Session,
	ds tickets.Session,
	kv dataaccess.KV,
	panels dataaccess.PanelDal,
	embeds dataaccess.EmbedDal,
	settings dataaccess.SettingsDal,
	manager *tickets.Manager,
) *App {
	return &App{
		Logger:   l,
		cfg:      cfg,
		r:        r,
		s:        s,
		ds:       ds,
		kv:       kv,
		panels:   panels,
		embeds:   embeds,
		settings: settings,
		tickets:  manager,
	}
}

// newDiscordSession creates the discord session. It is not connected until Run.
func newDiscordSession(cfg *Config) (*discordgo.Session, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	// Message content is needed to read ticket history for transcripts.
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent
	return dg, nil
}

func (a *App) Run() error {
	// Default the number of guilds to 0.
	TotalDiscordGuilds.Set(0)

	if a.eventNotifier == nil {
		// Create event notifier. It is buffered to prevent blocking.
		a.eventNotifier = make(chan any, 100)
	}
	a.s.SetEventNotifier(a.eventNotifier)

	a.RegisterDiscordHandlers()

	// Start event listener.
	go a.eventListener()

	// Open websocket.
	if err := a.s.Open(); err != nil {
		return fmt.Errorf("error opening connection to Discord: %w", err)
	}

	a.Info("Bot is now running.")

	a.generateServer()
	a.setupRoutes()
	a.runServer()

	// Register listener for shutdown signal.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	sig := <-c
	a.Info("Received shutdown signal", slog.String("signal", sig.String()))
	if err := a.ShutdownHook(); err != nil {
		return fmt.Errorf("error shutting down application: %w", err)
	}
	return nil
}

func (a *App) ShutdownHook() error {
	// Reset the total number of guilds to 0.
	TotalDiscordGuilds.Set(0)
	ActivePanels.Reset()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if a.svr != nil {
		if err := a.svr.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("error shutting down monitoring server: %w", err))
		}
	}

	// Close the connection to Discord.
	if err := a.s.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing connection to Discord: %w", err))
	}
	return errors.Join(errs...)
}

func (a *App) runServer() {
	go func() {
		a.Info("Starting monitoring server", slog.String("addr", a.svr.Addr))
		if err := a.svr.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Error("Error starting monitoring server", slog.String(logging.KeyError, err.Error()))
			a.Warn("Monitoring server will not be available")
		}
	}()
}

func (a *App) setupRoutes() {
	a.r.HandleFunc(PathMetrics, middlewareHttp(promhttp.Handler().ServeHTTP, a)).Methods(http.MethodGet)
	a.r.HandleFunc(PathHealth, middlewareHttp(a.healthCheck(), a)).Methods(http.MethodGet)

	a.r.NotFoundHandler = request.NotFoundHandler(a.Logger)
	a.r.MethodNotAllowedHandler = request.MethodNotAllowedHandler(a.Logger)
}

func (a *App) generateServer() {
	a.svr = &http.Server{
		Addr:              ":" + a.cfg.MonitoringPort,
		Handler:           a.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func (a *App) RegisterDiscordHandlers() {
	a.s.AddHandler(readyHandler(a))

	// Bot joined guild.
	a.s.AddHandler(guildCreateHandler(a, a.cfg.ApplicationId))

	// Bot left guild.
	a.s.AddHandler(guildDeleteHandler(a))

	// Interaction create handler.
	a.s.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		interactionHandler(a, slashCommands, componentProcessors)(i)
	})
}

func (a *App) eventListener() {
	for e := range a.eventNotifier {
		switch t := e.(type) {
		case *discordgo.Event:
			if t.Type != "" {
				TotalDiscordEvents.WithLabelValues(t.Type).Inc()
			} else {
				// If there is no type, then use the operation name.
				TotalDiscordEvents.WithLabelValues(strings.ToUpper(t.Operation.String())).Inc()
			}
		default:
			a.Error("Unknown event type", slog.String("type", fmt.Sprintf("%T", e)))
			TotalDiscordEvents.WithLabelValues("UNKNOWN").Inc()
		}
	}
}

func (a *App) Log() *slog.Logger {
	return a.Logger
}

func (a *App) Discord() tickets.Session {
	return a.ds
}

func (a *App) Tickets() *tickets.Manager {
	return a.tickets
}

func (a *App) Panels() dataaccess.PanelDal {
	return a.panels
}

func (a *App) Embeds() dataaccess.EmbedDal {
	return a.embeds
}

func (a *App) Settings() dataaccess.SettingsDal {
	return a.settings
}
