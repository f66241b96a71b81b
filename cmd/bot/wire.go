//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/Jacobbrewer1/ticketpanel/pkg/dataaccess"
	"github.com/Jacobbrewer1/ticketpanel/pkg/logging"
	"github.com/Jacobbrewer1/ticketpanel/pkg/tickets"
	"github.com/google/wire"
	"github.com/gorilla/mux"
)

func InitializeApp(ctx context.Context) (*App, func(), error) {
	wire.Build(
		wire.Value(logging.Name(AppName)),
		logging.NewConfig,
		logging.CommonLogger,
		LoadConfig,
		newKV,
		dataaccess.NewPanelDal,
		dataaccess.NewEmbedDal,
		dataaccess.NewSettingsDal,
		newDiscordSession,
		tickets.NewSession,
		newTranscriptGenerator,
		tickets.NewManager,
		mux.NewRouter,
		NewApp,
	)
	return new(App), nil, nil
}
