package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/Jacobbrewer1/ticketpanel/pkg/logging"
)

func main() {
	a, cleanup, err := InitializeApp(context.Background())
	if err != nil {
		log.Fatalln(err)
	}

	a.Info("Starting application")
	if err := a.Run(); err != nil {
		a.Error("Error running application", slog.String(logging.KeyError, err.Error()))
		cleanup()
		os.Exit(1)
	}
	cleanup()
}
