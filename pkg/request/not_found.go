package request

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Jacobbrewer1/ticketpanel/pkg/logging"
)

// NotFoundHandler returns a handler that returns a 404 response.
func NotFoundHandler(l *slog.Logger) http.HandlerFunc {
	return jsonStatusHandler(l, http.StatusNotFound, "Not found")
}

// MethodNotAllowedHandler returns a handler that returns a 405 response.
func MethodNotAllowedHandler(l *slog.Logger) http.HandlerFunc {
	return jsonStatusHandler(l, http.StatusMethodNotAllowed, "Method not allowed")
}

func jsonStatusHandler(l *slog.Logger, status int, text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(NewMessage(text)); err != nil {
			l.Error("Error encoding response",
				slog.String(logging.KeyError, err.Error()),
				slog.String("path", r.URL.Path),
			)
		}
	}
}
