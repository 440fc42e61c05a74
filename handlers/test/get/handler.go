package get

import (
	"log/slog"
	"net/http"

	"github.com/a-h/respond"
	"github.com/iambharathh/chatbot/models"
	"github.com/iambharathh/chatbot/relay"
)

const (
	SuccessMessage = "API and Ollama connection working!"
	ErrorMessage   = "API working, but cannot connect to Ollama"
)

func New(log *slog.Logger, r relay.Relay) Handler {
	return Handler{
		log:   log,
		relay: r,
	}
}

type Handler struct {
	log   *slog.Logger
	relay relay.Relay
}

// ServeHTTP always responds with 200, failures are reported in the body.
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reply, err := h.relay.Probe(r.Context())
	if err != nil {
		h.log.Error("model server probe failed", slog.Any("error", err))
		respond.WithJSON(w, models.TestGetResponse{
			Status:  models.TestStatusError,
			Message: ErrorMessage,
			Detail:  err.Error(),
		}, http.StatusOK)
		return
	}

	respond.WithJSON(w, models.TestGetResponse{
		Status:       models.TestStatusSuccess,
		Message:      SuccessMessage,
		TestResponse: &reply,
	}, http.StatusOK)
}
