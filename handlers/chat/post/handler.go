package post

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/a-h/respond"
	"github.com/iambharathh/chatbot/models"
	"github.com/iambharathh/chatbot/relay"
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

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req models.ChatPostRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	// An empty body is a request without a user_message.
	if err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, relay.Error{Kind: relay.Internal, Message: err.Error(), Err: err})
		return
	}

	reply, err := h.relay.Chat(r.Context(), req.UserMessage)
	if err != nil {
		h.writeError(w, err)
		return
	}

	respond.WithJSON(w, models.ChatPostResponse{Response: reply}, http.StatusOK)
}

func (h Handler) writeError(w http.ResponseWriter, err error) {
	re := relay.AsError(err)
	h.log.Error("chat failed", slog.String("kind", re.Kind.String()), slog.Any("error", err))
	respond.WithJSON(w, models.ErrorResponse{Detail: re.Message}, re.Kind.StatusCode())
}
