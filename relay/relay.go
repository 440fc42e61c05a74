package relay

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/iambharathh/chatbot/ollama"
	"github.com/iambharathh/chatbot/sanitize"
	"github.com/tmc/langchaingo/llms"
)

const (
	DefaultChatTimeout = 30 * time.Second
	DefaultTestTimeout = 5 * time.Second

	// ProbePrompt is sent to the model to check that it is reachable.
	ProbePrompt = "Hi"
)

// chatOptions are used for every chat message, callers can't change them.
var chatOptions = []llms.CallOption{
	llms.WithTemperature(0.7),
	llms.WithTopP(0.9),
	llms.WithTopK(40),
	llms.WithMaxTokens(150),
	ollama.WithNumCtx(512),
}

func New(log *slog.Logger, llm llms.Model, chatTimeout, testTimeout time.Duration) Relay {
	return Relay{
		log:         log,
		llm:         llm,
		chatTimeout: chatTimeout,
		testTimeout: testTimeout,
	}
}

type Relay struct {
	log         *slog.Logger
	llm         llms.Model
	chatTimeout time.Duration
	testTimeout time.Duration
}

// Chat sends the message to the model and returns the cleaned reply. Errors
// returned are always of type Error.
func (r Relay) Chat(ctx context.Context, userMessage string) (reply string, err error) {
	if userMessage == "" {
		return "", Error{Kind: BadRequest, Message: "user_message is required"}
	}
	r.log.Info("received message", slog.String("message", userMessage))

	ctx, cancel := context.WithTimeout(ctx, r.chatTimeout)
	defer cancel()

	raw, err := llms.GenerateFromSinglePrompt(ctx, r.llm, userMessage, chatOptions...)
	if err != nil {
		if isUnavailable(err) {
			return "", Error{
				Kind:    UpstreamUnavailable,
				Message: "Failed to communicate with Ollama service: " + err.Error(),
				Err:     err,
			}
		}
		return "", Error{Kind: Internal, Message: err.Error(), Err: err}
	}

	reply = sanitize.Clean(raw)
	if reply == "" {
		return "", Error{Kind: EmptyUpstreamResult, Message: "Empty response from model"}
	}
	r.log.Info("cleaned response", slog.String("response", reply))
	return reply, nil
}

// Probe sends a fixed prompt with the model's default options and returns
// the cleaned reply.
func (r Relay) Probe(ctx context.Context) (reply string, err error) {
	ctx, cancel := context.WithTimeout(ctx, r.testTimeout)
	defer cancel()

	raw, err := llms.GenerateFromSinglePrompt(ctx, r.llm, ProbePrompt)
	if err != nil {
		return "", err
	}
	return sanitize.Clean(raw), nil
}

func isUnavailable(err error) bool {
	return errors.As(err, &ollama.UnavailableError{}) ||
		errors.Is(err, context.DeadlineExceeded)
}
