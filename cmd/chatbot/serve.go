package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	chatpost "github.com/iambharathh/chatbot/handlers/chat/post"
	testget "github.com/iambharathh/chatbot/handlers/test/get"
	"github.com/iambharathh/chatbot/ollama"
	"github.com/iambharathh/chatbot/relay"
	"github.com/rs/cors"
)

type ServeCommand struct {
	ListenAddr  string        `help:"The address to listen on." env:"LISTEN_ADDR" default:"0.0.0.0:8000"`
	OllamaURL   string        `help:"The URL of the Ollama server." env:"OLLAMA_URL" default:"http://localhost:11434"`
	Model       string        `help:"The model to generate replies with." env:"MODEL" default:"deepseek-r1:1.5b"`
	ChatTimeout time.Duration `help:"The maximum time to wait for a chat reply from Ollama." env:"CHAT_TIMEOUT" default:"30s"`
	TestTimeout time.Duration `help:"The maximum time to wait for Ollama when testing the connection." env:"TEST_TIMEOUT" default:"5s"`
	TLSCertFile string        `help:"The TLS certificate file." env:"TLS_CERT_FILE" default:""`
	TLSKeyFile  string        `help:"The TLS key file." env:"TLS_KEY_FILE" default:""`
	LogLevel    string        `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func (c ServeCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)

	log.Info("creating LLM client", slog.String("url", c.OllamaURL), slog.String("model", c.Model))
	llm, err := ollama.New(
		ollama.WithServerURL(c.OllamaURL),
		ollama.WithModel(c.Model))
	if err != nil {
		return fmt.Errorf("failed to create LLM: %w", err)
	}
	r := relay.New(log, llm, c.ChatTimeout, c.TestTimeout)

	log.Info("Listening, make sure Ollama is running and the model is installed", slog.String("addr", c.ListenAddr), slog.String("model", c.Model))
	s := &http.Server{
		Addr:    c.ListenAddr,
		Handler: newHandler(log, r),
	}
	if c.TLSCertFile != "" && c.TLSKeyFile != "" {
		log.Info("Enabling TLS mode")
		var cert tls.Certificate
		cert, err = tls.LoadX509KeyPair(c.TLSCertFile, c.TLSKeyFile)
		if err != nil {
			return fmt.Errorf("failed to load cert: %w", err)
		}
		s.TLSConfig = &tls.Config{
			MinVersion:   tls.VersionTLS12,
			Certificates: []tls.Certificate{cert},
		}
		return s.ListenAndServeTLS(c.TLSCertFile, c.TLSKeyFile)
	}
	return s.ListenAndServe()
}

func newHandler(log *slog.Logger, r relay.Relay) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /chat", chatpost.New(log, r))
	mux.Handle("GET /test", testget.New(log, r))
	return withCORS(mux)
}

// withCORS allows requests from any origin, with credentials.
func withCORS(next http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(next)
}
