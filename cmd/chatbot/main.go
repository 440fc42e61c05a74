package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Config  kong.ConfigFlag `help:"Load flag values from a YAML file." env:"CONFIG_FILE"`
	Serve   ServeCommand    `cmd:"serve" help:"Start the chat relay server."`
	Chat    ChatCommand     `cmd:"chat" help:"Chat with the relay server in the terminal."`
	Send    SendCommand     `cmd:"send" help:"Send a single message and print the reply."`
	Test    TestCommand     `cmd:"test" help:"Check that the relay server can reach Ollama."`
	Version VersionCommand  `cmd:"version" help:"Print the version of the chat relay."`
}

func main() {
	if err := loadDotEnv(".env"); err != nil {
		getLogger("error").Error("failed to load .env file", slog.Any("error", err))
		os.Exit(1)
	}
	var cli CLI
	ctx := context.Background()
	kctx := kong.Parse(&cli,
		kong.UsageOnError(),
		kong.Configuration(yamlConfig, "chatbot.yaml"),
		kong.BindTo(ctx, (*context.Context)(nil)))
	if err := kctx.Run(); err != nil {
		log := getLogger("error")
		log.Error("error", slog.Any("error", err))
		os.Exit(1)
	}
}

func getLogger(level string) *slog.Logger {
	ll := slog.LevelInfo
	switch level {
	case "debug":
		ll = slog.LevelDebug
	case "info":
		ll = slog.LevelInfo
	case "warn":
		ll = slog.LevelWarn
	case "error":
		ll = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: ll,
	}))
}
