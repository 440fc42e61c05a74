package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/iambharathh/chatbot/client"
)

type TestCommand struct {
	ServerURL string `help:"The URL of the chat relay server." env:"CHAT_SERVER_URL" default:"http://localhost:8000"`
	Pretty    bool   `help:"Pretty print the JSON output." default:"true"`
}

func (c TestCommand) Run(ctx context.Context) (err error) {
	resp, err := client.New(c.ServerURL).TestGet(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if c.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(resp)
}
