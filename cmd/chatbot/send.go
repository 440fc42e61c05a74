package main

import (
	"context"
	"fmt"

	"github.com/iambharathh/chatbot/client"
	"github.com/iambharathh/chatbot/models"
)

type SendCommand struct {
	ServerURL string `help:"The URL of the chat relay server." env:"CHAT_SERVER_URL" default:"http://localhost:8000"`
	Message   string `help:"The message to send." short:"m" required:""`
}

func (c SendCommand) Run(ctx context.Context) (err error) {
	resp, err := client.New(c.ServerURL).ChatPost(ctx, models.ChatPostRequest{
		UserMessage: c.Message,
	})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	fmt.Println(resp.Response)
	return nil
}
