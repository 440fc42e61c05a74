package main

import (
	"context"
	"fmt"

	"github.com/iambharathh/chatbot"
)

type VersionCommand struct {
}

func (c VersionCommand) Run(ctx context.Context) (err error) {
	fmt.Println(chatbot.Version)
	return nil
}
