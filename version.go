package chatbot

// Version is overridden at build time with -ldflags "-X github.com/iambharathh/chatbot.Version=...".
var Version = "dev"
