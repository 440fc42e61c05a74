package models

type ChatPostRequest struct {
	// UserMessage is sent to the model as the prompt, unchanged.
	UserMessage string `json:"user_message"`
}

type ChatPostResponse struct {
	// Response is the model's reply with markup and non-ASCII text removed.
	Response string `json:"response"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
