package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/a-h/jsonapi"
	"github.com/tmc/langchaingo/llms"
)

const (
	DefaultServerURL = "http://localhost:11434"
	DefaultModel     = "deepseek-r1:1.5b"
)

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	Stream  bool     `json:"stream"`
	Options *Options `json:"options,omitempty"`
}

// Options are the model parameters sent with a generate request. Zero
// values are omitted so that the server defaults apply.
type Options struct {
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
	TopK        int     `json:"top_k,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
	NumCtx      int     `json:"num_ctx,omitempty"`
	Seed        int     `json:"seed,omitempty"`
}

// GenerateResponse is the non-streaming response of POST /api/generate.
type GenerateResponse struct {
	Model      string `json:"model"`
	Response   string `json:"response"`
	Done       bool   `json:"done"`
	DoneReason string `json:"done_reason"`
}

// UnavailableError is returned when the server can't be reached, the request
// times out, or the server responds with a non-2xx status.
type UnavailableError struct {
	Err error
}

func (e UnavailableError) Error() string {
	return e.Err.Error()
}

func (e UnavailableError) Unwrap() error {
	return e.Err
}

type Option func(*LLM)

func WithServerURL(serverURL string) Option {
	return func(l *LLM) {
		l.serverURL = serverURL
	}
}

func WithModel(model string) Option {
	return func(l *LLM) {
		l.model = model
	}
}

// New creates an llms.Model that generates text with a single prompt
// through Ollama's generate endpoint.
func New(opts ...Option) (*LLM, error) {
	l := &LLM{
		serverURL: DefaultServerURL,
		model:     DefaultModel,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.model == "" {
		return nil, fmt.Errorf("ollama: model is required")
	}
	var err error
	l.generateURL, err = jsonapi.URL(strings.TrimSuffix(l.serverURL, "/")).Path("api", "generate").String()
	if err != nil {
		return nil, fmt.Errorf("ollama: invalid server URL %q: %w", l.serverURL, err)
	}
	return l, nil
}

type LLM struct {
	serverURL   string
	generateURL string
	model       string
}

var _ llms.Model = (*LLM)(nil)

// Generate sends a single request to the generate endpoint.
func (l *LLM) Generate(ctx context.Context, req GenerateRequest) (resp GenerateResponse, err error) {
	resp, err = jsonapi.Post[GenerateRequest, GenerateResponse](ctx, l.generateURL, req)
	if err == nil {
		return resp, nil
	}
	if errors.As(err, &jsonapi.InvalidJSONError{}) {
		return resp, fmt.Errorf("failed to decode response: %w", err)
	}
	if isUnavailable(err) {
		return resp, UnavailableError{Err: err}
	}
	return resp, err
}

func isUnavailable(err error) bool {
	var urlErr *url.Error
	return errors.As(err, &jsonapi.InvalidStatusError{}) ||
		errors.As(err, &urlErr) ||
		errors.Is(err, context.DeadlineExceeded)
}

// GenerateContent implements llms.Model. The text parts of all messages are
// joined into a single prompt.
func (l *LLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	var opts llms.CallOptions
	for _, opt := range options {
		opt(&opts)
	}

	prompt, err := promptFromMessages(messages)
	if err != nil {
		return nil, err
	}

	req := GenerateRequest{
		Model:   l.model,
		Prompt:  prompt,
		Stream:  false,
		Options: newOptions(opts),
	}
	if opts.Model != "" {
		req.Model = opts.Model
	}

	resp, err := l.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{
			{
				Content:    resp.Response,
				StopReason: resp.DoneReason,
				GenerationInfo: map[string]any{
					"model": resp.Model,
					"done":  resp.Done,
				},
			},
		},
	}, nil
}

// Call implements llms.Model.
func (l *LLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, l, prompt, options...)
}

func promptFromMessages(messages []llms.MessageContent) (string, error) {
	var parts []string
	for _, m := range messages {
		for _, p := range m.Parts {
			tc, ok := p.(llms.TextContent)
			if !ok {
				return "", fmt.Errorf("ollama: unsupported content part %T", p)
			}
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n"), nil
}
