package ollama

import "github.com/tmc/langchaingo/llms"

const numCtxKey = "num_ctx"

// WithNumCtx sets the size of the context window used for a single call.
func WithNumCtx(n int) llms.CallOption {
	return func(o *llms.CallOptions) {
		if o.Metadata == nil {
			o.Metadata = make(map[string]any)
		}
		o.Metadata[numCtxKey] = n
	}
}

func newOptions(opts llms.CallOptions) *Options {
	o := Options{
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
		TopK:        opts.TopK,
		NumPredict:  opts.MaxTokens,
		Seed:        opts.Seed,
	}
	if n, ok := opts.Metadata[numCtxKey].(int); ok {
		o.NumCtx = n
	}
	if o == (Options{}) {
		return nil
	}
	return &o
}
