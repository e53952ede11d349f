// Package openai implements the model-call boundary over the official
// OpenAI Go SDK.
package openai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/reagentkit/reagent"
)

// DefaultModel is used when no model option is given.
const DefaultModel = "gpt-4o-mini"

// Client wraps the OpenAI SDK to implement reagent.ChatProvider.
type Client struct {
	client *openai.Client
	model  string
}

// New creates an OpenAI client with the given API key.
func New(apiKey string, opts ...ClientOption) *Client {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	c := &Client{
		client: &client,
		model:  DefaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithModel sets the default model for requests.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(apiKey, baseURL string) ClientOption {
	return func(c *Client) {
		client := openai.NewClient(option.WithAPIKey(apiKey), option.WithBaseURL(baseURL))
		c.client = &client
	}
}

// Chat sends a conversation and returns the complete response.
func (c *Client) Chat(ctx context.Context, messages []reagent.Message, opts ...reagent.Option) (*reagent.Response, error) {
	options := reagent.ApplyOptions(opts...)
	model := c.model
	if options.Model != "" {
		model = options.Model
	}

	params := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: convertMessages(messages),
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(options.MaxTokens))
	}
	if options.Temperature != nil {
		params.Temperature = openai.Float(*options.Temperature)
	}
	if len(options.Tools) > 0 {
		params.Tools = convertTools(options.Tools)
		if options.ToolChoice != "" {
			params.ToolChoice = convertToolChoice(options.ToolChoice)
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, reagent.NewPermanentError("openai: response contained no choices", 0, nil)
	}

	choice := resp.Choices[0]
	return &reagent.Response{
		Content:      choice.Message.Content,
		FinishReason: string(choice.FinishReason),
		Usage: reagent.Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
		},
		ToolCalls: extractToolCalls(choice.Message),
	}, nil
}

var _ reagent.ChatProvider = (*Client)(nil)
