package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/reagentkit/reagent"
	"github.com/reagentkit/reagent/provider/anthropic"
	"github.com/reagentkit/reagent/provider/google"
	"github.com/reagentkit/reagent/provider/openai"
	"github.com/reagentkit/reagent/retry"
)

// ProviderName identifies a chat backend.
type ProviderName string

const (
	ProviderAnthropic ProviderName = "anthropic"
	ProviderOpenAI    ProviderName = "openai"
	ProviderGoogle    ProviderName = "google"
)

// String returns the provider name as a string.
func (p ProviderName) String() string {
	return string(p)
}

// APIKeys holds API keys for different providers.
// Only configure keys for providers you intend to use.
type APIKeys struct {
	Anthropic string
	OpenAI    string
	Google    string
}

// Config holds configuration for creating a client.
type Config struct {
	// Provider selects which backend handles chat requests.
	Provider ProviderName

	// Model is the default model for chat requests. Empty uses the
	// backend's default. Per-request options override it.
	Model string

	// APIKeys contains authentication keys for each provider.
	// Only configure keys for providers you intend to use.
	APIKeys APIKeys

	// RetryConfig configures retry behavior for transient errors.
	// If nil, uses the default retry configuration.
	RetryConfig *retry.Config

	// Events is an optional channel for receiving client operation events.
	// Events are sent non-blocking; if the channel is full, events are dropped.
	Events chan<- Event
}

// ErrMissingAPIKey is returned when a request is made but no API key
// is configured for the selected provider.
type ErrMissingAPIKey struct {
	Provider string
}

func (e *ErrMissingAPIKey) Error() string {
	return fmt.Sprintf("no API key configured for %s", e.Provider)
}

// ErrUnknownProvider is returned when the configured provider name is
// not recognized.
type ErrUnknownProvider struct {
	Provider string
}

func (e *ErrUnknownProvider) Error() string {
	return fmt.Sprintf("unknown provider %q (want %s, %s, or %s)",
		e.Provider, ProviderAnthropic, ProviderOpenAI, ProviderGoogle)
}

// Client routes chat requests to a configured backend and retries
// transient failures with exponential backoff. It implements
// reagent.ChatProvider, so it drops in anywhere a bare provider does.
//
// Backend clients are lazily initialized on first use.
type Client struct {
	provider    ProviderName
	model       string
	apiKeys     APIKeys
	retryConfig retry.Config
	events      chan<- Event

	// Lazy-initialized backends (protected by mutex)
	mu              sync.RWMutex
	anthropicClient *anthropic.Client
	openaiClient    *openai.Client
	googleClient    *google.Client
	googleInitErr   error
}

// New creates a client with the given configuration. The backend client
// is initialized on the first request, so a misconfigured key surfaces
// there rather than here.
func New(cfg Config) *Client {
	retryConfig := retry.DefaultConfig()
	if cfg.RetryConfig != nil {
		retryConfig = *cfg.RetryConfig
	}

	return &Client{
		provider:    cfg.Provider,
		model:       cfg.Model,
		apiKeys:     cfg.APIKeys,
		retryConfig: retryConfig,
		events:      cfg.Events,
	}
}

// getAnthropicClient returns the Anthropic client, initializing it if needed.
func (c *Client) getAnthropicClient() (*anthropic.Client, error) {
	c.mu.RLock()
	if c.anthropicClient != nil {
		defer c.mu.RUnlock()
		return c.anthropicClient, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.anthropicClient != nil {
		return c.anthropicClient, nil
	}

	if c.apiKeys.Anthropic == "" {
		return nil, &ErrMissingAPIKey{Provider: "anthropic"}
	}

	c.anthropicClient = anthropic.New(c.apiKeys.Anthropic)
	return c.anthropicClient, nil
}

// getOpenAIClient returns the OpenAI client, initializing it if needed.
func (c *Client) getOpenAIClient() (*openai.Client, error) {
	c.mu.RLock()
	if c.openaiClient != nil {
		defer c.mu.RUnlock()
		return c.openaiClient, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.openaiClient != nil {
		return c.openaiClient, nil
	}

	if c.apiKeys.OpenAI == "" {
		return nil, &ErrMissingAPIKey{Provider: "openai"}
	}

	c.openaiClient = openai.New(c.apiKeys.OpenAI)
	return c.openaiClient, nil
}

// getGoogleClient returns the Google client, initializing it if needed.
// Initialization failure is sticky; later calls return the same error.
func (c *Client) getGoogleClient(ctx context.Context) (*google.Client, error) {
	c.mu.RLock()
	if c.googleClient != nil {
		defer c.mu.RUnlock()
		return c.googleClient, nil
	}
	if c.googleInitErr != nil {
		defer c.mu.RUnlock()
		return nil, c.googleInitErr
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.googleClient != nil {
		return c.googleClient, nil
	}
	if c.googleInitErr != nil {
		return nil, c.googleInitErr
	}

	if c.apiKeys.Google == "" {
		return nil, &ErrMissingAPIKey{Provider: "google"}
	}

	client, err := google.New(ctx, c.apiKeys.Google)
	if err != nil {
		c.googleInitErr = fmt.Errorf("failed to initialize Google client: %w", err)
		return nil, c.googleInitErr
	}

	c.googleClient = client
	return c.googleClient, nil
}

// getChatProvider returns the backend for the configured provider.
func (c *Client) getChatProvider(ctx context.Context) (reagent.ChatProvider, error) {
	switch c.provider {
	case ProviderAnthropic:
		return c.getAnthropicClient()
	case ProviderOpenAI:
		return c.getOpenAIClient()
	case ProviderGoogle:
		return c.getGoogleClient(ctx)
	default:
		return nil, &ErrUnknownProvider{Provider: string(c.provider)}
	}
}

// Chat sends a conversation to the configured backend and returns a
// complete response. Transient errors are retried according to the
// client's retry configuration; permanent and user-input errors return
// immediately.
func (c *Client) Chat(ctx context.Context, messages []reagent.Message, opts ...reagent.Option) (*reagent.Response, error) {
	options := reagent.ApplyOptions(opts...)

	model := options.Model
	if model == "" && c.model != "" {
		model = c.model
		opts = append([]reagent.Option{reagent.WithModel(model)}, opts...)
	}

	chatProvider, err := c.getChatProvider(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	emit(c.events, Event{
		Type:     EventRequestStart,
		Provider: c.provider,
		Model:    model,
	})

	retryConfig := c.retryConfig
	retryConfig.OnRetry = func(attempt int, err error, delay time.Duration) {
		emit(c.events, Event{
			Type:     EventRetry,
			Provider: c.provider,
			Model:    model,
			Attempt:  attempt,
			Duration: delay,
			Error:    err,
		})
	}

	resp, err := retry.Do(ctx, retryConfig, func() (*reagent.Response, error) {
		return chatProvider.Chat(ctx, messages, opts...)
	})
	if err != nil {
		emit(c.events, Event{
			Type:     EventRequestError,
			Provider: c.provider,
			Model:    model,
			Duration: time.Since(start),
			Error:    err,
		})
		return nil, err
	}

	var usage *reagent.Usage
	if resp != nil {
		usage = &resp.Usage
	}
	emit(c.events, Event{
		Type:     EventRequestComplete,
		Provider: c.provider,
		Model:    model,
		Duration: time.Since(start),
		Usage:    usage,
	})
	return resp, nil
}
