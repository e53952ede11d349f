// Package client wraps the provider backends with retry and observability.
//
// The Client routes chat requests to a configured backend (Anthropic,
// OpenAI, or Google), retries transient failures with exponential
// backoff, and optionally emits operation events to a channel. It
// implements reagent.ChatProvider, so it drops in anywhere a bare
// provider does - most usefully as the provider handed to agent.New.
//
// # Basic Usage
//
// Create a client with an API key and a provider:
//
//	c := client.New(client.Config{
//	    Provider: client.ProviderAnthropic,
//	    APIKeys: client.APIKeys{
//	        Anthropic: os.Getenv("ANTHROPIC_API_KEY"),
//	    },
//	})
//
//	resp, err := c.Chat(ctx, []reagent.Message{
//	    reagent.NewUserMessage("Hello!"),
//	})
//
// # Retry Configuration
//
// Transient errors (rate limits, timeouts, 5xx responses) are retried
// automatically. Customize or disable retry behavior:
//
//	c := client.New(client.Config{
//	    Provider: client.ProviderOpenAI,
//	    APIKeys:  client.APIKeys{OpenAI: os.Getenv("OPENAI_API_KEY")},
//	    RetryConfig: &retry.Config{
//	        MaxAttempts:  3,
//	        InitialDelay: 500 * time.Millisecond,
//	        MaxDelay:     10 * time.Second,
//	    },
//	})
//
// # Events
//
// Observe requests and retries via an event channel:
//
//	events := make(chan client.Event, 100)
//	c := client.New(client.Config{
//	    Provider: client.ProviderOpenAI,
//	    APIKeys:  client.APIKeys{OpenAI: os.Getenv("OPENAI_API_KEY")},
//	    Events:   events,
//	})
//
//	go func() {
//	    for e := range events {
//	        fmt.Printf("[%s] %s took %v\n", e.Type, e.Provider, e.Duration)
//	    }
//	}()
package client
