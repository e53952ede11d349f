package reagent

import "context"

// ChatProvider is the model-call boundary: it sends an ordered list of turns
// and returns one complete response.
//
// Implementations wrap a concrete backend SDK (see the provider subpackages)
// and are free to support native tool calling or not; the parser handles both
// shapes. Retry and backoff belong to the transport side of this boundary
// (see the client package), never to the agent loop.
type ChatProvider interface {
	Chat(ctx context.Context, messages []Message, opts ...Option) (*Response, error)
}

// ChatProviderFunc adapts a function to the ChatProvider interface.
type ChatProviderFunc func(ctx context.Context, messages []Message, opts ...Option) (*Response, error)

// Chat implements ChatProvider.
func (f ChatProviderFunc) Chat(ctx context.Context, messages []Message, opts ...Option) (*Response, error) {
	return f(ctx, messages, opts...)
}
