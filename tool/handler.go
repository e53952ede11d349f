package tool

import (
	"context"

	"github.com/reagentkit/reagent"
)

// Handler executes one capability with validated arguments and returns the
// observation text, or an error that dispatch converts into an error
// observation. The context supports cancellation and timeout.
type Handler func(ctx context.Context, args reagent.Args) (string, error)

// TypedHandler executes a capability with arguments decoded into T.
type TypedHandler[T any] func(ctx context.Context, args T) (string, error)

// Registration pairs a tool descriptor with its handler for registration.
type Registration struct {
	Tool    reagent.Tool
	Handler Handler
}
