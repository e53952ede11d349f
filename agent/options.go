package agent

import (
	"github.com/rs/zerolog"

	"github.com/reagentkit/reagent"
)

// Options contains configuration for a run.
type Options struct {
	// MaxRounds limits the number of model calls per run. Default is 5.
	MaxRounds int

	// CompatMode rewrites tool turns as user turns on the wire, for
	// backends that reject a bare tool role.
	CompatMode bool

	// WorkDir is the directory whose file listing appears in the system
	// prompt. Default is the process working directory.
	WorkDir string

	// ParallelDispatch executes a round's invocations concurrently.
	// Observations are still appended in invocation order. Default is off.
	ParallelDispatch bool

	// PromptTemplate overrides the default system prompt template. It is
	// parsed as text/template with the fields of promptData available.
	PromptTemplate string

	// Logger receives per-round diagnostics. Default discards them.
	Logger zerolog.Logger

	// ChatOptions are passed through to the model provider on every call.
	ChatOptions []reagent.Option
}

// Option is a functional option for configuring a run.
type Option func(*Options)

// WithMaxRounds sets the round budget. Default is 5.
func WithMaxRounds(n int) Option {
	return func(o *Options) {
		o.MaxRounds = n
	}
}

// WithCompatMode enables user-role rewriting of tool turns on the wire.
func WithCompatMode(enabled bool) Option {
	return func(o *Options) {
		o.CompatMode = enabled
	}
}

// WithWorkDir sets the directory listed in the system prompt.
func WithWorkDir(dir string) Option {
	return func(o *Options) {
		o.WorkDir = dir
	}
}

// WithParallelDispatch enables concurrent dispatch within a round.
func WithParallelDispatch(enabled bool) Option {
	return func(o *Options) {
		o.ParallelDispatch = enabled
	}
}

// WithPromptTemplate overrides the system prompt template.
func WithPromptTemplate(tmpl string) Option {
	return func(o *Options) {
		o.PromptTemplate = tmpl
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = log
	}
}

// WithChatOptions passes options through to the model provider.
// These are applied to every model call the loop makes.
func WithChatOptions(opts ...reagent.Option) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, opts...)
	}
}

// WithModel is a convenience option to set the model for every call.
func WithModel(model string) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, reagent.WithModel(model))
	}
}

// ApplyOptions applies functional options over the defaults.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{
		MaxRounds: 5,
		WorkDir:   ".",
		Logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
