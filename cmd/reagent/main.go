// Command reagent runs a tool-using agent from the terminal.
//
// With -prompt it answers a single task and exits; without it, it reads
// tasks interactively from stdin. The conversation persists across
// interactive turns, so follow-up questions can reference earlier rounds.
//
// Usage:
//
//	go run ./cmd/reagent -prompt "What is 3*7+2?"
//	go run ./cmd/reagent -provider anthropic -debug
//
// API keys are read from the environment (or a .env file):
// ANTHROPIC_API_KEY, OPENAI_API_KEY, GOOGLE_API_KEY.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/reagentkit/reagent/agent"
	"github.com/reagentkit/reagent/client"
	"github.com/reagentkit/reagent/tool"
)

func main() {
	godotenv.Load()

	var (
		prompt    = flag.String("prompt", "", "task to run; empty starts an interactive session")
		provider  = flag.String("provider", "openai", "chat backend: anthropic, openai, or google")
		model     = flag.String("model", "", "model name; empty uses the backend default")
		maxRounds = flag.Int("max-rounds", 5, "maximum think-act rounds per task")
		workDir   = flag.String("workdir", ".", "working directory exposed to file tools")
		compat    = flag.Bool("compat", false, "fold tool observations into user turns for backends without a tool role")
		parallel  = flag.Bool("parallel", false, "dispatch tool calls concurrently")
		debug     = flag.Bool("debug", false, "verbose logging of rounds, parses, and retries")
	)
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger().Level(zerolog.WarnLevel)
	if *debug {
		logger = logger.Level(zerolog.DebugLevel)
	}

	registry := tool.NewRegistry()
	if err := registry.RegisterAll(tool.Builtins(tool.WithBaseDir(*workDir))...); err != nil {
		logger.Fatal().Err(err).Msg("failed to register builtin tools")
	}

	var events chan client.Event
	if *debug {
		events = make(chan client.Event, 100)
		go logEvents(logger, events)
	}

	c := client.New(client.Config{
		Provider: client.ProviderName(*provider),
		Model:    *model,
		APIKeys: client.APIKeys{
			Anthropic: os.Getenv("ANTHROPIC_API_KEY"),
			OpenAI:    os.Getenv("OPENAI_API_KEY"),
			Google:    os.Getenv("GOOGLE_API_KEY"),
		},
		Events: events,
	})

	a := agent.New(c, registry,
		agent.WithMaxRounds(*maxRounds),
		agent.WithWorkDir(*workDir),
		agent.WithCompatMode(*compat),
		agent.WithParallelDispatch(*parallel),
		agent.WithLogger(logger),
	)

	ctx := context.Background()

	if *prompt != "" {
		answer, err := a.Run(ctx, *prompt)
		if err != nil {
			logger.Fatal().Err(err).Msg("agent run failed")
		}
		fmt.Println(answer)
		return
	}

	runInteractive(ctx, a, logger)
}

func runInteractive(ctx context.Context, a *agent.Agent, logger zerolog.Logger) {
	fmt.Println("reagent - type a task, or 'exit' to quit")

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return
		}

		answer, err := a.Run(ctx, line)
		if err != nil {
			logger.Error().Err(err).Msg("agent run failed")
			continue
		}
		fmt.Println(answer)
	}
}

func logEvents(logger zerolog.Logger, events <-chan client.Event) {
	for e := range events {
		switch e.Type {
		case client.EventRetry:
			logger.Warn().
				Str("provider", e.Provider.String()).
				Int("attempt", e.Attempt).
				Dur("delay", e.Duration).
				Err(e.Error).
				Msg("retrying model call")
		case client.EventRequestComplete:
			ev := logger.Debug().
				Str("provider", e.Provider.String()).
				Dur("duration", e.Duration)
			if e.Usage != nil {
				ev = ev.Int("input_tokens", e.Usage.InputTokens).
					Int("output_tokens", e.Usage.OutputTokens)
			}
			ev.Msg("model call complete")
		case client.EventRequestError:
			logger.Debug().
				Str("provider", e.Provider.String()).
				Dur("duration", e.Duration).
				Err(e.Error).
				Msg("model call failed")
		}
	}
}
