package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/reagentkit/reagent"
	"github.com/reagentkit/reagent/parse"
	"github.com/reagentkit/reagent/tool"
)

// FinalAnswerMarker signals successful termination when it appears in a
// model reply that carries no invocations. Matched case-insensitively.
const FinalAnswerMarker = "final_answer"

// ExhaustionMessage is returned when the round budget runs out without a
// final answer.
const ExhaustionMessage = "Reached the maximum number of rounds; the task may be incomplete."

// Agent drives one conversation through the think-act-observe loop: call
// the model, parse its reply for invocations, dispatch them, feed the
// observations back, and stop on a final answer or an exhausted budget.
//
// An Agent owns its Conversation and must not run twice concurrently; the
// registry it holds is read-only during runs and safely shareable across
// agents.
type Agent struct {
	provider reagent.ChatProvider
	registry *tool.Registry
	parser   *parse.Parser
	opts     *Options

	mu     sync.Mutex
	conv   *reagent.Conversation
	state  State
	rounds int
}

// New creates an Agent over a model provider and a capability registry.
func New(provider reagent.ChatProvider, registry *tool.Registry, opts ...Option) *Agent {
	options := ApplyOptions(opts...)
	return &Agent{
		provider: provider,
		registry: registry,
		parser:   parse.New(parse.WithLogger(options.Logger)),
		opts:     options,
		conv:     reagent.NewConversation(),
		state:    StateThinking,
	}
}

// Run processes one user input to completion and returns the final answer,
// or the exhaustion message when the round budget runs out first. A model
// transport failure ends the run immediately with that error; retry belongs
// to the transport client, not here.
func (a *Agent) Run(ctx context.Context, input string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.conv.AppendUser(input)
	chatOpts := append([]reagent.Option{reagent.WithTools(a.registry.Tools())}, a.opts.ChatOptions...)

	for round := 1; round <= a.opts.MaxRounds; round++ {
		a.state = StateThinking
		a.rounds = round
		a.opts.Logger.Debug().Int("round", round).Int("budget", a.opts.MaxRounds).Msg("entering round")

		if err := ctx.Err(); err != nil {
			return "", err
		}

		system, err := renderSystemPrompt(a.opts.PromptTemplate, a.registry.Specs(), a.opts.WorkDir)
		if err != nil {
			return "", err
		}

		turns := append([]reagent.Message{reagent.NewSystemMessage(system)}, a.conv.Wire(a.opts.CompatMode)...)
		response, err := a.provider.Chat(ctx, turns, chatOpts...)
		if err != nil {
			return "", fmt.Errorf("agent: model call failed on round %d: %w", round, err)
		}

		invocations := a.parser.Parse(response)

		// The transcript always records the model's words verbatim,
		// whether or not anything was parsed out of them.
		a.conv.AppendAssistant(response.Content, invocations...)

		if len(invocations) > 0 {
			a.state = StateActing
			a.opts.Logger.Debug().Int("invocations", len(invocations)).Msg("dispatching")
			if err := a.dispatch(ctx, invocations); err != nil {
				return "", err
			}
			continue
		}

		if strings.Contains(strings.ToLower(response.Content), FinalAnswerMarker) {
			a.state = StateDone
			a.opts.Logger.Debug().Int("rounds", round).Msg("final answer")
			return response.Content, nil
		}
	}

	a.state = StateExhausted
	a.opts.Logger.Debug().Int("rounds", a.rounds).Msg("round budget exhausted")
	return ExhaustionMessage, nil
}

// dispatch executes the round's invocations and appends one observation per
// invocation, in invocation order. When the context is already cancelled the
// observations are synthesized from the cancellation so the assistant turn
// is never left without its matching tool turns.
func (a *Agent) dispatch(ctx context.Context, invocations []reagent.Invocation) error {
	if err := ctx.Err(); err != nil {
		for _, inv := range invocations {
			a.conv.AppendToolResult(inv.Name, inv.ID, fmt.Sprintf("tool %q was not executed: %v", inv.Name, err))
		}
		return err
	}

	results := make([]reagent.ToolResult, len(invocations))
	if a.opts.ParallelDispatch && len(invocations) > 1 {
		var wg sync.WaitGroup
		for i, inv := range invocations {
			wg.Add(1)
			go func(idx int, inv reagent.Invocation) {
				defer wg.Done()
				results[idx] = a.registry.Execute(ctx, inv)
			}(i, inv)
		}
		wg.Wait()
	} else {
		for i, inv := range invocations {
			results[i] = a.registry.Execute(ctx, inv)
		}
	}

	for i, result := range results {
		a.conv.AppendToolResult(result.ToolName, invocations[i].ID, result.Content)
	}
	return nil
}

// Reset clears the conversation so the agent can serve an unrelated run.
func (a *Agent) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.conv.Clear()
	a.state = StateThinking
	a.rounds = 0
}

// Conversation returns the transcript so far.
func (a *Agent) Conversation() []reagent.Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.conv.Messages()
}

// State returns the loop's current phase.
func (a *Agent) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Rounds returns how many rounds the last run used.
func (a *Agent) Rounds() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rounds
}
