// Package reagent is the execution core of a tool-augmented conversational
// agent: a bounded think-act-observe loop over a chat-completion backend.
//
// The root package defines the shared data model — turns, conversations,
// invocations, tools, chat options and the categorized error taxonomy —
// plus the [ChatProvider] boundary that backend clients implement.
//
// # Components
//
//   - [Conversation]: an append-only log of role-tagged turns with a
//     read-only wire projection, including a compatibility mode for backends
//     that reject a bare tool role.
//   - [github.com/reagentkit/reagent/parse]: recovers structured invocations
//     from model output arriving in several incompatible shapes (native
//     tool-call fields, anchored or bare embedded JSON, legacy tagged
//     function syntax).
//   - [github.com/reagentkit/reagent/tool]: the capability registry and
//     dispatcher; every dispatch outcome, including failure, becomes one
//     observation.
//   - [github.com/reagentkit/reagent/agent]: the round-budgeted loop that
//     ties the three together.
//
// # Basic Usage
//
//	registry := tool.NewRegistry().Add(tool.NewCalculatorTool(), tool.NewSearchTool())
//
//	a := agent.New(provider, registry, agent.WithMaxRounds(5))
//	answer, err := a.Run(ctx, "what is 3*7+2?")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(answer)
//
// Backend clients live under provider/ (OpenAI, Anthropic, Google); wrap one
// in [github.com/reagentkit/reagent/client] for retry with backoff. External
// MCP servers can contribute capabilities through
// [github.com/reagentkit/reagent/mcp].
package reagent
