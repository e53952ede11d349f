// Package agent implements the think-act-observe loop over a model
// provider and a capability registry.
//
// Each round the agent renders a system prompt embedding the live tool
// catalog, sends it with the conversation to the model, parses the reply
// for invocations, dispatches them, and appends each result as an
// observation. The loop ends when the model emits a final-answer marker
// with no invocations, or when the round budget runs out.
//
// # Basic Usage
//
//	registry := tool.NewRegistry().Add(tool.Builtins()...)
//
//	a := agent.New(provider, registry,
//	    agent.WithMaxRounds(5),
//	    agent.WithModel("gpt-4o-mini"),
//	)
//
//	answer, err := a.Run(ctx, "what is 3*7+2?")
//
// A transport failure calling the model ends the run with that error;
// wrap the provider with package client for retry with backoff. Every
// dispatch failure is absorbed into the conversation as an observation
// the model can react to.
package agent
