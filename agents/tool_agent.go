package agents

import (
	"context"
	"errors"

	"cenone/llm"
	"cenone/schema"
	"cenone/tools"
)

// ToolAgent wraps two agents around a tool call. The start agent turns user
// input into tool parameters, the tool runs, and the end agent turns the tool
// result into the final answer.
type ToolAgent[I schema.Schema, T schema.Schema, O schema.Schema] struct {
	start *Agent[I, T]
	end   *Agent[I, O]
	tool  tools.OrchestrationTool
}

// NewToolAgent returns a new ToolAgent instance
func NewToolAgent[I schema.Schema, T schema.Schema, O schema.Schema](options ...Option) *ToolAgent[I, T, O] {
	return &ToolAgent[I, T, O]{
		start: NewAgent[I, T](options...),
		end:   NewAgent[I, O](options...),
	}
}

func (t *ToolAgent[I, T, O]) SetTool(tool tools.OrchestrationTool) *ToolAgent[I, T, O] {
	t.tool = tool
	return t
}

func (t *ToolAgent[I, T, O]) Tool() tools.OrchestrationTool {
	return t.tool
}

func (t *ToolAgent[I, T, O]) Start() *Agent[I, T] {
	return t.start
}

func (t *ToolAgent[I, T, O]) End() *Agent[I, O] {
	return t.end
}

func (t *ToolAgent[I, T, O]) Name() string {
	return t.start.Name()
}

func (t *ToolAgent[I, T, O]) ResetMemory() {
	t.start.ResetMemory()
	t.end.ResetMemory()
}

// Run runs the chat agent with the given user input synchronously. Usage from
// both completions is accumulated into llmResp.
func (t *ToolAgent[I, T, O]) Run(ctx context.Context, userInput *I, output *O, llmResp *llm.Response) error {
	startResp := new(llm.Response)
	toolOutput := new(T)
	if err := t.start.Run(ctx, userInput, toolOutput, startResp); err != nil {
		return err
	}
	if t.tool != nil {
		toolResult, err := t.tool.RunOrchestration(ctx, toolOutput)
		if err != nil {
			return err
		}
		outO, ok := toolResult.(schema.Schema)
		if !ok {
			return errors.New("invalid agent output schema")
		}
		t.end.NewMessage(llm.SystemRole, outO)
	}
	if err := t.end.Run(ctx, userInput, output, llmResp); err != nil {
		return err
	}
	if llmResp != nil && startResp.Usage != nil {
		if llmResp.Usage == nil {
			llmResp.Usage = new(llm.Usage)
		}
		llmResp.Usage.Merge(startResp.Usage)
	}
	return nil
}

// RunForChain runs the chat agent with the given user input for a chain.
func (t *ToolAgent[I, T, O]) RunForChain(ctx context.Context, userInput any, llmResp *llm.Response) (any, error) {
	in, ok := userInput.(*I)
	if !ok {
		return nil, errors.New("invalid input schema")
	}
	out := new(O)
	if err := t.Run(ctx, in, out, llmResp); err != nil {
		return nil, err
	}
	return out, nil
}
