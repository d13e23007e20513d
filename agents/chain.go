package agents

import (
	"context"
	"errors"

	"cenone/llm"
	"cenone/schema"
)

// Chain runs a sequence of agents, feeding each agent's output to the next.
type Chain[I schema.Schema, O schema.Schema] struct {
	agents []ChainableAgent
}

// NewChain returns a new Chain instance
func NewChain[I schema.Schema, O schema.Schema](agents ...ChainableAgent) *Chain[I, O] {
	return &Chain[I, O]{
		agents: agents,
	}
}

// Run runs the chained agents with the given user input synchronously.
func (c *Chain[I, O]) Run(ctx context.Context, input *I, output *O) ([]llm.Response, error) {
	l := len(c.agents)
	respList := make([]llm.Response, 0, l)
	var (
		in  any = input
		out any
	)
	for _, agent := range c.agents {
		llmResp := new(llm.Response)
		ret, err := agent.RunForChain(ctx, in, llmResp)
		if err != nil {
			return respList, err
		}
		in = ret
		out = ret
		respList = append(respList, *llmResp)
	}
	outO, ok := out.(*O)
	if !ok {
		return respList, errors.New("invalid output schema")
	}
	*output = *outO
	return respList, nil
}

// RunForChain allows a Chain to act as a single chainable agent.
func (c *Chain[I, O]) RunForChain(ctx context.Context, input any, llmResp *llm.Response) (any, error) {
	in, ok := input.(*I)
	if !ok {
		return nil, errors.New("invalid input schema")
	}
	out := new(O)
	respList, err := c.Run(ctx, in, out)
	if err != nil {
		return nil, err
	}
	for _, v := range respList {
		if v.Usage == nil {
			continue
		}
		if llmResp.Usage == nil {
			llmResp.Usage = new(llm.Usage)
		}
		llmResp.Usage.Merge(v.Usage)
	}
	return out, nil
}
