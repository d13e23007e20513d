package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cenone/llm"
	"cenone/schema"
)

type upperAgent struct{}

func (a upperAgent) Name() string { return "upper" }

func (a upperAgent) RunForChain(ctx context.Context, input any, llmResp *llm.Response) (any, error) {
	in, ok := input.(*schema.String)
	if !ok {
		return nil, errors.New("invalid input schema")
	}
	llmResp.Usage = &llm.Usage{InputTokens: 5, OutputTokens: 2}
	out := schema.String("<" + string(*in) + ">")
	return &out, nil
}

type failingAgent struct{}

func (a failingAgent) Name() string { return "failing" }

func (a failingAgent) RunForChain(ctx context.Context, input any, llmResp *llm.Response) (any, error) {
	return nil, errors.New("boom")
}

func TestChainRun(t *testing.T) {
	chain := NewChain[schema.String, schema.String](upperAgent{}, upperAgent{})
	in := schema.String("hi")
	var out schema.String
	resps, err := chain.Run(context.Background(), &in, &out)
	require.NoError(t, err)
	assert.Equal(t, schema.String("<<hi>>"), out)
	assert.Len(t, resps, 2)
}

func TestChainRunStopsOnError(t *testing.T) {
	chain := NewChain[schema.String, schema.String](upperAgent{}, failingAgent{}, upperAgent{})
	in := schema.String("hi")
	var out schema.String
	resps, err := chain.Run(context.Background(), &in, &out)
	require.Error(t, err)
	assert.Len(t, resps, 1)
}

func TestChainRunForChainMergesUsage(t *testing.T) {
	chain := NewChain[schema.String, schema.String](upperAgent{}, upperAgent{})
	in := schema.String("hi")
	llmResp := new(llm.Response)
	out, err := chain.RunForChain(context.Background(), &in, llmResp)
	require.NoError(t, err)
	require.NotNil(t, llmResp.Usage)
	assert.Equal(t, 10, llmResp.Usage.InputTokens)
	assert.Equal(t, 4, llmResp.Usage.OutputTokens)
	assert.Equal(t, schema.String("<<hi>>"), *out.(*schema.String))
}

func TestNewAgentDefaults(t *testing.T) {
	agent := NewAgent[schema.Input, schema.Output](WithName("test_agent"))
	assert.Equal(t, "test_agent", agent.Name())
	assert.NotNil(t, agent.Memory())
	assert.NotEmpty(t, agent.SystemPrompt())
}

func TestAgentResetMemory(t *testing.T) {
	agent := NewAgent[schema.Input, schema.Output]()
	agent.NewMessage(llm.UserRole, schema.String("hello"))
	assert.Equal(t, 1, agent.Memory().MessageCount())
	agent.ResetMemory()
	assert.Equal(t, 0, agent.Memory().MessageCount())
}
