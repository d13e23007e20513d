package agents

import (
	"context"
	"errors"

	"github.com/bububa/instructor-go"
	cohere "github.com/cohere-ai/cohere-go/v2"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"

	"cenone/llm"
	"cenone/schema"
	"cenone/systemprompt"
	"cenone/systemprompt/cot"
)

type IAgent interface {
	Name() string
}

// ChainableAgent is an agent which can participate in a Chain, taking and
// returning untyped schemas.
type ChainableAgent interface {
	IAgent
	RunForChain(context.Context, any, *llm.Response) (any, error)
}

type AgentSetter interface {
	SetClient(clt instructor.Instructor)
	SetMemory(m *llm.Memory)
	SetSystemPromptGenerator(g systemprompt.Generator)
	SetModel(model string)
	SetTemperature(temperature float32)
	SetMaxTokens(maxTokens int)
}

// Config represents general agent configuration
type Config struct {
	// client for interacting with the language model
	client instructor.Instructor
	// memory component for storing chat history
	memory *llm.Memory
	// systemPromptGenerator builds the system prompt for each completion
	systemPromptGenerator systemprompt.Generator
	// initialMemory is the state memory is restored to on reset
	initialMemory *llm.Memory
	// model llm model
	model string
	// temperature for response generation, typically ranging from 0 to 1
	temperature float32
	// maxTokens allowed in the response
	maxTokens int
	// name is the agent presentation name
	name string
}

// Agent provides the core functionality for structured chat interactions:
// managing memory, generating system prompts, and decoding typed responses
// from a language model.
type Agent[I schema.Schema, O schema.Schema] struct {
	Config
	startHook func(context.Context, *Agent[I, O], *I)
	endHook   func(context.Context, *Agent[I, O], *I, *O, *llm.Response)
	errorHook func(context.Context, *Agent[I, O], *I, *llm.Response, error)
}

// NewAgent initializes an Agent
func NewAgent[I schema.Schema, O schema.Schema](options ...Option) *Agent[I, O] {
	ret := new(Agent[I, O])
	for _, opt := range options {
		opt(&ret.Config)
	}
	if ret.memory == nil {
		ret.memory = llm.NewMemory(0)
	}
	if ret.systemPromptGenerator == nil {
		ret.systemPromptGenerator = cot.New()
	}
	ret.initialMemory = llm.NewMemory(0)
	ret.initialMemory.Copy(ret.memory)
	return ret
}

// ResetMemory resets the memory to its initial state
func (a *Agent[I, O]) ResetMemory() {
	a.memory.Reset()
	a.memory.Copy(a.initialMemory)
}

func (a *Agent[I, O]) SetClient(clt instructor.Instructor) {
	a.client = clt
}

func (a *Agent[I, O]) SetMemory(m *llm.Memory) {
	a.memory = m
}

func (a *Agent[I, O]) Memory() *llm.Memory {
	return a.memory
}

func (a *Agent[I, O]) SetSystemPromptGenerator(g systemprompt.Generator) {
	a.systemPromptGenerator = g
}

func (a *Agent[I, O]) SetModel(model string) {
	a.model = model
}

func (a *Agent[I, O]) SetTemperature(temperature float32) {
	a.temperature = temperature
}

func (a *Agent[I, O]) SetMaxTokens(maxTokens int) {
	a.maxTokens = maxTokens
}

func (a Agent[I, O]) Name() string {
	return a.name
}

func (a *Agent[I, O]) SetName(name string) {
	a.name = name
}

func (a *Agent[I, O]) SetStartHook(fn func(context.Context, *Agent[I, O], *I)) {
	a.startHook = fn
}

func (a *Agent[I, O]) SetEndHook(fn func(context.Context, *Agent[I, O], *I, *O, *llm.Response)) {
	a.endHook = fn
}

func (a *Agent[I, O]) SetErrorHook(fn func(context.Context, *Agent[I, O], *I, *llm.Response, error)) {
	a.errorHook = fn
}

// response obtains a structured response from the language model synchronously
func (a *Agent[I, O]) response(ctx context.Context, response *O, llmResp *llm.Response) error {
	messages := make([]llm.Message, 0, a.memory.MessageCount()+1)
	msg := llm.NewMessage(llm.SystemRole, schema.String(a.systemPromptGenerator.Generate()))
	messages = append(messages, *msg)
	messages = append(messages, a.memory.History()...)
	switch clt := a.client.(type) {
	case *instructor.InstructorOpenAI:
		chatReq := openai.ChatCompletionRequest{
			Model:       a.model,
			Temperature: a.temperature,
			MaxTokens:   a.maxTokens,
		}
		for _, msg := range messages {
			v := new(openai.ChatCompletionMessage)
			msg.ToOpenAI(v)
			chatReq.Messages = append(chatReq.Messages, *v)
		}
		if res, err := clt.CreateChatCompletion(ctx, chatReq, response); err != nil {
			return err
		} else if llmResp != nil {
			llmResp.FromOpenAI(&res)
		}
	case *instructor.InstructorAnthropic:
		chatReq := anthropic.MessagesRequest{
			Model:       anthropic.Model(a.model),
			Temperature: &a.temperature,
			MaxTokens:   a.maxTokens,
		}
		for _, msg := range messages {
			v := new(anthropic.Message)
			msg.ToAnthropic(v)
			chatReq.Messages = append(chatReq.Messages, *v)
		}
		if res, err := clt.CreateMessages(ctx, chatReq, response); err != nil {
			return err
		} else if llmResp != nil {
			llmResp.FromAnthropic(&res)
		}
	case *instructor.InstructorCohere:
		lastIdx := len(messages) - 1
		temperature := float64(a.temperature)
		chatReq := cohere.ChatRequest{
			Model:       &a.model,
			Temperature: &temperature,
			MaxTokens:   &a.maxTokens,
			Message:     schema.Stringify(messages[lastIdx].Content()),
		}
		for idx, msg := range messages {
			if idx >= lastIdx {
				break
			}
			v := new(cohere.Message)
			msg.ToCohere(v)
			chatReq.ChatHistory = append(chatReq.ChatHistory, v)
		}
		if res, err := clt.Chat(ctx, &chatReq, response); err != nil {
			return err
		} else if llmResp != nil {
			llmResp.FromCohere(res)
		}
	default:
		return errors.New("unsupported instructor client")
	}
	return nil
}

// Run runs the chat agent with the given user input synchronously.
func (a *Agent[I, O]) Run(ctx context.Context, userInput *I, output *O, llmResp *llm.Response) error {
	if fn := a.startHook; fn != nil {
		fn(ctx, a, userInput)
	}
	if userInput != nil {
		a.memory.NewTurn()
		a.memory.NewMessage(llm.UserRole, *userInput)
	}
	if err := a.response(ctx, output, llmResp); err != nil {
		if fn := a.errorHook; fn != nil {
			fn(ctx, a, userInput, llmResp, err)
		}
		return err
	}
	a.memory.NewMessage(llm.AssistantRole, *output)
	if fn := a.endHook; fn != nil {
		fn(ctx, a, userInput, output, llmResp)
	}
	return nil
}

// RunForChain runs the chat agent with the given user input for a chain.
func (a *Agent[I, O]) RunForChain(ctx context.Context, userInput any, llmResp *llm.Response) (any, error) {
	in, ok := userInput.(*I)
	if !ok {
		return nil, errors.New("invalid input schema")
	}
	out := new(O)
	if err := a.Run(ctx, in, out, llmResp); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Agent[I, O]) NewMessage(role llm.MessageRole, content schema.Schema) *llm.Message {
	return a.memory.NewMessage(role, content)
}

// SystemPromptContextProvider returns the generator's context provider by title
func (a *Agent[I, O]) SystemPromptContextProvider(title string) (systemprompt.ContextProvider, error) {
	return a.systemPromptGenerator.ContextProvider(title)
}

// RegisterSystemPromptContextProvider registers a new context provider
func (a *Agent[I, O]) RegisterSystemPromptContextProvider(provider systemprompt.ContextProvider) {
	a.systemPromptGenerator.AddContextProviders(provider)
}

// UnregisterSystemPromptContextProvider unregisters an existing context provider.
func (a *Agent[I, O]) UnregisterSystemPromptContextProvider(title string) {
	a.systemPromptGenerator.RemoveContextProviders(title)
}

// SystemPrompt returns the system prompt
func (a *Agent[I, O]) SystemPrompt() string {
	return a.systemPromptGenerator.Generate()
}
