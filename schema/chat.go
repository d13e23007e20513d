package schema

// Input is a plain chat message schema for conversational agents.
type Input struct {
	Base
	// ChatMessage is the message sent by the user to the assistant
	ChatMessage string `json:"chat_message" jsonschema:"title=chat_message,description=The message sent by the user." validate:"required"`
}

func NewInput(msg string) *Input {
	return &Input{
		ChatMessage: msg,
	}
}

// Output is a plain chat reply schema for conversational agents.
type Output struct {
	Base
	// ChatMessage is the assistant reply
	ChatMessage string `json:"chat_message" jsonschema:"title=chat_message,description=The reply of the assistant." validate:"required"`
}

func NewOutput(msg string) *Output {
	return &Output{
		ChatMessage: msg,
	}
}

// CreateOutput returns an Output value, handy for seeding chat memory.
func CreateOutput(msg string) Output {
	return Output{
		ChatMessage: msg,
	}
}
