package tools

import (
	"context"

	"cenone/schema"
)

type ITool interface {
	SetTitle(string)
	Title() string
	SetDescription(string)
	Description() string
}

// Tool is a typed tool taking an input schema and filling an output schema.
type Tool[I schema.Schema, O schema.Schema] interface {
	ITool
	Run(context.Context, *I, *O) error
}

// OrchestrationTool runs with untyped parameters so agents can hand tool
// outputs straight to a tool without knowing its concrete schemas.
type OrchestrationTool interface {
	ITool
	RunOrchestration(context.Context, any) (any, error)
}
