package portions

import (
	"context"
	"errors"
	"math"

	"github.com/Knetic/govaluate"

	"cenone/schema"
	"cenone/tools"
)

// Input asks for an arithmetic evaluation while planning quantities, e.g.
// scaling a recipe from its base servings to the guest count. The expression
// can reference base_servings, guests and any extra params.
type Input struct {
	schema.Base
	// Expression to evaluate, e.g. 'amount * guests / base_servings'
	Expression string `json:"expression" jsonschema:"title=expression,description=Arithmetic expression to evaluate. For example 'amount * guests / base_servings'."`
	// BaseServings the recipe was written for
	BaseServings int `json:"base_servings,omitempty" jsonschema:"title=base_servings,description=Servings the recipe yields as written."`
	// Guests attending the dinner
	Guests int `json:"guests,omitempty" jsonschema:"title=guests,description=Number of guests to scale for."`
	// Params holds any additional named values used by the expression
	Params map[string]interface{} `json:"params,omitempty" jsonschema:"title=params,description=Additional parameters for the expression."`
}

func NewInput(expression string, baseServings, guests int, params map[string]interface{}) *Input {
	return &Input{
		Expression:   expression,
		BaseServings: baseServings,
		Guests:       guests,
		Params:       params,
	}
}

// Output carries the evaluated result.
type Output struct {
	schema.Base
	// Result of the calculation
	Result interface{} `json:"result,omitempty" jsonschema:"title=result,description=Result of the calculation."`
}

// Tool evaluates portion scaling arithmetic for the menu creator.
type Tool struct {
	tools.Config
}

var (
	_ tools.Tool[Input, Output] = (*Tool)(nil)
	_ tools.OrchestrationTool   = (*Tool)(nil)
)

func New(opts ...tools.Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("PortionCalculatorTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Evaluate arithmetic expressions for scaling recipe quantities to the guest count.")
	}
	return ret
}

// Run executes the expression with base_servings, guests and scale bound as
// parameters.
func (t *Tool) Run(_ context.Context, input *Input, output *Output) error {
	exp, err := govaluate.NewEvaluableExpression(input.Expression)
	if err != nil {
		return err
	}
	params := make(map[string]interface{}, len(input.Params)+3)
	for k, v := range input.Params {
		params[k] = v
	}
	if input.BaseServings > 0 {
		params["base_servings"] = float64(input.BaseServings)
	}
	if input.Guests > 0 {
		params["guests"] = float64(input.Guests)
	}
	if input.BaseServings > 0 && input.Guests > 0 {
		params["scale"] = float64(input.Guests) / float64(input.BaseServings)
	}
	result, err := exp.Evaluate(params)
	if err != nil {
		return err
	}
	output.Result = result
	return nil
}

// RunOrchestration evaluates with untyped input for agent tool wiring.
func (t *Tool) RunOrchestration(ctx context.Context, input any) (any, error) {
	in, ok := input.(*Input)
	if !ok {
		return nil, errors.New("invalid tool input schema")
	}
	out := new(Output)
	if err := t.Run(ctx, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Scale returns how many batches of a recipe cover the guest count, rounded
// up to the next half batch.
func Scale(baseServings, guests int) float64 {
	if baseServings <= 0 || guests <= 0 {
		return 1
	}
	ratio := float64(guests) / float64(baseServings)
	return math.Ceil(ratio*2) / 2
}
