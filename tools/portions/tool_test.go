package portions

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScaleExpression(t *testing.T) {
	tool := New()
	out := new(Output)
	err := tool.Run(context.Background(), NewInput("amount * guests / base_servings", 6, 12, map[string]interface{}{
		"amount": 250.0,
	}), out)
	require.NoError(t, err)
	result, ok := out.Result.(float64)
	require.True(t, ok)
	assert.InDelta(t, 500.0, result, 0.001)
}

func TestRunScaleParam(t *testing.T) {
	tool := New()
	out := new(Output)
	err := tool.Run(context.Background(), NewInput("scale", 8, 10, nil), out)
	require.NoError(t, err)
	assert.InDelta(t, 1.25, out.Result.(float64), 0.001)
}

func TestRunBadExpression(t *testing.T) {
	tool := New()
	out := new(Output)
	err := tool.Run(context.Background(), NewInput("amount *", 6, 12, nil), out)
	assert.Error(t, err)
}

func TestScale(t *testing.T) {
	assert.Equal(t, 2.0, Scale(6, 12))
	assert.Equal(t, 1.5, Scale(8, 10))
	assert.Equal(t, 1.0, Scale(0, 10))
	assert.Equal(t, 1.0, Scale(8, 8))
}

func ExampleTool_Run() {
	tool := New()
	out := new(Output)
	_ = tool.Run(context.Background(), NewInput("2+2", 0, 0, nil), out)
	fmt.Println(out.Result)
	// Output:
	// 4
}
