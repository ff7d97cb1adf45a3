package analyzer

import (
	"context"
	"testing"

	"contractlens/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeBatchIsolatesFailures(t *testing.T) {
	inputs := []Input{
		{Name: "Vault", Source: loadExample(t, "vault.sol")},
		{Name: "Blank", Source: "   "},
		{Name: "Prose", Source: "no contract here"},
		{Name: "", Source: "contract Named { function f() public {} }"},
	}

	result, err := New(Options{}).AnalyzeBatch(context.Background(), inputs, 2)
	require.NoError(t, err)
	require.NoError(t, result.Err())

	// Blank inputs are dropped, order is preserved.
	require.Len(t, result.Results, 3)
	assert.Equal(t, "Vault", result.Results[0].Name)
	assert.Equal(t, "Prose", result.Results[1].Name)

	require.NotNil(t, result.Results[0].Contract)
	assert.Equal(t, "Vault", result.Results[0].Contract.Name)

	assert.Nil(t, result.Results[1].Contract)
	var formatErr *errors.FormatError
	require.ErrorAs(t, result.Results[1].Err, &formatErr)
	assert.Equal(t, errors.ErrorNoDeclarations, formatErr.Code)

	// Without a display name the extracted name is kept.
	require.NotNil(t, result.Results[2].Contract)
	assert.Equal(t, "Named", result.Results[2].Contract.Name)

	assert.Len(t, result.Contracts(), 2)
	require.Len(t, result.Failures(), 1)
	assert.Equal(t, "Prose", result.Failures()[0].Name)
}

func TestAnalyzeBatchNameOverride(t *testing.T) {
	src := "contract Token { function mint() public {} }"
	inputs := []Input{
		{Name: "First", Source: src},
		{Name: "Second", Source: src},
	}

	result, err := New(Options{}).AnalyzeBatch(context.Background(), inputs, 0)
	require.NoError(t, err)

	first, second := result.Results[0].Contract, result.Results[1].Contract
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, "First", first.Name)
	assert.Equal(t, "Second", second.Name)
	assert.Equal(t, first.Functions, second.Functions)

	// The underlying analysis keeps the extracted name.
	require.NotNil(t, result.Results[0].Analysis)
	assert.Equal(t, "Token", result.Results[0].Analysis.Contract.Name)
	assert.Equal(t, []string{"mint"}, result.Results[1].Analysis.Declarations.FunctionNames())
}

func TestAnalyzeBatchAllFailed(t *testing.T) {
	inputs := []Input{
		{Name: "A", Source: "nothing"},
		{Name: "B", Source: `{"not":"a list"}`},
	}

	result, err := New(Options{}).AnalyzeBatch(context.Background(), inputs, 1)
	require.Error(t, err)
	assert.Equal(t, err, result.Err())

	var batchErr *errors.BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, errors.ErrorBatchFailed, batchErr.Code)
	assert.Len(t, batchErr.Failures, 2)
	assert.Contains(t, err.Error(), "Error analyzing A: ")
	assert.Contains(t, err.Error(), "Error analyzing B: ")
}

func TestAnalyzeBatchNothingToAnalyze(t *testing.T) {
	for _, inputs := range [][]Input{nil, {{Name: "A", Source: " \n "}}} {
		result, err := New(Options{}).AnalyzeBatch(context.Background(), inputs, 4)

		var batchErr *errors.BatchError
		require.ErrorAs(t, err, &batchErr)
		assert.Equal(t, errors.ErrorNothingToAnalyze, batchErr.Code)
		assert.Empty(t, result.Results)
	}
}

func TestAnalyzeBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inputs := []Input{{Name: "A", Source: "contract A {}"}}
	result, err := New(Options{}).AnalyzeBatch(ctx, inputs, 1)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, result.Results, 1)
	assert.ErrorIs(t, result.Results[0].Err, context.Canceled)
}
