package selector

import (
	"testing"

	"contractlens/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalType(t *testing.T) {
	tests := map[string]string{
		"uint":     "uint256",
		"int":      "int256",
		"uint[]":   "uint256[]",
		"uint[2]":  "uint256[2]",
		"uint8":    "uint8",
		"byte":     "bytes1",
		"bytes32":  "bytes32",
		"address":  "address",
		" string ": "string",
		"fixed":    "fixed128x18",
	}
	for input, expected := range tests {
		assert.Equal(t, expected, CanonicalType(input), input)
	}
}

func TestFunctionSelector(t *testing.T) {
	transfer := []model.Parameter{
		{Name: "to", Type: "address"},
		{Name: "amount", Type: "uint256"},
	}
	assert.Equal(t, "transfer(address,uint256)", Signature("transfer", transfer))
	assert.Equal(t, "0xa9059cbb", FunctionSelector("transfer", transfer))

	// Aliases hash like their canonical form.
	alias := []model.Parameter{{Type: "address"}, {Type: "uint"}}
	assert.Equal(t, "0xa9059cbb", FunctionSelector("transfer", alias))

	assert.Equal(t, "0x18160ddd", FunctionSelector("totalSupply", nil))
}

func TestEventTopic(t *testing.T) {
	inputs := []model.Parameter{
		{Name: "from", Type: "address", Indexed: true},
		{Name: "to", Type: "address", Indexed: true},
		{Name: "value", Type: "uint256"},
	}
	assert.Equal(t,
		"0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef",
		EventTopic("Transfer", inputs, false))
	assert.Equal(t, "", EventTopic("Transfer", inputs, true))
}
