package extractor

import (
	"os"
	"testing"

	"contractlens/internal/errors"
	"contractlens/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadVault(t *testing.T) string {
	t.Helper()
	src, err := os.ReadFile("../../examples/vault.sol")
	require.NoError(t, err)
	return string(src)
}

func TestExtractSourceVault(t *testing.T) {
	src := loadVault(t)

	decls, err := Extract(src)
	require.NoError(t, err)
	assert.Equal(t, model.ModeSource, decls.Mode)

	require.NotNil(t, decls.Contract)
	assert.Equal(t, "Vault", decls.Contract.Name)
	assert.Equal(t, []string{"Ownable", "Pausable"}, decls.Contract.InheritsFrom)

	require.NotNil(t, decls.Pragma)
	assert.Equal(t, "^0.8.20", decls.Pragma.Expr)
	assert.Equal(t, "MIT", decls.License)

	require.Len(t, decls.Modifiers, 1)
	assert.Equal(t, "onlyAdmin", decls.Modifiers[0].Name)
	assert.Empty(t, decls.Modifiers[0].Params)

	assert.Equal(t, []string{"deposit", "withdraw", "setAdmin", "balanceOf", "_transfer"}, decls.FunctionNames())

	deposit := decls.Functions[0]
	assert.Equal(t, model.External, deposit.Visibility)
	assert.Equal(t, model.Payable, deposit.Mutability)
	assert.Empty(t, deposit.Modifiers)
	assert.Empty(t, deposit.Inputs)

	withdraw := decls.Functions[1]
	assert.Equal(t, []string{"onlyOwner"}, withdraw.Modifiers)
	assert.Equal(t, []model.Parameter{{Name: "amount", Type: "uint256"}}, withdraw.Inputs)
	assert.Equal(t, src[withdraw.Offset:], withdraw.Scope)
	assert.Equal(t, "withdraw", src[withdraw.NameOffset:withdraw.NameOffset+len("withdraw")])

	balanceOf := decls.Functions[3]
	assert.Equal(t, model.Public, balanceOf.Visibility)
	assert.Equal(t, model.View, balanceOf.Mutability)
	assert.Equal(t, []model.Parameter{{Name: "", Type: "uint256"}}, balanceOf.Outputs)

	transfer := decls.Functions[4]
	assert.Equal(t, model.Internal, transfer.Visibility)
	assert.Equal(t, []model.Parameter{
		{Name: "to", Type: "address"},
		{Name: "amount", Type: "uint256"},
	}, transfer.Inputs)

	require.Len(t, decls.Events, 2)
	assert.Equal(t, "Deposited", decls.Events[0].Name)
	assert.Equal(t, []model.Parameter{
		{Name: "from", Type: "address", Indexed: true},
		{Name: "amount", Type: "uint256"},
	}, decls.Events[0].Inputs)
	assert.False(t, decls.Events[0].Anonymous)

	require.Len(t, decls.StateVariables, 4)
	maxDeposit := decls.StateVariables[0]
	assert.Equal(t, "MAX_DEPOSIT", maxDeposit.Name)
	assert.Equal(t, "uint256", maxDeposit.Type)
	assert.Equal(t, "public", maxDeposit.Visibility)
	assert.True(t, maxDeposit.IsConstant)
	assert.Equal(t, "100 ether", maxDeposit.InitialValue)

	assert.Equal(t, "admin", decls.StateVariables[1].Name)
	assert.Equal(t, "totalDeposits", decls.StateVariables[2].Name)
	assert.Equal(t, "private", decls.StateVariables[2].Visibility)
	assert.Equal(t, "balances", decls.StateVariables[3].Name)
	assert.Equal(t, "mapping(address => uint256)", decls.StateVariables[3].Type)
}

func TestFunctionHeaderDefaults(t *testing.T) {
	decls := ExtractSource("contract Foo { function bar() public view returns (uint256) {} }")

	require.Len(t, decls.Functions, 1)
	bar := decls.Functions[0]
	assert.Equal(t, "bar", bar.Name)
	assert.Equal(t, model.Public, bar.Visibility)
	assert.Equal(t, model.View, bar.Mutability)
	assert.Equal(t, []model.Parameter{{Type: "uint256"}}, bar.Outputs)

	decls = ExtractSource("function plain(uint x) { }")
	require.Len(t, decls.Functions, 1)
	assert.Equal(t, model.Public, decls.Functions[0].Visibility)
	assert.Equal(t, model.NonPayable, decls.Functions[0].Mutability)
}

func TestFunctionSpecifiers(t *testing.T) {
	src := `function mint(address to, uint256 amount)
        external
        virtual
        override(ERC20, IMint)
        onlyRole(MINTER_ROLE)
        whenNotPaused
        returns (bool ok)
    {`
	decls := ExtractSource(src)

	require.Len(t, decls.Functions, 1)
	f := decls.Functions[0]
	assert.Equal(t, model.External, f.Visibility)
	assert.Equal(t, []string{"onlyRole", "whenNotPaused"}, f.Modifiers)
	assert.Equal(t, []model.Parameter{{Name: "ok", Type: "bool"}}, f.Outputs)
}

func TestBodilessFunction(t *testing.T) {
	decls := ExtractSource("interface IToken { function totalSupply() external view returns (uint256); }")

	require.Len(t, decls.Functions, 1)
	assert.Equal(t, "totalSupply", decls.Functions[0].Name)
	assert.Equal(t, model.External, decls.Functions[0].Visibility)
}

func TestAnonymousEvent(t *testing.T) {
	decls := ExtractSource("event Ping(uint256 indexed id, bytes) anonymous;")

	require.Len(t, decls.Events, 1)
	e := decls.Events[0]
	assert.True(t, e.Anonymous)
	assert.Equal(t, []model.Parameter{
		{Name: "id", Type: "uint256", Indexed: true},
		{Name: "", Type: "bytes"},
	}, e.Inputs)
}

func TestModifierWithParams(t *testing.T) {
	decls := ExtractSource("modifier onlyRole(bytes32 role) virtual { _; } modifier guarded { _; }")

	require.Len(t, decls.Modifiers, 2)
	assert.Equal(t, "onlyRole", decls.Modifiers[0].Name)
	assert.Equal(t, []model.Parameter{{Name: "role", Type: "bytes32"}}, decls.Modifiers[0].Params)
	assert.Equal(t, "guarded", decls.Modifiers[1].Name)
}

func TestStateVariableShapes(t *testing.T) {
	src := `contract S {
    // owner of the contract
    address payable public owner;
    uint256 constant FEE = 3;
    uint256[] internal history;
    public constant uint256 LEGACY = 7;
    uint256 local;
}`
	decls := ExtractSource(src)

	names := []string{}
	for _, v := range decls.StateVariables {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{"owner", "FEE", "history", "LEGACY"}, names)

	assert.Equal(t, "address payable", decls.StateVariables[0].Type)
	assert.Equal(t, "internal", decls.StateVariables[1].Visibility)
	assert.True(t, decls.StateVariables[1].IsConstant)
	assert.Equal(t, "uint256[]", decls.StateVariables[2].Type)

	legacy := decls.StateVariables[3]
	assert.Equal(t, "public", legacy.Visibility)
	assert.True(t, legacy.IsConstant)
	assert.Equal(t, "uint256", legacy.Type)
	assert.Equal(t, "7", legacy.InitialValue)
}

func TestLocalStatementsAreNotStateVariables(t *testing.T) {
	decls := ExtractSource(`function f() public { uint256 x = 1; return x; }`)
	assert.Empty(t, decls.StateVariables)
}

func TestExtractInterface(t *testing.T) {
	abi := `[
  {"type":"function","name":"get","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
  {"type":"constructor","inputs":[]},
  {"type":"event","name":"Set","inputs":[{"name":"value","type":"uint256","indexed":true}],"anonymous":false},
  {"type":"function","name":"fund","inputs":[],"outputs":[],"stateMutability":"payable"},
  "garbage",
  {"type":"function","name":"legacy","inputs":[],"constant":true},
  {"type":"function","name":"swap","inputs":[{"name":"route","type":"tuple[]","components":[{"name":"a","type":"address"},{"name":"n","type":"uint256"}]}]}
]`
	decls, err := Extract(abi)
	require.NoError(t, err)
	assert.Equal(t, model.ModeInterface, decls.Mode)
	assert.Nil(t, decls.Contract)

	assert.Equal(t, []string{"get", "fund", "legacy", "swap"}, decls.FunctionNames())

	get := decls.Functions[0]
	assert.Equal(t, model.View, get.Mutability)
	assert.Equal(t, model.Public, get.Visibility)
	assert.Empty(t, get.Modifiers)
	assert.NotNil(t, get.Modifiers)
	assert.Contains(t, get.Scope, `"name":"get"`)
	assert.Equal(t, "get", abi[get.NameOffset:get.NameOffset+3])

	assert.Equal(t, model.Payable, decls.Functions[1].Mutability)
	assert.Equal(t, model.View, decls.Functions[2].Mutability)
	assert.Equal(t, "(address,uint256)[]", decls.Functions[3].Inputs[0].Type)

	require.Len(t, decls.Events, 1)
	assert.Equal(t, "Set", decls.Events[0].Name)
	assert.True(t, decls.Events[0].Inputs[0].Indexed)
}

func TestDecodeEntryVariants(t *testing.T) {
	entry := DecodeEntry([]byte(`{"name":"implicit","inputs":[]}`))
	fn, ok := entry.(*FunctionEntry)
	require.True(t, ok)
	assert.Equal(t, model.NonPayable, fn.Mutability())

	assert.Nil(t, DecodeEntry([]byte(`{"type":"error","name":"Unauthorized"}`)))
	assert.Nil(t, DecodeEntry([]byte(`{"type":"function"}`)))
	assert.Nil(t, DecodeEntry([]byte(`42`)))

	entry = DecodeEntry([]byte(`{"type":"event","name":"E","inputs":[],"anonymous":true}`))
	ev, ok := entry.(*EventEntry)
	require.True(t, ok)
	require.NotNil(t, ev.Anonymous)
	assert.True(t, *ev.Anonymous)
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  string
	}{
		{"empty", "", errors.ErrorEmptyInput},
		{"whitespace", "  \n\t ", errors.ErrorEmptyInput},
		{"object", `{"type":"function","name":"f"}`, errors.ErrorNotInterfaceList},
		{"number", "42", errors.ErrorNotInterfaceList},
		{"prose", "hello world", errors.ErrorNoDeclarations},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls, err := Extract(tt.input)
			assert.Nil(t, decls)
			require.Error(t, err)

			formatErr, ok := err.(*errors.FormatError)
			require.True(t, ok)
			assert.Equal(t, tt.code, formatErr.Code)
		})
	}
}

func TestEmptyInterfaceList(t *testing.T) {
	decls, err := Extract("[]")
	require.NoError(t, err)
	assert.Empty(t, decls.Functions)
	assert.Empty(t, decls.Events)
}
