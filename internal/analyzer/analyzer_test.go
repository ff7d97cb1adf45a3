package analyzer

import (
	"os"
	"strings"
	"testing"

	"contractlens/internal/errors"
	"contractlens/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadExample(t *testing.T, name string) string {
	t.Helper()
	src, err := os.ReadFile("../../examples/" + name)
	require.NoError(t, err)
	return string(src)
}

// checkIntegrity asserts the model properties that must hold for every input.
func checkIntegrity(t *testing.T, c *model.AnalyzedContract) {
	t.Helper()

	names := map[string]bool{}
	for _, f := range c.Functions {
		names[f.Name] = true
	}
	known := func(kind string, refs []string) {
		for _, r := range refs {
			assert.True(t, names[r], "%s references unknown function %q", kind, r)
		}
	}

	for _, f := range c.Functions {
		assert.NotEmpty(t, f.Roles, "roles of %s", f.Name)
		assert.Equal(t, model.DeriveFlowCategory(f.Roles, f.Mutability), f.FlowCategory)
		assert.Equal(t, f.Mutability == model.Payable, f.IsPayable)
		assert.Equal(t, model.FunctionKind, f.Kind)
		known("calls", f.Calls)
	}
	for _, v := range c.StateVariables {
		known("readBy", v.ReadBy)
		known("writtenBy", v.WrittenBy)
	}
	for _, e := range c.Events {
		known("emittedBy", e.EmittedBy)
	}
	for _, r := range c.Roles {
		known("role "+r.Name, r.Functions)
		assert.Empty(t, r.Permissions)
	}
	for _, s := range c.SecurityFindings {
		known("finding", s.AffectedFunctions)
	}

	assert.Equal(t, model.AnyFunctionHasRole(c.Functions, model.RoleOwner), c.HasOwnership)
	assert.Equal(t, model.AnyFunctionHasRole(c.Functions, model.RoleAdmin), c.HasAccessControl)
}

func TestScenarioViewFunction(t *testing.T) {
	c, err := Analyze("contract Foo { function bar() public view returns (uint256) {} }")
	require.NoError(t, err)
	checkIntegrity(t, c)

	assert.Equal(t, "Foo", c.Name)
	require.Len(t, c.Functions, 1)
	bar := c.Functions[0]
	assert.Equal(t, "bar", bar.Name)
	assert.Equal(t, model.Public, bar.Visibility)
	assert.Equal(t, model.View, bar.Mutability)
	assert.Equal(t, []string{"user"}, bar.Roles)
	assert.Equal(t, model.FlowSystem, bar.FlowCategory)
	assert.False(t, c.HasOwnership)
}

func TestScenarioOwnerGuard(t *testing.T) {
	src := `contract Guarded {
    function sweep(address to) external {
        require(msg.sender == owner);
        onlyOwner;
    }
}`
	c, err := Analyze(src)
	require.NoError(t, err)
	checkIntegrity(t, c)

	require.Len(t, c.Functions, 1)
	assert.Contains(t, c.Functions[0].Roles, model.RoleOwner)
	assert.Equal(t, model.FlowOwner, c.Functions[0].FlowCategory)
	assert.True(t, c.HasOwnership)
}

func TestScenarioSelfDestruct(t *testing.T) {
	src := `contract K {
    function a() public {}
    function kill() public { selfdestruct(payable(msg.sender)); }
    function b() public {}
}`
	c, err := Analyze(src)
	require.NoError(t, err)
	checkIntegrity(t, c)

	var high []model.SecurityFinding
	for _, f := range c.SecurityFindings {
		if f.Severity == model.High {
			high = append(high, f)
		}
	}
	require.Len(t, high, 1)
	assert.Equal(t, []string{"a", "kill"}, high[0].AffectedFunctions)
}

func TestScenarioInterfaceList(t *testing.T) {
	abi := `[{"type":"function","name":"get","inputs":[],"outputs":[{"type":"uint256"}],"stateMutability":"view"}]`

	c, err := New(Options{}).AnalyzeInterface(abi)
	require.NoError(t, err)
	checkIntegrity(t, c)

	assert.Equal(t, model.ModeInterface, c.Mode)
	assert.Equal(t, DefaultContractName, c.Name)
	assert.Equal(t, UnknownVersion, c.Version)
	assert.Empty(t, c.StateVariables)
	assert.Empty(t, c.InheritsFrom)

	require.Len(t, c.Functions, 1)
	get := c.Functions[0]
	assert.Equal(t, "get", get.Name)
	assert.Empty(t, get.Modifiers)
	assert.Equal(t, model.Public, get.Visibility)
	assert.Equal(t, model.View, get.Mutability)
	assert.Equal(t, []model.Parameter{{Type: "uint256"}}, get.Outputs)
	assert.Equal(t, "0x6d4ce63c", get.Selector)

	// The probe picks the same mode on its own.
	detected, err := Analyze(abi)
	require.NoError(t, err)
	assert.Equal(t, c, detected)
}

func TestScenarioEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t\n"} {
		c, err := Analyze(input)
		assert.Nil(t, c)

		var formatErr *errors.FormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, errors.ErrorEmptyInput, formatErr.Code)
	}
}

func TestAnalyzeVault(t *testing.T) {
	c, err := Analyze(loadExample(t, "vault.sol"))
	require.NoError(t, err)
	checkIntegrity(t, c)

	assert.Equal(t, "Vault", c.Name)
	assert.Equal(t, model.ModeSource, c.Mode)
	assert.Equal(t, "^0.8.20", c.Version)
	assert.Equal(t, []model.VersionRange{{Comparators: []model.VersionComparator{{Operator: "^", Version: "0.8.20"}}}}, c.VersionConstraints)
	assert.Equal(t, "MIT", c.License)
	assert.Equal(t, []string{"Ownable", "Pausable"}, c.InheritsFrom)
	assert.Equal(t, []string{"onlyAdmin"}, c.Modifiers)

	require.Len(t, c.Functions, 5)
	deposit, withdraw, setAdmin, balanceOf, transfer := c.Functions[0], c.Functions[1], c.Functions[2], c.Functions[3], c.Functions[4]

	assert.Equal(t, "0xd0e30db0", deposit.Selector)
	assert.Equal(t, "0x2e1a7d4d", withdraw.Selector)
	assert.Equal(t, "0x70a08231", balanceOf.Selector)

	assert.True(t, deposit.IsPayable)
	assert.Equal(t, []string{"withdraw", "setAdmin", "balanceOf", "_transfer"}, deposit.Calls)
	assert.Equal(t, []string{"setAdmin", "balanceOf", "_transfer"}, withdraw.Calls)
	assert.Equal(t, []string{"_transfer"}, balanceOf.Calls)
	assert.Empty(t, transfer.Calls)

	assert.Equal(t, []string{"owner", "user"}, deposit.Roles)
	assert.Equal(t, []string{"owner", "admin", "user"}, setAdmin.Roles)
	assert.Equal(t, []string{"user"}, balanceOf.Roles)
	assert.Equal(t, model.FlowSystem, balanceOf.FlowCategory)
	assert.Equal(t, model.FlowUser, transfer.FlowCategory)
	assert.Equal(t, model.FlowOwner, setAdmin.FlowCategory)

	assert.Equal(t, []model.RoleRecord{
		{Name: "owner", Permissions: []string{}, Functions: []string{"deposit", "withdraw", "setAdmin"}},
		{Name: "user", Permissions: []string{}, Functions: []string{"deposit", "withdraw", "setAdmin", "balanceOf", "_transfer"}},
		{Name: "admin", Permissions: []string{}, Functions: []string{"setAdmin"}},
	}, c.Roles)
	assert.True(t, c.HasOwnership)
	assert.True(t, c.HasAccessControl)

	require.Len(t, c.Events, 2)
	assert.Equal(t, c.FunctionNames(), c.Events[0].EmittedBy)
	assert.True(t, strings.HasPrefix(c.Events[0].Topic, "0x"))
	assert.Len(t, c.Events[0].Topic, 66)

	require.Len(t, c.StateVariables, 4)
	admin := c.StateVariables[1]
	assert.Equal(t, "admin", admin.Name)
	assert.Equal(t, []string{"deposit", "withdraw", "setAdmin"}, admin.ReadBy)
	assert.Equal(t, []string{"deposit", "withdraw", "setAdmin"}, admin.WrittenBy)
	assert.Equal(t, []string{"deposit"}, c.StateVariables[2].WrittenBy)

	require.Len(t, c.SecurityFindings, 1)
	assert.Equal(t, model.Medium, c.SecurityFindings[0].Severity)
	assert.Equal(t, []string{"deposit"}, c.SecurityFindings[0].AffectedFunctions)
}

func TestIdempotence(t *testing.T) {
	inputs := []string{
		loadExample(t, "vault.sol"),
		"contract Foo { function bar() public view returns (uint256) {} }",
		`[{"type":"function","name":"f","inputs":[{"name":"a","type":"uint"}]},{"type":"event","name":"E","inputs":[]}]`,
	}
	for _, input := range inputs {
		first, err := Analyze(input)
		require.NoError(t, err)
		second, err := Analyze(input)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		checkIntegrity(t, first)
	}
}

func TestDuplicateNamesAreKept(t *testing.T) {
	c, err := Analyze(`function f(uint a) public {} function f(uint a, uint b) public {}`)
	require.NoError(t, err)
	checkIntegrity(t, c)

	require.Len(t, c.Functions, 2)
	assert.Equal(t, "f", c.Functions[0].Name)
	assert.Equal(t, "f", c.Functions[1].Name)
	assert.NotEqual(t, c.Functions[0].Selector, c.Functions[1].Selector)
	assert.Equal(t, []string{"f", "f"}, c.Roles[0].Functions)
}

func TestUnparsablePragma(t *testing.T) {
	c, err := Analyze("pragma solidity latest;")
	require.NoError(t, err)
	assert.Equal(t, "latest", c.Version)
	assert.Empty(t, c.VersionConstraints)
}

func TestAnalyzeSourceAndInterfaceErrors(t *testing.T) {
	a := New(Options{})

	_, err := a.AnalyzeSource("just words")
	var formatErr *errors.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, errors.ErrorNoDeclarations, formatErr.Code)

	_, err = a.AnalyzeInterface("contract A {}")
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, errors.ErrorNotInterfaceList, formatErr.Code)

	_, err = a.AnalyzeInterface(`{"type":"function"}`)
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, errors.ErrorNotInterfaceList, formatErr.Code)
}

func TestMaxInputBytes(t *testing.T) {
	a := New(Options{MaxInputBytes: 16})

	_, err := a.Analyze("contract Foo { function bar() public {} }")
	var formatErr *errors.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, errors.ErrorInputTooLarge, formatErr.Code)

	c, err := a.Analyze("contract Foo {}")
	require.NoError(t, err)
	assert.Equal(t, "Foo", c.Name)
}
