package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var vaultPath = filepath.Join("..", "..", "examples", "vault.sol")

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"-no-color"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTextOutput(t *testing.T) {
	code, stdout, stderr := runCLI(t, vaultPath)
	require.Equal(t, 0, code, stderr)

	// the file name replaces the contract name
	assert.True(t, strings.HasPrefix(stdout, "vault ("), stdout)
	assert.Contains(t, stdout, "version:  ^0.8.20")
	assert.Contains(t, stdout, "inherits: Ownable, Pausable")
	assert.Contains(t, stdout, "0xd0e30db0 deposit external payable [user]")
	assert.Contains(t, stdout, "modifiers: onlyOwner")
	assert.Contains(t, stdout, "Deposited emitted by")
	assert.Contains(t, stdout, "warning[S0001]: Payable function 'deposit' found")
	assert.Contains(t, stdout, "vault.sol:18:14")
	assert.Contains(t, stdout, "Analyzed 1 of 1 inputs")
	assert.NotContains(t, stdout, "Call cycles")
}

func TestTextOutputCallCycles(t *testing.T) {
	path := writeFile(t, "pingpong.sol", `contract P {
    function ping() public { pong(); }
    function pong() public { ping(); }
}`)

	code, stdout, _ := runCLI(t, path)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Call cycles\n  ping, pong\n")
}

func TestJSONOutput(t *testing.T) {
	code, stdout, stderr := runCLI(t, "-format", "json", "-diagram", "state", vaultPath)
	require.Equal(t, 0, code, stderr)

	var out struct {
		File     string `json:"file"`
		Contract struct {
			Name      string `json:"name"`
			Functions []struct {
				Name string `json:"name"`
			} `json:"functions"`
		} `json:"contract"`
		Diagram struct {
			Nodes []struct {
				ID   string `json:"id"`
				Kind string `json:"kind"`
			} `json:"nodes"`
		} `json:"diagram"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))

	assert.Equal(t, vaultPath, out.File)
	assert.Equal(t, "vault", out.Contract.Name)
	assert.Len(t, out.Contract.Functions, 5)
	require.NotEmpty(t, out.Diagram.Nodes)
	assert.Equal(t, "state-0", out.Diagram.Nodes[0].ID)
}

func TestMermaidOutput(t *testing.T) {
	code, stdout, stderr := runCLI(t, "-format", "mermaid", vaultPath)
	require.Equal(t, 0, code, stderr)

	assert.True(t, strings.HasPrefix(stdout, "%% "+vaultPath+"\nflowchart TD\n"), stdout)
	assert.Contains(t, stdout, "contract[")
}

func TestMermaidFunctionFlow(t *testing.T) {
	code, stdout, stderr := runCLI(t, "-format", "mermaid", "-function", "1", vaultPath)
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "withdraw")
	assert.Contains(t, stdout, "input_0 -.-> function")
	assert.Contains(t, stdout, "function -.-> modifier_0")
}

func TestUnknownFunction(t *testing.T) {
	code, _, stderr := runCLI(t, "-format", "json", "-function", "99", vaultPath)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "E0301")
}

func TestAllInputsFail(t *testing.T) {
	path := writeFile(t, "prose.sol", "nothing to see here")

	code, stdout, stderr := runCLI(t, path)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "error[E0102]")
	assert.Contains(t, stderr, "prose.sol")
	assert.Contains(t, stderr, "Analysis failed")
}

func TestPartialFailure(t *testing.T) {
	bad := writeFile(t, "bad.json", `{"type":"function"}`)

	code, stdout, stderr := runCLI(t, bad, vaultPath)
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "error[E0101]")
	assert.Contains(t, stdout, "Analyzed 1 of 2 inputs")
}

func TestOnlyEmptyFiles(t *testing.T) {
	path := writeFile(t, "empty.sol", "  \n")

	code, _, stderr := runCLI(t, path)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "No contracts to analyze")
}

func TestInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no files", nil},
		{"bad format", []string{"-format", "yaml", vaultPath}},
		{"bad diagram", []string{"-diagram", "sequence", vaultPath}},
		{"missing file", []string{filepath.Join(t.TempDir(), "missing.sol")}},
		{"missing config", []string{"-config", filepath.Join(t.TempDir(), "none.yaml"), vaultPath}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.NotEmpty(t, stderr)
		})
	}
}

func TestInputName(t *testing.T) {
	assert.Equal(t, "vault", inputName("examples/vault.sol"))
	assert.Equal(t, "Token.abi", inputName("/tmp/Token.abi.json"))
	assert.Equal(t, "README", inputName("README"))
}
