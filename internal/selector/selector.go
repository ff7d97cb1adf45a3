// Package selector computes function selectors and event topics from
// canonical signatures.
package selector

import (
	"regexp"
	"strings"

	"contractlens/internal/model"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// elementary type names with an implicit size: uint -> uint256
var implicitSize = regexp.MustCompile(`^(uint|int|ufixed|fixed|byte)(\[.*)?$`)

// CanonicalType expands type aliases to the form used in signatures.
// Example: "uint[]" -> "uint256[]", "byte" -> "bytes1"
func CanonicalType(t string) string {
	t = strings.TrimSpace(t)
	m := implicitSize.FindStringSubmatch(t)
	if m == nil {
		return t
	}
	switch m[1] {
	case "uint":
		return "uint256" + m[2]
	case "int":
		return "int256" + m[2]
	case "ufixed":
		return "ufixed128x18" + m[2]
	case "fixed":
		return "fixed128x18" + m[2]
	default:
		return "bytes1" + m[2]
	}
}

// Signature renders name(type1,type2,...).
func Signature(name string, params []model.Parameter) string {
	types := make([]string, 0, len(params))
	for _, p := range params {
		types = append(types, CanonicalType(p.Type))
	}
	return name + "(" + strings.Join(types, ",") + ")"
}

// FunctionSelector is the 0x-prefixed first four bytes of keccak256(signature).
func FunctionSelector(name string, inputs []model.Parameter) string {
	hash := crypto.Keccak256([]byte(Signature(name, inputs)))
	return hexutil.Encode(hash[:4])
}

// EventTopic is keccak256(signature) as 0x-prefixed hex. Anonymous events
// have no topic and yield "".
func EventTopic(name string, inputs []model.Parameter, anonymous bool) string {
	if anonymous {
		return ""
	}
	return crypto.Keccak256Hash([]byte(Signature(name, inputs))).Hex()
}
