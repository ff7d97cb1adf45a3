package model

import "strings"

type Mutability string

const (
	Pure       Mutability = "pure"
	View       Mutability = "view"
	NonPayable Mutability = "nonpayable"
	Payable    Mutability = "payable"
)

// ParseMutability maps a keyword to a Mutability, defaulting to NonPayable.
func ParseMutability(s string) Mutability {
	switch Mutability(strings.TrimSpace(s)) {
	case Pure:
		return Pure
	case View:
		return View
	case Payable:
		return Payable
	default:
		return NonPayable
	}
}

type Visibility string

const (
	Public   Visibility = "public"
	Private  Visibility = "private"
	Internal Visibility = "internal"
	External Visibility = "external"
)

// ParseVisibility maps a keyword to a Visibility, defaulting to Public.
func ParseVisibility(s string) Visibility {
	switch Visibility(strings.TrimSpace(s)) {
	case Private:
		return Private
	case Internal:
		return Internal
	case External:
		return External
	default:
		return Public
	}
}

type FlowCategory string

const (
	FlowOwner  FlowCategory = "owner"
	FlowAdmin  FlowCategory = "admin"
	FlowUser   FlowCategory = "user"
	FlowSystem FlowCategory = "system"
)

type Severity string

const (
	High   Severity = "High"
	Medium Severity = "Medium"
	Low    Severity = "Low"
	Info   Severity = "Info"
)

// Role names assigned by the classifier.
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// FunctionKind is the only kind a FunctionRecord carries.
const FunctionKind = "function"

// Analysis modes.
const (
	ModeInterface = "interface"
	ModeSource    = "source"
)
