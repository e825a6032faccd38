package ast

import (
	"zscript/types"
)

// VarDecl is a scalar variable declaration: a global, a script-scope variable,
// a function parameter or a local.
type VarDecl struct {
	NodeBase

	Name string
	Type types.Type

	// Const indicates the variable was declared `const`.  Constant variables
	// with an initializer are folded by the symbol collection pass.
	Const bool

	// Init is the constant initializer of the variable if it has one.
	Init *int64
}

// ArrayDecl is an array declaration.
type ArrayDecl struct {
	NodeBase

	Name     string
	ElemType types.Type
	Size     int
}

// Type returns the array type of the declared array.
func (ad *ArrayDecl) Type() types.Type {
	return &types.ArrayType{ElemType: ad.ElemType}
}

// Call is a call site inside a function body.  The argument types are those
// inferred by the semantic checker: an entry is nil if its type is unknown.
type Call struct {
	NodeBase

	Name     string
	ArgTypes []types.Type
}

// FuncDecl is a function declaration.
type FuncDecl struct {
	NodeBase

	Name       string
	ReturnType types.Type
	Params     []*VarDecl
	Locals     []*VarDecl
	Calls      []*Call
}

// ClassDecl is a user-defined class declaration.
type ClassDecl struct {
	NodeBase

	Name string
}

// -----------------------------------------------------------------------------

// ScriptKind classifies what category of script a script declaration is.
// This must be one of the enumerated script kinds below.
type ScriptKind int

// Enumeration of script kinds.
const (
	ScriptKindGlobal ScriptKind = iota // Runs once per frame for the whole game.
	ScriptKindFFC                      // Attached to a freeform combo.
	ScriptKindItem                     // Attached to an item class.
)

var scriptKindNames = map[ScriptKind]string{
	ScriptKindGlobal: "global",
	ScriptKindFFC:    "ffc",
	ScriptKindItem:   "item",
}

func (sk ScriptKind) String() string {
	if name, ok := scriptKindNames[sk]; ok {
		return name
	}

	return "unknown"
}

// ParseScriptKind converts a script kind name into its script kind.
func ParseScriptKind(name string) (ScriptKind, bool) {
	for sk, skName := range scriptKindNames {
		if skName == name {
			return sk, true
		}
	}

	return 0, false
}

// ReceiverType returns the type of the implicit `this` of scripts of this
// kind.  Global scripts have no receiver.
func (sk ScriptKind) ReceiverType() (types.Type, bool) {
	switch sk {
	case ScriptKindFFC:
		return types.PrimTypeFFC, true
	case ScriptKindItem:
		return types.PrimTypeItemClass, true
	default:
		return nil, false
	}
}

// Script is a script declaration.
type Script struct {
	NodeBase

	Name string
	Kind ScriptKind

	// Run is the entry function of the script.
	Run *FuncDecl

	Funcs  []*FuncDecl
	Vars   []*VarDecl
	Arrays []*ArrayDecl
}

// -----------------------------------------------------------------------------

// Program is the root of a compilation unit.
type Program struct {
	Classes []*ClassDecl
	Funcs   []*FuncDecl
	Vars    []*VarDecl
	Arrays  []*ArrayDecl
	Scripts []*Script
}
