// Package pipeline contains the snapshots handed from one compilation phase to
// the next.  Each snapshot extends the previous one and is never modified once
// its phase completes: constructors copy what they carry forward.
package pipeline

import (
	"zscript/ast"
	"zscript/opcode"
	"zscript/report"
	"zscript/symbols"
)

// ScriptMeta is the metadata of a script before code generation.
type ScriptMeta struct {
	// RunSymbol is the function id of the script's run function.
	RunSymbol int

	// NumParams is the number of parameters of the run function.
	NumParams int

	Kind ast.ScriptKind

	// ThisPtr is the variable id of the implicit `this` of object-scoped
	// scripts.  It is only meaningful if HasThis is set.
	ThisPtr int
	HasThis bool
}

// ScriptEntry is the metadata of a script after code generation: the run
// function is now known by its entry label.
type ScriptEntry struct {
	RunLabel  int
	NumParams int
	Kind      ast.ScriptKind
	ThisPtr   int
	HasThis   bool
}

// -----------------------------------------------------------------------------

// SymbolData is the output of symbol collection.
type SymbolData struct {
	Symbols *symbols.SymbolTable

	GlobalFuncs  []*ast.FuncDecl
	GlobalVars   []*ast.VarDecl
	GlobalArrays []*ast.ArrayDecl
	Scripts      []*ast.Script

	// Meta holds the metadata of every script in Scripts.
	Meta map[*ast.Script]ScriptMeta
}

// NewSymbolData creates a new symbol data snapshot around a symbol table.
func NewSymbolData(st *symbols.SymbolTable) *SymbolData {
	return &SymbolData{
		Symbols: st,
		Meta:    make(map[*ast.Script]ScriptMeta),
	}
}

// AddScript adds a script and its metadata.
func (sd *SymbolData) AddScript(script *ast.Script, meta ScriptMeta) {
	sd.Scripts = append(sd.Scripts, script)
	sd.Meta[script] = meta
}

// -----------------------------------------------------------------------------

// FunctionData is the output of function extraction: scripts are now keyed by
// name and the globals discovered while processing functions are kept apart
// from those declared at the top level.
type FunctionData struct {
	Symbols *symbols.SymbolTable

	Functions []*ast.FuncDecl

	GlobalVars      []*ast.VarDecl
	NewGlobalVars   []*ast.VarDecl
	GlobalArrays    []*ast.ArrayDecl
	NewGlobalArrays []*ast.ArrayDecl

	// GlobalVarCount is the number of global storage slots the unit needs:
	// every global variable and array, old and new.
	GlobalVarCount int

	Scripts map[string]ScriptMeta
}

// NewFunctionData derives the function data snapshot from the symbol data.
func NewFunctionData(sd *SymbolData, functions []*ast.FuncDecl, newVars []*ast.VarDecl, newArrays []*ast.ArrayDecl) *FunctionData {
	fd := &FunctionData{
		Symbols:         sd.Symbols,
		Functions:       append([]*ast.FuncDecl(nil), functions...),
		GlobalVars:      append([]*ast.VarDecl(nil), sd.GlobalVars...),
		NewGlobalVars:   append([]*ast.VarDecl(nil), newVars...),
		GlobalArrays:    append([]*ast.ArrayDecl(nil), sd.GlobalArrays...),
		NewGlobalArrays: append([]*ast.ArrayDecl(nil), newArrays...),
		Scripts:         make(map[string]ScriptMeta, len(sd.Scripts)),
	}

	fd.GlobalVarCount = len(fd.GlobalVars) + len(fd.NewGlobalVars) + len(fd.GlobalArrays) + len(fd.NewGlobalArrays)

	for _, script := range sd.Scripts {
		meta, ok := sd.Meta[script]
		if !ok {
			report.ReportICE("script `%s` has no metadata", script.Name)
		}

		if _, ok := fd.Scripts[script.Name]; ok {
			report.ReportICE("script `%s` collected twice", script.Name)
		}

		fd.Scripts[script.Name] = meta
	}

	return fd
}

// AllGlobalVars returns the pre-existing and new global variables in order.
func (fd *FunctionData) AllGlobalVars() []*ast.VarDecl {
	return append(append([]*ast.VarDecl(nil), fd.GlobalVars...), fd.NewGlobalVars...)
}

// AllGlobalArrays returns the pre-existing and new global arrays in order.
func (fd *FunctionData) AllGlobalArrays() []*ast.ArrayDecl {
	return append(append([]*ast.ArrayDecl(nil), fd.GlobalArrays...), fd.NewGlobalArrays...)
}

// -----------------------------------------------------------------------------

// IntermediateData is the output of intermediate code generation.  All code is
// still symbolic: it refers to functions and variables by id.
type IntermediateData struct {
	// Funcs maps each function id to its instructions.
	Funcs map[int][]opcode.Opcode

	// FuncLabels maps each function id to its entry label.
	FuncLabels map[int]int

	// GlobalsInit initializes the scalar globals.  GlobalArraysInit allocates
	// the global arrays.  The two streams are ordered independently.
	GlobalsInit      []opcode.Opcode
	GlobalArraysInit []opcode.Opcode

	Scripts map[string]ScriptEntry
}

// Intermediate derives the intermediate data snapshot.  Every function of the
// function data must have instructions and an entry label.
func (fd *FunctionData) Intermediate(funcs map[int][]opcode.Opcode, funcLabels map[int]int, globalsInit, globalArraysInit []opcode.Opcode) *IntermediateData {
	id := &IntermediateData{
		Funcs:            make(map[int][]opcode.Opcode, len(funcs)),
		FuncLabels:       make(map[int]int, len(funcLabels)),
		GlobalsInit:      append([]opcode.Opcode(nil), globalsInit...),
		GlobalArraysInit: append([]opcode.Opcode(nil), globalArraysInit...),
		Scripts:          make(map[string]ScriptEntry, len(fd.Scripts)),
	}

	for _, fn := range fd.Functions {
		funcID, ok := fd.Symbols.NodeID(fn)
		if !ok {
			report.ReportICE("function `%s` has no id", fn.Name)
		}

		ops, ok := funcs[funcID]
		if !ok {
			report.ReportICE("function `%s` (f%d) was not generated", fn.Name, funcID)
		}

		label, ok := funcLabels[funcID]
		if !ok {
			report.ReportICE("function `%s` (f%d) has no entry label", fn.Name, funcID)
		}

		id.Funcs[funcID] = append([]opcode.Opcode(nil), ops...)
		id.FuncLabels[funcID] = label
	}

	for name, meta := range fd.Scripts {
		label, ok := id.FuncLabels[meta.RunSymbol]
		if !ok {
			report.ReportICE("run function f%d of script `%s` was not generated", meta.RunSymbol, name)
		}

		id.Scripts[name] = ScriptEntry{
			RunLabel:  label,
			NumParams: meta.NumParams,
			Kind:      meta.Kind,
			ThisPtr:   meta.ThisPtr,
			HasThis:   meta.HasThis,
		}
	}

	return id
}
