// Package symbols contains the symbol table shared by every pass of one
// compilation unit: node identities, interned types, user classes, variable
// bindings and folded constants, function shapes and overloads, and the set
// of pointer-typed globals.
package symbols

import (
	"zscript/ast"
	"zscript/common"
	"zscript/report"
	"zscript/types"

	"github.com/oklog/ulid/v2"
)

// SymbolTable is the compilation-unit-scoped store of all the facts the
// binding passes decide.  It grows monotonically across phases and has a
// single writer: once Seal has been called (before emission begins), any
// mutation is an internal compiler error and concurrent reads are safe.
type SymbolTable struct {
	// BuildID uniquely identifies the compilation this table belongs to.
	BuildID ulid.ULID

	// Overloads is the function signature index of the unit.
	Overloads *OverloadIndex

	nodeIDs             map[ast.NodeIndex]int
	possibleNodeFuncIDs map[ast.NodeIndex][]int

	// types is the canonical type store: a type's id is its index.  typeIDs
	// maps the canonical key of each stored type to its id.
	types   []types.Type
	typeIDs map[string]TypeID

	classes []*Class

	varTypes         map[int]TypeID
	inlinedConstants map[int]int64
	funcTypes        map[int]FunctionTypeIDs

	globalPointers []int

	sealed bool
}

// NewSymbolTable creates a new, empty symbol table for a compilation unit.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		BuildID:             ulid.Make(),
		Overloads:           NewOverloadIndex(),
		nodeIDs:             make(map[ast.NodeIndex]int),
		possibleNodeFuncIDs: make(map[ast.NodeIndex][]int),
		typeIDs:             make(map[string]TypeID),
		varTypes:            make(map[int]TypeID),
		inlinedConstants:    make(map[int]int64),
		funcTypes:           make(map[int]FunctionTypeIDs),
	}
}

// Seal marks the end of the binding passes.  The table is read-only after.
func (st *SymbolTable) Seal() {
	st.sealed = true
	st.Overloads.Seal()
}

// Sealed returns whether the table has been sealed.
func (st *SymbolTable) Sealed() bool {
	return st.sealed
}

// checkMutable raises an ICE if the table is sealed.
func (st *SymbolTable) checkMutable(op string) {
	if st.sealed {
		report.ReportICE("%s called on a sealed symbol table", op)
	}
}

// -----------------------------------------------------------------------------

// GlobalPointers returns the ids of the globals flagged as pointer-typed in
// the order they were added.
func (st *SymbolTable) GlobalPointers() []int {
	return append([]int(nil), st.globalPointers...)
}

// AddGlobalPointer flags a global variable as pointer-typed.  Flagging the
// same variable twice keeps its first position.
func (st *SymbolTable) AddGlobalPointer(varID int) {
	st.checkMutable("AddGlobalPointer")

	if common.Contains(st.globalPointers, varID) {
		return
	}

	st.globalPointers = append(st.globalPointers, varID)
}

// IsGlobalPointer returns whether a variable was flagged as a pointer global.
func (st *SymbolTable) IsGlobalPointer(varID int) bool {
	return common.Contains(st.globalPointers, varID)
}
