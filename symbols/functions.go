package symbols

import (
	"strings"

	"zscript/ast"
	"zscript/report"
)

// FunctionSignature is the key used to tell overloads apart: the function's
// name and the handles of its parameter types.
type FunctionSignature struct {
	Name         string
	ParamTypeIDs []TypeID
}

// NewFunctionSignature creates a new function signature.
func NewFunctionSignature(name string, paramTypeIDs []TypeID) FunctionSignature {
	return FunctionSignature{Name: name, ParamTypeIDs: append([]TypeID(nil), paramTypeIDs...)}
}

// Compare orders signatures by name and then element-wise by parameter type
// handles; a signature whose parameters are a prefix of another's comes first.
// It returns a negative number, zero or a positive number.
func (fs FunctionSignature) Compare(other FunctionSignature) int {
	if c := strings.Compare(fs.Name, other.Name); c != 0 {
		return c
	}

	return compareTypeIDs(fs.ParamTypeIDs, other.ParamTypeIDs)
}

func (fs FunctionSignature) Less(other FunctionSignature) bool {
	return fs.Compare(other) < 0
}

func (fs FunctionSignature) Equal(other FunctionSignature) bool {
	return fs.Compare(other) == 0
}

// -----------------------------------------------------------------------------

// FunctionTypeIDs is the resolved shape of a function.
type FunctionTypeIDs struct {
	ReturnTypeID TypeID
	ParamTypeIDs []TypeID
}

// Compare orders function shapes by return type handle and then element-wise
// by parameter type handles.
func (ft FunctionTypeIDs) Compare(other FunctionTypeIDs) int {
	switch {
	case ft.ReturnTypeID < other.ReturnTypeID:
		return -1
	case ft.ReturnTypeID > other.ReturnTypeID:
		return 1
	}

	return compareTypeIDs(ft.ParamTypeIDs, other.ParamTypeIDs)
}

func (ft FunctionTypeIDs) Less(other FunctionTypeIDs) bool {
	return ft.Compare(other) < 0
}

func (ft FunctionTypeIDs) Equal(other FunctionTypeIDs) bool {
	return ft.Compare(other) == 0
}

// compareTypeIDs compares two handle sequences lexicographically.
func compareTypeIDs(a, b []TypeID) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] < b[i] {
			return -1
		} else if a[i] > b[i] {
			return 1
		}
	}

	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// -----------------------------------------------------------------------------

// PutFuncTypeIDs commits the resolved shape of a function.
func (st *SymbolTable) PutFuncTypeIDs(funcID int, returnTypeID TypeID, paramTypeIDs []TypeID) {
	st.checkMutable("PutFuncTypeIDs")

	st.funcTypes[funcID] = FunctionTypeIDs{
		ReturnTypeID: returnTypeID,
		ParamTypeIDs: append([]TypeID(nil), paramTypeIDs...),
	}
}

// HasFuncTypeIDs returns whether the shape of a function has been committed.
func (st *SymbolTable) HasFuncTypeIDs(funcID int) bool {
	_, ok := st.funcTypes[funcID]
	return ok
}

func (st *SymbolTable) mustFuncTypeIDs(funcID int) FunctionTypeIDs {
	ft, ok := st.funcTypes[funcID]
	if !ok {
		report.ReportICE("function %d has no committed type", funcID)
	}

	return ft
}

// FuncReturnTypeID returns the return type handle of a function.
func (st *SymbolTable) FuncReturnTypeID(funcID int) TypeID {
	return st.mustFuncTypeIDs(funcID).ReturnTypeID
}

// NodeFuncReturnTypeID returns the return type handle of the function a node
// is bound to.
func (st *SymbolTable) NodeFuncReturnTypeID(node ast.Node) TypeID {
	return st.FuncReturnTypeID(st.mustNodeID(node))
}

// FuncParamTypeIDs returns the parameter type handles of a function.
func (st *SymbolTable) FuncParamTypeIDs(funcID int) []TypeID {
	return append([]TypeID(nil), st.mustFuncTypeIDs(funcID).ParamTypeIDs...)
}
