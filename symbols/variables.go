package symbols

import (
	"zscript/ast"
	"zscript/report"
	"zscript/types"
)

// A variable moves from unbound to typed through PutVarTypeID/PutVarType.
// Folding its value with InlineConstant is independent: a folded variable
// keeps its type.

// VarTypeID returns the type handle bound to a variable.
func (st *SymbolTable) VarTypeID(varID int) (TypeID, bool) {
	id, ok := st.varTypes[varID]
	return id, ok
}

// NodeVarTypeID returns the type handle of the variable a node is bound to.
func (st *SymbolTable) NodeVarTypeID(node ast.Node) (TypeID, bool) {
	varID, ok := st.NodeID(node)
	if !ok {
		return 0, false
	}

	return st.VarTypeID(varID)
}

// VarType returns the type bound to a variable.
func (st *SymbolTable) VarType(varID int) types.Type {
	typeID, ok := st.varTypes[varID]
	if !ok {
		report.ReportICE("variable %d has no type", varID)
	}

	return st.Type(typeID)
}

// NodeVarType returns the type of the variable a node is bound to.
func (st *SymbolTable) NodeVarType(node ast.Node) types.Type {
	return st.VarType(st.mustNodeID(node))
}

// PutVarTypeID binds a variable to a type handle.
func (st *SymbolTable) PutVarTypeID(varID int, typeID TypeID) {
	st.checkMutable("PutVarTypeID")

	st.varTypes[varID] = typeID
}

// PutVarType interns a type and binds a variable to it.
func (st *SymbolTable) PutVarType(varID int, typ types.Type) {
	st.PutVarTypeID(varID, st.GetOrAssignTypeID(typ))
}

// -----------------------------------------------------------------------------

// InlineConstant records the folded value of a compile-time-constant variable.
func (st *SymbolTable) InlineConstant(varID int, value int64) {
	st.checkMutable("InlineConstant")

	st.inlinedConstants[varID] = value
}

// InlineNodeConstant folds the variable a node is bound to.
func (st *SymbolTable) InlineNodeConstant(node ast.Node, value int64) {
	st.InlineConstant(st.mustNodeID(node), value)
}

// IsInlinedConstant returns whether a variable has a folded value.
func (st *SymbolTable) IsInlinedConstant(varID int) bool {
	_, ok := st.inlinedConstants[varID]
	return ok
}

// IsNodeInlinedConstant returns whether the variable a node is bound to has a
// folded value.
func (st *SymbolTable) IsNodeInlinedConstant(node ast.Node) bool {
	varID, ok := st.NodeID(node)
	return ok && st.IsInlinedConstant(varID)
}

// InlinedValue returns the folded value of a variable.
func (st *SymbolTable) InlinedValue(varID int) int64 {
	value, ok := st.inlinedConstants[varID]
	if !ok {
		report.ReportICE("variable %d is not an inlined constant", varID)
	}

	return value
}

// NodeInlinedValue returns the folded value of the variable a node is bound to.
func (st *SymbolTable) NodeInlinedValue(node ast.Node) int64 {
	return st.InlinedValue(st.mustNodeID(node))
}
