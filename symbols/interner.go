package symbols

import (
	"zscript/ast"
	"zscript/report"
	"zscript/types"
)

// TypeID is the canonical handle of an interned type.  Once assigned to a
// structural value, a handle is never reused for another one.
type TypeID int

// Type returns the type interned under a handle.
func (st *SymbolTable) Type(typeID TypeID) types.Type {
	if typeID < 0 || int(typeID) >= len(st.types) {
		report.ReportICE("no type interned with id %d", typeID)
	}

	return st.types[typeID]
}

// NodeType returns the type of the variable a node is bound to.
func (st *SymbolTable) NodeType(node ast.Node) types.Type {
	return st.VarType(st.mustNodeID(node))
}

// TypeID looks up the handle of a structurally equal interned type.
func (st *SymbolTable) TypeID(typ types.Type) (TypeID, bool) {
	id, ok := st.typeIDs[typ.Key()]
	return id, ok
}

// AssignTypeID interns a type the caller knows is not interned yet.
func (st *SymbolTable) AssignTypeID(typ types.Type) TypeID {
	st.checkMutable("AssignTypeID")

	key := typ.Key()
	if id, ok := st.typeIDs[key]; ok {
		report.ReportICE("type `%s` assigned twice (already interned as %d)", typ.Repr(), id)
	}

	id := TypeID(len(st.types))
	st.types = append(st.types, typ)
	st.typeIDs[key] = id
	return id
}

// GetOrAssignTypeID returns the handle of a structurally equal interned type,
// interning the type first if there is none.
func (st *SymbolTable) GetOrAssignTypeID(typ types.Type) TypeID {
	if id, ok := st.typeIDs[typ.Key()]; ok {
		return id
	}

	return st.AssignTypeID(typ)
}

// TypeCount returns the number of interned types.
func (st *SymbolTable) TypeCount() int {
	return len(st.types)
}
