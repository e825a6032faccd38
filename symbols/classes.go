package symbols

import (
	"zscript/report"
	"zscript/types"
)

// Class is a user-defined class.  The member layout of a class belongs to the
// semantic checker: the registry only tracks identity.
type Class struct {
	// ID is the index of the class in creation order.
	ID int

	Name string

	// TypeID is the interned handle of the class's type.
	TypeID TypeID
}

// Type returns the type descriptor of the class.
func (c *Class) Type() *types.ClassType {
	return &types.ClassType{ClassID: c.ID, Name: c.Name}
}

// CreateClass creates a new class with the next sequential id.
func (st *SymbolTable) CreateClass(name string) *Class {
	st.checkMutable("CreateClass")

	class := &Class{ID: len(st.classes), Name: name}
	st.classes = append(st.classes, class)
	class.TypeID = st.GetOrAssignTypeID(class.Type())

	return class
}

// Class returns the class with the given id.
func (st *SymbolTable) Class(classID int) *Class {
	if classID < 0 || classID >= len(st.classes) {
		report.ReportICE("no class with id %d", classID)
	}

	return st.classes[classID]
}

// LookupClass finds a class by name.
func (st *SymbolTable) LookupClass(name string) (*Class, bool) {
	for _, class := range st.classes {
		if class.Name == name {
			return class, true
		}
	}

	return nil, false
}

// ClassCount returns the number of classes created.
func (st *SymbolTable) ClassCount() int {
	return len(st.classes)
}
