// Package types holds the type descriptors handed to the symbol table.  The
// structural rules of the language's types live with the semantic checker:
// this package only provides enough structure for descriptors to be compared
// through a canonical key.
package types

import (
	"strconv"
	"strings"
)

// Type represents a ZScript data type.
type Type interface {
	// Returns the canonical key of this type.  Two descriptors are structurally
	// equal if and only if their keys are equal.
	Key() string

	// Returns the representative string for this type.
	Repr() string

	// Returns whether values of this type are references into VM memory that
	// need handling distinct from scalars (eg. arrays and class instances).
	IsPointer() bool
}

// Equals returns whether two type descriptors are structurally equal.
func Equals(a, b Type) bool {
	return a.Key() == b.Key()
}

// -----------------------------------------------------------------------------

// PrimitiveType represents a builtin type.  This must be one of the enumerated
// primitive type values below.
type PrimitiveType int

// Enumeration of the different primitive types.
const (
	PrimTypeVoid PrimitiveType = iota
	PrimTypeFloat
	PrimTypeBool
	PrimTypeFFC
	PrimTypeItem
	PrimTypeItemClass
	PrimTypeNPC
	PrimTypeLWeapon
	PrimTypeEWeapon
)

var primNames = [...]string{
	PrimTypeVoid:      "void",
	PrimTypeFloat:     "float",
	PrimTypeBool:      "bool",
	PrimTypeFFC:       "ffc",
	PrimTypeItem:      "item",
	PrimTypeItemClass: "itemdata",
	PrimTypeNPC:       "npc",
	PrimTypeLWeapon:   "lweapon",
	PrimTypeEWeapon:   "eweapon",
}

func (pt PrimitiveType) valid() bool {
	return pt >= 0 && int(pt) < len(primNames)
}

// Key gives out-of-range values their own key so they are never interned
// together.
func (pt PrimitiveType) Key() string {
	if pt.valid() {
		return primNames[pt]
	}

	return "prim#" + strconv.Itoa(int(pt))
}

func (pt PrimitiveType) Repr() string {
	if pt.valid() {
		return primNames[pt]
	}

	return "<invalid>"
}

func (pt PrimitiveType) IsPointer() bool {
	return false
}

// -----------------------------------------------------------------------------

// ClassType represents a user-defined class.  Classes are identified by the id
// the class registry assigned them: the name is only for display.
type ClassType struct {
	ClassID int
	Name    string
}

func (ct *ClassType) Key() string {
	return "class#" + strconv.Itoa(ct.ClassID)
}

func (ct *ClassType) Repr() string {
	return ct.Name
}

func (ct *ClassType) IsPointer() bool {
	return true
}

// -----------------------------------------------------------------------------

// ArrayType represents an array of some element type.
type ArrayType struct {
	ElemType Type
}

func (at *ArrayType) Key() string {
	return at.ElemType.Key() + "[]"
}

func (at *ArrayType) Repr() string {
	return at.ElemType.Repr() + "[]"
}

func (at *ArrayType) IsPointer() bool {
	return true
}

// -----------------------------------------------------------------------------

// ParseTypeName converts a type name as it appears in declarations into a type
// descriptor.  Class names are resolved through lookupClass which may be nil
// if no classes are visible.  Array types are written with trailing brackets:
// eg. `float[]`.  It returns false if the name does not name a type.
func ParseTypeName(name string, lookupClass func(string) (*ClassType, bool)) (Type, bool) {
	name = strings.TrimSpace(name)

	if strings.HasSuffix(name, "[]") {
		elemType, ok := ParseTypeName(name[:len(name)-2], lookupClass)
		if !ok || elemType == PrimTypeVoid {
			return nil, false
		}

		return &ArrayType{ElemType: elemType}, true
	}

	for i, primName := range primNames {
		if primName == name {
			return PrimitiveType(i), true
		}
	}

	if lookupClass != nil {
		if ct, ok := lookupClass(name); ok {
			return ct, true
		}
	}

	return nil, false
}
