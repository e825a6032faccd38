// Package opcode is the instruction model shared by intermediate generation
// and linking.  Intermediate code refers to functions and variables by their
// symbolic ids; linking rewrites every symbolic instruction into addressed
// ones through an Addresser.
package opcode

import "fmt"

// Opcode is a single VM instruction.
type Opcode interface {
	// String returns the assembly text of the instruction.
	String() string
}

// Symbolic is an instruction that still refers to symbolic ids.
type Symbolic interface {
	Opcode

	// Resolve returns the addressed instructions replacing this one.
	Resolve(a Addresser) []Opcode
}

// LocationKind is the kind of storage a variable resolves to.
type LocationKind int

// Enumeration of location kinds.
const (
	LocConstant LocationKind = iota // Folded at compile time: Value holds it.
	LocGlobal                       // A global slot: Index holds the slot.
	LocFrame                        // A frame offset: Index holds the offset.
)

// VarLocation is where the value of a variable lives once linked.
type VarLocation struct {
	Kind  LocationKind
	Index int
	Value int64
}

// Addresser answers the questions linking asks about symbolic ids.
type Addresser interface {
	// FunctionLabel returns the entry label of a function.
	FunctionLabel(funcID int) int

	// ResolveVar returns the location of a variable.
	ResolveVar(varID int) VarLocation

	// AddInitCode appends instructions to the out-of-line initializer code
	// collected while linking.
	AddInitCode(ops ...Opcode)
}

// Link rewrites a list of instructions, replacing every symbolic instruction
// with its addressed form.  The input list is not modified.
func Link(ops []Opcode, a Addresser) []Opcode {
	linked := make([]Opcode, 0, len(ops))

	for _, op := range ops {
		if sop, ok := op.(Symbolic); ok {
			linked = append(linked, sop.Resolve(a)...)
		} else {
			linked = append(linked, op)
		}
	}

	return linked
}

// IsLinked returns whether a list contains no symbolic instructions.
func IsLinked(ops []Opcode) bool {
	for _, op := range ops {
		if _, ok := op.(Symbolic); ok {
			return false
		}
	}

	return true
}

// -----------------------------------------------------------------------------

// Register is a VM register.
type Register int

// Enumeration of the registers used by generated code.
const (
	RegExp1 Register = iota
	RegExp2
	RegIndex
	RegSFrame
)

func (r Register) String() string {
	switch r {
	case RegExp1:
		return "EXP1"
	case RegExp2:
		return "EXP2"
	case RegIndex:
		return "INDEX"
	case RegSFrame:
		return "SFRAME"
	default:
		return fmt.Sprintf("R%d", int(r))
	}
}

// LabelAllocator hands out label ids.  Labels are unique across a unit.
type LabelAllocator struct {
	next int
}

// New returns a fresh label id.
func (la *LabelAllocator) New() int {
	id := la.next
	la.next++
	return id
}

// Count returns the number of labels allocated.
func (la *LabelAllocator) Count() int {
	return la.next
}
