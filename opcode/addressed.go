package opcode

import "fmt"

// Label marks the position of a label in an instruction stream.
type Label struct {
	ID int
}

func (l Label) String() string {
	return fmt.Sprintf("l%d:", l.ID)
}

// SetImmediate sets a register to a constant value.
type SetImmediate struct {
	Reg   Register
	Value int64
}

func (si SetImmediate) String() string {
	return fmt.Sprintf("SETV %s, %d", si.Reg, si.Value)
}

// LoadFrame loads a register from a stack frame offset.
type LoadFrame struct {
	Reg    Register
	Offset int
}

func (lf LoadFrame) String() string {
	return fmt.Sprintf("LOADD %s, SFRAME[%d]", lf.Reg, lf.Offset)
}

// StoreFrame stores a register at a stack frame offset.
type StoreFrame struct {
	Reg    Register
	Offset int
}

func (sf StoreFrame) String() string {
	return fmt.Sprintf("STORED %s, SFRAME[%d]", sf.Reg, sf.Offset)
}

// LoadGlobal loads a register from a global slot.
type LoadGlobal struct {
	Reg  Register
	Slot int
}

func (lg LoadGlobal) String() string {
	return fmt.Sprintf("LOADG %s, GD%d", lg.Reg, lg.Slot)
}

// StoreGlobal stores a register into a global slot.
type StoreGlobal struct {
	Reg  Register
	Slot int
}

func (sg StoreGlobal) String() string {
	return fmt.Sprintf("STOREG %s, GD%d", sg.Reg, sg.Slot)
}

// CallLabel pushes the return address and jumps to a label.
type CallLabel struct {
	Label int
}

func (cl CallLabel) String() string {
	return fmt.Sprintf("CALL l%d", cl.Label)
}

// GotoLabel jumps to a label.
type GotoLabel struct {
	Label int
}

func (gl GotoLabel) String() string {
	return fmt.Sprintf("GOTO l%d", gl.Label)
}

// AllocGlobalArray allocates an array and stores its pointer in a global slot.
type AllocGlobalArray struct {
	Slot int
	Size int
}

func (aga AllocGlobalArray) String() string {
	return fmt.Sprintf("ALLOCGMEM GD%d, %d", aga.Slot, aga.Size)
}

// AllocFrameArray allocates an array and stores its pointer in the frame.
type AllocFrameArray struct {
	Offset int
	Size   int
}

func (afa AllocFrameArray) String() string {
	return fmt.Sprintf("ALLOCMEM SFRAME[%d], %d", afa.Offset, afa.Size)
}

// Return returns from the current function.
type Return struct{}

func (Return) String() string {
	return "RETURN"
}

// Quit ends the current script.
type Quit struct{}

func (Quit) String() string {
	return "QUIT"
}
