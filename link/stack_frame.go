package link

import (
	"zscript/report"
)

// StackFrame maps the local variables of one function to their offsets from
// the frame base.  It is private to the emission of that function.
type StackFrame struct {
	offsets map[int]int
	size    int
}

// NewStackFrame creates a new, empty stack frame.
func NewStackFrame() *StackFrame {
	return &StackFrame{offsets: make(map[int]int)}
}

// AddToFrame records the offset of a local variable.
func (sf *StackFrame) AddToFrame(varID, offset int) {
	sf.offsets[varID] = offset

	if offset+1 > sf.size {
		sf.size = offset + 1
	}
}

// Offset returns the offset of a local variable.  Frame layout must precede
// code emission for the function.
func (sf *StackFrame) Offset(varID int) int {
	offset, ok := sf.offsets[varID]
	if !ok {
		report.ReportICE("variable v%d is not in the stack frame", varID)
	}

	return offset
}

// Has returns whether a variable is in the frame.
func (sf *StackFrame) Has(varID int) bool {
	_, ok := sf.offsets[varID]
	return ok
}

// Size returns the number of stack positions the frame spans.
func (sf *StackFrame) Size() int {
	return sf.size
}

// LayoutFrame lays out the frame of a function.  Locals are pushed by the
// callee after the caller pushed the parameters: locals take the lowest
// offsets from the frame base and the parameters follow in declaration order.
// The receiver of an object-scoped script, if any, is passed as the first
// parameter.
func LayoutFrame(params, locals []int) *StackFrame {
	sf := NewStackFrame()

	offset := 0
	for _, varID := range locals {
		sf.AddToFrame(varID, offset)
		offset++
	}

	for _, varID := range params {
		sf.AddToFrame(varID, offset)
		offset++
	}

	return sf
}
