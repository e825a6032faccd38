package link

import (
	"zscript/opcode"
	"zscript/report"
	"zscript/symbols"
)

// Context is the context handed to instruction emission: the frame of the
// function being emitted, the link table, the symbol table and the
// initializer code accumulated along the way.
type Context struct {
	Frame    *StackFrame
	Links    *LinkTable
	Symbols  *symbols.SymbolTable
	InitCode []opcode.Opcode
}

// NewContext creates a new context.  The frame may be nil when emitting code
// outside any function (ie. the global initializers).
func NewContext(frame *StackFrame, links *LinkTable, st *symbols.SymbolTable) *Context {
	return &Context{Frame: frame, Links: links, Symbols: st}
}

func (ctx *Context) FunctionLabel(funcID int) int {
	return ctx.Links.FunctionToLabel(funcID)
}

func (ctx *Context) ResolveVar(varID int) opcode.VarLocation {
	if ctx.Symbols.IsInlinedConstant(varID) {
		return opcode.VarLocation{Kind: opcode.LocConstant, Value: ctx.Symbols.InlinedValue(varID)}
	}

	switch slot, state := ctx.Links.GlobalSlot(varID); state {
	case SlotAssigned:
		return opcode.VarLocation{Kind: opcode.LocGlobal, Index: slot}
	case SlotDeferred:
		report.ReportICE("pointer global v%d emitted before its slot was committed", varID)
	}

	if ctx.Frame == nil {
		report.ReportICE("variable v%d is neither global nor in a frame", varID)
	}

	return opcode.VarLocation{Kind: opcode.LocFrame, Index: ctx.Frame.Offset(varID)}
}

func (ctx *Context) AddInitCode(ops ...opcode.Opcode) {
	ctx.InitCode = append(ctx.InitCode, ops...)
}
