package opcode

import (
	"fmt"

	"zscript/report"
)

// LoadVar loads a variable into a register.
type LoadVar struct {
	Reg   Register
	VarID int
}

func (lv LoadVar) String() string {
	return fmt.Sprintf("LOAD %s, v%d", lv.Reg, lv.VarID)
}

func (lv LoadVar) Resolve(a Addresser) []Opcode {
	loc := a.ResolveVar(lv.VarID)

	switch loc.Kind {
	case LocConstant:
		return []Opcode{SetImmediate{Reg: lv.Reg, Value: loc.Value}}
	case LocGlobal:
		return []Opcode{LoadGlobal{Reg: lv.Reg, Slot: loc.Index}}
	default:
		return []Opcode{LoadFrame{Reg: lv.Reg, Offset: loc.Index}}
	}
}

// StoreVar stores a register into a variable.
type StoreVar struct {
	Reg   Register
	VarID int
}

func (sv StoreVar) String() string {
	return fmt.Sprintf("STORE %s, v%d", sv.Reg, sv.VarID)
}

func (sv StoreVar) Resolve(a Addresser) []Opcode {
	loc := a.ResolveVar(sv.VarID)

	switch loc.Kind {
	case LocConstant:
		report.ReportICE("store to inlined constant v%d", sv.VarID)
		return nil
	case LocGlobal:
		return []Opcode{StoreGlobal{Reg: sv.Reg, Slot: loc.Index}}
	default:
		return []Opcode{StoreFrame{Reg: sv.Reg, Offset: loc.Index}}
	}
}

// Call calls a function.
type Call struct {
	FuncID int
}

func (c Call) String() string {
	return fmt.Sprintf("CALL f%d", c.FuncID)
}

func (c Call) Resolve(a Addresser) []Opcode {
	return []Opcode{CallLabel{Label: a.FunctionLabel(c.FuncID)}}
}

// GotoFunc jumps to the entry of a function without pushing a return address.
type GotoFunc struct {
	FuncID int
}

func (gf GotoFunc) String() string {
	return fmt.Sprintf("GOTO f%d", gf.FuncID)
}

func (gf GotoFunc) Resolve(a Addresser) []Opcode {
	return []Opcode{GotoLabel{Label: a.FunctionLabel(gf.FuncID)}}
}

// AllocArray allocates the storage of an array variable.
type AllocArray struct {
	VarID int
	Size  int
}

func (aa AllocArray) String() string {
	return fmt.Sprintf("ALLOC v%d, %d", aa.VarID, aa.Size)
}

func (aa AllocArray) Resolve(a Addresser) []Opcode {
	loc := a.ResolveVar(aa.VarID)

	switch loc.Kind {
	case LocGlobal:
		return []Opcode{AllocGlobalArray{Slot: loc.Index, Size: aa.Size}}
	case LocFrame:
		return []Opcode{AllocFrameArray{Offset: loc.Index, Size: aa.Size}}
	default:
		report.ReportICE("array v%d resolved to an inlined constant", aa.VarID)
		return nil
	}
}

// Hoist holds instructions that belong to the out-of-line initializer code
// rather than to the function they were generated in.  Linking resolves them
// and moves them to the initializer code.
type Hoist struct {
	Ops []Opcode
}

func (h Hoist) String() string {
	return fmt.Sprintf("HOIST <%d ops>", len(h.Ops))
}

func (h Hoist) Resolve(a Addresser) []Opcode {
	a.AddInitCode(Link(h.Ops, a)...)
	return nil
}
