package build

import (
	"sort"

	"zscript/ast"
	"zscript/link"
	"zscript/pipeline"
	"zscript/report"
)

// Link assigns entry labels and global slots, lays out every function's frame
// and emits the addressed program.  Scalar globals receive their slots first:
// the pointer globals (and arrays) are committed after them, in the order
// they were flagged.  Both tables are sealed before emission.
func (c *Compiler) Link(fd *pipeline.FunctionData, ir *pipeline.IntermediateData) *link.Program {
	st := c.Symbols
	st.Seal()

	lt := link.NewLinkTable(st)

	funcIDs := make([]int, 0, len(ir.FuncLabels))
	for funcID := range ir.FuncLabels {
		funcIDs = append(funcIDs, funcID)
	}
	sort.Ints(funcIDs)

	for _, funcID := range funcIDs {
		lt.AddFunctionLabel(funcID, ir.FuncLabels[funcID])
	}

	for _, vd := range fd.AllGlobalVars() {
		varID := c.mustID(vd, vd.Name)

		switch {
		case st.IsInlinedConstant(varID):
			// folded constants need no storage
		case st.IsGlobalPointer(varID):
			lt.AddGlobalPointer(varID)
		default:
			lt.AddGlobalVar(varID)
		}
	}

	for _, ad := range fd.AllGlobalArrays() {
		lt.AddGlobalPointer(c.mustID(ad, ad.Name))
	}

	for _, varID := range lt.DeferredGlobals() {
		lt.AddGlobalVar(varID)
	}

	if slots := len(lt.GlobalSlots()); slots > fd.GlobalVarCount {
		report.ReportICE("%d global slots assigned for %d globals", slots, fd.GlobalVarCount)
	}

	lt.Seal()

	receivers := make(map[int]int)
	for _, meta := range fd.Scripts {
		if meta.HasThis {
			receivers[meta.RunSymbol] = meta.ThisPtr
		}
	}

	frames := make(map[int]*link.StackFrame, len(fd.Functions))
	for _, fn := range fd.Functions {
		funcID := c.mustID(fn, fn.Name)

		var params []int
		if thisPtr, ok := receivers[funcID]; ok {
			params = append(params, thisPtr)
		}

		for _, param := range fn.Params {
			params = append(params, c.mustID(param, param.Name))
		}

		locals := make([]int, 0, len(fn.Locals))
		for _, local := range fn.Locals {
			// folded locals never touch the frame
			if localID := c.mustID(local, local.Name); !st.IsInlinedConstant(localID) {
				locals = append(locals, localID)
			}
		}

		frames[funcID] = link.LayoutFrame(params, locals)
	}

	return link.Emit(ir, lt, st, frames, c.parallel)
}

func (c *Compiler) mustID(node ast.Node, name string) int {
	id, ok := c.Symbols.NodeID(node)
	if !ok {
		report.ReportICE("`%s` was never collected", name)
	}

	return id
}
