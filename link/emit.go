package link

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"zscript/opcode"
	"zscript/pipeline"
	"zscript/report"
	"zscript/symbols"
)

// Program is the addressed output of a compilation unit as handed to the
// bytecode serializer.
type Program struct {
	BuildID string

	// Funcs maps each function id to its addressed instructions.
	Funcs map[int][]opcode.Opcode

	GlobalsInit      []opcode.Opcode
	GlobalArraysInit []opcode.Opcode

	Scripts map[string]pipeline.ScriptEntry

	GlobalSlots map[int]int
	FuncLabels  map[int]int

	// GlobalPointers lists the pointer-typed globals in flagging order.
	GlobalPointers []int

	// FrameSizes maps each function id to the size of its stack frame.
	FrameSizes map[int]int
}

// Emit links the intermediate code of a unit.  Both tables must be sealed:
// emission only reads them, which is what makes parallel emission safe.  Each
// function is linked with its own context and frame; if parallel is set, the
// functions are linked concurrently.  Initializer code hoisted out of the
// functions is appended to the globals initializer in function id order.
func Emit(ir *pipeline.IntermediateData, links *LinkTable, st *symbols.SymbolTable, frames map[int]*StackFrame, parallel bool) *Program {
	if !links.Sealed() || !st.Sealed() {
		report.ReportICE("emission started before linking finished")
	}

	funcIDs := make([]int, 0, len(ir.Funcs))
	for funcID := range ir.Funcs {
		funcIDs = append(funcIDs, funcID)
	}
	sort.Ints(funcIDs)

	// each function writes only to its own index of these slices
	linkedFuncs := make([][]opcode.Opcode, len(funcIDs))
	initCodes := make([][]opcode.Opcode, len(funcIDs))
	panics := make([]interface{}, len(funcIDs))

	emitFunc := func(ndx int) {
		defer func() {
			if x := recover(); x != nil {
				panics[ndx] = x
			}
		}()

		funcID := funcIDs[ndx]
		frame, ok := frames[funcID]
		if !ok {
			report.ReportICE("function f%d has no stack frame", funcID)
		}

		ctx := NewContext(frame, links, st)
		linkedFuncs[ndx] = opcode.Link(ir.Funcs[funcID], ctx)
		initCodes[ndx] = ctx.InitCode
	}

	if parallel {
		wg := &sync.WaitGroup{}
		for ndx := range funcIDs {
			wg.Add(1)
			go func(ndx int) {
				defer wg.Done()
				emitFunc(ndx)
			}(ndx)
		}
		wg.Wait()
	} else {
		for ndx := range funcIDs {
			emitFunc(ndx)
		}
	}

	// re-raise the first failure on the calling goroutine so that it reaches
	// the driver's error handler
	for _, x := range panics {
		if x != nil {
			panic(x)
		}
	}

	prog := &Program{
		BuildID:        st.BuildID.String(),
		Funcs:          make(map[int][]opcode.Opcode, len(funcIDs)),
		Scripts:        make(map[string]pipeline.ScriptEntry, len(ir.Scripts)),
		GlobalSlots:    links.GlobalSlots(),
		FuncLabels:     links.FuncLabels(),
		GlobalPointers: st.GlobalPointers(),
		FrameSizes:     make(map[int]int, len(funcIDs)),
	}

	globalCtx := NewContext(nil, links, st)
	prog.GlobalsInit = opcode.Link(ir.GlobalsInit, globalCtx)
	prog.GlobalArraysInit = opcode.Link(ir.GlobalArraysInit, globalCtx)
	prog.GlobalsInit = append(prog.GlobalsInit, globalCtx.InitCode...)

	for ndx, funcID := range funcIDs {
		prog.Funcs[funcID] = linkedFuncs[ndx]
		prog.FrameSizes[funcID] = frames[funcID].Size()
		prog.GlobalsInit = append(prog.GlobalsInit, initCodes[ndx]...)
	}

	for name, entry := range ir.Scripts {
		prog.Scripts[name] = entry
	}

	return prog
}

// Listing returns the assembly listing of a program: the initializers followed
// by every function in label order.
func (p *Program) Listing() string {
	sb := strings.Builder{}

	sb.WriteString("; globals\n")
	for _, op := range p.GlobalsInit {
		sb.WriteString("\t" + op.String() + "\n")
	}

	sb.WriteString("; global arrays\n")
	for _, op := range p.GlobalArraysInit {
		sb.WriteString("\t" + op.String() + "\n")
	}

	funcIDs := make([]int, 0, len(p.Funcs))
	for funcID := range p.Funcs {
		funcIDs = append(funcIDs, funcID)
	}
	sort.Slice(funcIDs, func(i, j int) bool {
		return p.FuncLabels[funcIDs[i]] < p.FuncLabels[funcIDs[j]]
	})

	for _, funcID := range funcIDs {
		sb.WriteString(fmt.Sprintf("; f%d (frame %d)\n", funcID, p.FrameSizes[funcID]))

		for _, op := range p.Funcs[funcID] {
			if _, ok := op.(opcode.Label); ok {
				sb.WriteString(op.String() + "\n")
			} else {
				sb.WriteString("\t" + op.String() + "\n")
			}
		}
	}

	return sb.String()
}
