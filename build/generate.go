package build

import (
	"zscript/ast"
	"zscript/opcode"
	"zscript/pipeline"
	"zscript/report"
	"zscript/symbols"
)

// CodeGenerator produces the symbolic instructions of a unit.  The driver
// allocates entry labels: a generator may allocate further labels for its own
// jumps from the same allocator.
type CodeGenerator interface {
	// GenerateFunction returns the instructions of a function starting at the
	// given entry label.
	GenerateFunction(fd *pipeline.FunctionData, fn *ast.FuncDecl, entry int, labels *opcode.LabelAllocator) []opcode.Opcode

	// GenerateGlobalsInit returns the code initializing the scalar globals.
	GenerateGlobalsInit(fd *pipeline.FunctionData) []opcode.Opcode

	// GenerateGlobalArraysInit returns the code allocating the global arrays.
	GenerateGlobalArraysInit(fd *pipeline.FunctionData) []opcode.Opcode
}

// GenerateIntermediate runs the code generator over every function and both
// initializers of a unit.
func (c *Compiler) GenerateIntermediate(fd *pipeline.FunctionData) *pipeline.IntermediateData {
	if c.generator == nil {
		report.ReportICE("intermediate generation started without a code generator")
	}

	funcs := make(map[int][]opcode.Opcode, len(fd.Functions))
	funcLabels := make(map[int]int, len(fd.Functions))

	for _, fn := range fd.Functions {
		funcID, ok := fd.Symbols.NodeID(fn)
		if !ok {
			report.ReportICE("generating function `%s` before it was collected", fn.Name)
		}

		entry := c.labels.New()
		funcLabels[funcID] = entry
		funcs[funcID] = c.generator.GenerateFunction(fd, fn, entry, &c.labels)
	}

	return fd.Intermediate(
		funcs,
		funcLabels,
		c.generator.GenerateGlobalsInit(fd),
		c.generator.GenerateGlobalArraysInit(fd),
	)
}

// -----------------------------------------------------------------------------

// DeclGenerator is the default code generator.  It generates the code implied
// by the declarations alone: entry labels, local initializers, the calls of
// resolved call sites, returns and the global initializers.  The initializers
// of script-scope variables are generated inside the script's run function
// and hoisted out to the globals initializer.
type DeclGenerator struct {
	symbols *symbols.SymbolTable

	// runs maps each run function to its script.
	runs map[*ast.FuncDecl]*ast.Script
}

// NewDeclGenerator creates a declaration code generator for a unit.
func NewDeclGenerator(sd *pipeline.SymbolData) *DeclGenerator {
	dg := &DeclGenerator{
		symbols: sd.Symbols,
		runs:    make(map[*ast.FuncDecl]*ast.Script, len(sd.Scripts)),
	}

	for _, script := range sd.Scripts {
		dg.runs[script.Run] = script
	}

	return dg
}

func (dg *DeclGenerator) GenerateFunction(fd *pipeline.FunctionData, fn *ast.FuncDecl, entry int, labels *opcode.LabelAllocator) []opcode.Opcode {
	ops := []opcode.Opcode{opcode.Label{ID: entry}}

	script, isRun := dg.runs[fn]
	if isRun {
		if hoisted := dg.initVars(script.Vars); len(hoisted) > 0 {
			ops = append(ops, opcode.Hoist{Ops: hoisted})
		}
	}

	ops = append(ops, dg.initVars(fn.Locals)...)

	for _, call := range fn.Calls {
		if funcID, ok := dg.symbols.PossibleFuncIDs(call).Resolved(); ok {
			ops = append(ops, opcode.Call{FuncID: funcID})
		}
	}

	if isRun {
		ops = append(ops, opcode.Quit{})
	} else {
		ops = append(ops, opcode.Return{})
	}

	return ops
}

func (dg *DeclGenerator) GenerateGlobalsInit(fd *pipeline.FunctionData) []opcode.Opcode {
	return dg.initVars(fd.GlobalVars)
}

func (dg *DeclGenerator) GenerateGlobalArraysInit(fd *pipeline.FunctionData) []opcode.Opcode {
	var ops []opcode.Opcode

	for _, ad := range fd.AllGlobalArrays() {
		varID, ok := dg.symbols.NodeID(ad)
		if !ok {
			report.ReportICE("global array `%s` has no id", ad.Name)
		}

		ops = append(ops, opcode.AllocArray{VarID: varID, Size: ad.Size})
	}

	return ops
}

// initVars generates the initializers of a list of variables.  Folded
// constants need none.
func (dg *DeclGenerator) initVars(vars []*ast.VarDecl) []opcode.Opcode {
	var ops []opcode.Opcode

	for _, vd := range vars {
		if vd.Init == nil || dg.symbols.IsNodeInlinedConstant(vd) {
			continue
		}

		varID, ok := dg.symbols.NodeID(vd)
		if !ok {
			report.ReportICE("variable `%s` has no id", vd.Name)
		}

		ops = append(ops,
			opcode.SetImmediate{Reg: opcode.RegExp1, Value: *vd.Init},
			opcode.StoreVar{Reg: opcode.RegExp1, VarID: varID},
		)
	}

	return ops
}
