package build

import (
	"zscript/ast"
	"zscript/pipeline"
	"zscript/symbols"
	"zscript/types"
)

// CollectSymbols assigns an id to every declaration of a program and records
// what is known about it in the symbol table: variable types, folded
// constants, pointer globals, classes, function shapes and overloads.
func (c *Compiler) CollectSymbols(prog *ast.Program) *pipeline.SymbolData {
	st := c.Symbols
	sd := pipeline.NewSymbolData(st)

	// classes first so that their types are interned before any declaration
	// mentions them
	for _, cd := range prog.Classes {
		class := st.CreateClass(cd.Name)
		st.PutNodeID(cd, class.ID)
	}

	for _, vd := range prog.Vars {
		c.declareGlobalVar(vd)
		sd.GlobalVars = append(sd.GlobalVars, vd)
	}

	for _, ad := range prog.Arrays {
		c.declareGlobalArray(ad)
		sd.GlobalArrays = append(sd.GlobalArrays, ad)
	}

	for _, fn := range prog.Funcs {
		c.declareFunc(fn, "")
		sd.GlobalFuncs = append(sd.GlobalFuncs, fn)
	}

	for _, script := range prog.Scripts {
		sd.AddScript(script, c.declareScript(script))
	}

	return sd
}

// declareVar assigns an id to a variable, records its type and folds it if it
// is a constant with an initializer.
func (c *Compiler) declareVar(vd *ast.VarDecl) int {
	id := c.newID()
	c.Symbols.PutNodeID(vd, id)
	c.Symbols.PutVarType(id, vd.Type)

	if vd.Const && vd.Init != nil {
		c.Symbols.InlineConstant(id, *vd.Init)
	}

	return id
}

func (c *Compiler) declareGlobalVar(vd *ast.VarDecl) {
	id := c.declareVar(vd)

	if vd.Type.IsPointer() && !c.Symbols.IsInlinedConstant(id) {
		c.Symbols.AddGlobalPointer(id)
	}
}

// declareGlobalArray declares a global array.  Arrays are always pointers.
func (c *Compiler) declareGlobalArray(ad *ast.ArrayDecl) {
	id := c.newID()
	c.Symbols.PutNodeID(ad, id)
	c.Symbols.PutVarType(id, ad.Type())
	c.Symbols.AddGlobalPointer(id)
}

// declareFunc declares a function, its parameters and its locals.  Functions
// belonging to a script are overloaded in the scope of that script.
func (c *Compiler) declareFunc(fn *ast.FuncDecl, scope string) int {
	st := c.Symbols

	id := c.newID()
	st.PutNodeID(fn, id)

	retTypeID := st.GetOrAssignTypeID(returnType(fn))

	paramTypeIDs := make([]symbols.TypeID, len(fn.Params))
	for i, param := range fn.Params {
		c.declareVar(param)
		paramTypeIDs[i] = st.GetOrAssignTypeID(param.Type)
	}

	for _, local := range fn.Locals {
		c.declareVar(local)
	}

	st.PutFuncTypeIDs(id, retTypeID, paramTypeIDs)

	if scope != "" {
		c.scopes[fn] = scope
	}

	if !st.Overloads.AddFunction(id, symbols.NewFunctionSignature(scopedName(scope, fn.Name), paramTypeIDs)) {
		c.errorCount++
		c.checker.DuplicateFunction(fn)
	}

	return id
}

// declareScript declares the members of a script.  Script-scope variables and
// arrays become globals of the unit.
func (c *Compiler) declareScript(script *ast.Script) pipeline.ScriptMeta {
	meta := pipeline.ScriptMeta{
		NumParams: len(script.Run.Params),
		Kind:      script.Kind,
	}

	for _, vd := range script.Vars {
		c.declareGlobalVar(vd)
	}

	for _, ad := range script.Arrays {
		c.declareGlobalArray(ad)
	}

	meta.RunSymbol = c.declareFunc(script.Run, script.Name)

	for _, fn := range script.Funcs {
		c.declareFunc(fn, script.Name)
	}

	if recvType, ok := script.Kind.ReceiverType(); ok {
		meta.ThisPtr = c.newID()
		meta.HasThis = true
		c.Symbols.PutVarType(meta.ThisPtr, recvType)
	}

	return meta
}

// returnType returns the declared return type of a function: void if none.
func returnType(fn *ast.FuncDecl) types.Type {
	if fn.ReturnType == nil {
		return types.PrimTypeVoid
	}

	return fn.ReturnType
}

// scopedName returns the name a function is overloaded under.
func scopedName(scope, name string) string {
	if scope == "" {
		return name
	}

	return scope + "." + name
}
