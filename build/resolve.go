package build

import (
	"zscript/ast"
	"zscript/pipeline"
	"zscript/symbols"
)

// ResolveCalls computes the candidate set of every call site: the overloads of
// the called name with a matching arity, narrowed to those whose parameter
// types agree with the known argument types.  Calls from inside a script see
// the functions of that script before the global ones and fall back to the
// global ones when none of the script's overloads match.  Every call that does
// not resolve to exactly one function is handed to the checker.
func (c *Compiler) ResolveCalls(sd *pipeline.SymbolData) {
	for _, fn := range allFunctions(sd) {
		for _, call := range fn.Calls {
			c.resolveCall(fn, call)
		}
	}
}

func (c *Compiler) resolveCall(caller *ast.FuncDecl, call *ast.Call) {
	arity := len(call.ArgTypes)

	// script overloads hide global ones only while one of them still matches
	var cs symbols.CandidateSet
	if scope, ok := c.scopes[caller]; ok {
		cs = c.narrowCandidates(call, c.Symbols.Overloads.Candidates(scopedName(scope, call.Name), arity))
	}

	if cs.State != symbols.CandidatesFound {
		cs = c.narrowCandidates(call, c.Symbols.Overloads.Candidates(call.Name, arity))
	}

	if _, ok := cs.Resolved(); !ok {
		c.errorCount++
		c.checker.UnresolvedCall(caller, call, cs)
	}
}

// narrowCandidates records candidates for a call site and narrows them to
// those whose parameter types agree with the known argument types.
func (c *Compiler) narrowCandidates(call *ast.Call, candidates []int) symbols.CandidateSet {
	st := c.Symbols
	st.PutPossibleFuncIDs(call, candidates)

	return st.NarrowPossibleFuncIDs(call, func(funcID int) bool {
		paramTypeIDs := st.FuncParamTypeIDs(funcID)

		for i, argType := range call.ArgTypes {
			// unknown argument types match anything
			if argType == nil {
				continue
			}

			// a type that was never interned cannot be any parameter's type
			argTypeID, ok := st.TypeID(argType)
			if !ok || argTypeID != paramTypeIDs[i] {
				return false
			}
		}

		return true
	})
}

// allFunctions returns every function of a unit: the global functions and
// then, script by script, the run function followed by the script's own
// functions.
func allFunctions(sd *pipeline.SymbolData) []*ast.FuncDecl {
	funcs := append([]*ast.FuncDecl(nil), sd.GlobalFuncs...)

	for _, script := range sd.Scripts {
		funcs = append(funcs, script.Run)
		funcs = append(funcs, script.Funcs...)
	}

	return funcs
}
