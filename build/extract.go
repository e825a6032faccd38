package build

import (
	"zscript/ast"
	"zscript/pipeline"
)

// ExtractFunctions flattens the functions of a unit into one list and moves
// the script-scope variables and arrays into the unit's new globals.
func (c *Compiler) ExtractFunctions(sd *pipeline.SymbolData) *pipeline.FunctionData {
	var newVars []*ast.VarDecl
	var newArrays []*ast.ArrayDecl

	for _, script := range sd.Scripts {
		newVars = append(newVars, script.Vars...)
		newArrays = append(newArrays, script.Arrays...)
	}

	return pipeline.NewFunctionData(sd, allFunctions(sd), newVars, newArrays)
}
