package build

import (
	"strings"

	"zscript/ast"
	"zscript/common"
	"zscript/report"
	"zscript/symbols"
)

// Checker is the semantic checker collaborator: the passes only record facts
// about source errors and hand them to the checker, which decides how they are
// presented to the user.
type Checker interface {
	// UnresolvedCall is called for a call site that does not resolve to
	// exactly one function.
	UnresolvedCall(caller *ast.FuncDecl, call *ast.Call, cs symbols.CandidateSet)

	// DuplicateFunction is called for a function whose signature equals that
	// of a function declared before it.
	DuplicateFunction(fn *ast.FuncDecl)
}

// ReportingChecker reports source errors through the global reporter.
type ReportingChecker struct {
	Path string
}

func (rc ReportingChecker) UnresolvedCall(caller *ast.FuncDecl, call *ast.Call, cs symbols.CandidateSet) {
	switch cs.State {
	case symbols.CandidatesNone:
		report.ReportCompileError(rc.Path, call.Span(), "no function `%s` matches the call in `%s`", call.Name, caller.Name)
	default:
		report.ReportCompileError(rc.Path, call.Span(), "call to `%s` in `%s` is ambiguous between %d overloads", call.Name, caller.Name, len(cs.FuncIDs))
	}
}

func (rc ReportingChecker) DuplicateFunction(fn *ast.FuncDecl) {
	paramNames := common.Map(fn.Params, func(param *ast.VarDecl) string {
		return param.Type.Repr()
	})

	report.ReportCompileError(rc.Path, fn.Span(), "function `%s(%s)` declared multiple times", fn.Name, strings.Join(paramNames, ", "))
}
