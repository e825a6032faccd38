// Package build is the compile driver: it runs symbol collection, call
// resolution, function extraction, intermediate generation and linking over
// one compilation unit.
package build

import (
	"zscript/ast"
	"zscript/link"
	"zscript/opcode"
	"zscript/report"
	"zscript/symbols"
)

// Compiler holds the state of the compilation of one unit.
type Compiler struct {
	// Symbols is the symbol table of the unit.
	Symbols *symbols.SymbolTable

	// path is the path reported in user-facing messages.
	path string

	checker   Checker
	generator CodeGenerator

	// parallel indicates whether functions are emitted concurrently.
	parallel bool

	labels opcode.LabelAllocator

	// nextID is the next free variable/function id.  Variables and functions
	// share one id space.
	nextID int

	// scopes maps script member functions to the name of their script.
	scopes map[*ast.FuncDecl]string

	// errorCount counts the source errors handed to the checker.
	errorCount int
}

// NewCompiler creates a new compiler.  The checker may be nil in which case
// source errors are reported through the global reporter.
func NewCompiler(path string, checker Checker, parallel bool) *Compiler {
	if checker == nil {
		checker = ReportingChecker{Path: path}
	}

	return &Compiler{
		Symbols:  symbols.NewSymbolTable(),
		path:     path,
		checker:  checker,
		parallel: parallel,
		scopes:   make(map[*ast.FuncDecl]string),
	}
}

// SetGenerator replaces the code generator used for intermediate generation.
func (c *Compiler) SetGenerator(gen CodeGenerator) {
	c.generator = gen
}

// ErrorCount returns the number of source errors found so far.
func (c *Compiler) ErrorCount() int {
	return c.errorCount
}

// newID returns a fresh variable/function id.
func (c *Compiler) newID() int {
	id := c.nextID
	c.nextID++
	return id
}

// Compile runs every phase over a program.  It returns false if the program
// contains source errors: the errors have been handed to the checker.
func (c *Compiler) Compile(prog *ast.Program) (*link.Program, bool) {
	report.ReportBeginPhase("Collecting")
	sd := c.CollectSymbols(prog)
	c.ResolveCalls(sd)
	report.ReportEndPhase()

	if c.errorCount > 0 {
		return nil, false
	}

	report.ReportBeginPhase("Extracting")
	fd := c.ExtractFunctions(sd)
	report.ReportEndPhase()

	report.ReportBeginPhase("Generating")
	if c.generator == nil {
		c.generator = NewDeclGenerator(sd)
	}
	ir := c.GenerateIntermediate(fd)
	report.ReportEndPhase()

	report.ReportBeginPhase("Linking")
	linked := c.Link(fd, ir)
	report.ReportEndPhase()

	return linked, true
}
