package build

import (
	"strings"
	"testing"

	"zscript/ast"
	"zscript/link"
	"zscript/opcode"
	"zscript/pipeline"
	"zscript/report"
	"zscript/symbols"
	"zscript/types"
)

// recordingChecker records the source errors handed to it.
type recordingChecker struct {
	unresolved []string
	duplicates []string
}

func (rc *recordingChecker) UnresolvedCall(caller *ast.FuncDecl, call *ast.Call, cs symbols.CandidateSet) {
	rc.unresolved = append(rc.unresolved, caller.Name+"->"+call.Name)
}

func (rc *recordingChecker) DuplicateFunction(fn *ast.FuncDecl) {
	rc.duplicates = append(rc.duplicates, fn.Name)
}

func i64(x int64) *int64 {
	return &x
}

// programBuilder builds declaration nodes through one arena.
type programBuilder struct {
	arena ast.Arena
}

func (pb *programBuilder) v(name string, typ types.Type) *ast.VarDecl {
	return &ast.VarDecl{NodeBase: pb.arena.NewBase(nil), Name: name, Type: typ}
}

func (pb *programBuilder) constant(name string, value int64) *ast.VarDecl {
	vd := pb.v(name, types.PrimTypeFloat)
	vd.Const = true
	vd.Init = i64(value)
	return vd
}

func (pb *programBuilder) initialized(name string, value int64) *ast.VarDecl {
	vd := pb.v(name, types.PrimTypeFloat)
	vd.Init = i64(value)
	return vd
}

func (pb *programBuilder) fn(name string, params ...*ast.VarDecl) *ast.FuncDecl {
	return &ast.FuncDecl{NodeBase: pb.arena.NewBase(nil), Name: name, ReturnType: types.PrimTypeVoid, Params: params}
}

func (pb *programBuilder) call(name string, args ...types.Type) *ast.Call {
	return &ast.Call{NodeBase: pb.arena.NewBase(nil), Name: name, ArgTypes: args}
}

func (pb *programBuilder) array(name string, size int) *ast.ArrayDecl {
	return &ast.ArrayDecl{NodeBase: pb.arena.NewBase(nil), Name: name, ElemType: types.PrimTypeFloat, Size: size}
}

// sampleProgram declares:
//
//	const float Max = 4; float counter = 1; Enemy boss; float[8] buf
//	void clamp(float x); void clamp(float x, float y); void clamp(Enemy e)
//	ffc script Mover { float speed = 2; float[3] path; void step(); void run(float dir) }
//
// Mover.run calls step, clamp(float) and clamp(?, float); step calls clamp(Enemy).
type sample struct {
	prog                      *ast.Program
	max, counter, boss, speed *ast.VarDecl
	buf, path                 *ast.ArrayDecl
	clamp1, clamp2, clampE    *ast.FuncDecl
	step, run                 *ast.FuncDecl
	script                    *ast.Script
}

func sampleProgram() *sample {
	pb := &programBuilder{}
	s := &sample{}

	enemyDecl := &ast.ClassDecl{NodeBase: pb.arena.NewBase(nil), Name: "Enemy"}
	enemy := &types.ClassType{ClassID: 0, Name: "Enemy"}

	s.max = pb.constant("Max", 4)
	s.counter = pb.initialized("counter", 1)
	s.boss = pb.v("boss", enemy)
	s.buf = pb.array("buf", 8)

	s.clamp1 = pb.fn("clamp", pb.v("x", types.PrimTypeFloat))
	s.clamp2 = pb.fn("clamp", pb.v("x", types.PrimTypeFloat), pb.v("y", types.PrimTypeFloat))
	s.clampE = pb.fn("clamp", pb.v("e", enemy))

	s.speed = pb.initialized("speed", 2)
	s.path = pb.array("path", 3)

	s.step = pb.fn("step")
	s.step.Calls = []*ast.Call{pb.call("clamp", enemy)}
	s.step.Locals = []*ast.VarDecl{pb.constant("Half", 2), pb.initialized("tmp", 5)}

	s.run = pb.fn("run", pb.v("dir", types.PrimTypeFloat))
	s.run.Calls = []*ast.Call{
		pb.call("step"),
		pb.call("clamp", types.PrimTypeFloat),
		pb.call("clamp", nil, types.PrimTypeFloat),
	}

	s.script = &ast.Script{
		NodeBase: pb.arena.NewBase(nil),
		Name:     "Mover",
		Kind:     ast.ScriptKindFFC,
		Run:      s.run,
		Funcs:    []*ast.FuncDecl{s.step},
		Vars:     []*ast.VarDecl{s.speed},
		Arrays:   []*ast.ArrayDecl{s.path},
	}

	s.prog = &ast.Program{
		Classes: []*ast.ClassDecl{enemyDecl},
		Vars:    []*ast.VarDecl{s.max, s.counter, s.boss},
		Arrays:  []*ast.ArrayDecl{s.buf},
		Funcs:   []*ast.FuncDecl{s.clamp1, s.clamp2, s.clampE},
		Scripts: []*ast.Script{s.script},
	}

	return s
}

func id(t *testing.T, c *Compiler, node ast.Node) int {
	t.Helper()

	nodeID, ok := c.Symbols.NodeID(node)
	if !ok {
		t.Fatalf("node %d has no id", node.Index())
	}

	return nodeID
}

func TestCollectSymbols(t *testing.T) {
	s := sampleProgram()
	rc := &recordingChecker{}
	c := NewCompiler("sample.toml", rc, false)
	st := c.Symbols

	sd := c.CollectSymbols(s.prog)

	if st.ClassCount() != 1 || st.Class(0).Name != "Enemy" {
		t.Errorf("classes not created: %d", st.ClassCount())
	}

	if !st.IsNodeInlinedConstant(s.max) || st.NodeInlinedValue(s.max) != 4 {
		t.Error("const global Max not folded")
	}

	if st.IsNodeInlinedConstant(s.counter) {
		t.Error("non-const global folded")
	}

	wantPointers := []int{id(t, c, s.boss), id(t, c, s.buf), id(t, c, s.path)}
	got := st.GlobalPointers()
	if len(got) != len(wantPointers) {
		t.Fatalf("GlobalPointers() = %v, want %v", got, wantPointers)
	}

	for _, varID := range wantPointers {
		if !st.IsGlobalPointer(varID) {
			t.Errorf("v%d not flagged as a pointer global", varID)
		}
	}

	if st.Overloads.Len() != 5 {
		t.Errorf("Overloads.Len() = %d, want 5", st.Overloads.Len())
	}

	if len(st.Overloads.Overloads("Mover.step")) != 1 || len(st.Overloads.Overloads("step")) != 0 {
		t.Error("script function not overloaded in its script's scope")
	}

	meta := sd.Meta[s.script]
	if meta.RunSymbol != id(t, c, s.run) || meta.NumParams != 1 || !meta.HasThis {
		t.Errorf("script meta = %+v", meta)
	}

	if recv := st.VarType(meta.ThisPtr); !types.Equals(recv, types.PrimTypeFFC) {
		t.Errorf("receiver type = %s, want ffc", recv.Repr())
	}

	// ids are unique across variables and functions
	seen := make(map[int]bool)
	for _, node := range []ast.Node{s.max, s.counter, s.boss, s.buf, s.clamp1, s.clamp2, s.clampE, s.speed, s.path, s.step, s.run} {
		nodeID := id(t, c, node)
		if seen[nodeID] {
			t.Errorf("id %d assigned twice", nodeID)
		}
		seen[nodeID] = true
	}

	if len(rc.duplicates) != 0 {
		t.Errorf("unexpected duplicates: %v", rc.duplicates)
	}
}

func TestCollectSymbols_Duplicate(t *testing.T) {
	pb := &programBuilder{}
	prog := &ast.Program{
		Funcs: []*ast.FuncDecl{
			pb.fn("f", pb.v("a", types.PrimTypeFloat)),
			pb.fn("f", pb.v("b", types.PrimTypeFloat)),
			pb.fn("f", pb.v("c", types.PrimTypeBool)),
		},
	}

	rc := &recordingChecker{}
	c := NewCompiler("dup.toml", rc, false)
	c.CollectSymbols(prog)

	if len(rc.duplicates) != 1 || c.ErrorCount() != 1 {
		t.Errorf("duplicates = %v, error count %d", rc.duplicates, c.ErrorCount())
	}
}

func TestResolveCalls(t *testing.T) {
	s := sampleProgram()
	rc := &recordingChecker{}
	c := NewCompiler("sample.toml", rc, false)

	sd := c.CollectSymbols(s.prog)
	c.ResolveCalls(sd)

	tests := []struct {
		name string
		call *ast.Call
		want *ast.FuncDecl
	}{
		{"script scope", s.run.Calls[0], s.step},
		{"by argument type", s.run.Calls[1], s.clamp1},
		{"unknown argument", s.run.Calls[2], s.clamp2},
		{"class argument", s.step.Calls[0], s.clampE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			funcID, ok := c.Symbols.PossibleFuncIDs(tt.call).Resolved()
			if !ok || funcID != id(t, c, tt.want) {
				t.Errorf("call resolved to %d, %v, want %d", funcID, ok, id(t, c, tt.want))
			}
		})
	}

	if len(rc.unresolved) != 0 {
		t.Errorf("unexpected unresolved calls: %v", rc.unresolved)
	}
}

func TestResolveCalls_ScriptFallback(t *testing.T) {
	pb := &programBuilder{}

	globalClamp := pb.fn("clamp", pb.v("x", types.PrimTypeFloat))
	localClamp := pb.fn("clamp", pb.v("b", types.PrimTypeBool))

	run := pb.fn("run")
	run.Calls = []*ast.Call{
		pb.call("clamp", types.PrimTypeBool),
		pb.call("clamp", types.PrimTypeFloat),
		pb.call("clamp", nil),
	}

	prog := &ast.Program{
		Funcs: []*ast.FuncDecl{globalClamp},
		Scripts: []*ast.Script{{
			NodeBase: pb.arena.NewBase(nil),
			Name:     "Clamper",
			Kind:     ast.ScriptKindGlobal,
			Run:      run,
			Funcs:    []*ast.FuncDecl{localClamp},
		}},
	}

	rc := &recordingChecker{}
	c := NewCompiler("scoped.toml", rc, false)
	c.ResolveCalls(c.CollectSymbols(prog))

	tests := []struct {
		name string
		call *ast.Call
		want *ast.FuncDecl
	}{
		{"script overload matches", run.Calls[0], localClamp},
		{"global overload matches", run.Calls[1], globalClamp},
		{"script overload hides global", run.Calls[2], localClamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			funcID, ok := c.Symbols.PossibleFuncIDs(tt.call).Resolved()
			if !ok || funcID != id(t, c, tt.want) {
				t.Errorf("call resolved to %d, %v, want %d", funcID, ok, id(t, c, tt.want))
			}
		})
	}

	if len(rc.unresolved) != 0 {
		t.Errorf("unexpected unresolved calls: %v", rc.unresolved)
	}
}

func TestResolveCalls_Unresolved(t *testing.T) {
	pb := &programBuilder{}
	caller := pb.fn("main")
	caller.Calls = []*ast.Call{
		pb.call("missing"),
		pb.call("f", nil),
		pb.call("f", types.PrimTypeNPC),
	}

	prog := &ast.Program{
		Funcs: []*ast.FuncDecl{
			pb.fn("f", pb.v("a", types.PrimTypeFloat)),
			pb.fn("f", pb.v("b", types.PrimTypeBool)),
			caller,
		},
	}

	rc := &recordingChecker{}
	c := NewCompiler("bad.toml", rc, false)
	c.ResolveCalls(c.CollectSymbols(prog))

	if len(rc.unresolved) != 3 {
		t.Fatalf("unresolved = %v, want 3 entries", rc.unresolved)
	}

	if cs := c.Symbols.PossibleFuncIDs(caller.Calls[0]); cs.State != symbols.CandidatesNone {
		t.Errorf("missing function state = %d, want none", cs.State)
	}

	if cs := c.Symbols.PossibleFuncIDs(caller.Calls[1]); !cs.Ambiguous() {
		t.Errorf("unknown argument call should be ambiguous: %+v", cs)
	}

	if cs := c.Symbols.PossibleFuncIDs(caller.Calls[2]); cs.State != symbols.CandidatesNone {
		t.Errorf("mismatched argument state = %d, want none", cs.State)
	}

	if _, ok := NewCompiler("bad.toml", &recordingChecker{}, false).Compile(prog); ok {
		t.Error("Compile() succeeded on a program with unresolved calls")
	}
}

func TestExtractFunctions(t *testing.T) {
	s := sampleProgram()
	c := NewCompiler("sample.toml", &recordingChecker{}, false)
	fd := c.ExtractFunctions(c.CollectSymbols(s.prog))

	wantFuncs := []*ast.FuncDecl{s.clamp1, s.clamp2, s.clampE, s.run, s.step}
	if len(fd.Functions) != len(wantFuncs) {
		t.Fatalf("Functions has %d entries, want %d", len(fd.Functions), len(wantFuncs))
	}

	for i, fn := range wantFuncs {
		if fd.Functions[i] != fn {
			t.Errorf("Functions[%d] = %s, want %s", i, fd.Functions[i].Name, fn.Name)
		}
	}

	if len(fd.NewGlobalVars) != 1 || fd.NewGlobalVars[0] != s.speed {
		t.Errorf("NewGlobalVars = %v", fd.NewGlobalVars)
	}

	if len(fd.NewGlobalArrays) != 1 || fd.NewGlobalArrays[0] != s.path {
		t.Errorf("NewGlobalArrays = %v", fd.NewGlobalArrays)
	}

	if fd.GlobalVarCount != 6 {
		t.Errorf("GlobalVarCount = %d, want 6", fd.GlobalVarCount)
	}
}

func TestCompile(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		s := sampleProgram()
		c := NewCompiler("sample.toml", &recordingChecker{}, parallel)

		prog, ok := c.Compile(s.prog)
		if !ok {
			t.Fatalf("Compile(parallel=%v) failed", parallel)
		}

		checkSampleProgram(t, c, s, prog)
	}
}

func checkSampleProgram(t *testing.T, c *Compiler, s *sample, prog *link.Program) {
	t.Helper()
	st := c.Symbols

	if !st.Sealed() {
		t.Error("symbol table not sealed after linking")
	}

	// folded constants have no slot, everything else does
	if _, ok := prog.GlobalSlots[id(t, c, s.max)]; ok {
		t.Error("folded constant Max has a global slot")
	}

	counterSlot := prog.GlobalSlots[id(t, c, s.counter)]
	speedSlot := prog.GlobalSlots[id(t, c, s.speed)]
	if counterSlot != 1 || speedSlot != 2 {
		t.Errorf("scalar slots = %d, %d, want 1, 2", counterSlot, speedSlot)
	}

	// pointer globals are committed after the scalars in flagging order
	for i, node := range []ast.Node{s.boss, s.buf, s.path} {
		if slot := prog.GlobalSlots[id(t, c, node)]; slot != 3+i {
			t.Errorf("pointer global %d has slot %d, want %d", node.Index(), slot, 3+i)
		}
	}

	if len(prog.GlobalPointers) != 3 {
		t.Errorf("GlobalPointers = %v", prog.GlobalPointers)
	}

	entry, ok := prog.Scripts["Mover"]
	if !ok {
		t.Fatal("script Mover missing")
	}

	runID := id(t, c, s.run)
	if entry.RunLabel != prog.FuncLabels[runID] || entry.NumParams != 1 || !entry.HasThis {
		t.Errorf("Mover entry = %+v", entry)
	}

	// run: receiver and dir are parameters behind no locals
	if prog.FrameSizes[runID] != 2 {
		t.Errorf("run frame size = %d, want 2", prog.FrameSizes[runID])
	}

	// step: the folded local Half takes no frame position
	if size := prog.FrameSizes[id(t, c, s.step)]; size != 1 {
		t.Errorf("step frame size = %d, want 1", size)
	}

	for funcID, ops := range prog.Funcs {
		if !opcode.IsLinked(ops) {
			t.Errorf("f%d still contains symbolic instructions", funcID)
		}
	}

	wantRun := []string{
		opcode.Label{ID: entry.RunLabel}.String(),
		opcode.CallLabel{Label: prog.FuncLabels[id(t, c, s.step)]}.String(),
		opcode.CallLabel{Label: prog.FuncLabels[id(t, c, s.clamp1)]}.String(),
		opcode.CallLabel{Label: prog.FuncLabels[id(t, c, s.clamp2)]}.String(),
		"QUIT",
	}
	assertListing(t, "run", prog.Funcs[runID], wantRun)

	wantStep := []string{
		opcode.Label{ID: prog.FuncLabels[id(t, c, s.step)]}.String(),
		"SETV EXP1, 5",
		"STORED EXP1, SFRAME[0]",
		opcode.CallLabel{Label: prog.FuncLabels[id(t, c, s.clampE)]}.String(),
		"RETURN",
	}
	assertListing(t, "step", prog.Funcs[id(t, c, s.step)], wantStep)

	// counter is initialized in place, speed is hoisted out of run
	wantInit := []string{"SETV EXP1, 1", "STOREG EXP1, GD1", "SETV EXP1, 2", "STOREG EXP1, GD2"}
	assertListing(t, "globals init", prog.GlobalsInit, wantInit)

	wantArrays := []string{"ALLOCGMEM GD4, 8", "ALLOCGMEM GD5, 3"}
	assertListing(t, "global arrays init", prog.GlobalArraysInit, wantArrays)

	if !strings.Contains(prog.Listing(), "QUIT") {
		t.Error("Listing() missing the run function")
	}
}

func assertListing(t *testing.T, what string, ops []opcode.Opcode, want []string) {
	t.Helper()

	if len(ops) != len(want) {
		t.Errorf("%s = %v, want %v", what, ops, want)
		return
	}

	for i, op := range ops {
		if op.String() != want[i] {
			t.Errorf("%s[%d] = %q, want %q", what, i, op.String(), want[i])
		}
	}
}

// stubGenerator generates only entry labels and returns.
type stubGenerator struct {
	calls int
}

func (sg *stubGenerator) GenerateFunction(fd *pipeline.FunctionData, fn *ast.FuncDecl, entry int, labels *opcode.LabelAllocator) []opcode.Opcode {
	sg.calls++
	return []opcode.Opcode{opcode.Label{ID: entry}, opcode.GotoLabel{Label: labels.New()}, opcode.Return{}}
}

func (sg *stubGenerator) GenerateGlobalsInit(fd *pipeline.FunctionData) []opcode.Opcode {
	return nil
}

func (sg *stubGenerator) GenerateGlobalArraysInit(fd *pipeline.FunctionData) []opcode.Opcode {
	return nil
}

func TestCompile_CustomGenerator(t *testing.T) {
	s := sampleProgram()
	gen := &stubGenerator{}

	c := NewCompiler("sample.toml", &recordingChecker{}, false)
	c.SetGenerator(gen)

	prog, ok := c.Compile(s.prog)
	if !ok {
		t.Fatal("Compile() failed")
	}

	if gen.calls != 5 {
		t.Errorf("generator called %d times, want 5", gen.calls)
	}

	// entry labels and the generator's own labels never collide
	labels := make(map[int]bool)
	for _, ops := range prog.Funcs {
		for _, op := range ops {
			var label int
			switch op := op.(type) {
			case opcode.Label:
				label = op.ID
			case opcode.GotoLabel:
				label = op.Label
			default:
				continue
			}

			if labels[label] {
				t.Errorf("label %d used twice", label)
			}
			labels[label] = true
		}
	}
}

func TestGenerateIntermediate_NoGenerator(t *testing.T) {
	s := sampleProgram()
	c := NewCompiler("sample.toml", &recordingChecker{}, false)
	sd := c.CollectSymbols(s.prog)
	fd := c.ExtractFunctions(sd)

	defer func() {
		if _, ok := recover().(*report.InternalError); !ok {
			t.Error("expected an internal compiler error")
		}
	}()

	// no generator has been set
	c.GenerateIntermediate(fd)
}
