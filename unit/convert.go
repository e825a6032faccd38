package unit

import (
	"errors"
	"fmt"

	"zscript/ast"
	"zscript/common"
	"zscript/types"
)

// converter converts the TOML declarations of a manifest into declaration
// nodes.  All the nodes of a unit are created through its arena.
type converter struct {
	arena ast.Arena

	// classes maps class names to their types.  Class ids are assigned in
	// declaration order, the same order in which symbol collection creates
	// them.
	classes map[string]*types.ClassType
}

func newConverter() *converter {
	return &converter{classes: make(map[string]*types.ClassType)}
}

func (c *converter) lookupClass(name string) (*types.ClassType, bool) {
	ct, ok := c.classes[name]
	return ct, ok
}

// convertProgram converts every declaration of a manifest.
func (c *converter) convertProgram(tuf *tomlUnitFile) (*ast.Program, error) {
	prog := &ast.Program{}

	for _, tc := range tuf.Classes {
		if !common.IsValidIdentifier(tc.Name) {
			return nil, fmt.Errorf("invalid class name `%s`", tc.Name)
		}

		if _, ok := c.classes[tc.Name]; ok {
			return nil, fmt.Errorf("class `%s` declared multiple times", tc.Name)
		}

		c.classes[tc.Name] = &types.ClassType{ClassID: len(prog.Classes), Name: tc.Name}
		prog.Classes = append(prog.Classes, &ast.ClassDecl{NodeBase: c.arena.NewBase(nil), Name: tc.Name})
	}

	var err error
	if prog.Vars, err = c.convertVars(tuf.Globals, "global"); err != nil {
		return nil, err
	}

	if prog.Arrays, err = c.convertArrays(tuf.Arrays); err != nil {
		return nil, err
	}

	for _, tf := range tuf.Functions {
		fn, err := c.convertFunction(tf)
		if err != nil {
			return nil, err
		}

		prog.Funcs = append(prog.Funcs, fn)
	}

	scriptNames := make(map[string]struct{})
	for _, ts := range tuf.Scripts {
		if _, ok := scriptNames[ts.Name]; ok {
			return nil, fmt.Errorf("script `%s` declared multiple times", ts.Name)
		}
		scriptNames[ts.Name] = struct{}{}

		script, err := c.convertScript(ts)
		if err != nil {
			return nil, err
		}

		prog.Scripts = append(prog.Scripts, script)
	}

	return prog, nil
}

// convertType converts a type name.  Void is only valid as a return type.
func (c *converter) convertType(name string, allowVoid bool) (types.Type, error) {
	typ, ok := types.ParseTypeName(name, c.lookupClass)
	if !ok {
		return nil, fmt.Errorf("unknown type `%s`", name)
	}

	if !allowVoid && typ == types.PrimTypeVoid {
		return nil, errors.New("variables cannot be of type `void`")
	}

	return typ, nil
}

func (c *converter) convertVars(tvars []*tomlVar, kind string) ([]*ast.VarDecl, error) {
	vars := make([]*ast.VarDecl, 0, len(tvars))

	for _, tv := range tvars {
		if !common.IsValidIdentifier(tv.Name) {
			return nil, fmt.Errorf("invalid %s name `%s`", kind, tv.Name)
		}

		typ, err := c.convertType(tv.Type, false)
		if err != nil {
			return nil, fmt.Errorf("%s `%s`: %s", kind, tv.Name, err.Error())
		}

		if tv.Const && tv.Init == nil {
			return nil, fmt.Errorf("constant `%s` must have an initializer", tv.Name)
		}

		vd := &ast.VarDecl{
			NodeBase: c.arena.NewBase(nil),
			Name:     tv.Name,
			Type:     typ,
			Const:    tv.Const,
		}

		if tv.Init != nil {
			value := *tv.Init
			vd.Init = &value
		}

		vars = append(vars, vd)
	}

	return vars, nil
}

func (c *converter) convertArrays(tarrays []*tomlArray) ([]*ast.ArrayDecl, error) {
	arrays := make([]*ast.ArrayDecl, 0, len(tarrays))

	for _, ta := range tarrays {
		if !common.IsValidIdentifier(ta.Name) {
			return nil, fmt.Errorf("invalid array name `%s`", ta.Name)
		}

		elemType, err := c.convertType(ta.ElemType, false)
		if err != nil {
			return nil, fmt.Errorf("array `%s`: %s", ta.Name, err.Error())
		}

		if ta.Size <= 0 {
			return nil, fmt.Errorf("array `%s` must have a positive size", ta.Name)
		}

		arrays = append(arrays, &ast.ArrayDecl{
			NodeBase: c.arena.NewBase(nil),
			Name:     ta.Name,
			ElemType: elemType,
			Size:     ta.Size,
		})
	}

	return arrays, nil
}

func (c *converter) convertFunction(tf *tomlFunction) (*ast.FuncDecl, error) {
	if !common.IsValidIdentifier(tf.Name) {
		return nil, fmt.Errorf("invalid function name `%s`", tf.Name)
	}

	fn := &ast.FuncDecl{
		NodeBase:   c.arena.NewBase(nil),
		Name:       tf.Name,
		ReturnType: types.PrimTypeVoid,
	}

	if tf.ReturnType != "" {
		retType, err := c.convertType(tf.ReturnType, true)
		if err != nil {
			return nil, fmt.Errorf("function `%s`: %s", tf.Name, err.Error())
		}

		fn.ReturnType = retType
	}

	var err error
	if fn.Params, err = c.convertVars(tf.Params, "parameter"); err != nil {
		return nil, fmt.Errorf("function `%s`: %s", tf.Name, err.Error())
	}

	if fn.Locals, err = c.convertVars(tf.Locals, "local"); err != nil {
		return nil, fmt.Errorf("function `%s`: %s", tf.Name, err.Error())
	}

	for _, tc := range tf.Calls {
		call := &ast.Call{
			NodeBase: c.arena.NewBase(nil),
			Name:     tc.Name,
			ArgTypes: make([]types.Type, len(tc.Args)),
		}

		for i, arg := range tc.Args {
			if arg == "?" {
				continue
			}

			argType, err := c.convertType(arg, false)
			if err != nil {
				return nil, fmt.Errorf("call to `%s` in `%s`: %s", tc.Name, tf.Name, err.Error())
			}

			call.ArgTypes[i] = argType
		}

		fn.Calls = append(fn.Calls, call)
	}

	return fn, nil
}

func (c *converter) convertScript(ts *tomlScript) (*ast.Script, error) {
	if !common.IsValidIdentifier(ts.Name) {
		return nil, fmt.Errorf("invalid script name `%s`", ts.Name)
	}

	kind, ok := ast.ParseScriptKind(ts.Kind)
	if !ok {
		return nil, fmt.Errorf("script `%s` has unknown kind `%s`", ts.Name, ts.Kind)
	}

	if ts.Run == nil {
		return nil, fmt.Errorf("script `%s` has no run function", ts.Name)
	}

	script := &ast.Script{
		NodeBase: c.arena.NewBase(nil),
		Name:     ts.Name,
		Kind:     kind,
	}

	var err error
	if script.Run, err = c.convertFunction(ts.Run); err != nil {
		return nil, fmt.Errorf("script `%s`: %s", ts.Name, err.Error())
	}

	for _, tf := range ts.Functions {
		fn, err := c.convertFunction(tf)
		if err != nil {
			return nil, fmt.Errorf("script `%s`: %s", ts.Name, err.Error())
		}

		script.Funcs = append(script.Funcs, fn)
	}

	if script.Vars, err = c.convertVars(ts.Vars, "script variable"); err != nil {
		return nil, fmt.Errorf("script `%s`: %s", ts.Name, err.Error())
	}

	if script.Arrays, err = c.convertArrays(ts.Arrays); err != nil {
		return nil, fmt.Errorf("script `%s`: %s", ts.Name, err.Error())
	}

	return script, nil
}
