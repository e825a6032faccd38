package symbols

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// Diagnostics renders the contents of the symbol table as a set of tables.
// It is a debugging aid for compiler developers: its format is not stable.
func (st *SymbolTable) Diagnostics() (string, error) {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("symbol table (build %s)\n\n", st.BuildID))

	typeData := pterm.TableData{{"Type ID", "Type"}}
	for id, typ := range st.types {
		typeData = append(typeData, []string{strconv.Itoa(id), typ.Repr()})
	}

	varData := pterm.TableData{{"Var ID", "Type", "Inlined", "Global Pointer"}}
	for _, varID := range sortedKeys(st.varTypes) {
		inlined := "-"
		if value, ok := st.inlinedConstants[varID]; ok {
			inlined = strconv.FormatInt(value, 10)
		}

		varData = append(varData, []string{
			strconv.Itoa(varID),
			st.types[st.varTypes[varID]].Repr(),
			inlined,
			strconv.FormatBool(st.IsGlobalPointer(varID)),
		})
	}

	funcData := pterm.TableData{{"Func ID", "Signature", "Returns"}}
	for _, funcID := range sortedKeys(st.funcTypes) {
		ft := st.funcTypes[funcID]

		name := "?"
		if sig, ok := st.Overloads.Signature(funcID); ok {
			name = sig.Name
		}

		paramReprs := make([]string, len(ft.ParamTypeIDs))
		for i, paramTypeID := range ft.ParamTypeIDs {
			paramReprs[i] = st.types[paramTypeID].Repr()
		}

		funcData = append(funcData, []string{
			strconv.Itoa(funcID),
			name + "(" + strings.Join(paramReprs, ", ") + ")",
			st.types[ft.ReturnTypeID].Repr(),
		})
	}

	for _, data := range []pterm.TableData{typeData, varData, funcData} {
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return "", err
		}

		sb.WriteString(table)
		sb.WriteString("\n\n")
	}

	sb.WriteString(fmt.Sprintf("classes: %d, call sites: %d, global pointers: %v\n",
		len(st.classes), len(st.possibleNodeFuncIDs), st.globalPointers))

	return sb.String(), nil
}

// PrintDiagnostics prints the symbol table diagnostics to the console.
func (st *SymbolTable) PrintDiagnostics() error {
	diag, err := st.Diagnostics()
	if err != nil {
		return err
	}

	fmt.Print(diag)
	return nil
}

// sortedKeys returns the keys of an id-keyed map in ascending order.
func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Ints(keys)
	return keys
}
