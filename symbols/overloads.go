package symbols

import (
	"sort"

	"zscript/report"
)

// overload is a single entry of the overload index.
type overload struct {
	sig    FunctionSignature
	funcID int
}

// OverloadIndex orders every declared function of a unit by signature.  It is
// the source of the candidate sets recorded for call sites.
type OverloadIndex struct {
	// overloads is kept sorted by signature.
	overloads []overload

	sigs map[int]FunctionSignature

	sealed bool
}

// NewOverloadIndex creates a new, empty overload index.
func NewOverloadIndex() *OverloadIndex {
	return &OverloadIndex{sigs: make(map[int]FunctionSignature)}
}

// Seal makes the index read-only: any later AddFunction is an ICE.
func (oi *OverloadIndex) Seal() {
	oi.sealed = true
}

// search returns the position of the first entry not less than sig.
func (oi *OverloadIndex) search(sig FunctionSignature) int {
	return sort.Search(len(oi.overloads), func(i int) bool {
		return oi.overloads[i].sig.Compare(sig) >= 0
	})
}

// AddFunction adds a function to the index.  It returns false if a function
// with an equal signature already exists: the function is not added.
func (oi *OverloadIndex) AddFunction(funcID int, sig FunctionSignature) bool {
	if oi.sealed {
		report.ReportICE("AddFunction called on a sealed overload index")
	}

	ndx := oi.search(sig)
	if ndx < len(oi.overloads) && oi.overloads[ndx].sig.Equal(sig) {
		return false
	}

	oi.overloads = append(oi.overloads, overload{})
	copy(oi.overloads[ndx+1:], oi.overloads[ndx:])
	oi.overloads[ndx] = overload{sig: sig, funcID: funcID}
	oi.sigs[funcID] = sig

	return true
}

// Lookup returns the function with exactly the given signature.
func (oi *OverloadIndex) Lookup(sig FunctionSignature) (int, bool) {
	ndx := oi.search(sig)
	if ndx < len(oi.overloads) && oi.overloads[ndx].sig.Equal(sig) {
		return oi.overloads[ndx].funcID, true
	}

	return 0, false
}

// Signature returns the signature a function was indexed under.
func (oi *OverloadIndex) Signature(funcID int) (FunctionSignature, bool) {
	sig, ok := oi.sigs[funcID]
	return sig, ok
}

// Overloads returns all the functions with the given name ordered by
// signature.
func (oi *OverloadIndex) Overloads(name string) []int {
	var funcIDs []int

	for ndx := oi.search(FunctionSignature{Name: name}); ndx < len(oi.overloads); ndx++ {
		if oi.overloads[ndx].sig.Name != name {
			break
		}

		funcIDs = append(funcIDs, oi.overloads[ndx].funcID)
	}

	return funcIDs
}

// Candidates returns the functions with the given name that accept the given
// number of arguments, ordered by signature.
func (oi *OverloadIndex) Candidates(name string, arity int) []int {
	var funcIDs []int

	for _, funcID := range oi.Overloads(name) {
		if len(oi.sigs[funcID].ParamTypeIDs) == arity {
			funcIDs = append(funcIDs, funcID)
		}
	}

	return funcIDs
}

// Len returns the number of indexed functions.
func (oi *OverloadIndex) Len() int {
	return len(oi.overloads)
}
