package symbols

import (
	"zscript/ast"
	"zscript/report"
)

// NodeID returns the id assigned to a node and whether one was assigned.
func (st *SymbolTable) NodeID(node ast.Node) (int, bool) {
	id, ok := st.nodeIDs[node.Index()]
	return id, ok
}

// PutNodeID assigns an id to a node.  A node receives at most one id:
// assigning the same id again is harmless, assigning a different one is an
// internal error.
func (st *SymbolTable) PutNodeID(node ast.Node, id int) {
	st.checkMutable("PutNodeID")

	if prev, ok := st.nodeIDs[node.Index()]; ok && prev != id {
		report.ReportICE("node %d already bound to id %d (rebinding to %d)", node.Index(), prev, id)
	}

	st.nodeIDs[node.Index()] = id
}

// mustNodeID returns the id of a node or raises an ICE.
func (st *SymbolTable) mustNodeID(node ast.Node) int {
	id, ok := st.nodeIDs[node.Index()]
	if !ok {
		report.ReportICE("node %d has no id", node.Index())
	}

	return id
}

// -----------------------------------------------------------------------------

// CandidateState distinguishes the states of a call site's candidate set.
type CandidateState int

// Enumeration of candidate set states.
const (
	CandidatesPending CandidateState = iota // Overload resolution not attempted yet.
	CandidatesNone                          // Resolution found no viable candidate.
	CandidatesFound                         // Resolution found one or more candidates.
)

// CandidateSet is the set of functions a call site may still resolve to.
type CandidateSet struct {
	State   CandidateState
	FuncIDs []int
}

// Resolved returns the function a call site resolves to if exactly one
// candidate remains.
func (cs CandidateSet) Resolved() (int, bool) {
	if cs.State == CandidatesFound && len(cs.FuncIDs) == 1 {
		return cs.FuncIDs[0], true
	}

	return 0, false
}

// Ambiguous returns whether more than one candidate remains.
func (cs CandidateSet) Ambiguous() bool {
	return cs.State == CandidatesFound && len(cs.FuncIDs) > 1
}

// PossibleFuncIDs returns the candidate set recorded for a call site.
func (st *SymbolTable) PossibleFuncIDs(node ast.Node) CandidateSet {
	ids, ok := st.possibleNodeFuncIDs[node.Index()]
	switch {
	case !ok:
		return CandidateSet{State: CandidatesPending}
	case len(ids) == 0:
		return CandidateSet{State: CandidatesNone}
	default:
		return CandidateSet{State: CandidatesFound, FuncIDs: append([]int(nil), ids...)}
	}
}

// PutPossibleFuncIDs records the candidate functions of a call site,
// replacing any previous set.  The order of the ids is preserved.
func (st *SymbolTable) PutPossibleFuncIDs(node ast.Node, funcIDs []int) {
	st.checkMutable("PutPossibleFuncIDs")

	st.possibleNodeFuncIDs[node.Index()] = append(make([]int, 0, len(funcIDs)), funcIDs...)
}

// NarrowPossibleFuncIDs removes the candidates of a call site for which keep
// returns false and returns the narrowed set.  The call site must already
// have a candidate set.
func (st *SymbolTable) NarrowPossibleFuncIDs(node ast.Node, keep func(funcID int) bool) CandidateSet {
	st.checkMutable("NarrowPossibleFuncIDs")

	ids, ok := st.possibleNodeFuncIDs[node.Index()]
	if !ok {
		report.ReportICE("narrowing candidates of node %d before they were computed", node.Index())
	}

	narrowed := make([]int, 0, len(ids))
	for _, id := range ids {
		if keep(id) {
			narrowed = append(narrowed, id)
		}
	}

	st.possibleNodeFuncIDs[node.Index()] = narrowed
	return st.PossibleFuncIDs(node)
}
