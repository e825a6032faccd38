// Package link turns symbolic intermediate code into addressed code: it owns
// the link table mapping functions to entry labels and globals to storage
// slots, the per-function stack frames and the context handed to emission.
package link

import (
	"zscript/common"
	"zscript/report"
	"zscript/symbols"
)

// SlotState distinguishes the states of a global in the link table.
type SlotState int

// Enumeration of slot states.
const (
	SlotUnregistered SlotState = iota // Never registered.
	SlotDeferred                      // Pointer global awaiting a real slot.
	SlotAssigned                      // Holds a real slot.
)

// deferredSlot is the slot recorded for pointer globals awaiting a real slot.
// It is never handed out as a real slot.
const deferredSlot = 0

// LinkTable maps function ids to entry labels and global variable ids to
// storage slots.  It is populated during the linking phase and sealed before
// emission: it is read-only afterwards.
type LinkTable struct {
	symbols *symbols.SymbolTable

	funcLabels map[int]int
	globalIDs  map[int]int

	// nextSlot is the next unused scalar slot.  Slots start at 1.
	nextSlot int

	sealed bool
}

// NewLinkTable creates a new link table for the functions and globals of a
// symbol table.
func NewLinkTable(st *symbols.SymbolTable) *LinkTable {
	return &LinkTable{
		symbols:    st,
		funcLabels: make(map[int]int),
		globalIDs:  make(map[int]int),
		nextSlot:   deferredSlot + 1,
	}
}

// Seal marks the end of the linking phase.
func (lt *LinkTable) Seal() {
	lt.sealed = true
}

// Sealed returns whether the table has been sealed.
func (lt *LinkTable) Sealed() bool {
	return lt.sealed
}

func (lt *LinkTable) checkMutable(op string) {
	if lt.sealed {
		report.ReportICE("%s called on a sealed link table", op)
	}
}

// -----------------------------------------------------------------------------

// AddFunctionLabel registers the entry label of a function.  The function's
// type must already be committed to the symbol table.
func (lt *LinkTable) AddFunctionLabel(funcID, label int) {
	lt.checkMutable("AddFunctionLabel")

	if !lt.symbols.HasFuncTypeIDs(funcID) {
		report.ReportICE("linking function f%d before its type was committed", funcID)
	}

	lt.funcLabels[funcID] = label
}

// FunctionToLabel returns the entry label of a function.
func (lt *LinkTable) FunctionToLabel(funcID int) int {
	label, ok := lt.funcLabels[funcID]
	if !ok {
		report.ReportICE("function f%d was never linked", funcID)
	}

	return label
}

// FunctionCount returns the number of linked functions.
func (lt *LinkTable) FunctionCount() int {
	return len(lt.funcLabels)
}

// -----------------------------------------------------------------------------

// AddGlobalVar assigns the next unused slot to a global variable and returns
// it.  Registering the same variable twice assigns it a new slot: callers must
// not double-register scalars.  This is also how a deferred pointer global
// receives its real slot.
func (lt *LinkTable) AddGlobalVar(varID int) int {
	lt.checkMutable("AddGlobalVar")

	slot := lt.nextSlot
	lt.nextSlot++
	lt.globalIDs[varID] = slot
	return slot
}

// AddGlobalPointer registers a pointer global whose slot is deferred.
func (lt *LinkTable) AddGlobalPointer(varID int) {
	lt.checkMutable("AddGlobalPointer")

	lt.globalIDs[varID] = deferredSlot
}

// GlobalID returns the slot recorded for a global: 0 if it is deferred or was
// never registered.  Use GlobalSlot to tell these apart.
func (lt *LinkTable) GlobalID(varID int) int {
	return lt.globalIDs[varID]
}

// GlobalSlot returns the slot recorded for a global and its state.
func (lt *LinkTable) GlobalSlot(varID int) (int, SlotState) {
	slot, ok := lt.globalIDs[varID]
	switch {
	case !ok:
		return 0, SlotUnregistered
	case slot == deferredSlot:
		return 0, SlotDeferred
	default:
		return slot, SlotAssigned
	}
}

// DeferredGlobals returns the ids of the pointer globals still awaiting a slot
// in the order they were flagged in the symbol table.
func (lt *LinkTable) DeferredGlobals() []int {
	return common.Filter(lt.symbols.GlobalPointers(), func(varID int) bool {
		_, state := lt.GlobalSlot(varID)
		return state == SlotDeferred
	})
}

// GlobalSlots returns a copy of the slot of every assigned global.
func (lt *LinkTable) GlobalSlots() map[int]int {
	slots := make(map[int]int, len(lt.globalIDs))
	for varID, slot := range lt.globalIDs {
		if slot != deferredSlot {
			slots[varID] = slot
		}
	}

	return slots
}

// FuncLabels returns a copy of the label of every linked function.
func (lt *LinkTable) FuncLabels() map[int]int {
	labels := make(map[int]int, len(lt.funcLabels))
	for funcID, label := range lt.funcLabels {
		labels[funcID] = label
	}

	return labels
}
