// Package ast contains the declaration nodes the binding core consumes.  The
// parser owns the full syntax tree: the core only ever reads the identity of a
// node and the name and type information its declaration exposes.
package ast

import "zscript/report"

// NodeIndex is the dense identity of a node.  It is assigned by an arena when
// the node is created and never changes afterwards.
type NodeIndex int

// The abstract interface for all AST nodes.
type Node interface {
	// The arena index of the node.
	Index() NodeIndex

	// The text span of the node: may be nil for synthesized nodes.
	Span() *report.TextSpan
}

// A utility base struct for all AST nodes.
type NodeBase struct {
	index NodeIndex
	span  *report.TextSpan
}

func (nb NodeBase) Index() NodeIndex {
	return nb.index
}

func (nb NodeBase) Span() *report.TextSpan {
	return nb.span
}

// -----------------------------------------------------------------------------

// Arena hands out node indices.  All the nodes of one compilation unit must be
// created through the same arena so that their indices are unique.
type Arena struct {
	next NodeIndex
}

// NewBase creates a new node base with the next free index.
func (a *Arena) NewBase(span *report.TextSpan) NodeBase {
	nb := NodeBase{index: a.next, span: span}
	a.next++
	return nb
}

// Len returns the number of nodes created through the arena.
func (a *Arena) Len() int {
	return int(a.next)
}
