// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package matcher implements the Matcher and PartialMatch described in
// §4.4: a lockstep, synchronised walk of a template cursor against a set of
// candidate cursors, forking on variadic metavariables and filtering on
// every structural comparison.
package matcher

import "srcx.dev/xform/astview"

// A Cursor is an immutable traversal position: a stack of sibling-list
// frames, each with a current index and a children_accessed flag. Every
// mutating method returns a new Cursor rather than modifying the receiver,
// so a PartialMatch's cursor can be captured cheaply at a fork point (§9,
// "Template cursor vs candidate cursors"). Both the template walk and every
// candidate walk share this one type.
type Cursor struct {
	stack []cursorFrame
}

type cursorFrame struct {
	siblings []*astview.NodeView
	index    int
	visited  bool // children_accessed
}

// NewCursor seats a Cursor at the first of siblings.
func NewCursor(siblings []*astview.NodeView) Cursor {
	return Cursor{stack: []cursorFrame{{siblings: siblings}}}
}

// Done reports whether c has popped past its root.
func (c Cursor) Done() bool { return len(c.stack) == 0 }

func (c Cursor) top() cursorFrame { return c.stack[len(c.stack)-1] }

// Current returns the node c is positioned at, or nil if Done or positioned
// past the end of the current sibling list.
func (c Cursor) Current() *astview.NodeView {
	if c.Done() {
		return nil
	}
	f := c.top()
	if f.index < 0 || f.index >= len(f.siblings) {
		return nil
	}
	return f.siblings[f.index]
}

// Siblings returns the sibling list at c's current level.
func (c Cursor) Siblings() []*astview.NodeView {
	if c.Done() {
		return nil
	}
	return c.top().siblings
}

// Index returns c's index within its current sibling list.
func (c Cursor) Index() int {
	if c.Done() {
		return -1
	}
	return c.top().index
}

// AtLastChild reports whether c is positioned at the last sibling of its
// current level.
func (c Cursor) AtLastChild() bool {
	if c.Done() {
		return false
	}
	f := c.top()
	return f.index == len(f.siblings)-1
}

// ChildrenAccessed reports whether c has already descended into the
// current node's children and returned.
func (c Cursor) ChildrenAccessed() bool {
	if c.Done() {
		return false
	}
	return c.top().visited
}

func cloneStack(stack []cursorFrame) []cursorFrame {
	return append([]cursorFrame(nil), stack...)
}

// WithChildrenAccessed marks the current level as having been descended
// into and returned from.
func (c Cursor) WithChildrenAccessed() Cursor {
	st := cloneStack(c.stack)
	st[len(st)-1].visited = true
	return Cursor{stack: st}
}

// Advanced moves to the next sibling at the current level.
func (c Cursor) Advanced() Cursor {
	st := cloneStack(c.stack)
	st[len(st)-1].index++
	st[len(st)-1].visited = false
	return Cursor{stack: st}
}

// AtIndex repositions the current level's index directly, used when a
// variadic fork or repetition consumes more than one sibling at a time.
func (c Cursor) AtIndex(i int) Cursor {
	st := cloneStack(c.stack)
	st[len(st)-1].index = i
	st[len(st)-1].visited = false
	return Cursor{stack: st}
}

// Popped removes the current level, returning the cursor to its parent.
func (c Cursor) Popped() Cursor {
	if len(c.stack) == 0 {
		return c
	}
	return Cursor{stack: cloneStack(c.stack[:len(c.stack)-1])}
}

// Descended pushes a new level over children, positioned at its first
// element.
func (c Cursor) Descended(children []*astview.NodeView) Cursor {
	st := append(cloneStack(c.stack), cursorFrame{siblings: children})
	return Cursor{stack: st}
}
