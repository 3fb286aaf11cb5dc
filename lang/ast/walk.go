// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ast

import (
	"errors"
	"fmt"
)

// NoParent is the parent id of the root.
const NoParent = -1

// SkipChildren may be returned by a Walk callback to prune the subtree of
// the visited element.
var SkipChildren = errors.New("skip children")

// Visit describes one element reached by Walk.
type Visit struct {
	ID     int    // pre-order index, root is 0
	Parent int    // ID of the parent, NoParent for the root
	Depth  int    // root is 0
	Label  string // node label or literal text
	Node   *Node  // nil when the element is a Literal
}

// IsLiteral reports whether the visited element is a literal child.
func (v Visit) IsLiteral() bool { return v.Node == nil }

// Walk visits the tree depth first in pre-order, literals included, and
// numbers every element in visiting order. The traversal uses an explicit
// stack so deep trees do not grow the goroutine stack.
func Walk(root *Node, fn func(Visit) error) error {
	if root == nil {
		return nil
	}
	type frame struct {
		child  Child
		parent int
		depth  int
	}
	stack := []frame{{root, NoParent, 0}}
	next := 0
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		v := Visit{ID: next, Parent: f.parent, Depth: f.depth}
		next++
		switch c := f.child.(type) {
		case *Node:
			v.Label, v.Node = c.Label, c
		case Literal:
			v.Label = string(c)
		default:
			return fmt.Errorf("ast: unexpected child %T", c)
		}
		err := fn(v)
		if err == SkipChildren {
			continue
		}
		if err != nil {
			return err
		}
		if v.Node == nil {
			continue
		}
		for i := len(v.Node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{v.Node.Children[i], v.ID, v.Depth + 1})
		}
	}
	return nil
}

// Flatten returns every element of the tree in pre-order.
func Flatten(root *Node) []Visit {
	var out []Visit
	Walk(root, func(v Visit) error {
		out = append(out, v)
		return nil
	})
	return out
}

// Terminals returns the text of every leaf in pre-order: literal children and
// childless nodes.
func Terminals(root *Node) []string {
	var out []string
	Walk(root, func(v Visit) error {
		if v.IsLiteral() || v.Node.IsLeaf() {
			out = append(out, v.Label)
		}
		return nil
	})
	return out
}
