// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ast defines the concrete syntax tree produced by the minic parser.
//
// A tree is made of labelled Nodes. A node's children are either nested
// nodes or Literals, raw token text folded directly into the tree such as
// the type keyword of a declaration or the "=" of an assignment. Trees are
// built once by the parser and not modified afterwards.
package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Node labels produced by the parser. Expression nodes are labelled with
// their operator or with the literal text of the operand instead.
const (
	LabelProgram         = "Program"
	LabelDeclaration     = "Declaration"
	LabelDeclarationInit = "DeclarationInit"
	LabelAssignment      = "Assignment"
	LabelIf              = "If"
	LabelReturn          = "Return"
	LabelFunction        = "Function"
	LabelBlock           = "Block"
)

// Child is an element of a node's children: either *Node or Literal.
type Child interface {
	child()
}

// Literal is token text stored verbatim as a child.
type Literal string

func (Literal) child() {}

// Node is a labelled tree element.
type Node struct {
	Label    string
	Children []Child
}

func (*Node) child() {}

// New creates a node with the given children.
func New(label string, children ...Child) *Node {
	return &Node{Label: label, Children: children}
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Child returns the i'th child node, or nil if it is a literal or out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	c, _ := n.Children[i].(*Node)
	return c
}

// String renders the tree as an s-expression: leaves print as their label,
// other nodes as "(Label child...)".
func (n *Node) String() string {
	var out bytes.Buffer
	n.writeTo(&out)
	return out.String()
}

func (n *Node) writeTo(out *bytes.Buffer) {
	if n.IsLeaf() {
		out.WriteString(n.Label)
		return
	}
	out.WriteByte('(')
	out.WriteString(n.Label)
	for _, c := range n.Children {
		out.WriteByte(' ')
		switch c := c.(type) {
		case *Node:
			c.writeTo(out)
		case Literal:
			out.WriteString(string(c))
		default:
			panic(fmt.Sprintf("ast: unexpected child %T", c))
		}
	}
	out.WriteByte(')')
}

// MarshalJSON encodes a node as {"label": ..., "children": [...]}, with
// literal children as plain JSON strings.
func (n *Node) MarshalJSON() ([]byte, error) {
	children := make([]json.RawMessage, 0, len(n.Children))
	for _, c := range n.Children {
		var (
			raw []byte
			err error
		)
		switch c := c.(type) {
		case *Node:
			raw, err = c.MarshalJSON()
		case Literal:
			raw, err = json.Marshal(string(c))
		default:
			err = fmt.Errorf("ast: unexpected child %T", c)
		}
		if err != nil {
			return nil, err
		}
		children = append(children, raw)
	}
	return json.Marshal(struct {
		Label    string            `json:"label"`
		Children []json.RawMessage `json:"children"`
	}{n.Label, children})
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw struct {
		Label    string            `json:"label"`
		Children []json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	n.Label = raw.Label
	n.Children = nil
	for _, c := range raw.Children {
		var lit string
		if err := json.Unmarshal(c, &lit); err == nil {
			n.Children = append(n.Children, Literal(lit))
			continue
		}
		child := new(Node)
		if err := child.UnmarshalJSON(c); err != nil {
			return err
		}
		n.Children = append(n.Children, child)
	}
	return nil
}
