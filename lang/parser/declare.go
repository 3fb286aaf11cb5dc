// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package parser

import (
	"github.com/probechain/minic/lang/ast"
	"github.com/probechain/minic/lang/symtab"
)

// Declare records declared types in the symbol table: the type keyword of
// every Declaration and DeclarationInit, and "int" for every Function. The
// tree is visited in source order and an entry keeps the first type it is
// given. Names missing from the table are ignored. It returns the number of
// entries that received a type.
func Declare(root *ast.Node, table *symtab.Table) int {
	declared := 0
	ast.Walk(root, func(v ast.Visit) error {
		// Leaves are operands, even when an identifier spells a label.
		if v.IsLiteral() || v.Node.IsLeaf() {
			return nil
		}
		n := v.Node
		switch n.Label {
		case ast.LabelDeclaration, ast.LabelDeclarationInit:
			typ, _ := n.Children[0].(ast.Literal)
			name, _ := n.Children[1].(ast.Literal)
			if table.Declare(string(name), string(typ)) {
				declared++
			}
		case ast.LabelFunction:
			name, _ := n.Children[0].(ast.Literal)
			if table.Declare(string(name), "int") {
				declared++
			}
		}
		return nil
	})
	return declared
}
