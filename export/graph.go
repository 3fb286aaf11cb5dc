// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package export

import (
	"strconv"

	"github.com/emicklei/dot"

	"github.com/probechain/minic/lang/ast"
)

// Graph converts a syntax tree into a directed Graphviz graph. Every element
// visited by ast.Walk becomes a vertex identified by its pre-order id and
// labelled with its label; each child gets an edge from its parent. Literal
// children are drawn without a border.
func Graph(root *ast.Node) *dot.Graph {
	g := dot.NewGraph(dot.Directed)
	vertices := make(map[int]dot.Node)
	ast.Walk(root, func(v ast.Visit) error {
		n := g.Node(strconv.Itoa(v.ID)).Label(v.Label)
		if v.IsLiteral() {
			n.Attr("shape", "plaintext")
		}
		vertices[v.ID] = n
		if v.Parent != ast.NoParent {
			g.Edge(vertices[v.Parent], n)
		}
		return nil
	})
	return g
}

// DOT returns the Graphviz source of the tree diagram.
func DOT(root *ast.Node) string {
	return Graph(root).String()
}
