// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ast

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample builds the tree of "int a = 5; if (a > b) { return a; }".
func sample() *Node {
	return New(LabelProgram,
		New(LabelDeclarationInit, Literal("int"), Literal("a"), Literal("="), New("5")),
		New(LabelIf,
			New(">", New("a"), New("b")),
			New(LabelBlock, New(LabelProgram, New(LabelReturn, New("a")))),
		),
	)
}

func TestString(t *testing.T) {
	want := "(Program (DeclarationInit int a = 5) (If (> a b) (Block (Program (Return a)))))"
	assert.Equal(t, want, sample().String())
}

func TestWalkPreOrder(t *testing.T) {
	got := Flatten(sample())
	type row struct {
		ID, Parent int
		Label      string
		Literal    bool
	}
	want := []row{
		{0, NoParent, "Program", false},
		{1, 0, "DeclarationInit", false},
		{2, 1, "int", true},
		{3, 1, "a", true},
		{4, 1, "=", true},
		{5, 1, "5", false},
		{6, 0, "If", false},
		{7, 6, ">", false},
		{8, 7, "a", false},
		{9, 7, "b", false},
		{10, 6, "Block", false},
		{11, 10, "Program", false},
		{12, 11, "Return", false},
		{13, 12, "a", false},
	}
	rows := make([]row, len(got))
	for i, v := range got {
		rows[i] = row{v.ID, v.Parent, v.Label, v.IsLiteral()}
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("walk (-want +got):\n%s\ntree:\n%s", diff, spew.Sdump(sample()))
	}
	assert.Equal(t, 5, got[13].Depth)
}

func TestWalkSkipAndStop(t *testing.T) {
	var labels []string
	err := Walk(sample(), func(v Visit) error {
		labels = append(labels, v.Label)
		if v.Label == LabelDeclarationInit || v.Label == LabelBlock {
			return SkipChildren
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Program", "DeclarationInit", "If", ">", "a", "b", "Block"}, labels)

	stop := errors.New("stop")
	n := 0
	err = Walk(sample(), func(v Visit) error {
		n++
		if n == 3 {
			return stop
		}
		return nil
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 3, n)
}

func TestWalkNil(t *testing.T) {
	assert.NoError(t, Walk(nil, func(Visit) error { return errors.New("called") }))
}

func TestTerminals(t *testing.T) {
	assert.Equal(t, []string{"int", "a", "=", "5", "a", "b", "a"}, Terminals(sample()))
}

func TestChild(t *testing.T) {
	root := sample()
	decl := root.Child(0)
	require.NotNil(t, decl)
	assert.Nil(t, decl.Child(0), "literal child is not a node")
	assert.Equal(t, "5", decl.Child(3).Label)
	assert.Nil(t, root.Child(5))
}

func TestJSON(t *testing.T) {
	blob, err := json.Marshal(sample().Child(0))
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"DeclarationInit","children":["int","a","=",{"label":"5","children":[]}]}`, string(blob))

	blob, err = json.Marshal(sample())
	require.NoError(t, err)
	var back Node
	require.NoError(t, json.Unmarshal(blob, &back))
	if diff := cmp.Diff(sample().String(), back.String()); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestDeepTreeWalk(t *testing.T) {
	// A left-leaning chain such as a long binary expression.
	node := New("x")
	for i := 0; i < 100000; i++ {
		node = New("+", node, New("y"))
	}
	count := 0
	require.NoError(t, Walk(node, func(Visit) error { count++; return nil }))
	assert.Equal(t, 200001, count)
}
