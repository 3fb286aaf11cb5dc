// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package export

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/probechain/minic/lang/ast"
	"github.com/probechain/minic/lang/lexer"
	"github.com/probechain/minic/lang/parser"
	"github.com/probechain/minic/lang/symtab"
	"github.com/probechain/minic/lang/token"
)

// TokenDoc is the JSON form of a token.
type TokenDoc struct {
	Type  token.Kind    `json:"type"`
	Value string        `json:"value"`
	Line  int           `json:"line"`
	Num   *token.Number `json:"number,omitempty"`
}

// SymbolDoc is the JSON form of a symbol table entry.
type SymbolDoc struct {
	Identifier string `json:"identifier"`
	Type       string `json:"type"`
	Line       int    `json:"line"`
}

// NodeDoc is one vertex of the tree diagram: pre-order id, parent id
// (-1 for the root) and label.
type NodeDoc struct {
	ID      int    `json:"id"`
	Parent  int    `json:"parent"`
	Label   string `json:"label"`
	Literal bool   `json:"literal,omitempty"`
}

// ErrorDoc describes a lexer or parser failure.
type ErrorDoc struct {
	Stage   string `json:"stage"` // "lex" or "parse"
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	EOF     bool   `json:"eof,omitempty"`
}

// Report bundles everything the front end produced for one source text.
type Report struct {
	Profile string      `json:"profile"`
	Tokens  []TokenDoc  `json:"tokens"`
	Symbols []SymbolDoc `json:"symbols"`
	Tree    *ast.Node   `json:"tree,omitempty"`
	Nodes   []NodeDoc   `json:"nodes,omitempty"`
	Error   *ErrorDoc   `json:"error,omitempty"`
}

// TokenDocs converts tokens to their JSON form.
func TokenDocs(toks []token.Token) []TokenDoc {
	docs := make([]TokenDoc, 0, len(toks))
	for _, tok := range toks {
		docs = append(docs, TokenDoc{Type: tok.Kind, Value: tok.Text, Line: tok.Line, Num: tok.Value})
	}
	return docs
}

// SymbolDocs converts the symbol table to its JSON form, in insertion order.
func SymbolDocs(table *symtab.Table) []SymbolDoc {
	entries := table.Entries()
	docs := make([]SymbolDoc, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, SymbolDoc{Identifier: e.Name, Type: e.Type, Line: e.Line})
	}
	return docs
}

// NodeDocs flattens the tree in pre-order.
func NodeDocs(root *ast.Node) []NodeDoc {
	visits := ast.Flatten(root)
	docs := make([]NodeDoc, 0, len(visits))
	for _, v := range visits {
		docs = append(docs, NodeDoc{ID: v.ID, Parent: v.Parent, Label: v.Label, Literal: v.IsLiteral()})
	}
	return docs
}

// ErrorDocFor classifies a lexer or parser error.
func ErrorDocFor(err error) *ErrorDoc {
	var (
		ice  *lexer.InvalidCharacterError
		serr *parser.SyntaxError
	)
	switch {
	case errors.As(err, &ice):
		return &ErrorDoc{Stage: "lex", Message: err.Error(), Line: ice.Line}
	case errors.As(err, &serr):
		return &ErrorDoc{Stage: "parse", Message: err.Error(), Line: serr.Line(), EOF: serr.AtEOF()}
	}
	return &ErrorDoc{Stage: "unknown", Message: err.Error()}
}

// Options controls Analyze.
type Options struct {
	Profile *lexer.Profile // nil selects lexer.Strict
	Parse   bool           // also build the syntax tree
	Declare bool           // record declared types in the symbol table
}

// Analyze scans source and, if requested, parses the tokens. Failures are
// reported in Report.Error rather than returned, so a report always carries
// whatever was produced before the failure.
func Analyze(source string, opts Options) *Report {
	profile := opts.Profile
	if profile == nil {
		profile = lexer.Strict
	}
	toks, table, err := lexer.Tokenize(source, profile)
	rep := &Report{Profile: profile.Name(), Tokens: TokenDocs(toks)}
	if err != nil {
		rep.Symbols = SymbolDocs(table)
		rep.Error = ErrorDocFor(err)
		return rep
	}
	if opts.Parse {
		root, err := parser.ParseTokens(toks)
		if err != nil {
			rep.Error = ErrorDocFor(err)
		} else {
			if opts.Declare {
				parser.Declare(root, table)
			}
			rep.Tree = root
			rep.Nodes = NodeDocs(root)
		}
	}
	rep.Symbols = SymbolDocs(table)
	return rep
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
