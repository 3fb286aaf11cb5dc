// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package export renders lexer and parser output for people and tools:
// aligned tables, CSV downloads, JSON documents and Graphviz diagrams.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/probechain/minic/lang/symtab"
	"github.com/probechain/minic/lang/token"
)

// Column headers, shared by tables and CSV.
var (
	TokenColumns  = []string{"Type", "Value", "Line"}
	SymbolColumns = []string{"Identifier", "Type", "Line"}
)

// TokenRows returns one (Type, Value, Line) row per token.
func TokenRows(toks []token.Token) [][]string {
	rows := make([][]string, 0, len(toks))
	for _, tok := range toks {
		rows = append(rows, []string{tok.Kind.String(), tok.Text, strconv.Itoa(tok.Line)})
	}
	return rows
}

// SymbolRows returns one (Identifier, Type, Line) row per entry, in
// insertion order.
func SymbolRows(table *symtab.Table) [][]string {
	entries := table.Entries()
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Name, e.Type, strconv.Itoa(e.Line)})
	}
	return rows
}

// WriteTokenTable prints the tokens as an aligned table with a total.
func WriteTokenTable(w io.Writer, toks []token.Token) {
	writeTable(w, TokenColumns, TokenRows(toks), []string{"", "Total tokens", strconv.Itoa(len(toks))})
}

// WriteSymbolTable prints the symbol table as an aligned table with a count.
func WriteSymbolTable(w io.Writer, table *symtab.Table) {
	writeTable(w, SymbolColumns, SymbolRows(table), []string{"", "Unique identifiers", strconv.Itoa(table.Len())})
}

func writeTable(w io.Writer, header []string, rows [][]string, footer []string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.SetFooter(footer)
	table.Render()
}

// WriteTokenCSV writes the tokens as CSV with a Type,Value,Line header.
func WriteTokenCSV(w io.Writer, toks []token.Token) error {
	return writeCSV(w, TokenColumns, TokenRows(toks))
}

// WriteSymbolCSV writes the symbol table as CSV with an
// Identifier,Type,Line header.
func WriteSymbolCSV(w io.Writer, table *symtab.Table) error {
	return writeCSV(w, SymbolColumns, SymbolRows(table))
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
