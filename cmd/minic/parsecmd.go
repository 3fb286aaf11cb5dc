// Copyright 2024 The go-probeum Authors
// This file is part of go-probeum.
//
// go-probeum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-probeum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-probeum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/minic/cmd/utils"
	"github.com/probechain/minic/export"
	"github.com/probechain/minic/lang/ast"
	"github.com/probechain/minic/lang/parser"
)

var (
	declareFlag = cli.BoolFlag{
		Name:  "declare",
		Usage: "Record declared types in the symbol table",
	}

	parseCommand = cli.Command{
		Action:    utils.MigrateFlags(parseSource),
		Name:      "parse",
		Usage:     "Print the syntax tree of a source file",
		ArgsUsage: "<file>",
		Flags:     append([]cli.Flag{utils.ConfigFileFlag, declareFlag}, outputFlags...),
		Category:  "ANALYSIS COMMANDS",
		Description: `
The parse command builds the concrete syntax tree and prints it as an
indented outline (--format tree), a Graphviz diagram (--format dot) or a
JSON report (--format json). With --declare the symbol table, annotated
with declared types, is printed after the outline.`,
	}
)

func parseSource(ctx *cli.Context) error {
	toks, table, cfg, err := scan(ctx)
	if err != nil {
		return err
	}
	root, err := parser.ParseTokens(toks)
	if err != nil {
		return err
	}
	declare := ctx.GlobalBool(declareFlag.Name)
	if declare {
		parser.Declare(root, table)
	}

	out := ctx.App.Writer
	switch cfg.Output.Format {
	case "", "table", "tree":
		if err := writeOutline(out, root); err != nil {
			return err
		}
		if declare {
			fmt.Fprintln(out)
			export.WriteSymbolTable(out, table)
		}
		return nil
	case "dot":
		_, err := io.WriteString(out, export.DOT(root))
		return err
	case "json":
		return export.WriteJSON(out, &export.Report{
			Profile: cfg.Lexer.Profile,
			Tokens:  export.TokenDocs(toks),
			Symbols: export.SymbolDocs(table),
			Tree:    root,
			Nodes:   export.NodeDocs(root),
		})
	}
	return fmt.Errorf("unsupported format %q for parse", cfg.Output.Format)
}

// writeOutline prints one tree element per line, indented by depth.
func writeOutline(w io.Writer, root *ast.Node) error {
	return ast.Walk(root, func(v ast.Visit) error {
		_, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", v.Depth), v.Label)
		return err
	})
}
