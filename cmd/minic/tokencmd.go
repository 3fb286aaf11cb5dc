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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/minic/cmd/utils"
	"github.com/probechain/minic/export"
	"github.com/probechain/minic/internal/source"
	"github.com/probechain/minic/lang/lexer"
	"github.com/probechain/minic/lang/symtab"
	"github.com/probechain/minic/lang/token"
	"github.com/probechain/minic/log"
)

var (
	outDirFlag = cli.StringFlag{
		Name:  "outdir",
		Usage: "Directory for batch output (default: next to each source file)",
	}
	jobsFlag = cli.IntFlag{
		Name:  "jobs",
		Usage: "Number of files analyzed concurrently",
		Value: runtime.NumCPU(),
	}

	tokensCommand = cli.Command{
		Action:    utils.MigrateFlags(showTokens),
		Name:      "tokens",
		Usage:     "Print the token table of a source file",
		ArgsUsage: "<file>",
		Flags:     append([]cli.Flag{utils.ConfigFileFlag}, outputFlags...),
		Category:  "ANALYSIS COMMANDS",
		Description: `
The tokens command scans the file and prints one (Type, Value, Line) row per
token. With the strict profile the first unrecognized character aborts the
scan; the permissive profile reports it as an INVALID token instead.`,
	}
	symbolsCommand = cli.Command{
		Action:    utils.MigrateFlags(showSymbols),
		Name:      "symbols",
		Usage:     "Print the symbol table of a source file",
		ArgsUsage: "<file>",
		Flags:     append([]cli.Flag{utils.ConfigFileFlag}, outputFlags...),
		Category:  "ANALYSIS COMMANDS",
		Description: `
The symbols command prints every distinct identifier in order of first
appearance, with the line it first appeared on.`,
	}
	batchCommand = cli.Command{
		Action:    utils.MigrateFlags(batchExport),
		Name:      "batch",
		Usage:     "Export token and symbol tables of many files as CSV",
		ArgsUsage: "<file> [<file>...]",
		Flags:     []cli.Flag{utils.ConfigFileFlag, utils.ProfileFlag, outDirFlag, jobsFlag},
		Category:  "ANALYSIS COMMANDS",
		Description: `
The batch command scans the given files concurrently and writes
<name>.tokens.csv and <name>.symbols.csv for each of them.`,
	}
)

// scan reads the input and runs the lexer over it.
func scan(ctx *cli.Context) ([]token.Token, *symtab.Table, minicConfig, error) {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return nil, nil, cfg, err
	}
	profile, err := cfg.Lexer.Resolve("")
	if err != nil {
		return nil, nil, cfg, err
	}
	name, text, err := readInput(ctx, cfg.Server.MaxSourceBytes)
	if err != nil {
		return nil, nil, cfg, err
	}
	toks, table, err := lexer.Tokenize(text, profile)
	if err != nil {
		return nil, nil, cfg, fmt.Errorf("%s: %w", name, err)
	}
	return toks, table, cfg, nil
}

func showTokens(ctx *cli.Context) error {
	toks, _, cfg, err := scan(ctx)
	if err != nil {
		return err
	}
	out := ctx.App.Writer
	switch cfg.Output.Format {
	case "", "table":
		export.WriteTokenTable(out, toks)
		return nil
	case "csv":
		return export.WriteTokenCSV(out, toks)
	case "json":
		return export.WriteJSON(out, export.TokenDocs(toks))
	}
	return fmt.Errorf("unsupported format %q for tokens", cfg.Output.Format)
}

func showSymbols(ctx *cli.Context) error {
	_, table, cfg, err := scan(ctx)
	if err != nil {
		return err
	}
	out := ctx.App.Writer
	switch cfg.Output.Format {
	case "", "table":
		export.WriteSymbolTable(out, table)
		return nil
	case "csv":
		return export.WriteSymbolCSV(out, table)
	case "json":
		return export.WriteJSON(out, export.SymbolDocs(table))
	}
	return fmt.Errorf("unsupported format %q for symbols", cfg.Output.Format)
}

type batchResult struct {
	file    string
	tokens  int
	symbols int
}

func batchExport(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return fmt.Errorf("no source files given")
	}
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	profile, err := cfg.Lexer.Resolve("")
	if err != nil {
		return err
	}
	var (
		files   = ctx.Args()
		outdir  = ctx.GlobalString(outDirFlag.Name)
		results = make([]batchResult, len(files))
	)
	if outdir != "" {
		if err := os.MkdirAll(outdir, 0755); err != nil {
			return err
		}
	}
	g, gctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(ctx.GlobalInt(jobsFlag.Name), 1))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := exportFile(file, outdir, profile, cfg.Server.MaxSourceBytes)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, res := range results {
		fmt.Fprintf(ctx.App.Writer, "%s: %d tokens, %d identifiers\n", res.file, res.tokens, res.symbols)
	}
	return nil
}

// exportFile writes the token and symbol CSV files of one source file.
func exportFile(file, outdir string, profile *lexer.Profile, limit int64) (batchResult, error) {
	text, err := source.Read(file, limit)
	if err != nil {
		return batchResult{}, err
	}
	toks, table, err := lexer.Tokenize(text, profile)
	if err != nil {
		return batchResult{}, fmt.Errorf("%s: %w", file, err)
	}
	dir := outdir
	if dir == "" {
		dir = filepath.Dir(file)
	}
	base := filepath.Join(dir, strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)))
	if err := writeFile(base+".tokens.csv", func(f *os.File) error { return export.WriteTokenCSV(f, toks) }); err != nil {
		return batchResult{}, err
	}
	if err := writeFile(base+".symbols.csv", func(f *os.File) error { return export.WriteSymbolCSV(f, table) }); err != nil {
		return batchResult{}, err
	}
	log.Info("Exported tables", "file", file, "tokens", len(toks), "identifiers", table.Len())
	return batchResult{file: file, tokens: len(toks), symbols: table.Len()}, nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
