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
	"bytes"
	"encoding/json"
	"io"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cespare/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probechain/minic/export"
	"github.com/probechain/minic/lang/ast"
	"github.com/probechain/minic/walk"
)

// runMinic runs the app in-process and returns everything it printed.
func runMinic(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"minic", "--verbosity", "0"}, args...))
	return out.String(), err
}

// tmpTestdata copies the testdata directory into a temporary directory.
func tmpTestdata(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "testdata")
	if err := cp.CopyAll(dir, "testdata"); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLicenseHeaders(t *testing.T) {
	files, err := filepath.Glob("*.go")
	require.NoError(t, err)
	more, err := filepath.Glob(filepath.Join("..", "utils", "*.go"))
	require.NoError(t, err)
	for _, file := range append(files, more...) {
		data, err := ioutil.ReadFile(file)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "// Copyright 2024 The go-probeum Authors\n// This file is part of go-probeum.\n"), file)
		assert.Contains(t, string(data), "GNU General Public License", file)
	}
}

// ---------------------------------------------------------------------------
// tokens / symbols
// ---------------------------------------------------------------------------

func TestTokensTable(t *testing.T) {
	out, err := runMinic(t, "tokens", "testdata/example.c")
	require.NoError(t, err)
	for _, want := range []string{"Type", "Value", "Line", "KEYWORD", "float", "2.5", "Total tokens", "30"} {
		assert.Contains(t, out, want)
	}
}

func TestTokensCSV(t *testing.T) {
	out, err := runMinic(t, "tokens", "--format", "csv", "testdata/small.c")
	require.NoError(t, err)
	want := "Type,Value,Line\n" +
		"KEYWORD,int,1\nIDENTIFIER,a,1\nOPERATOR,=,1\nNUMBER,5,1\nDELIMITER,;,1\n" +
		"KEYWORD,return,2\nIDENTIFIER,a,2\nDELIMITER,;,2\n"
	assert.Equal(t, want, out)

	// Flags may also precede the command name.
	again, err := runMinic(t, "--format", "csv", "tokens", "testdata/small.c")
	require.NoError(t, err)
	assert.Equal(t, want, again)
}

func TestTokensProfiles(t *testing.T) {
	_, err := runMinic(t, "tokens", "testdata/bad.c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unexpected character '$' on line 2`)

	out, err := runMinic(t, "tokens", "--profile", "permissive", "--format", "csv", "testdata/bad.c")
	require.NoError(t, err)
	assert.Contains(t, out, "INVALID,$,2\n")

	_, err = runMinic(t, "tokens", "--profile", "fortran", "testdata/small.c")
	assert.Error(t, err)
}

func TestTokensInput(t *testing.T) {
	out, err := runMinic(t, "tokens", "--example", "--format", "json")
	require.NoError(t, err)
	var docs []export.TokenDoc
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	assert.Len(t, docs, 30)

	_, err = runMinic(t, "tokens", "testdata/missing.c")
	assert.Error(t, err)
	_, err = runMinic(t, "tokens", "--format", "xml", "testdata/small.c")
	assert.EqualError(t, err, `unsupported format "xml" for tokens`)
}

func TestSymbols(t *testing.T) {
	out, err := runMinic(t, "symbols", "--format", "json", "testdata/example.c")
	require.NoError(t, err)
	var docs []export.SymbolDoc
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	assert.Equal(t, []export.SymbolDoc{
		{Identifier: "main", Line: 1},
		{Identifier: "a", Line: 2},
		{Identifier: "b", Line: 3},
	}, docs)

	out, err = runMinic(t, "symbols", "--format", "csv", "testdata/small.c")
	require.NoError(t, err)
	assert.Equal(t, "Identifier,Type,Line\na,,1\n", out)
}

// ---------------------------------------------------------------------------
// parse
// ---------------------------------------------------------------------------

func TestParseOutline(t *testing.T) {
	out, err := runMinic(t, "parse", "testdata/small.c")
	require.NoError(t, err)
	want := `Program
  DeclarationInit
    int
    a
    =
    5
  Return
    a
`
	assert.Equal(t, want, out)
}

func TestParseDeclare(t *testing.T) {
	out, err := runMinic(t, "parse", "--declare", "testdata/example.c")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Program\n  Function\n    main\n    Block\n"), out)
	assert.Contains(t, out, "float")
	assert.Contains(t, out, "Unique identifiers")
}

func TestParseFormats(t *testing.T) {
	out, err := runMinic(t, "parse", "--format", "dot", "testdata/small.c")
	require.NoError(t, err)
	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, `label="Return"`)

	out, err = runMinic(t, "parse", "--format", "json", "--declare", "testdata/small.c")
	require.NoError(t, err)
	var rep export.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.NotNil(t, rep.Tree)
	assert.Equal(t, ast.LabelProgram, rep.Tree.Label)
	assert.Equal(t, []export.SymbolDoc{{Identifier: "a", Type: "int", Line: 1}}, rep.Symbols)
	assert.Len(t, rep.Nodes, 8)
}

func TestParseError(t *testing.T) {
	dir := tmpTestdata(t)
	path := filepath.Join(dir, "unterminated.c")
	require.NoError(t, ioutil.WriteFile(path, []byte("int a = 5"), 0644))

	_, err := runMinic(t, "parse", path)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "syntax error at end of input"), err.Error())
}

// ---------------------------------------------------------------------------
// batch
// ---------------------------------------------------------------------------

func TestBatch(t *testing.T) {
	dir := tmpTestdata(t)
	outdir := filepath.Join(t.TempDir(), "out")
	out, err := runMinic(t, "batch", "--outdir", outdir, "--jobs", "2",
		filepath.Join(dir, "example.c"), filepath.Join(dir, "small.c"))
	require.NoError(t, err)
	assert.Contains(t, out, "example.c: 30 tokens, 3 identifiers\n")
	assert.Contains(t, out, "small.c: 8 tokens, 1 identifiers\n")

	symbols, err := ioutil.ReadFile(filepath.Join(outdir, "example.symbols.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Identifier,Type,Line\nmain,,1\na,,2\nb,,3\n", string(symbols))
	tokens, err := ioutil.ReadFile(filepath.Join(outdir, "small.tokens.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(tokens), "Type,Value,Line\nKEYWORD,int,1\n"))
}

func TestBatchNextToSource(t *testing.T) {
	dir := tmpTestdata(t)
	_, err := runMinic(t, "batch", filepath.Join(dir, "small.c"))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "small.tokens.csv"))
	assert.FileExists(t, filepath.Join(dir, "small.symbols.csv"))

	_, err = runMinic(t, "batch", filepath.Join(dir, "small.c"), filepath.Join(dir, "bad.c"))
	assert.Error(t, err)
	_, err = runMinic(t, "batch")
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// configuration
// ---------------------------------------------------------------------------

func TestConfigFile(t *testing.T) {
	out, err := runMinic(t, "--config", "testdata/permissive.toml", "tokens", "testdata/bad.c")
	require.NoError(t, err)
	assert.Contains(t, out, "INVALID,$,2\n")

	// Flags override the file.
	_, err = runMinic(t, "--config", "testdata/permissive.toml", "--profile", "strict", "tokens", "testdata/bad.c")
	assert.Error(t, err)
}

func TestConfigUnknownField(t *testing.T) {
	dir := tmpTestdata(t)
	path := filepath.Join(dir, "bogus.toml")
	require.NoError(t, ioutil.WriteFile(path, []byte("[Lexer]\nBogus = 1\n"), 0644))

	_, err := runMinic(t, "--config", path, "tokens", "testdata/small.c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'Bogus' is not defined")
}

func TestDumpConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.toml")
	_, err := runMinic(t, "--profile", "permissive", "dumpconfig", path)
	require.NoError(t, err)

	var cfg minicConfig
	require.NoError(t, loadConfig(path, &cfg))
	assert.Equal(t, "permissive", cfg.Lexer.Profile)
	assert.Equal(t, defaultConfig().Server.Addr, cfg.Server.Addr)
	assert.Equal(t, defaultConfig().Server.MaxSourceBytes, cfg.Server.MaxSourceBytes)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.True(t, cfg.Output.Color)
}

// ---------------------------------------------------------------------------
// walk
// ---------------------------------------------------------------------------

type scriptedPrompter struct {
	inputs  []string
	history []string
}

func (p *scriptedPrompter) Prompt(string) (string, error) {
	if len(p.inputs) == 0 {
		return "", io.EOF
	}
	in := p.inputs[0]
	p.inputs = p.inputs[1:]
	return in, nil
}

func (p *scriptedPrompter) AppendHistory(item string) {
	p.history = append(p.history, item)
}

func TestRunWalk(t *testing.T) {
	w, err := walk.New("int a = 5;")
	require.NoError(t, err)
	p := &scriptedPrompter{inputs: []string{"p", "", "4", "9", "n", "s", "zzz", "q", "n"}}

	var out bytes.Buffer
	require.NoError(t, runWalk(&out, p, w, walk.BracketHighlighter))
	got := out.String()
	for _, want := range []string{
		"token 1/5: KEYWORD \"int\" (line 1)\n  [int] a = 5;\n  seen: int\n",
		"already at the first token\n",
		"token 2/5: IDENTIFIER \"a\" (line 1)\n  int [a] = 5;\n  seen: int a\n",
		"token 4/5: NUMBER \"5\" (line 1)\n",
		"token 5/5: DELIMITER \";\" (line 1)\n",
		"already at the last token\n",
		"Unique identifiers",
		walkHelp,
	} {
		assert.Contains(t, got, want)
	}
	// The last "n" is never read.
	assert.Equal(t, []string{"n"}, p.inputs)
	assert.Equal(t, []string{"p", "4", "9", "n", "s", "zzz", "q"}, p.history)
}

// Positions typed at the prompt count from 1, like the displayed ones.
func TestRunWalkJumpPosition(t *testing.T) {
	w, err := walk.New("int a = 5;")
	require.NoError(t, err)
	p := &scriptedPrompter{inputs: []string{"2", "1", "0"}}

	var out bytes.Buffer
	require.NoError(t, runWalk(&out, p, w, walk.BracketHighlighter))
	steps := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, steps, 12)
	assert.Equal(t, "token 1/5: KEYWORD \"int\" (line 1)", steps[0])
	assert.Equal(t, "token 2/5: IDENTIFIER \"a\" (line 1)", steps[3])
	assert.Equal(t, "token 1/5: KEYWORD \"int\" (line 1)", steps[6])
	assert.Equal(t, "token 1/5: KEYWORD \"int\" (line 1)", steps[9])
}

func TestRunWalkEndOfInput(t *testing.T) {
	w, err := walk.New("a")
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, runWalk(&out, &scriptedPrompter{}, w, walk.BracketHighlighter))
	assert.Equal(t, "token 1/1: IDENTIFIER \"a\" (line 1)\n  [a]\n  seen: a\n", out.String())
}
