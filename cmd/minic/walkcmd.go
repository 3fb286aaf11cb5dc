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
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/minic/cmd/utils"
	"github.com/probechain/minic/export"
	"github.com/probechain/minic/log"
	"github.com/probechain/minic/walk"
)

var walkCommand = cli.Command{
	Action:    utils.MigrateFlags(walkSource),
	Name:      "walk",
	Usage:     "Step through the tokens of a source file interactively",
	ArgsUsage: "<file>",
	Flags:     append([]cli.Flag{utils.ConfigFileFlag}, outputFlags...),
	Category:  "ANALYSIS COMMANDS",
	Description: `
The walk command scans the file with the permissive profile and shows one
token at a time with its source line highlighted. Commands at the prompt:

  n, next      move to the next token (also on an empty line)
  p, prev      move to the previous token
  <number>     jump to the token at that position (1 is the first)
  s, symbols   print the symbol table
  q, quit      leave the walkthrough`,
}

const walkHelp = "commands: n(ext), p(rev), <position>, s(ymbols), q(uit)"

// prompter is the part of the line editor used by the walkthrough.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func walkSource(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	_, text, err := readInput(ctx, cfg.Server.MaxSourceBytes)
	if err != nil {
		return err
	}
	w, err := walk.New(text)
	if err != nil {
		return err
	}
	hl := walk.BracketHighlighter
	if cfg.Output.Color {
		hl = walk.ColorHighlighter()
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	return runWalk(ctx.App.Writer, line, w, hl)
}

// runWalk drives a walkthrough session until the user quits or input ends.
func runWalk(out io.Writer, p prompter, w *walk.Walkthrough, hl walk.Highlighter) error {
	session := uuid.New()
	log.Debug("Walkthrough started", "session", session, "tokens", w.Len())
	defer log.Debug("Walkthrough finished", "session", session)

	printStep(out, w, hl)
	for {
		input, err := p.Prompt("walk> ")
		if err == io.EOF || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		cmd := strings.TrimSpace(input)
		if cmd != "" {
			p.AppendHistory(cmd)
		}
		switch cmd {
		case "", "n", "next":
			if !w.Next() {
				fmt.Fprintln(out, "already at the last token")
				continue
			}
		case "p", "prev":
			if !w.Prev() {
				fmt.Fprintln(out, "already at the first token")
				continue
			}
		case "s", "symbols":
			export.WriteSymbolTable(out, w.Symbols())
			continue
		case "q", "quit", "exit":
			return nil
		default:
			i, err := strconv.Atoi(cmd)
			if err != nil {
				fmt.Fprintln(out, walkHelp)
				continue
			}
			w.Seek(i - 1)
		}
		printStep(out, w, hl)
	}
}

func printStep(out io.Writer, w *walk.Walkthrough, hl walk.Highlighter) {
	tok := w.Current()
	seen := make([]string, 0, w.Index()+1)
	for _, t := range w.Seen() {
		seen = append(seen, t.Text)
	}
	fmt.Fprintf(out, "token %d/%d: %s %q (line %d)\n", w.Index()+1, w.Len(), tok.Kind, tok.Text, tok.Line)
	fmt.Fprintf(out, "  %s\n", w.Line(hl))
	fmt.Fprintf(out, "  seen: %s\n", strings.Join(seen, " "))
}
