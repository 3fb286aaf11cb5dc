// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package walk steps through the tokens of a source text one at a time,
// highlighting the current token in its source line.
package walk

import (
	"errors"
	"strings"

	"github.com/fatih/color"

	"github.com/probechain/minic/lang/lexer"
	"github.com/probechain/minic/lang/symtab"
	"github.com/probechain/minic/lang/token"
)

// ErrNoTokens is returned when the source has nothing to walk through.
var ErrNoTokens = errors.New("walk: source contains no tokens")

// Highlighter decorates the text of the current token.
type Highlighter func(text string) string

// Walkthrough is a cursor over the tokens of one source text. It is not safe
// for concurrent use.
type Walkthrough struct {
	lines   []string
	tokens  []token.Token
	symbols *symtab.Table
	idx     int
}

// New scans source with the permissive profile, so malformed input still
// yields a walkthrough, and positions the cursor on the first token.
func New(source string) (*Walkthrough, error) {
	toks, symbols, err := lexer.Tokenize(source, lexer.Permissive)
	if err != nil {
		return nil, err
	}
	return FromTokens(source, toks, symbols)
}

// FromTokens builds a walkthrough over already scanned tokens.
func FromTokens(source string, toks []token.Token, symbols *symtab.Table) (*Walkthrough, error) {
	if len(toks) == 0 {
		return nil, ErrNoTokens
	}
	if symbols == nil {
		symbols = symtab.New()
	}
	return &Walkthrough{
		lines:   strings.Split(source, "\n"),
		tokens:  toks,
		symbols: symbols,
	}, nil
}

// Len returns the number of tokens.
func (w *Walkthrough) Len() int { return len(w.tokens) }

// Index returns the position of the cursor.
func (w *Walkthrough) Index() int { return w.idx }

// Symbols returns the symbol table of the scan.
func (w *Walkthrough) Symbols() *symtab.Table { return w.symbols }

// Current returns the token under the cursor.
func (w *Walkthrough) Current() token.Token { return w.tokens[w.idx] }

// Seen returns the tokens from the first up to and including the current one.
func (w *Walkthrough) Seen() []token.Token { return w.tokens[:w.idx+1] }

// Next moves to the following token. It reports false at the last token.
func (w *Walkthrough) Next() bool {
	if w.idx >= len(w.tokens)-1 {
		return false
	}
	w.idx++
	return true
}

// Prev moves to the preceding token. It reports false at the first token.
func (w *Walkthrough) Prev() bool {
	if w.idx == 0 {
		return false
	}
	w.idx--
	return true
}

// Seek moves the cursor to i, clamped to the valid range.
func (w *Walkthrough) Seek(i int) {
	switch {
	case i < 0:
		i = 0
	case i >= len(w.tokens):
		i = len(w.tokens) - 1
	}
	w.idx = i
}

// Line returns the source line of the current token with the token text
// decorated by h.
func (w *Walkthrough) Line(h Highlighter) string {
	tok := w.Current()
	if tok.Line < 1 || tok.Line > len(w.lines) {
		return ""
	}
	return highlight(w.lines[tok.Line-1], tok, h)
}

// Source returns the whole source with the current token decorated by h.
func (w *Walkthrough) Source(h Highlighter) string {
	out := make([]string, len(w.lines))
	copy(out, w.lines)
	if tok := w.Current(); tok.Line >= 1 && tok.Line <= len(out) {
		out[tok.Line-1] = highlight(out[tok.Line-1], tok, h)
	}
	return strings.Join(out, "\n")
}

// highlight decorates the token at its column. Tokens without a usable
// column fall back to the first occurrence of their text in the line.
func highlight(line string, tok token.Token, h Highlighter) string {
	start := tok.Column - 1
	if start < 0 || start+len(tok.Text) > len(line) || line[start:start+len(tok.Text)] != tok.Text {
		start = strings.Index(line, tok.Text)
		if start < 0 {
			return line
		}
	}
	end := start + len(tok.Text)
	return line[:start] + h(line[start:end]) + line[end:]
}

// ColorHighlighter renders the token black on white on terminals that
// support colour and leaves it untouched otherwise.
func ColorHighlighter() Highlighter {
	sprint := color.New(color.BgWhite, color.FgBlack).SprintFunc()
	return func(text string) string {
		return sprint(text)
	}
}

// BracketHighlighter wraps the token in square brackets.
func BracketHighlighter(text string) string {
	return "[" + text + "]"
}
