// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package lexer implements a single-pass, maximal-munch lexer for minic.
//
// At every position the patterns are tried in a fixed priority order:
//   - NUMBER      digits, optionally followed by '.' and more digits
//   - IDENTIFIER  letter or '_' then letters, digits, '_' (keywords split off)
//   - OPERATOR    longest spelling first, so "==" beats "="
//   - DELIMITER   ; , ( ) { }
//   - spaces, tabs and carriage returns are skipped
//   - '\n' is skipped and bumps the line counter
//
// Anything else is either an INVALID token (permissive profile) or an
// InvalidCharacterError (strict profile). Identifiers are recorded in a
// symbol table owned by the Lexer, so separate runs never share entries.
package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/probechain/minic/lang/symtab"
	"github.com/probechain/minic/lang/token"
)

// InvalidCharacterError is returned by strict scans for a character that no
// pattern accepts.
type InvalidCharacterError struct {
	Char   rune
	Line   int
	Column int
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("unexpected character %q on line %d", e.Char, e.Line)
}

// Lexer holds the state for a single scanning run.
type Lexer struct {
	profile *Profile
	input   string

	pos       int // byte offset of the next unread character
	line      int // 1-based current line
	lineStart int // byte offset where the current line begins

	symbols *symtab.Table
	err     error // sticky strict-mode failure
}

// New creates a lexer over input. A nil profile selects Strict.
func New(input string, profile *Profile) *Lexer {
	if profile == nil {
		profile = Strict
	}
	return &Lexer{
		profile: profile,
		input:   input,
		line:    1,
		symbols: symtab.New(),
	}
}

// Symbols returns the identifiers seen so far.
func (l *Lexer) Symbols() *symtab.Table { return l.symbols }

// Line returns the line the lexer is currently on.
func (l *Lexer) Line() int { return l.line }

// NextToken scans and returns the next token. At end of input it returns an
// EOF token, and keeps doing so on subsequent calls. Once a strict scan has
// failed every call returns the same error.
func (l *Lexer) NextToken() (token.Token, error) {
	if l.err != nil {
		return token.Token{}, l.err
	}
	l.skipBlank()

	if l.pos >= len(l.input) {
		return token.Token{Kind: token.EOF, Line: l.line, Column: l.column()}, nil
	}
	ch := l.input[l.pos]
	start, col := l.pos, l.column()

	switch {
	case isDigit(ch):
		text := l.readNumber()
		tok := token.Token{Kind: token.NUMBER, Text: text, Line: l.line, Column: col}
		if num, err := token.ParseNumber(text); err == nil {
			tok.Value = &num
		}
		return tok, nil

	case isIdentStart(ch):
		text := l.readIdent()
		if l.profile.IsKeyword(text) {
			return token.Token{Kind: token.KEYWORD, Text: text, Line: l.line, Column: col}, nil
		}
		l.symbols.Insert(text, l.line)
		return token.Token{Kind: token.IDENTIFIER, Text: text, Line: l.line, Column: col}, nil
	}

	if op, ok := l.profile.matchOperator(l.input[l.pos:]); ok {
		l.pos += len(op)
		return token.Token{Kind: token.OPERATOR, Text: op, Line: l.line, Column: col}, nil
	}
	if l.profile.isDelimiter(ch) {
		l.pos++
		return token.Token{Kind: token.DELIMITER, Text: string(ch), Line: l.line, Column: col}, nil
	}

	// No pattern matched: consume exactly one character.
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	if l.profile.Strict() {
		l.err = &InvalidCharacterError{Char: r, Line: l.line, Column: col}
		return token.Token{}, l.err
	}
	l.pos += size
	return token.Token{Kind: token.INVALID, Text: l.input[start:l.pos], Line: l.line, Column: col}, nil
}

// Tokenize scans input to the end and returns the tokens (without the final
// EOF) together with the symbol table of the run. On a strict failure the
// tokens scanned before the offending character are returned with the error.
func Tokenize(input string, profile *Profile) ([]token.Token, *symtab.Table, error) {
	l := New(input, profile)
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return toks, l.symbols, err
		}
		if tok.Kind == token.EOF {
			return toks, l.symbols, nil
		}
		toks = append(toks, tok)
	}
}

// skipBlank consumes spaces, tabs, carriage returns and newlines.
func (l *Lexer) skipBlank() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\r':
			l.pos++
		case '\n':
			l.pos++
			l.line++
			l.lineStart = l.pos
		default:
			return
		}
	}
}

func (l *Lexer) column() int {
	return l.pos - l.lineStart + 1
}

// readNumber consumes digits ('.' digits*)?. A trailing '.' with no fraction
// digits is part of the literal.
func (l *Lexer) readNumber() string {
	start := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readIdent() string {
	start := l.pos
	for l.pos < len(l.input) && isIdentContinue(l.input[l.pos]) {
		l.pos++
	}
	return l.input[start:l.pos]
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
