// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package parser implements a recursive-descent parser for minic.
//
// Grammar:
//
//	Program    := Statement+
//	Statement  := ("int"|"float") ID ";"
//	            | ("int"|"float") ID "=" Expression ";"
//	            | ID "=" Expression ";"
//	            | "if" "(" Expression ")" Block
//	            | "return" Expression ";"
//	            | "int" ID "(" ")" Block
//	Block      := "{" Program "}"
//	Expression := Operand (BinaryOp Operand)*
//	Operand    := NUMBER | ID | "(" Expression ")"
//
// All binary operators share a single precedence level and associate to the
// left, so "a + b * c" groups as "(a + b) * c". Parentheses only affect
// grouping and produce no node.
//
// Parsing stops at the first error; no partial tree is returned.
package parser

import (
	"fmt"

	"github.com/probechain/minic/lang/ast"
	"github.com/probechain/minic/lang/lexer"
	"github.com/probechain/minic/lang/token"
)

// binaryOps are the operators accepted between two operands.
var binaryOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true,
	">": true, "<": true, ">=": true, "<=": true, "==": true, "!=": true,
}

// SyntaxError reports the first token that matched no grammar alternative.
type SyntaxError struct {
	Token    token.Token // offending token, Kind == EOF when input ran out
	Expected string      // what the parser was looking for, may be empty
}

func (e *SyntaxError) Error() string {
	var msg string
	if e.AtEOF() {
		msg = "syntax error at end of input"
	} else {
		msg = fmt.Sprintf("syntax error at %s on line %d", e.Token.Describe(), e.Token.Line)
	}
	if e.Expected != "" {
		msg += ": expected " + e.Expected
	}
	return msg
}

// AtEOF reports whether the input ended in the middle of a construct.
func (e *SyntaxError) AtEOF() bool { return e.Token.Kind == token.EOF }

// Line returns the line of the offending token.
func (e *SyntaxError) Line() int { return e.Token.Line }

// TokenSource yields tokens one at a time and returns EOF tokens once the
// input is exhausted. *lexer.Lexer is a TokenSource.
type TokenSource interface {
	NextToken() (token.Token, error)
}

// sliceSource replays a token slice.
type sliceSource struct {
	toks []token.Token
	pos  int
}

func (s *sliceSource) NextToken() (token.Token, error) {
	if s.pos < len(s.toks) {
		tok := s.toks[s.pos]
		s.pos++
		if tok.Kind != token.EOF {
			return tok, nil
		}
	}
	line := 1
	if n := len(s.toks); n > 0 {
		line = s.toks[n-1].Line
	}
	s.pos = len(s.toks)
	return token.Token{Kind: token.EOF, Line: line}, nil
}

// Parser holds the state of a single parse run.
type Parser struct {
	src TokenSource
	cur token.Token
}

// Parse scans source with the strict lexer profile and parses it.
func Parse(source string) (*ast.Node, error) {
	return ParseWith(source, lexer.Strict)
}

// ParseWith scans source with the given profile, pulling tokens from the
// lexer as the parser needs them.
func ParseWith(source string, profile *lexer.Profile) (*ast.Node, error) {
	p, err := New(lexer.New(source, profile))
	if err != nil {
		return nil, err
	}
	return p.ParseProgram()
}

// ParseTokens parses an already scanned token sequence.
func ParseTokens(toks []token.Token) (*ast.Node, error) {
	p, err := New(&sliceSource{toks: toks})
	if err != nil {
		return nil, err
	}
	return p.ParseProgram()
}

// New creates a parser reading from src and loads the first token.
func New(src TokenSource) (*Parser, error) {
	p := &Parser{src: src}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseProgram parses the whole input. The result is the "Program" root with
// one child per top-level statement, in source order.
func (p *Parser) ParseProgram() (*ast.Node, error) {
	prog, err := p.parseStatements(false)
	if err != nil {
		return nil, err
	}
	return prog, nil
}

// ---------------------------------------------------------------------------
// Token navigation helpers
// ---------------------------------------------------------------------------

// advance consumes the current token and reads the next one. The source is
// never read beyond the token being examined.
func (p *Parser) advance() error {
	tok, err := p.src.NextToken()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) errorf(expected string, args ...interface{}) error {
	return &SyntaxError{Token: p.cur, Expected: fmt.Sprintf(expected, args...)}
}

func (p *Parser) curIs(kind token.Kind, text string) bool {
	return p.cur.Is(kind, text)
}

// expect consumes the current token if it is the given delimiter or
// operator, otherwise reports a syntax error.
func (p *Parser) expect(kind token.Kind, text string) error {
	if !p.curIs(kind, text) {
		return p.errorf("%q", text)
	}
	return p.advance()
}

// expectIdent consumes an identifier and returns its text.
func (p *Parser) expectIdent() (string, error) {
	if p.cur.Kind != token.IDENTIFIER {
		return "", p.errorf("identifier")
	}
	name := p.cur.Text
	return name, p.advance()
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// parseStatements parses one or more statements. Inside a block it stops at
// the closing brace, at top level at end of input.
func (p *Parser) parseStatements(inBlock bool) (*ast.Node, error) {
	prog := ast.New(ast.LabelProgram)
	for {
		if p.cur.Kind == token.EOF && !inBlock {
			break
		}
		if inBlock && p.curIs(token.DELIMITER, "}") {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Children = append(prog.Children, stmt)
	}
	if len(prog.Children) == 0 {
		return nil, p.errorf("statement")
	}
	return prog, nil
}

// parseStatement dispatches on the leading token.
func (p *Parser) parseStatement() (*ast.Node, error) {
	switch {
	case p.curIs(token.KEYWORD, "int"), p.curIs(token.KEYWORD, "float"):
		return p.parseDeclaration()
	case p.curIs(token.KEYWORD, "if"):
		return p.parseIf()
	case p.curIs(token.KEYWORD, "return"):
		return p.parseReturn()
	case p.cur.Kind == token.IDENTIFIER:
		return p.parseAssignment()
	}
	return nil, p.errorf("statement")
}

// parseDeclaration parses the three forms introduced by a type keyword:
//
//	int x;   int x = expr;   int f() { ... }
func (p *Parser) parseDeclaration() (*ast.Node, error) {
	typ := p.cur.Text
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	switch {
	case p.curIs(token.DELIMITER, ";"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.New(ast.LabelDeclaration, ast.Literal(typ), ast.Literal(name)), nil

	case p.curIs(token.OPERATOR, "="):
		if err := p.advance(); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.DELIMITER, ";"); err != nil {
			return nil, err
		}
		return ast.New(ast.LabelDeclarationInit, ast.Literal(typ), ast.Literal(name), ast.Literal("="), value), nil

	case p.curIs(token.DELIMITER, "(") && typ == "int":
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(token.DELIMITER, ")"); err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.LabelFunction, ast.Literal(name), body), nil
	}
	if typ == "int" {
		return nil, p.errorf(`";", "=" or "("`)
	}
	return nil, p.errorf(`";" or "="`)
}

// parseAssignment parses "ID = expr ;".
func (p *Parser) parseAssignment() (*ast.Node, error) {
	name := p.cur.Text
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect(token.OPERATOR, "="); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.DELIMITER, ";"); err != nil {
		return nil, err
	}
	return ast.New(ast.LabelAssignment, ast.Literal(name), ast.Literal("="), value), nil
}

// parseIf parses "if ( expr ) block". There is no else branch.
func (p *Parser) parseIf() (*ast.Node, error) {
	if err := p.advance(); err != nil { // 'if'
		return nil, err
	}
	if err := p.expect(token.DELIMITER, "("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.DELIMITER, ")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.LabelIf, cond, body), nil
}

// parseReturn parses "return expr ;".
func (p *Parser) parseReturn() (*ast.Node, error) {
	if err := p.advance(); err != nil { // 'return'
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.DELIMITER, ";"); err != nil {
		return nil, err
	}
	return ast.New(ast.LabelReturn, value), nil
}

// parseBlock parses "{ Program }".
func (p *Parser) parseBlock() (*ast.Node, error) {
	if err := p.expect(token.DELIMITER, "{"); err != nil {
		return nil, err
	}
	prog, err := p.parseStatements(true)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.DELIMITER, "}"); err != nil {
		return nil, err
	}
	return ast.New(ast.LabelBlock, prog), nil
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// parseExpression folds operands and operators from left to right.
func (p *Parser) parseExpression() (*ast.Node, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.OPERATOR && binaryOps[p.cur.Text] {
		op := p.cur.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		left = ast.New(op, left, right)
	}
	return left, nil
}

// parseOperand parses a number, an identifier or a parenthesised expression.
func (p *Parser) parseOperand() (*ast.Node, error) {
	switch {
	case p.cur.Kind == token.NUMBER, p.cur.Kind == token.IDENTIFIER:
		leaf := ast.New(p.cur.Text)
		return leaf, p.advance()

	case p.curIs(token.DELIMITER, "("):
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.DELIMITER, ")"); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, p.errorf("expression")
}
