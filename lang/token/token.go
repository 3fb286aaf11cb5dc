// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package token defines the lexical tokens of the minic language.
//
// Tokens are coarse grained: the kind says which pattern matched (number,
// identifier, keyword, operator, delimiter) and the exact source text is kept
// in Text. The parser dispatches on Kind plus Text rather than on one token
// type per symbol, which keeps the keyword and operator sets configurable.
package token

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the closed set of token classes.
type Kind int

const (
	INVALID Kind = iota // character matched by no pattern (permissive scans only)
	EOF

	NUMBER     // 42, 2.5, 5.
	IDENTIFIER // a, main_loop, _tmp1
	KEYWORD    // int, float, if, return ...
	OPERATOR   // + - * / = == != < <= > >=
	DELIMITER  // ; , ( ) { }
)

var kindNames = [...]string{
	INVALID:    "INVALID",
	EOF:        "EOF",
	NUMBER:     "NUMBER",
	IDENTIFIER: "IDENTIFIER",
	KEYWORD:    "KEYWORD",
	OPERATOR:   "OPERATOR",
	DELIMITER:  "DELIMITER",
}

// String returns the upper-case name of the kind, as shown in token tables.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return Kind(k), nil
		}
	}
	return INVALID, fmt.Errorf("unknown token kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Number is the value of a NUMBER token. Exactly one of Int and Float is
// meaningful, selected by IsFloat.
type Number struct {
	IsFloat bool
	Int     int64
	Float   float64
}

// ParseNumber converts the text of a NUMBER token. Text containing a decimal
// point yields a float, anything else an integer.
func ParseNumber(text string) (Number, error) {
	if strings.Contains(text, ".") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Number{}, err
		}
		return Number{IsFloat: true, Float: f}, nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Number{}, err
	}
	return Number{Int: i}, nil
}

func (n Number) String() string {
	if n.IsFloat {
		s := strconv.FormatFloat(n.Float, 'f', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	}
	return strconv.FormatInt(n.Int, 10)
}

// MarshalJSON encodes the number as a JSON number.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalJSON decodes a JSON number. Numbers written with a fraction or
// exponent are floats.
func (n *Number) UnmarshalJSON(data []byte) error {
	text := string(data)
	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return err
		}
		*n = Number{IsFloat: true, Float: f}
		return nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return err
	}
	*n = Number{Int: i}
	return nil
}

// Token is a classified, line-tagged lexical unit.
type Token struct {
	Kind   Kind
	Text   string  // exact source text
	Line   int     // 1-based
	Column int     // 1-based, counted in bytes
	Value  *Number // set for NUMBER only
}

func (t Token) String() string {
	if t.Kind == EOF {
		return fmt.Sprintf("EOF@%d", t.Line)
	}
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Text, t.Line, t.Column)
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// Describe renders the token for error messages: its text, or "end of input".
func (t Token) Describe() string {
	if t.Kind == EOF {
		return "end of input"
	}
	return strconv.Quote(t.Text)
}
