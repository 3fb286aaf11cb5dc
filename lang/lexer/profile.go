// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package lexer

import (
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set"
)

var (
	// Operators recognised by both built-in profiles.
	defaultOperators = []string{"+", "-", "*", "/", "=", "==", "!=", "<", "<=", ">", ">="}

	// Delimiters recognised by both built-in profiles.
	defaultDelimiters = []string{";", ",", "(", ")", "{", "}"}
)

// Profile configures the lexer: which words are reserved, which operator and
// delimiter spellings exist, and what happens on an unmatched character.
// Profiles are immutable once built and may be shared between goroutines.
type Profile struct {
	name       string
	keywords   mapset.Set
	operators  []string // longest first
	delimiters mapset.Set
	strict     bool
}

// Built-in profiles.
var (
	// Permissive is used by the interactive walkthrough. Unmatched characters
	// become INVALID tokens and scanning continues. "main" is reserved.
	Permissive = NewProfile("permissive",
		[]string{"int", "float", "if", "else", "return", "while", "for", "main"},
		defaultOperators, defaultDelimiters, false)

	// Strict is the compiler profile fed to the parser. The first unmatched
	// character aborts the scan with an InvalidCharacterError.
	Strict = NewProfile("strict",
		[]string{"int", "float", "char", "if", "else", "while", "return"},
		defaultOperators, defaultDelimiters, true)
)

// NewProfile builds a profile. Operators may be given in any order; they are
// matched longest first so that "==" wins over "=".
func NewProfile(name string, keywords, operators, delimiters []string, strict bool) *Profile {
	p := &Profile{
		name:       name,
		keywords:   mapset.NewSet(),
		delimiters: mapset.NewSet(),
		strict:     strict,
	}
	for _, kw := range keywords {
		p.keywords.Add(kw)
	}
	for _, d := range delimiters {
		p.delimiters.Add(d)
	}
	p.operators = append([]string(nil), operators...)
	sort.SliceStable(p.operators, func(i, j int) bool {
		return len(p.operators[i]) > len(p.operators[j])
	})
	return p
}

// ProfileByName resolves "strict" or "permissive".
func ProfileByName(name string) (*Profile, error) {
	switch strings.ToLower(name) {
	case "", "strict":
		return Strict, nil
	case "permissive":
		return Permissive, nil
	}
	return nil, fmt.Errorf("unknown lexer profile %q", name)
}

// WithKeywords returns a copy of the profile with additional reserved words.
func (p *Profile) WithKeywords(extra ...string) *Profile {
	if len(extra) == 0 {
		return p
	}
	cp := *p
	cp.keywords = p.keywords.Clone()
	for _, kw := range extra {
		cp.keywords.Add(kw)
	}
	return &cp
}

// Name returns the profile name.
func (p *Profile) Name() string { return p.name }

// Strict reports whether unmatched characters are errors.
func (p *Profile) Strict() bool { return p.strict }

// IsKeyword reports whether word is reserved in this profile.
func (p *Profile) IsKeyword(word string) bool { return p.keywords.Contains(word) }

// Keywords returns the reserved words in sorted order.
func (p *Profile) Keywords() []string {
	words := make([]string, 0, p.keywords.Cardinality())
	for _, kw := range p.keywords.ToSlice() {
		words = append(words, kw.(string))
	}
	sort.Strings(words)
	return words
}

// matchOperator returns the longest operator that prefixes s.
func (p *Profile) matchOperator(s string) (string, bool) {
	for _, op := range p.operators {
		if strings.HasPrefix(s, op) {
			return op, true
		}
	}
	return "", false
}

func (p *Profile) isDelimiter(ch byte) bool {
	return p.delimiters.Contains(string(ch))
}
