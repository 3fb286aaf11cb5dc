// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package token

import (
	"encoding/json"
	"testing"
)

func TestKindNames(t *testing.T) {
	for _, k := range []Kind{INVALID, EOF, NUMBER, IDENTIFIER, KEYWORD, OPERATOR, DELIMITER} {
		back, err := ParseKind(k.String())
		if err != nil || back != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), back, err)
		}
	}
	if got := Kind(42).String(); got != "kind(42)" {
		t.Errorf("unknown kind renders as %q", got)
	}
	if _, err := ParseKind("BOGUS"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		text string
		want Number
		str  string
	}{
		{"5", Number{Int: 5}, "5"},
		{"2.5", Number{IsFloat: true, Float: 2.5}, "2.5"},
		{"5.", Number{IsFloat: true, Float: 5}, "5.0"},
		{"007", Number{Int: 7}, "7"},
	}
	for _, c := range cases {
		got, err := ParseNumber(c.text)
		if err != nil {
			t.Fatalf("%q: %v", c.text, err)
		}
		if got != c.want {
			t.Errorf("%q: got %+v, want %+v", c.text, got, c.want)
		}
		if got.String() != c.str {
			t.Errorf("%q: String() = %q, want %q", c.text, got.String(), c.str)
		}
	}
}

func TestTokenJSON(t *testing.T) {
	num := Number{IsFloat: true, Float: 2.5}
	blob, err := json.Marshal(struct {
		Kind  Kind    `json:"kind"`
		Value *Number `json:"value"`
	}{NUMBER, &num})
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"kind":"NUMBER","value":2.5}`; string(blob) != want {
		t.Errorf("got %s, want %s", blob, want)
	}

	for _, in := range []string{"5", "5.0", "2.5"} {
		var n Number
		if err := json.Unmarshal([]byte(in), &n); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		out, _ := json.Marshal(n)
		if string(out) != in {
			t.Errorf("%s decoded and encoded as %s", in, out)
		}
	}
}

func TestDescribe(t *testing.T) {
	if got := (Token{Kind: EOF}).Describe(); got != "end of input" {
		t.Errorf("EOF describes as %q", got)
	}
	if got := (Token{Kind: DELIMITER, Text: ";"}).Describe(); got != `";"` {
		t.Errorf("got %q", got)
	}
	if !(Token{Kind: KEYWORD, Text: "if"}).Is(KEYWORD, "if") {
		t.Error("Is mismatch")
	}
}
