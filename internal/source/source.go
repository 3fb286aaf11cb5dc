// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package source loads program text from files and streams.
package source

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Example is the sample program offered by the front ends.
const Example = `int main() {
    int a = 5;
    float b = 2.5;
    if (a > b) {
        return a;
    }
    return 0;
}`

// Decode reads r to the end. A leading byte order mark selects UTF-8,
// UTF-16LE or UTF-16BE and is dropped; without one the input is UTF-8.
func Decode(r io.Reader) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := ioutil.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Read loads the file at path, or standard input when path is "-" or empty.
// At most limit bytes are accepted when limit is positive.
func Read(path string, limit int64) (string, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	counter := &countingReader{r: r}
	if limit > 0 {
		counter.r = io.LimitReader(r, limit+1)
	}
	text, err := Decode(counter)
	if limit > 0 && counter.n > limit {
		return "", fmt.Errorf("%s exceeds %d bytes", displayName(path), limit)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", displayName(path), err)
	}
	return text, nil
}

// countingReader counts the raw bytes read, before decoding.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "standard input"
	}
	return path
}
