// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogfmtOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New("component", "lexer")
	l.SetHandler(StreamHandler(&buf, LogfmtFormat()))

	l.Info("Scanned source", "tokens", 5, "profile", "strict", "err", errors.New("bad char"))
	out := buf.String()
	assert.Contains(t, out, "lvl=info")
	assert.Contains(t, out, `msg="Scanned source"`)
	assert.Contains(t, out, "component=lexer tokens=5 profile=strict")
	assert.Contains(t, out, `err="bad char"`)
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetHandler(LvlFilterHandler(LvlInfo, StreamHandler(&buf, LogfmtFormat())))

	l.Debug("hidden")
	l.Trace("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestTerminalFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetHandler(StreamHandler(&buf, TerminalFormat(false)))
	l.Error("Parse failed", "line", 3)
	assert.True(t, strings.HasPrefix(buf.String(), "ERROR["))
	assert.Contains(t, buf.String(), "line=3")

	buf.Reset()
	l.SetHandler(StreamHandler(&buf, TerminalFormat(true)))
	l.Info("coloured")
	assert.Contains(t, buf.String(), "\x1b[32mINFO \x1b[0m")
}

func TestOddContextIsNormalized(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetHandler(StreamHandler(&buf, LogfmtFormat()))
	l.Info("odd", "key")
	assert.Contains(t, buf.String(), "key=nil")
	assert.Contains(t, buf.String(), errorKey)
}

func TestLvlFromString(t *testing.T) {
	lvl, err := LvlFromString("debug")
	require.NoError(t, err)
	assert.Equal(t, LvlDebug, lvl)
	_, err = LvlFromString("loud")
	assert.Error(t, err)
}

func TestChildSharesParentHandler(t *testing.T) {
	var buf bytes.Buffer
	parent := New("a", 1)
	parent.SetHandler(StreamHandler(&buf, LogfmtFormat()))
	child := parent.New("b", 2)
	child.Info("hello")
	assert.Contains(t, buf.String(), "a=1 b=2")
}
