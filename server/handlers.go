// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/probechain/minic/export"
	"github.com/probechain/minic/internal/source"
	"github.com/probechain/minic/lang/lexer"
	"github.com/probechain/minic/lang/token"
)

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
	Line  int    `json:"line,omitempty"`
	EOF   bool   `json:"eof,omitempty"`
}

// tokenizeResponse is the reply to /v1/tokenize.
type tokenizeResponse struct {
	Profile string             `json:"profile"`
	Tokens  []export.TokenDoc  `json:"tokens"`
	Symbols []export.SymbolDoc `json:"symbols"`
}

// streamToken is one websocket message of /v1/stream.
type streamToken struct {
	Index int `json:"index"`
	export.TokenDoc
}

// streamEnd terminates a /v1/stream session.
type streamEnd struct {
	Done    bool               `json:"done"`
	Symbols []export.SymbolDoc `json:"symbols"`
	Error   string             `json:"error,omitempty"`
}

func (s *Server) handleTokenize(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rep, ok := s.analyze(w, r, false)
	if !ok {
		return
	}
	if rep.Error != nil {
		writeAnalysisError(w, rep.Error)
		return
	}
	writeJSON(w, http.StatusOK, &tokenizeResponse{Profile: rep.Profile, Tokens: rep.Tokens, Symbols: rep.Symbols})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rep, ok := s.analyze(w, r, true)
	if !ok {
		return
	}
	if rep.Error != nil {
		writeAnalysisError(w, rep.Error)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rep, ok := s.analyze(w, r, true)
	if !ok {
		return
	}
	if rep.Error != nil {
		writeAnalysisError(w, rep.Error)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, export.DOT(rep.Tree))
}

func (s *Server) handleExample(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, source.Example)
}

// analyze reads the request body and runs the front end over it, consulting
// the cache first. It writes the error reply itself and reports false when
// the request could not be served.
func (s *Server) analyze(w http.ResponseWriter, r *http.Request, parse bool) (*export.Report, bool) {
	query := r.URL.Query()
	profile, err := s.lexCfg.Resolve(query.Get("profile"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	declare := false
	if v := query.Get("declare"); v != "" {
		if declare, err = strconv.ParseBool(v); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid declare flag %q", v))
			return nil, false
		}
	}
	text, status, err := s.readSource(w, r)
	if err != nil {
		writeError(w, status, err)
		return nil, false
	}

	op := "tokens"
	if parse {
		op = "tree"
		if declare {
			op = "tree+declare"
		}
	}
	key := cacheKey(op, profile.Name(), text)
	logger := s.requestLog(r)
	if v, ok := s.cached(key); ok {
		logger.Trace("Analysis cache hit", "key", key)
		return v.(*export.Report), true
	}
	rep := export.Analyze(text, export.Options{Profile: profile, Parse: parse, Declare: declare})
	if rep.Error != nil {
		logger.Debug("Analysis failed", "stage", rep.Error.Stage, "err", rep.Error.Message)
	}
	s.remember(key, rep)
	return rep, true
}

// readSource decodes the request body, enforcing the size limit.
func (s *Server) readSource(w http.ResponseWriter, r *http.Request) (string, int, error) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxSourceBytes)
	text, err := source.Decode(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", http.StatusRequestEntityTooLarge, fmt.Errorf("source exceeds %d bytes", s.cfg.MaxSourceBytes)
		}
		return "", http.StatusBadRequest, err
	}
	return text, http.StatusOK, nil
}

// handleStream lexes one source text per connection with the permissive
// profile, sending each token as soon as it is scanned.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	logger := s.requestLog(r)
	header := http.Header{"X-Request-Id": {w.Header().Get("X-Request-Id")}}
	conn, err := s.upgrader.Upgrade(w, r, header)
	if err != nil {
		logger.Debug("Websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(s.cfg.MaxSourceBytes)

	msgType, msg, err := conn.ReadMessage()
	if err != nil {
		logger.Debug("Websocket read failed", "err", err)
		return
	}
	if msgType != websocket.TextMessage && msgType != websocket.BinaryMessage {
		return
	}
	text, err := source.Decode(bytes.NewReader(msg))
	if err != nil {
		conn.WriteJSON(&streamEnd{Done: true, Error: err.Error()})
		return
	}
	profile, err := s.lexCfg.Resolve("permissive")
	if err != nil {
		conn.WriteJSON(&streamEnd{Done: true, Error: err.Error()})
		return
	}

	lx := lexer.New(text, profile)
	end := &streamEnd{Done: true}
	for i := 0; ; i++ {
		tok, err := lx.NextToken()
		if err != nil {
			end.Error = err.Error()
			break
		}
		if tok.Kind == token.EOF {
			break
		}
		doc := export.TokenDoc{Type: tok.Kind, Value: tok.Text, Line: tok.Line, Num: tok.Value}
		if err := conn.WriteJSON(&streamToken{Index: i, TokenDoc: doc}); err != nil {
			logger.Debug("Websocket write failed", "err", err)
			return
		}
	}
	end.Symbols = export.SymbolDocs(lx.Symbols())
	if err := conn.WriteJSON(end); err != nil {
		logger.Debug("Websocket write failed", "err", err)
		return
	}
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func writeAnalysisError(w http.ResponseWriter, doc *export.ErrorDoc) {
	writeJSON(w, http.StatusUnprocessableEntity, &errorResponse{
		Error: doc.Message,
		Stage: doc.Stage,
		Line:  doc.Line,
		EOF:   doc.EOF,
	})
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, &errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
