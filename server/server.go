// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package server exposes the lexer and parser over HTTP for browser front ends.
package server

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	lru "github.com/hashicorp/golang-lru"
	"github.com/julienschmidt/httprouter"
	"github.com/probechain/minic/lang/lexer"
	"github.com/probechain/minic/log"
	"github.com/rs/cors"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 5 * time.Second

// Server serves tokenize, parse, graph and stream requests.
type Server struct {
	cfg      Config
	lexCfg   lexer.Config
	cache    *lru.ARCCache // nil when caching is disabled
	limiter  *rate.Limiter // nil when requests are not limited
	log      log.Logger
	upgrader websocket.Upgrader
	handler  http.Handler
}

// New creates a server. Requests that name no profile are scanned with the
// profile selected by lexCfg.
func New(cfg Config, lexCfg lexer.Config) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if _, err := lexCfg.Resolve(""); err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg, lexCfg: lexCfg, log: log.New("module", "server")}
	if cfg.CacheSize > 0 {
		cache, err := lru.NewARC(cfg.CacheSize)
		if err != nil {
			return nil, err
		}
		s.cache = cache
	}
	if cfg.RequestsPerSecond > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestBurst)
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	router := httprouter.New()
	router.POST("/v1/tokenize", s.handleTokenize)
	router.POST("/v1/parse", s.handleParse)
	router.POST("/v1/graph", s.handleGraph)
	router.GET("/v1/stream", s.handleStream)
	router.GET("/v1/example", s.handleExample)
	s.handler = s.withRequestID(newCorsHandler(router, cfg.CORSOrigins))
	return s, nil
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe serves on the configured address until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: s.handler, ReadHeaderTimeout: 10 * time.Second}
	s.log.Info("HTTP server started", "endpoint", listener.Addr(), "cors", strings.Join(s.cfg.CORSOrigins, ","))

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(listener) }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = srv.Shutdown(shutdownCtx)
	s.log.Info("HTTP server stopped", "endpoint", listener.Addr())
	if err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newCorsHandler(srv http.Handler, allowedOrigins []string) http.Handler {
	// disable CORS support if user has not specified a custom CORS configuration
	if len(allowedOrigins) == 0 {
		return srv
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         600,
	})
	return c.Handler(srv)
}

// checkOrigin accepts websocket handshakes without an Origin header, from
// the serving host itself, or from a configured CORS origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if i := strings.Index(origin, "://"); i >= 0 && strings.EqualFold(origin[i+3:], r.Host) {
		return true
	}
	for _, allowed := range s.cfg.CORSOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	s.log.Warn("Rejected websocket origin", "origin", origin)
	return false
}

type requestLogger struct{}

// withRequestID tags every request with a fresh id, echoes it in the
// X-Request-Id header, applies the rate limit and logs the outcome.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-Id", id)
		logger := s.log.New("reqid", id)
		r = r.WithContext(context.WithValue(r.Context(), requestLogger{}, logger))

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		if s.limiter != nil && !s.limiter.Allow() {
			writeError(sw, http.StatusTooManyRequests, errors.New("request rate limit exceeded"))
		} else {
			next.ServeHTTP(sw, r)
		}
		logger.Debug("Served request", "method", r.Method, "path", r.URL.Path, "status", sw.status, "elapsed", time.Since(start))
	})
}

// requestLog returns the request scoped logger.
func (s *Server) requestLog(r *http.Request) log.Logger {
	if l, ok := r.Context().Value(requestLogger{}).(log.Logger); ok {
		return l
	}
	return s.log
}

// cacheKey identifies one analysis of a source text.
func cacheKey(op, profile, source string) string {
	sum := sha256.Sum256([]byte(source))
	return op + "/" + profile + "/" + hex.EncodeToString(sum[:])
}

func (s *Server) cached(key string) (interface{}, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(key)
}

func (s *Server) remember(key string, v interface{}) {
	if s.cache != nil {
		s.cache.Add(key, v)
	}
}

// statusWriter records the response status. It passes Hijack through so
// websocket upgrades keep working.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response does not support hijacking")
	}
	w.status = http.StatusSwitchingProtocols
	return h.Hijack()
}
