// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package server

import "fmt"

// Config holds the settings of the analysis server.
type Config struct {
	Addr           string
	CacheSize      int      // number of cached analyses, 0 disables the cache
	CORSOrigins    []string // origins allowed to call the API from a browser
	MaxSourceBytes int64

	// Request rate limit shared by all clients. Zero disables limiting.
	RequestsPerSecond float64
	RequestBurst      int
}

// DefaultConfig contains reasonable default settings.
var DefaultConfig = Config{
	Addr:           "127.0.0.1:8650",
	CacheSize:      256,
	CORSOrigins:    []string{"*"},
	MaxSourceBytes: 1 << 20,
	RequestBurst:   16,
}

func (c *Config) validate() error {
	if c.MaxSourceBytes <= 0 {
		return fmt.Errorf("invalid source size limit %d", c.MaxSourceBytes)
	}
	if c.RequestsPerSecond < 0 || (c.RequestsPerSecond > 0 && c.RequestBurst < 1) {
		return fmt.Errorf("invalid rate limit %v/s with burst %d", c.RequestsPerSecond, c.RequestBurst)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("invalid cache size %d", c.CacheSize)
	}
	return nil
}
