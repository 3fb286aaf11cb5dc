// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package lexer

// Config selects the profile used by the front ends.
type Config struct {
	Profile       string   // "strict" or "permissive"
	ExtraKeywords []string // reserved in addition to the profile's keywords
}

// DefaultConfig scans with the strict profile.
var DefaultConfig = Config{Profile: "strict"}

// Resolve returns the named profile, or the configured one when name is
// empty, extended with the extra keywords.
func (c Config) Resolve(name string) (*Profile, error) {
	if name == "" {
		name = c.Profile
	}
	p, err := ProfileByName(name)
	if err != nil {
		return nil, err
	}
	return p.WithKeywords(c.ExtraKeywords...), nil
}
