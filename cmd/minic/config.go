// Copyright 2024 The go-probeum Authors
// This file is part of go-probeum.
//
// go-probeum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-probeum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-probeum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/minic/cmd/utils"
	"github.com/probechain/minic/lang/lexer"
	"github.com/probechain/minic/server"
)

var dumpConfigCommand = cli.Command{
	Action:      utils.MigrateFlags(dumpConfig),
	Name:        "dumpconfig",
	Usage:       "Show configuration values",
	ArgsUsage:   "",
	Flags:       append([]cli.Flag{utils.ConfigFileFlag}, outputFlags...),
	Category:    "MISCELLANEOUS COMMANDS",
	Description: `The dumpconfig command shows configuration values.`,
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

type outputConfig struct {
	Format string // "table", "csv" or "json"
	Color  bool
}

type minicConfig struct {
	Lexer  lexer.Config
	Server server.Config
	Output outputConfig
}

func defaultConfig() minicConfig {
	return minicConfig{
		Lexer:  lexer.DefaultConfig,
		Server: server.DefaultConfig,
		Output: outputConfig{Format: "table", Color: true},
	}
}

func loadConfig(file string, cfg *minicConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig loads the defaults, then the config file, then applies flags.
func makeConfig(ctx *cli.Context) (minicConfig, error) {
	cfg := defaultConfig()
	if file := ctx.GlobalString(utils.ConfigFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}
	if ctx.GlobalIsSet(utils.ProfileFlag.Name) {
		cfg.Lexer.Profile = ctx.GlobalString(utils.ProfileFlag.Name)
	}
	if ctx.GlobalIsSet(utils.FormatFlag.Name) {
		cfg.Output.Format = ctx.GlobalString(utils.FormatFlag.Name)
	}
	if ctx.GlobalBool(utils.NoColorFlag.Name) {
		cfg.Output.Color = false
	}
	if ctx.GlobalIsSet(addrFlag.Name) {
		cfg.Server.Addr = ctx.GlobalString(addrFlag.Name)
	}
	if _, err := cfg.Lexer.Resolve(""); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := ctx.App.Writer
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	dump.Write(out)
	return nil
}
