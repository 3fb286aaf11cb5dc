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

package utils

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/minic/log"
)

var (
	ConfigFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	ProfileFlag = cli.StringFlag{
		Name:  "profile",
		Usage: `Lexer profile ("strict" or "permissive")`,
	}
	FormatFlag = cli.StringFlag{
		Name:  "format",
		Usage: `Output format ("table", "csv" or "json"; parse also takes "tree" and "dot")`,
	}
	ExampleFlag = cli.BoolFlag{
		Name:  "example",
		Usage: "Analyze the bundled example program instead of a file",
	}
	NoColorFlag = cli.BoolFlag{
		Name:  "nocolor",
		Usage: "Disable colored output",
	}
	VerbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: 3,
	}
	LogOriginsFlag = cli.BoolFlag{
		Name:  "log.origins",
		Usage: "Print source locations in log messages",
	}
)

// SetupLogging installs the root log handler according to the verbosity
// and color flags. Logs go to standard error.
func SetupLogging(ctx *cli.Context) {
	var (
		output   io.Writer = os.Stderr
		usecolor           = isatty.IsTerminal(os.Stderr.Fd()) && os.Getenv("TERM") != "dumb" && !ctx.GlobalBool(NoColorFlag.Name)
	)
	if usecolor {
		output = colorable.NewColorableStderr()
	}
	log.PrintOrigins(ctx.GlobalBool(LogOriginsFlag.Name))
	handler := log.StreamHandler(output, log.TerminalFormat(usecolor))
	log.Root().SetHandler(log.LvlFilterHandler(log.Lvl(ctx.GlobalInt(VerbosityFlag.Name)), handler))
}
