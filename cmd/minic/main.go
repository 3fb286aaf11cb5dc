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

// minic is the command-line front end of the lexer and parser.
package main

import (
	"os"
	"sort"

	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/minic/cmd/utils"
	"github.com/probechain/minic/internal/source"
	"github.com/probechain/minic/log"
)

const version = "0.3.0"

var (
	// Flags that shape how the input is read and printed.
	outputFlags = []cli.Flag{
		utils.ProfileFlag,
		utils.FormatFlag,
		utils.ExampleFlag,
		utils.NoColorFlag,
	}
	// Flags that configure logging.
	loggingFlags = []cli.Flag{
		utils.VerbosityFlag,
		utils.LogOriginsFlag,
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "minic"
	app.Usage = "lexer and parser for a small C-like language"
	app.Version = version
	app.Copyright = "Copyright 2024 The go-probeum Authors"
	app.Commands = []cli.Command{
		tokensCommand,
		symbolsCommand,
		parseCommand,
		walkCommand,
		batchCommand,
		serveCommand,
		dumpConfigCommand,
	}
	sort.Sort(cli.CommandsByName(app.Commands))

	app.Flags = append(app.Flags, utils.ConfigFileFlag)
	app.Flags = append(app.Flags, outputFlags...)
	app.Flags = append(app.Flags, loggingFlags...)
	app.Flags = append(app.Flags, commandFlags...)

	app.Before = func(ctx *cli.Context) error {
		utils.SetupLogging(ctx)
		return nil
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		utils.Fatalf("%v", err)
	}
}

// readInput returns the program text named by the first argument, standard
// input when the argument is "-" or missing, or the example program when
// --example is given.
func readInput(ctx *cli.Context, limit int64) (name, text string, err error) {
	if ctx.GlobalBool(utils.ExampleFlag.Name) {
		return "example", source.Example, nil
	}
	name = "-"
	if ctx.NArg() > 0 {
		name = ctx.Args().First()
	}
	text, err = source.Read(name, limit)
	if err != nil {
		return "", "", err
	}
	log.Debug("Loaded source", "file", name, "bytes", len(text))
	return name, text, nil
}
