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
	"context"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/minic/cmd/utils"
	"github.com/probechain/minic/server"
)

var (
	addrFlag = cli.StringFlag{
		Name:  "addr",
		Usage: "HTTP listening address",
		Value: server.DefaultConfig.Addr,
	}

	serveCommand = cli.Command{
		Action:   utils.MigrateFlags(serve),
		Name:     "serve",
		Usage:    "Serve the lexer and parser over HTTP",
		Flags:    []cli.Flag{utils.ConfigFileFlag, utils.ProfileFlag, addrFlag},
		Category: "SERVER COMMANDS",
		Description: `
The serve command starts the HTTP API used by browser front ends:

  POST /v1/tokenize   token and symbol tables
  POST /v1/parse      syntax tree
  POST /v1/graph      syntax tree as Graphviz DOT
  GET  /v1/stream     websocket, one message per token
  GET  /v1/example    the example program`,
	}

	// Flags that belong to a single command. They are also registered
	// globally so they can be given before the command name.
	commandFlags = []cli.Flag{
		declareFlag,
		addrFlag,
		outDirFlag,
		jobsFlag,
	}
)

func serve(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	srv, err := server.New(cfg.Server, cfg.Lexer)
	if err != nil {
		return err
	}
	sigctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(sigctx)
}
