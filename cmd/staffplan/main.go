package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

const version = "0.1.0"

func main() {
	root := &cli.Command{
		Name:    "staffplan",
		Usage:   "Staff allocation planning over MCP and JSON-RPC",
		Version: version,
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			apiKeyCommand(),
			heatmapCommand(),
		},
		Action: runServe,
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "staffplan: %v\n", err)
		os.Exit(1)
	}
}
