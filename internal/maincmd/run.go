package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	blockscope "github.com/jscompat/blockscope"
	"github.com/jscompat/blockscope/ast"
	"github.com/jscompat/blockscope/config"
	"github.com/jscompat/blockscope/log"
)

// Run loads the JSON-encoded AST fixture named by args[0], runs the pass
// over it, and dumps the rewritten tree to stdout.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	file, err := ast.FromJSON(data)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	logger := log.NewStdLogger(levelFromString(cfg.LogLevel))

	pass := blockscope.New(logger)
	pass.CollectUndeclared = cfg.CollectUndeclared && !c.NoCollectUndeclared
	pass.NameBlocks = cfg.NameBlocks || c.NameBlocks

	if err := pass.Run(ctx, file); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	for _, entry := range pass.LastRenames.Sorted() {
		logger.Infof("renamed %q to %q", entry.Name, entry.NewName)
	}

	return ast.Dump(stdio.Stdout, file)
}

// Version prints the build version, also reachable via the -v/--version
// flag; kept as its own subcommand for scriptable use (`blockscope version`
// exits 0 without needing to parse flag syntax).
func (c *Cmd) Version(_ context.Context, stdio mainer.Stdio, _ []string) error {
	fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
	return nil
}

func levelFromString(s string) log.Level {
	switch s {
	case "debug":
		return log.LevelDebug
	case "info":
		return log.LevelInfo
	default:
		return log.LevelWarn
	}
}
