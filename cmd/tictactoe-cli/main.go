package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/rocketscienceinc/tictactoe-bot/cmd/internal/move"
	"github.com/rocketscienceinc/tictactoe-bot/cmd/internal/selfplay"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&move.Command{}, "")
	subcommands.Register(&selfplay.Command{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
