package move

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"

	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

var ErrBadBoard = errors.New("board must have 9 comma-separated cells of X, O or empty")

type Command struct {
	board      string
	bot        string
	difficulty string
	seed       int64

	out io.Writer
}

func (*Command) Name() string     { return "move" }
func (*Command) Synopsis() string { return "Print the bot's move for a board" }
func (*Command) Usage() string {
	return `move -board "X,X,,,,,,," -bot O [-difficulty hard] [-seed N]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.board, "board", ",,,,,,,,", "board as 9 comma-separated cells, row by row")
	flags.StringVar(&c.bot, "bot", tictactoe.MarkO, "mark played by the bot")
	flags.StringVar(&c.difficulty, "difficulty", string(tictactoe.Hard), "easy, normal or hard")
	flags.Int64Var(&c.seed, "seed", 0, "random seed for easy and normal (0 picks one)")
}

func (c *Command) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.out == nil {
		c.out = os.Stdout
	}

	cell, err := c.run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "move: %v\n", err)
		return subcommands.ExitUsageError
	}

	fmt.Fprintln(c.out, cell)

	return subcommands.ExitSuccess
}

func (c *Command) run() (int, error) {
	board, err := ParseBoard(c.board)
	if err != nil {
		return -1, err
	}

	difficulty, err := tictactoe.ParseDifficulty(c.difficulty)
	if err != nil {
		return -1, err
	}

	seed := c.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	botMark := tictactoe.NormalizeMark(c.bot)
	engine := tictactoe.NewEngine(tictactoe.NewLockedRand(seed))

	return engine.ChooseMove(board, botMark, tictactoe.Opponent(botMark), difficulty)
}

// ParseBoard - reads "X,O,,..." into a board. Cells are trimmed and case-insensitive.
func ParseBoard(value string) ([tictactoe.BoardSize]string, error) {
	var board [tictactoe.BoardSize]string

	cells := strings.Split(value, ",")
	if len(cells) != tictactoe.BoardSize {
		return board, fmt.Errorf("%w: got %d cells", ErrBadBoard, len(cells))
	}

	for i, cell := range cells {
		mark := tictactoe.NormalizeMark(cell)
		if mark != tictactoe.Empty && !tictactoe.IsValidMark(mark) {
			return board, fmt.Errorf("%w: cell %d is %q", ErrBadBoard, i, cell)
		}
		board[i] = mark
	}

	return board, nil
}
