package selfplay

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

type Command struct {
	x       string
	o       string
	games   int
	seed    int64
	threads int

	out io.Writer
}

func (*Command) Name() string     { return "selfplay" }
func (*Command) Synopsis() string { return "Play two bot tiers against each other and report results" }
func (*Command) Usage() string {
	return `selfplay [-x hard] [-o normal] [-games N] [-seed N] [-threads N]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.x, "x", string(tictactoe.Hard), "difficulty of the X player")
	flags.StringVar(&c.o, "o", string(tictactoe.Normal), "difficulty of the O player")
	flags.IntVar(&c.games, "games", 100, "number of games to play")
	flags.Int64Var(&c.seed, "seed", 0, "random seed (0 picks one)")
	flags.IntVar(&c.threads, "threads", 4, "number of parallel games")
}

// Stats counts the outcomes of a selfplay run.
type Stats struct {
	XWins int
	OWins int
	Ties  int
}

func (c *Command) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.out == nil {
		c.out = os.Stdout
	}

	xDifficulty, err := tictactoe.ParseDifficulty(c.x)
	if err != nil {
		fmt.Fprintf(os.Stderr, "selfplay: -x: %v\n", err)
		return subcommands.ExitUsageError
	}

	oDifficulty, err := tictactoe.ParseDifficulty(c.o)
	if err != nil {
		fmt.Fprintf(os.Stderr, "selfplay: -o: %v\n", err)
		return subcommands.ExitUsageError
	}

	if c.seed == 0 {
		c.seed = time.Now().UnixNano()
	}

	engine := tictactoe.NewEngine(tictactoe.NewLockedRand(c.seed))

	st, err := Simulate(ctx, engine, xDifficulty, oDifficulty, c.games, c.threads)
	if err != nil {
		fmt.Fprintf(os.Stderr, "selfplay: %v\n", err)
		return subcommands.ExitFailure
	}

	tw := tabwriter.NewWriter(c.out, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "seed\t%d\n", c.seed)
	fmt.Fprintf(tw, "X (%s)\t%d\n", xDifficulty, st.XWins)
	fmt.Fprintf(tw, "O (%s)\t%d\n", oDifficulty, st.OWins)
	fmt.Fprintf(tw, "ties\t%d\n", st.Ties)
	_ = tw.Flush()

	return subcommands.ExitSuccess
}

// Simulate - plays games engine against engine on up to threads goroutines.
func Simulate(
	ctx context.Context,
	engine *tictactoe.Engine,
	xDifficulty, oDifficulty tictactoe.Difficulty,
	games, threads int,
) (Stats, error) {
	var (
		mu sync.Mutex
		st Stats
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(threads, 1))

	for range games {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			result, err := PlayGame(engine, xDifficulty, oDifficulty)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()

			switch result {
			case tictactoe.MarkX:
				st.XWins++
			case tictactoe.MarkO:
				st.OWins++
			default:
				st.Ties++
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return Stats{}, fmt.Errorf("selfplay failed: %w", err)
	}

	return st, nil
}

// PlayGame - plays one game from the empty board and returns the winning mark or Tie.
func PlayGame(engine *tictactoe.Engine, xDifficulty, oDifficulty tictactoe.Difficulty) (string, error) {
	var board [tictactoe.BoardSize]string

	mark, difficulty := tictactoe.MarkX, xDifficulty
	for tictactoe.Result(board) == tictactoe.Empty {
		cell, err := engine.ChooseMove(board, mark, tictactoe.Opponent(mark), difficulty)
		if err != nil {
			return "", fmt.Errorf("move for %s: %w", mark, err)
		}

		board[cell] = mark

		if mark == tictactoe.MarkX {
			mark, difficulty = tictactoe.MarkO, oDifficulty
		} else {
			mark, difficulty = tictactoe.MarkX, xDifficulty
		}
	}

	return tictactoe.Result(board), nil
}
