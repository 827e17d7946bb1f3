package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/board"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/cache"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/geom"
	puzzleio "github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/io"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/puzzle"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/render"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/solver"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/tile"
)

// Rule names accepted by the --rule flag.
const (
	ruleColor = "color"
	ruleCount = "count"
	ruleBoth  = "both"
)

// Output formats accepted by the --format flag.
const (
	formatText = "text"
	formatSVG  = "svg"
	formatJSON = "json"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	output       string // output file path, empty means stdout
	format       string // output format: "text", "svg", "json"
	rule         string // adjacency rule: "color", "count", "both"
	cacheBackend string // cache backend: "file", "redis", "off"
	redisAddr    string // redis address for --cache redis
	timeout      int    // search timeout in seconds, 0 disables
	demo         bool   // solve the built-in demo instance
}

// solveCommand creates the solve command. It reads an instance from a JSON or
// TOML file (or uses the built-in demo), runs the backtracking search, and
// renders the covering in the requested format. Solutions are cached by
// instance fingerprint so repeated solves skip the search.
func (c *CLI) solveCommand() *cobra.Command {
	opts := solveOpts{
		format:       formatText,
		rule:         ruleColor,
		cacheBackend: cacheBackendFile,
		redisAddr:    "localhost:6379",
		timeout:      defaultSolveTimeout,
	}

	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Solve a puzzle instance",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !opts.demo {
				return fmt.Errorf("provide an instance file or --demo")
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runSolve(cmd, input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text (default), svg, json")
	cmd.Flags().StringVar(&opts.rule, "rule", opts.rule, "adjacency rule: color (default), count, both")
	cmd.Flags().StringVar(&opts.cacheBackend, "cache", opts.cacheBackend, "solution cache: file (default), redis, off")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", opts.redisAddr, "redis address for --cache redis")
	cmd.Flags().IntVar(&opts.timeout, "timeout", opts.timeout, "search timeout in seconds (0 disables)")
	cmd.Flags().BoolVar(&opts.demo, "demo", false, "solve the built-in demo instance")

	return cmd
}

func (c *CLI) runSolve(cmd *cobra.Command, input string, opts *solveOpts) error {
	ctx := cmd.Context()

	var (
		def puzzle.Definition
		err error
	)
	if input == "" {
		c.Logger.Info("Using built-in demo instance")
		def = demoDefinition()
	} else {
		def, err = puzzleio.ReadInstanceFile(input)
		if err != nil {
			return err
		}
	}

	rule, err := buildRule(opts.rule)
	if err != nil {
		return err
	}
	inst, err := puzzle.New(def, puzzle.WithRule(rule))
	if err != nil {
		return err
	}
	c.Logger.Debugf("Instance: %dx%d, %d tiles, %d free cells",
		def.Width, def.Height, len(def.Tiles), inst.Board().FreeCells())

	store, err := newCache(cmd, opts.cacheBackend, opts.redisAddr)
	if err != nil {
		return err
	}
	defer store.Close()

	key := cache.SolutionKey(inst.Fingerprint() + ":" + opts.rule)

	sol, stats, cached, err := c.solveWithCache(ctx, inst, store, key, opts)
	if errors.Is(err, solver.ErrNoSolution) {
		printError("No covering exists for this instance")
		return err
	}
	if err != nil {
		return err
	}

	if err := writeSolution(inst, sol, opts); err != nil {
		return err
	}

	printSuccess("Covered %d cells with %d tiles", inst.Board().FreeCells(), sol.Moves())
	printStats(sol.Moves(), stats.Nodes, cached)
	if opts.output != "" {
		printFile(opts.output)
	}
	return nil
}

// solveWithCache returns a cached solution when one exists and runs the
// search otherwise, storing a fresh result on success. Cache failures are
// logged and ignored; the search result always wins.
func (c *CLI) solveWithCache(ctx context.Context, inst *puzzle.Instance, store cache.Cache, key string, opts *solveOpts) (*solver.Solution, solver.Stats, bool, error) {
	logger := loggerFromContext(ctx)

	if data, ok, err := store.Get(ctx, key); err == nil && ok {
		sol, err := puzzleio.ReadSolutionJSON(bytes.NewReader(data))
		if err == nil {
			logger.Debug("Cache hit")
			return sol, solver.Stats{}, true, nil
		}
		logger.Debugf("Discarding unreadable cache entry: %v", err)
	} else if err != nil {
		logger.Debugf("Cache lookup failed: %v", err)
	}

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(opts.timeout)*time.Second)
		defer cancel()
	}

	spinner := newSpinnerWithContext(ctx, "Searching for a covering...")
	spinner.Start()
	prog := newProgress(c.Logger)
	sol, stats, err := inst.Solve(ctx)
	spinner.Stop()
	if err != nil {
		return nil, stats, false, err
	}
	prog.done(fmt.Sprintf("Searched %d nodes", stats.Nodes))

	var buf bytes.Buffer
	if encErr := puzzleio.WriteSolutionJSON(&buf, sol); encErr == nil {
		if setErr := store.Set(ctx, key, buf.Bytes(), cache.DefaultTTL); setErr != nil {
			logger.Debugf("Cache store failed: %v", setErr)
		}
	}
	return sol, stats, false, nil
}

// writeSolution renders the solution in the requested format.
func writeSolution(inst *puzzle.Instance, sol *solver.Solution, opts *solveOpts) error {
	out, closeOut, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer closeOut()

	switch opts.format {
	case formatText:
		return inst.Render(out, &render.Text{Legend: true}, sol)
	case formatSVG:
		return inst.Render(out, &render.SVG{}, sol)
	case formatJSON:
		return puzzleio.WriteSolutionJSON(out, sol)
	default:
		return fmt.Errorf("unknown format: %s (must be 'text', 'svg', or 'json')", opts.format)
	}
}

// buildRule maps a --rule flag value to an adjacency rule.
func buildRule(name string) (board.Rule, error) {
	switch name {
	case ruleColor:
		return board.ColorRule{}, nil
	case ruleCount:
		return board.CountRule{}, nil
	case ruleBoth:
		return board.Rules{board.ColorRule{}, board.CountRule{}}, nil
	default:
		return nil, fmt.Errorf("unknown rule: %s (must be 'color', 'count', or 'both')", name)
	}
}

// openOutput opens path for writing, or returns stdout when path is empty.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// demoDefinition builds a small solvable instance: a 4x3 board covered by
// four L-trominoes, with one virus marker that only the red tile may cover.
func demoDefinition() puzzle.Definition {
	ell := []geom.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}}
	return puzzle.Definition{
		Width:  4,
		Height: 3,
		Markers: []board.Marker{
			{Cell: geom.Cell{Row: 0, Col: 0}, Color: "#e50000"},
		},
		Tiles: []tile.Tile{
			tile.New("alpha", "#e50000", ell...),
			tile.New("beta", "#0343df", ell...),
			tile.New("gamma", "#15b01a", ell...),
			tile.New("delta", "#9a0eea", ell...),
		},
	}
}
