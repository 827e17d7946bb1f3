package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/generator"
	puzzleio "github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/io"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/storage"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	width    int    // board width
	height   int    // board height
	markers  int    // number of virus markers
	seed     int64  // random seed, 0 seeds from the clock
	attempts int    // resampling budget
	output   string // instance output file, empty means stdout
	storeURI string // MongoDB URI to persist the puzzle, empty disables
}

// generateCommand creates the generate command. It samples random solvable
// instances, writes the winning definition as JSON or TOML, and optionally
// persists it to MongoDB.
func (c *CLI) generateCommand() *cobra.Command {
	defaults := generator.Defaults()
	opts := generateOpts{
		width:    defaults.Width,
		height:   defaults.Height,
		markers:  defaults.Markers,
		attempts: defaults.Attempts,
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random solvable puzzle instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, &opts)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", opts.width, "board width")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "board height")
	cmd.Flags().IntVar(&opts.markers, "markers", opts.markers, "number of virus markers")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed (0: seed from the clock)")
	cmd.Flags().IntVar(&opts.attempts, "attempts", opts.attempts, "resampling budget")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "instance output file (default: stdout)")
	cmd.Flags().StringVar(&opts.storeURI, "store", "", "MongoDB URI to persist the puzzle")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts *generateOpts) error {
	ctx := cmd.Context()

	prog := newProgress(c.Logger)
	result, err := generator.Generate(ctx, generator.Options{
		Width:    opts.width,
		Height:   opts.height,
		Markers:  opts.markers,
		Seed:     opts.seed,
		Attempts: opts.attempts,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %s in %d attempt(s)", result.ID, result.Attempts))

	if err := writeDefinition(result, opts.output); err != nil {
		return err
	}

	if opts.storeURI != "" {
		if err := c.persistResult(cmd, result, opts.storeURI); err != nil {
			return err
		}
	}

	printSuccess("Generated %dx%d puzzle with %d tiles", opts.width, opts.height, len(result.Definition.Tiles))
	printKeyValue("id", result.ID)
	if opts.output != "" {
		printFile(opts.output)
		printNextStep("Solve it", fmt.Sprintf("antivirus solve %s", opts.output))
	}
	return nil
}

// writeDefinition writes the generated definition, choosing TOML for .toml
// output paths and JSON otherwise.
func writeDefinition(result *generator.Result, output string) error {
	out, closeOut, err := openOutput(output)
	if err != nil {
		return err
	}
	defer closeOut()

	if strings.EqualFold(filepath.Ext(output), ".toml") {
		return puzzleio.WriteTOML(out, result.Definition)
	}
	return puzzleio.WriteJSON(out, result.Definition)
}

// persistResult stores the generated puzzle and its witness solution in
// MongoDB.
func (c *CLI) persistResult(cmd *cobra.Command, result *generator.Result, uri string) error {
	ctx := cmd.Context()

	store, err := storage.NewMongoStore(ctx, uri)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	rec := storage.Record{
		ID:         result.ID,
		CreatedAt:  time.Now().UTC(),
		Definition: result.Definition,
		Moves:      result.Solution.Moves(),
		Placements: result.Solution.Placements,
	}
	if err := store.Put(ctx, rec); err != nil {
		return err
	}
	c.Logger.Infof("Stored puzzle %s", result.ID)
	return nil
}
