package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	puzzleio "github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/io"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/tile"
)

// classesCommand creates the classes command. It reports the orientation
// equivalence classes of a tile inventory, either from an instance file or
// from the standard nine-piece set.
func (c *CLI) classesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classes [file]",
		Short: "Count distinct tile orientations",
		Long:  `Classes counts the distinct orientations of each tile under rotation and mirroring. Symmetric tiles collapse to fewer classes, which bounds the branching factor of the solver.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tiles := tile.Standard()
			source := "standard inventory"
			if len(args) == 1 {
				def, err := puzzleio.ReadInstanceFile(args[0])
				if err != nil {
					return err
				}
				tiles = def.Tiles
				source = args[0]
			}

			report := tile.Classes(tiles)

			fmt.Println(StyleTitle.Render("Orientation classes") + " " + StyleDim.Render("("+source+")"))
			printNewline()
			for _, cc := range report.PerTile {
				fmt.Printf("  %s %s %s\n",
					StyleValue.Render(fmt.Sprintf("%-10s", cc.Name)),
					StyleDim.Render(fmt.Sprintf("%d cells", cc.Cells)),
					StyleNumber.Render(fmt.Sprintf("%d orientation(s)", cc.Count)))
			}
			printNewline()
			printKeyValue("total", fmt.Sprintf("%d configurations", report.Total))
			return nil
		},
	}
}
