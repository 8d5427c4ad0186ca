package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kisym/pkg/kicad/symgen"
	"github.com/OpenTraceLab/kisym/pkg/kicad/symgen/pinspec"
)

var layoutSpec specFlags

var layoutCmd = &cobra.Command{
	Use:   "layout [name]",
	Short: "Print the computed outline and pin table",
	Long: `Compute a symbol without writing it and print its body size, outline
corners and every pin with its number, position and direction.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	addSpecFlags(layoutCmd, &layoutSpec)
}

func runLayout(cmd *cobra.Command, args []string) error {
	file, err := resolveFile(cmd, &layoutSpec, args)
	if err != nil {
		return err
	}
	spec, err := file.Spec()
	if err != nil {
		return err
	}
	geom, err := symgen.Compute(spec)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s %s\n", StyleTitle.Render("Symbol:"), spec.Name)
	fmt.Fprintf(w, "Pins: %s (%d total)\n", pinspec.Format(spec.Pins), spec.Pins.Total())
	fmt.Fprintf(w, "Body: %dx%d mils\n", geom.Width, geom.Height)
	c := geom.Corners
	fmt.Fprintf(w, "Corners: TL%s BL%s BR%s TR%s\n", c.TopLeft, c.BottomLeft, c.BottomRight, c.TopRight)
	fmt.Fprintln(w)
	fmt.Fprintln(w, pinTable(geom))
	return nil
}

func pinTable(geom *symgen.Geometry) *table.Table {
	rows := make([][]string, 0, len(geom.Pins))
	for _, p := range geom.Pins {
		rows = append(rows, []string{
			strconv.Itoa(p.Number),
			p.Side.String(),
			strconv.Itoa(p.Slot),
			strconv.Itoa(p.Position.X),
			strconv.Itoa(p.Position.Y),
			p.Orientation().Code(),
		})
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Pin", "Side", "Slot", "X", "Y", "Dir").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}
