// Package pinspec parses compact pin layout strings into symgen.PinCounts.
//
// A layout is a list of side/count entries separated by spaces or commas:
//
//	L4 R4 T2 B2
//	left=3, right=3
//	l:8 r:8
//
// Sides not mentioned get zero pins.
package pinspec

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/OpenTraceLab/kisym/pkg/errors"
	"github.com/OpenTraceLab/kisym/pkg/kicad/symgen"
)

// Layout is the parsed form of a layout string.
type Layout struct {
	Entries []*Entry `parser:"@@ ( Comma? @@ )*"`
}

// Entry is one side and its pin count.
type Entry struct {
	Side  string `parser:"@Side Assign?"`
	Count int    `parser:"@Int"`
}

var parser = participle.MustBuild[Layout](
	participle.Lexer(layoutLexer),
	participle.Elide("Whitespace"),
)

// Parse converts a layout string into pin counts. Empty input, unknown
// tokens and sides given more than once are INVALID_LAYOUT errors.
func Parse(input string) (symgen.PinCounts, error) {
	var counts symgen.PinCounts

	if strings.TrimSpace(input) == "" {
		return counts, errors.New(errors.ErrCodeInvalidLayout, "empty pin layout")
	}

	layout, err := parser.ParseString("", input)
	if err != nil {
		return counts, errors.Wrap(errors.ErrCodeInvalidLayout, err, "parse pin layout %q", input)
	}

	seen := make(map[symgen.Side]bool)
	for _, e := range layout.Entries {
		side, err := sideOf(e.Side)
		if err != nil {
			return counts, err
		}
		if seen[side] {
			return counts, errors.New(errors.ErrCodeInvalidLayout, "%s side given more than once", side)
		}
		seen[side] = true

		switch side {
		case symgen.Left:
			counts.Left = e.Count
		case symgen.Right:
			counts.Right = e.Count
		case symgen.Top:
			counts.Top = e.Count
		case symgen.Bottom:
			counts.Bottom = e.Count
		}
	}

	return counts, nil
}

// Format renders counts in the canonical "L<n> R<n> T<n> B<n>" form.
func Format(c symgen.PinCounts) string {
	return fmt.Sprintf("L%d R%d T%d B%d", c.Left, c.Right, c.Top, c.Bottom)
}

func sideOf(token string) (symgen.Side, error) {
	switch strings.ToLower(token) {
	case "l", "left":
		return symgen.Left, nil
	case "r", "right":
		return symgen.Right, nil
	case "t", "top":
		return symgen.Top, nil
	case "b", "bottom":
		return symgen.Bottom, nil
	}
	return symgen.Left, errors.New(errors.ErrCodeInvalidLayout, "unknown side %q", token)
}
