package library

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/OpenTraceLab/kisym/pkg/errors"
	"github.com/OpenTraceLab/kisym/pkg/kicad/symgen"
)

// KiCad 6 symbol library constants
const (
	KicadSymVersion   = 20211014
	KicadSymGenerator = "kisym"
	KicadSymExtension = ".kicad_sym"
)

// Symbol pairs a spec with the geometry computed from it.
type Symbol struct {
	Spec     symgen.Spec
	Geometry *symgen.Geometry
}

// NewSymbol computes the geometry for spec.
func NewSymbol(spec symgen.Spec) (Symbol, error) {
	geom, err := symgen.Compute(spec)
	if err != nil {
		return Symbol{}, err
	}
	return Symbol{Spec: spec, Geometry: geom}, nil
}

// ExportKicadSym writes a complete kicad_sym library holding specs to path,
// replacing the file. Every spec is validated before the file is created.
func ExportKicadSym(path string, specs ...symgen.Spec) error {
	symbols := make([]Symbol, 0, len(specs))
	for _, spec := range specs {
		sym, err := NewSymbol(spec)
		if err != nil {
			return err
		}
		symbols = append(symbols, sym)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeOpen, err, "create library %s", path)
	}

	if err := WriteKicadSym(f, symbols...); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "close library %s", path)
	}
	return nil
}

// WriteKicadSym writes a kicad_symbol_lib document. Coordinates are converted
// from mils to millimetres; pin angles follow the stub orientation.
func WriteKicadSym(w io.Writer, symbols ...Symbol) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "(kicad_symbol_lib (version %d) (generator %s)\n", KicadSymVersion, KicadSymGenerator)
	for _, sym := range symbols {
		writeKicadSymbol(bw, sym)
	}
	fmt.Fprintln(bw, ")")

	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "write kicad_sym library")
	}
	return nil
}

func writeKicadSymbol(w io.Writer, sym Symbol) {
	s, g := sym.Spec, sym.Geometry
	fieldSize := mm(50)

	fmt.Fprintf(w, "  (symbol %s (in_bom yes) (on_board yes)\n", quote(s.Name))
	fmt.Fprintf(w, "    (property \"Reference\" %s (id 0) (at 0 %s 0)\n", quote(s.Designator), mm(50))
	fmt.Fprintf(w, "      (effects (font (size %s %s)))\n    )\n", fieldSize, fieldSize)
	fmt.Fprintf(w, "    (property \"Value\" %s (id 1) (at 0 %s 0)\n", quote(s.Name), mm(-50))
	fmt.Fprintf(w, "      (effects (font (size %s %s)))\n    )\n", fieldSize, fieldSize)

	fmt.Fprintf(w, "    (symbol %s\n", quote(fmt.Sprintf("%s_%d_1", s.Name, s.Unit)))
	for _, e := range g.Edges() {
		fmt.Fprintf(w, "      (polyline (pts (xy %s %s) (xy %s %s))\n",
			mm(e.From.X), mm(e.From.Y), mm(e.To.X), mm(e.To.Y))
		fmt.Fprintf(w, "        (stroke (width %s) (type default) (color 0 0 0 0))\n", mm(s.OutlineThickness))
		fmt.Fprintf(w, "        (fill (type none))\n      )\n")
	}

	textW, textH := mm(s.TextWidth), mm(s.TextHeight)
	for _, p := range g.Pins {
		fmt.Fprintf(w, "      (pin passive line (at %s %s %d) (length %s)\n",
			mm(p.Position.X), mm(p.Position.Y), p.Orientation().Angle(), mm(s.PinStubLength))
		fmt.Fprintf(w, "        (name \"~\" (effects (font (size %s %s))))\n", textW, textH)
		fmt.Fprintf(w, "        (number \"%d\" (effects (font (size %s %s))))\n      )\n", p.Number, textW, textH)
	}
	fmt.Fprintf(w, "    )\n  )\n")
}

// mm formats a mil value in millimetres without float rounding noise.
// 1 mil = 0.0254 mm exactly.
func mm(mils int) string {
	n := mils * 254
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	whole, frac := n/10000, n%10000
	if frac == 0 {
		return fmt.Sprintf("%s%d", sign, whole)
	}
	return strings.TrimRight(fmt.Sprintf("%s%d.%04d", sign, whole, frac), "0")
}

func quote(s string) string {
	return `"` + s + `"`
}
