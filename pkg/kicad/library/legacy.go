// Package library serializes symbol geometry into KiCad symbol libraries.
//
// The legacy writer appends one DEF...ENDDEF block per symbol to an
// EESchema-LIBRARY 2.4 file. The kicad_sym exporter writes the same geometry
// as a KiCad 6 S-expression library.
package library

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/OpenTraceLab/kisym/pkg/errors"
	"github.com/OpenTraceLab/kisym/pkg/kicad/symgen"
)

// Legacy format constants
const (
	LegacyHeader    = "EESchema-LIBRARY Version 2.4"
	LegacyExtension = ".lib"
)

// FileName returns the default library file name for a symbol.
func FileName(symbolName string) string {
	return symbolName + LegacyExtension
}

// Option configures a Writer.
type Option func(*options)

type options struct {
	truncate    bool
	withoutPins bool
	logger      *log.Logger
}

// WithTruncate replaces the target file with the new definition. The block is
// written to a temporary file in the same directory and renamed over the
// target on a successful Close, so a failed write keeps the old contents.
// Without it definitions are appended, and generating the same name twice
// leaves two blocks in the file.
func WithTruncate() Option { return func(o *options) { o.truncate = true } }

// WithoutPins writes the outline only.
func WithoutPins() Option { return func(o *options) { o.withoutPins = true } }

// WithLogger reports state transitions at debug level.
func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o
}

type state int

const (
	stateHeader state = iota // DEF and fields written, DRAW open
	stateBody                // at least one body written
	stateClosed              // ENDDEF written, handle released
)

func (s state) String() string {
	switch s {
	case stateHeader:
		return "header written"
	case stateBody:
		return "body written"
	default:
		return "closed"
	}
}

// LineError identifies the record that could not be written.
type LineError struct {
	Line   int    // 1-based line within this definition block
	Record string // Record kind, e.g. "DEF" or "X"
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Record, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Writer emits one legacy definition block.
//
// A Writer starts with the header already written. WriteBody may be called any
// number of times, then Close writes the footer and releases the underlying
// file. Once a write fails the block is incomplete; later calls return the
// same error and Close only releases the file.
type Writer struct {
	out    io.Writer
	closer io.Closer
	spec   symgen.Spec

	// Set when truncating: the block goes to tmpPath until Close renames it.
	path    string
	tmpPath string

	opts   options

	state state
	line  int
	err   error
}

// NewWriter validates spec and writes the definition header to w.
func NewWriter(w io.Writer, spec symgen.Spec, opts ...Option) (*Writer, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	lw := &Writer{out: w, spec: spec, opts: buildOptions(opts)}
	if err := lw.writeHeader(); err != nil {
		return nil, err
	}
	return lw, nil
}

// Open validates spec, opens path for appending (or truncation with
// WithTruncate) and writes the definition header. A file that cannot be opened
// yields an OPEN_FAILED error and nothing is written.
func Open(path string, spec symgen.Spec, opts ...Option) (*Writer, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	if o.truncate {
		return openReplace(path, spec, o)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeOpen, err, "open library %s", path)
	}

	lw := &Writer{out: f, closer: f, spec: spec, opts: o}
	if err := lw.writeHeader(); err != nil {
		f.Close()
		return nil, err
	}
	lw.opts.logger.Debug("opened library", "path", path, "truncate", false)
	return lw, nil
}

// openReplace starts a block in a temporary sibling of path.
func openReplace(path string, spec symgen.Spec, o options) (*Writer, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeOpen, err, "open library %s", path)
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, errors.Wrap(errors.ErrCodeOpen, err, "open library %s", path)
	}

	lw := &Writer{out: f, closer: f, spec: spec, opts: o, path: path, tmpPath: f.Name()}
	if err := lw.writeHeader(); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}
	lw.opts.logger.Debug("opened library", "path", path, "truncate", true, "tmp", f.Name())
	return lw, nil
}

// Append lays out spec and writes one complete definition to path.
// The spec is validated before the file is touched.
func Append(path string, spec symgen.Spec, opts ...Option) (*symgen.Geometry, error) {
	geom, err := symgen.Compute(spec)
	if err != nil {
		return nil, err
	}

	w, err := Open(path, spec, opts...)
	if err != nil {
		return nil, err
	}

	if err := w.WriteBody(geom); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return geom, nil
}

// Lines returns the number of lines written so far.
func (w *Writer) Lines() int {
	return w.line
}

// WriteBody writes the outline and, unless WithoutPins was given, every pin of
// g. Pins are written grouped left, right, top, bottom.
func (w *Writer) WriteBody(g *symgen.Geometry) error {
	if w.err != nil {
		return w.err
	}
	if w.state == stateClosed {
		return errors.New(errors.ErrCodeState, "write body: writer is %s", w.state)
	}
	if g == nil {
		return errors.New(errors.ErrCodeState, "write body: nil geometry")
	}

	unit := w.spec.Unit
	for _, e := range g.Edges() {
		if err := w.writeLine("P", "P 2 %d 0 %d %d %d %d %d N",
			unit, w.spec.OutlineThickness, e.From.X, e.From.Y, e.To.X, e.To.Y); err != nil {
			return err
		}
	}

	if !w.opts.withoutPins {
		for _, p := range g.Pins {
			if err := w.writeLine("X", "X ~ %d %d %d %d %s %d %d %d 0 B",
				p.Number, p.Position.X, p.Position.Y, w.spec.PinStubLength,
				p.Orientation().Code(), w.spec.TextWidth, w.spec.TextHeight, unit); err != nil {
				return err
			}
		}
	}

	w.state = stateBody
	w.opts.logger.Debug("wrote body", "name", w.spec.Name, "pins", len(g.Pins), "lines", w.line)
	return nil
}

// Close writes the footer and releases the underlying file, if any.
func (w *Writer) Close() error {
	if w.state == stateClosed {
		return errors.New(errors.ErrCodeState, "close: writer is %s", w.state)
	}
	w.state = stateClosed

	err := w.err
	if err == nil {
		err = w.writeFooter()
	}

	if w.closer != nil {
		if cerr := w.closer.Close(); cerr != nil && err == nil {
			err = errors.Wrap(errors.ErrCodeWrite, cerr, "close library")
		}
	}

	if w.tmpPath != "" {
		if err == nil {
			if rerr := os.Rename(w.tmpPath, w.path); rerr != nil {
				err = errors.Wrap(errors.ErrCodeWrite, rerr, "replace library %s", w.path)
			}
		}
		if err != nil {
			os.Remove(w.tmpPath)
		}
	}

	if err == nil {
		w.opts.logger.Debug("closed definition", "name", w.spec.Name, "lines", w.line)
	}
	return err
}

func (w *Writer) writeHeader() error {
	s := w.spec
	if err := w.writeLine("header", "%s", LegacyHeader); err != nil {
		return err
	}
	if err := w.writeLine("DEF", "DEF %s %s 0 40 Y Y %d F N", s.Name, s.Designator, s.UnitCount); err != nil {
		return err
	}
	if err := w.writeLine("F0", `F0 "%s" 0 50 50 H V C CNN`, s.Designator); err != nil {
		return err
	}
	if err := w.writeLine("F1", `F1 "%s" 0 -50 50 H V C CNN`, s.Name); err != nil {
		return err
	}
	return w.writeLine("DRAW", "DRAW")
}

func (w *Writer) writeFooter() error {
	if err := w.writeLine("ENDDRAW", "ENDDRAW"); err != nil {
		return err
	}
	return w.writeLine("ENDDEF", "ENDDEF")
}

func (w *Writer) writeLine(record, format string, args ...any) error {
	w.line++
	if _, err := fmt.Fprintf(w.out, format+"\n", args...); err != nil {
		w.err = errors.Wrap(errors.ErrCodeWrite, &LineError{Line: w.line, Record: record, Err: err},
			"write %s record", record)
		return w.err
	}
	return nil
}
