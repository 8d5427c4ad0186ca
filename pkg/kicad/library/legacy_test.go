package library

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/kisym/pkg/errors"
	"github.com/OpenTraceLab/kisym/pkg/kicad/symgen"
)

const opampLib = `EESchema-LIBRARY Version 2.4
DEF OPAMP U 0 40 Y Y 1 F N
F0 "U" 0 50 50 H V C CNN
F1 "OPAMP" 0 -50 50 H V C CNN
DRAW
P 2 1 0 5 -400 400 -400 -400 N
P 2 1 0 5 -400 -400 400 -400 N
P 2 1 0 5 400 -400 400 400 N
P 2 1 0 5 400 400 -400 400 N
X ~ 1 -600 200 200 R 60 60 1 0 B
X ~ 2 -600 0 200 R 60 60 1 0 B
X ~ 3 -600 -200 200 R 60 60 1 0 B
X ~ 4 600 200 200 L 60 60 1 0 B
X ~ 5 600 0 200 L 60 60 1 0 B
X ~ 6 600 -200 200 L 60 60 1 0 B
ENDDRAW
ENDDEF
`

func opampSpec() symgen.Spec {
	spec := symgen.DefaultSpec("OPAMP", "U")
	spec.Pins = symgen.PinCounts{Left: 3, Right: 3}
	return spec
}

func writeToBuffer(t *testing.T, spec symgen.Spec, opts ...Option) string {
	t.Helper()

	geom, err := symgen.Compute(spec)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	var buf bytes.Buffer
	w, err := NewWriter(&buf, spec, opts...)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if err := w.WriteBody(geom); err != nil {
		t.Fatalf("WriteBody() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return buf.String()
}

func TestWriteOpamp(t *testing.T) {
	got := writeToBuffer(t, opampSpec())
	if got != opampLib {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", got, opampLib)
	}

	if n := strings.Count(got, "\nP 2 "); n != 4 {
		t.Errorf("got %d P lines, want 4", n)
	}
	if n := strings.Count(got, "\nX ~ "); n != 6 {
		t.Errorf("got %d X lines, want 6", n)
	}
}

func TestWriteFourSided(t *testing.T) {
	spec := symgen.DefaultSpec("BRIDGE", "U")
	spec.Pins = symgen.PinCounts{Left: 2, Right: 2, Top: 1, Bottom: 1}
	spec.UnitCount = 2
	spec.Unit = 2

	lines := strings.Split(strings.TrimSpace(writeToBuffer(t, spec)), "\n")

	if lines[1] != "DEF BRIDGE U 0 40 Y Y 2 F N" {
		t.Errorf("DEF line = %q", lines[1])
	}

	var pins []string
	for _, l := range lines {
		if strings.HasPrefix(l, "X ") {
			pins = append(pins, l)
		}
	}

	// 800x600 body: TL (-400, 300), BL (-400, -300), TR (400, 300)
	want := []string{
		"X ~ 1 -600 100 200 R 60 60 2 0 B",
		"X ~ 2 -600 -100 200 R 60 60 2 0 B",
		"X ~ 5 600 100 200 L 60 60 2 0 B",
		"X ~ 4 600 -100 200 L 60 60 2 0 B",
		"X ~ 6 -200 500 200 D 60 60 2 0 B",
		"X ~ 3 -200 -500 200 U 60 60 2 0 B",
	}
	if len(pins) != len(want) {
		t.Fatalf("got %d pin lines, want %d:\n%s", len(pins), len(want), strings.Join(pins, "\n"))
	}
	for i := range want {
		if pins[i] != want[i] {
			t.Errorf("pin line %d = %q, want %q", i, pins[i], want[i])
		}
	}
}

func TestWriteWithoutPins(t *testing.T) {
	got := writeToBuffer(t, opampSpec(), WithoutPins())

	if strings.Contains(got, "\nX ") {
		t.Errorf("WithoutPins output contains pin records:\n%s", got)
	}
	if n := strings.Count(got, "\nP 2 "); n != 4 {
		t.Errorf("got %d P lines, want 4", n)
	}
}

func TestAppendAccumulates(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName("OPAMP"))

	for i := 0; i < 2; i++ {
		if _, err := Append(path, opampSpec()); err != nil {
			t.Fatalf("Append() #%d error = %v", i+1, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != opampLib+opampLib {
		t.Errorf("file does not hold two identical blocks:\n%s", data)
	}
}

func TestAppendTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opamp.lib")

	if _, err := Append(path, opampSpec()); err != nil {
		t.Fatal(err)
	}
	if _, err := Append(path, opampSpec(), WithTruncate()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != opampLib {
		t.Errorf("truncating append left:\n%s", data)
	}
}

func TestAppendInvalidSpecLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opamp.lib")
	if err := os.WriteFile(path, []byte(opampLib), 0o644); err != nil {
		t.Fatal(err)
	}

	spec := opampSpec()
	spec.Pins.Left = -1

	_, err := Append(path, spec)
	if !errors.Is(err, errors.ErrCodeInvalidSpec) {
		t.Fatalf("Append() error = %v, want %s", err, errors.ErrCodeInvalidSpec)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(data), "DEF ") != 1 || string(data) != opampLib {
		t.Errorf("file changed after rejected spec:\n%s", data)
	}
}

func TestOpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "opamp.lib")

	_, err := Open(path, opampSpec())
	if !errors.Is(err, errors.ErrCodeOpen) {
		t.Fatalf("Open() error = %v, want %s", err, errors.ErrCodeOpen)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Errorf("Open() created %s after failing", path)
	}
}

// failingWriter accepts n writes and then fails every following one.
type failingWriter struct {
	n   int
	buf bytes.Buffer
}

var errDiskFull = stderrors.New("no space left on device")

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.n == 0 {
		return 0, errDiskFull
	}
	f.n--
	return f.buf.Write(p)
}

func TestMidWriteFailure(t *testing.T) {
	spec := opampSpec()
	geom, err := symgen.Compute(spec)
	if err != nil {
		t.Fatal(err)
	}

	fw := &failingWriter{n: 6}
	w, err := NewWriter(fw, spec)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	err = w.WriteBody(geom)
	if !errors.Is(err, errors.ErrCodeWrite) {
		t.Fatalf("WriteBody() error = %v, want %s", err, errors.ErrCodeWrite)
	}

	var lineErr *LineError
	if !stderrors.As(err, &lineErr) {
		t.Fatalf("error %v does not carry a LineError", err)
	}
	if lineErr.Line != 7 || lineErr.Record != "P" {
		t.Errorf("failed at line %d (%s), want line 7 (P)", lineErr.Line, lineErr.Record)
	}
	if !stderrors.Is(err, errDiskFull) {
		t.Errorf("error does not wrap the writer failure: %v", err)
	}

	// The failure is sticky and Close reports it instead of writing a footer.
	if err := w.WriteBody(geom); !errors.Is(err, errors.ErrCodeWrite) {
		t.Errorf("second WriteBody() error = %v, want sticky write error", err)
	}
	if err := w.Close(); !errors.Is(err, errors.ErrCodeWrite) {
		t.Errorf("Close() error = %v, want sticky write error", err)
	}
	if strings.Contains(fw.buf.String(), "ENDDEF") {
		t.Error("footer written after failure")
	}
}

func TestHeaderFailure(t *testing.T) {
	_, err := NewWriter(&failingWriter{n: 1}, opampSpec())

	var lineErr *LineError
	if !stderrors.As(err, &lineErr) || lineErr.Record != "DEF" {
		t.Fatalf("NewWriter() error = %v, want DEF line failure", err)
	}
}

func TestWriterStateMachine(t *testing.T) {
	spec := opampSpec()
	geom, err := symgen.Compute(spec)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	w, err := NewWriter(&buf, spec)
	if err != nil {
		t.Fatal(err)
	}
	if w.Lines() != 5 {
		t.Errorf("Lines() after header = %d, want 5", w.Lines())
	}

	// Bodies are repeatable until Close.
	for i := 0; i < 2; i++ {
		if err := w.WriteBody(geom); err != nil {
			t.Fatalf("WriteBody() #%d error = %v", i+1, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	out := buf.String()
	if n := strings.Count(out, "\nP 2 "); n != 8 {
		t.Errorf("got %d P lines after two bodies, want 8", n)
	}
	if !strings.HasSuffix(out, "ENDDRAW\nENDDEF\n") {
		t.Errorf("output does not end with footer:\n%s", out)
	}

	if err := w.WriteBody(geom); !errors.Is(err, errors.ErrCodeState) {
		t.Errorf("WriteBody() after Close error = %v, want %s", err, errors.ErrCodeState)
	}
	if err := w.Close(); !errors.Is(err, errors.ErrCodeState) {
		t.Errorf("second Close() error = %v, want %s", err, errors.ErrCodeState)
	}
}

func TestNewWriterRejectsInvalidSpec(t *testing.T) {
	var buf bytes.Buffer
	spec := opampSpec()
	spec.Name = ""

	if _, err := NewWriter(&buf, spec); !errors.Is(err, errors.ErrCodeInvalidSpec) {
		t.Fatalf("NewWriter() error = %v, want %s", err, errors.ErrCodeInvalidSpec)
	}
	if buf.Len() != 0 {
		t.Errorf("NewWriter() wrote %q for an invalid spec", buf.String())
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("OPAMP"); got != "OPAMP.lib" {
		t.Errorf("FileName() = %q, want OPAMP.lib", got)
	}
}

func TestTruncateKeepsOldContentsUntilClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "opamp.lib")
	old := "EESchema-LIBRARY Version 2.4\nDEF OLD U 0 40 Y Y 1 F N\nENDDEF\n"
	if err := os.WriteFile(path, []byte(old), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := Open(path, opampSpec(), WithTruncate())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != old {
		t.Errorf("library changed before Close:\n%s", data)
	}

	geom, _ := symgen.Compute(opampSpec())
	if err := w.WriteBody(geom); err != nil {
		t.Fatalf("WriteBody() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, _ = os.ReadFile(path)
	if string(data) != opampLib {
		t.Errorf("library after Close:\n%s", data)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("mode = %v, want 0644", info.Mode().Perm())
	}
	assertOnlyFile(t, dir, "opamp.lib")
}

func TestTruncateFailureKeepsOldContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "opamp.lib")
	if err := os.WriteFile(path, []byte(opampLib), 0o644); err != nil {
		t.Fatal(err)
	}

	spec := opampSpec()
	spec.Name = "OTHER"
	w, err := Open(path, spec, WithTruncate())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	w.err = errors.Wrap(errors.ErrCodeWrite, errDiskFull, "write P record")

	if err := w.Close(); !errors.Is(err, errors.ErrCodeWrite) {
		t.Fatalf("Close() error = %v, want %s", err, errors.ErrCodeWrite)
	}

	data, _ := os.ReadFile(path)
	if string(data) != opampLib {
		t.Errorf("failed replace changed the library:\n%s", data)
	}
	assertOnlyFile(t, dir, "opamp.lib")
}

func TestTruncateOpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "opamp.lib")

	_, err := Open(path, opampSpec(), WithTruncate())
	if !errors.Is(err, errors.ErrCodeOpen) {
		t.Fatalf("Open() error = %v, want %s", err, errors.ErrCodeOpen)
	}
}

func TestWriteBodyNilGeometry(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, opampSpec())
	if err != nil {
		t.Fatal(err)
	}

	if err := w.WriteBody(nil); !errors.Is(err, errors.ErrCodeState) {
		t.Fatalf("WriteBody(nil) error = %v, want %s", err, errors.ErrCodeState)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() after rejected body error = %v", err)
	}
	if !strings.HasSuffix(buf.String(), "DRAW\nENDDRAW\nENDDEF\n") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

// assertOnlyFile fails unless dir holds exactly one entry named name.
func assertOnlyFile(t *testing.T, dir, name string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != name {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("directory holds %v, want only %s", names, name)
	}
}
