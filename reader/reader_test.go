package reader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/colinmarc/ccf/errs"
	"github.com/colinmarc/ccf/format"
	"github.com/colinmarc/ccf/writer"
)

func buildFile(t *testing.T, schema writer.Schema, rows [][]string, opts ...writer.Option) string {
	t.Helper()

	w := writer.New(opts...)

	path := filepath.Join(t.TempDir(), "out.ccf")
	if err := w.Write(path, schema, rows); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	return path
}

func TestOpenBadMagic(t *testing.T) {
	// Scenario S5.
	path := filepath.Join(t.TempDir(), "bad.ccf")
	if err := os.WriteFile(path, []byte("not a ccf file at all"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := Open(path)
	if !errors.Is(err, errs.ErrBadMagic) {
		t.Fatalf("Open() error = %v, want ErrBadMagic", err)
	}
}

func TestOpenTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.ccf")
	if err := os.WriteFile(path, []byte("CCF"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := Open(path)
	if !errors.Is(err, errs.ErrTruncatedFile) {
		t.Fatalf("Open() error = %v, want ErrTruncatedFile", err)
	}
}

func TestRoundTripReadColumn(t *testing.T) {
	schema := writer.Schema{
		{Name: "age", Type: format.Int32},
		{Name: "name", Type: format.String},
	}
	rows := [][]string{{"30", "alice"}, {"", "bob"}, {"42", ""}}

	path := buildFile(t, schema, rows)

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	if r.RowCount() != 3 {
		t.Fatalf("RowCount() = %d, want 3", r.RowCount())
	}

	got := r.ListColumns()
	want := []string{"age", "name"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("ListColumns() = %v, want %v", got, want)
	}

	ageCells, err := r.ReadColumn("age")
	if err != nil {
		t.Fatalf("ReadColumn(age) error = %v", err)
	}
	if ageCells[0].Int32 != 30 || !ageCells[1].Null || ageCells[2].Int32 != 42 {
		t.Fatalf("age cells = %+v", ageCells)
	}

	nameCells, err := r.ReadColumn("name")
	if err != nil {
		t.Fatalf("ReadColumn(name) error = %v", err)
	}
	if nameCells[0].String != "alice" || nameCells[1].String != "bob" || !nameCells[2].Null {
		t.Fatalf("name cells = %+v", nameCells)
	}
}

func TestReadUnknownColumn(t *testing.T) {
	schema := writer.Schema{{Name: "a", Type: format.Int32}}
	path := buildFile(t, schema, [][]string{{"1"}})

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	_, err = r.ReadColumn("missing")
	if !errors.Is(err, errs.ErrUnknownColumn) {
		t.Fatalf("ReadColumn() error = %v, want ErrUnknownColumn", err)
	}
}

func TestReadColumnDuplicateNameReturnsFirstMatch(t *testing.T) {
	// Spec §4.5: a column name is located by first match in declaration
	// order. The writer only produces this file when uniqueness
	// enforcement is disabled.
	schema := writer.Schema{
		{Name: "a", Type: format.Int32},
		{Name: "a", Type: format.Int32},
	}
	rows := [][]string{{"1", "100"}, {"2", "200"}}
	path := buildFile(t, schema, rows, writer.WithColumnNameUniqueness(false))

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	cells, err := r.ReadColumn("a")
	if err != nil {
		t.Fatalf("ReadColumn(a) error = %v", err)
	}
	if cells[0].Int32 != 1 || cells[1].Int32 != 2 {
		t.Fatalf("cells = %+v, want the first declared column's values", cells)
	}
}

func TestSelectiveReadIgnoresOtherColumnCorruption(t *testing.T) {
	// Scenario S4 / invariant 4: corrupting another column's compressed
	// bytes must not affect reading the column actually requested.
	schema := writer.Schema{
		{Name: "a", Type: format.Int32},
		{Name: "b", Type: format.Int32},
	}
	rows := [][]string{{"1", "2"}, {"3", "4"}}
	path := buildFile(t, schema, rows)

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	bEntry := r.byName["b"]
	r.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	for i := uint64(0); i < bEntry.compressedSize; i++ {
		data[bEntry.offset+i] = 0xff
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	r2, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r2.Close()

	aCells, err := r2.ReadColumn("a")
	if err != nil {
		t.Fatalf("ReadColumn(a) error = %v (corrupting b should not affect a)", err)
	}
	if aCells[0].Int32 != 1 || aCells[1].Int32 != 3 {
		t.Fatalf("a cells = %+v", aCells)
	}
}

func TestReadTableZipsColumns(t *testing.T) {
	schema := writer.Schema{
		{Name: "a", Type: format.Int32},
		{Name: "b", Type: format.String},
	}
	rows := [][]string{{"1", "x"}, {"2", "y"}}
	path := buildFile(t, schema, rows)

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	names, out, err := r.ReadTable(nil)
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if len(names) != 2 || len(out) != 2 {
		t.Fatalf("ReadTable() = %v, %v", names, out)
	}
	if out[0][0] != "1" || out[0][1] != "x" || out[1][0] != "2" || out[1][1] != "y" {
		t.Fatalf("rows = %v", out)
	}
}

func TestZeroRowZeroColumnRoundTrip(t *testing.T) {
	path := buildFile(t, writer.Schema{}, nil)

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	if r.RowCount() != 0 {
		t.Fatalf("RowCount() = %d, want 0", r.RowCount())
	}
	if len(r.ListColumns()) != 0 {
		t.Fatalf("ListColumns() = %v, want empty", r.ListColumns())
	}
}
